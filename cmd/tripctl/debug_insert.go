package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	dbm "tripdeck/internal/models/db_models"
	"tripdeck/internal/repositories"
)

func newDebugInsertCmd() *cobra.Command {
	var dayID string
	cmd := &cobra.Command{
		Use:   "debug-insert",
		Short: "Insert a throwaway item to check write access",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, closeDB, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB()

			item := debugItem(dayID, time.Now())
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Attempting to insert: %s\n", item.ID)

			if err := repositories.NewItemRepository(db).CreateItem(cmd.Context(), &item); err != nil {
				return fmt.Errorf("insert failed: %w", err)
			}

			raw, _ := json.MarshalIndent(item, "", "  ")
			fmt.Fprintf(out, "Insert successful: %s\n", raw)
			return nil
		},
	}
	cmd.Flags().StringVar(&dayID, "day", "day1", "day id")
	return cmd
}

// debugItem leaves sort_order unset on purpose so it sorts by time only.
func debugItem(dayID string, now time.Time) dbm.ItineraryItem {
	s := func(v string) *string { return &v }
	item := dbm.ItineraryItem{
		DayID:       dayID,
		StartTime:   s("10:00"),
		Duration:    s("1小時"),
		Title:       "Debug Item",
		Description: s("Debug description"),
		Price:       s("100"),
		Link:        s("https://example.com"),
		Notes:       s("Debug notes"),
		ItemType:    dbm.ItemTypeActivity,
	}
	item.ID = fmt.Sprintf("debug-%d", now.UnixMilli())
	return item
}
