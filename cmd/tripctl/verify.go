package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	dbm "tripdeck/internal/models/db_models"
	"tripdeck/internal/repositories"
)

func newVerifyCmd() *cobra.Command {
	var dayID string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Print a day's items in sort order",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, closeDB, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB()

			items, err := repositories.NewItemRepository(db).ListItemsByDay(cmd.Context(), dayID)
			if err != nil {
				return err
			}
			printItems(cmd.OutOrStdout(), items)
			return nil
		},
	}
	cmd.Flags().StringVar(&dayID, "day", "day1", "day id")
	return cmd
}

func printItems(w io.Writer, items []dbm.ItineraryItem) {
	fmt.Fprintln(w, "Verification Results:")
	for i, it := range items {
		fmt.Fprintf(w, "Item %d: %s\n", i+1, it.Title)
		fmt.Fprintf(w, "  Desc: %s\n", preview(it.Description))
		fmt.Fprintf(w, "  Notes: %s\n", preview(it.Notes))
		fmt.Fprintf(w, "  Image: %s\n", preview(it.ImageURL))
		fmt.Fprintln(w, "---")
	}
}

// preview shows the first 50 characters, or N/A.
func preview(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	r := []rune(*s)
	if len(r) > 50 {
		r = r[:50]
	}
	return string(r) + "..."
}
