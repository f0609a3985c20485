package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	dbm "tripdeck/internal/models/db_models"
	"tripdeck/internal/repositories"
	"tripdeck/pkg/utils"
)

// seedFile is one day of itinerary in YAML.
type seedFile struct {
	ID       string     `yaml:"id"`
	Date     string     `yaml:"date"`
	Label    string     `yaml:"label"`
	Location string     `yaml:"location"`
	Items    []seedItem `yaml:"items"`
}

type seedItem struct {
	StartTime     string   `yaml:"start_time"`
	Title         string   `yaml:"title"`
	Description   string   `yaml:"description"`
	Notes         string   `yaml:"notes"`
	Type          string   `yaml:"item_type"`
	LocationQuery string   `yaml:"location_query"`
	Link          string   `yaml:"link"`
	Duration      string   `yaml:"duration"`
	Price         string   `yaml:"price"`
	ImageURL      string   `yaml:"image_url"`
	Lat           *float64 `yaml:"lat"`
	Lng           *float64 `yaml:"lng"`
	SortOrder     *int     `yaml:"sort_order"`
}

func newSeedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert a day and replace its items from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			day, items, err := parseSeed(f, time.Now())
			if err != nil {
				return err
			}

			db, _, closeDB, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB()

			ctx := cmd.Context()
			if err := repositories.NewDayRepository(db).UpsertDay(ctx, day); err != nil {
				return fmt.Errorf("upsert day %s: %w", day.ID, err)
			}
			if err := repositories.NewItemRepository(db).ReplaceDayItems(ctx, day.ID, items); err != nil {
				return fmt.Errorf("replace items of %s: %w", day.ID, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %s with %d items.\n", day.ID, len(items))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file describing one day")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// parseSeed validates the file and builds rows. Items without sort_order get
// their position in the file.
func parseSeed(r io.Reader, now time.Time) (*dbm.Day, []dbm.ItineraryItem, error) {
	var sf seedFile
	if err := yaml.NewDecoder(r).Decode(&sf); err != nil {
		return nil, nil, fmt.Errorf("parse seed: %w", err)
	}
	if sf.ID == "" {
		return nil, nil, fmt.Errorf("seed: id is required")
	}

	day := &dbm.Day{DateStr: sf.Date, DayLabel: sf.Label, Location: sf.Location}
	day.ID = sf.ID

	items := make([]dbm.ItineraryItem, 0, len(sf.Items))
	for i, si := range sf.Items {
		if si.Title == "" {
			return nil, nil, fmt.Errorf("seed: item %d has no title", i+1)
		}
		t := dbm.ItemType(si.Type)
		if t == "" {
			t = dbm.ItemTypeActivity
		}
		if !t.Valid() {
			return nil, nil, fmt.Errorf("seed: item %d has unknown type %q", i+1, si.Type)
		}

		var start *string
		if si.StartTime != "" {
			clock, ok := utils.NormalizeClock(si.StartTime)
			if !ok {
				return nil, nil, fmt.Errorf("seed: item %d has invalid start_time %q", i+1, si.StartTime)
			}
			start = &clock
		}

		order := i + 1
		if si.SortOrder != nil {
			order = *si.SortOrder
		}
		it := dbm.ItineraryItem{
			DayID:         sf.ID,
			StartTime:     start,
			Duration:      nonEmpty(si.Duration),
			Title:         si.Title,
			Description:   nonEmpty(si.Description),
			Price:         nonEmpty(si.Price),
			Link:          nonEmpty(si.Link),
			ImageURL:      nonEmpty(si.ImageURL),
			Notes:         nonEmpty(si.Notes),
			LocationQuery: nonEmpty(si.LocationQuery),
			ItemType:      t,
			Lat:           si.Lat,
			Lng:           si.Lng,
			SortOrder:     &order,
		}
		it.ID = fmt.Sprintf("%s-%d-%s", sf.ID, now.UnixMilli(), uuid.NewString()[:8])
		items = append(items, it)
	}
	return day, items, nil
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
