package response_models

import "tripdeck/internal/models/db_models"

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ItineraryItemView is one stop as the page renders it.
type ItineraryItemView struct {
	ID                  string       `json:"id"`
	DayID               string       `json:"day_id"`
	Time                *string      `json:"time,omitempty"`
	Duration            *string      `json:"duration,omitempty"`
	Title               string       `json:"title"`
	Description         *string      `json:"description,omitempty"`
	Type                string       `json:"type"`
	Price               *string      `json:"price,omitempty"`
	Link                *string      `json:"link,omitempty"`
	ImageURL            *string      `json:"image_url,omitempty"`
	Notes               *string      `json:"notes,omitempty"`
	LocationQuery       *string      `json:"location_query,omitempty"`
	LocationCoordinates *Coordinates `json:"location_coordinates,omitempty"`
	SortOrder           *int         `json:"sort_order,omitempty"`
}

type DaySchedule struct {
	ID       string              `json:"id"`
	DateStr  string              `json:"date_str"`
	DayLabel string              `json:"day_label"`
	Location string              `json:"location"`
	Items    []ItineraryItemView `json:"items"`
}

func NewItemView(item db_models.ItineraryItem) ItineraryItemView {
	v := ItineraryItemView{
		ID:            item.ID,
		DayID:         item.DayID,
		Time:          item.StartTime,
		Duration:      item.Duration,
		Title:         item.Title,
		Description:   item.Description,
		Type:          string(item.ItemType),
		Price:         item.Price,
		Link:          item.Link,
		ImageURL:      item.ImageURL,
		Notes:         item.Notes,
		LocationQuery: item.LocationQuery,
		SortOrder:     item.SortOrder,
	}
	if item.HasCoordinates() {
		v.LocationCoordinates = &Coordinates{Lat: *item.Lat, Lng: *item.Lng}
	}
	return v
}

// NewDaySchedule maps a day without items; items are joined separately.
func NewDaySchedule(day db_models.Day) DaySchedule {
	return DaySchedule{
		ID:       day.ID,
		DateStr:  day.DateStr,
		DayLabel: day.DayLabel,
		Location: day.Location,
		Items:    []ItineraryItemView{},
	}
}

type RouteOptimizationResult struct {
	OptimizedOrder []string `json:"optimized_order"`
	TotalDistance  int      `json:"total_distance"` // meters
	TotalDuration  int      `json:"total_duration"` // seconds
	DistanceText   string   `json:"distance_text,omitempty"`
	DurationText   string   `json:"duration_text,omitempty"`
	Success        bool     `json:"success"`
	Error          string   `json:"error,omitempty"`
}
