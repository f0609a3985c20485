package response_models

type PlaceInfo struct {
	ImageURL            *string      `json:"image_url"`
	Description         *string      `json:"description"`
	Notes               *string      `json:"notes"`
	SuggestedDuration   *string      `json:"suggested_duration"`
	MapLink             string       `json:"map_link"`
	LocationCoordinates *Coordinates `json:"location_coordinates"`
}

// ItemDraft is a suggested item the caller can post back as a new stop.
type ItemDraft struct {
	Title       string  `json:"title"`
	Time        string  `json:"time"`
	Duration    string  `json:"duration"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Notes       string  `json:"notes"`
	Cost        *string `json:"cost,omitempty"`
}
