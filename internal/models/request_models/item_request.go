package request_models

type AddItemRequest struct {
	Title         string   `json:"title"`
	Time          *string  `json:"time"`
	Duration      *string  `json:"duration"`
	Type          string   `json:"type"`
	Description   *string  `json:"description"`
	Price         *string  `json:"price"`
	Link          *string  `json:"link"`
	Notes         *string  `json:"notes"`
	LocationQuery *string  `json:"location_query"`
	Lat           *float64 `json:"lat"`
	Lng           *float64 `json:"lng"`
}

// UpdateItemRequest only touches the fields that are present.
type UpdateItemRequest struct {
	Title         *string  `json:"title"`
	Time          *string  `json:"time"`
	Duration      *string  `json:"duration"`
	Type          *string  `json:"type"`
	Description   *string  `json:"description"`
	Price         *string  `json:"price"`
	Link          *string  `json:"link"`
	Notes         *string  `json:"notes"`
	LocationQuery *string  `json:"location_query"`
	Lat           *float64 `json:"lat"`
	Lng           *float64 `json:"lng"`
}

type ReorderItemsRequest struct {
	ItemIDs []string `json:"item_ids" binding:"required,min=1"`
}

type MoveItemRequest struct {
	From *int `json:"from" binding:"required,min=0"`
	To   *int `json:"to" binding:"required,min=0"`
}
