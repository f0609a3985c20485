package db_models

type ItemType string

const (
	ItemTypeFlight    ItemType = "FLIGHT"
	ItemTypeTrain     ItemType = "TRAIN"
	ItemTypeHotel     ItemType = "HOTEL"
	ItemTypeActivity  ItemType = "ACTIVITY"
	ItemTypeCarRental ItemType = "CAR_RENTAL"
	ItemTypeInfo      ItemType = "INFO"
)

func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeFlight, ItemTypeTrain, ItemTypeHotel, ItemTypeActivity, ItemTypeCarRental, ItemTypeInfo:
		return true
	}
	return false
}

type ItineraryItem struct {
	BaseModel
	DayID         string   `gorm:"column:day_id;index"`
	StartTime     *string  `gorm:"column:start_time"` // HH:MM
	Duration      *string  `gorm:"column:duration"`   // "1.5小時", "45分鐘"
	Title         string   `gorm:"column:title"`
	Description   *string  `gorm:"column:description"`
	Price         *string  `gorm:"column:price"`
	Link          *string  `gorm:"column:link"`
	ImageURL      *string  `gorm:"column:image_url"`
	Notes         *string  `gorm:"column:notes"`
	LocationQuery *string  `gorm:"column:location_query"`
	ItemType      ItemType `gorm:"column:item_type;type:text"`
	Lat           *float64 `gorm:"column:lat"`
	Lng           *float64 `gorm:"column:lng"`
	SortOrder     *int     `gorm:"column:sort_order"`
}

func (ItineraryItem) TableName() string { return "itinerary_items" }

func (i *ItineraryItem) HasCoordinates() bool {
	return i.Lat != nil && i.Lng != nil
}
