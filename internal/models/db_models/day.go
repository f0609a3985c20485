package db_models

type Day struct {
	BaseModel
	DateStr  string `gorm:"column:date_str"`  // "2026-02-18"
	DayLabel string `gorm:"column:day_label"` // "Day 1"
	Location string

	Items []ItineraryItem `gorm:"foreignKey:DayID"`
}

func (Day) TableName() string { return "days" }
