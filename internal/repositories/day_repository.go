package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbm "tripdeck/internal/models/db_models"
)

type DayRepository interface {
	ListDays(ctx context.Context) ([]dbm.Day, error)
	GetDay(ctx context.Context, dayID string) (*dbm.Day, error)
	UpsertDay(ctx context.Context, day *dbm.Day) error
}

type dayRepository struct {
	db *gorm.DB
}

func NewDayRepository(db *gorm.DB) DayRepository {
	return &dayRepository{db: db}
}

func (r *dayRepository) ListDays(ctx context.Context) ([]dbm.Day, error) {
	var days []dbm.Day
	if err := r.db.WithContext(ctx).Order("id").Find(&days).Error; err != nil {
		return nil, err
	}
	return days, nil
}

func (r *dayRepository) GetDay(ctx context.Context, dayID string) (*dbm.Day, error) {
	var day dbm.Day
	err := r.db.WithContext(ctx).Where("id = ?", dayID).First(&day).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &day, nil
}

func (r *dayRepository) UpsertDay(ctx context.Context, day *dbm.Day) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"date_str", "day_label", "location", "updated_at"}),
	}).Create(day).Error
}
