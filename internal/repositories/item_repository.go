package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	dbm "tripdeck/internal/models/db_models"
)

type ItemRepository interface {
	ListItems(ctx context.Context) ([]dbm.ItineraryItem, error)
	ListItemsByDay(ctx context.Context, dayID string) ([]dbm.ItineraryItem, error)
	GetItem(ctx context.Context, itemID string) (*dbm.ItineraryItem, error)
	CreateItem(ctx context.Context, item *dbm.ItineraryItem) error
	UpdateItem(ctx context.Context, item *dbm.ItineraryItem) error
	DeleteItem(ctx context.Context, itemID string) error
	UpdateSortOrder(ctx context.Context, dayID string, orderedIDs []string) error
	ReplaceDayItems(ctx context.Context, dayID string, items []dbm.ItineraryItem) error
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

// Items come back by start time (missing times last), then by explicit order.
const itemOrder = "start_time ASC NULLS LAST, sort_order ASC NULLS LAST, created_at ASC"

func (r *itemRepository) ListItems(ctx context.Context) ([]dbm.ItineraryItem, error) {
	var items []dbm.ItineraryItem
	if err := r.db.WithContext(ctx).Order(itemOrder).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) ListItemsByDay(ctx context.Context, dayID string) ([]dbm.ItineraryItem, error) {
	var items []dbm.ItineraryItem
	err := r.db.WithContext(ctx).
		Where("day_id = ?", dayID).
		Order("sort_order ASC NULLS LAST, start_time ASC NULLS LAST").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) GetItem(ctx context.Context, itemID string) (*dbm.ItineraryItem, error) {
	var item dbm.ItineraryItem
	err := r.db.WithContext(ctx).Where("id = ?", itemID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) CreateItem(ctx context.Context, item *dbm.ItineraryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepository) UpdateItem(ctx context.Context, item *dbm.ItineraryItem) error {
	res := r.db.WithContext(ctx).Model(item).Select("*").Omit("id", "created_at", "deleted_at").Updates(item)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *itemRepository) DeleteItem(ctx context.Context, itemID string) error {
	res := r.db.WithContext(ctx).Where("id = ?", itemID).Delete(&dbm.ItineraryItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateSortOrder writes 1-based positions for the given ids in one transaction.
func (r *itemRepository) UpdateSortOrder(ctx context.Context, dayID string, orderedIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range orderedIDs {
			res := tx.Model(&dbm.ItineraryItem{}).
				Where("id = ? AND day_id = ?", id, dayID).
				Update("sort_order", i+1)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}

// ReplaceDayItems wipes a day's items and inserts the given set.
func (r *itemRepository) ReplaceDayItems(ctx context.Context, dayID string, items []dbm.ItineraryItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("day_id = ?", dayID).Delete(&dbm.ItineraryItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].DayID = dayID
		}
		return tx.Create(&items).Error
	})
}
