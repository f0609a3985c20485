package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	dbm "tripdeck/internal/models/db_models"
	"tripdeck/internal/models/request_models"
	"tripdeck/internal/models/response_models"
	"tripdeck/internal/repositories"
	"tripdeck/internal/state"
	"tripdeck/pkg/utils"
)

const defaultItemTitle = "New Item"

type ScheduleServiceInterface interface {
	GetSchedule(ctx context.Context) ([]response_models.DaySchedule, error)
	GetDay(ctx context.Context, dayID string) (*response_models.DaySchedule, error)
	AddItem(ctx context.Context, dayID string, request request_models.AddItemRequest) (*response_models.ItineraryItemView, error)
	UpdateItem(ctx context.Context, itemID string, request request_models.UpdateItemRequest) (*response_models.ItineraryItemView, error)
	DeleteItem(ctx context.Context, dayID, itemID string) error
	ReorderItems(ctx context.Context, dayID string, itemIDs []string) error
	MoveItem(ctx context.Context, dayID string, from, to int) ([]string, error)
	OptimizeDay(ctx context.Context, dayID string) (*response_models.RouteOptimizationResult, error)
	FillCoordinates(ctx context.Context, itemID string) (*response_models.ItineraryItemView, error)
	AttachImage(ctx context.Context, itemID, imageURL string) (*response_models.ItineraryItemView, error)
	Invalidate()
}

type ScheduleService struct {
	dayRepo  repositories.DayRepository
	itemRepo repositories.ItemRepository
	routes   RouteServiceInterface
	images   ImageServiceInterface
	board    *state.Board
	log      *zap.Logger
}

func NewScheduleService(
	dayRepo repositories.DayRepository,
	itemRepo repositories.ItemRepository,
	routes RouteServiceInterface,
	images ImageServiceInterface,
	log *zap.Logger,
) ScheduleServiceInterface {
	s := &ScheduleService{
		dayRepo:  dayRepo,
		itemRepo: itemRepo,
		routes:   routes,
		images:   images,
		log:      log,
	}
	s.board = state.NewBoard(s.load, log)
	return s
}

func (s *ScheduleService) load(ctx context.Context) ([]dbm.Day, []dbm.ItineraryItem, error) {
	days, err := s.dayRepo.ListDays(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	items, err := s.itemRepo.ListItems(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return days, items, nil
}

func (s *ScheduleService) Invalidate() {
	s.board.Invalidate()
}

func (s *ScheduleService) GetSchedule(ctx context.Context) ([]response_models.DaySchedule, error) {
	return s.board.Snapshot(ctx)
}

func (s *ScheduleService) GetDay(ctx context.Context, dayID string) (*response_models.DaySchedule, error) {
	day, err := s.board.Day(ctx, dayID)
	if err != nil {
		return nil, err
	}
	if day == nil {
		return nil, utils.ErrDayNotFound
	}
	return day, nil
}

// AddItem shows the item on the board before the insert lands. When the
// insert fails the board keeps it until the next reload.
func (s *ScheduleService) AddItem(ctx context.Context, dayID string, request request_models.AddItemRequest) (*response_models.ItineraryItemView, error) {
	if _, err := s.GetDay(ctx, dayID); err != nil {
		return nil, err
	}

	itemType := dbm.ItemTypeActivity
	if request.Type != "" {
		itemType = dbm.ItemType(strings.ToUpper(request.Type))
		if !itemType.Valid() {
			return nil, utils.ErrInvalidItemType
		}
	}

	title := strings.TrimSpace(request.Title)
	if title == "" {
		title = defaultItemTitle
	}

	start, err := normalizeTime(request.Time)
	if err != nil {
		return nil, err
	}

	link := request.Link
	if link == nil || strings.TrimSpace(*link) == "" {
		query := title
		if request.LocationQuery != nil && *request.LocationQuery != "" {
			query = *request.LocationQuery
		}
		l := utils.MapSearchLink(query)
		link = &l
	}

	// no sort_order: a new item drops the day back to time order
	item := dbm.ItineraryItem{
		DayID:         dayID,
		StartTime:     start,
		Duration:      request.Duration,
		Title:         title,
		Description:   request.Description,
		Price:         request.Price,
		Link:          link,
		Notes:         request.Notes,
		LocationQuery: request.LocationQuery,
		ItemType:      itemType,
		Lat:           request.Lat,
		Lng:           request.Lng,
	}
	item.ID = dbm.NewID("item")

	view := response_models.NewItemView(item)
	err = s.board.AddItem(ctx, dayID, view, func(ctx context.Context) error {
		return s.itemRepo.CreateItem(ctx, &item)
	})
	if err != nil {
		if errors.Is(err, utils.ErrDayNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	view = response_models.NewItemView(item)
	return &view, nil
}

func (s *ScheduleService) UpdateItem(ctx context.Context, itemID string, request request_models.UpdateItemRequest) (*response_models.ItineraryItemView, error) {
	item, err := s.getItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if request.Title != nil {
		item.Title = strings.TrimSpace(*request.Title)
		if item.Title == "" {
			item.Title = defaultItemTitle
		}
	}
	if request.Type != nil {
		t := dbm.ItemType(strings.ToUpper(*request.Type))
		if !t.Valid() {
			return nil, utils.ErrInvalidItemType
		}
		item.ItemType = t
	}
	if request.Time != nil {
		if item.StartTime, err = normalizeTime(request.Time); err != nil {
			return nil, err
		}
	}
	if request.Duration != nil {
		item.Duration = emptyToNil(request.Duration)
	}
	if request.Description != nil {
		item.Description = emptyToNil(request.Description)
	}
	if request.Price != nil {
		item.Price = emptyToNil(request.Price)
	}
	if request.Link != nil {
		item.Link = emptyToNil(request.Link)
	}
	if request.Notes != nil {
		item.Notes = emptyToNil(request.Notes)
	}
	if request.LocationQuery != nil {
		item.LocationQuery = emptyToNil(request.LocationQuery)
	}
	if request.Lat != nil || request.Lng != nil {
		if request.Lat == nil || request.Lng == nil {
			return nil, fmt.Errorf("%w: lat and lng go together", utils.ErrInvalidInput)
		}
		item.Lat, item.Lng = request.Lat, request.Lng
	}

	return s.saveItem(ctx, item)
}

// DeleteItem removes the item from the board first and restores it if the
// delete fails. A stored photo is removed afterwards, best effort.
func (s *ScheduleService) DeleteItem(ctx context.Context, dayID, itemID string) error {
	item, err := s.getItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item.DayID != dayID {
		return utils.ErrItemNotFound
	}

	err = s.board.DeleteItem(ctx, dayID, itemID, func(ctx context.Context) error {
		return s.itemRepo.DeleteItem(ctx, itemID)
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return utils.ErrItemNotFound
		case errors.Is(err, utils.ErrDayNotFound):
			return err
		}
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	if item.ImageURL != nil && *item.ImageURL != "" && s.images != nil {
		s.images.Delete(ctx, *item.ImageURL)
	}
	return nil
}

func (s *ScheduleService) ReorderItems(ctx context.Context, dayID string, itemIDs []string) error {
	err := s.board.SetOrder(ctx, dayID, itemIDs, s.persistOrder(dayID))
	return s.orderError(err)
}

func (s *ScheduleService) MoveItem(ctx context.Context, dayID string, from, to int) ([]string, error) {
	ids, err := s.board.Reorder(ctx, dayID, from, to, s.persistOrder(dayID))
	if err != nil {
		return nil, s.orderError(err)
	}
	return ids, nil
}

// OptimizeDay asks the route service for a better visiting order and applies
// it when one is found. An unsuccessful result is returned as-is.
func (s *ScheduleService) OptimizeDay(ctx context.Context, dayID string) (*response_models.RouteOptimizationResult, error) {
	day, err := s.GetDay(ctx, dayID)
	if err != nil {
		return nil, err
	}

	result := s.routes.OptimizeRoute(ctx, day.Items)
	if !result.Success {
		return &result, nil
	}
	if err := s.ReorderItems(ctx, dayID, result.OptimizedOrder); err != nil {
		return nil, err
	}
	return &result, nil
}

// FillCoordinates geocodes the item's location query, or its title.
func (s *ScheduleService) FillCoordinates(ctx context.Context, itemID string) (*response_models.ItineraryItemView, error) {
	item, err := s.getItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	query := item.Title
	if item.LocationQuery != nil && *item.LocationQuery != "" {
		query = *item.LocationQuery
	}
	coords, err := s.routes.Geocode(ctx, query)
	if err != nil {
		return nil, err
	}
	item.Lat, item.Lng = &coords.Lat, &coords.Lng

	return s.saveItem(ctx, item)
}

// AttachImage copies a remote image into the bucket and points the item at
// it. The previous photo is removed once the item is saved.
func (s *ScheduleService) AttachImage(ctx context.Context, itemID, imageURL string) (*response_models.ItineraryItemView, error) {
	item, err := s.getItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	publicURL, err := s.images.UploadFromURL(ctx, imageURL, itemID)
	if err != nil {
		return nil, err
	}

	previous := item.ImageURL
	item.ImageURL = &publicURL
	view, err := s.saveItem(ctx, item)
	if err != nil {
		s.images.Delete(ctx, publicURL)
		return nil, err
	}

	if previous != nil && *previous != "" && *previous != publicURL {
		s.images.Delete(ctx, *previous)
	}
	return view, nil
}

func (s *ScheduleService) getItem(ctx context.Context, itemID string) (*dbm.ItineraryItem, error) {
	item, err := s.itemRepo.GetItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if item == nil {
		return nil, utils.ErrItemNotFound
	}
	return item, nil
}

func (s *ScheduleService) saveItem(ctx context.Context, item *dbm.ItineraryItem) (*response_models.ItineraryItemView, error) {
	if err := s.itemRepo.UpdateItem(ctx, item); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrItemNotFound
		}
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	view := response_models.NewItemView(*item)
	s.board.ReplaceItem(view)
	return &view, nil
}

func (s *ScheduleService) persistOrder(dayID string) func(ctx context.Context, ids []string) error {
	return func(ctx context.Context, ids []string) error {
		return s.itemRepo.UpdateSortOrder(ctx, dayID, ids)
	}
}

func (s *ScheduleService) orderError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, utils.ErrDayNotFound), errors.Is(err, utils.ErrInvalidOrder), errors.Is(err, utils.ErrDatabaseError):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return utils.ErrInvalidOrder
	}
	return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
}

func normalizeTime(t *string) (*string, error) {
	if t == nil || strings.TrimSpace(*t) == "" {
		return nil, nil
	}
	clock, ok := utils.NormalizeClock(*t)
	if !ok {
		return nil, fmt.Errorf("%w: time must be HH:MM", utils.ErrInvalidInput)
	}
	return &clock, nil
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
