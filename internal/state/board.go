package state

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	dbm "tripdeck/internal/models/db_models"
	resp "tripdeck/internal/models/response_models"
	"tripdeck/pkg/utils"
)

// Loader fetches every day and item from the backing store.
type Loader func(ctx context.Context) ([]dbm.Day, []dbm.ItineraryItem, error)

// Board holds the schedule the API serves. Mutations land here first and are
// then written through; a remote change or failed write marks it stale.
type Board struct {
	mu     sync.Mutex
	load   Loader
	log    *zap.Logger
	days   []resp.DaySchedule
	loaded bool
	stale  bool
}

func NewBoard(load Loader, log *zap.Logger) *Board {
	if log == nil {
		log = zap.NewNop()
	}
	return &Board{load: load, log: log}
}

// Snapshot returns a copy of the schedule, reloading it when stale.
func (b *Board) Snapshot(ctx context.Context) ([]resp.DaySchedule, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return cloneDays(b.days), nil
}

// Day returns a copy of one day, or nil when the board has no such day.
func (b *Board) Day(ctx context.Context, dayID string) (*resp.DaySchedule, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	idx := b.dayIndex(dayID)
	if idx < 0 {
		return nil, nil
	}
	d := cloneDay(b.days[idx])
	return &d, nil
}

// Invalidate forces the next read to reload from the store.
func (b *Board) Invalidate() {
	b.mu.Lock()
	b.stale = true
	b.mu.Unlock()
}

func (b *Board) Stale() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stale || !b.loaded
}

// AddItem appends item to its day and then persists it. A failed write keeps
// the local entry and marks the board stale so the next read resyncs.
func (b *Board) AddItem(ctx context.Context, dayID string, item resp.ItineraryItemView, persist func(ctx context.Context) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.ensureLoaded(ctx); err != nil {
		return err
	}
	idx := b.dayIndex(dayID)
	if idx < 0 {
		return utils.ErrDayNotFound
	}

	day := &b.days[idx]
	day.Items = append(day.Items, item)
	day.Items = orderItems(day.Items)

	if err := persist(ctx); err != nil {
		b.stale = true
		b.log.Warn("add item failed, keeping local entry",
			zap.String("day_id", dayID), zap.String("item_id", item.ID), zap.Error(err))
		return err
	}
	return nil
}

// ReplaceItem swaps an item in place after a successful update.
func (b *Board) ReplaceItem(item resp.ItineraryItemView) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.loaded {
		return
	}
	for di := range b.days {
		for ii := range b.days[di].Items {
			if b.days[di].Items[ii].ID != item.ID {
				continue
			}
			if b.days[di].ID != item.DayID {
				// moved to another day; let the next read rebuild the join
				b.stale = true
				return
			}
			b.days[di].Items[ii] = item
			b.days[di].Items = orderItems(b.days[di].Items)
			return
		}
	}
	b.stale = true
}

// DeleteItem removes exactly itemID from the day, then persists. On failure
// the day is restored to its prior contents.
func (b *Board) DeleteItem(ctx context.Context, dayID, itemID string, persist func(ctx context.Context) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.ensureLoaded(ctx); err != nil {
		return err
	}
	idx := b.dayIndex(dayID)
	if idx < 0 {
		return utils.ErrDayNotFound
	}

	prev := cloneDay(b.days[idx])
	kept := make([]resp.ItineraryItemView, 0, len(prev.Items))
	for _, it := range b.days[idx].Items {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}
	b.days[idx].Items = kept

	if err := persist(ctx); err != nil {
		b.days[idx] = prev
		b.log.Warn("delete item failed, restored",
			zap.String("day_id", dayID), zap.String("item_id", itemID), zap.Error(err))
		return err
	}
	return nil
}

// Reorder moves the item at from to position to (splice semantics) and
// persists the resulting id order. On failure the previous order is restored.
func (b *Board) Reorder(ctx context.Context, dayID string, from, to int, persist func(ctx context.Context, orderedIDs []string) error) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	idx := b.dayIndex(dayID)
	if idx < 0 {
		return nil, utils.ErrDayNotFound
	}

	items := b.days[idx].Items
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) {
		return nil, fmt.Errorf("%w: move %d -> %d with %d items", utils.ErrInvalidOrder, from, to, len(items))
	}

	prev := cloneDay(b.days[idx])
	moved := Splice(items, from, to)
	ids := itemIDs(moved)

	b.days[idx].Items = applySortOrder(moved)
	if err := persist(ctx, ids); err != nil {
		b.days[idx] = prev
		b.log.Warn("reorder failed, restored", zap.String("day_id", dayID), zap.Error(err))
		return nil, err
	}
	return ids, nil
}

// SetOrder applies a full id order to a day. The ids must be a permutation
// of the day's current items.
func (b *Board) SetOrder(ctx context.Context, dayID string, orderedIDs []string, persist func(ctx context.Context, orderedIDs []string) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.ensureLoaded(ctx); err != nil {
		return err
	}
	idx := b.dayIndex(dayID)
	if idx < 0 {
		return utils.ErrDayNotFound
	}

	byID := make(map[string]resp.ItineraryItemView, len(b.days[idx].Items))
	for _, it := range b.days[idx].Items {
		byID[it.ID] = it
	}
	if len(orderedIDs) != len(byID) {
		return fmt.Errorf("%w: expected %d ids, got %d", utils.ErrInvalidOrder, len(byID), len(orderedIDs))
	}

	next := make([]resp.ItineraryItemView, 0, len(orderedIDs))
	seen := make(map[string]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		it, ok := byID[id]
		if !ok || seen[id] {
			return fmt.Errorf("%w: unknown or repeated id %q", utils.ErrInvalidOrder, id)
		}
		seen[id] = true
		next = append(next, it)
	}

	prev := cloneDay(b.days[idx])
	b.days[idx].Items = applySortOrder(next)
	if err := persist(ctx, orderedIDs); err != nil {
		b.days[idx] = prev
		b.log.Warn("set order failed, restored", zap.String("day_id", dayID), zap.Error(err))
		return err
	}
	return nil
}

func (b *Board) ensureLoaded(ctx context.Context) error {
	if b.loaded && !b.stale {
		return nil
	}
	days, items, err := b.load(ctx)
	if err != nil {
		return fmt.Errorf("load schedule: %w", err)
	}
	b.days = BuildSchedule(days, items)
	b.loaded = true
	b.stale = false
	return nil
}

func (b *Board) dayIndex(dayID string) int {
	for i := range b.days {
		if b.days[i].ID == dayID {
			return i
		}
	}
	return -1
}

// BuildSchedule joins items to their days and sorts both. Items whose day is
// missing are dropped.
func BuildSchedule(days []dbm.Day, items []dbm.ItineraryItem) []resp.DaySchedule {
	out := make([]resp.DaySchedule, 0, len(days))
	index := make(map[string]int, len(days))
	for _, d := range days {
		index[d.ID] = len(out)
		out = append(out, resp.NewDaySchedule(d))
	}
	for _, it := range items {
		i, ok := index[it.DayID]
		if !ok {
			continue
		}
		out[i].Items = append(out[i].Items, resp.NewItemView(it))
	}
	for i := range out {
		out[i].Items = orderItems(out[i].Items)
	}
	return SortDays(out)
}

// SortDays orders by the numeric suffix of the id ("day2" before "day10").
// Ids without a number go last, by id.
func SortDays(days []resp.DaySchedule) []resp.DaySchedule {
	sort.SliceStable(days, func(i, j int) bool {
		a, b := utils.DayNumber(days[i].ID), utils.DayNumber(days[j].ID)
		switch {
		case a < 0 && b < 0:
			return days[i].ID < days[j].ID
		case a < 0:
			return false
		case b < 0:
			return true
		}
		return a < b
	})
	return days
}

// SortItems orders by start time with missing or unreadable times last.
// Equal times keep their relative order.
func SortItems(items []resp.ItineraryItemView) []resp.ItineraryItemView {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := clockMinutes(items[i].Time), clockMinutes(items[j].Time)
		switch {
		case a < 0:
			return false
		case b < 0:
			return true
		}
		return a < b
	})
	return items
}

// Splice removes the element at from and reinserts it at to.
func Splice[T any](items []T, from, to int) []T {
	out := make([]T, 0, len(items))
	out = append(out, items[:from]...)
	out = append(out, items[from+1:]...)

	moved := items[from]
	out = append(out, moved)
	copy(out[to+1:], out[to:len(out)-1])
	out[to] = moved
	return out
}

func clockMinutes(t *string) int {
	if t == nil {
		return -1
	}
	h, m, ok := utils.ParseClock(*t)
	if !ok {
		return -1
	}
	return h*60 + m
}

// orderItems sorts by time, then by sort_order when every item carries one,
// so a saved manual order survives reloads.
func orderItems(items []resp.ItineraryItemView) []resp.ItineraryItemView {
	items = SortItems(items)
	for _, it := range items {
		if it.SortOrder == nil {
			return items
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return *items[i].SortOrder < *items[j].SortOrder
	})
	return items
}

func applySortOrder(items []resp.ItineraryItemView) []resp.ItineraryItemView {
	for i := range items {
		pos := i + 1
		items[i].SortOrder = &pos
	}
	return items
}

func itemIDs(items []resp.ItineraryItemView) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

func cloneDay(d resp.DaySchedule) resp.DaySchedule {
	items := make([]resp.ItineraryItemView, len(d.Items))
	copy(items, d.Items)
	d.Items = items
	return d
}

func cloneDays(days []resp.DaySchedule) []resp.DaySchedule {
	out := make([]resp.DaySchedule, len(days))
	for i, d := range days {
		out[i] = cloneDay(d)
	}
	return out
}
