package services

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	dbm "tripdeck/internal/models/db_models"
	resp "tripdeck/internal/models/response_models"
)

type fakeDayRepo struct {
	days map[string]dbm.Day
}

func newFakeDayRepo(ids ...string) *fakeDayRepo {
	r := &fakeDayRepo{days: map[string]dbm.Day{}}
	for _, id := range ids {
		d := dbm.Day{DayLabel: id}
		d.ID = id
		r.days[id] = d
	}
	return r
}

func (r *fakeDayRepo) ListDays(ctx context.Context) ([]dbm.Day, error) {
	out := make([]dbm.Day, 0, len(r.days))
	for _, d := range r.days {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeDayRepo) GetDay(ctx context.Context, dayID string) (*dbm.Day, error) {
	d, ok := r.days[dayID]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *fakeDayRepo) UpsertDay(ctx context.Context, day *dbm.Day) error {
	r.days[day.ID] = *day
	return nil
}

type fakeItemRepo struct {
	mu        sync.Mutex
	items     map[string]dbm.ItineraryItem
	failWrite error
	orders    map[string][]string
}

func newFakeItemRepo(items ...dbm.ItineraryItem) *fakeItemRepo {
	r := &fakeItemRepo{items: map[string]dbm.ItineraryItem{}, orders: map[string][]string{}}
	for _, it := range items {
		r.items[it.ID] = it
	}
	return r
}

func (r *fakeItemRepo) ListItems(ctx context.Context) ([]dbm.ItineraryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]dbm.ItineraryItem, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeItemRepo) ListItemsByDay(ctx context.Context, dayID string) ([]dbm.ItineraryItem, error) {
	all, _ := r.ListItems(ctx)
	out := all[:0]
	for _, it := range all {
		if it.DayID == dayID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) GetItem(ctx context.Context, itemID string) (*dbm.ItineraryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[itemID]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (r *fakeItemRepo) CreateItem(ctx context.Context, item *dbm.ItineraryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrite != nil {
		return r.failWrite
	}
	r.items[item.ID] = *item
	return nil
}

func (r *fakeItemRepo) UpdateItem(ctx context.Context, item *dbm.ItineraryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrite != nil {
		return r.failWrite
	}
	if _, ok := r.items[item.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.items[item.ID] = *item
	return nil
}

func (r *fakeItemRepo) DeleteItem(ctx context.Context, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrite != nil {
		return r.failWrite
	}
	if _, ok := r.items[itemID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.items, itemID)
	return nil
}

func (r *fakeItemRepo) UpdateSortOrder(ctx context.Context, dayID string, orderedIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrite != nil {
		return r.failWrite
	}
	for i, id := range orderedIDs {
		it, ok := r.items[id]
		if !ok || it.DayID != dayID {
			return gorm.ErrRecordNotFound
		}
		pos := i + 1
		it.SortOrder = &pos
		r.items[id] = it
	}
	r.orders[dayID] = append([]string(nil), orderedIDs...)
	return nil
}

func (r *fakeItemRepo) ReplaceDayItems(ctx context.Context, dayID string, items []dbm.ItineraryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, it := range r.items {
		if it.DayID == dayID {
			delete(r.items, id)
		}
	}
	for _, it := range items {
		it.DayID = dayID
		r.items[it.ID] = it
	}
	return nil
}

type fakeExpenseRepo struct {
	expenses  []dbm.Expense
	failWrite error
}

func (r *fakeExpenseRepo) ListExpenses(ctx context.Context) ([]dbm.Expense, error) {
	out := make([]dbm.Expense, len(r.expenses))
	copy(out, r.expenses)
	return out, nil
}

func (r *fakeExpenseRepo) GetExpense(ctx context.Context, expenseID string) (*dbm.Expense, error) {
	for _, e := range r.expenses {
		if e.ID == expenseID {
			e := e
			return &e, nil
		}
	}
	return nil, nil
}

func (r *fakeExpenseRepo) CreateExpense(ctx context.Context, expense *dbm.Expense) error {
	if r.failWrite != nil {
		return r.failWrite
	}
	r.expenses = append([]dbm.Expense{*expense}, r.expenses...)
	return nil
}

func (r *fakeExpenseRepo) UpdateExpense(ctx context.Context, expense *dbm.Expense) error {
	if r.failWrite != nil {
		return r.failWrite
	}
	for i := range r.expenses {
		if r.expenses[i].ID == expense.ID {
			r.expenses[i] = *expense
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeExpenseRepo) DeleteExpense(ctx context.Context, expenseID string) error {
	if r.failWrite != nil {
		return r.failWrite
	}
	for i := range r.expenses {
		if r.expenses[i].ID == expenseID {
			r.expenses = append(r.expenses[:i], r.expenses[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// fixedCurrency quotes TWD per unit from a static table.
type fixedCurrency struct {
	rates map[string]float64
}

func (c fixedCurrency) Base() string { return "TWD" }

func (c fixedCurrency) Rate(ctx context.Context, code string) float64 {
	if r, ok := c.rates[code]; ok {
		return r
	}
	return 1
}

func (c fixedCurrency) Convert(ctx context.Context, amount decimal.Decimal, code string) decimal.Decimal {
	return amount.Mul(decimal.NewFromFloat(c.Rate(ctx, code))).Round(2)
}

func (c fixedCurrency) Rates(ctx context.Context) resp.RateTableResponse {
	return resp.RateTableResponse{Base: "TWD", Rates: c.rates, Source: "fixed"}
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func testItem(id, dayID string, start *string) dbm.ItineraryItem {
	it := dbm.ItineraryItem{DayID: dayID, StartTime: start, Title: id, ItemType: dbm.ItemTypeActivity}
	it.ID = id
	return it
}
