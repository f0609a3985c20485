package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	dbm "tripdeck/internal/models/db_models"
	req "tripdeck/internal/models/request_models"
	resp "tripdeck/internal/models/response_models"
	"tripdeck/internal/repositories"
	"tripdeck/pkg/utils"
)

const (
	ExpenseViewDay = "day"
	ExpenseViewAll = "all"
)

type ExpenseServiceInterface interface {
	ListExpenses(ctx context.Context, view, dayID string) ([]resp.ExpenseView, error)
	CreateExpense(ctx context.Context, in req.CreateExpenseRequest) (*resp.ExpenseView, error)
	UpdateExpense(ctx context.Context, expenseID string, in req.UpdateExpenseRequest) (*resp.ExpenseView, error)
	DeleteExpense(ctx context.Context, expenseID string) error
	Summary(ctx context.Context) (*resp.ExpenseSummary, error)
	Invalidate()
}

// ExpenseService keeps a local ledger, newest first. Writes hit the ledger
// first and are reverted when the store rejects them.
type ExpenseService struct {
	expenseRepo repositories.ExpenseRepository
	dayRepo     repositories.DayRepository
	currency    CurrencyServiceInterface
	log         *zap.Logger

	mu     sync.Mutex
	ledger []dbm.Expense
	loaded bool
}

func NewExpenseService(
	expenseRepo repositories.ExpenseRepository,
	dayRepo repositories.DayRepository,
	currency CurrencyServiceInterface,
	log *zap.Logger,
) ExpenseServiceInterface {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		dayRepo:     dayRepo,
		currency:    currency,
		log:         log,
	}
}

func (s *ExpenseService) Invalidate() {
	s.mu.Lock()
	s.loaded = false
	s.mu.Unlock()
}

func (s *ExpenseService) ListExpenses(ctx context.Context, view, dayID string) ([]resp.ExpenseView, error) {
	switch view {
	case "", ExpenseViewAll:
		view = ExpenseViewAll
	case ExpenseViewDay:
		if dayID == "" {
			return nil, fmt.Errorf("%w: day_id is required for the day view", utils.ErrInvalidInput)
		}
	default:
		return nil, fmt.Errorf("%w: unknown view %q", utils.ErrInvalidInput, view)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	out := make([]resp.ExpenseView, 0, len(s.ledger))
	for _, e := range s.ledger {
		if view == ExpenseViewDay && e.DayID != dayID {
			continue
		}
		out = append(out, resp.NewExpenseView(e))
	}
	return out, nil
}

func (s *ExpenseService) CreateExpense(ctx context.Context, in req.CreateExpenseRequest) (*resp.ExpenseView, error) {
	category := dbm.ExpenseCategory(strings.ToUpper(in.Category))
	if !category.Valid() {
		return nil, utils.ErrInvalidCategory
	}

	day, err := s.dayRepo.GetDay(ctx, in.DayID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if day == nil {
		return nil, utils.ErrDayNotFound
	}

	origAmount := in.Amount
	if in.OriginalAmount != nil {
		origAmount = *in.OriginalAmount
	}
	origCurrency := in.Currency
	if in.OriginalCurrency != nil {
		origCurrency = *in.OriginalCurrency
	}

	e := dbm.Expense{
		DayID:       in.DayID,
		ItemID:      in.ItemID,
		Category:    category,
		Description: in.Description,
	}
	if err := s.price(ctx, &e, origAmount, origCurrency); err != nil {
		return nil, err
	}
	e.ID = dbm.NewID("exp")
	e.CreatedAt = time.Now().Unix()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	prev := s.snapshot()
	s.ledger = append([]dbm.Expense{e}, s.ledger...)

	if err := s.expenseRepo.CreateExpense(ctx, &e); err != nil {
		s.ledger = prev
		s.log.Warn("create expense failed, reverted", zap.String("expense_id", e.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	s.ledger[0] = e

	view := resp.NewExpenseView(e)
	return &view, nil
}

func (s *ExpenseService) UpdateExpense(ctx context.Context, expenseID string, in req.UpdateExpenseRequest) (*resp.ExpenseView, error) {
	current, err := s.expenseRepo.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if current == nil {
		return nil, utils.ErrExpenseNotFound
	}

	e := *current
	if in.Category != nil {
		c := dbm.ExpenseCategory(strings.ToUpper(*in.Category))
		if !c.Valid() {
			return nil, utils.ErrInvalidCategory
		}
		e.Category = c
	}
	if in.ItemID != nil {
		e.ItemID = in.ItemID
	}
	if in.Description != nil {
		e.Description = in.Description
	}

	if in.Amount != nil || in.Currency != nil || in.OriginalAmount != nil || in.OriginalCurrency != nil {
		origAmount := e.Amount
		if e.OriginalAmount != nil {
			origAmount = *e.OriginalAmount
		}
		origCurrency := s.currency.Base()
		if e.OriginalCurrency != nil {
			origCurrency = *e.OriginalCurrency
		}
		if in.Amount != nil {
			origAmount = *in.Amount
		}
		if in.OriginalAmount != nil {
			origAmount = *in.OriginalAmount
		}
		if in.Currency != nil {
			origCurrency = *in.Currency
		}
		if in.OriginalCurrency != nil {
			origCurrency = *in.OriginalCurrency
		}
		if err := s.price(ctx, &e, origAmount, origCurrency); err != nil {
			return nil, err
		}
	}

	if err := s.expenseRepo.UpdateExpense(ctx, &e); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrExpenseNotFound
		}
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	s.mu.Lock()
	for i := range s.ledger {
		if s.ledger[i].ID == e.ID {
			s.ledger[i] = e
			break
		}
	}
	s.mu.Unlock()

	view := resp.NewExpenseView(e)
	return &view, nil
}

// DeleteExpense drops the entry locally and restores it if the store fails.
func (s *ExpenseService) DeleteExpense(ctx context.Context, expenseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}

	prev := s.snapshot()
	kept := s.ledger[:0:0]
	for _, e := range s.ledger {
		if e.ID != expenseID {
			kept = append(kept, e)
		}
	}
	s.ledger = kept

	if err := s.expenseRepo.DeleteExpense(ctx, expenseID); err != nil {
		s.ledger = prev
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrExpenseNotFound
		}
		s.log.Warn("delete expense failed, restored", zap.String("expense_id", expenseID), zap.Error(err))
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return nil
}

func (s *ExpenseService) Summary(ctx context.Context) (*resp.ExpenseSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return Summarize(s.ledger, s.currency.Base()), nil
}

// price converts the original amount into the base currency.
func (s *ExpenseService) price(ctx context.Context, e *dbm.Expense, origAmount decimal.Decimal, origCurrency string) error {
	if !origAmount.IsPositive() {
		return utils.ErrInvalidAmount
	}
	base := s.currency.Base()
	origCurrency = strings.ToUpper(strings.TrimSpace(origCurrency))
	if origCurrency == "" {
		origCurrency = base
	}
	if len(origCurrency) != 3 {
		return fmt.Errorf("%w: currency must be a 3-letter code", utils.ErrInvalidInput)
	}

	amount := s.currency.Convert(ctx, origAmount, origCurrency)
	orig := origAmount.Round(2)
	if origCurrency == base {
		orig = amount
	}

	e.Amount = amount
	e.Currency = base
	e.OriginalAmount = &orig
	e.OriginalCurrency = &origCurrency
	return nil
}

func (s *ExpenseService) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	list, err := s.expenseRepo.ListExpenses(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	s.ledger = list
	s.loaded = true
	return nil
}

func (s *ExpenseService) snapshot() []dbm.Expense {
	out := make([]dbm.Expense, len(s.ledger))
	copy(out, s.ledger)
	return out
}

// Summarize totals expenses per currency, per category (all categories, in
// display order) and per day.
func Summarize(expenses []dbm.Expense, base string) *resp.ExpenseSummary {
	sum := &resp.ExpenseSummary{Count: len(expenses)}

	overall := map[string]decimal.Decimal{}
	byCat := map[dbm.ExpenseCategory]map[string]decimal.Decimal{}
	catCount := map[dbm.ExpenseCategory]int{}
	byDay := map[string]map[string]decimal.Decimal{}
	dayCount := map[string]int{}

	for _, e := range expenses {
		overall[e.Currency] = overall[e.Currency].Add(e.Amount)

		if byCat[e.Category] == nil {
			byCat[e.Category] = map[string]decimal.Decimal{}
		}
		byCat[e.Category][e.Currency] = byCat[e.Category][e.Currency].Add(e.Amount)
		catCount[e.Category]++

		if byDay[e.DayID] == nil {
			byDay[e.DayID] = map[string]decimal.Decimal{}
		}
		byDay[e.DayID][e.Currency] = byDay[e.DayID][e.Currency].Add(e.Amount)
		dayCount[e.DayID]++
	}

	sum.Totals = currencyTotals(overall, base)
	for _, c := range dbm.ExpenseCategories {
		sum.ByCategory = append(sum.ByCategory, resp.CategoryTotal{
			Category: string(c),
			Count:    catCount[c],
			Totals:   currencyTotals(byCat[c], base),
		})
	}

	days := make([]string, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		a, b := utils.DayNumber(days[i]), utils.DayNumber(days[j])
		if a != b {
			if a < 0 {
				return false
			}
			if b < 0 {
				return true
			}
			return a < b
		}
		return days[i] < days[j]
	})
	sum.ByDay = make([]resp.DayTotal, 0, len(days))
	for _, d := range days {
		sum.ByDay = append(sum.ByDay, resp.DayTotal{
			DayID:  d,
			Count:  dayCount[d],
			Totals: currencyTotals(byDay[d], base),
		})
	}
	return sum
}

// currencyTotals lists the base currency first, then the rest by code.
func currencyTotals(m map[string]decimal.Decimal, base string) []resp.CurrencyTotal {
	out := make([]resp.CurrencyTotal, 0, len(m))
	for code, total := range m {
		out = append(out, resp.CurrencyTotal{Currency: code, Total: total.Round(2)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Currency == base {
			return out[j].Currency != base
		}
		if out[j].Currency == base {
			return false
		}
		return out[i].Currency < out[j].Currency
	})
	return out
}
