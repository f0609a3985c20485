package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	dbm "tripdeck/internal/models/db_models"
	req "tripdeck/internal/models/request_models"
	"tripdeck/pkg/utils"
)

func expense(id, dayID string, cat dbm.ExpenseCategory, amount string) dbm.Expense {
	e := dbm.Expense{DayID: dayID, Category: cat, Amount: decimal.RequireFromString(amount), Currency: "TWD"}
	e.ID = id
	return e
}

func newExpenseFixture(expenses ...dbm.Expense) (*ExpenseService, *fakeExpenseRepo) {
	repo := &fakeExpenseRepo{expenses: expenses}
	svc := NewExpenseService(repo, newFakeDayRepo("day1", "day2", "day10"),
		fixedCurrency{rates: map[string]float64{"EUR": 36.42}}, zap.NewNop())
	return svc.(*ExpenseService), repo
}

func TestCreateExpenseConvertsToBase(t *testing.T) {
	svc, repo := newExpenseFixture()
	eur := "eur"
	amount := decimal.RequireFromString("10")

	got, err := svc.CreateExpense(context.Background(), req.CreateExpenseRequest{
		DayID:            "day1",
		Category:         "food",
		OriginalAmount:   &amount,
		OriginalCurrency: &eur,
	})
	require.NoError(t, err)
	require.Equal(t, "TWD", got.Currency)
	require.True(t, decimal.RequireFromString("364.2").Equal(got.Amount))
	require.Equal(t, "EUR", *got.OriginalCurrency)
	require.True(t, amount.Equal(*got.OriginalAmount))
	require.Equal(t, "FOOD", got.Category)
	require.Len(t, repo.expenses, 1)
}

func TestCreateExpenseInBaseKeepsOriginalEqual(t *testing.T) {
	svc, _ := newExpenseFixture()

	got, err := svc.CreateExpense(context.Background(), req.CreateExpenseRequest{
		DayID:    "day1",
		Category: "SHOPPING",
		Amount:   decimal.RequireFromString("99.999"),
	})
	require.NoError(t, err)
	require.True(t, got.Amount.Equal(*got.OriginalAmount))
	require.True(t, decimal.RequireFromString("100").Equal(got.Amount))
}

func TestCreateExpenseValidation(t *testing.T) {
	svc, _ := newExpenseFixture()
	ctx := context.Background()

	_, err := svc.CreateExpense(ctx, req.CreateExpenseRequest{DayID: "day1", Category: "BRIBES", Amount: decimal.NewFromInt(1)})
	require.ErrorIs(t, err, utils.ErrInvalidCategory)

	_, err = svc.CreateExpense(ctx, req.CreateExpenseRequest{DayID: "day1", Category: "FOOD"})
	require.ErrorIs(t, err, utils.ErrInvalidAmount)

	_, err = svc.CreateExpense(ctx, req.CreateExpenseRequest{DayID: "day5", Category: "FOOD", Amount: decimal.NewFromInt(1)})
	require.ErrorIs(t, err, utils.ErrDayNotFound)
}

func TestCreateExpenseRevertsOnFailure(t *testing.T) {
	svc, repo := newExpenseFixture(expense("e1", "day1", dbm.ExpenseFood, "100"))
	repo.failWrite = errors.New("insert failed")

	_, err := svc.CreateExpense(context.Background(), req.CreateExpenseRequest{
		DayID: "day1", Category: "FOOD", Amount: decimal.NewFromInt(5),
	})
	require.ErrorIs(t, err, utils.ErrDatabaseError)

	list, err := svc.ListExpenses(context.Background(), ExpenseViewAll, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestDeleteExpenseRestoresOnFailure(t *testing.T) {
	svc, repo := newExpenseFixture(
		expense("e2", "day1", dbm.ExpenseFood, "50"),
		expense("e1", "day1", dbm.ExpenseTransport, "100"),
	)
	ctx := context.Background()

	before, err := svc.ListExpenses(ctx, ExpenseViewAll, "")
	require.NoError(t, err)

	repo.failWrite = errors.New("connection reset")
	require.Error(t, svc.DeleteExpense(ctx, "e1"))

	after, err := svc.ListExpenses(ctx, ExpenseViewAll, "")
	require.NoError(t, err)
	require.Equal(t, before, after)

	repo.failWrite = nil
	require.NoError(t, svc.DeleteExpense(ctx, "e1"))
	after, err = svc.ListExpenses(ctx, ExpenseViewAll, "")
	require.NoError(t, err)
	require.Len(t, after, 1)
	require.Equal(t, "e2", after[0].ID)

	require.ErrorIs(t, svc.DeleteExpense(ctx, "missing"), utils.ErrExpenseNotFound)
}

func TestListExpensesDayView(t *testing.T) {
	svc, _ := newExpenseFixture(
		expense("e3", "day2", dbm.ExpenseFood, "10"),
		expense("e2", "day1", dbm.ExpenseFood, "20"),
		expense("e1", "day2", dbm.ExpenseOther, "30"),
	)
	ctx := context.Background()

	got, err := svc.ListExpenses(ctx, ExpenseViewDay, "day2")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "e3", got[0].ID)

	_, err = svc.ListExpenses(ctx, ExpenseViewDay, "")
	require.ErrorIs(t, err, utils.ErrInvalidInput)
	_, err = svc.ListExpenses(ctx, "week", "")
	require.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestUpdateExpenseReprices(t *testing.T) {
	svc, repo := newExpenseFixture(expense("e1", "day1", dbm.ExpenseFood, "100"))
	eur := "EUR"
	two := decimal.NewFromInt(2)

	got, err := svc.UpdateExpense(context.Background(), "e1", req.UpdateExpenseRequest{
		OriginalAmount: &two, OriginalCurrency: &eur,
	})
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("72.84").Equal(got.Amount))
	require.True(t, decimal.RequireFromString("72.84").Equal(repo.expenses[0].Amount))

	_, err = svc.UpdateExpense(context.Background(), "nope", req.UpdateExpenseRequest{})
	require.ErrorIs(t, err, utils.ErrExpenseNotFound)
}

func TestSummarize(t *testing.T) {
	eur := expense("e4", "day1", dbm.ExpenseFood, "5")
	eur.Currency = "EUR"
	list := []dbm.Expense{
		expense("e1", "day10", dbm.ExpenseFood, "100.10"),
		expense("e2", "day2", dbm.ExpenseTransport, "50"),
		expense("e3", "day2", dbm.ExpenseFood, "0.90"),
		eur,
	}

	sum := Summarize(list, "TWD")
	require.Equal(t, 4, sum.Count)
	require.Len(t, sum.Totals, 2)
	require.Equal(t, "TWD", sum.Totals[0].Currency)
	require.True(t, decimal.RequireFromString("151").Equal(sum.Totals[0].Total))
	require.Equal(t, "EUR", sum.Totals[1].Currency)

	require.Len(t, sum.ByCategory, len(dbm.ExpenseCategories))
	require.Equal(t, "FOOD", sum.ByCategory[0].Category)
	require.Equal(t, 3, sum.ByCategory[0].Count)
	require.Equal(t, "SHOPPING", sum.ByCategory[4].Category)
	require.Empty(t, sum.ByCategory[4].Totals)

	days := []string{}
	for _, d := range sum.ByDay {
		days = append(days, d.DayID)
	}
	require.Equal(t, []string{"day1", "day2", "day10"}, days)
	require.Equal(t, 2, sum.ByDay[1].Count)
}
