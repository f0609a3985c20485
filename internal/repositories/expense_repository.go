package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	dbm "tripdeck/internal/models/db_models"
)

type ExpenseRepository interface {
	ListExpenses(ctx context.Context) ([]dbm.Expense, error)
	GetExpense(ctx context.Context, expenseID string) (*dbm.Expense, error)
	CreateExpense(ctx context.Context, expense *dbm.Expense) error
	UpdateExpense(ctx context.Context, expense *dbm.Expense) error
	DeleteExpense(ctx context.Context, expenseID string) error
}

type expenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) ListExpenses(ctx context.Context) ([]dbm.Expense, error) {
	var expenses []dbm.Expense
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *expenseRepository) GetExpense(ctx context.Context, expenseID string) (*dbm.Expense, error) {
	var expense dbm.Expense
	err := r.db.WithContext(ctx).Where("id = ?", expenseID).First(&expense).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepository) CreateExpense(ctx context.Context, expense *dbm.Expense) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(expense).Error
	})
}

func (r *expenseRepository) UpdateExpense(ctx context.Context, expense *dbm.Expense) error {
	res := r.db.WithContext(ctx).Model(expense).
		Select("item_id", "category", "amount", "currency", "original_amount", "original_currency", "description").
		Updates(expense)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *expenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	res := r.db.WithContext(ctx).Where("id = ?", expenseID).Delete(&dbm.Expense{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
