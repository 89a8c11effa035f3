package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/portfolio/internal/budget"
	budgetDatamodel "github.com/frahmantamala/portfolio/internal/core/datamodel/budget"
	"gorm.io/gorm"
)

type BudgetRepository struct {
	db *gorm.DB
}

func NewBudgetRepository(db *gorm.DB) budget.Repository {
	return &BudgetRepository{db: db}
}

// GetOrCreatePeriod reports created=false when the period already existed,
// including when a concurrent caller inserted it first. A new period and its
// default categories are written in one database transaction.
func (r *BudgetRepository) GetOrCreatePeriod(ctx context.Context, month string, year int, defaults []*budgetDatamodel.Category) (*budgetDatamodel.Period, bool, error) {
	existing, err := r.FindPeriod(ctx, month, year)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	period := &budgetDatamodel.Period{Month: month, Year: year}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(period).Error; err != nil {
			return err
		}
		for _, c := range defaults {
			c.PeriodID = period.ID
			if err := tx.Create(c).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// lost the race on the (month, year) unique index
		winner, findErr := r.FindPeriod(ctx, month, year)
		if findErr == nil && winner != nil {
			return winner, false, nil
		}
		return nil, false, err
	}
	return period, true, nil
}

func (r *BudgetRepository) FindPeriod(ctx context.Context, month string, year int) (*budgetDatamodel.Period, error) {
	var period budgetDatamodel.Period
	err := r.db.WithContext(ctx).Where("month = ? AND year = ?", month, year).First(&period).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &period, nil
}

func (r *BudgetRepository) GetPeriodByID(ctx context.Context, id int64) (*budgetDatamodel.Period, error) {
	var period budgetDatamodel.Period
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&period).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &period, nil
}

func (r *BudgetRepository) ListCategories(ctx context.Context, periodID int64) ([]*budgetDatamodel.Category, error) {
	var categories []*budgetDatamodel.Category
	err := r.db.WithContext(ctx).Where("period_id = ?", periodID).Order("id ASC").Find(&categories).Error
	return categories, err
}

func (r *BudgetRepository) GetCategory(ctx context.Context, id int64) (*budgetDatamodel.Category, error) {
	var category budgetDatamodel.Category
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *BudgetRepository) CreateCategory(ctx context.Context, category *budgetDatamodel.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *BudgetRepository) UpdateCategory(ctx context.Context, category *budgetDatamodel.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// DeleteCategory removes the category and, with cascade, its transactions in
// the same database transaction.
func (r *BudgetRepository) DeleteCategory(ctx context.Context, id int64, cascade bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if cascade {
			if err := tx.Where("category_id = ?", id).Delete(&budgetDatamodel.Transaction{}).Error; err != nil {
				return err
			}
		}
		return tx.Where("id = ?", id).Delete(&budgetDatamodel.Category{}).Error
	})
}

func (r *BudgetRepository) ListTransactions(ctx context.Context, periodID int64) ([]*budgetDatamodel.Transaction, error) {
	var transactions []*budgetDatamodel.Transaction
	err := r.db.WithContext(ctx).Where("period_id = ?", periodID).Order("date ASC, id ASC").Find(&transactions).Error
	return transactions, err
}

func (r *BudgetRepository) GetTransaction(ctx context.Context, id int64) (*budgetDatamodel.Transaction, error) {
	var transaction budgetDatamodel.Transaction
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&transaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &transaction, nil
}

func (r *BudgetRepository) CreateTransaction(ctx context.Context, transaction *budgetDatamodel.Transaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

func (r *BudgetRepository) UpdateTransaction(ctx context.Context, transaction *budgetDatamodel.Transaction) error {
	return r.db.WithContext(ctx).Save(transaction).Error
}

func (r *BudgetRepository) DeleteTransaction(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&budgetDatamodel.Transaction{}).Error
}
