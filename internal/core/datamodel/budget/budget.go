package budget

import (
	"time"

	"github.com/shopspring/decimal"
)

type Period struct {
	ID        int64     `gorm:"primaryKey"`
	Month     string    `gorm:"column:month;not null;uniqueIndex:idx_budget_periods_month_year"`
	Year      int       `gorm:"column:year;not null;uniqueIndex:idx_budget_periods_month_year"`
	UserID    *string   `gorm:"column:user_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Period) TableName() string {
	return "budget_periods"
}

type Category struct {
	ID            int64           `gorm:"primaryKey"`
	PeriodID      int64           `gorm:"column:period_id;not null;index"`
	Type          string          `gorm:"column:type;not null"`
	Name          string          `gorm:"column:name;not null;default:''"`
	PlannedAmount decimal.Decimal `gorm:"column:planned_amount;type:numeric(14,2);not null"`
	ActualAmount  decimal.Decimal `gorm:"column:actual_amount;type:numeric(14,2);not null"`
	IsPaid        bool            `gorm:"column:is_paid;not null;default:false"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Category) TableName() string {
	return "budget_categories"
}

type Transaction struct {
	ID         int64           `gorm:"primaryKey"`
	PeriodID   int64           `gorm:"column:period_id;not null;index"`
	CategoryID int64           `gorm:"column:category_id;not null;index"`
	Date       string          `gorm:"column:date;not null"`
	Amount     decimal.Decimal `gorm:"column:amount;type:numeric(14,2);not null"`
	Notes      *string         `gorm:"column:notes"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Transaction) TableName() string {
	return "budget_transactions"
}
