package budget

import (
	"math"
	"strings"
	"time"

	budgetDatamodel "github.com/frahmantamala/portfolio/internal/core/datamodel/budget"
	"github.com/shopspring/decimal"
)

type CategoryType string

const (
	TypeIncome  CategoryType = "income"
	TypeExpense CategoryType = "expense"
	TypeBills   CategoryType = "bills"
	TypeSavings CategoryType = "savings"
	TypeDebt    CategoryType = "debt"
)

// SummaryTypes is the order per-type totals are reported in.
var SummaryTypes = []CategoryType{TypeIncome, TypeExpense, TypeBills, TypeDebt, TypeSavings}

func (t CategoryType) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeBills, TypeSavings, TypeDebt:
		return true
	}
	return false
}

// TracksPayment reports whether is_paid means anything for the type.
func (t CategoryType) TracksPayment() bool {
	return t == TypeBills || t == TypeDebt
}

// DerivesActual reports whether the actual amount comes from transactions
// instead of the stored field.
func (t CategoryType) DerivesActual() bool {
	return t == TypeExpense
}

const (
	MinYear = 1970
	MaxYear = 9999

	// AmountPlaces matches the NUMERIC(14,2) columns.
	AmountPlaces int32 = 2
)

// MaxAmount is the exclusive bound on stored amounts.
var MaxAmount = decimal.New(1, 12)

// Period is one tracked calendar month.
type Period struct {
	ID        int64
	Month     string
	Year      int
	CreatedAt time.Time
}

type Category struct {
	ID            int64
	PeriodID      int64
	Type          CategoryType
	Name          string
	PlannedAmount decimal.Decimal
	ActualAmount  decimal.Decimal
	IsPaid        bool
}

type Transaction struct {
	ID         int64
	PeriodID   int64
	CategoryID int64
	Date       string
	Amount     decimal.Decimal
	Notes      string
}

// PeriodData is the full snapshot of one period.
type PeriodData struct {
	Period       Period
	Categories   []Category
	Transactions []Transaction
}

// Amount converts a float input to a decimal rounded to cents, the precision
// the database keeps. NaN and infinities become zero.
func Amount(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v).Round(AmountPlaces)
}

// NormalizeMonth returns the canonical English month name for name,
// matched case-insensitively.
func NormalizeMonth(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(m.String(), name) {
			return m.String(), true
		}
	}
	return "", false
}

// MonthOf returns the period for t.
func MonthOf(t time.Time) (string, int) {
	return t.Month().String(), t.Year()
}

func PeriodFromDataModel(p *budgetDatamodel.Period) Period {
	return Period{
		ID:        p.ID,
		Month:     p.Month,
		Year:      p.Year,
		CreatedAt: p.CreatedAt,
	}
}

func CategoryToDataModel(c Category) *budgetDatamodel.Category {
	return &budgetDatamodel.Category{
		ID:            c.ID,
		PeriodID:      c.PeriodID,
		Type:          string(c.Type),
		Name:          c.Name,
		PlannedAmount: c.PlannedAmount,
		ActualAmount:  c.ActualAmount,
		IsPaid:        c.IsPaid,
	}
}

func CategoryFromDataModel(c *budgetDatamodel.Category) Category {
	return Category{
		ID:            c.ID,
		PeriodID:      c.PeriodID,
		Type:          CategoryType(c.Type),
		Name:          c.Name,
		PlannedAmount: c.PlannedAmount,
		ActualAmount:  c.ActualAmount,
		IsPaid:        c.IsPaid,
	}
}

func TransactionToDataModel(t Transaction) *budgetDatamodel.Transaction {
	var notes *string
	if t.Notes != "" {
		n := t.Notes
		notes = &n
	}
	return &budgetDatamodel.Transaction{
		ID:         t.ID,
		PeriodID:   t.PeriodID,
		CategoryID: t.CategoryID,
		Date:       t.Date,
		Amount:     t.Amount,
		Notes:      notes,
	}
}

func TransactionFromDataModel(t *budgetDatamodel.Transaction) Transaction {
	tx := Transaction{
		ID:         t.ID,
		PeriodID:   t.PeriodID,
		CategoryID: t.CategoryID,
		Date:       t.Date,
		Amount:     t.Amount,
	}
	if t.Notes != nil {
		tx.Notes = *t.Notes
	}
	return tx
}

func CategoriesFromDataModel(cs []*budgetDatamodel.Category) []Category {
	result := make([]Category, len(cs))
	for i, c := range cs {
		result[i] = CategoryFromDataModel(c)
	}
	return result
}

func TransactionsFromDataModel(ts []*budgetDatamodel.Transaction) []Transaction {
	result := make([]Transaction, len(ts))
	for i, t := range ts {
		result[i] = TransactionFromDataModel(t)
	}
	return result
}
