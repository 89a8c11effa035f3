package budget

import (
	errors "github.com/frahmantamala/portfolio/internal"
	"github.com/frahmantamala/portfolio/internal/core/common/validation"
	"github.com/shopspring/decimal"
)

type PeriodDTO struct {
	Month string `json:"month"`
	Year  int    `json:"year"`
}

func (dto PeriodDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("month", dto.Month).Required().Custom(func(value interface{}) *errors.AppError {
		if _, ok := NormalizeMonth(dto.Month); !ok && dto.Month != "" {
			return errors.NewValidationFieldError("month", "month must be an English month name", errors.ErrCodeInvalidMonth)
		}
		return nil
	})
	v.Field("year", dto.Year).
		MinInt(MinYear, errors.ErrCodeInvalidYear).
		MaxInt(MaxYear, errors.ErrCodeInvalidYear)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type CreateCategoryDTO struct {
	Type          string  `json:"type"`
	Name          string  `json:"name"`
	PlannedAmount float64 `json:"planned_amount"`
}

func (dto CreateCategoryDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("type", dto.Type).Required().OneOf(errors.ErrCodeInvalidType,
		string(TypeIncome), string(TypeExpense), string(TypeBills), string(TypeSavings), string(TypeDebt))
	v.Field("name", dto.Name).MaxLength(200)
	v.Field("planned_amount", dto.PlannedAmount).Finite().AmountBelow(MaxAmount, AmountPlaces)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// UpdateCategoryDTO is a partial patch; nil fields are left untouched.
type UpdateCategoryDTO struct {
	Name          *string  `json:"name,omitempty"`
	PlannedAmount *float64 `json:"planned_amount,omitempty"`
	ActualAmount  *float64 `json:"actual_amount,omitempty"`
	IsPaid        *bool    `json:"is_paid,omitempty"`
}

func (dto UpdateCategoryDTO) Validate() error {
	v := validation.NewValidator()
	if dto.Name != nil {
		v.Field("name", *dto.Name).MaxLength(200)
	}
	v.Field("planned_amount", dto.PlannedAmount).Finite().AmountBelow(MaxAmount, AmountPlaces)
	v.Field("actual_amount", dto.ActualAmount).Finite().AmountBelow(MaxAmount, AmountPlaces)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type CreateTransactionDTO struct {
	Date       string  `json:"date"`
	CategoryID int64   `json:"category_id"`
	Amount     float64 `json:"amount"`
	Notes      *string `json:"notes,omitempty"`
}

func (dto CreateTransactionDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("date", dto.Date).CalendarDate()
	v.Field("category_id", dto.CategoryID).Required()
	v.Field("amount", dto.Amount).Finite().AmountBelow(MaxAmount, AmountPlaces)
	if dto.Notes != nil {
		v.Field("notes", *dto.Notes).MaxLength(1000)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type UpdateTransactionDTO struct {
	Date       *string  `json:"date,omitempty"`
	CategoryID *int64   `json:"category_id,omitempty"`
	Amount     *float64 `json:"amount,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
}

func (dto UpdateTransactionDTO) Validate() error {
	v := validation.NewValidator()
	if dto.Date != nil {
		v.Field("date", *dto.Date).Required().CalendarDate()
	}
	if dto.CategoryID != nil {
		v.Field("category_id", *dto.CategoryID).Required()
	}
	v.Field("amount", dto.Amount).Finite().AmountBelow(MaxAmount, AmountPlaces)
	if dto.Notes != nil {
		v.Field("notes", *dto.Notes).MaxLength(1000)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type PeriodResponse struct {
	ID    int64  `json:"id"`
	Month string `json:"month"`
	Year  int    `json:"year"`
}

type CategoryResponse struct {
	ID            int64   `json:"id"`
	PeriodID      int64   `json:"period_id"`
	Type          string  `json:"type"`
	Name          string  `json:"name"`
	PlannedAmount float64 `json:"planned_amount"`
	ActualAmount  float64 `json:"actual_amount"`
	IsPaid        bool    `json:"is_paid"`
}

type TransactionResponse struct {
	ID         int64   `json:"id"`
	PeriodID   int64   `json:"period_id"`
	CategoryID int64   `json:"category_id"`
	Date       string  `json:"date"`
	Amount     float64 `json:"amount"`
	Notes      string  `json:"notes,omitempty"`
}

type PeriodDataResponse struct {
	Period       PeriodResponse        `json:"period"`
	Categories   []CategoryResponse    `json:"categories"`
	Transactions []TransactionResponse `json:"transactions"`
}

type TypeTotalsResponse struct {
	Type       string             `json:"type"`
	Planned    float64            `json:"planned"`
	Actual     float64            `json:"actual"`
	Categories []CategoryResponse `json:"categories"`
}

type SummaryResponse struct {
	Period          PeriodResponse       `json:"period"`
	Totals          []TypeTotalsResponse `json:"totals"`
	ActualIncome    float64              `json:"actual_income"`
	ActualExpenses  float64              `json:"actual_expenses"`
	ActualMoneyLeft float64              `json:"actual_money_left"`
	PlannedIncome   float64              `json:"planned_income"`
	PlannedExpenses float64              `json:"planned_expenses"`
	BudgetLeft      float64              `json:"budget_left"`
}

func (p Period) ToResponse() PeriodResponse {
	return PeriodResponse{ID: p.ID, Month: p.Month, Year: p.Year}
}

func (c Category) ToResponse() CategoryResponse {
	return CategoryResponse{
		ID:            c.ID,
		PeriodID:      c.PeriodID,
		Type:          string(c.Type),
		Name:          c.Name,
		PlannedAmount: c.PlannedAmount.InexactFloat64(),
		ActualAmount:  c.ActualAmount.InexactFloat64(),
		IsPaid:        c.IsPaid,
	}
}

func (t Transaction) ToResponse() TransactionResponse {
	return TransactionResponse{
		ID:         t.ID,
		PeriodID:   t.PeriodID,
		CategoryID: t.CategoryID,
		Date:       t.Date,
		Amount:     t.Amount.InexactFloat64(),
		Notes:      t.Notes,
	}
}

func (d PeriodData) ToResponse() PeriodDataResponse {
	resp := PeriodDataResponse{
		Period:       d.Period.ToResponse(),
		Categories:   make([]CategoryResponse, len(d.Categories)),
		Transactions: make([]TransactionResponse, len(d.Transactions)),
	}
	for i, c := range d.Categories {
		resp.Categories[i] = c.ToResponse()
	}
	for i, t := range d.Transactions {
		resp.Transactions[i] = t.ToResponse()
	}
	return resp
}

// ToSummaryResponse renders s for period. Category actual amounts are the
// resolved ones.
func ToSummaryResponse(period Period, s Summary) SummaryResponse {
	resp := SummaryResponse{
		Period:          period.ToResponse(),
		Totals:          make([]TypeTotalsResponse, len(s.Totals)),
		ActualIncome:    s.ActualIncome.InexactFloat64(),
		ActualExpenses:  s.ActualExpenses.InexactFloat64(),
		ActualMoneyLeft: s.ActualMoneyLeft.InexactFloat64(),
		PlannedIncome:   s.PlannedIncome.InexactFloat64(),
		PlannedExpenses: s.PlannedExpenses.InexactFloat64(),
		BudgetLeft:      s.BudgetLeft.InexactFloat64(),
	}
	for i, tt := range s.Totals {
		cats := make([]CategoryResponse, len(tt.Categories))
		for j, ac := range tt.Categories {
			cr := ac.Category.ToResponse()
			cr.ActualAmount = ac.ResolvedActual.InexactFloat64()
			cats[j] = cr
		}
		resp.Totals[i] = TypeTotalsResponse{
			Type:       string(tt.Type),
			Planned:    tt.Planned.InexactFloat64(),
			Actual:     tt.Actual.InexactFloat64(),
			Categories: cats,
		}
	}
	return resp
}

func optionalAmount(v *float64, current decimal.Decimal) decimal.Decimal {
	if v == nil {
		return current
	}
	return Amount(*v)
}
