package budget

import "github.com/shopspring/decimal"

// AnnotatedCategory is a category paired with the actual amount the
// aggregator resolved for it.
type AnnotatedCategory struct {
	Category
	ResolvedActual decimal.Decimal
}

// TypeTotals aggregates every category of one type.
type TypeTotals struct {
	Type       CategoryType
	Planned    decimal.Decimal
	Actual     decimal.Decimal
	Categories []AnnotatedCategory
}

// Summary is the planned-versus-actual picture of a period.
type Summary struct {
	Totals []TypeTotals

	ActualIncome    decimal.Decimal
	ActualExpenses  decimal.Decimal
	ActualMoneyLeft decimal.Decimal

	PlannedIncome   decimal.Decimal
	PlannedExpenses decimal.Decimal
	BudgetLeft      decimal.Decimal
}

// Of returns the totals for t, or empty totals if t was not aggregated.
func (s Summary) Of(t CategoryType) TypeTotals {
	for _, tt := range s.Totals {
		if tt.Type == t {
			return tt
		}
	}
	return TypeTotals{Type: t, Planned: decimal.Zero, Actual: decimal.Zero}
}

// ActualForExpenseCategory sums the transactions booked against category.
// Transactions of other categories are ignored; no matches yield zero.
func ActualForExpenseCategory(category Category, transactions []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transactions {
		if t.CategoryID == category.ID {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// CategoryTotals filters categories to t, keeping their order, and resolves
// each actual amount. Expense actuals always come from transactions, even
// when the category carries a stored actual amount; every other type uses
// the stored amount and never looks at transactions.
func CategoryTotals(categories []Category, transactions []Transaction, t CategoryType) TypeTotals {
	totals := TypeTotals{
		Type:       t,
		Planned:    decimal.Zero,
		Actual:     decimal.Zero,
		Categories: []AnnotatedCategory{},
	}

	for _, c := range categories {
		if c.Type != t {
			continue
		}

		actual := c.ActualAmount
		if t.DerivesActual() {
			actual = ActualForExpenseCategory(c, transactions)
		}

		totals.Planned = totals.Planned.Add(c.PlannedAmount)
		totals.Actual = totals.Actual.Add(actual)
		totals.Categories = append(totals.Categories, AnnotatedCategory{
			Category:       c,
			ResolvedActual: actual,
		})
	}

	return totals
}

// ComputeSummary aggregates a period snapshot. Income is set against the
// four spending types (expense, bills, debt, savings). Negative remainders
// are returned as is.
func ComputeSummary(categories []Category, transactions []Transaction) Summary {
	s := Summary{
		Totals:          make([]TypeTotals, 0, len(SummaryTypes)),
		ActualExpenses:  decimal.Zero,
		PlannedExpenses: decimal.Zero,
	}

	for _, t := range SummaryTypes {
		totals := CategoryTotals(categories, transactions, t)
		s.Totals = append(s.Totals, totals)

		if t == TypeIncome {
			s.ActualIncome = totals.Actual
			s.PlannedIncome = totals.Planned
			continue
		}
		s.ActualExpenses = s.ActualExpenses.Add(totals.Actual)
		s.PlannedExpenses = s.PlannedExpenses.Add(totals.Planned)
	}

	s.ActualMoneyLeft = s.ActualIncome.Sub(s.ActualExpenses)
	s.BudgetLeft = s.PlannedIncome.Sub(s.PlannedExpenses)
	return s
}
