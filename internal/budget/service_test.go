package budget_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	appErrors "github.com/frahmantamala/portfolio/internal"
	"github.com/frahmantamala/portfolio/internal/budget"
	budgetDatamodel "github.com/frahmantamala/portfolio/internal/core/datamodel/budget"
	"github.com/frahmantamala/portfolio/internal/core/events"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// mockBudgetRepository keeps budget records in memory.
type mockBudgetRepository struct {
	mu           sync.Mutex
	periods      map[int64]*budgetDatamodel.Period
	categories   map[int64]*budgetDatamodel.Category
	transactions map[int64]*budgetDatamodel.Transaction
	nextID       int64
	listError    error
	createError  error
	lastCascade  bool
}

func newMockBudgetRepository() *mockBudgetRepository {
	return &mockBudgetRepository{
		periods:      make(map[int64]*budgetDatamodel.Period),
		categories:   make(map[int64]*budgetDatamodel.Category),
		transactions: make(map[int64]*budgetDatamodel.Transaction),
		nextID:       1,
	}
}

func (m *mockBudgetRepository) id() int64 {
	id := m.nextID
	m.nextID++
	return id
}

func (m *mockBudgetRepository) GetOrCreatePeriod(ctx context.Context, month string, year int, defaults []*budgetDatamodel.Category) (*budgetDatamodel.Period, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.periods {
		if p.Month == month && p.Year == year {
			return p, false, nil
		}
	}
	if len(defaults) > 0 && m.createError != nil {
		return nil, false, m.createError
	}
	p := &budgetDatamodel.Period{ID: m.id(), Month: month, Year: year, CreatedAt: time.Now()}
	m.periods[p.ID] = p
	for _, c := range defaults {
		c.ID = m.id()
		c.PeriodID = p.ID
		cp := *c
		m.categories[c.ID] = &cp
	}
	return p, true, nil
}

func (m *mockBudgetRepository) FindPeriod(ctx context.Context, month string, year int) (*budgetDatamodel.Period, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.periods {
		if p.Month == month && p.Year == year {
			return p, nil
		}
	}
	return nil, nil
}

func (m *mockBudgetRepository) GetPeriodByID(ctx context.Context, id int64) (*budgetDatamodel.Period, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.periods[id], nil
}

func (m *mockBudgetRepository) ListCategories(ctx context.Context, periodID int64) ([]*budgetDatamodel.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listError != nil {
		return nil, m.listError
	}
	var result []*budgetDatamodel.Category
	for _, c := range m.categories {
		if c.PeriodID == periodID {
			cp := *c
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockBudgetRepository) GetCategory(ctx context.Context, id int64) (*budgetDatamodel.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *mockBudgetRepository) CreateCategory(ctx context.Context, c *budgetDatamodel.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createError != nil {
		return m.createError
	}
	c.ID = m.id()
	cp := *c
	m.categories[c.ID] = &cp
	return nil
}

func (m *mockBudgetRepository) UpdateCategory(ctx context.Context, c *budgetDatamodel.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.categories[c.ID] = &cp
	return nil
}

func (m *mockBudgetRepository) DeleteCategory(ctx context.Context, id int64, cascade bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastCascade = cascade
	delete(m.categories, id)
	if cascade {
		for tid, t := range m.transactions {
			if t.CategoryID == id {
				delete(m.transactions, tid)
			}
		}
	}
	return nil
}

func (m *mockBudgetRepository) ListTransactions(ctx context.Context, periodID int64) ([]*budgetDatamodel.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*budgetDatamodel.Transaction
	for _, t := range m.transactions {
		if t.PeriodID == periodID {
			cp := *t
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockBudgetRepository) GetTransaction(ctx context.Context, id int64) (*budgetDatamodel.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.transactions[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (m *mockBudgetRepository) CreateTransaction(ctx context.Context, t *budgetDatamodel.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createError != nil {
		return m.createError
	}
	t.ID = m.id()
	cp := *t
	m.transactions[t.ID] = &cp
	return nil
}

func (m *mockBudgetRepository) UpdateTransaction(ctx context.Context, t *budgetDatamodel.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *t
	m.transactions[t.ID] = &cp
	return nil
}

func (m *mockBudgetRepository) DeleteTransaction(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.transactions, id)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []*events.BudgetChangedEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event.(*events.BudgetChangedEvent))
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	result := make([]string, len(p.events))
	for i, e := range p.events {
		result[i] = e.EventType()
	}
	return result
}

type recordingRecorder struct {
	periods []budget.Period
}

func (r *recordingRecorder) ObserveSummary(period budget.Period, summary budget.Summary) {
	r.periods = append(r.periods, period)
}

func ptr[T any](v T) *T {
	return &v
}

var _ = Describe("Budget Service", func() {
	var (
		ctx       context.Context
		repo      *mockBudgetRepository
		publisher *recordingPublisher
		recorder  *recordingRecorder
		service   *budget.Service
		logger    *slog.Logger
		today     time.Time
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = newMockBudgetRepository()
		publisher = &recordingPublisher{}
		recorder = &recordingRecorder{}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		today = time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC)
		service = budget.NewService(repo, publisher, logger,
			budget.WithRecorder(recorder),
			budget.WithClock(func() time.Time { return today }),
		)
	})

	createPeriod := func() *budget.Period {
		p, err := service.GetOrCreatePeriod(ctx, budget.PeriodDTO{Month: "March", Year: 2025})
		Expect(err).NotTo(HaveOccurred())
		return p
	}

	Describe("GetOrCreatePeriod", func() {
		It("should create a period once and return it afterwards", func() {
			first, err := service.GetOrCreatePeriod(ctx, budget.PeriodDTO{Month: "march", Year: 2025})
			Expect(err).NotTo(HaveOccurred())
			Expect(first.Month).To(Equal("March"))

			second, err := service.GetOrCreatePeriod(ctx, budget.PeriodDTO{Month: "MARCH", Year: 2025})
			Expect(err).NotTo(HaveOccurred())
			Expect(second.ID).To(Equal(first.ID))
			Expect(publisher.types()).To(Equal([]string{events.EventTypePeriodCreated}))
		})

		It("should reject unknown months and out of range years", func() {
			_, err := service.GetOrCreatePeriod(ctx, budget.PeriodDTO{Month: "Smarch", Year: 2025})
			Expect(err).To(HaveOccurred())

			_, err = service.GetOrCreatePeriod(ctx, budget.PeriodDTO{Month: "March", Year: 1800})
			appErr, ok := appErrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(appErrors.ErrorTypeValidation))
		})

		It("should seed default categories into new periods only", func() {
			service = budget.NewService(repo, publisher, logger, budget.WithDefaultCategories([]budget.DefaultCategory{
				{Type: budget.TypeIncome, Name: "Salary", PlannedAmount: budget.Amount(5000)},
				{Type: budget.TypeBills, Name: "Rent", PlannedAmount: budget.Amount(1500)},
			}))

			p := createPeriod()
			_ = createPeriod()

			data, err := service.GetPeriodData(ctx, "March", 2025)
			Expect(err).NotTo(HaveOccurred())
			Expect(data.Period.ID).To(Equal(p.ID))
			Expect(data.Categories).To(HaveLen(2))
			Expect(data.Categories[0].Name).To(Equal("Salary"))
			Expect(data.Categories[1].ActualAmount.IsZero()).To(BeTrue())
		})

		It("should seed defaults on a retry after a failed first attempt", func() {
			service = budget.NewService(repo, publisher, logger, budget.WithDefaultCategories([]budget.DefaultCategory{
				{Type: budget.TypeIncome, Name: "Salary", PlannedAmount: budget.Amount(5000)},
			}))

			repo.createError = errors.New("disk full")
			_, err := service.GetOrCreatePeriod(ctx, budget.PeriodDTO{Month: "May", Year: 2025})
			Expect(err).To(HaveOccurred())

			repo.createError = nil
			p, err := service.GetOrCreatePeriod(ctx, budget.PeriodDTO{Month: "May", Year: 2025})
			Expect(err).NotTo(HaveOccurred())

			data, err := service.GetPeriodData(ctx, "May", 2025)
			Expect(err).NotTo(HaveOccurred())
			Expect(data.Period.ID).To(Equal(p.ID))
			Expect(data.Categories).To(HaveLen(1))
			Expect(data.Categories[0].Name).To(Equal("Salary"))
		})
	})

	Describe("GetPeriodData", func() {
		It("should return not found for a missing period", func() {
			_, err := service.GetPeriodData(ctx, "April", 2025)
			Expect(errors.Is(err, budget.ErrPeriodNotFound)).To(BeTrue())
		})

		It("should wrap repository failures as internal errors", func() {
			createPeriod()
			repo.listError = errors.New("connection reset")

			_, err := service.GetPeriodData(ctx, "March", 2025)
			appErr, ok := appErrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(appErrors.ErrorTypeInternal))
		})
	})

	Describe("GetSummary", func() {
		It("should aggregate the selected period and record it", func() {
			p := createPeriod()
			income, err := service.AddCategory(ctx, p.ID, budget.CreateCategoryDTO{Type: "income", Name: "Salary", PlannedAmount: 5000})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.UpdateCategory(ctx, income.ID, budget.UpdateCategoryDTO{ActualAmount: ptr(4800.0)})
			Expect(err).NotTo(HaveOccurred())

			groceries, err := service.AddCategory(ctx, p.ID, budget.CreateCategoryDTO{Type: "expense", Name: "Groceries", PlannedAmount: 200})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.AddTransaction(ctx, p.ID, budget.CreateTransactionDTO{CategoryID: groceries.ID, Amount: 50, Date: "2025-03-02"})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.AddTransaction(ctx, p.ID, budget.CreateTransactionDTO{CategoryID: groceries.ID, Amount: 75, Date: "2025-03-09"})
			Expect(err).NotTo(HaveOccurred())

			data, summary, err := service.GetSummary(ctx, "march", 2025)
			Expect(err).NotTo(HaveOccurred())
			Expect(data.Period.ID).To(Equal(p.ID))
			Expect(summary.ActualIncome).To(BeComparableTo(dec("4800")))
			Expect(summary.ActualExpenses).To(BeComparableTo(dec("125")))
			Expect(summary.ActualMoneyLeft).To(BeComparableTo(dec("4675")))
			Expect(summary.BudgetLeft).To(BeComparableTo(dec("4800")))
			Expect(recorder.periods).To(HaveLen(1))
		})

		It("should keep expense actuals derived even after a stored actual is patched", func() {
			p := createPeriod()
			groceries, _ := service.AddCategory(ctx, p.ID, budget.CreateCategoryDTO{Type: "expense", PlannedAmount: 200})
			_, err := service.UpdateCategory(ctx, groceries.ID, budget.UpdateCategoryDTO{ActualAmount: ptr(999.0)})
			Expect(err).NotTo(HaveOccurred())

			_, summary, err := service.SummaryByPeriodID(ctx, p.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Of(budget.TypeExpense).Actual.IsZero()).To(BeTrue())
		})
	})

	Describe("AddCategory", func() {
		It("should start categories unpaid with a zero actual", func() {
			p := createPeriod()
			c, err := service.AddCategory(ctx, p.ID, budget.CreateCategoryDTO{Type: "bills", Name: "Rent", PlannedAmount: 1500})
			Expect(err).NotTo(HaveOccurred())
			Expect(c.ID).To(BeNumerically(">", 0))
			Expect(c.IsPaid).To(BeFalse())
			Expect(c.ActualAmount.IsZero()).To(BeTrue())
			Expect(publisher.types()).To(ContainElement(events.EventTypeCategoryAdded))
		})

		It("should reject unknown types", func() {
			p := createPeriod()
			_, err := service.AddCategory(ctx, p.ID, budget.CreateCategoryDTO{Type: "luxury"})
			Expect(err).To(HaveOccurred())
		})

		It("should fail for a missing period", func() {
			_, err := service.AddCategory(ctx, 404, budget.CreateCategoryDTO{Type: "income"})
			Expect(errors.Is(err, budget.ErrPeriodNotFound)).To(BeTrue())
		})
	})

	Describe("events", func() {
		It("should name the admin who made the change", func() {
			p := createPeriod()
			adminCtx := appErrors.ContextWithSubject(ctx, "owner@example.com")

			_, err := service.AddCategory(adminCtx, p.ID, budget.CreateCategoryDTO{Type: "savings", Name: "Rainy day", PlannedAmount: 100})
			Expect(err).NotTo(HaveOccurred())

			publisher.mu.Lock()
			defer publisher.mu.Unlock()
			Expect(publisher.events).To(HaveLen(2))
			Expect(publisher.events[0].Actor).To(BeEmpty())
			Expect(publisher.events[1].Actor).To(Equal("owner@example.com"))
			Expect(publisher.events[1].Payload()).To(HaveKeyWithValue("actor", "owner@example.com"))
		})
	})

	Describe("UpdateCategory", func() {
		It("should patch only the given fields", func() {
			p := createPeriod()
			c, _ := service.AddCategory(ctx, p.ID, budget.CreateCategoryDTO{Type: "debt", Name: "Car loan", PlannedAmount: 300})

			updated, err := service.UpdateCategory(ctx, c.ID, budget.UpdateCategoryDTO{IsPaid: ptr(true), ActualAmount: ptr(300.0)})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("Car loan"))
			Expect(updated.PlannedAmount).To(BeComparableTo(dec("300")))
			Expect(updated.ActualAmount).To(BeComparableTo(dec("300")))
			Expect(updated.IsPaid).To(BeTrue())
		})

		It("should refuse to mark categories without payments as paid", func() {
			p := createPeriod()
			salary, _ := service.AddCategory(ctx, p.ID, budget.CreateCategoryDTO{Type: "income", Name: "Salary", PlannedAmount: 5000})

			_, err := service.UpdateCategory(ctx, salary.ID, budget.UpdateCategoryDTO{IsPaid: ptr(true)})
			Expect(errors.Is(err, budget.ErrPaymentNotTracked)).To(BeTrue())

			updated, err := service.UpdateCategory(ctx, salary.ID, budget.UpdateCategoryDTO{IsPaid: ptr(false), Name: ptr("Wages")})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("Wages"))
		})

		It("should return not found for unknown categories", func() {
			_, err := service.UpdateCategory(ctx, 77, budget.UpdateCategoryDTO{Name: ptr("x")})
			Expect(errors.Is(err, budget.ErrCategoryNotFound)).To(BeTrue())
		})
	})

	Describe("RemoveCategory", func() {
		var (
			p         *budget.Period
			groceries *budget.Category
		)

		BeforeEach(func() {
			p = createPeriod()
			groceries, _ = service.AddCategory(ctx, p.ID, budget.CreateCategoryDTO{Type: "expense", Name: "Groceries"})
			_, err := service.AddTransaction(ctx, p.ID, budget.CreateTransactionDTO{CategoryID: groceries.ID, Amount: 20})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should keep transactions by default", func() {
			Expect(service.RemoveCategory(ctx, groceries.ID, false)).To(Succeed())

			data, err := service.GetPeriodData(ctx, "March", 2025)
			Expect(err).NotTo(HaveOccurred())
			Expect(data.Categories).To(BeEmpty())
			Expect(data.Transactions).To(HaveLen(1))
			Expect(repo.lastCascade).To(BeFalse())
		})

		It("should remove transactions when cascading", func() {
			Expect(service.RemoveCategory(ctx, groceries.ID, true)).To(Succeed())

			data, err := service.GetPeriodData(ctx, "March", 2025)
			Expect(err).NotTo(HaveOccurred())
			Expect(data.Transactions).To(BeEmpty())
			Expect(publisher.types()).To(ContainElement(events.EventTypeCategoryRemoved))
		})
	})

	Describe("AddTransaction", func() {
		It("should default the date to today", func() {
			p := createPeriod()
			c, _ := service.AddCategory(ctx, p.ID, budget.CreateCategoryDTO{Type: "expense"})

			tx, err := service.AddTransaction(ctx, p.ID, budget.CreateTransactionDTO{CategoryID: c.ID, Amount: 12.5, Notes: ptr("lunch")})
			Expect(err).NotTo(HaveOccurred())
			Expect(tx.Date).To(Equal("2025-03-14"))
			Expect(tx.Notes).To(Equal("lunch"))
			Expect(tx.Amount).To(BeComparableTo(dec("12.5")))
		})

		It("should reject categories of another period", func() {
			march := createPeriod()
			april, err := service.GetOrCreatePeriod(ctx, budget.PeriodDTO{Month: "April", Year: 2025})
			Expect(err).NotTo(HaveOccurred())
			c, _ := service.AddCategory(ctx, april.ID, budget.CreateCategoryDTO{Type: "expense"})

			_, err = service.AddTransaction(ctx, march.ID, budget.CreateTransactionDTO{CategoryID: c.ID, Amount: 5})
			Expect(errors.Is(err, budget.ErrCategoryMismatch)).To(BeTrue())
		})

		It("should reject malformed dates", func() {
			p := createPeriod()
			c, _ := service.AddCategory(ctx, p.ID, budget.CreateCategoryDTO{Type: "expense"})

			_, err := service.AddTransaction(ctx, p.ID, budget.CreateTransactionDTO{CategoryID: c.ID, Amount: 5, Date: "14/03/2025"})
			Expect(err).To(HaveOccurred())
		})

		It("should surface repository failures", func() {
			p := createPeriod()
			c, _ := service.AddCategory(ctx, p.ID, budget.CreateCategoryDTO{Type: "expense"})
			repo.createError = errors.New("disk full")

			_, err := service.AddTransaction(ctx, p.ID, budget.CreateTransactionDTO{CategoryID: c.ID, Amount: 5})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("UpdateTransaction and RemoveTransaction", func() {
		It("should move a transaction between categories of the same period", func() {
			p := createPeriod()
			food, _ := service.AddCategory(ctx, p.ID, budget.CreateCategoryDTO{Type: "expense", Name: "Food"})
			fuel, _ := service.AddCategory(ctx, p.ID, budget.CreateCategoryDTO{Type: "expense", Name: "Fuel"})
			tx, _ := service.AddTransaction(ctx, p.ID, budget.CreateTransactionDTO{CategoryID: food.ID, Amount: 40})

			updated, err := service.UpdateTransaction(ctx, tx.ID, budget.UpdateTransactionDTO{CategoryID: ptr(fuel.ID), Amount: ptr(45.0)})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.CategoryID).To(Equal(fuel.ID))

			_, summary, err := service.SummaryByPeriodID(ctx, p.ID)
			Expect(err).NotTo(HaveOccurred())
			expense := summary.Of(budget.TypeExpense)
			Expect(expense.Categories[0].ResolvedActual.IsZero()).To(BeTrue())
			Expect(expense.Categories[1].ResolvedActual).To(BeComparableTo(dec("45")))
		})

		It("should remove a transaction", func() {
			p := createPeriod()
			c, _ := service.AddCategory(ctx, p.ID, budget.CreateCategoryDTO{Type: "expense"})
			tx, _ := service.AddTransaction(ctx, p.ID, budget.CreateTransactionDTO{CategoryID: c.ID, Amount: 40})

			Expect(service.RemoveTransaction(ctx, tx.ID)).To(Succeed())
			err := service.RemoveTransaction(ctx, tx.ID)
			Expect(errors.Is(err, budget.ErrTransactionNotFound)).To(BeTrue())
			Expect(publisher.types()).To(ContainElement(events.EventTypeTransactionRemoved))
		})
	})
})
