package budget_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/frahmantamala/portfolio/internal/budget"
	budgetPostgres "github.com/frahmantamala/portfolio/internal/budget/postgres"
	budgetDatamodel "github.com/frahmantamala/portfolio/internal/core/datamodel/budget"
	"github.com/frahmantamala/portfolio/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Budget Handler Integration", func() {
	var (
		db      *gorm.DB
		router  *chi.Mux
		slogger *slog.Logger
	)

	BeforeEach(func() {
		var err error
		slogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		// every pooled connection to :memory: is a separate database
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)

		err = db.AutoMigrate(&budgetDatamodel.Period{}, &budgetDatamodel.Category{}, &budgetDatamodel.Transaction{})
		Expect(err).NotTo(HaveOccurred())

		repo := budgetPostgres.NewBudgetRepository(db)
		service := budget.NewService(repo, nil, slogger)
		handler := budget.NewHandler(&transport.BaseHandler{Logger: slogger}, service)

		router = chi.NewRouter()
		router.Route("/budget", handler.RegisterRoutes)
	})

	do := func(method, path string, body interface{}) *httptest.ResponseRecorder {
		var reader *bytes.Reader
		if body != nil {
			payload, err := json.Marshal(body)
			Expect(err).NotTo(HaveOccurred())
			reader = bytes.NewReader(payload)
		} else {
			reader = bytes.NewReader(nil)
		}
		req := httptest.NewRequest(method, path, reader)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	decode := func(w *httptest.ResponseRecorder, into interface{}) {
		Expect(json.NewDecoder(w.Body).Decode(into)).To(Succeed())
	}

	It("should build a period and report its summary", func() {
		w := do(http.MethodPost, "/budget/periods", map[string]interface{}{"month": "march", "year": 2025})
		Expect(w.Code).To(Equal(http.StatusOK))
		var period budget.PeriodResponse
		decode(w, &period)
		Expect(period.Month).To(Equal("March"))

		w = do(http.MethodPost, fmt.Sprintf("/budget/periods/%d/categories", period.ID),
			map[string]interface{}{"type": "income", "name": "Salary", "planned_amount": 5000})
		Expect(w.Code).To(Equal(http.StatusCreated))
		var income budget.CategoryResponse
		decode(w, &income)

		w = do(http.MethodPatch, fmt.Sprintf("/budget/categories/%d", income.ID), map[string]interface{}{"actual_amount": 4800})
		Expect(w.Code).To(Equal(http.StatusOK))

		w = do(http.MethodPost, fmt.Sprintf("/budget/periods/%d/categories", period.ID),
			map[string]interface{}{"type": "expense", "name": "Groceries", "planned_amount": 200})
		Expect(w.Code).To(Equal(http.StatusCreated))
		var groceries budget.CategoryResponse
		decode(w, &groceries)

		for _, amount := range []float64{50, 75} {
			w = do(http.MethodPost, fmt.Sprintf("/budget/periods/%d/transactions", period.ID),
				map[string]interface{}{"category_id": groceries.ID, "amount": amount, "date": "2025-03-05"})
			Expect(w.Code).To(Equal(http.StatusCreated))
		}

		w = do(http.MethodGet, "/budget/months/2025/March/summary", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		var summary budget.SummaryResponse
		decode(w, &summary)

		Expect(summary.Period.ID).To(Equal(period.ID))
		Expect(summary.ActualIncome).To(Equal(4800.0))
		Expect(summary.ActualExpenses).To(Equal(125.0))
		Expect(summary.ActualMoneyLeft).To(Equal(4675.0))
		Expect(summary.PlannedIncome).To(Equal(5000.0))
		Expect(summary.PlannedExpenses).To(Equal(200.0))
		Expect(summary.BudgetLeft).To(Equal(4800.0))
		Expect(summary.Totals).To(HaveLen(5))
		Expect(summary.Totals[1].Type).To(Equal("expense"))
		Expect(summary.Totals[1].Categories[0].ActualAmount).To(Equal(125.0))
	})

	It("should list period data", func() {
		w := do(http.MethodPost, "/budget/periods", map[string]interface{}{"month": "May", "year": 2024})
		var period budget.PeriodResponse
		decode(w, &period)
		do(http.MethodPost, fmt.Sprintf("/budget/periods/%d/categories", period.ID),
			map[string]interface{}{"type": "savings", "name": "Emergency fund", "planned_amount": 250})

		w = do(http.MethodGet, "/budget/months/2024/may", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		var data budget.PeriodDataResponse
		decode(w, &data)
		Expect(data.Categories).To(HaveLen(1))
		Expect(data.Categories[0].PlannedAmount).To(Equal(250.0))
		Expect(data.Transactions).To(BeEmpty())
	})

	It("should return 404 for a period that was never created", func() {
		w := do(http.MethodGet, "/budget/months/2025/July/summary", nil)
		Expect(w.Code).To(Equal(http.StatusNotFound))

		var body map[string]map[string]interface{}
		decode(w, &body)
		Expect(body["error"]["code"]).To(Equal("PERIOD_NOT_FOUND"))
	})

	It("should reject invalid input with 400", func() {
		w := do(http.MethodPost, "/budget/periods", map[string]interface{}{"month": "Smarch", "year": 2025})
		Expect(w.Code).To(Equal(http.StatusBadRequest))

		w = do(http.MethodGet, "/budget/months/twenty/March", nil)
		Expect(w.Code).To(Equal(http.StatusBadRequest))

		w = do(http.MethodDelete, "/budget/categories/abc", nil)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should cascade category deletes only on request", func() {
		w := do(http.MethodPost, "/budget/periods", map[string]interface{}{"month": "June", "year": 2025})
		var period budget.PeriodResponse
		decode(w, &period)

		w = do(http.MethodPost, fmt.Sprintf("/budget/periods/%d/categories", period.ID), map[string]interface{}{"type": "expense"})
		var c budget.CategoryResponse
		decode(w, &c)
		do(http.MethodPost, fmt.Sprintf("/budget/periods/%d/transactions", period.ID), map[string]interface{}{"category_id": c.ID, "amount": 9})

		w = do(http.MethodDelete, fmt.Sprintf("/budget/categories/%d?cascade=true", c.ID), nil)
		Expect(w.Code).To(Equal(http.StatusNoContent))

		var count int64
		Expect(db.Model(&budgetDatamodel.Transaction{}).Where("category_id = ?", c.ID).Count(&count).Error).To(Succeed())
		Expect(count).To(BeZero())
	})
})
