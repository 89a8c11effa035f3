package budget_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/frahmantamala/portfolio/internal/budget"
	"github.com/frahmantamala/portfolio/internal/core/events"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

var _ = Describe("Budget Metrics", func() {
	var (
		registry *prometheus.Registry
		metrics  *budget.Metrics
	)

	BeforeEach(func() {
		registry = prometheus.NewRegistry()
		metrics = budget.NewMetrics(registry)
	})

	It("should export per-type totals and remainders", func() {
		categories := []budget.Category{
			{ID: 1, Type: budget.TypeIncome, PlannedAmount: dec("3000"), ActualAmount: dec("2900")},
			{ID: 2, Type: budget.TypeBills, PlannedAmount: dec("1000"), ActualAmount: dec("1000")},
		}
		period := budget.Period{ID: 1, Month: "March", Year: 2025}

		metrics.ObserveSummary(period, budget.ComputeSummary(categories, nil))

		count, err := testutil.GatherAndCount(registry, "portfolio_budget_planned_amount")
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(5))

		families, err := registry.Gather()
		Expect(err).NotTo(HaveOccurred())
		values := map[string]float64{}
		for _, family := range families {
			if family.GetName() != "portfolio_budget_remaining_amount" {
				continue
			}
			for _, m := range family.GetMetric() {
				for _, label := range m.GetLabel() {
					if label.GetName() == "kind" {
						values[label.GetValue()] = m.GetGauge().GetValue()
					}
				}
			}
		}
		Expect(values).To(HaveKeyWithValue("actual", 1900.0))
		Expect(values).To(HaveKeyWithValue("planned", 2000.0))
	})

	It("should refresh a period summary when a budget event arrives", func() {
		repo := newMockBudgetRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := budget.NewService(repo, nil, logger, budget.WithRecorder(metrics))

		p, err := service.GetOrCreatePeriod(context.Background(), budget.PeriodDTO{Month: "May", Year: 2025})
		Expect(err).NotTo(HaveOccurred())

		handler := budget.RefreshOnChange(service)
		Expect(handler(context.Background(), events.NewBudgetChangedEvent(events.EventTypeCategoryAdded, p.ID, 1))).To(Succeed())

		Expect(counterValue(registry, "portfolio_budget_summaries_computed_total")).To(Equal(1.0))
	})
})

func counterValue(registry *prometheus.Registry, name string) float64 {
	families, err := registry.Gather()
	Expect(err).NotTo(HaveOccurred())
	for _, family := range families {
		if family.GetName() == name {
			return family.GetMetric()[0].GetCounter().GetValue()
		}
	}
	return 0
}
