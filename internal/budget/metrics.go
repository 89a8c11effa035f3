package budget

import (
	"context"
	"strconv"

	"github.com/frahmantamala/portfolio/internal/core/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exports the latest summary of every period that was aggregated.
type Metrics struct {
	planned   *prometheus.GaugeVec
	actual    *prometheus.GaugeVec
	remaining *prometheus.GaugeVec
	computed  prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		planned: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "portfolio",
			Subsystem: "budget",
			Name:      "planned_amount",
			Help:      "Planned amount per category type for a period.",
		}, []string{"month", "year", "type"}),
		actual: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "portfolio",
			Subsystem: "budget",
			Name:      "actual_amount",
			Help:      "Actual amount per category type for a period.",
		}, []string{"month", "year", "type"}),
		remaining: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "portfolio",
			Subsystem: "budget",
			Name:      "remaining_amount",
			Help:      "Money left (actual) and budget left (planned) for a period.",
		}, []string{"month", "year", "kind"}),
		computed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "portfolio",
			Subsystem: "budget",
			Name:      "summaries_computed_total",
			Help:      "Number of period summaries computed.",
		}),
	}
}

func (m *Metrics) ObserveSummary(period Period, summary Summary) {
	year := strconv.Itoa(period.Year)
	for _, tt := range summary.Totals {
		m.planned.WithLabelValues(period.Month, year, string(tt.Type)).Set(tt.Planned.InexactFloat64())
		m.actual.WithLabelValues(period.Month, year, string(tt.Type)).Set(tt.Actual.InexactFloat64())
	}
	m.remaining.WithLabelValues(period.Month, year, "actual").Set(summary.ActualMoneyLeft.InexactFloat64())
	m.remaining.WithLabelValues(period.Month, year, "planned").Set(summary.BudgetLeft.InexactFloat64())
	m.computed.Inc()
}

// RefreshOnChange returns an event handler that recomputes the summary of the
// period a budget event refers to, so recorders never serve stale figures.
func RefreshOnChange(s *Service) events.Handler {
	return func(ctx context.Context, event events.Event) error {
		changed, ok := event.(*events.BudgetChangedEvent)
		if !ok {
			return nil
		}
		_, _, err := s.SummaryByPeriodID(ctx, changed.PeriodID)
		return err
	}
}
