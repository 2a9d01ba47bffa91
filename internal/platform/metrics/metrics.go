package metrics

import (
	"net/http"
	"time"

	"github.com/SscSPs/farm_ledger/internal/apperrors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Ledger names used as label values.
const (
	LedgerMaterial = "material"
	LedgerBudget   = "budget"
)

// Recorder publishes ledger activity as Prometheus metrics.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	movementsApplied   *prometheus.CounterVec
	expensesRegistered prometheus.Counter
	rejections         *prometheus.CounterVec
	lockWait           *prometheus.HistogramVec
}

// NewRecorder creates the ledger metrics and registers them with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		movementsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "movements_applied_total",
			Help:      "Material movements committed, by movement type.",
		}, []string{"type"}),
		expensesRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "expenses_registered_total",
			Help:      "Expenses committed against project budgets.",
		}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "rejections_total",
			Help:      "Balance changes rejected, by ledger and error kind.",
		}, []string{"ledger", "kind"}),
		lockWait: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ledger",
			Name:      "lock_wait_seconds",
			Help:      "Time spent acquiring the exclusive row lock of a balance.",
			Buckets:   []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"ledger"}),
	}
	reg.MustRegister(r.movementsApplied, r.expensesRegistered, r.rejections, r.lockWait)
	return r
}

// MovementApplied counts a committed movement.
func (r *Recorder) MovementApplied(movementType string) {
	if r == nil {
		return
	}
	r.movementsApplied.WithLabelValues(movementType).Inc()
}

// ExpenseRegistered counts a committed expense.
func (r *Recorder) ExpenseRegistered() {
	if r == nil {
		return
	}
	r.expensesRegistered.Inc()
}

// Rejected counts a failed change on ledger, labelled with the error kind.
func (r *Recorder) Rejected(ledger string, err error) {
	if r == nil || err == nil {
		return
	}
	r.rejections.WithLabelValues(ledger, apperrors.Kind(err)).Inc()
}

// ObserveLockWait records how long acquiring a row lock took.
func (r *Recorder) ObserveLockWait(ledger string, d time.Duration) {
	if r == nil {
		return
	}
	r.lockWait.WithLabelValues(ledger).Observe(d.Seconds())
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
