package sheet

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/heartmarshall/dndsheet/internal/domain"
)

var (
	mutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dndsheet_mutations_total",
		Help: "Store mutations by operation and result",
	}, []string{"op", "result"})

	persistDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dndsheet_persist_duration_seconds",
		Help:    "Time spent writing the state snapshot",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	})

	persistFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dndsheet_persist_failures_total",
		Help: "State snapshot writes that failed",
	})
)

func observePersist(d time.Duration, err error) {
	persistDuration.Observe(d.Seconds())
	if err != nil {
		persistFailures.Inc()
	}
}

// observe records the outcome of op and passes err through.
func observe(op string, err error) error {
	mutationsTotal.WithLabelValues(op, resultLabel(err)).Inc()
	return err
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	case errors.Is(err, domain.ErrAlreadyExists):
		return "conflict"
	default:
		return "error"
	}
}
