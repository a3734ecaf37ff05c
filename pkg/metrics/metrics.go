// Package metrics exposes Prometheus collectors for SDK operations. A
// Recorder is created unregistered; callers decide where it is exported.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/ugdesmond/Wallet-SDK/pkg/model"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	// OutcomeUnsupported marks requests rejected for an unknown network.
	OutcomeUnsupported = "unsupported"
)

// Recorder counts operations and their latency, labelled by network and operation.
type Recorder struct {
	OperationsTotal   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
}

func New() *Recorder {
	return &Recorder{
		OperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wallet_sdk_operations_total",
				Help: "Total number of SDK operations by outcome.",
			},
			[]string{"network", "operation", "outcome"},
		),
		OperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wallet_sdk_operation_duration_seconds",
				Help:    "SDK operation latency distributions.",
				Buckets: []float64{0.05, 0.1, 0.3, 0.5, 1.0, 2.0, 5.0, 10.0},
			},
			[]string{"network", "operation"},
		),
	}
}

// Register adds both collectors to reg.
func (r *Recorder) Register(reg prometheus.Registerer) error {
	if err := reg.Register(r.OperationsTotal); err != nil {
		return err
	}
	return reg.Register(r.OperationDuration)
}

// Observe records one finished operation that started at start.
func (r *Recorder) Observe(network, operation string, start time.Time, err error) {
	if r == nil {
		return
	}
	r.OperationsTotal.WithLabelValues(network, operation, Outcome(err)).Inc()
	r.OperationDuration.WithLabelValues(network, operation).Observe(time.Since(start).Seconds())
}

// Outcome maps an operation error to its label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, model.ErrNetworkNotSupported):
		return OutcomeUnsupported
	default:
		return OutcomeError
	}
}
