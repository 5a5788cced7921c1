// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-slip39.
//
// go-slip39 is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

// Package metrics provides Prometheus instrumentation for share operations.
//
// The CLI is short-lived, so nothing is served over HTTP. When asked to, it
// writes the registry to a node_exporter textfile collector file after the
// command finishes.
package metrics

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// Namespace is the Prometheus namespace for all metrics
	Namespace = "slip39"

	// Label names
	LabelOperation = "operation"
	LabelStatus    = "status"
	LabelErrorType = "error_type"

	// Status values
	StatusSuccess = "success"
	StatusError   = "error"

	// Operation names
	OpGenerate = "generate"
	OpSplit    = "split"
	OpCombine  = "combine"
	OpInspect  = "inspect"
)

var (
	// Registry holds every metric of this package. It is separate from the
	// default registry so a textfile only contains share operation metrics.
	Registry = prometheus.NewRegistry()

	factory = promauto.With(Registry)

	// OperationsTotal counts operations by name and status.
	OperationsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "operations_total",
			Help:      "Total number of share operations by type and status",
		},
		[]string{LabelOperation, LabelStatus},
	)

	// OperationDuration tracks operation latency in seconds. Most of it is
	// the PBKDF2 work of the share encryption, which doubles per iteration
	// exponent step.
	OperationDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of share operations in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{LabelOperation},
	)

	// ErrorsTotal counts failures by operation and error kind.
	ErrorsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "errors_total",
			Help:      "Total number of errors by operation and error type",
		},
		[]string{LabelOperation, LabelErrorType},
	)

	// SharesTotal counts mnemonics produced by splits or consumed by combines.
	SharesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "shares_total",
			Help:      "Total number of share mnemonics produced or consumed",
		},
		[]string{LabelOperation},
	)

	// enabled tracks whether metrics collection is enabled
	enabled atomic.Bool
)

func init() {
	enabled.Store(true)
}

// RecordOperation records an operation that started at start. A nil err
// counts as success. Otherwise errorType labels the failure.
//
// Example:
//
//	start := time.Now()
//	ms, err := slip39.Combine(mnemonics, passphrase)
//	metrics.RecordOperation(metrics.OpCombine, start, err, slip39.KindOf(err).String())
func RecordOperation(operation string, start time.Time, err error, errorType string) {
	if !enabled.Load() {
		return
	}
	status := StatusSuccess
	if err != nil {
		status = StatusError
		ErrorsTotal.WithLabelValues(operation, errorType).Inc()
	}
	OperationsTotal.WithLabelValues(operation, status).Inc()
	OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// RecordShares adds n to the share counter of an operation.
func RecordShares(operation string, n int) {
	if !enabled.Load() || n <= 0 {
		return
	}
	SharesTotal.WithLabelValues(operation).Add(float64(n))
}

// WriteTextfile writes the registry in the Prometheus text format to path,
// atomically, for the node_exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}

// Enable enables metrics collection.
func Enable() {
	enabled.Store(true)
}

// Disable disables metrics collection.
func Disable() {
	enabled.Store(false)
}

// IsEnabled returns whether metrics collection is currently enabled.
func IsEnabled() bool {
	return enabled.Load()
}
