// Package metrics holds the Prometheus collectors of the tracker.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is safe to use as a nil pointer; every recorder is then a no-op.
type Metrics struct {
	ChecksTotal           *prometheus.CounterVec
	SessionsTotal         *prometheus.CounterVec
	ProbeMissesTotal      prometheus.Counter
	AppendErrorsTotal     prometheus.Counter
	MalformedRecordsTotal prometheus.Counter
	SnapshotsTotal        *prometheus.CounterVec

	registry *prometheus.Registry
}

func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		ChecksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zetatrack_detector_checks_total",
				Help: "Detector checks by trigger.",
			},
			[]string{"trigger"},
		),
		SessionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zetatrack_sessions_ended_total",
				Help: "Finished sessions by end reason.",
			},
			[]string{"reason"},
		),
		ProbeMissesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "zetatrack_probe_misses_total",
			Help: "Checks where the surface could not be read.",
		}),
		AppendErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "zetatrack_ledger_append_errors_total",
			Help: "Ledger appends that failed.",
		}),
		MalformedRecordsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "zetatrack_ledger_malformed_records_total",
			Help: "Stored records skipped while reading the ledger.",
		}),
		SnapshotsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zetatrack_snapshots_received_total",
				Help: "Pushed snapshots by outcome.",
			},
			[]string{"status"},
		),
		registry: reg,
	}

	reg.MustRegister(m.ChecksTotal)
	reg.MustRegister(m.SessionsTotal)
	reg.MustRegister(m.ProbeMissesTotal)
	reg.MustRegister(m.AppendErrorsTotal)
	reg.MustRegister(m.MalformedRecordsTotal)
	reg.MustRegister(m.SnapshotsTotal)

	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordCheck(trigger string) {
	if m == nil {
		return
	}
	m.ChecksTotal.WithLabelValues(trigger).Inc()
}

func (m *Metrics) RecordSession(reason string) {
	if m == nil {
		return
	}
	m.SessionsTotal.WithLabelValues(reason).Inc()
}

func (m *Metrics) RecordProbeMiss() {
	if m == nil {
		return
	}
	m.ProbeMissesTotal.Inc()
}

func (m *Metrics) RecordAppendError() {
	if m == nil {
		return
	}
	m.AppendErrorsTotal.Inc()
}

func (m *Metrics) RecordMalformed(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.MalformedRecordsTotal.Add(float64(n))
}

func (m *Metrics) RecordSnapshot(status string) {
	if m == nil {
		return
	}
	m.SnapshotsTotal.WithLabelValues(status).Inc()
}
