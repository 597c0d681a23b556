// Package metrics регистрирует счётчики Prometheus для пайплайна сканирования.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ScansTotal — количество завершённых сканирований по итоговому статусу.
	ScansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "purescan_scans_total",
		Help: "Completed scans by resulting safety status.",
	}, []string{"status"})

	// ScanFailuresTotal — количество неуспешных сканирований.
	ScanFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "purescan_scan_failures_total",
		Help: "Scans aborted by network or parse failures.",
	})

	// ScanDuration — длительность запроса к генеративной модели.
	ScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "purescan_scan_duration_seconds",
		Help:    "Duration of the generative model round trip.",
		Buckets: prometheus.DefBuckets,
	})
)
