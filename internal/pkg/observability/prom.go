package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "rosterbackend"
)

var (
	SnapshotSaves = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "snapshot", "saves_total"),
		Help: "Snapshot saves by outcome: created, updated, or reissued when the supplied id was unknown",
	}, []string{"outcome"})
	SnapshotRecords = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "snapshot", "records"),
		Help:    "Number of normalized character records per saved snapshot",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})
	ImplausiblePayloads = promauto.NewCounter(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "snapshot", "implausible_payloads_total"),
		Help: "Save payloads without any element carrying both a code and level info",
	})
	ShortIDIssueAttempts = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "shortid", "issue_attempts"),
		Help:    "Number of candidates tried before a free identifier was found",
		Buckets: prometheus.LinearBuckets(1, 1, 10),
	})
	ShortIDFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "shortid", "fallbacks_total"),
		Help: "Identifiers issued through the time derived fallback",
	})
	SweepDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "sweep", "deleted_total"),
		Help: "Expired snapshots deleted by the sweep",
	})
	SweepDuration = promauto.NewGauge(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(ServiceName, "sweep", "duration_seconds"),
		Help: "Duration of the last expiry sweep in seconds",
	})
)
