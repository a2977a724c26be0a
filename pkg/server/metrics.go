package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	queryCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mtstore_queries_total",
		Help: "The total number of catalog queries",
	})
	queryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mtstore_query_duration_seconds",
		Help:    "Time spent answering catalog queries",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
	})
	cacheResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mtstore_query_cache_total",
		Help: "Query cache lookups by result",
	}, []string{"result"})
	browseActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mtstore_browse_actions_total",
		Help: "Browse actions applied by kind",
	}, []string{"kind"})
	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mtstore_browse_sessions",
		Help: "Browse sessions held in memory",
	})
	catalogChanges = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mtstore_catalog_changes_total",
		Help: "Catalog changes applied from the admin api or the broker",
	})
)
