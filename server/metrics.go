package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	quotesServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "station",
		Subsystem: "server",
		Name:      "quotes_served_total",
		Help:      "Swap quotes served, by selected venue.",
	}, []string{"venue"})

	quoteFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "station",
		Subsystem: "server",
		Name:      "quote_failures_total",
		Help:      "Quote requests that produced no venue, by reason.",
	}, []string{"reason"})

	taxQueries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "station",
		Subsystem: "server",
		Name:      "tax_queries_total",
		Help:      "Tax parameter lookups served.",
	})

	feeQueries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "station",
		Subsystem: "server",
		Name:      "fee_queries_total",
		Help:      "Fee estimations served.",
	})
)
