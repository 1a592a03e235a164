// Package metrics exposes Prometheus collectors for the relay client and
// the settlement service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RelaySubmits counts relay submit calls by relay chain id and result.
	RelaySubmits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "intentlib_relay_submits_total",
		Help: "The total number of relay submit calls",
	}, []string{"chain_id", "result"})

	// RelayPolls counts relay status polls by observed packet status.
	RelayPolls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "intentlib_relay_polls_total",
		Help: "The total number of relay status polls",
	}, []string{"chain_id", "status"})

	// RelayWaitDuration observes how long waiting for a terminal packet took.
	RelayWaitDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "intentlib_relay_wait_seconds",
		Help:    "Time spent waiting for a terminal relay packet",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	}, []string{"chain_id"})

	// SettlementOutcomes counts terminal settlement states by source chain.
	SettlementOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "intentlib_settlement_outcomes_total",
		Help: "The total number of settled intents by terminal state",
	}, []string{"src_chain", "state"})

	// IntentsInFlight tracks intents currently between BUILT and a terminal state.
	IntentsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "intentlib_intents_in_flight",
		Help: "The number of intents currently being settled",
	})
)
