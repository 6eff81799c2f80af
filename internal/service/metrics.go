package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	suggestionsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dictionary_suggestions_submitted_total",
			Help: "Total number of accepted suggestion submissions",
		},
		[]string{"type"},
	)

	reviewDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dictionary_review_decisions_total",
			Help: "Total number of committed review decisions",
		},
		[]string{"decision", "type"},
	)
)
