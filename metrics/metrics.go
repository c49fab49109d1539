// Package metrics exposes the Prometheus collectors for the assistant.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TasksTotal counts orchestrations by task type and outcome
	// (success, validation_error, service_error).
	TasksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "argumate_tasks_total",
		Help: "Task orchestrations by task type and outcome.",
	}, []string{"task", "outcome"})

	// TaskDuration observes end-to-end orchestration latency. The LLM call
	// dominates, so buckets stretch well past typical HTTP latencies.
	TaskDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "argumate_task_duration_seconds",
		Help:    "End-to-end task orchestration duration.",
		Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"task"})

	// LLMRequestsTotal counts outbound completion calls by provider and
	// outcome (success, config_error, transport_error, empty_response).
	LLMRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "argumate_llm_requests_total",
		Help: "Outbound LLM completion calls by provider and outcome.",
	}, []string{"provider", "outcome"})

	// RecordFailuresTotal counts swallowed interaction-record write
	// failures. The only user-visible signal for these is logs + this.
	RecordFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "argumate_record_failures_total",
		Help: "Interaction record writes that failed and were swallowed.",
	})
)
