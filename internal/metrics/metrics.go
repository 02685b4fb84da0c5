// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

// Package metrics defines the Prometheus instrumentation the
// orchestrator updates as sentences move through the pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics for the reasoning pipeline.
var (
	// assertsTotal counts accepted Assert calls by outcome.
	assertsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lojban_asserts_total",
		Help: "Total number of assert operations by outcome",
	}, []string{"outcome"})

	// queriesTotal counts Query calls by verdict.
	queriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lojban_queries_total",
		Help: "Total number of query operations by verdict",
	}, []string{"verdict"})

	// saturationSteps observes rule-firing steps consumed per
	// saturation run, before a fixpoint or the step budget is reached.
	saturationSteps = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lojban_saturation_steps",
		Help:    "Rule-firing steps consumed per saturation run",
		Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250, 500},
	})

	// parseDiagnosticsTotal counts parse/lex diagnostics by code.
	parseDiagnosticsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lojban_parse_diagnostics_total",
		Help: "Total number of tokenizer/parser diagnostics by code",
	}, []string{"code"})

	// stageDuration observes wall time spent in each pipeline stage.
	stageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lojban_stage_duration_seconds",
		Help:    "Time spent in each pipeline stage",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})
)

// RecordAssert records the outcome of one Assert call ("ok" or
// "diagnostic").
func RecordAssert(outcome string) {
	assertsTotal.WithLabelValues(outcome).Inc()
}

// RecordQuery records a Query call's verdict string ("entailed",
// "not-entailed", "undetermined").
func RecordQuery(verdict string) {
	queriesTotal.WithLabelValues(verdict).Inc()
}

// ObserveSaturationSteps records how many rule-firing steps one
// saturation run consumed.
func ObserveSaturationSteps(steps int) {
	saturationSteps.Observe(float64(steps))
}

// RecordParseDiagnostic records one tokenizer/parser diagnostic by its
// code.
func RecordParseDiagnostic(code string) {
	parseDiagnosticsTotal.WithLabelValues(code).Inc()
}

// ObserveStageDuration records how long a named pipeline stage took.
func ObserveStageDuration(stage string, d time.Duration) {
	stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// Stage names used as the "stage" label across ObserveStageDuration
// calls.
const (
	StageTokenize  = "tokenize"
	StageParse     = "parse"
	StageSemantics = "semantics"
	StageReasoning = "reasoning"
)
