// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lojbanesy Contributors

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordAssertIncrementsCounter(t *testing.T) {
	before := testutil.ToFloat64(assertsTotal.WithLabelValues("ok"))
	RecordAssert("ok")
	after := testutil.ToFloat64(assertsTotal.WithLabelValues("ok"))
	assert.Equal(t, before+1, after)
}

func TestRecordQueryIncrementsCounter(t *testing.T) {
	before := testutil.ToFloat64(queriesTotal.WithLabelValues("entailed"))
	RecordQuery("entailed")
	after := testutil.ToFloat64(queriesTotal.WithLabelValues("entailed"))
	assert.Equal(t, before+1, after)
}

func TestObserveSaturationStepsDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() { ObserveSaturationSteps(42) })
}

func TestObserveStageDurationDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() { ObserveStageDuration(StageParse, 5*time.Millisecond) })
}

func TestRecordParseDiagnosticIncrementsCounter(t *testing.T) {
	before := testutil.ToFloat64(parseDiagnosticsTotal.WithLabelValues("LEX_INVALID_WORD"))
	RecordParseDiagnostic("LEX_INVALID_WORD")
	after := testutil.ToFloat64(parseDiagnosticsTotal.WithLabelValues("LEX_INVALID_WORD"))
	assert.Equal(t, before+1, after)
}
