// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package observability

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/author-scout/pkg/types"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"debug":   zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"WARN":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(types.LoggingConfig{Level: "warn", Format: "json"}, &buf)

	logger.Info().Msg("dropped")
	logger.Warn().Str("author", "Jane Doe").Msg("kept")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "Jane Doe", entry["author"])
	assert.Equal(t, "warn", entry["level"])
	assert.Contains(t, entry, "time")
}

func TestNewLoggerConsole(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(types.LoggingConfig{Level: "info", Format: "console"}, &buf)
	logger.Info().Msg("hello")

	assert.Contains(t, buf.String(), "hello")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestWithRunContext(t *testing.T) {
	var buf bytes.Buffer
	logger := WithRunContext(zerolog.New(&buf), "run-1", []string{"cs.LG"})
	logger.Info().Msg("x")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "run-1", entry["run_id"])
	assert.Equal(t, []any{"cs.LG"}, entry["categories"])
}

func TestMetricsRecordRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordRunStarted()
	m.RecordRunCompleted(10, 4, 3, 2*time.Second)
	m.RecordRunFailed("fetch", time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RunsStarted))
	assert.Equal(t, 10.0, testutil.ToFloat64(m.PapersFetched))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.PapersMatched))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.RecordsRanked))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RunsFailed.WithLabelValues("fetch")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RunDuration))
}

func TestMetricsObserveResolution(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveResolution(OutcomeFound)
	m.ObserveResolution(OutcomeFound)
	m.ObserveResolution(OutcomeNotFound)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AuthorResolutions.WithLabelValues(OutcomeFound)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthorResolutions.WithLabelValues(OutcomeNotFound)))
}

func TestMetricsSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics(prometheus.NewRegistry())
		NewMetrics(prometheus.NewRegistry())
	})
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRunStarted()
		m.RecordRunCompleted(1, 1, 1, time.Second)
		m.RecordRunFailed("parse", time.Second)
		m.ObserveResolution(OutcomeError)
	})
}
