package metrics_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/plus3/blockfall/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)

	m.Tick()
	m.Tick()
	m.Command("HardDrop")
	m.PieceLocked()
	m.LinesCleared(2)
	m.LinesCleared(0)
	m.GameOver()
	m.Restart()
	m.Restart()
	m.QueueLength("a", 9)
	m.QueueLength("b", 3)
	m.QueueLength("a", 8)

	expected := `
# HELP blockfall_lines_cleared_total Full rows removed.
# TYPE blockfall_lines_cleared_total counter
blockfall_lines_cleared_total 2
# HELP blockfall_restarts_total Games re-initialized after game over or on request.
# TYPE blockfall_restarts_total counter
blockfall_restarts_total 2
# HELP blockfall_ticks_total Fixed simulation steps executed.
# TYPE blockfall_ticks_total counter
blockfall_ticks_total 2
# HELP blockfall_queue_length Piece types waiting in the queue, by session.
# TYPE blockfall_queue_length gauge
blockfall_queue_length{session="a"} 8
blockfall_queue_length{session="b"} 3
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"blockfall_lines_cleared_total", "blockfall_restarts_total",
		"blockfall_ticks_total", "blockfall_queue_length"))

	n, err := testutil.GatherAndCount(reg, "blockfall_commands_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMetricsDoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := metrics.New(reg)
	require.NoError(t, err)

	_, err = metrics.New(reg)
	assert.Error(t, err)
}

func TestNilMetricsAreNoOps(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.Tick()
		m.Command("MoveLeft")
		m.PieceLocked()
		m.LinesCleared(4)
		m.GameOver()
		m.Restart()
		m.QueueLength("a", 1)
	})
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)
	m.PieceLocked()

	rec := httptest.NewRecorder()
	metrics.Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "blockfall_pieces_locked_total 1")
}
