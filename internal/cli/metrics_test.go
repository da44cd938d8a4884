package cli_test

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/plus3/blockfall/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartMetricsWithoutAddr(t *testing.T) {
	s, err := cli.StartMetrics("")
	require.NoError(t, err)
	assert.NotNil(t, s.Metrics)
	assert.Empty(t, s.Addr())
	assert.NoError(t, s.Close(context.Background()))
}

func TestStartMetricsServes(t *testing.T) {
	s, err := cli.StartMetrics("127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close(context.Background()) })

	s.Metrics.Tick()

	resp, err := http.Get("http://" + s.Addr() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "blockfall_ticks_total 1")
	assert.Contains(t, string(body), "go_goroutines")
}

func TestStartMetricsBadAddr(t *testing.T) {
	_, err := cli.StartMetrics("not an address")
	assert.Error(t, err)
}
