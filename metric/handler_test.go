package metric

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/ringqueue/errors"
)

func TestServer_Handler(t *testing.T) {
	registry := NewMetricsRegistry()

	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "ringqueue",
		Subsystem: "queue",
		Name:      "handler_size",
		Help:      "Queue size exposed for the handler test",
	})
	require.NoError(t, registry.RegisterGauge("handler", "size", gauge))
	gauge.Set(7)

	server := NewServer(0, "", registry)
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "ringqueue_queue_handler_size 7")

	resp, err = http.Get(ts.URL + "/health")
	require.NoError(t, err)
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
}

func TestServer_Defaults(t *testing.T) {
	server := NewServer(0, "", NewMetricsRegistry())

	assert.Equal(t, "http://localhost:9090/metrics", server.Address())
}

func TestServer_StartWithoutRegistry(t *testing.T) {
	server := NewServer(19091, "/metrics", nil)

	err := server.Start()
	require.Error(t, err)
	assert.True(t, errors.IsFatal(err))
}

func TestServer_StopWhenNotRunning(t *testing.T) {
	server := NewServer(19092, "/metrics", NewMetricsRegistry())

	assert.NoError(t, server.Stop())
}
