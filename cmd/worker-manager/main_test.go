package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"farm-advisor/internal/common/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoint(t *testing.T) {
	srv := httptest.NewServer(newMux(nil, time.Second))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.NotEmpty(t, body["time"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := httptest.NewServer(newMux(nil, time.Second))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWorkerTimeout(t *testing.T) {
	cfg := &config.Config{Workers: map[string]config.WorkerConfig{
		"fetch-weather": {Enabled: true, Timeout: 5000},
		"compose-plan":  {Enabled: true, Timeout: 60000},
	}}

	assert.Equal(t, 5*time.Second, workerTimeout(cfg, "fetch-weather", 15*time.Second))
	assert.Equal(t, 5*time.Second, workerTimeout(cfg, "compose-plan", 5*time.Second))
	// unknown workers fall back to a 30s job timeout
	assert.Equal(t, 20*time.Second, workerTimeout(cfg, "fetch-market", 20*time.Second))
}
