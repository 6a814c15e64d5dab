package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"farm-advisor/internal/common/logger"
	"farm-advisor/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(&Config{BaseURL: server.URL, APIKey: "test-key", Timeout: time.Second}, logger.NewTestLogger(t))
}

func TestCurrent_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Pune", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		_, _ = w.Write([]byte(`{
			"main": {"temp": 31.2, "humidity": 70},
			"weather": [{"description": "Light Rain"}],
			"wind": {"speed": 5}
		}`))
	})

	signal := client.Current(context.Background(), "Pune")
	require.Empty(t, signal.Error)
	assert.Equal(t, 31.2, *signal.Temperature)
	assert.Equal(t, 70.0, *signal.Humidity)
	assert.Equal(t, 18.0, *signal.WindSpeed)
	assert.Equal(t, "light rain", signal.Description)
	assert.Equal(t, models.RainfallHigh, signal.Rainfall)
}

func TestCurrent_APIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"cod":"404","message":"city not found"}`))
	})

	signal := client.Current(context.Background(), "Atlantis")
	assert.Equal(t, "city not found", signal.Error)
	assert.Equal(t, http.StatusNotFound, signal.StatusCode)
	assert.Nil(t, signal.Temperature)
}

func TestCurrent_APIErrorWithoutMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	signal := client.Current(context.Background(), "Pune")
	assert.Equal(t, "API request failed", signal.Error)
	assert.Equal(t, http.StatusInternalServerError, signal.StatusCode)
}

func TestCurrent_TransportError(t *testing.T) {
	client := NewClient(&Config{BaseURL: "http://127.0.0.1:1", Timeout: 100 * time.Millisecond}, logger.NewNoOpLogger())

	signal := client.Current(context.Background(), "Pune")
	assert.NotEmpty(t, signal.Error)
	assert.Zero(t, signal.StatusCode)
}

func TestClassifyRainfall(t *testing.T) {
	tests := map[string]string{
		"light rain":                models.RainfallHigh,
		"heavy intensity rain":      models.RainfallHeavy,
		"very heavy rain":           models.RainfallVeryHeavy,
		"extreme rain":              models.RainfallVeryHeavy,
		"broken clouds":             models.RainfallModerate,
		"clear sky":                 models.RainfallLow,
		"":                          models.RainfallLow,
		"thunderstorm with drizzle": models.RainfallLow,
	}
	for desc, want := range tests {
		t.Run(desc, func(t *testing.T) {
			assert.Equal(t, want, ClassifyRainfall(desc))
		})
	}
}
