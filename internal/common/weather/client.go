// Package weather fetches current conditions from OpenWeatherMap and reduces
// them to a WeatherSignal.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"time"

	httpclient "farm-advisor/internal/common/http"
	"farm-advisor/internal/common/logger"
	"farm-advisor/internal/common/metrics"
	"farm-advisor/internal/models"
)

const (
	providerName  = "openweather"
	msPerSecToKmh = 3.6
)

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client never returns an error: failures are reported in WeatherSignal.Error
// so the planner can fall back to defaults.
type Client struct {
	config *Config
	http   *httpclient.Client
	logger logger.Logger
}

func NewClient(config *Config, log logger.Logger) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		config: config,
		http:   httpclient.NewClient(timeout),
		logger: log.WithFields(map[string]interface{}{"provider": providerName}),
	}
}

type currentResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// Current returns the present conditions at location.
func (c *Client) Current(ctx context.Context, location string) *models.WeatherSignal {
	start := time.Now()
	defer func() {
		metrics.SignalFetchDuration.WithLabelValues(providerName).Observe(time.Since(start).Seconds())
	}()

	params := url.Values{
		"q":     {location},
		"appid": {c.config.APIKey},
		"units": {"metric"},
	}

	var resp currentResponse
	err := c.http.GetJSON(ctx, c.config.BaseURL, params, &resp)
	if err != nil {
		metrics.SignalFetches.WithLabelValues(providerName, "error").Inc()
		signal := &models.WeatherSignal{Error: err.Error()}

		var statusErr *httpclient.StatusError
		if errors.As(err, &statusErr) {
			signal.StatusCode = statusErr.StatusCode
			signal.Error = "API request failed"
			var body errorResponse
			if json.Unmarshal([]byte(statusErr.Body), &body) == nil && body.Message != "" {
				signal.Error = body.Message
			}
		}

		c.logger.Warn("weather fetch failed", map[string]interface{}{
			"location":   location,
			"error":      signal.Error,
			"statusCode": signal.StatusCode,
		})
		return signal
	}

	metrics.SignalFetches.WithLabelValues(providerName, "ok").Inc()

	desc := ""
	if len(resp.Weather) > 0 {
		desc = strings.ToLower(resp.Weather[0].Description)
	}

	return &models.WeatherSignal{
		Temperature: models.Float(resp.Main.Temp),
		Rainfall:    ClassifyRainfall(desc),
		Humidity:    models.Float(resp.Main.Humidity),
		WindSpeed:   models.Float(resp.Wind.Speed * msPerSecToKmh),
		Description: desc,
	}
}

// ClassifyRainfall maps an OpenWeatherMap description to a rainfall category.
func ClassifyRainfall(description string) string {
	d := strings.ToLower(description)
	switch {
	case strings.Contains(d, "extreme rain"), strings.Contains(d, "very heavy"):
		return models.RainfallVeryHeavy
	case strings.Contains(d, "heavy") && strings.Contains(d, "rain"):
		return models.RainfallHeavy
	case strings.Contains(d, "rain"):
		return models.RainfallHigh
	case strings.Contains(d, "cloud"):
		return models.RainfallModerate
	}
	return models.RainfallLow
}
