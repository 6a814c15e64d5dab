// internal/workers/signals/fetch-weather/handler.go
package fetchweather

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"farm-advisor/internal/common/cache"
	"farm-advisor/internal/common/camunda"
	apperrors "farm-advisor/internal/common/errors"
	"farm-advisor/internal/common/logger"
	"farm-advisor/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "fetch-weather"
)

type WeatherSource interface {
	Current(ctx context.Context, location string) *models.WeatherSignal
}

type Handler struct {
	config  *Config
	weather WeatherSource
	cache   *cache.SignalCache
	logger  logger.Logger
}

func NewHandler(config *Config, weather WeatherSource, signals *cache.SignalCache, log logger.Logger) *Handler {
	if signals == nil {
		signals = cache.NewSignalCache(nil, 0, 0, log)
	}
	return &Handler{
		config:  config,
		weather: weather,
		cache:   signals,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := camunda.DecodeVariables(job, &input); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input, job.Retries)
	if err != nil {
		return err
	}

	if err := camunda.CompleteJob(client, job, output); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{"error": err})
	}
	return nil
}

// execute fetches through the cache. A transient provider failure is
// returned as an error while the job has attempts left; otherwise the failed
// signal is passed on and the planner uses default weather.
func (h *Handler) execute(ctx context.Context, input *Input, retriesLeft int32) (*Output, error) {
	location := strings.TrimSpace(input.Farmer.Location)
	if location == "" {
		return &Output{Weather: &models.WeatherSignal{Error: "location is empty"}}, nil
	}

	fetched := false
	signal := h.cache.Weather(ctx, location, func(ctx context.Context) *models.WeatherSignal {
		fetched = true
		return h.weather.Current(ctx, location)
	})
	if signal == nil {
		signal = &models.WeatherSignal{Error: "no weather returned"}
	}

	if signal.Error != "" {
		if retriesLeft > 1 && transient(signal) {
			if timedOut(signal) {
				return nil, apperrors.NewWeatherTimeoutError(location)
			}
			return nil, apperrors.NewWeatherFetchFailedError(location, errors.New(signal.Error))
		}
		h.logger.Warn("continuing with default weather", map[string]interface{}{
			"location":   location,
			"error":      signal.Error,
			"statusCode": signal.StatusCode,
		})
	}

	return &Output{Weather: signal, Cached: !fetched}, nil
}

// transient reports failures worth another attempt: no response at all,
// rate limiting, or a server error.
func transient(s *models.WeatherSignal) bool {
	return s.StatusCode == 0 || s.StatusCode == http.StatusTooManyRequests || s.StatusCode >= http.StatusInternalServerError
}

func timedOut(s *models.WeatherSignal) bool {
	msg := strings.ToLower(s.Error)
	return strings.Contains(msg, "deadline exceeded") || strings.Contains(msg, "timeout")
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input, 0)
}
