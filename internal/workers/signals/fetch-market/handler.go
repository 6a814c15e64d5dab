// internal/workers/signals/fetch-market/handler.go
package fetchmarket

import (
	"context"
	"errors"
	"net/http"

	"farm-advisor/internal/advisor"
	"farm-advisor/internal/common/cache"
	"farm-advisor/internal/common/camunda"
	apperrors "farm-advisor/internal/common/errors"
	httpclient "farm-advisor/internal/common/http"
	"farm-advisor/internal/common/logger"
	"farm-advisor/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "fetch-market"
)

type Handler struct {
	config *Config
	market advisor.MarketSource
	cache  *cache.SignalCache
	logger logger.Logger
}

func NewHandler(config *Config, market advisor.MarketSource, signals *cache.SignalCache, log logger.Logger) *Handler {
	if signals == nil {
		signals = cache.NewSignalCache(nil, 0, 0, log)
	}
	return &Handler{
		config: config,
		market: market,
		cache:  signals,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
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

// execute fails the attempt while the job has retries left, then settles for
// the fallback snapshot.
func (h *Handler) execute(ctx context.Context, input *Input, retriesLeft int32) (*Output, error) {
	state := input.Farmer.Location
	commodity := advisor.ChooseCommodity(input.RecommendedCrops, input.Farmer.PreferredCrop)

	snap, err := h.cache.Market(ctx, state, commodity, func(ctx context.Context) (*models.MarketSnapshot, error) {
		return h.market.FetchSnapshot(ctx, state, commodity)
	})
	if err != nil {
		if retriesLeft > 1 && transient(err) {
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, apperrors.NewMarketTimeoutError(commodity)
			}
			return nil, apperrors.NewMarketFetchFailedError(commodity, err)
		}
		h.logger.Warn("continuing with fallback market data", map[string]interface{}{
			"state":     state,
			"commodity": commodity,
			"error":     err,
		})
	}

	return &Output{Market: snap, Commodity: commodity}, nil
}

// transient excludes client errors other than rate limiting.
func transient(err error) bool {
	var statusErr *httpclient.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= http.StatusInternalServerError
	}
	return true
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input, 0)
}
