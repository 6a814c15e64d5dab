// internal/workers/signals/suggest-practices/handler.go
package suggestpractices

import (
	"context"

	"farm-advisor/internal/common/camunda"
	"farm-advisor/internal/common/logger"
	"farm-advisor/internal/expert"
	"farm-advisor/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "suggest-practices"
)

type TipSource interface {
	Lookup(ctx context.Context, soil *models.SoilReport, weather *models.WeatherSignal) (expert.Advice, error)
}

type Handler struct {
	config *Config
	tips   TipSource
	logger logger.Logger
}

func NewHandler(config *Config, tips TipSource, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		tips:   tips,
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

// execute retries a failing tip store while the job has attempts left, then
// answers with heuristic tips.
func (h *Handler) execute(ctx context.Context, input *Input, retriesLeft int32) (*Output, error) {
	advice, err := h.tips.Lookup(ctx, input.SoilReport, input.Weather)
	if err != nil {
		if retriesLeft > 1 {
			return nil, err
		}
		h.logger.Warn("tip store unavailable, using heuristics", map[string]interface{}{"error": err})
	}

	tips := advice.Tips
	if tips == nil {
		tips = []string{}
	}
	return &Output{ExpertTips: tips, TipSource: advice.Source}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input, 0)
}
