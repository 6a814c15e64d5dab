// internal/workers/signals/analyze-soil/handler.go
package analyzesoil

import (
	"context"

	"farm-advisor/internal/common/camunda"
	"farm-advisor/internal/common/logger"
	"farm-advisor/internal/soil"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "analyze-soil"
)

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
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

	output, err := h.execute(ctx, &input)
	if err != nil {
		return err
	}

	if err := camunda.CompleteJob(client, job, output); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{"error": err})
	}
	return nil
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	report := soil.Analyze(input.Farmer.LandType)
	crops := soil.RecommendCrops(report.Type, input.Weather)
	if crops == nil {
		crops = []string{}
	}

	h.logger.Debug("soil analyzed", map[string]interface{}{
		"landType":   input.Farmer.LandType,
		"soilType":   report.Type,
		"candidates": len(crops),
	})

	return &Output{SoilReport: report, RecommendedCrops: crops}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
