// internal/workers/planning/compose-plan/handler.go
package composeplan

import (
	"context"
	"time"

	"farm-advisor/internal/advisor"
	"farm-advisor/internal/common/camunda"
	"farm-advisor/internal/common/logger"
	"farm-advisor/internal/common/observability"
	"farm-advisor/internal/models"
	"farm-advisor/internal/planner"
	"farm-advisor/internal/render"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "compose-plan"
)

type Handler struct {
	config  *Config
	planner *planner.Planner
	obs     *observability.Observability
	logger  logger.Logger
}

// NewHandler builds the handler. obs may be nil.
func NewHandler(config *Config, p *planner.Planner, obs *observability.Observability, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		planner: p,
		obs:     obs,
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

	output, err := h.execute(ctx, &input)
	if err != nil {
		return err
	}

	if err := camunda.CompleteJob(client, job, output); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{"error": err})
	}
	return nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	signals := models.Signals{
		Weather:    input.Weather,
		Soil:       input.SoilReport,
		ExpertTips: input.ExpertTips,
		Market:     input.Market,
	}

	var farmer models.FarmerInput
	if input.Farmer != nil {
		farmer = *input.Farmer
	}
	farmer.RecommendedCrops = input.RecommendedCrops
	signals.Farmer = &farmer
	note := render.PreferredNote(farmer.PreferredCrop, advisor.PreferredSuitable(farmer.PreferredCrop, input.RecommendedCrops))

	plan := h.planner.Compose(&signals)
	advisor.RecordPlan(plan)
	h.obs.RecordPlan(ctx, plan.SuggestedCrop, !plan.RiskAssessment.IsLowRisk())

	planID := uuid.New().String()
	h.logger.Info("plan composed", map[string]interface{}{
		"planId":        planID,
		"suggestedCrop": plan.SuggestedCrop,
		"expectedYield": plan.ExpectedYield,
		"lowRisk":       plan.RiskAssessment.IsLowRisk(),
	})

	return &Output{
		PlanID:            planID,
		Plan:              plan,
		PreferredCropNote: note,
		ComposedAt:        time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
