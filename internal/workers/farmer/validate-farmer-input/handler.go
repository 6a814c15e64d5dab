// internal/workers/farmer/validate-farmer-input/handler.go
package validatefarmerinput

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"farm-advisor/internal/common/camunda"
	apperrors "farm-advisor/internal/common/errors"
	"farm-advisor/internal/common/logger"
	"farm-advisor/internal/common/validation"
	"farm-advisor/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "validate-farmer-input"
)

// fields compared case-insensitively against their schema enums
var enumFields = []string{"landType", "budget"}

type Handler struct {
	config *Config
	schema map[string]interface{}
	logger logger.Logger
}

// NewHandler takes the input schema registered for TaskType. A nil schema
// fails every job with SCHEMA_NOT_FOUND.
func NewHandler(config *Config, schema map[string]interface{}, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		schema: schema,
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
	if h.schema == nil {
		return nil, apperrors.NewSchemaNotFoundError(TaskType)
	}
	if input.Farmer == nil {
		return nil, apperrors.NewFarmerInputInvalidError([]string{"farmer: is required"})
	}

	doc := normalize(input.Farmer)
	result, err := validation.ValidateInput(doc, h.schema)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		h.logger.Warn("farmer input rejected", map[string]interface{}{
			"violations": result.Messages(),
		})
		return nil, apperrors.NewFarmerInputInvalidError(result.Messages())
	}

	farmer, err := decode(doc)
	if err != nil {
		return nil, apperrors.NewFarmerInputInvalidError([]string{err.Error()})
	}
	return &Output{Farmer: farmer, Validated: true}, nil
}

// normalize trims string values and lower-cases enum fields on a copy.
func normalize(raw map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			v = strings.TrimSpace(s)
		}
		out[k] = v
	}
	for _, f := range enumFields {
		if s, ok := out[f].(string); ok {
			out[f] = strings.ToLower(s)
		}
	}
	return out
}

func decode(doc map[string]interface{}) (models.FarmerInput, error) {
	var farmer models.FarmerInput
	data, err := json.Marshal(doc)
	if err != nil {
		return farmer, fmt.Errorf("encode farmer: %w", err)
	}
	if err := json.Unmarshal(data, &farmer); err != nil {
		return farmer, fmt.Errorf("decode farmer: %w", err)
	}
	return farmer, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
