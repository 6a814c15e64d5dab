// internal/workers/farmer/validate-farmer-input/handler_test.go
package validatefarmerinput

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	apperrors "farm-advisor/internal/common/errors"
	"farm-advisor/internal/common/logger"
	"farm-advisor/internal/models"
	"farm-advisor/pkg/registry"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registrySchema(t *testing.T) map[string]interface{} {
	t.Helper()
	reg, err := registry.LoadRegistry(filepath.Join("..", "..", "..", "..", "configs", "activity-registry.json"))
	require.NoError(t, err)
	schema := reg.InputSchema(TaskType)
	require.NotNil(t, schema)
	return schema
}

func newTestHandler(t *testing.T) *Handler {
	return NewHandler(LoadConfig(), registrySchema(t), logger.NewTestLogger(t))
}

func TestHandler_Execute_Valid(t *testing.T) {
	h := newTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{Farmer: map[string]interface{}{
		"location":      "  Karnataka ",
		"landType":      "Dry",
		"area":          2.5,
		"budget":        "LOW",
		"preferredCrop": "millet",
	}})
	require.NoError(t, err)
	assert.True(t, out.Validated)
	assert.Equal(t, models.FarmerInput{
		Location:      "Karnataka",
		LandType:      models.LandTypeDry,
		Area:          2.5,
		Budget:        models.BudgetLow,
		PreferredCrop: "millet",
	}, out.Farmer)
}

func TestHandler_Execute_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		farmer map[string]interface{}
		field  string
	}{
		{"missing location", map[string]interface{}{"landType": "wet", "area": 1, "budget": "low"}, "location"},
		{"blank location", map[string]interface{}{"location": "   ", "landType": "wet", "area": 1, "budget": "low"}, "location"},
		{"unknown land type", map[string]interface{}{"location": "Pune", "landType": "rocky", "area": 1, "budget": "low"}, "landType"},
		{"zero area", map[string]interface{}{"location": "Pune", "landType": "wet", "area": 0, "budget": "low"}, "area"},
		{"area as text", map[string]interface{}{"location": "Pune", "landType": "wet", "area": "two", "budget": "low"}, "area"},
		{"unknown budget", map[string]interface{}{"location": "Pune", "landType": "wet", "area": 1, "budget": "lavish"}, "budget"},
	}

	h := newTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Execute(context.Background(), &Input{Farmer: tt.farmer})
			require.Error(t, err)

			var stdErr *apperrors.StandardError
			require.True(t, errors.As(err, &stdErr))
			assert.Equal(t, apperrors.ErrCodeFarmerInputInvalid, stdErr.Code)
			assert.Contains(t, stdErr.Details, tt.field)
		})
	}
}

func TestHandler_Execute_MissingFarmer(t *testing.T) {
	_, err := newTestHandler(t).Execute(context.Background(), &Input{})
	assert.True(t, errors.Is(err, &apperrors.StandardError{Code: apperrors.ErrCodeFarmerInputInvalid}))
}

func TestHandler_Execute_NoSchema(t *testing.T) {
	h := NewHandler(LoadConfig(), nil, logger.NewTestLogger(t))
	_, err := h.Execute(context.Background(), &Input{Farmer: map[string]interface{}{"location": "Pune"}})
	assert.True(t, errors.Is(err, &apperrors.StandardError{Code: apperrors.ErrCodeSchemaNotFound}))
}

func TestHandler_Handle_ParseError(t *testing.T) {
	job := entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 1, Variables: `{"farmer":`}}
	err := newTestHandler(t).Handle(nil, job)
	assert.True(t, errors.Is(err, &apperrors.StandardError{Code: apperrors.ErrCodeParseError}))
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	raw := map[string]interface{}{"budget": " High ", "area": 3}
	out := normalize(raw)
	assert.Equal(t, "high", out["budget"])
	assert.Equal(t, " High ", raw["budget"])
	assert.Equal(t, 3, out["area"])
}
