package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var farmerSchema = map[string]interface{}{
	"$schema":  "http://json-schema.org/draft-07/schema#",
	"type":     "object",
	"required": []interface{}{"location", "area"},
	"properties": map[string]interface{}{
		"location": map[string]interface{}{"type": "string", "minLength": 1},
		"area":     map[string]interface{}{"type": "number", "exclusiveMinimum": 0},
		"budget":   map[string]interface{}{"type": "string", "enum": []interface{}{"low", "medium", "high"}},
	},
}

func TestValidateInput_Valid(t *testing.T) {
	res, err := ValidateInput(map[string]interface{}{"location": "Pune", "area": 2.5, "budget": "low"}, farmerSchema)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Empty(t, res.Messages())
}

func TestValidateInput_Invalid(t *testing.T) {
	res, err := ValidateInput(map[string]interface{}{"area": 0, "budget": "lavish"}, farmerSchema)
	require.NoError(t, err)
	assert.False(t, res.Valid)

	codes := map[string]string{}
	for _, e := range res.Errors {
		codes[e.Code] = e.Field
	}
	assert.Contains(t, codes, "required")
	assert.Equal(t, "area", codes["number_gt"])
	assert.Equal(t, "budget", codes["enum"])
	assert.Len(t, res.Messages(), 3)
}

func TestValidateInput_BadSchema(t *testing.T) {
	_, err := ValidateInput(map[string]interface{}{}, map[string]interface{}{"type": 7})
	assert.ErrorContains(t, err, "schema validation")
}
