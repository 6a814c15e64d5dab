package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToBPMNError(t *testing.T) {
	stdErr := NewFarmerInputInvalidError([]string{"location is required", "area must be positive"})
	bpmn := ConvertToBPMNError(stdErr)

	assert.Equal(t, "FARMER_INPUT_INVALID", bpmn.Code)
	assert.False(t, bpmn.Retryable)
	assert.Equal(t, 0, bpmn.Retries)
	assert.Equal(t, "location is required; area must be positive", bpmn.Details)

	vars := bpmn.ToErrorVariables()
	assert.Equal(t, "FARMER_INPUT_INVALID", vars["errorCode"])
	assert.Equal(t, "FARMER_INPUT_INVALID", vars["originalErrorCode"])
	assert.Equal(t, []string{"location is required", "area must be positive"}, vars["violations"])
}

func TestRetryCountsAndCategories(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		retries  int
		category string
	}{
		{ErrCodeWeatherFetchFailed, 3, "WEATHER"},
		{ErrCodeWeatherAPITimeout, 2, "WEATHER"},
		{ErrCodeMarketFetchFailed, 3, "MARKET"},
		{ErrCodeMarketAPITimeout, 2, "MARKET"},
		{ErrCodeExpertTipsQueryFailed, 3, "STORAGE"},
		{ErrCodeCacheUnavailable, 2, "STORAGE"},
		{ErrCodePlanNotificationFailed, 3, "NOTIFICATION"},
		{ErrCodeRecipientMissing, 0, "NOTIFICATION"},
		{ErrCodeFarmerInputInvalid, 0, "VALIDATION"},
		{ErrCodeParseError, 0, "VALIDATION"},
		{ErrCodeInternal, 0, "OTHER"},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.retries, GetRetryCount(tt.code))
			assert.Equal(t, tt.retries > 0, IsRetryableErrorCode(tt.code))
			assert.Equal(t, tt.category, GetErrorCategory(tt.code))
		})
	}
}

func TestDecide(t *testing.T) {
	weatherErr := NewWeatherFetchFailedError("Pune", stderrors.New("502"))

	d := Decide(weatherErr, 5)
	assert.False(t, d.Throw)
	assert.Equal(t, 2, d.Retries)

	d = Decide(weatherErr, 1)
	assert.False(t, d.Throw)
	assert.Equal(t, 0, d.Retries)

	d = Decide(weatherErr, 0)
	assert.True(t, d.Throw)

	d = Decide(NewFarmerInputInvalidError([]string{"bad"}), 3)
	assert.True(t, d.Throw)
	assert.Equal(t, "FARMER_INPUT_INVALID", d.BPMN.Code)
}

func TestNormalize(t *testing.T) {
	wrapped := fmt.Errorf("fetch: %w", NewMarketTimeoutError("Wheat"))
	assert.Equal(t, ErrCodeMarketAPITimeout, Normalize(wrapped).Code)

	plain := Normalize(stderrors.New("boom"))
	assert.Equal(t, ErrCodeInternal, plain.Code)
	assert.False(t, plain.Retryable)

	deadline := Normalize(context.DeadlineExceeded)
	assert.True(t, deadline.Retryable)
}

func TestStandardErrorIs(t *testing.T) {
	err := fmt.Errorf("wrap: %w", NewCacheUnavailableError(stderrors.New("dial tcp")))
	require.True(t, stderrors.Is(err, &StandardError{Code: ErrCodeCacheUnavailable}))
	assert.False(t, stderrors.Is(err, &StandardError{Code: ErrCodeParseError}))
}
