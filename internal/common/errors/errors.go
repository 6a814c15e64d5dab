// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeParseError ErrorCode = "PARSE_ERROR"

	ErrCodeFarmerInputInvalid ErrorCode = "FARMER_INPUT_INVALID"
	ErrCodeSchemaNotFound     ErrorCode = "SCHEMA_NOT_FOUND"

	ErrCodeWeatherFetchFailed ErrorCode = "WEATHER_FETCH_FAILED"
	ErrCodeWeatherAPITimeout  ErrorCode = "WEATHER_API_TIMEOUT"

	ErrCodeMarketFetchFailed ErrorCode = "MARKET_FETCH_FAILED"
	ErrCodeMarketAPITimeout  ErrorCode = "MARKET_API_TIMEOUT"

	ErrCodeExpertTipsQueryFailed ErrorCode = "EXPERT_TIPS_QUERY_FAILED"
	ErrCodeCacheUnavailable      ErrorCode = "CACHE_UNAVAILABLE"

	ErrCodePlanNotificationFailed ErrorCode = "PLAN_NOTIFICATION_FAILED"
	ErrCodeRecipientMissing       ErrorCode = "RECIPIENT_MISSING"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Is matches any StandardError carrying the same code.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	return ok && t.Code == e.Code
}

// BPMNError is the shape thrown back to the process engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables flattens the error into process variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 2. Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

func NewParseError(err error) *StandardError {
	return newError(ErrCodeParseError, "Job variables could not be parsed", err.Error(), false)
}

func NewFarmerInputInvalidError(problems []string) *StandardError {
	e := newError(ErrCodeFarmerInputInvalid, "Farmer request failed validation", strings.Join(problems, "; "), false)
	e.Metadata = map[string]interface{}{"violations": problems}
	return e
}

func NewSchemaNotFoundError(taskType string) *StandardError {
	return newError(ErrCodeSchemaNotFound, "No input schema registered", fmt.Sprintf("taskType: %s", taskType), false)
}

func NewWeatherFetchFailedError(location string, err error) *StandardError {
	return newError(ErrCodeWeatherFetchFailed, "Weather provider error", fmt.Sprintf("location: %s, error: %s", location, err.Error()), true)
}

func NewWeatherTimeoutError(location string) *StandardError {
	return newError(ErrCodeWeatherAPITimeout, "Weather provider timeout", fmt.Sprintf("location: %s", location), true)
}

func NewMarketFetchFailedError(commodity string, err error) *StandardError {
	return newError(ErrCodeMarketFetchFailed, "Market data provider error", fmt.Sprintf("commodity: %s, error: %s", commodity, err.Error()), true)
}

func NewMarketTimeoutError(commodity string) *StandardError {
	return newError(ErrCodeMarketAPITimeout, "Market data provider timeout", fmt.Sprintf("commodity: %s", commodity), true)
}

func NewExpertTipsQueryFailedError(err error) *StandardError {
	return newError(ErrCodeExpertTipsQueryFailed, "Expert tip store query failed", err.Error(), true)
}

func NewCacheUnavailableError(err error) *StandardError {
	return newError(ErrCodeCacheUnavailable, "Signal cache unavailable", err.Error(), true)
}

func NewPlanNotificationFailedError(channel string, err error) *StandardError {
	return newError(ErrCodePlanNotificationFailed, "Plan notification delivery failed", fmt.Sprintf("channel: %s, error: %s", channel, err.Error()), true)
}

func NewRecipientMissingError() *StandardError {
	return newError(ErrCodeRecipientMissing, "No phone number or email to notify", "", false)
}

// ==========================
// 3. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeParseError:             "PARSE_ERROR",
	ErrCodeFarmerInputInvalid:     "FARMER_INPUT_INVALID",
	ErrCodeSchemaNotFound:         "SCHEMA_NOT_FOUND",
	ErrCodeWeatherFetchFailed:     "WEATHER_FETCH_FAILED",
	ErrCodeWeatherAPITimeout:      "WEATHER_API_TIMEOUT",
	ErrCodeMarketFetchFailed:      "MARKET_FETCH_FAILED",
	ErrCodeMarketAPITimeout:       "MARKET_API_TIMEOUT",
	ErrCodeExpertTipsQueryFailed:  "EXPERT_TIPS_QUERY_FAILED",
	ErrCodeCacheUnavailable:       "CACHE_UNAVAILABLE",
	ErrCodePlanNotificationFailed: "PLAN_NOTIFICATION_FAILED",
	ErrCodeRecipientMissing:       "RECIPIENT_MISSING",
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeWeatherFetchFailed,
		ErrCodeMarketFetchFailed,
		ErrCodeExpertTipsQueryFailed,
		ErrCodePlanNotificationFailed:
		return 3

	case ErrCodeWeatherAPITimeout,
		ErrCodeMarketAPITimeout,
		ErrCodeCacheUnavailable:
		return 2

	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 4. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "WEATHER"):
		return "WEATHER"
	case strings.Contains(codeStr, "MARKET"):
		return "MARKET"
	case strings.Contains(codeStr, "EXPERT") || strings.Contains(codeStr, "CACHE"):
		return "STORAGE"
	case strings.Contains(codeStr, "NOTIFICATION") || strings.Contains(codeStr, "RECIPIENT"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "SCHEMA") || strings.Contains(codeStr, "PARSE"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
