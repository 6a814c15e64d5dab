// internal/workers/communication/send-plan-notification/handler_test.go
package sendplannotification

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "farm-advisor/internal/common/errors"
	"farm-advisor/internal/common/logger"
	"farm-advisor/internal/models"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Implementations
// ==========================

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
	calls         int
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.calls++
	return m.SendEmailFunc(ctx, params, optFns...)
}

type MockSNSService struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
	calls       int
}

func (m *MockSNSService) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.calls++
	return m.PublishFunc(ctx, params, optFns...)
}

func okSES() *MockSESService {
	return &MockSESService{SendEmailFunc: func(context.Context, *ses.SendEmailInput, ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
		return &ses.SendEmailOutput{MessageId: awssdk.String("m-1")}, nil
	}}
}

func okSNS() *MockSNSService {
	return &MockSNSService{PublishFunc: func(context.Context, *sns.PublishInput, ...func(*sns.Options)) (*sns.PublishOutput, error) {
		return &sns.PublishOutput{MessageId: awssdk.String("s-1")}, nil
	}}
}

func failingSES() *MockSESService {
	return &MockSESService{SendEmailFunc: func(context.Context, *ses.SendEmailInput, ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
		return nil, errors.New("MessageRejected")
	}}
}

func failingSNS() *MockSNSService {
	return &MockSNSService{PublishFunc: func(context.Context, *sns.PublishInput, ...func(*sns.Options)) (*sns.PublishOutput, error) {
		return nil, errors.New("Throttling")
	}}
}

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig(email, sms bool) *Config {
	return &Config{
		EmailEnabled: email,
		SMSEnabled:   sms,
		FromEmail:    "plans@farm-advisor.example",
		SenderID:     "FARMADV",
		AWSRegion:    "ap-south-1",
		Timeout:      5 * time.Second,
	}
}

func createTestInput(phone, email string) *Input {
	return &Input{
		PlanID: "3f1c1f7e-2a55-4c1c-9f1e-0d3c9c1b7a10",
		Plan: models.RecommendationPlan{
			SuggestedCrop:    "wheat",
			PlantingStrategy: models.PlantingStrategy{Window: "Immediate planting recommended", RecommendedDate: "01-Jun-2024"},
			ExpectedYield:    "3200.0 kg",
			MarketAdvice:     "Market conditions stable",
			SoilManagement:   []string{"Soil conditions optimal - maintain current practices"},
			RiskAssessment:   models.LowRisk(),
		},
		PreferredCropNote: "Your preferred crop (wheat) is suitable!",
		Recipient:         Recipient{Name: "Ravi", Phone: phone, Email: email},
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	sesMock, snsMock := okSES(), okSNS()
	var sentEmail *ses.SendEmailInput
	sesMock.SendEmailFunc = func(_ context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
		sentEmail = in
		return &ses.SendEmailOutput{}, nil
	}
	var sentSMS *sns.PublishInput
	snsMock.PublishFunc = func(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
		sentSMS = in
		return &sns.PublishOutput{}, nil
	}

	h := NewHandlerWithClients(createTestConfig(true, true), sesMock, snsMock, logger.NewTestLogger(t))
	out, err := h.Execute(context.Background(), createTestInput("+919800000000", "ravi@example.com"))
	require.NoError(t, err)

	assert.Equal(t, StatusSent, out.Status)
	assert.Equal(t, []string{ChannelEmail, ChannelSMS}, out.Channels)
	assert.NotEmpty(t, out.NotificationID)

	require.NotNil(t, sentEmail)
	assert.Equal(t, "Your farming plan: Wheat", awssdk.ToString(sentEmail.Message.Subject.Data))
	body := awssdk.ToString(sentEmail.Message.Body.Text.Data)
	assert.True(t, strings.HasPrefix(body, "Hello Ravi,\n\nYour preferred crop (wheat) is suitable!"))
	assert.Contains(t, body, "Expected Yield: 3200.0 kg")
	assert.Contains(t, body, "Plan reference: 3f1c1f7e")

	require.NotNil(t, sentSMS)
	assert.Equal(t, "+919800000000", awssdk.ToString(sentSMS.PhoneNumber))
	assert.Contains(t, awssdk.ToString(sentSMS.Message), "grow Wheat")
}

func TestHandler_Execute_Channels(t *testing.T) {
	tests := []struct {
		name         string
		emailEnabled bool
		smsEnabled   bool
		phone, email string
		wantStatus   string
		wantChannels []string
	}{
		{"all channels disabled", false, false, "+919800000000", "ravi@example.com", StatusDisabled, []string{}},
		{"email only", true, false, "+919800000000", "ravi@example.com", StatusSent, []string{ChannelEmail}},
		{"sms only", false, true, "+919800000000", "ravi@example.com", StatusSent, []string{ChannelSMS}},
		{"enabled channel has no address", false, true, "", "ravi@example.com", StatusDisabled, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandlerWithClients(createTestConfig(tt.emailEnabled, tt.smsEnabled), okSES(), okSNS(), logger.NewTestLogger(t))
			out, err := h.Execute(context.Background(), createTestInput(tt.phone, tt.email))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, out.Status)
			assert.Equal(t, tt.wantChannels, out.Channels)
		})
	}
}

func TestHandler_Execute_RecipientMissing(t *testing.T) {
	h := NewHandlerWithClients(createTestConfig(true, true), okSES(), okSNS(), logger.NewTestLogger(t))
	_, err := h.Execute(context.Background(), createTestInput(" ", ""))

	var stdErr *apperrors.StandardError
	require.True(t, errors.As(err, &stdErr))
	assert.Equal(t, apperrors.ErrCodeRecipientMissing, stdErr.Code)
	assert.False(t, stdErr.Retryable)
}

func TestHandler_Execute_PartialFailureStillSent(t *testing.T) {
	h := NewHandlerWithClients(createTestConfig(true, true), failingSES(), okSNS(), logger.NewTestLogger(t))
	out, err := h.execute(context.Background(), createTestInput("+919800000000", "ravi@example.com"), 3)
	require.NoError(t, err)
	assert.Equal(t, StatusSent, out.Status)
	assert.Equal(t, []string{ChannelSMS}, out.Channels)
}

func TestHandler_Execute_AllFail(t *testing.T) {
	sesMock, snsMock := failingSES(), failingSNS()
	h := NewHandlerWithClients(createTestConfig(true, true), sesMock, snsMock, logger.NewTestLogger(t))
	in := createTestInput("+919800000000", "ravi@example.com")

	_, err := h.execute(context.Background(), in, 3)
	var stdErr *apperrors.StandardError
	require.True(t, errors.As(err, &stdErr))
	assert.Equal(t, apperrors.ErrCodePlanNotificationFailed, stdErr.Code)
	assert.Contains(t, stdErr.Details, "channel: sms")

	out, err := h.execute(context.Background(), in, 1)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, out.Status)
	assert.Empty(t, out.Channels)
	assert.Equal(t, 2, sesMock.calls)
	assert.Equal(t, 2, snsMock.calls)
}
