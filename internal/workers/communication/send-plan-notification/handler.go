// internal/workers/communication/send-plan-notification/handler.go
package sendplannotification

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	awshelpers "farm-advisor/internal/common/aws"
	"farm-advisor/internal/common/camunda"
	apperrors "farm-advisor/internal/common/errors"
	"farm-advisor/internal/common/logger"
	"farm-advisor/internal/render"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "send-plan-notification"
)

// Define interfaces for mocking
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Handler struct {
	config    *Config
	logger    logger.Logger
	sesClient SESService
	snsClient SNSService
}

// NewHandler builds AWS clients for the configured region.
func NewHandler(ctx context.Context, config *Config, log logger.Logger) (*Handler, error) {
	clients, err := awshelpers.NewClients(ctx, config.AWSRegion)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return NewHandlerWithClients(config, clients.SES, clients.SNS, log), nil
}

func NewHandlerWithClients(config *Config, sesClient SESService, snsClient SNSService, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
		sesClient: sesClient,
		snsClient: snsClient,
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

func (h *Handler) execute(ctx context.Context, input *Input, retriesLeft int32) (*Output, error) {
	output := &Output{
		NotificationID: uuid.New().String(),
		Status:         StatusDisabled,
		Channels:       []string{},
		SentAt:         time.Now().UTC().Format(time.RFC3339),
	}

	if !h.config.EmailEnabled && !h.config.SMSEnabled {
		return output, nil
	}

	email := strings.TrimSpace(input.Recipient.Email)
	phone := strings.TrimSpace(input.Recipient.Phone)
	if email == "" && phone == "" {
		return nil, apperrors.NewRecipientMissingError()
	}

	type attempt struct {
		channel string
		send    func() error
	}
	var attempts []attempt
	if h.config.EmailEnabled && email != "" {
		attempts = append(attempts, attempt{ChannelEmail, func() error { return h.sendEmail(ctx, email, input) }})
	}
	if h.config.SMSEnabled && phone != "" {
		attempts = append(attempts, attempt{ChannelSMS, func() error { return h.sendSMS(ctx, phone, input) }})
	}
	if len(attempts) == 0 {
		return output, nil
	}

	var lastErr error
	lastChannel := ""
	for _, a := range attempts {
		if err := a.send(); err != nil {
			h.logger.Error("plan notification failed", map[string]interface{}{
				"planId":  input.PlanID,
				"channel": a.channel,
				"error":   err,
			})
			lastErr, lastChannel = err, a.channel
			continue
		}
		output.Channels = append(output.Channels, a.channel)
	}

	switch {
	case len(output.Channels) > 0:
		output.Status = StatusSent
	case retriesLeft > 1:
		return nil, apperrors.NewPlanNotificationFailedError(lastChannel, lastErr)
	default:
		output.Status = StatusFailed
	}
	return output, nil
}

func (h *Handler) sendEmail(ctx context.Context, to string, input *Input) error {
	var body bytes.Buffer
	if input.Recipient.Name != "" {
		fmt.Fprintf(&body, "Hello %s,\n\n", input.Recipient.Name)
	}
	if input.PreferredCropNote != "" {
		fmt.Fprintf(&body, "%s\n\n", input.PreferredCropNote)
	}
	if err := render.Plan(&body, input.Plan); err != nil {
		return err
	}
	if input.PlanID != "" {
		fmt.Fprintf(&body, "\nPlan reference: %s\n", input.PlanID)
	}

	_, err := h.sesClient.SendEmail(ctx, awshelpers.EmailInput(h.config.FromEmail, to, render.Subject(input.Plan), body.String()))
	return err
}

func (h *Handler) sendSMS(ctx context.Context, to string, input *Input) error {
	_, err := h.snsClient.Publish(ctx, awshelpers.SMSInput(to, h.config.SenderID, render.SMS(input.Plan)))
	return err
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input, 0)
}
