// internal/workers/communication/send-plan-notification/models.go
package sendplannotification

import "farm-advisor/internal/models"

type Recipient struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

type Input struct {
	PlanID            string                    `json:"planId"`
	Plan              models.RecommendationPlan `json:"plan"`
	PreferredCropNote string                    `json:"preferredCropNote,omitempty"`
	Recipient         Recipient                 `json:"recipient"`
}

type Output struct {
	NotificationID string   `json:"notificationId"`
	Status         string   `json:"status"` // "sent", "failed", "disabled"
	Channels       []string `json:"channels"`
	SentAt         string   `json:"sentAt"` // ISO 8601
}

// Statuses
const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

// Channels
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)
