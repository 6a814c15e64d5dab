// internal/workers/planning/compose-plan/models.go
package composeplan

import "farm-advisor/internal/models"

// Input is every signal gathered so far. Any of them may be missing.
type Input struct {
	Farmer           *models.FarmerInput    `json:"farmer,omitempty"`
	RecommendedCrops []string               `json:"recommendedCrops,omitempty"`
	Weather          *models.WeatherSignal  `json:"weather,omitempty"`
	SoilReport       *models.SoilReport     `json:"soilReport,omitempty"`
	ExpertTips       []string               `json:"expertTips,omitempty"`
	Market           *models.MarketSnapshot `json:"market,omitempty"`
}

type Output struct {
	PlanID            string                    `json:"planId"`
	Plan              models.RecommendationPlan `json:"plan"`
	PreferredCropNote string                    `json:"preferredCropNote,omitempty"`
	ComposedAt        string                    `json:"composedAt"`
}
