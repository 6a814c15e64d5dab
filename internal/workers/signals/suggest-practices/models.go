// internal/workers/signals/suggest-practices/models.go
package suggestpractices

import "farm-advisor/internal/models"

type Input struct {
	SoilReport *models.SoilReport    `json:"soilReport,omitempty"`
	Weather    *models.WeatherSignal `json:"weather,omitempty"`
}

type Output struct {
	ExpertTips []string `json:"expertTips"`
	TipSource  string   `json:"tipSource"`
}
