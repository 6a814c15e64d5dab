// internal/workers/signals/analyze-soil/models.go
package analyzesoil

import "farm-advisor/internal/models"

type Input struct {
	Farmer  models.FarmerInput    `json:"farmer"`
	Weather *models.WeatherSignal `json:"weather,omitempty"`
}

type Output struct {
	SoilReport       *models.SoilReport `json:"soilReport"`
	RecommendedCrops []string           `json:"recommendedCrops"`
}
