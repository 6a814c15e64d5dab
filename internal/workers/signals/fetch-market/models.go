// internal/workers/signals/fetch-market/models.go
package fetchmarket

import "farm-advisor/internal/models"

type Input struct {
	Farmer           models.FarmerInput `json:"farmer"`
	RecommendedCrops []string           `json:"recommendedCrops,omitempty"`
}

type Output struct {
	Market    *models.MarketSnapshot `json:"market"`
	Commodity string                 `json:"commodity"`
}
