// internal/workers/signals/fetch-weather/models.go
package fetchweather

import "farm-advisor/internal/models"

type Input struct {
	Farmer models.FarmerInput `json:"farmer"`
}

type Output struct {
	Weather *models.WeatherSignal `json:"weather"`
	Cached  bool                  `json:"weatherCached"`
}
