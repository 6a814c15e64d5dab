// internal/planner/schedule.go
package planner

import (
	"time"

	"farm-advisor/internal/models"
)

const (
	WindowAfterRain      = "15-30 days after rain subsides"
	WindowImmediate      = "Immediate planting recommended"
	postRainPlantingDays = 15
)

// SchedulePlanting delays planting by fifteen days under heavy rainfall and
// recommends planting today otherwise.
func SchedulePlanting(rainfall string, now time.Time) models.PlantingStrategy {
	if IsHeavyRainfall(rainfall) {
		return models.PlantingStrategy{
			Window:          WindowAfterRain,
			RecommendedDate: now.AddDate(0, 0, postRainPlantingDays).Format(recommendedDateLayout),
		}
	}
	return models.PlantingStrategy{
		Window:          WindowImmediate,
		RecommendedDate: now.Format(recommendedDateLayout),
	}
}
