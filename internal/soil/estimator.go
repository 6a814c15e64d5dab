// Package soil estimates soil properties from the farmer's land type and
// shortlists crops suited to the soil and current weather.
package soil

import (
	"strings"

	"farm-advisor/internal/models"
	"farm-advisor/internal/planner"
)

const (
	coolBelow = 15.0
	hotAbove  = 30.0
)

var soilByLand = map[string]string{
	models.LandTypeDry:     models.SoilSandy,
	models.LandTypeWet:     models.SoilClay,
	models.LandTypeUpland:  models.SoilLoamy,
	models.LandTypeLowland: models.SoilSilty,
}

var phBySoil = map[string]float64{
	models.SoilSandy: 6.2,
	models.SoilClay:  7.1,
	models.SoilLoamy: 6.8,
	models.SoilSilty: 6.5,
}

var moistureBySoil = map[string]string{
	models.SoilSandy: models.MoistureLow,
	models.SoilClay:  models.MoistureHigh,
	models.SoilLoamy: models.MoistureMedium,
	models.SoilSilty: models.MoistureMediumHigh,
}

// cropsBySoil is keyed by soil type then rainfall category.
var cropsBySoil = map[string]map[string][]string{
	models.SoilSandy: {
		models.RainfallLow:      {"Pearl millet", "Sorghum", "Groundnut"},
		models.RainfallModerate: {"Maize", "Sunflower", "Watermelon"},
		models.RainfallHigh:     {"Sweet potato", "Carrot", "Cassava"},
	},
	models.SoilClay: {
		models.RainfallLow:      {"Wheat", "Barley", "Oats"},
		models.RainfallModerate: {"Rice", "Sugarcane", "Soybean"},
		models.RainfallHigh:     {"Taro", "Lettuce", "Spinach"},
	},
	models.SoilLoamy: {
		models.RainfallLow:      {"Chickpea", "Lentil", "Green gram"},
		models.RainfallModerate: {"Tomato", "Brinjal", "Cabbage"},
		models.RainfallHigh:     {"Potato", "Onion", "Garlic"},
	},
	models.SoilSilty: {
		models.RainfallLow:      {"Cotton", "Sesame", "Mustard"},
		models.RainfallModerate: {"Wheat", "Barley", "Peas"},
		models.RainfallHigh:     {"Rice", "Jute", "Tobacco"},
	},
}

var (
	coolSeasonCrops = map[string]bool{"Wheat": true, "Barley": true, "Oats": true, "Potato": true}
	hardyCrops      = map[string]bool{"Sorghum": true, "Pearl millet": true, "Groundnut": true, "Cassava": true}
)

// SoilType maps a land type to its soil type. Unknown land is loamy.
func SoilType(landType string) string {
	if t, ok := soilByLand[strings.ToLower(strings.TrimSpace(landType))]; ok {
		return t
	}
	return models.SoilLoamy
}

// Analyze estimates the full soil report for a land type.
func Analyze(landType string) *models.SoilReport {
	land := strings.ToLower(strings.TrimSpace(landType))
	soilType := SoilType(land)

	ph, ok := phBySoil[soilType]
	if !ok {
		ph = planner.DefaultPH
	}
	moisture, ok := moistureBySoil[soilType]
	if !ok {
		moisture = planner.DefaultMoisture
	}

	return &models.SoilReport{
		Type:      soilType,
		PH:        models.Float(ph),
		Nutrients: nutrients(land),
		Moisture:  moisture,
	}
}

func nutrients(land string) map[string]float64 {
	n, p, k := 0.8, 0.7, 0.6
	if land == models.LandTypeDry {
		n = 0.5
	}
	if land == models.LandTypeWet {
		p = 0.6
	}
	if land == models.LandTypeUpland {
		k = 0.7
	}
	return map[string]float64{models.NutrientN: n, models.NutrientP: p, models.NutrientK: k}
}

// RecommendCrops shortlists crops for a soil type under the given weather.
// A missing or failed weather signal is treated as moderate rain at 25°C.
// Heavy rainfall uses the high-rainfall column. Below 15°C only cool-season
// crops survive the filter and above 30°C only heat-hardy ones.
func RecommendCrops(soilType string, w *models.WeatherSignal) []string {
	rainfall := planner.DefaultRainfall
	temp := planner.DefaultTemperature
	if w != nil && w.Error == "" {
		if w.Rainfall != "" {
			rainfall = strings.ToLower(strings.TrimSpace(w.Rainfall))
		}
		if w.Temperature != nil {
			temp = *w.Temperature
		}
	}
	if planner.IsHeavyRainfall(rainfall) {
		rainfall = models.RainfallHigh
	}

	base := cropsBySoil[strings.ToLower(soilType)][rainfall]

	var keep map[string]bool
	switch {
	case temp < coolBelow:
		keep = coolSeasonCrops
	case temp > hotAbove:
		keep = hardyCrops
	default:
		return append([]string(nil), base...)
	}

	out := []string{}
	for _, c := range base {
		if keep[c] {
			out = append(out, c)
		}
	}
	return out
}
