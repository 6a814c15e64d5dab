package expert

import (
	"strings"

	"farm-advisor/internal/models"
	"farm-advisor/internal/planner"
)

const (
	TipMulch          = "Mulch between rows to conserve soil moisture"
	TipDrip           = "Prefer drip irrigation to make the most of limited water"
	TipRaisedBeds     = "Use raised beds or ridges so excess water drains away"
	TipSandyCompost   = "Work in compost or farmyard manure to help sandy soil hold water"
	TipClayTillage    = "Avoid tilling clay soil while wet to prevent compaction"
	TipDelayFertilize = "Delay top-dressing fertilizer until heavy rain passes"
	TipIrrigateCool   = "Irrigate in the early morning or evening to reduce evaporation"
	TipHeatShade      = "Irrigate lightly during peak heat and consider shade nets for seedlings"
	TipColdCover      = "Protect seedlings from cold nights with row covers or straw"
	TipRotate         = "Rotate crops each season with a legume to restore soil nitrogen"
)

// Heuristics derives practice tips from soil and weather. The list always
// ends with the crop rotation tip so it is never empty.
func Heuristics(soil *models.SoilReport, weather *models.WeatherSignal) []string {
	n := planner.Normalize(&models.Signals{Soil: soil, Weather: weather})
	w, s := n.Weather, n.Soil
	rainfall := strings.ToLower(w.Rainfall)

	var tips []string
	switch s.Moisture {
	case models.MoistureLow:
		tips = append(tips, TipMulch, TipDrip)
	case models.MoistureHigh, models.MoistureMediumHigh:
		tips = append(tips, TipRaisedBeds)
	}

	switch s.Type {
	case models.SoilSandy:
		tips = append(tips, TipSandyCompost)
	case models.SoilClay:
		tips = append(tips, TipClayTillage)
	}

	switch {
	case planner.IsHeavyRainfall(rainfall) || rainfall == models.RainfallHigh:
		tips = append(tips, TipDelayFertilize)
	case rainfall == models.RainfallLow:
		tips = append(tips, TipIrrigateCool)
	}

	switch {
	case w.Temperature > 35:
		tips = append(tips, TipHeatShade)
	case w.Temperature < 15:
		tips = append(tips, TipColdCover)
	}

	return append(tips, TipRotate)
}
