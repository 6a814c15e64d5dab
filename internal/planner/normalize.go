// internal/planner/normalize.go
package planner

import (
	"strings"

	"farm-advisor/internal/models"
)

// Defaults substituted for missing or failed signals.
const (
	DefaultRainfall    = models.RainfallModerate
	DefaultTemperature = 25.0
	DefaultHumidity    = 60.0
	DefaultWindSpeed   = 10.0
	DefaultDescription = "clear sky"

	DefaultSoilType = models.SoilLoamy
	DefaultPH       = 6.5
	DefaultMoisture = models.MoistureMedium
	DefaultNutrient = 0.5

	DefaultBudget      = models.BudgetMedium
	DefaultArea        = 1.0
	DefaultMarketTrend = models.TrendStable
)

// Weather is a fully populated weather signal.
type Weather struct {
	Temperature float64
	Rainfall    string
	Humidity    float64
	WindSpeed   float64
	Description string
}

type Nutrients struct {
	N float64
	P float64
	K float64
}

// Composite is the unweighted mean of N, P and K.
func (n Nutrients) Composite() float64 {
	return (n.N + n.P + n.K) / 3
}

type Soil struct {
	Type      string
	PH        float64
	Nutrients Nutrients
	Moisture  string
}

type Market struct {
	Prices  []models.PriceQuote
	Trends  []models.TrendPoint
	TopCrop string
	Trend   string
	// ModalPrice is the modal price of the first quote, 0 without quotes.
	ModalPrice float64
}

type Farmer struct {
	Location         string
	LandType         string
	Area             float64
	Budget           string
	PreferredCrop    string
	RecommendedCrops []string
}

// Signals is the normalized input every other component works from.
type Signals struct {
	Farmer     Farmer
	Weather    Weather
	Soil       Soil
	ExpertTips []string
	Market     Market
}

// Normalize replaces every missing or partial signal with documented
// defaults. It never fails and never mutates its argument.
func Normalize(in *models.Signals) Signals {
	if in == nil {
		in = &models.Signals{}
	}
	return Signals{
		Farmer:     normalizeFarmer(in.Farmer),
		Weather:    normalizeWeather(in.Weather),
		Soil:       normalizeSoil(in.Soil),
		ExpertTips: normalizeTips(in.ExpertTips),
		Market:     normalizeMarket(in.Market),
	}
}

func normalizeFarmer(f *models.FarmerInput) Farmer {
	out := Farmer{
		Budget:           DefaultBudget,
		Area:             DefaultArea,
		RecommendedCrops: []string{},
	}
	if f == nil {
		return out
	}
	out.Location = strings.TrimSpace(f.Location)
	out.LandType = strings.ToLower(strings.TrimSpace(f.LandType))
	out.PreferredCrop = strings.TrimSpace(f.PreferredCrop)
	if b := strings.TrimSpace(f.Budget); b != "" {
		out.Budget = b
	}
	if f.Area > 0 {
		out.Area = f.Area
	}
	for _, c := range f.RecommendedCrops {
		if c = strings.TrimSpace(c); c != "" {
			out.RecommendedCrops = append(out.RecommendedCrops, c)
		}
	}
	return out
}

func normalizeWeather(w *models.WeatherSignal) Weather {
	out := Weather{
		Temperature: DefaultTemperature,
		Rainfall:    DefaultRainfall,
		Humidity:    DefaultHumidity,
		WindSpeed:   DefaultWindSpeed,
		Description: DefaultDescription,
	}
	// A failed fetch carries no trustworthy readings.
	if w == nil || w.Error != "" {
		return out
	}
	if w.Temperature != nil {
		out.Temperature = *w.Temperature
	}
	if r := strings.TrimSpace(w.Rainfall); r != "" {
		out.Rainfall = r
	}
	if w.Humidity != nil {
		out.Humidity = *w.Humidity
	}
	if w.WindSpeed != nil {
		out.WindSpeed = *w.WindSpeed
	}
	if d := strings.TrimSpace(w.Description); d != "" {
		out.Description = d
	}
	return out
}

func normalizeSoil(s *models.SoilReport) Soil {
	out := Soil{
		Type:     DefaultSoilType,
		PH:       DefaultPH,
		Moisture: DefaultMoisture,
		Nutrients: Nutrients{
			N: DefaultNutrient,
			P: DefaultNutrient,
			K: DefaultNutrient,
		},
	}
	if s == nil {
		return out
	}
	if s.Type != "" {
		out.Type = strings.ToLower(s.Type)
	}
	if s.PH != nil {
		out.PH = *s.PH
	}
	if s.Moisture != "" {
		out.Moisture = strings.ToLower(s.Moisture)
	}
	if v, ok := s.Nutrients[models.NutrientN]; ok {
		out.Nutrients.N = v
	}
	if v, ok := s.Nutrients[models.NutrientP]; ok {
		out.Nutrients.P = v
	}
	if v, ok := s.Nutrients[models.NutrientK]; ok {
		out.Nutrients.K = v
	}
	return out
}

func normalizeTips(tips []string) []string {
	out := make([]string, len(tips))
	copy(out, tips)
	return out
}

func normalizeMarket(m *models.MarketSnapshot) Market {
	out := Market{
		Prices: []models.PriceQuote{},
		Trends: []models.TrendPoint{},
		Trend:  DefaultMarketTrend,
	}
	if m == nil {
		return out
	}
	out.Prices = append(out.Prices, m.Prices...)
	out.Trends = append(out.Trends, m.Trends...)
	if len(m.Prices) > 0 {
		out.ModalPrice = m.Prices[0].ModalPrice
	}
	if m.Demand != nil {
		out.TopCrop = strings.TrimSpace(m.Demand.TopCrop)
		if t := strings.ToLower(strings.TrimSpace(m.Demand.Trend)); t != "" {
			out.Trend = t
		}
	}
	return out
}
