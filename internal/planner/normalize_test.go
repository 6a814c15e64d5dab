package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"farm-advisor/internal/models"
)

func TestNormalize_Nil(t *testing.T) {
	s := Normalize(nil)

	assert.Equal(t, Weather{
		Temperature: 25,
		Rainfall:    "moderate",
		Humidity:    60,
		WindSpeed:   10,
		Description: "clear sky",
	}, s.Weather)
	assert.Equal(t, Soil{
		Type:      "loamy",
		PH:        6.5,
		Moisture:  "medium",
		Nutrients: Nutrients{N: 0.5, P: 0.5, K: 0.5},
	}, s.Soil)
	assert.Equal(t, "medium", s.Farmer.Budget)
	assert.Equal(t, 1.0, s.Farmer.Area)
	assert.NotNil(t, s.Farmer.RecommendedCrops)
	assert.NotNil(t, s.ExpertTips)
	assert.Equal(t, "stable", s.Market.Trend)
	assert.Zero(t, s.Market.ModalPrice)
	assert.NotNil(t, s.Market.Prices)
	assert.NotNil(t, s.Market.Trends)
}

func TestNormalize_PartialWeather(t *testing.T) {
	s := Normalize(&models.Signals{
		Weather: &models.WeatherSignal{
			Temperature: models.Float(0),
			Rainfall:    "low",
		},
	})

	assert.Equal(t, 0.0, s.Weather.Temperature, "a zero reading is kept")
	assert.Equal(t, "low", s.Weather.Rainfall)
	assert.Equal(t, 60.0, s.Weather.Humidity)
	assert.Equal(t, 10.0, s.Weather.WindSpeed)
	assert.Equal(t, "clear sky", s.Weather.Description)
}

func TestNormalize_WeatherErrorDiscardsReadings(t *testing.T) {
	s := Normalize(&models.Signals{
		Weather: &models.WeatherSignal{
			Temperature: models.Float(41),
			Rainfall:    "heavy",
			Error:       "Invalid API key",
			StatusCode:  401,
		},
	})

	assert.Equal(t, 25.0, s.Weather.Temperature)
	assert.Equal(t, "moderate", s.Weather.Rainfall)
}

func TestNormalize_PartialSoil(t *testing.T) {
	s := Normalize(&models.Signals{
		Soil: &models.SoilReport{
			Type:      "Clay",
			Nutrients: map[string]float64{models.NutrientN: 0.9},
		},
	})

	assert.Equal(t, "clay", s.Soil.Type)
	assert.Equal(t, 6.5, s.Soil.PH)
	assert.Equal(t, "medium", s.Soil.Moisture)
	assert.Equal(t, Nutrients{N: 0.9, P: 0.5, K: 0.5}, s.Soil.Nutrients)
}

func TestNormalize_FarmerAndMarket(t *testing.T) {
	s := Normalize(&models.Signals{
		Farmer: &models.FarmerInput{
			Location:         " Karnataka ",
			LandType:         "Dry",
			Area:             -3,
			Budget:           "LOW",
			RecommendedCrops: []string{"Maize", " ", "Sunflower"},
		},
		Market: &models.MarketSnapshot{
			Prices: []models.PriceQuote{{Mandi: "A", ModalPrice: 2300}, {Mandi: "B", ModalPrice: 9999}},
			Demand: &models.Demand{TopCrop: "maize", Trend: "Decreasing"},
		},
	})

	assert.Equal(t, "Karnataka", s.Farmer.Location)
	assert.Equal(t, "dry", s.Farmer.LandType)
	assert.Equal(t, 1.0, s.Farmer.Area)
	assert.Equal(t, "LOW", s.Farmer.Budget)
	assert.Equal(t, []string{"Maize", "Sunflower"}, s.Farmer.RecommendedCrops)
	assert.Equal(t, 2300.0, s.Market.ModalPrice)
	assert.Equal(t, "maize", s.Market.TopCrop)
	assert.Equal(t, "decreasing", s.Market.Trend)
}

func TestNew_FillsMissingTables(t *testing.T) {
	p := New(Config{BaseYield: map[string]float64{"wheat": 1000}})

	assert.Equal(t, "millet", p.SelectCrop(Farmer{}, Market{}))
	assert.Equal(t, "1200.0 kg", p.EstimateYield("wheat", 1, Nutrients{1, 1, 1}))
	assert.Equal(t, "2400.0 kg", p.EstimateYield("sorghum", 1, Nutrients{1, 1, 1}))
	assert.Equal(t, "Drip irrigation", p.PlanBudget("unknown").Irrigation)
	assert.True(t, p.AssessRisks(Weather{Rainfall: "heavy"}, Soil{}).Risks[models.RiskFlooding].Probability > 0)
}
