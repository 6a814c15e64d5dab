// internal/models/farm.go
package models

// Land types accepted on a farmer request.
const (
	LandTypeDry     = "dry"
	LandTypeWet     = "wet"
	LandTypeUpland  = "upland"
	LandTypeLowland = "lowland"
)

// Budget tiers. Comparison is case-insensitive.
const (
	BudgetLow    = "low"
	BudgetMedium = "medium"
	BudgetHigh   = "high"
)

// Rainfall categories. Providers may send other spellings; they are compared
// case-insensitively.
const (
	RainfallLow       = "low"
	RainfallModerate  = "moderate"
	RainfallHigh      = "high"
	RainfallHeavy     = "heavy"
	RainfallVeryHeavy = "very heavy"
)

// Soil types.
const (
	SoilSandy = "sandy"
	SoilClay  = "clay"
	SoilLoamy = "loamy"
	SoilSilty = "silty"
)

// Soil moisture categories.
const (
	MoistureLow        = "low"
	MoistureMedium     = "medium"
	MoistureMediumHigh = "medium-high"
	MoistureHigh       = "high"
)

// Market trend directions.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// Demand levels.
const (
	DemandHigh   = "High"
	DemandMedium = "Medium"
)

// Nutrient keys of SoilReport.Nutrients.
const (
	NutrientN = "N"
	NutrientP = "P"
	NutrientK = "K"
)

const UnitQuintal = "Quintal"

type FarmerInput struct {
	Location         string   `json:"location"`
	LandType         string   `json:"landType"`
	Area             float64  `json:"area"`
	Budget           string   `json:"budget"`
	PreferredCrop    string   `json:"preferredCrop,omitempty"`
	RecommendedCrops []string `json:"recommendedCrops,omitempty"`
}

// WeatherSignal is what the weather provider returns. Numeric fields are
// pointers so a partial payload can be told apart from a zero reading. When
// Error is set none of the other fields are trusted.
type WeatherSignal struct {
	Temperature *float64 `json:"temperature,omitempty"`
	Rainfall    string   `json:"rainfall,omitempty"`
	Humidity    *float64 `json:"humidity,omitempty"`
	WindSpeed   *float64 `json:"windSpeed,omitempty"`
	Description string   `json:"description,omitempty"`
	Error       string   `json:"error,omitempty"`
	StatusCode  int      `json:"statusCode,omitempty"`
}

type SoilReport struct {
	Type      string             `json:"type,omitempty"`
	PH        *float64           `json:"ph,omitempty"`
	Nutrients map[string]float64 `json:"nutrients,omitempty"`
	Moisture  string             `json:"moisture,omitempty"`
}

type PriceQuote struct {
	Mandi      string  `json:"mandi"`
	MinPrice   float64 `json:"minPrice"`
	ModalPrice float64 `json:"modalPrice"`
	MaxPrice   float64 `json:"maxPrice"`
	Unit       string  `json:"unit"`
}

type TrendPoint struct {
	Date       string  `json:"date"`
	Mandi      string  `json:"mandi"`
	ModalPrice float64 `json:"modalPrice"`
	Unit       string  `json:"unit"`
}

type Demand struct {
	TopCrop     string `json:"topCrop,omitempty"`
	Crop        string `json:"crop,omitempty"`
	Demand      string `json:"demand,omitempty"`
	MarketPrice string `json:"marketPrice,omitempty"`
	Trend       string `json:"trend,omitempty"`
	LastUpdated string `json:"lastUpdated,omitempty"`
}

type MarketSnapshot struct {
	Prices []PriceQuote `json:"prices,omitempty"`
	Trends []TrendPoint `json:"trends,omitempty"`
	Demand *Demand      `json:"demand,omitempty"`

	// Fallback marks a snapshot whose prices are placeholders because no
	// record fell inside the price window. It is never serialized.
	Fallback bool `json:"-"`
}

// Signals bundles every input of a recommendation request. Each field may be
// nil.
type Signals struct {
	Farmer     *FarmerInput    `json:"farmer,omitempty"`
	Weather    *WeatherSignal  `json:"weather,omitempty"`
	Soil       *SoilReport     `json:"soil,omitempty"`
	ExpertTips []string        `json:"expertTips,omitempty"`
	Market     *MarketSnapshot `json:"market,omitempty"`
}

func Float(v float64) *float64 {
	return &v
}
