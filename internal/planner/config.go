// internal/planner/config.go
package planner

import (
	"time"

	"farm-advisor/internal/models"
)

const (
	DefaultYieldMultiplier = 1.2
	DefaultCrop            = "millet"
	defaultBaseYieldKey    = "default"
	recommendedDateLayout  = "02-Jan-2006"
)

// Config holds the constant tables the planner works from. Every Planner owns
// its own copy; nothing here is package-level mutable state.
type Config struct {
	// BaseYield is kg per acre keyed by lower-case crop name. The "default"
	// entry is used for crops not in the table.
	BaseYield       map[string]float64
	YieldMultiplier float64
	Budgets         map[string]models.BudgetPlan
	RiskRules       []RiskRule
	FallbackCrop    string
	Clock           func() time.Time
}

// RiskRule fires independently of every other rule.
type RiskRule struct {
	Name        string
	Probability float64
	Mitigation  string
	Applies     func(w Weather, s Soil) bool
}

func DefaultConfig() Config {
	return Config{
		BaseYield: map[string]float64{
			"wheat":             2000,
			"rice":              2500,
			"millet":            1800,
			"maize":             3000,
			defaultBaseYieldKey: 2000,
		},
		YieldMultiplier: DefaultYieldMultiplier,
		Budgets: map[string]models.BudgetPlan{
			models.BudgetLow: {
				Fertilizer: "Organic manure only",
				Pesticides: "Neem oil biopesticides",
				Irrigation: "Rain-fed",
				Equipment:  "Manual tools",
			},
			models.BudgetMedium: {
				Fertilizer: "50% organic + 50% chemical",
				Pesticides: "Combination approach",
				Irrigation: "Drip irrigation",
				Equipment:  "Basic machinery",
			},
			models.BudgetHigh: {
				Fertilizer: "Precision farming inputs",
				Pesticides: "Integrated pest management",
				Irrigation: "Automated systems",
				Equipment:  "Full mechanization",
			},
		},
		RiskRules: []RiskRule{
			{
				Name:        models.RiskFlooding,
				Probability: 0.7,
				Mitigation:  "Ensure proper drainage systems",
				Applies: func(w Weather, _ Soil) bool {
					return IsHeavyRainfall(w.Rainfall)
				},
			},
			{
				Name:        models.RiskHeatStress,
				Probability: 0.6,
				Mitigation:  "Install shade nets and increase irrigation",
				Applies: func(w Weather, _ Soil) bool {
					return w.Temperature > 35
				},
			},
			{
				Name:        models.RiskDrought,
				Probability: 0.65,
				Mitigation:  "Implement water conservation measures",
				Applies: func(_ Weather, s Soil) bool {
					return s.Moisture == models.MoistureLow
				},
			},
		},
		FallbackCrop: DefaultCrop,
		Clock:        time.Now,
	}
}

// withDefaults fills any zero-valued table from DefaultConfig so a partially
// populated Config still yields a complete plan.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if len(c.BaseYield) == 0 {
		c.BaseYield = def.BaseYield
	}
	if _, ok := c.BaseYield[defaultBaseYieldKey]; !ok {
		base := make(map[string]float64, len(c.BaseYield)+1)
		for k, v := range c.BaseYield {
			base[k] = v
		}
		base[defaultBaseYieldKey] = def.BaseYield[defaultBaseYieldKey]
		c.BaseYield = base
	}
	if c.YieldMultiplier <= 0 {
		c.YieldMultiplier = def.YieldMultiplier
	}
	if _, ok := c.Budgets[models.BudgetMedium]; !ok {
		c.Budgets = def.Budgets
	}
	if c.RiskRules == nil {
		c.RiskRules = def.RiskRules
	}
	if c.FallbackCrop == "" {
		c.FallbackCrop = def.FallbackCrop
	}
	if c.Clock == nil {
		c.Clock = def.Clock
	}
	return c
}
