// internal/planner/yield.go
package planner

import (
	"math"
	"strconv"
	"strings"
)

// EstimateYield returns base_rate × area × nutrient composite × multiplier,
// rounded to two decimals and rendered as "<value> kg". A zero composite
// yields "0.0 kg", which marks unusable soil data rather than an error.
func (p *Planner) EstimateYield(crop string, area float64, nutrients Nutrients) string {
	return FormatKg(p.yieldKg(crop, area, nutrients))
}

func (p *Planner) yieldKg(crop string, area float64, nutrients Nutrients) float64 {
	base := p.baseYield(crop)
	raw := base * area * nutrients.Composite() * p.cfg.YieldMultiplier
	return math.Round(raw*100) / 100
}

func (p *Planner) baseYield(crop string) float64 {
	if v, ok := p.cfg.BaseYield[strings.ToLower(strings.TrimSpace(crop))]; ok {
		return v
	}
	return p.cfg.BaseYield[defaultBaseYieldKey]
}

// FormatKg renders a weight with at least one decimal place.
func FormatKg(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s + " kg"
}
