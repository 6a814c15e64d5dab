// internal/planner/risk.go
package planner

import (
	"strings"

	"farm-advisor/internal/models"
)

// AssessRisks evaluates every risk rule independently. When nothing fires the
// low-risk sentinel is returned instead of an empty mapping.
func (p *Planner) AssessRisks(w Weather, s Soil) models.RiskAssessment {
	risks := make(map[string]models.Risk)
	for _, rule := range p.cfg.RiskRules {
		if rule.Applies == nil || !rule.Applies(w, s) {
			continue
		}
		risks[rule.Name] = models.Risk{
			Probability: rule.Probability,
			Mitigation:  rule.Mitigation,
		}
	}
	if len(risks) == 0 {
		return models.LowRisk()
	}
	return models.RiskAssessment{Risks: risks}
}

// IsHeavyRainfall reports whether a rainfall category is heavy or very heavy.
func IsHeavyRainfall(rainfall string) bool {
	switch strings.ToLower(strings.TrimSpace(rainfall)) {
	case models.RainfallHeavy, models.RainfallVeryHeavy:
		return true
	}
	return false
}
