// internal/models/plan.go
package models

import (
	"encoding/json"
	"fmt"
)

// Risk names reported by the risk assessment.
const (
	RiskFlooding   = "flooding"
	RiskHeatStress = "heat_stress"
	RiskDrought    = "drought"
)

const LowRiskStatus = "Low risk conditions"

type RecommendationPlan struct {
	SuggestedCrop    string           `json:"suggestedCrop"`
	PlantingStrategy PlantingStrategy `json:"plantingStrategy"`
	BudgetPlan       BudgetPlan       `json:"budgetPlan"`
	SoilManagement   []string         `json:"soilManagement"`
	MarketAdvice     string           `json:"marketAdvice"`
	ExpertTips       []string         `json:"expertTips"`
	RiskAssessment   RiskAssessment   `json:"riskAssessment"`
	ExpectedYield    string           `json:"expectedYield"`
}

type PlantingStrategy struct {
	Window          string `json:"window"`
	RecommendedDate string `json:"recommendedDate"`
}

type BudgetPlan struct {
	Fertilizer string `json:"fertilizer"`
	Pesticides string `json:"pesticides"`
	Irrigation string `json:"irrigation"`
	Equipment  string `json:"equipment"`
}

type Risk struct {
	Probability float64 `json:"probability"`
	Mitigation  string  `json:"mitigation"`
}

// RiskAssessment is either a set of named risks or, when none fired, the
// low-risk status sentinel. On the wire both forms are a flat JSON object:
// {"flooding": {...}} or {"status": "Low risk conditions"}.
type RiskAssessment struct {
	Risks  map[string]Risk
	Status string
}

func LowRisk() RiskAssessment {
	return RiskAssessment{Status: LowRiskStatus}
}

func (r RiskAssessment) IsLowRisk() bool {
	return len(r.Risks) == 0
}

func (r RiskAssessment) MarshalJSON() ([]byte, error) {
	if len(r.Risks) == 0 {
		status := r.Status
		if status == "" {
			status = LowRiskStatus
		}
		return json.Marshal(map[string]string{"status": status})
	}
	return json.Marshal(r.Risks)
}

func (r *RiskAssessment) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("risk assessment: %w", err)
	}

	r.Risks = nil
	r.Status = ""
	if status, ok := raw["status"]; ok && len(raw) == 1 {
		return json.Unmarshal(status, &r.Status)
	}

	risks := make(map[string]Risk, len(raw))
	for name, body := range raw {
		var risk Risk
		if err := json.Unmarshal(body, &risk); err != nil {
			return fmt.Errorf("risk %q: %w", name, err)
		}
		risks[name] = risk
	}
	if len(risks) > 0 {
		r.Risks = risks
	}
	return nil
}
