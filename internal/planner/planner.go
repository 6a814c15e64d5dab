// internal/planner/planner.go

// Package planner folds weather, soil, market and expert signals into a
// single recommendation plan. Every operation is a pure function of its
// inputs and the Planner's constant tables; nothing here performs I/O or
// returns an error.
package planner

import (
	"farm-advisor/internal/models"
)

type Planner struct {
	cfg Config
}

func New(cfg Config) *Planner {
	return &Planner{cfg: cfg.withDefaults()}
}

// Compose normalizes the raw signals and assembles a fully populated plan.
// The worst case is a plan built entirely from defaults.
func (p *Planner) Compose(raw *models.Signals) models.RecommendationPlan {
	return p.ComposeNormalized(Normalize(raw))
}

// ComposeNormalized assembles a plan from already normalized signals.
func (p *Planner) ComposeNormalized(s Signals) models.RecommendationPlan {
	crop := p.SelectCrop(s.Farmer, s.Market)
	// rated on the farmer's preferred crop, not the suggestion
	yield := p.EstimateYield(s.Farmer.PreferredCrop, s.Farmer.Area, s.Soil.Nutrients)

	return models.RecommendationPlan{
		SuggestedCrop:    crop,
		PlantingStrategy: SchedulePlanting(s.Weather.Rainfall, p.cfg.Clock()),
		BudgetPlan:       p.PlanBudget(s.Farmer.Budget),
		SoilManagement:   AdviseSoil(s.Soil),
		MarketAdvice:     AdviseMarket(s.Market.Trend, s.Market.ModalPrice),
		ExpertTips:       s.ExpertTips,
		RiskAssessment:   p.AssessRisks(s.Weather, s.Soil),
		ExpectedYield:    yield,
	}
}
