// Package render formats plans and signals for people: terminal output,
// email bodies and SMS. It only presents what the planner decided.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"farm-advisor/internal/models"
)

const smsLimit = 160

func title(s string) string {
	return cases.Title(language.English).String(s)
}

// Plan writes the full plan as plain text.
func Plan(w io.Writer, plan models.RecommendationPlan) error {
	p := &printer{w: w}

	p.line("Recommended Crop: %s", title(plan.SuggestedCrop))
	p.line("Planting Window: %s", plan.PlantingStrategy.Window)
	p.line("Recommended Date: %s", plan.PlantingStrategy.RecommendedDate)
	p.line("Expected Yield: %s", plan.ExpectedYield)

	p.section("Budget Plan")
	p.line("  Fertilizer: %s", plan.BudgetPlan.Fertilizer)
	p.line("  Pesticides: %s", plan.BudgetPlan.Pesticides)
	p.line("  Irrigation: %s", plan.BudgetPlan.Irrigation)
	p.line("  Equipment:  %s", plan.BudgetPlan.Equipment)

	p.section("Soil Management")
	p.bullets(plan.SoilManagement)

	p.section("Market Advice")
	p.line("  %s", plan.MarketAdvice)

	p.section("Expert Tips")
	if len(plan.ExpertTips) == 0 {
		p.line("  No expert tips available.")
	}
	p.bullets(plan.ExpertTips)

	p.section("Risk Assessment")
	p.risks(plan.RiskAssessment)

	return p.err
}

// Signals writes the inputs a plan was built from.
func Signals(w io.Writer, s models.Signals) error {
	p := &printer{w: w}

	p.section("Weather")
	switch {
	case s.Weather == nil:
		p.line("  unavailable")
	case s.Weather.Error != "":
		p.line("  unavailable: %s", s.Weather.Error)
	default:
		if s.Weather.Temperature != nil {
			p.line("  Temperature: %.1f°C", *s.Weather.Temperature)
		}
		p.line("  Rainfall: %s", title(s.Weather.Rainfall))
		if s.Weather.Humidity != nil {
			p.line("  Humidity: %.0f%%", *s.Weather.Humidity)
		}
		if s.Weather.WindSpeed != nil {
			p.line("  Wind: %.1f km/h", *s.Weather.WindSpeed)
		}
		if s.Weather.Description != "" {
			p.line("  Conditions: %s", s.Weather.Description)
		}
	}

	if s.Soil != nil {
		p.section("Soil")
		p.line("  Type: %s", title(s.Soil.Type))
		if s.Soil.PH != nil {
			p.line("  pH: %.1f", *s.Soil.PH)
		}
		p.line("  Moisture Retention: %s", title(s.Soil.Moisture))
		if len(s.Soil.Nutrients) > 0 {
			p.line("  Nutrients: N:%.1f P:%.1f K:%.1f",
				s.Soil.Nutrients[models.NutrientN], s.Soil.Nutrients[models.NutrientP], s.Soil.Nutrients[models.NutrientK])
		}
	}

	if s.Farmer != nil && len(s.Farmer.RecommendedCrops) > 0 {
		p.section("Suitable Crops")
		p.bullets(s.Farmer.RecommendedCrops)
	}

	if s.Market != nil {
		p.section("Market")
		if len(s.Market.Prices) > 0 {
			q := s.Market.Prices[0]
			p.line("  %s: min ₹%.0f, modal ₹%.0f, max ₹%.0f per %s", q.Mandi, q.MinPrice, q.ModalPrice, q.MaxPrice, q.Unit)
		}
		if n := len(s.Market.Trends); n > 0 {
			first, last := s.Market.Trends[0], s.Market.Trends[n-1]
			p.line("  Trend: %d points, %s ₹%.0f to %s ₹%.0f", n, first.Date, first.ModalPrice, last.Date, last.ModalPrice)
		}
		if d := s.Market.Demand; d != nil {
			if d.Demand != "" {
				p.line("  Demand: %s", d.Demand)
			}
			if d.TopCrop != "" {
				p.line("  Top Crop: %s (%s)", title(d.TopCrop), d.MarketPrice)
			}
			p.line("  Market Trend: %s", title(d.Trend))
		}
	}

	return p.err
}

// PreferredNote comments on the farmer's preferred crop. It is empty when no
// preference was given.
func PreferredNote(preferred string, suitable *bool) string {
	if suitable == nil || strings.TrimSpace(preferred) == "" {
		return ""
	}
	if *suitable {
		return fmt.Sprintf("Your preferred crop (%s) is suitable!", preferred)
	}
	return fmt.Sprintf("Note: %s may not be ideal for current conditions", preferred)
}

// SMS condenses a plan into a single text message.
func SMS(plan models.RecommendationPlan) string {
	msg := fmt.Sprintf("Farm plan: grow %s. %s from %s. Yield ~%s. %s",
		title(plan.SuggestedCrop),
		plan.PlantingStrategy.Window,
		plan.PlantingStrategy.RecommendedDate,
		plan.ExpectedYield,
		riskSummary(plan.RiskAssessment),
	)
	if r := []rune(msg); len(r) > smsLimit {
		msg = string(r[:smsLimit-3]) + "..."
	}
	return msg
}

// Subject is the email subject line for a plan.
func Subject(plan models.RecommendationPlan) string {
	return fmt.Sprintf("Your farming plan: %s", title(plan.SuggestedCrop))
}

func riskSummary(r models.RiskAssessment) string {
	if r.IsLowRisk() {
		return "Low risk."
	}
	return "Risks: " + strings.Join(riskNames(r), ", ") + "."
}

func riskNames(r models.RiskAssessment) []string {
	names := make([]string, 0, len(r.Risks))
	for name := range r.Risks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) section(name string) {
	p.line("")
	p.line("%s", name)
}

func (p *printer) bullets(items []string) {
	for _, it := range items {
		p.line("  - %s", it)
	}
}

func (p *printer) risks(r models.RiskAssessment) {
	if r.IsLowRisk() {
		status := r.Status
		if status == "" {
			status = models.LowRiskStatus
		}
		p.line("  %s", status)
		return
	}
	for _, name := range riskNames(r) {
		risk := r.Risks[name]
		p.line("  - %s: probability %.2f, %s", title(strings.ReplaceAll(name, "_", " ")), risk.Probability, risk.Mitigation)
	}
}
