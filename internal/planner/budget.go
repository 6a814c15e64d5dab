// internal/planner/budget.go
package planner

import (
	"strings"

	"farm-advisor/internal/models"
)

// PlanBudget maps a budget tier to its input bundle. Unknown tiers get the
// medium bundle.
func (p *Planner) PlanBudget(tier string) models.BudgetPlan {
	if plan, ok := p.cfg.Budgets[strings.ToLower(strings.TrimSpace(tier))]; ok {
		return plan
	}
	return p.cfg.Budgets[models.BudgetMedium]
}
