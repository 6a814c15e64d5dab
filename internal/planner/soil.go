// internal/planner/soil.go
package planner

const (
	AdviceNitrogen    = "Apply nitrogen-rich fertilizers (Urea)"
	AdvicePhosphate   = "Add phosphate fertilizers (DAP)"
	AdvicePotash      = "Use potash fertilizers (MOP)"
	AdviceLime        = "Apply lime to reduce acidity"
	AdviceSulfur      = "Add sulfur to reduce alkalinity"
	AdviceSoilOptimal = "Soil conditions optimal - maintain current practices"
)

// AdviseSoil lists soil amendments for nutrient shortfalls and pH outside
// 6.0–7.5. The result is never empty.
func AdviseSoil(s Soil) []string {
	var recs []string
	if s.Nutrients.N < 0.6 {
		recs = append(recs, AdviceNitrogen)
	}
	if s.Nutrients.P < 0.4 {
		recs = append(recs, AdvicePhosphate)
	}
	if s.Nutrients.K < 0.5 {
		recs = append(recs, AdvicePotash)
	}

	if s.PH < 6 {
		recs = append(recs, AdviceLime)
	} else if s.PH > 7.5 {
		recs = append(recs, AdviceSulfur)
	}

	if len(recs) == 0 {
		return []string{AdviceSoilOptimal}
	}
	return recs
}
