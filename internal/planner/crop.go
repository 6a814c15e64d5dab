// internal/planner/crop.go
package planner

import "strings"

// SelectCrop picks the suggested crop. First match wins:
//  1. the market's top-demand crop, if the soil candidates contain it
//  2. the first soil candidate
//  3. the farmer's preferred crop, then the market's top crop, then the
//     fallback crop
func (p *Planner) SelectCrop(farmer Farmer, market Market) string {
	return selectCrop(farmer, market.TopCrop, p.cfg.FallbackCrop)
}

func selectCrop(farmer Farmer, topCrop, fallback string) string {
	candidates := farmer.RecommendedCrops

	if topCrop != "" {
		for _, c := range candidates {
			if strings.EqualFold(c, topCrop) {
				return c
			}
		}
	}
	if len(candidates) > 0 {
		return candidates[0]
	}
	if farmer.PreferredCrop != "" {
		return farmer.PreferredCrop
	}
	if topCrop != "" {
		return topCrop
	}
	return fallback
}
