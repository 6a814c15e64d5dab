// internal/planner/market.go
package planner

import (
	"strings"

	"farm-advisor/internal/models"
)

const (
	AdviceHoldStock     = "Consider holding stock for better prices"
	AdviceSellNow       = "Recommend immediate sale after harvest"
	AdviceHighPrice     = "High current prices - good time to sell"
	AdviceMarketStable  = "Market conditions stable"
	HighPriceThreshold  = 5000.0
	trendRiseFactor     = 1.1
	trendFallFactor     = 0.9
	minTrendSeriesPoint = 2
)

// AdviseMarket derives advice from the demand trend and the current modal
// price. Applicable advice is joined with single spaces.
func AdviseMarket(trend string, price float64) string {
	var advice []string
	switch strings.ToLower(trend) {
	case models.TrendIncreasing:
		advice = append(advice, AdviceHoldStock)
	case models.TrendDecreasing:
		advice = append(advice, AdviceSellNow)
	}
	if price > HighPriceThreshold {
		advice = append(advice, AdviceHighPrice)
	}
	if len(advice) == 0 {
		return AdviceMarketStable
	}
	return strings.Join(advice, " ")
}

// ClassifyTrend compares the latest price, the last element of an
// oldest-first series, with the series mean. Series shorter than two points
// are stable.
func ClassifyTrend(prices []float64) string {
	if len(prices) < minTrendSeriesPoint {
		return models.TrendStable
	}
	var sum float64
	for _, p := range prices {
		sum += p
	}
	mean := sum / float64(len(prices))
	latest := prices[len(prices)-1]

	switch {
	case latest > mean*trendRiseFactor:
		return models.TrendIncreasing
	case latest < mean*trendFallFactor:
		return models.TrendDecreasing
	}
	return models.TrendStable
}
