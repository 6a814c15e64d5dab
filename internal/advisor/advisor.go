// Package advisor runs the whole recommendation pipeline in process: it
// gathers every signal for a farmer request and hands them to the planner.
package advisor

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"farm-advisor/internal/common/cache"
	"farm-advisor/internal/common/logger"
	"farm-advisor/internal/common/metrics"
	"farm-advisor/internal/expert"
	"farm-advisor/internal/models"
	"farm-advisor/internal/planner"
	"farm-advisor/internal/soil"
)

// DefaultCommodity is queried for market data when neither a recommended nor
// a preferred crop is known.
const DefaultCommodity = "wheat"

type WeatherSource interface {
	Current(ctx context.Context, location string) *models.WeatherSignal
}

// MarketSource returns a usable snapshot even when err is set.
type MarketSource interface {
	FetchSnapshot(ctx context.Context, state, commodity string) (*models.MarketSnapshot, error)
}

type TipSource interface {
	Suggest(ctx context.Context, soil *models.SoilReport, weather *models.WeatherSignal) expert.Advice
}

// Result is the plan together with the signals it was built from.
type Result struct {
	Signals   models.Signals            `json:"signals"`
	Plan      models.RecommendationPlan `json:"plan"`
	Commodity string                    `json:"commodity"`
	TipSource string                    `json:"tipSource"`
	// PreferredCropSuitable is nil when no preferred crop was given.
	PreferredCropSuitable *bool `json:"preferredCropSuitable,omitempty"`
}

type Service struct {
	weather WeatherSource
	market  MarketSource
	tips    TipSource
	cache   *cache.SignalCache
	planner *planner.Planner
	logger  logger.Logger
}

func NewService(weather WeatherSource, market MarketSource, tips TipSource, signalCache *cache.SignalCache, p *planner.Planner, log logger.Logger) *Service {
	if signalCache == nil {
		signalCache = cache.NewSignalCache(nil, 0, 0, log)
	}
	return &Service{
		weather: weather,
		market:  market,
		tips:    tips,
		cache:   signalCache,
		planner: p,
		logger:  log.WithFields(map[string]interface{}{"component": "advisor"}),
	}
}

// Recommend fetches weather first since soil crop candidates depend on it,
// then market and expert tips concurrently. Collaborator failures degrade to
// defaults and never fail the request; only ctx cancellation is returned.
func (s *Service) Recommend(ctx context.Context, in models.FarmerInput) (*Result, error) {
	log := s.logger.WithFields(map[string]interface{}{"location": in.Location, "landType": in.LandType})

	weather := s.cache.Weather(ctx, in.Location, func(ctx context.Context) *models.WeatherSignal {
		return s.weather.Current(ctx, in.Location)
	})
	if weather != nil && weather.Error != "" {
		log.Warn("weather unavailable, planning with defaults", map[string]interface{}{"error": weather.Error})
	}

	report := soil.Analyze(in.LandType)
	crops := soil.RecommendCrops(report.Type, weather)
	commodity := ChooseCommodity(crops, in.PreferredCrop)

	var (
		snapshot *models.MarketSnapshot
		advice   expert.Advice
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snapshot, err = s.cache.Market(gctx, in.Location, commodity, func(ctx context.Context) (*models.MarketSnapshot, error) {
			return s.market.FetchSnapshot(ctx, in.Location, commodity)
		})
		if err != nil {
			log.Warn("market unavailable, planning with fallback prices", map[string]interface{}{
				"commodity": commodity,
				"error":     err,
			})
		}
		return nil
	})
	g.Go(func() error {
		advice = s.tips.Suggest(gctx, report, weather)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	farmer := in
	farmer.RecommendedCrops = crops

	signals := models.Signals{
		Farmer:     &farmer,
		Weather:    weather,
		Soil:       report,
		ExpertTips: advice.Tips,
		Market:     snapshot,
	}
	plan := s.planner.Compose(&signals)
	RecordPlan(plan)

	log.Info("plan composed", map[string]interface{}{
		"suggestedCrop": plan.SuggestedCrop,
		"commodity":     commodity,
		"tipSource":     advice.Source,
		"lowRisk":       plan.RiskAssessment.IsLowRisk(),
	})

	return &Result{
		Signals:               signals,
		Plan:                  plan,
		Commodity:             commodity,
		TipSource:             advice.Source,
		PreferredCropSuitable: PreferredSuitable(in.PreferredCrop, crops),
	}, nil
}

// RecordPlan updates the plan counters.
func RecordPlan(plan models.RecommendationPlan) {
	metrics.PlansComposed.WithLabelValues(strings.ToLower(plan.SuggestedCrop)).Inc()
	for name := range plan.RiskAssessment.Risks {
		metrics.PlanRisks.WithLabelValues(name).Inc()
	}
}

// ChooseCommodity picks the crop whose market is looked up: the first soil
// candidate, then the farmer's preference, then DefaultCommodity.
func ChooseCommodity(crops []string, preferred string) string {
	if len(crops) > 0 {
		return crops[0]
	}
	if p := strings.TrimSpace(preferred); p != "" {
		return p
	}
	return DefaultCommodity
}

// PreferredSuitable is nil without a preference, else whether it is among
// the candidates.
func PreferredSuitable(preferred string, crops []string) *bool {
	p := strings.TrimSpace(preferred)
	if p == "" {
		return nil
	}
	ok := false
	for _, c := range crops {
		if strings.EqualFold(c, p) {
			ok = true
			break
		}
	}
	return &ok
}
