// Package app builds the signal providers and planner from configuration for
// both entry points.
package app

import (
	"context"
	"strings"
	"time"

	"farm-advisor/internal/advisor"
	"farm-advisor/internal/common/agmarknet"
	"farm-advisor/internal/common/cache"
	"farm-advisor/internal/common/config"
	"farm-advisor/internal/common/database"
	"farm-advisor/internal/common/logger"
	"farm-advisor/internal/common/weather"
	"farm-advisor/internal/expert"
	"farm-advisor/internal/planner"
)

const storePingTimeout = 5 * time.Second

func NewPlanner(cfg config.PlannerConfig) *planner.Planner {
	pc := planner.DefaultConfig()
	for crop, rate := range cfg.BaseYield {
		pc.BaseYield[strings.ToLower(crop)] = rate
	}
	if cfg.YieldMultiplier > 0 {
		pc.YieldMultiplier = cfg.YieldMultiplier
	}
	if cfg.FallbackCrop != "" {
		pc.FallbackCrop = cfg.FallbackCrop
	}
	return planner.New(pc)
}

func NewWeather(cfg *config.Config, log logger.Logger) *weather.Client {
	return weather.NewClient(&weather.Config{
		BaseURL: cfg.APIs.OpenWeather.BaseURL,
		APIKey:  cfg.APIs.OpenWeather.APIKey,
		Timeout: config.GetDuration(cfg.APIs.OpenWeather.Timeout),
	}, log)
}

func NewMarket(cfg *config.Config, log logger.Logger) *agmarknet.Client {
	return agmarknet.NewClient(&agmarknet.Config{
		BaseURL: cfg.APIs.Agmarknet.BaseURL,
		APIKey:  cfg.APIs.Agmarknet.APIKey,
		Limit:   cfg.APIs.Agmarknet.Limit,
		Timeout: config.GetDuration(cfg.APIs.Agmarknet.Timeout),
	}, log)
}

// NewSignalCache wraps redis, which may be nil.
func NewSignalCache(cfg *config.Config, redis *database.RedisClient, log logger.Logger) *cache.SignalCache {
	var store cache.Store
	if redis != nil {
		store = redis
	}
	return cache.NewSignalCache(store,
		time.Duration(cfg.Cache.WeatherTTL)*time.Second,
		time.Duration(cfg.Cache.MarketTTL)*time.Second,
		log)
}

// OpenTipStore connects to Postgres when it is configured and makes sure the
// tip table exists. Any failure is logged and yields a heuristics-only
// advisor with a nil client.
func OpenTipStore(ctx context.Context, cfg *config.Config, log logger.Logger) (*expert.Advisor, *database.PostgresClient) {
	if !cfg.Database.Postgres.Enabled() {
		return expert.NewAdvisor(nil, 0, log), nil
	}

	pg, err := database.NewPostgres(ctx, cfg.Database.Postgres, storePingTimeout)
	if err != nil {
		log.Warn("expert tip store unavailable, using heuristics", map[string]interface{}{"error": err})
		return expert.NewAdvisor(nil, 0, log), nil
	}

	tips := expert.NewAdvisor(pg.DB, 0, log)
	if err := tips.EnsureSchema(ctx); err != nil {
		log.Warn("expert tip schema check failed", map[string]interface{}{"error": err})
	}
	return tips, pg
}

// OpenCache connects to Redis when an address is configured. Failure leaves
// caching off.
func OpenCache(ctx context.Context, cfg *config.Config, log logger.Logger) *database.RedisClient {
	if cfg.Database.Redis.Address == "" {
		return nil
	}
	rdb, err := database.NewRedis(cfg.Database.Redis)
	if err != nil {
		log.Warn("signal cache disabled", map[string]interface{}{"error": err})
		return nil
	}
	if err := rdb.Ping(ctx); err != nil {
		log.Warn("signal cache unreachable, continuing without it", map[string]interface{}{"error": err})
		_ = rdb.Close()
		return nil
	}
	return rdb
}

// NewAdvisor assembles the in-process recommendation service.
func NewAdvisor(cfg *config.Config, tips *expert.Advisor, signals *cache.SignalCache, log logger.Logger) *advisor.Service {
	return advisor.NewService(NewWeather(cfg, log), NewMarket(cfg, log), tips, signals, NewPlanner(cfg.Planner), log)
}
