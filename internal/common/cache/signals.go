// Package cache keeps recently fetched weather and market signals so repeated
// requests for the same place do not hit the upstream APIs.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"farm-advisor/internal/common/logger"
	"farm-advisor/internal/common/metrics"
	"farm-advisor/internal/models"
)

// Store is the subset of the Redis client the cache needs.
type Store interface {
	GetJSON(ctx context.Context, key string, out interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// SignalCache is read-through. Store failures are logged and the fetch runs
// as if the cache were empty. A nil store disables caching.
type SignalCache struct {
	store      Store
	weatherTTL time.Duration
	marketTTL  time.Duration
	logger     logger.Logger
}

func NewSignalCache(store Store, weatherTTL, marketTTL time.Duration, log logger.Logger) *SignalCache {
	return &SignalCache{
		store:      store,
		weatherTTL: weatherTTL,
		marketTTL:  marketTTL,
		logger:     log.WithFields(map[string]interface{}{"component": "signal-cache"}),
	}
}

func WeatherKey(location string) string {
	return fmt.Sprintf("weather:%s", keyPart(location))
}

func MarketKey(state, commodity string) string {
	return fmt.Sprintf("market:%s:%s", keyPart(state), keyPart(commodity))
}

func keyPart(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}

// Weather returns the cached signal for location or calls fetch. Signals
// carrying an error are never stored.
func (c *SignalCache) Weather(ctx context.Context, location string, fetch func(context.Context) *models.WeatherSignal) *models.WeatherSignal {
	key := WeatherKey(location)

	var cached models.WeatherSignal
	if c.lookup(ctx, "weather", key, &cached) {
		return &cached
	}

	signal := fetch(ctx)
	if signal != nil && signal.Error == "" {
		c.save(ctx, key, signal, c.weatherTTL)
	}
	return signal
}

// Market returns the cached snapshot for state and commodity or calls fetch.
// A snapshot fetched with an error is returned with that error and not
// stored. Fallback snapshots are returned but not stored either.
func (c *SignalCache) Market(ctx context.Context, state, commodity string, fetch func(context.Context) (*models.MarketSnapshot, error)) (*models.MarketSnapshot, error) {
	key := MarketKey(state, commodity)

	var cached models.MarketSnapshot
	if c.lookup(ctx, "market", key, &cached) {
		return &cached, nil
	}

	snap, err := fetch(ctx)
	if err == nil && snap != nil && !snap.Fallback {
		c.save(ctx, key, snap, c.marketTTL)
	}
	return snap, err
}

func (c *SignalCache) lookup(ctx context.Context, signal, key string, out interface{}) bool {
	if c.store == nil {
		return false
	}
	found, err := c.store.GetJSON(ctx, key, out)
	switch {
	case err != nil:
		metrics.SignalCacheLookups.WithLabelValues(signal, "error").Inc()
		c.logger.Warn("cache read failed", map[string]interface{}{"key": key, "error": err})
		return false
	case !found:
		metrics.SignalCacheLookups.WithLabelValues(signal, "miss").Inc()
		return false
	}
	metrics.SignalCacheLookups.WithLabelValues(signal, "hit").Inc()
	c.logger.Debug("cache hit", map[string]interface{}{"key": key})
	return true
}

func (c *SignalCache) save(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if c.store == nil {
		return
	}
	if err := c.store.SetJSON(ctx, key, value, ttl); err != nil {
		c.logger.Warn("cache write failed", map[string]interface{}{"key": key, "error": err})
	}
}
