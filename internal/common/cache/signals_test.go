package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"farm-advisor/internal/common/config"
	"farm-advisor/internal/common/database"
	"farm-advisor/internal/common/logger"
	"farm-advisor/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T) (*SignalCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rc, err := database.NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Close() })
	return NewSignalCache(rc, 30*time.Minute, 6*time.Hour, logger.NewTestLogger(t)), mr
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "weather:new-delhi", WeatherKey("  New   Delhi "))
	assert.Equal(t, "market:tamil-nadu:rice", MarketKey("Tamil Nadu", "Rice"))
}

func TestWeather_ReadThrough(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	calls := 0
	fetch := func(context.Context) *models.WeatherSignal {
		calls++
		return &models.WeatherSignal{Temperature: models.Float(29), Rainfall: models.RainfallLow}
	}

	first := c.Weather(ctx, "Pune", fetch)
	second := c.Weather(ctx, "pune", fetch)

	assert.Equal(t, 1, calls)
	assert.Equal(t, *first.Temperature, *second.Temperature)
	assert.True(t, mr.Exists("weather:pune"))
	assert.InDelta(t, (30 * time.Minute).Seconds(), mr.TTL("weather:pune").Seconds(), 1)
}

func TestWeather_ErrorsNotCached(t *testing.T) {
	c, mr := newCache(t)

	calls := 0
	fetch := func(context.Context) *models.WeatherSignal {
		calls++
		return &models.WeatherSignal{Error: "city not found", StatusCode: 404}
	}

	c.Weather(context.Background(), "Atlantis", fetch)
	c.Weather(context.Background(), "Atlantis", fetch)

	assert.Equal(t, 2, calls)
	assert.False(t, mr.Exists("weather:atlantis"))
}

func TestMarket_StoreDownStillFetches(t *testing.T) {
	c, mr := newCache(t)
	mr.Close()

	snap, err := c.Market(context.Background(), "Punjab", "Wheat", func(context.Context) (*models.MarketSnapshot, error) {
		return &models.MarketSnapshot{Demand: &models.Demand{Crop: "Wheat"}}, nil
	})
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "Wheat", snap.Demand.Crop)
}

func TestMarket_NilStore(t *testing.T) {
	c := NewSignalCache(nil, time.Minute, time.Minute, logger.NewNoOpLogger())

	calls := 0
	fetch := func(context.Context) (*models.MarketSnapshot, error) {
		calls++
		return &models.MarketSnapshot{}, nil
	}
	c.Market(context.Background(), "Bihar", "", fetch)
	c.Market(context.Background(), "Bihar", "", fetch)
	assert.Equal(t, 2, calls)
}

func TestMarket_FetchErrorNotStored(t *testing.T) {
	c, mr := newCache(t)

	calls := 0
	fetch := func(context.Context) (*models.MarketSnapshot, error) {
		calls++
		return &models.MarketSnapshot{Demand: &models.Demand{Trend: models.TrendStable}}, errors.New("connection reset")
	}
	snap, err := c.Market(context.Background(), "Punjab", "Wheat", fetch)
	assert.EqualError(t, err, "connection reset")
	require.NotNil(t, snap)
	_, _ = c.Market(context.Background(), "Punjab", "Wheat", fetch)

	assert.Equal(t, 2, calls)
	assert.False(t, mr.Exists(MarketKey("Punjab", "Wheat")))
}

func TestMarket_FallbackNotStored(t *testing.T) {
	c, mr := newCache(t)

	calls := 0
	fetch := func(context.Context) (*models.MarketSnapshot, error) {
		calls++
		return &models.MarketSnapshot{
			Prices:   []models.PriceQuote{{Mandi: "Punjab Main Market", ModalPrice: 2200}},
			Fallback: true,
		}, nil
	}
	snap, err := c.Market(context.Background(), "Punjab", "Wheat", fetch)
	require.NoError(t, err)
	assert.True(t, snap.Fallback)
	_, _ = c.Market(context.Background(), "Punjab", "Wheat", fetch)

	assert.Equal(t, 2, calls)
	assert.False(t, mr.Exists(MarketKey("Punjab", "Wheat")))
}
