package database

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"farm-advisor/internal/common/config"
	"farm-advisor/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestRedisJSONRoundTrip(t *testing.T) {
	client, mr := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, client.Ping(ctx))

	in := models.WeatherSignal{Temperature: models.Float(31.5), Rainfall: models.RainfallModerate}
	require.NoError(t, client.SetJSON(ctx, "weather:pune", in, time.Minute))

	var out models.WeatherSignal
	found, err := client.GetJSON(ctx, "weather:pune", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 31.5, *out.Temperature)
	assert.Equal(t, models.RainfallModerate, out.Rainfall)

	mr.FastForward(2 * time.Minute)
	found, err = client.GetJSON(ctx, "weather:pune", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisGetJSON_CorruptValue(t *testing.T) {
	client, mr := newTestRedis(t)
	require.NoError(t, mr.Set("market:karnataka:rice", "{not json"))

	var out models.MarketSnapshot
	found, err := client.GetJSON(context.Background(), "market:karnataka:rice", &out)
	assert.Error(t, err)
	assert.False(t, found)
}

func TestRedisUnavailable(t *testing.T) {
	client, mr := newTestRedis(t)
	mr.Close()

	var out models.WeatherSignal
	_, err := client.GetJSON(context.Background(), "weather:pune", &out)
	assert.Error(t, err)
	assert.Error(t, client.Ping(context.Background()))
}

func TestNewRedis_RequiresAddress(t *testing.T) {
	_, err := NewRedis(config.RedisConfig{})
	assert.Error(t, err)
}

func TestRedisCommands_Mocked(t *testing.T) {
	db, mock := redismock.NewClientMock()
	client := &RedisClient{Client: db}
	ctx := context.Background()

	snapshot := models.MarketSnapshot{Demand: &models.Demand{Crop: "Rice", Trend: "rising"}}
	raw, _ := json.Marshal(snapshot)
	mock.ExpectSet("market:karnataka:rice", raw, 6*time.Hour).SetVal("OK")
	mock.ExpectGet("market:karnataka:rice").SetErr(errors.New("READONLY replica"))
	mock.ExpectDel("market:karnataka:rice").SetVal(1)

	require.NoError(t, client.SetJSON(ctx, "market:karnataka:rice", snapshot, 6*time.Hour))

	var out models.MarketSnapshot
	found, err := client.GetJSON(ctx, "market:karnataka:rice", &out)
	assert.ErrorContains(t, err, "READONLY")
	assert.False(t, found)

	require.NoError(t, client.Del(ctx, "market:karnataka:rice"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
