// Package expert supplies agronomy tips for a soil and weather combination,
// from a Postgres tip store when one is configured and from built-in
// heuristics otherwise.
package expert

import (
	"context"
	"database/sql"
	"strings"
	"time"

	apperrors "farm-advisor/internal/common/errors"
	"farm-advisor/internal/common/logger"
	"farm-advisor/internal/models"
	"farm-advisor/internal/planner"
)

const (
	SourceStore     = "store"
	SourceHeuristic = "heuristic"

	defaultQueryTimeout = 3 * time.Second
)

const tipsQuery = `SELECT tip FROM expert_tips
WHERE (soil_type = $1 OR soil_type = '')
  AND (rainfall = $2 OR rainfall = '')
ORDER BY priority`

const schemaDDL = `CREATE TABLE IF NOT EXISTS expert_tips (
	id         SERIAL PRIMARY KEY,
	soil_type  TEXT NOT NULL DEFAULT '',
	rainfall   TEXT NOT NULL DEFAULT '',
	tip        TEXT NOT NULL,
	priority   INTEGER NOT NULL DEFAULT 100
)`

// Advice is a list of tips and where they came from.
type Advice struct {
	Tips   []string `json:"tips"`
	Source string   `json:"source"`
}

type Advisor struct {
	db           *sql.DB
	queryTimeout time.Duration
	logger       logger.Logger
}

// NewAdvisor builds an advisor. db may be nil, in which case only heuristics
// are used.
func NewAdvisor(db *sql.DB, queryTimeout time.Duration, log logger.Logger) *Advisor {
	if queryTimeout <= 0 {
		queryTimeout = defaultQueryTimeout
	}
	return &Advisor{
		db:           db,
		queryTimeout: queryTimeout,
		logger:       log.WithFields(map[string]interface{}{"component": "expert"}),
	}
}

// EnsureSchema creates the tip table if it does not exist.
func (a *Advisor) EnsureSchema(ctx context.Context) error {
	if a.db == nil {
		return nil
	}
	_, err := a.db.ExecContext(ctx, schemaDDL)
	return err
}

// Suggest never fails: store errors and empty results fall back to
// heuristics.
func (a *Advisor) Suggest(ctx context.Context, soil *models.SoilReport, weather *models.WeatherSignal) Advice {
	advice, err := a.Lookup(ctx, soil, weather)
	if err != nil {
		soilType, rainfall := keys(soil, weather)
		a.logger.Warn("expert tip store unavailable, using heuristics", map[string]interface{}{
			"soilType": soilType,
			"rainfall": rainfall,
			"error":    err,
		})
	}
	return advice
}

// Lookup is Suggest that also returns the store error. The advice is always
// usable: on error it holds the heuristic tips.
func (a *Advisor) Lookup(ctx context.Context, soil *models.SoilReport, weather *models.WeatherSignal) (Advice, error) {
	var err error
	if a.db != nil {
		soilType, rainfall := keys(soil, weather)
		var tips []string
		tips, err = a.QueryTips(ctx, soilType, rainfall)
		if err == nil && len(tips) > 0 {
			return Advice{Tips: tips, Source: SourceStore}, nil
		}
	}
	return Advice{Tips: Heuristics(soil, weather), Source: SourceHeuristic}, err
}

// QueryTips reads tips matching soilType and rainfall, including the
// wildcard rows stored with empty keys.
func (a *Advisor) QueryTips(ctx context.Context, soilType, rainfall string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.queryTimeout)
	defer cancel()

	rows, err := a.db.QueryContext(ctx, tipsQuery, soilType, rainfall)
	if err != nil {
		return nil, apperrors.NewExpertTipsQueryFailedError(err)
	}
	defer rows.Close()

	var tips []string
	for rows.Next() {
		var tip string
		if err := rows.Scan(&tip); err != nil {
			return nil, apperrors.NewExpertTipsQueryFailedError(err)
		}
		if tip = strings.TrimSpace(tip); tip != "" {
			tips = append(tips, tip)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewExpertTipsQueryFailedError(err)
	}
	return tips, nil
}

// keys returns the lookup keys, normalized the way the planner would see
// them. Heavy rainfall is stored under "high".
func keys(soil *models.SoilReport, weather *models.WeatherSignal) (string, string) {
	n := planner.Normalize(&models.Signals{Soil: soil, Weather: weather})
	rainfall := strings.ToLower(n.Weather.Rainfall)
	if planner.IsHeavyRainfall(rainfall) {
		rainfall = models.RainfallHigh
	}
	return n.Soil.Type, rainfall
}
