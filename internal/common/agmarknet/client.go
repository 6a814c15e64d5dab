// Package agmarknet reads mandi prices from the data.gov.in agmarknet
// resource and derives quotes, price trends and demand from them.
package agmarknet

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	httpclient "farm-advisor/internal/common/http"
	"farm-advisor/internal/common/logger"
	"farm-advisor/internal/common/metrics"
	"farm-advisor/internal/models"
	"farm-advisor/internal/planner"
)

const (
	providerName = "agmarknet"

	PriceWindowDays  = 1
	DemandWindowDays = 7
	TrendWindowDays  = 30

	fallbackMinPrice   = 1800
	fallbackModalPrice = 2200
	fallbackMaxPrice   = 2600
	fallbackRetailRate = "₹30/kg"
	lastUpdatedLayout  = "2006-01-02"
)

type Config struct {
	BaseURL string
	APIKey  string
	Limit   int
	Timeout time.Duration
	Clock   func() time.Time
}

// Client never fails a caller: empty or failed fetches produce the documented
// fallback values.
type Client struct {
	config *Config
	http   *httpclient.Client
	logger logger.Logger
}

func NewClient(config *Config, log logger.Logger) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if config.Limit <= 0 {
		config.Limit = 1000
	}
	if config.Clock == nil {
		config.Clock = time.Now
	}
	return &Client{
		config: config,
		http:   httpclient.NewClient(timeout),
		logger: log.WithFields(map[string]interface{}{"provider": providerName}),
	}
}

// Prices returns today's quotes, newest first.
func (c *Client) Prices(ctx context.Context, state, commodity string) []models.PriceQuote {
	records, _ := c.fetch(ctx, state, commodity)
	return c.prices(state, within(records, c.config.Clock(), PriceWindowDays))
}

// Trends returns the modal price series for the last 30 days, oldest first.
func (c *Client) Trends(ctx context.Context, state, commodity string) []models.TrendPoint {
	records, _ := c.fetch(ctx, state, commodity)
	return c.trends(state, within(records, c.config.Clock(), TrendWindowDays))
}

// Demand classifies demand for commodity over the last week. An empty
// commodity yields the generic fallback.
func (c *Client) Demand(ctx context.Context, state, commodity string) *models.Demand {
	if strings.TrimSpace(commodity) == "" {
		return c.fallbackDemand()
	}
	records, _ := c.fetch(ctx, state, commodity)
	return c.demand(commodity, within(records, c.config.Clock(), DemandWindowDays))
}

// Snapshot derives prices, trends and demand from a single fetch.
func (c *Client) Snapshot(ctx context.Context, state, commodity string) *models.MarketSnapshot {
	snap, _ := c.FetchSnapshot(ctx, state, commodity)
	return snap
}

// FetchSnapshot is Snapshot that also reports a failed request. The snapshot
// is always usable: on error it holds the fallback values. A request that
// succeeds without a record in the price window also yields fallback prices,
// flagged by Fallback and a nil error.
func (c *Client) FetchSnapshot(ctx context.Context, state, commodity string) (*models.MarketSnapshot, error) {
	now := c.config.Clock()
	var (
		records []dated
		err     error
	)
	if strings.TrimSpace(commodity) != "" {
		records, err = c.fetch(ctx, state, commodity)
	}

	priced := within(records, now, PriceWindowDays)
	snap := &models.MarketSnapshot{
		Prices:   c.prices(state, priced),
		Trends:   c.trends(state, within(records, now, TrendWindowDays)),
		Fallback: len(priced) == 0,
	}
	if strings.TrimSpace(commodity) == "" {
		snap.Demand = c.fallbackDemand()
	} else {
		snap.Demand = c.demand(commodity, within(records, now, DemandWindowDays))
	}
	return snap, err
}

func (c *Client) fetch(ctx context.Context, state, commodity string) ([]dated, error) {
	start := time.Now()
	defer func() {
		metrics.SignalFetchDuration.WithLabelValues(providerName).Observe(time.Since(start).Seconds())
	}()

	params := url.Values{
		"api-key":            {c.config.APIKey},
		"format":             {"json"},
		"filters[commodity]": {titleCase(commodity)},
		"filters[state]":     {titleCase(state)},
		"limit":              {strconv.Itoa(c.config.Limit)},
	}

	var resp response
	if err := c.http.GetJSON(ctx, c.config.BaseURL, params, &resp); err != nil {
		metrics.SignalFetches.WithLabelValues(providerName, "error").Inc()
		c.logger.Warn("market fetch failed", map[string]interface{}{
			"state":     state,
			"commodity": commodity,
			"error":     err,
		})
		return nil, err
	}

	out := make([]dated, 0, len(resp.Records))
	for _, r := range resp.Records {
		d, ok := parseArrival(r.ArrivalDate)
		if !ok || !r.ModalPrice.Valid {
			continue
		}
		out = append(out, dated{record: r, date: d})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].date.Before(out[j].date) })

	outcome := "ok"
	if len(out) == 0 {
		outcome = "fallback"
	}
	metrics.SignalFetches.WithLabelValues(providerName, outcome).Inc()
	return out, nil
}

func (c *Client) prices(state string, records []dated) []models.PriceQuote {
	if len(records) == 0 {
		return []models.PriceQuote{{
			Mandi:      fmt.Sprintf("%s Main Market", state),
			MinPrice:   fallbackMinPrice,
			ModalPrice: fallbackModalPrice,
			MaxPrice:   fallbackMaxPrice,
			Unit:       models.UnitQuintal,
		}}
	}
	out := make([]models.PriceQuote, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		out = append(out, models.PriceQuote{
			Mandi:      r.Market,
			MinPrice:   r.MinPrice.Value,
			ModalPrice: r.ModalPrice.Value,
			MaxPrice:   r.MaxPrice.Value,
			Unit:       models.UnitQuintal,
		})
	}
	return out
}

func (c *Client) trends(state string, records []dated) []models.TrendPoint {
	if len(records) == 0 {
		return []models.TrendPoint{{
			Date:       c.config.Clock().Format(lastUpdatedLayout),
			Mandi:      fmt.Sprintf("%s Mandi", state),
			ModalPrice: fallbackModalPrice,
			Unit:       models.UnitQuintal,
		}}
	}
	out := make([]models.TrendPoint, 0, len(records))
	for _, r := range records {
		out = append(out, models.TrendPoint{
			Date:       r.date.Format(lastUpdatedLayout),
			Mandi:      r.Market,
			ModalPrice: r.ModalPrice.Value,
			Unit:       models.UnitQuintal,
		})
	}
	return out
}

func (c *Client) demand(commodity string, records []dated) *models.Demand {
	if len(records) == 0 {
		return c.fallbackDemand()
	}
	series := make([]float64, len(records))
	for i, r := range records {
		series[i] = r.ModalPrice.Value
	}
	level := models.DemandMedium
	if series[len(series)-1] > planner.HighPriceThreshold {
		level = models.DemandHigh
	}
	return &models.Demand{
		Crop:        commodity,
		Demand:      level,
		Trend:       planner.ClassifyTrend(series),
		LastUpdated: c.config.Clock().Format(lastUpdatedLayout),
	}
}

func (c *Client) fallbackDemand() *models.Demand {
	return &models.Demand{
		TopCrop:     planner.DefaultCrop,
		MarketPrice: fallbackRetailRate,
		Trend:       models.TrendStable,
		LastUpdated: c.config.Clock().Format(lastUpdatedLayout),
	}
}

// titleCase matches the capitalisation the resource filters on. Casers are
// not safe for concurrent use so one is built per call.
func titleCase(s string) string {
	return cases.Title(language.English).String(strings.TrimSpace(s))
}
