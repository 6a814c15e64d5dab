package agmarknet

import (
	"strconv"
	"strings"
	"time"
)

var arrivalLayouts = []string{"02/01/2006", "2006-01-02", "2006-01-02T15:04:05Z07:00"}

type response struct {
	Records []record `json:"records"`
}

type record struct {
	State       string    `json:"state"`
	Market      string    `json:"market"`
	Commodity   string    `json:"commodity"`
	ArrivalDate string    `json:"arrival_date"`
	MinPrice    flexFloat `json:"min_price"`
	MaxPrice    flexFloat `json:"max_price"`
	ModalPrice  flexFloat `json:"modal_price"`
}

// flexFloat accepts numbers and numeric strings. Anything else decodes as
// not valid rather than failing the whole payload.
type flexFloat struct {
	Value float64
	Valid bool
}

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" || s == "NR" {
		*f = flexFloat{}
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		*f = flexFloat{}
		return nil
	}
	*f = flexFloat{Value: v, Valid: true}
	return nil
}

// dated is a record with a parsed arrival date and a usable modal price.
type dated struct {
	record
	date time.Time
}

func parseArrival(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range arrivalLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// within keeps records whose arrival day falls in [today-days, today].
func within(records []dated, now time.Time, days int) []dated {
	end := truncateDay(now)
	start := end.AddDate(0, 0, -days)
	out := make([]dated, 0, len(records))
	for _, r := range records {
		d := truncateDay(r.date)
		if d.Before(start) || d.After(end) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
