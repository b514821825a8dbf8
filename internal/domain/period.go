package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrUnknownTimeframe is returned for a timeframe name that ResolvePeriod does not know
	ErrUnknownTimeframe = errors.New("domain: unknown timeframe")

	// ErrUnknownSort is returned for an unsupported sort order
	ErrUnknownSort = errors.New("domain: unknown sort order")
)

// Timeframe names a date bucket relative to "now"
type Timeframe string

const (
	TimeframeAll         Timeframe = "all"
	TimeframeUpcoming    Timeframe = "upcoming"
	TimeframePast        Timeframe = "past"
	TimeframeThisMonth   Timeframe = "thisMonth"
	TimeframeNextMonth   Timeframe = "nextMonth"
	TimeframeLastMonth   Timeframe = "lastMonth"
	TimeframeThisQuarter Timeframe = "thisQuarter"
	TimeframeThisYear    Timeframe = "thisYear"
	TimeframeLastYear    Timeframe = "lastYear"
)

// Period is a half-open time range [From, To). A nil bound is unbounded.
type Period struct {
	From *time.Time
	To   *time.Time
}

// Contains reports whether t falls inside the period
func (p Period) Contains(t time.Time) bool {
	if p.From != nil && t.Before(*p.From) {
		return false
	}
	if p.To != nil && !t.Before(*p.To) {
		return false
	}
	return true
}

// IsUnbounded returns true if the period has no bounds at all
func (p Period) IsUnbounded() bool {
	return p.From == nil && p.To == nil
}

// ResolvePeriod turns a timeframe into concrete bounds relative to now.
// Month, quarter and year buckets are computed in now's location.
// An empty timeframe is the same as "all".
func ResolvePeriod(tf Timeframe, now time.Time) (Period, error) {
	loc := now.Location()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc)

	switch tf {
	case "", TimeframeAll:
		return Period{}, nil
	case TimeframeUpcoming:
		return Period{From: &now}, nil
	case TimeframePast:
		return Period{To: &now}, nil
	case TimeframeThisMonth:
		return between(monthStart, monthStart.AddDate(0, 1, 0)), nil
	case TimeframeNextMonth:
		return between(monthStart.AddDate(0, 1, 0), monthStart.AddDate(0, 2, 0)), nil
	case TimeframeLastMonth:
		return between(monthStart.AddDate(0, -1, 0), monthStart), nil
	case TimeframeThisQuarter:
		firstMonth := time.Month((int(now.Month())-1)/3*3 + 1)
		quarterStart := time.Date(now.Year(), firstMonth, 1, 0, 0, 0, 0, loc)
		return between(quarterStart, quarterStart.AddDate(0, 3, 0)), nil
	case TimeframeThisYear:
		return between(yearStart, yearStart.AddDate(1, 0, 0)), nil
	case TimeframeLastYear:
		return between(yearStart.AddDate(-1, 0, 0), yearStart), nil
	default:
		return Period{}, fmt.Errorf("%w: %q", ErrUnknownTimeframe, tf)
	}
}

// YearPeriod returns the calendar year as a period in loc
func YearPeriod(year int, loc *time.Location) Period {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	return between(start, start.AddDate(1, 0, 0))
}

// ParseTimeframe parses a timeframe name case-insensitively
func ParseTimeframe(s string) (Timeframe, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TimeframeAll, nil
	}
	for _, tf := range AllTimeframes {
		if strings.EqualFold(s, string(tf)) {
			return tf, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTimeframe, s)
}

// AllTimeframes список поддерживаемых периодов
var AllTimeframes = []Timeframe{
	TimeframeAll,
	TimeframeUpcoming,
	TimeframePast,
	TimeframeThisMonth,
	TimeframeNextMonth,
	TimeframeLastMonth,
	TimeframeThisQuarter,
	TimeframeThisYear,
	TimeframeLastYear,
}

func between(from, to time.Time) Period {
	return Period{From: &from, To: &to}
}
