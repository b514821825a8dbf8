package domain

import (
	"fmt"
	"strings"
	"time"
)

// SortOrder order of list results
type SortOrder string

const (
	// SortDefault keeps insertion order
	SortDefault    SortOrder = ""
	SortDate       SortOrder = "date"
	SortDateAsc    SortOrder = "dateAsc"
	SortAmountDesc SortOrder = "amountDesc"
	SortAmountAsc  SortOrder = "amountAsc"
)

// ListQuery common part of every list filter: free-text search, date period and ordering
type ListQuery struct {
	Search string
	Period Period
	Sort   SortOrder
}

// ParseSortOrder parses a sort order name case-insensitively
func ParseSortOrder(s string) (SortOrder, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "default") {
		return SortDefault, nil
	}
	for _, o := range []SortOrder{SortDate, SortDateAsc, SortAmountDesc, SortAmountAsc} {
		if strings.EqualFold(s, string(o)) {
			return o, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSort, s)
}

// NewListQuery builds a ListQuery from raw request values.
// The timeframe is resolved against now.
func NewListQuery(search, timeframe, sort string, now time.Time) (ListQuery, error) {
	search = strings.TrimSpace(search)
	if len([]rune(search)) > MaxSearchLength {
		return ListQuery{}, invalid("search must be at most %d characters", MaxSearchLength)
	}

	tf, err := ParseTimeframe(timeframe)
	if err != nil {
		return ListQuery{}, err
	}
	period, err := ResolvePeriod(tf, now)
	if err != nil {
		return ListQuery{}, err
	}

	order, err := ParseSortOrder(sort)
	if err != nil {
		return ListQuery{}, err
	}

	return ListQuery{Search: search, Period: period, Sort: order}, nil
}
