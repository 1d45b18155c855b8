package emissions

import (
	"errors"
	"strings"
	"time"

	"github.com/de-tools/carbon-atlas/pkg/models/domain"
)

const DateLayout = "2006-01-02"

var openEnd = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

var (
	ErrInvalidFrom  = errors.New("invalid 'from' date format. Expected format: YYYY-MM-DD")
	ErrInvalidTo    = errors.New("invalid 'to' date format. Expected format: YYYY-MM-DD")
	ErrInvertedSpan = errors.New("invalid date range: 'from' is after 'to'")
)

// ParseFilter builds an activity filter from YYYY-MM-DD bounds and category
// names. An empty bound leaves that side open, which selects the same records
// as the user's own first or last date.
func ParseFilter(from, to string, categories []string) (domain.ActivityFilter, error) {
	filter := domain.ActivityFilter{}
	for _, category := range categories {
		if category = strings.TrimSpace(category); category != "" {
			filter.Categories = append(filter.Categories, category)
		}
	}

	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" && to == "" {
		return filter, nil
	}

	rng := domain.DateRange{To: openEnd}
	if from != "" {
		parsed, err := time.Parse(DateLayout, from)
		if err != nil {
			return filter, ErrInvalidFrom
		}
		rng.From = parsed
	}
	if to != "" {
		parsed, err := time.Parse(DateLayout, to)
		if err != nil {
			return filter, ErrInvalidTo
		}
		rng.To = parsed
	}
	if rng.From.After(rng.To) {
		return filter, ErrInvertedSpan
	}

	filter.Range = &rng
	return filter, nil
}
