package emissions

import (
	"testing"
	"time"

	"github.com/de-tools/carbon-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	jan1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	jan31 := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		from, to   string
		categories []string
		expected   domain.ActivityFilter
		err        error
	}{
		{name: "empty", expected: domain.ActivityFilter{}},
		{
			name:       "categories only",
			categories: []string{"Diet", " ", " Electricity "},
			expected:   domain.ActivityFilter{Categories: []string{"Diet", "Electricity"}},
		},
		{
			name:     "both bounds",
			from:     "2024-01-01",
			to:       "2024-01-31",
			expected: domain.ActivityFilter{Range: &domain.DateRange{From: jan1, To: jan31}},
		},
		{
			name:     "from only",
			from:     "2024-01-01",
			expected: domain.ActivityFilter{Range: &domain.DateRange{From: jan1, To: openEnd}},
		},
		{
			name:     "to only",
			to:       "2024-01-31",
			expected: domain.ActivityFilter{Range: &domain.DateRange{To: jan31}},
		},
		{name: "same day", from: "2024-01-01", to: "2024-01-01",
			expected: domain.ActivityFilter{Range: &domain.DateRange{From: jan1, To: jan1}}},
		{name: "bad from", from: "01/01/2024", err: ErrInvalidFrom},
		{name: "bad to", to: "2024-13-01", err: ErrInvalidTo},
		{name: "inverted", from: "2024-01-31", to: "2024-01-01", err: ErrInvertedSpan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := ParseFilter(tt.from, tt.to, tt.categories)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, filter)
		})
	}
}
