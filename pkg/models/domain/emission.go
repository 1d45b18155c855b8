package domain

import "time"

type EmissionRecord struct {
	UserID   string    // as stored, may carry surrounding whitespace
	Date     time.Time // calendar date, UTC midnight
	Category string    // Transportation, Diet, Electricity, ...
	CO2e     float64   // kg
}

// Dataset is an immutable snapshot of every loaded record.
type Dataset struct {
	Records  []EmissionRecord
	Source   string
	LoadedAt time.Time
}

func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

type Summary struct {
	User          string
	TotalEmission float64
	ByCategory    map[string]float64
}

type MonthlyTrend struct {
	User            string
	MonthlyEmission map[string]float64 // "2006-01" -> kg
}

type DailyCategoryEmission struct {
	Date     time.Time
	Category string
	CO2e     float64
}

type DateRange struct {
	From time.Time
	To   time.Time
}

func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

// ActivityFilter narrows a user's records. A nil Range selects every date and
// an empty Categories list selects every category.
type ActivityFilter struct {
	Range      *DateRange
	Categories []string
}

type BudgetLevel string

const (
	BudgetLevelLow    BudgetLevel = "low"
	BudgetLevelMedium BudgetLevel = "medium"
	BudgetLevelHigh   BudgetLevel = "high"
)

type Budget struct {
	Limit      float64 // gauge maximum, kg
	WarnAt     float64
	CriticalAt float64
}

type BudgetStatus struct {
	User          string
	TotalEmission float64
	Limit         float64
	Level         BudgetLevel
}
