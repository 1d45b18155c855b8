package emissions

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/de-tools/carbon-atlas/pkg/models/domain"
)

const monthLayout = "2006-01"

type dayCategory struct {
	date     time.Time
	category string
}

// sumBy groups records by key and sums their CO2e in record order.
func sumBy[K comparable](records []domain.EmissionRecord, key func(domain.EmissionRecord) K) map[K]float64 {
	sums := make(map[K]float64)
	for _, r := range records {
		sums[key(r)] += r.CO2e
	}
	return sums
}

func byCategory(r domain.EmissionRecord) string { return r.Category }

func byMonth(r domain.EmissionRecord) string { return r.Date.Format(monthLayout) }

func byDayCategory(r domain.EmissionRecord) dayCategory {
	return dayCategory{date: r.Date, category: r.Category}
}

// selectUser returns the records whose stored UserID, trimmed, equals userID.
// The query ID is compared as given.
func selectUser(ds *domain.Dataset, userID string) []domain.EmissionRecord {
	if ds == nil {
		return nil
	}
	var selected []domain.EmissionRecord
	for _, r := range ds.Records {
		if strings.TrimSpace(r.UserID) == userID {
			selected = append(selected, r)
		}
	}
	return selected
}

func Summarize(ds *domain.Dataset, userID string) domain.Summary {
	records := selectUser(ds, userID)
	if len(records) == 0 {
		return domain.Summary{User: userID, ByCategory: map[string]float64{}}
	}

	var total float64
	for _, r := range records {
		total += r.CO2e
	}

	return domain.Summary{
		User:          userID,
		TotalEmission: total,
		ByCategory:    sumBy(records, byCategory),
	}
}

func Monthly(ds *domain.Dataset, userID string) domain.MonthlyTrend {
	records := selectUser(ds, userID)
	if len(records) == 0 {
		return domain.MonthlyTrend{User: userID, MonthlyEmission: map[string]float64{}}
	}

	return domain.MonthlyTrend{
		User:            userID,
		MonthlyEmission: sumBy(records, byMonth),
	}
}

// Activity returns the user's records matching filter, oldest first.
func Activity(ds *domain.Dataset, userID string, filter domain.ActivityFilter) []domain.EmissionRecord {
	records := applyFilter(selectUser(ds, userID), filter)
	slices.SortStableFunc(records, func(a, b domain.EmissionRecord) int {
		return a.Date.Compare(b.Date)
	})
	return records
}

// TopDays returns the n filtered records with the highest CO2e. Ties keep the
// earlier date first.
func TopDays(ds *domain.Dataset, userID string, filter domain.ActivityFilter, n int) []domain.EmissionRecord {
	if n <= 0 {
		return []domain.EmissionRecord{}
	}
	records := Activity(ds, userID, filter)
	slices.SortStableFunc(records, func(a, b domain.EmissionRecord) int {
		return cmp.Compare(b.CO2e, a.CO2e)
	})
	if n < len(records) {
		records = records[:n]
	}
	return records
}

// CategoryTrend sums the filtered records per day and category.
func CategoryTrend(ds *domain.Dataset, userID string, filter domain.ActivityFilter) []domain.DailyCategoryEmission {
	sums := sumBy(applyFilter(selectUser(ds, userID), filter), byDayCategory)

	trend := make([]domain.DailyCategoryEmission, 0, len(sums))
	for k, v := range sums {
		trend = append(trend, domain.DailyCategoryEmission{Date: k.date, Category: k.category, CO2e: v})
	}
	slices.SortFunc(trend, func(a, b domain.DailyCategoryEmission) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return strings.Compare(a.Category, b.Category)
	})
	return trend
}

func BudgetStatus(ds *domain.Dataset, userID string, budget domain.Budget) domain.BudgetStatus {
	summary := Summarize(ds, userID)

	level := domain.BudgetLevelLow
	switch {
	case summary.TotalEmission >= budget.CriticalAt:
		level = domain.BudgetLevelHigh
	case summary.TotalEmission >= budget.WarnAt:
		level = domain.BudgetLevelMedium
	}

	return domain.BudgetStatus{
		User:          userID,
		TotalEmission: summary.TotalEmission,
		Limit:         budget.Limit,
		Level:         level,
	}
}

// Users lists the distinct trimmed, non-empty user IDs in sorted order.
func Users(ds *domain.Dataset) []string {
	users := []string{}
	if ds == nil {
		return users
	}
	seen := make(map[string]struct{})
	for _, r := range ds.Records {
		id := strings.TrimSpace(r.UserID)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		users = append(users, id)
	}
	slices.Sort(users)
	return users
}

// DateSpan returns the first and last record dates of a user, false when the
// user has no records.
func DateSpan(ds *domain.Dataset, userID string) (domain.DateRange, bool) {
	records := selectUser(ds, userID)
	if len(records) == 0 {
		return domain.DateRange{}, false
	}
	span := domain.DateRange{From: records[0].Date, To: records[0].Date}
	for _, r := range records[1:] {
		if r.Date.Before(span.From) {
			span.From = r.Date
		}
		if r.Date.After(span.To) {
			span.To = r.Date
		}
	}
	return span, true
}

func applyFilter(records []domain.EmissionRecord, filter domain.ActivityFilter) []domain.EmissionRecord {
	out := make([]domain.EmissionRecord, 0, len(records))
	for _, r := range records {
		if filter.Range != nil && !filter.Range.Contains(r.Date) {
			continue
		}
		if len(filter.Categories) > 0 && !slices.Contains(filter.Categories, r.Category) {
			continue
		}
		out = append(out, r)
	}
	return out
}
