package emissions

import (
	"context"

	"github.com/de-tools/carbon-atlas/pkg/models/domain"
)

// QueryService answers per-user emission queries against the current snapshot.
// Each call reads the snapshot once, so a concurrent swap never mixes datasets
// within a single answer.
type QueryService interface {
	Summary(ctx context.Context, userID string) domain.Summary
	Monthly(ctx context.Context, userID string) domain.MonthlyTrend
	Activity(ctx context.Context, userID string, filter domain.ActivityFilter) []domain.EmissionRecord
	TopDays(ctx context.Context, userID string, filter domain.ActivityFilter, n int) []domain.EmissionRecord
	CategoryTrend(ctx context.Context, userID string, filter domain.ActivityFilter) []domain.DailyCategoryEmission
	Budget(ctx context.Context, userID string) domain.BudgetStatus
	DateSpan(ctx context.Context, userID string) (domain.DateRange, bool)
	Users(ctx context.Context) []string
	Dataset(ctx context.Context) *domain.Dataset
}

var DefaultBudget = domain.Budget{
	Limit:      1000,
	WarnAt:     500,
	CriticalAt: 800,
}

type service struct {
	snapshot *Snapshot
	budget   domain.Budget
}

func NewService(snapshot *Snapshot, budget domain.Budget) QueryService {
	return &service{snapshot: snapshot, budget: budget}
}

func (s *service) Summary(_ context.Context, userID string) domain.Summary {
	return Summarize(s.snapshot.Current(), userID)
}

func (s *service) Monthly(_ context.Context, userID string) domain.MonthlyTrend {
	return Monthly(s.snapshot.Current(), userID)
}

func (s *service) Activity(_ context.Context, userID string, filter domain.ActivityFilter) []domain.EmissionRecord {
	return Activity(s.snapshot.Current(), userID, filter)
}

func (s *service) TopDays(
	_ context.Context,
	userID string,
	filter domain.ActivityFilter,
	n int,
) []domain.EmissionRecord {
	return TopDays(s.snapshot.Current(), userID, filter, n)
}

func (s *service) CategoryTrend(
	_ context.Context,
	userID string,
	filter domain.ActivityFilter,
) []domain.DailyCategoryEmission {
	return CategoryTrend(s.snapshot.Current(), userID, filter)
}

func (s *service) Budget(_ context.Context, userID string) domain.BudgetStatus {
	return BudgetStatus(s.snapshot.Current(), userID, s.budget)
}

func (s *service) DateSpan(_ context.Context, userID string) (domain.DateRange, bool) {
	return DateSpan(s.snapshot.Current(), userID)
}

func (s *service) Users(_ context.Context) []string {
	return Users(s.snapshot.Current())
}

func (s *service) Dataset(_ context.Context) *domain.Dataset {
	return s.snapshot.Current()
}
