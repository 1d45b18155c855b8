package emissions

import (
	"context"
	"sync"
	"testing"

	"github.com/de-tools/carbon-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_Swap(t *testing.T) {
	first := scenarioDataset()
	s := NewSnapshot(first)
	require.Same(t, first, s.Current())

	second := mixedDataset()
	prev := s.Swap(second)
	assert.Same(t, first, prev)
	assert.Same(t, second, s.Current())

	s.Swap(nil)
	assert.NotNil(t, s.Current())
	assert.Zero(t, s.Current().Len())
}

func TestSnapshot_ConcurrentReadersSeeWholeDatasets(t *testing.T) {
	// Each dataset gives User001 a distinct, internally consistent total.
	datasets := make([]*domain.Dataset, 8)
	valid := make(map[float64]bool)
	for i := range datasets {
		ds := &domain.Dataset{}
		for j := 0; j <= i; j++ {
			ds.Records = append(ds.Records, domain.EmissionRecord{
				UserID: "User001", Date: day("2024-01-01"), Category: "Diet", CO2e: 1,
			})
		}
		datasets[i] = ds
		valid[float64(i+1)] = true
	}

	svc := NewService(NewSnapshot(datasets[0]), DefaultBudget)
	snapshot := svc.(*service).snapshot
	ctx := context.Background()

	var writer sync.WaitGroup
	stop := make(chan struct{})
	writer.Add(1)
	go func() {
		defer writer.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
				snapshot.Swap(datasets[i%len(datasets)])
			}
		}
	}()

	var readers sync.WaitGroup
	for r := 0; r < 4; r++ {
		readers.Add(1)
		go func() {
			defer readers.Done()
			for i := 0; i < 2000; i++ {
				s := svc.Summary(ctx, "User001")
				if !valid[s.TotalEmission] || s.ByCategory["Diet"] != s.TotalEmission {
					t.Errorf("inconsistent summary: %+v", s)
					return
				}
			}
		}()
	}

	readers.Wait()
	close(stop)
	writer.Wait()
}

func TestService_Queries(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewSnapshot(scenarioDataset()), DefaultBudget)

	assert.Equal(t, 22.0, svc.Summary(ctx, "User001").TotalEmission)
	assert.Equal(t, map[string]float64{"2024-01": 15.0, "2024-02": 7.0}, svc.Monthly(ctx, "User001").MonthlyEmission)
	assert.Equal(t, []string{"User001"}, svc.Users(ctx))
	assert.Len(t, svc.Activity(ctx, "User001", domain.ActivityFilter{}), 3)
	assert.Len(t, svc.TopDays(ctx, "User001", domain.ActivityFilter{}, 1), 1)
	assert.Len(t, svc.CategoryTrend(ctx, "User001", domain.ActivityFilter{}), 3)
	assert.Equal(t, domain.BudgetLevelLow, svc.Budget(ctx, "User001").Level)
	assert.Equal(t, 3, svc.Dataset(ctx).Len())

	span, ok := svc.DateSpan(ctx, "User001")
	require.True(t, ok)
	assert.Equal(t, day("2024-02-01"), span.To)
}
