package adapters

import (
	"maps"
	"time"

	"github.com/de-tools/carbon-atlas/pkg/models/api"
	"github.com/de-tools/carbon-atlas/pkg/models/domain"
	"github.com/de-tools/carbon-atlas/pkg/models/store"
)

const dateLayout = "2006-01-02"

func MapStoreEmissionRowToDomain(row store.EmissionRow) domain.EmissionRecord {
	return domain.EmissionRecord{
		UserID:   row.UserID,
		Date:     row.Date,
		Category: row.Category,
		CO2e:     row.CO2e,
	}
}

func MapStoreEmissionRowsToDataset(rows []store.EmissionRow, source string, loadedAt time.Time) *domain.Dataset {
	records := make([]domain.EmissionRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, MapStoreEmissionRowToDomain(row))
	}
	return &domain.Dataset{
		Records:  records,
		Source:   source,
		LoadedAt: loadedAt,
	}
}

func MapDomainEmissionToStoreRow(record domain.EmissionRecord) store.EmissionRow {
	return store.EmissionRow{
		UserID:   record.UserID,
		Date:     record.Date,
		Category: record.Category,
		CO2e:     record.CO2e,
	}
}

func MapSummaryDomainToApi(s domain.Summary) api.Summary {
	byCategory := make(map[string]float64, len(s.ByCategory))
	maps.Copy(byCategory, s.ByCategory)
	return api.Summary{
		User:          s.User,
		TotalEmission: s.TotalEmission,
		ByCategory:    byCategory,
	}
}

func MapMonthlyDomainToApi(m domain.MonthlyTrend) api.Monthly {
	monthly := make(map[string]float64, len(m.MonthlyEmission))
	maps.Copy(monthly, m.MonthlyEmission)
	return api.Monthly{
		User:            m.User,
		MonthlyEmission: monthly,
	}
}

func MapEmissionRecordDomainToApi(record domain.EmissionRecord) api.Emission {
	return api.Emission{
		Date:     record.Date.Format(dateLayout),
		Category: record.Category,
		CO2e:     record.CO2e,
	}
}

func MapEmissionRecordsDomainToApi(records []domain.EmissionRecord) []api.Emission {
	out := make([]api.Emission, 0, len(records))
	for _, r := range records {
		out = append(out, MapEmissionRecordDomainToApi(r))
	}
	return out
}

func MapDailyCategoryDomainToApi(days []domain.DailyCategoryEmission) []api.Emission {
	out := make([]api.Emission, 0, len(days))
	for _, d := range days {
		out = append(out, api.Emission{
			Date:     d.Date.Format(dateLayout),
			Category: d.Category,
			CO2e:     d.CO2e,
		})
	}
	return out
}

func MapBudgetStatusDomainToApi(status domain.BudgetStatus) api.BudgetStatus {
	return api.BudgetStatus{
		User:          status.User,
		TotalEmission: status.TotalEmission,
		Limit:         status.Limit,
		Level:         string(status.Level),
	}
}

func MapDatasetToHealth(ds *domain.Dataset) api.Health {
	return api.Health{
		Status:   "ok",
		Records:  ds.Len(),
		Source:   ds.Source,
		LoadedAt: ds.LoadedAt,
	}
}
