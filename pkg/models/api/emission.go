package api

import "time"

type Summary struct {
	User          string             `json:"user"`
	TotalEmission float64            `json:"total_emission"`
	ByCategory    map[string]float64 `json:"by_category"`
}

type Monthly struct {
	User            string             `json:"user"`
	MonthlyEmission map[string]float64 `json:"monthly_emission"`
}

type Users struct {
	Users []string `json:"users"`
}

// Emission is one row of the activity, top-days and category-trend views.
type Emission struct {
	Date     string  `json:"date"` // YYYY-MM-DD
	Category string  `json:"category"`
	CO2e     float64 `json:"co2e_kg"`
}

type BudgetStatus struct {
	User          string  `json:"user"`
	TotalEmission float64 `json:"total_emission"`
	Limit         float64 `json:"limit"`
	Level         string  `json:"level"`
}

type Health struct {
	Status   string    `json:"status"`
	Records  int       `json:"records"`
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loaded_at"`
}
