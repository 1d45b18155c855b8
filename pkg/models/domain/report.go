package domain

// EmissionReport gathers everything the text report prints for one user.
// Period is nil when the user has no records.
type EmissionReport struct {
	User    string
	Period  *DateRange
	Summary Summary
	Monthly MonthlyTrend
	Budget  BudgetStatus
}
