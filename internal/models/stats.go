package models

// DashboardStats is the aggregate view over all of a user's records.
// ByMonth is keyed "YYYY-MM" over all time; HasServiceInMonth is keyed by
// zero-based month index and only covers the selected year.
type DashboardStats struct {
	TotalSpent        float64            `json:"total_spent"`
	TotalServices     int                `json:"total_services"`
	ByMonth           map[string]float64 `json:"by_month"`
	HasServiceInMonth map[int]bool       `json:"has_service_in_month"`
	Years             []int              `json:"years"` // selectable dashboard years, descending
}
