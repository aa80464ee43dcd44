package models

// EarningsSummary is the live dashboard aggregation for a reporting
// period. Unsettled amounts are an approximation: paid settlements whose
// period overlaps the window are subtracted wholesale, clamped at zero.
type EarningsSummary struct {
	TotalBatta      float64 `json:"total_batta"`
	TotalSalary     float64 `json:"total_salary"`
	TripCount       int     `json:"trip_count"`
	UnsettledBatta  float64 `json:"unsettled_batta"`
	UnsettledSalary float64 `json:"unsettled_salary"`
	PeriodStart     string  `json:"period_start"`
	PeriodEnd       string  `json:"period_end"`
	Period          string  `json:"period"` // "weekly" or "monthly"
}
