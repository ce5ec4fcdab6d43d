package model

// Stats are the dashboard statistics computed by the backend.
type Stats struct {
	Saved             float64 `json:"saved"`
	TotalSpent        float64 `json:"total_spent"`
	AvgMonthly        float64 `json:"avg_monthly"`
	AvgDaily          float64 `json:"avg_daily"`
	SavingsRate       float64 `json:"savings_rate"`
	MoMChange         float64 `json:"mom_change"`
	TotalMonthlyFixed float64 `json:"totalMonthlyFixed"`
	BurnRate          float64 `json:"burn_rate"`
}
