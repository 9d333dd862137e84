package request_models

type BudgetComputeRequest struct {
	TotalBudget float64 `json:"total_budget"`
	FlightPrice float64 `json:"flight_price"`
	DailyCost   float64 `json:"daily_cost"`
	TripDays    int     `json:"trip_days"`
	Travelers   int     `json:"travelers"`
}
