package response_models

type BudgetResult struct {
	FlightTotal     float64 `json:"flight_total"`
	DailyTotal      float64 `json:"daily_total"`
	Total           float64 `json:"total"`
	BudgetRemaining float64 `json:"budget_remaining"`
	WithinBudget    bool    `json:"within_budget"`
}
