package response_models

type Destination struct {
	ID              string   `json:"id"`
	City            string   `json:"city"`
	Country         string   `json:"country"`
	Continent       string   `json:"continent"`
	IataCode        string   `json:"iata_code,omitempty"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
	AvgBudgetPerDay float64  `json:"avg_budget_per_day"`
	FlightPrice     float64  `json:"flight_price"`
	Climate         string   `json:"climate,omitempty"`
	BestMonths      []string `json:"best_months,omitempty"`
	ImageURL        string   `json:"image_url,omitempty"`
}

type SimilarDestination struct {
	Destination
	Distance      float64 `json:"distance"`
	SimilarityPct float64 `json:"similarity_pct"`
}

type TravelStyleResponse struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}
