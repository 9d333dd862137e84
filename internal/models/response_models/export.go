package response_models

// ExportDocument is the flat record a user downloads after finishing the
// matching rounds.
type ExportDocument struct {
	ExportInfo      ExportInfo       `json:"export_info"`
	UserSettings    ExportSettings   `json:"user_settings"`
	MatchingProcess ExportProcess    `json:"matching_process"`
	Results         ExportResults    `json:"results"`
}

type ExportInfo struct {
	Timestamp   string `json:"timestamp"`
	Version     string `json:"version"`
	Application string `json:"application"`
}

type ExportSettings struct {
	TotalBudget    float64 `json:"total_budget"`
	TripDays       int     `json:"trip_days"`
	Travelers      int     `json:"travelers"`
	TravelStyle    string  `json:"travel_style"`
	MinTempC       int     `json:"min_temp_c"`
	MaxTempC       int     `json:"max_temp_c"`
	WeatherEnabled bool    `json:"weather_enabled"`
}

type ExportProcess struct {
	RoundsCompleted    int               `json:"rounds_completed"`
	ChosenDestinations []ExportChoice    `json:"chosen_destinations"`
}

type ExportChoice struct {
	Round       int     `json:"round"`
	City        string  `json:"city"`
	Country     string  `json:"country"`
	DailyBudget float64 `json:"daily_budget"`
}

type ExportResults struct {
	TopRecommendations []ExportRecommendation `json:"top_recommendations"`
}

type ExportRecommendation struct {
	Rank          int     `json:"rank"`
	City          string  `json:"city"`
	Country       string  `json:"country"`
	CombinedScore float64 `json:"combined_score"`
	MatchScore    float64 `json:"match_score"`
	WeatherScore  float64 `json:"weather_score"`
	DailyBudget   float64 `json:"daily_budget"`
	TotalTripCost float64 `json:"total_trip_cost"`
}
