package response_models

// RoundCandidate is one of the destinations offered during a matching round,
// enriched with whatever weather and image data was available.
type RoundCandidate struct {
	Destination
	TotalTripCost float64  `json:"total_trip_cost"`
	CurrentTempC  *float64 `json:"current_temp_c,omitempty"`
	ForecastTempC *float64 `json:"forecast_temp_c,omitempty"`
	RainDays      *int     `json:"rain_days,omitempty"`
}

type SessionResponse struct {
	SessionID   string `json:"session_id"`
	State       string `json:"state"`
	Round       int    `json:"round"`
	TotalRounds int    `json:"total_rounds"`
	Candidates  int    `json:"candidates"`
}

type RoundResponse struct {
	SessionID   string           `json:"session_id"`
	Round       int              `json:"round"` // 1-based for display
	TotalRounds int              `json:"total_rounds"`
	State       string           `json:"state"`
	Candidates  []RoundCandidate `json:"candidates"`
}

type CostBreakdown struct {
	FlightTotal     float64 `json:"flight_total"`
	DailyTotal      float64 `json:"daily_total"`
	Total           float64 `json:"total"`
	BudgetRemaining float64 `json:"budget_remaining"`
}

type FeatureBreakdown struct {
	DestinationValue float64 `json:"destination_value"`
	PreferenceValue  float64 `json:"preference_value"`
	SimilarityPct    float64 `json:"similarity_pct"`
	Weight           float64 `json:"weight"`
	IsInverse        bool    `json:"is_inverse"`
}

type MatchResult struct {
	Destination
	MatchScore    float64  `json:"match_score"`
	WeatherScore  float64  `json:"weather_score"`
	CombinedScore float64  `json:"combined_score"`
	CurrentTempC  *float64 `json:"current_temp_c,omitempty"`
	ForecastTempC *float64 `json:"forecast_temp_c,omitempty"`
	RainDays      *int     `json:"rain_days,omitempty"`
	Cost          CostBreakdown `json:"cost"`
}

type RoundPick struct {
	Round   int    `json:"round"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type ResultResponse struct {
	SessionID   string                      `json:"session_id"`
	Best        MatchResult                 `json:"best"`
	Breakdown   map[string]FeatureBreakdown `json:"breakdown"`
	Top         []MatchResult               `json:"top"`
	Similar     []SimilarDestination        `json:"similar"`
	Preferences map[string]float64          `json:"preferences"`
	Insights    Insights                    `json:"insights"`
	Picks       []RoundPick                 `json:"picks"`
}

type Insights struct {
	TotalSelections int                `json:"total_selections"`
	Preferences     map[string]float64 `json:"preferences"`
	Patterns        []string           `json:"patterns"`
	Strengths       map[string]float64 `json:"strengths,omitempty"`
}
