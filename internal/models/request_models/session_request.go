package request_models

type StartSessionRequest struct {
	TotalBudget float64 `json:"total_budget"`
	TripDays    int     `json:"trip_days"`
	Travelers   int     `json:"travelers"`
	TravelStyle string  `json:"travel_style,omitempty"`
	MinTempC    *int    `json:"min_temp_c,omitempty"`
	MaxTempC    *int    `json:"max_temp_c,omitempty"`
	UseWeather  *bool   `json:"use_weather,omitempty"`
	// Travel window, YYYY-MM-DD. Forecast scoring is used when the departure
	// is within the forecast horizon, current weather otherwise.
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	Origin    string `json:"origin_iata,omitempty"`
}

type PickRequest struct {
	DestinationID string `json:"destination_id"`
}
