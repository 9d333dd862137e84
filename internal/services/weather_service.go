package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"tripmatch/internal/repositories"
)

const (
	// NeutralWeatherScore is used whenever no weather signal is available;
	// an unreachable weather API must never block the ranking.
	NeutralWeatherScore = 50.0

	openMeteoBaseURL    = "https://api.open-meteo.com"
	forecastHorizonDays = 16
	weatherCacheTTL     = 30 * time.Minute
)

type CurrentWeather struct {
	TemperatureC float64 `json:"temperature_c"`
	WindspeedKmh float64 `json:"windspeed_kmh"`
	WeatherCode  int     `json:"weather_code"`
}

type ForecastSummary struct {
	MeanTempC float64 `json:"mean_temp_c"`
	RainDays  int     `json:"rain_days"`
}

// TravelWindow is the planned departure/return range. Forecast data is only
// used when the departure falls inside the provider's forecast horizon.
type TravelWindow struct {
	Start time.Time
	End   time.Time
}

func (w TravelWindow) WithinForecastHorizon(now time.Time) bool {
	days := int(w.Start.Sub(now).Hours() / 24)
	return days >= 0 && days <= forecastHorizonDays
}

type WeatherServiceInterface interface {
	CurrentWeather(ctx context.Context, lat, lon float64) (*CurrentWeather, error)
	ForecastWindow(ctx context.Context, lat, lon float64, start, end time.Time) (*ForecastSummary, error)
	Score(tempC float64, minPref, maxPref int) float64
	Enrich(ctx context.Context, dests []ScoredDestination, minPref, maxPref int, window *TravelWindow) []ScoredDestination
}

type OpenMeteoService struct {
	baseURL string
	client  *http.Client
	cache   repositories.CacheRepository
}

func NewOpenMeteoService(cache repositories.CacheRepository) WeatherServiceInterface {
	return &OpenMeteoService{
		baseURL: openMeteoBaseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
		cache:   cache,
	}
}

func (s *OpenMeteoService) CurrentWeather(ctx context.Context, lat, lon float64) (*CurrentWeather, error) {
	cacheKey := fmt.Sprintf("weather:current:%.4f:%.4f", lat, lon)
	if cached, ok := s.cache.Get(ctx, cacheKey); ok {
		var cw CurrentWeather
		if err := json.Unmarshal([]byte(cached), &cw); err == nil {
			return &cw, nil
		}
	}

	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%f", lat))
	q.Set("longitude", fmt.Sprintf("%f", lon))
	q.Set("current_weather", "true")

	var payload struct {
		CurrentWeather struct {
			Temperature float64 `json:"temperature"`
			Windspeed   float64 `json:"windspeed"`
			WeatherCode int     `json:"weathercode"`
		} `json:"current_weather"`
	}
	if err := s.getJSON(ctx, "/v1/forecast", q, &payload); err != nil {
		return nil, err
	}

	cw := &CurrentWeather{
		TemperatureC: payload.CurrentWeather.Temperature,
		WindspeedKmh: payload.CurrentWeather.Windspeed,
		WeatherCode:  payload.CurrentWeather.WeatherCode,
	}
	if raw, err := json.Marshal(cw); err == nil {
		s.cache.Set(ctx, cacheKey, string(raw), weatherCacheTTL)
	}
	return cw, nil
}

func (s *OpenMeteoService) ForecastWindow(ctx context.Context, lat, lon float64, start, end time.Time) (*ForecastSummary, error) {
	startStr := start.Format("2006-01-02")
	endStr := end.Format("2006-01-02")
	cacheKey := fmt.Sprintf("weather:forecast:%.4f:%.4f:%s:%s", lat, lon, startStr, endStr)
	if cached, ok := s.cache.Get(ctx, cacheKey); ok {
		var fs ForecastSummary
		if err := json.Unmarshal([]byte(cached), &fs); err == nil {
			return &fs, nil
		}
	}

	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%f", lat))
	q.Set("longitude", fmt.Sprintf("%f", lon))
	q.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum")
	q.Set("start_date", startStr)
	q.Set("end_date", endStr)

	var payload struct {
		Daily struct {
			TempMax       []float64 `json:"temperature_2m_max"`
			TempMin       []float64 `json:"temperature_2m_min"`
			Precipitation []float64 `json:"precipitation_sum"`
		} `json:"daily"`
	}
	if err := s.getJSON(ctx, "/v1/forecast", q, &payload); err != nil {
		return nil, err
	}
	if len(payload.Daily.TempMax) == 0 || len(payload.Daily.TempMax) != len(payload.Daily.TempMin) {
		return nil, fmt.Errorf("open-meteo: empty forecast for %f,%f", lat, lon)
	}

	var sum float64
	for i := range payload.Daily.TempMax {
		sum += (payload.Daily.TempMax[i] + payload.Daily.TempMin[i]) / 2
	}
	rainDays := 0
	for _, p := range payload.Daily.Precipitation {
		if p >= 1.0 {
			rainDays++
		}
	}

	fs := &ForecastSummary{
		MeanTempC: sum / float64(len(payload.Daily.TempMax)),
		RainDays:  rainDays,
	}
	if raw, err := json.Marshal(fs); err == nil {
		s.cache.Set(ctx, cacheKey, string(raw), weatherCacheTTL)
	}
	return fs, nil
}

func (s *OpenMeteoService) getJSON(ctx context.Context, path string, q url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("open-meteo http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("open-meteo bad status: %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Score is 100 inside the preferred range and loses 15 points for every
// 5 degrees outside it, floored at 0.
func (s *OpenMeteoService) Score(tempC float64, minPref, maxPref int) float64 {
	lo, hi := float64(minPref), float64(maxPref)
	if tempC >= lo && tempC <= hi {
		return 100.0
	}
	var diff float64
	if tempC < lo {
		diff = lo - tempC
	} else {
		diff = tempC - hi
	}
	penalty := diff / 5 * 15
	if penalty >= 100 {
		return 0.0
	}
	return 100.0 - penalty
}

// Enrich attaches a weather score (and display temperatures) to every
// candidate. Failures degrade each destination to the neutral score and the
// loop carries on.
func (s *OpenMeteoService) Enrich(ctx context.Context, dests []ScoredDestination, minPref, maxPref int, window *TravelWindow) []ScoredDestination {
	useForecast := window != nil && window.WithinForecastHorizon(time.Now())

	for i := range dests {
		dests[i].WeatherScore = NeutralWeatherScore
		if dests[i].Latitude == 0 && dests[i].Longitude == 0 {
			continue
		}

		if useForecast {
			fs, err := s.ForecastWindow(ctx, dests[i].Latitude, dests[i].Longitude, window.Start, window.End)
			if err != nil {
				log.Printf("Weather forecast unavailable for %s: %v", dests[i].City, err)
				continue
			}
			temp := fs.MeanTempC
			rain := fs.RainDays
			dests[i].ForecastTempC = &temp
			dests[i].RainDays = &rain
			dests[i].WeatherScore = s.Score(temp, minPref, maxPref)
			continue
		}

		cw, err := s.CurrentWeather(ctx, dests[i].Latitude, dests[i].Longitude)
		if err != nil {
			log.Printf("Current weather unavailable for %s: %v", dests[i].City, err)
			continue
		}
		temp := cw.TemperatureC
		dests[i].CurrentTempC = &temp
		dests[i].WeatherScore = s.Score(temp, minPref, maxPref)
	}
	return dests
}

// WeatherDescription maps a WMO weather code to a display string.
func WeatherDescription(code int) string {
	descriptions := map[int]string{
		0:  "Clear sky",
		1:  "Mainly clear",
		2:  "Partly cloudy",
		3:  "Overcast",
		45: "Foggy",
		48: "Depositing rime fog",
		51: "Light drizzle",
		53: "Moderate drizzle",
		55: "Dense drizzle",
		61: "Slight rain",
		63: "Moderate rain",
		65: "Heavy rain",
		71: "Slight snow",
		73: "Moderate snow",
		75: "Heavy snow",
		80: "Slight rain showers",
		81: "Moderate rain showers",
		82: "Violent rain showers",
		95: "Thunderstorm",
	}
	if d, ok := descriptions[code]; ok {
		return d
	}
	return "Unknown"
}
