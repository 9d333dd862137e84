package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	"tripmatch/internal/models/db_models"
)

// testDestination builds a catalog row with neutral features, overridden per
// test through the features map (keys as in Features()).
func testDestination(order int, city string, features map[string]float64) db_models.Destination {
	d := db_models.Destination{
		CatalogOrder:    order,
		City:            city,
		Country:         "Testland",
		Continent:       "Europe",
		IataCode:        "TST",
		AvgBudgetPerDay: 100,
		FlightPrice:     200,
		Safety:          3, EnglishLevel: 3, Crowds: 3,
		Beach: 3, Culture: 3, Nature: 3, Food: 3,
		Nightlife: 3, Adventure: 3, Romance: 3, Family: 3,
	}
	d.ID = uuid.New()

	for k, v := range features {
		switch k {
		case "safety":
			d.Safety = v
		case "english_level":
			d.EnglishLevel = v
		case "crowds":
			d.Crowds = v
		case "beach":
			d.Beach = v
		case "culture":
			d.Culture = v
		case "nature":
			d.Nature = v
		case "food":
			d.Food = v
		case "nightlife":
			d.Nightlife = v
		case "adventure":
			d.Adventure = v
		case "romance":
			d.Romance = v
		case "family":
			d.Family = v
		case "is_coastal":
			d.IsCoastal = v
		case db_models.BudgetFeature:
			d.AvgBudgetPerDay = v
		case "flight_price":
			d.FlightPrice = v
		default:
			panic(fmt.Sprintf("unknown test feature %q", k))
		}
	}
	d.RefreshFeatureVec()
	return d
}

type mockDestinationRepo struct {
	destinations []db_models.Destination
	upserted     []db_models.Destination
	forceError   bool
}

func (m *mockDestinationRepo) GetAll(ctx context.Context) ([]db_models.Destination, error) {
	if m.forceError {
		return nil, errors.New("db down")
	}
	return m.destinations, nil
}

func (m *mockDestinationRepo) List(ctx context.Context, page, pageSize int) ([]db_models.Destination, error) {
	if m.forceError {
		return nil, errors.New("db down")
	}
	start := (page - 1) * pageSize
	if start >= len(m.destinations) {
		return nil, nil
	}
	end := start + pageSize
	if end > len(m.destinations) {
		end = len(m.destinations)
	}
	return m.destinations[start:end], nil
}

func (m *mockDestinationRepo) GetByID(ctx context.Context, id string) (*db_models.Destination, error) {
	if m.forceError {
		return nil, errors.New("db down")
	}
	for i := range m.destinations {
		if m.destinations[i].ID.String() == id {
			return &m.destinations[i], nil
		}
	}
	return nil, nil
}

func (m *mockDestinationRepo) Upsert(ctx context.Context, dest *db_models.Destination) error {
	if m.forceError {
		return errors.New("db down")
	}
	m.upserted = append(m.upserted, *dest)
	return nil
}

func (m *mockDestinationRepo) NearestByVector(ctx context.Context, vec pgvector.Vector, k int, excludeID string) ([]db_models.Destination, error) {
	if m.forceError {
		return nil, errors.New("db down")
	}
	out := make([]db_models.Destination, 0, k)
	for i := range m.destinations {
		if m.destinations[i].ID.String() == excludeID {
			continue
		}
		if len(out) == k {
			break
		}
		out = append(out, m.destinations[i])
	}
	return out, nil
}

func (m *mockDestinationRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.destinations)), nil
}

type mockWeatherService struct {
	enrichCalled bool
	score        float64
}

func (m *mockWeatherService) CurrentWeather(ctx context.Context, lat, lon float64) (*CurrentWeather, error) {
	return &CurrentWeather{TemperatureC: 20}, nil
}

func (m *mockWeatherService) ForecastWindow(ctx context.Context, lat, lon float64, start, end time.Time) (*ForecastSummary, error) {
	return &ForecastSummary{MeanTempC: 20}, nil
}

func (m *mockWeatherService) Score(tempC float64, minPref, maxPref int) float64 {
	return m.score
}

func (m *mockWeatherService) Enrich(ctx context.Context, dests []ScoredDestination, minPref, maxPref int, window *TravelWindow) []ScoredDestination {
	m.enrichCalled = true
	for i := range dests {
		dests[i].WeatherScore = m.score
	}
	return dests
}

type mockFlightService struct {
	configured bool
	price      float64
	quoteErr   error
	calls      int
}

func (m *mockFlightService) QuotePrice(ctx context.Context, origin, destination string, departure, ret time.Time, adults int) (float64, error) {
	m.calls++
	if m.quoteErr != nil {
		return 0, m.quoteErr
	}
	return m.price, nil
}

func (m *mockFlightService) Configured() bool { return m.configured }

type mockImageService struct{}

func (m *mockImageService) ThumbnailURL(ctx context.Context, city, country string) string {
	return FallbackImageURL
}

func (m *mockImageService) HeroURL(ctx context.Context, city, country string) string {
	return FallbackImageURL
}
