package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"tripmatch/internal/models/response_models"
	"tripmatch/pkg/utils"
)

const (
	exportVersion     = "2.0"
	exportApplication = "Travel Matching Recommender"
	exportTopN        = 5
)

type ExportServiceInterface interface {
	BuildDocument(sess *MatchSession, ranked []ScoredDestination) response_models.ExportDocument
	JSON(doc response_models.ExportDocument) ([]byte, error)
	CSV(ranked []ScoredDestination, topN int) ([]byte, error)
	Filename(format string) string
}

type ExportService struct{}

func NewExportService() ExportServiceInterface {
	return &ExportService{}
}

func (e *ExportService) BuildDocument(sess *MatchSession, ranked []ScoredDestination) response_models.ExportDocument {
	doc := response_models.ExportDocument{
		ExportInfo: response_models.ExportInfo{
			Timestamp:   time.Now().Format(time.RFC3339),
			Version:     exportVersion,
			Application: exportApplication,
		},
		UserSettings: response_models.ExportSettings{
			TotalBudget:    sess.TotalBudget,
			TripDays:       sess.TripDays,
			Travelers:      sess.Travelers,
			TravelStyle:    sess.TravelStyle,
			MinTempC:       sess.MinTempC,
			MaxTempC:       sess.MaxTempC,
			WeatherEnabled: sess.UseWeather,
		},
		MatchingProcess: response_models.ExportProcess{
			RoundsCompleted:    sess.Round,
			ChosenDestinations: []response_models.ExportChoice{},
		},
		Results: response_models.ExportResults{
			TopRecommendations: []response_models.ExportRecommendation{},
		},
	}

	for i, dest := range sess.Chosen {
		doc.MatchingProcess.ChosenDestinations = append(doc.MatchingProcess.ChosenDestinations, response_models.ExportChoice{
			Round:       i + 1,
			City:        dest.City,
			Country:     dest.Country,
			DailyBudget: dest.AvgBudgetPerDay,
		})
	}

	for i, dest := range ranked {
		if i >= exportTopN {
			break
		}
		doc.Results.TopRecommendations = append(doc.Results.TopRecommendations, response_models.ExportRecommendation{
			Rank:          i + 1,
			City:          dest.City,
			Country:       dest.Country,
			CombinedScore: dest.CombinedScore,
			MatchScore:    dest.MatchScore,
			WeatherScore:  dest.WeatherScore,
			DailyBudget:   dest.AvgBudgetPerDay,
			TotalTripCost: dest.TotalTripCost,
		})
	}
	return doc
}

func (e *ExportService) JSON(doc response_models.ExportDocument) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

func (e *ExportService) CSV(ranked []ScoredDestination, topN int) ([]byte, error) {
	if topN <= 0 || topN > len(ranked) {
		topN = len(ranked)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"rank", "city", "country", "continent",
		"combined_score", "match_score", "weather_score",
		"flight_total", "daily_total", "total_trip_cost", "budget_remaining",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for i := 0; i < topN; i++ {
		dest := ranked[i]
		record := []string{
			fmt.Sprintf("%d", i+1),
			dest.City,
			dest.Country,
			dest.Continent,
			fmt.Sprintf("%.1f", dest.CombinedScore),
			fmt.Sprintf("%.1f", dest.MatchScore),
			fmt.Sprintf("%.1f", dest.WeatherScore),
			fmt.Sprintf("%.2f", dest.FlightTotal),
			fmt.Sprintf("%.2f", dest.DailyTotal),
			fmt.Sprintf("%.2f", dest.TotalTripCost),
			fmt.Sprintf("%.2f", dest.BudgetRemaining),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *ExportService) Filename(format string) string {
	return utils.ExportFilename(time.Now(), format)
}
