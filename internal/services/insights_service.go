package services

import (
	"math"

	"tripmatch/internal/models/db_models"
	"tripmatch/internal/models/response_models"
)

type InsightsServiceInterface interface {
	Generate(chosen []db_models.Destination) response_models.Insights
}

type InsightsService struct{}

func NewInsightsService() InsightsServiceInterface {
	return &InsightsService{}
}

// Generate looks for patterns in what the user picked during the rounds.
// It is deliberately rule-based: the averages double as the radar-chart data.
func (s *InsightsService) Generate(chosen []db_models.Destination) response_models.Insights {
	if len(chosen) == 0 {
		return response_models.Insights{}
	}

	prefs := make(map[string]float64)
	for _, feature := range append(append([]string{}, db_models.MatchingFeatureOrder...), db_models.BudgetFeature) {
		var sum float64
		for i := range chosen {
			sum += chosen[i].Features()[feature]
		}
		prefs[feature] = math.Round(sum/float64(len(chosen))*100) / 100
	}

	var patterns []string

	coastal := 0
	for i := range chosen {
		if chosen[i].IsCoastal > 0.5 {
			coastal++
		}
	}
	if coastal > len(chosen)/2 {
		patterns = append(patterns, "You prefer coastal destinations!")
	}

	switch avgBudget := prefs[db_models.BudgetFeature]; {
	case avgBudget < 90:
		patterns = append(patterns, "You're budget-conscious!")
	case avgBudget > 150:
		patterns = append(patterns, "You prefer premium experiences!")
	}

	switch crowds := prefs["crowds"]; {
	case crowds < 2.5:
		patterns = append(patterns, "You like places off the beaten path!")
	case crowds > 4:
		patterns = append(patterns, "Busy hotspots don't scare you!")
	}

	if prefs["beach"] > 4 {
		patterns = append(patterns, "Beach time ranks high for you!")
	}
	if prefs["culture"] > 4 {
		patterns = append(patterns, "You choose culture-rich destinations!")
	}
	if prefs["nature"] > 4 {
		patterns = append(patterns, "Nature is a big draw for you!")
	}
	if prefs["family"] > 4 {
		patterns = append(patterns, "You pick family-friendly spots!")
	}

	return response_models.Insights{
		TotalSelections: len(chosen),
		Preferences:     prefs,
		Patterns:        patterns,
		Strengths:       preferenceStrengths(prefs),
	}
}

// preferenceStrengths scores how far each 1-5 feature average sits from the
// neutral midpoint, scaled to 0-1.
func preferenceStrengths(prefs map[string]float64) map[string]float64 {
	strengths := make(map[string]float64, len(db_models.MatchingFeatureOrder))
	for _, feature := range db_models.MatchingFeatureOrder {
		norm := normalizeValue(prefs[feature], 1, 5)
		strength := math.Abs(norm-0.5) * 2
		strengths[feature] = math.Round(math.Min(1.0, strength)*100) / 100
	}
	return strengths
}
