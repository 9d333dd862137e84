package services

import (
	"math"
	"sort"

	"tripmatch/internal/models/db_models"
	"tripmatch/internal/models/response_models"
)

// DefaultWeatherWeight is the share of the combined score the weather term
// contributes when weather scoring is enabled.
const DefaultWeatherWeight = 0.2

type StyleWeights map[string]float64

type TravelStyle struct {
	Key         string
	Name        string
	Description string
	Weights     StyleWeights
}

// TravelStyles are hand-tuned weight tables. A negative weight inverts the
// similarity for that feature (e.g. crowds: lower is better for most styles).
var TravelStyles = []TravelStyle{
	{
		Key: "beach_relaxation", Name: "Beach & Relaxation", Description: "Sun, sand, and relaxation",
		Weights: StyleWeights{
			"beach": 3.0, "safety": 2.0, "crowds": -1.5, "nature": 1.5, "romance": 1.0,
			"food": 1.0, "nightlife": 0.5, "culture": 0.5, "adventure": 0.5,
			"english_level": 1.0, "family": 1.0,
		},
	},
	{
		Key: "culture_history", Name: "Culture & History", Description: "Museums, architecture, and heritage",
		Weights: StyleWeights{
			"culture": 3.0, "food": 2.0, "safety": 1.5, "english_level": 1.5, "nature": 1.0,
			"romance": 1.0, "crowds": -0.5, "beach": 0.5, "nightlife": 0.5, "adventure": 0.5,
			"family": 1.0,
		},
	},
	{
		Key: "adventure_nature", Name: "Adventure & Nature", Description: "Hiking, wildlife, and outdoor activities",
		Weights: StyleWeights{
			"adventure": 3.0, "nature": 3.0, "crowds": -2.0, "safety": 2.0, "culture": 0.5,
			"beach": 0.5, "food": 1.0, "english_level": 1.0, "nightlife": 0.0, "romance": 1.0,
			"family": 1.0,
		},
	},
	{
		Key: "foodie", Name: "Food & Culinary", Description: "Local cuisine and gastronomic experiences",
		Weights: StyleWeights{
			"food": 3.0, "culture": 2.0, "safety": 1.5, "english_level": 1.0, "nightlife": 1.0,
			"crowds": -0.5, "beach": 0.5, "nature": 1.0, "adventure": 0.5, "romance": 1.5,
			"family": 1.0,
		},
	},
	{
		Key: "party_nightlife", Name: "Party & Nightlife", Description: "Clubs, bars, and vibrant nightlife",
		Weights: StyleWeights{
			"nightlife": 3.0, "beach": 1.5, "safety": 1.5, "english_level": 2.0, "food": 1.5,
			"crowds": 0.5, "culture": 0.5, "nature": 0.5, "adventure": 1.0, "romance": 1.0,
			"family": -1.0,
		},
	},
	{
		Key: "romantic_getaway", Name: "Romantic Getaway", Description: "Perfect for couples and honeymoons",
		Weights: StyleWeights{
			"romance": 3.0, "safety": 2.5, "food": 2.0, "beach": 2.0, "crowds": -2.0,
			"nature": 2.0, "culture": 1.5, "nightlife": 1.0, "english_level": 1.0,
			"adventure": 1.0, "family": -1.0,
		},
	},
	{
		Key: "family_vacation", Name: "Family Vacation", Description: "Safe and fun for the whole family",
		Weights: StyleWeights{
			"family": 3.0, "safety": 3.0, "english_level": 2.0, "beach": 1.5, "nature": 1.5,
			"culture": 1.0, "food": 1.0, "adventure": 1.0, "nightlife": -1.5, "crowds": -0.5,
			"romance": 0.0,
		},
	},
	{
		Key: "budget_backpacker", Name: "Budget Travel", Description: "Maximum experience, minimum cost",
		Weights: StyleWeights{
			db_models.BudgetFeature: -3.0,
			"safety":                2.0, "english_level": 1.5, "culture": 1.5, "food": 1.5,
			"adventure": 1.5, "nature": 1.0, "crowds": -0.5, "beach": 1.0, "nightlife": 1.0,
			"romance": 0.5, "family": 0.5,
		},
	},
	{
		Key: "hidden_gems", Name: "Hidden Gems", Description: "Off the beaten path destinations",
		Weights: StyleWeights{
			"crowds": -3.0, "nature": 2.0, "culture": 1.5, "adventure": 1.5, "safety": 1.5,
			"food": 1.0, "english_level": 0.5, "beach": 1.0, "nightlife": 0.0, "romance": 1.5,
			"family": 1.0,
		},
	},
	{
		Key: "balanced", Name: "Balanced", Description: "A bit of everything",
		Weights: StyleWeights{
			"safety": 2.0, "culture": 1.5, "nature": 1.5, "food": 1.5, "beach": 1.0,
			"english_level": 1.0, "adventure": 1.0, "nightlife": 0.5, "romance": 1.0,
			"family": 1.0, "crowds": -0.5,
		},
	},
}

var defaultWeights = StyleWeights{
	"safety": 2.0, "english_level": 1.0, "crowds": 1.0, "beach": 1.0, "culture": 1.0,
	"nature": 1.0, "food": 1.0, "nightlife": 1.0, "adventure": 1.0, "romance": 1.0,
	"family": 1.0,
}

func StyleWeightsFor(key string) StyleWeights {
	for _, s := range TravelStyles {
		if s.Key == key {
			return s.Weights
		}
	}
	return defaultWeights
}

func IsKnownStyle(key string) bool {
	for _, s := range TravelStyles {
		if s.Key == key {
			return true
		}
	}
	return false
}

type FeatureRange struct {
	Min float64
	Max float64
}

// ScoredDestination carries a catalog row through the budget, weather and
// matching stages of one session.
type ScoredDestination struct {
	db_models.Destination

	FlightTotal     float64
	DailyTotal      float64
	TotalTripCost   float64
	BudgetRemaining float64

	WeatherScore  float64
	CurrentTempC  *float64
	ForecastTempC *float64
	RainDays      *int

	MatchScore    float64
	CombinedScore float64
}

type MatchingServiceInterface interface {
	PreferenceVector(chosen []db_models.Destination) map[string]float64
	FeatureRanges(dests []ScoredDestination) map[string]FeatureRange
	MatchScore(dest *db_models.Destination, preference map[string]float64, ranges map[string]FeatureRange, weights StyleWeights) float64
	MatchBreakdown(dest *db_models.Destination, preference map[string]float64, ranges map[string]FeatureRange, weights StyleWeights) map[string]response_models.FeatureBreakdown
	Rank(candidates []ScoredDestination, chosen []db_models.Destination, styleKey string, useWeather bool, weatherWeight float64) []ScoredDestination
}

type MatchingService struct{}

func NewMatchingService() MatchingServiceInterface {
	return &MatchingService{}
}

func allFeatures() []string {
	return append(append([]string{}, db_models.MatchingFeatureOrder...), db_models.BudgetFeature)
}

// PreferenceVector averages each feature over the destinations the user
// picked. This is the whole learning step: later rounds and the final
// ranking score against these means.
func (m *MatchingService) PreferenceVector(chosen []db_models.Destination) map[string]float64 {
	if len(chosen) == 0 {
		return map[string]float64{}
	}

	preference := make(map[string]float64, len(db_models.MatchingFeatureOrder)+1)
	for _, feature := range allFeatures() {
		var sum float64
		for i := range chosen {
			sum += chosen[i].Features()[feature]
		}
		preference[feature] = sum / float64(len(chosen))
	}
	return preference
}

func (m *MatchingService) FeatureRanges(dests []ScoredDestination) map[string]FeatureRange {
	ranges := make(map[string]FeatureRange, len(db_models.MatchingFeatureOrder)+1)

	for _, feature := range allFeatures() {
		if len(dests) == 0 {
			ranges[feature] = FeatureRange{Min: 1, Max: 5} // default 1-5 score range
			continue
		}
		r := FeatureRange{Min: math.Inf(1), Max: math.Inf(-1)}
		for i := range dests {
			v := dests[i].Features()[feature]
			r.Min = math.Min(r.Min, v)
			r.Max = math.Max(r.Max, v)
		}
		ranges[feature] = r
	}
	return ranges
}

func normalizeValue(value, min, max float64) float64 {
	if max == min {
		return 0.5
	}
	return (value - min) / (max - min)
}

// MatchScore compares a destination against the learned preference vector.
// Both sides are normalized per feature, similarity is 1-|dist|, negative
// weights invert it, and the weighted average is scaled to 0-100. With no
// signal the score is a neutral 50.
func (m *MatchingService) MatchScore(dest *db_models.Destination, preference map[string]float64, ranges map[string]FeatureRange, weights StyleWeights) float64 {
	if len(preference) == 0 {
		return 50.0
	}
	if weights == nil {
		weights = defaultWeights
	}

	features := dest.Features()
	var totalWeighted, totalWeight float64

	for _, feature := range allFeatures() {
		pref, ok := preference[feature]
		if !ok {
			continue
		}
		weight := weights[feature]
		if weight == 0 {
			continue
		}
		r, ok := ranges[feature]
		if !ok {
			r = FeatureRange{Min: 1, Max: 5}
		}

		normDest := normalizeValue(features[feature], r.Min, r.Max)
		normPref := normalizeValue(pref, r.Min, r.Max)

		similarity := 1.0 - math.Abs(normDest-normPref)
		if weight < 0 {
			similarity = 1.0 - similarity
		}

		absWeight := math.Abs(weight)
		totalWeighted += similarity * absWeight
		totalWeight += absWeight
	}

	if totalWeight == 0 {
		return 50.0
	}
	return roundScore(totalWeighted / totalWeight * 100)
}

func (m *MatchingService) MatchBreakdown(dest *db_models.Destination, preference map[string]float64, ranges map[string]FeatureRange, weights StyleWeights) map[string]response_models.FeatureBreakdown {
	if weights == nil {
		weights = defaultWeights
	}

	features := dest.Features()
	breakdown := make(map[string]response_models.FeatureBreakdown)

	for _, feature := range allFeatures() {
		pref, ok := preference[feature]
		if !ok {
			continue
		}
		weight := weights[feature]
		if weight == 0 {
			continue
		}
		r, ok := ranges[feature]
		if !ok {
			r = FeatureRange{Min: 1, Max: 5}
		}

		normDest := normalizeValue(features[feature], r.Min, r.Max)
		normPref := normalizeValue(pref, r.Min, r.Max)
		similarity := 1.0 - math.Abs(normDest-normPref)
		if weight < 0 {
			similarity = 1.0 - similarity
		}

		breakdown[feature] = response_models.FeatureBreakdown{
			DestinationValue: features[feature],
			PreferenceValue:  math.Round(pref*100) / 100,
			SimilarityPct:    roundScore(similarity * 100),
			Weight:           weight,
			IsInverse:        weight < 0,
		}
	}
	return breakdown
}

func combinedScore(matchScore, weatherScore, weatherWeight float64) float64 {
	return roundScore(matchScore*(1-weatherWeight) + weatherScore*weatherWeight)
}

// Rank scores every candidate against the current preference vector and
// sorts descending by combined score. The sort is stable, so ties keep
// catalog order.
func (m *MatchingService) Rank(candidates []ScoredDestination, chosen []db_models.Destination, styleKey string, useWeather bool, weatherWeight float64) []ScoredDestination {
	preference := m.PreferenceVector(chosen)
	ranges := m.FeatureRanges(candidates)
	weights := StyleWeightsFor(styleKey)

	ranked := make([]ScoredDestination, len(candidates))
	copy(ranked, candidates)

	for i := range ranked {
		ranked[i].MatchScore = m.MatchScore(&ranked[i].Destination, preference, ranges, weights)
		ranked[i].WeatherScore = roundScore(ranked[i].WeatherScore)
		if useWeather {
			ranked[i].CombinedScore = combinedScore(ranked[i].MatchScore, ranked[i].WeatherScore, weatherWeight)
		} else {
			ranked[i].CombinedScore = ranked[i].MatchScore
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CombinedScore > ranked[j].CombinedScore
	})
	return ranked
}

func roundScore(v float64) float64 {
	return math.Round(v*10) / 10
}
