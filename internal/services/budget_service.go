package services

import (
	"sort"

	"tripmatch/internal/models/db_models"
	"tripmatch/internal/models/request_models"
	"tripmatch/internal/models/response_models"
	"tripmatch/pkg/utils"
)

// budgetFlexibility lets slightly-over-budget destinations through the
// filter so the matcher still has something to rank against.
const budgetFlexibility = 1.2

type BudgetServiceInterface interface {
	Compute(input request_models.BudgetComputeRequest) (response_models.BudgetResult, error)
	FilterByBudget(dests []db_models.Destination, totalBudget float64, tripDays, travelers int) []ScoredDestination
}

type BudgetService struct{}

func NewBudgetService() BudgetServiceInterface {
	return &BudgetService{}
}

// Compute derives the full trip cost:
// total = flight×travelers + daily×days×travelers.
func (b *BudgetService) Compute(input request_models.BudgetComputeRequest) (response_models.BudgetResult, error) {
	if input.TotalBudget < 0 || input.FlightPrice < 0 || input.DailyCost < 0 {
		return response_models.BudgetResult{}, utils.ErrInvalidBudget
	}
	if input.TripDays <= 0 || input.Travelers <= 0 {
		return response_models.BudgetResult{}, utils.ErrInvalidBudget
	}

	flightTotal := input.FlightPrice * float64(input.Travelers)
	dailyTotal := input.DailyCost * float64(input.TripDays) * float64(input.Travelers)
	total := flightTotal + dailyTotal

	return response_models.BudgetResult{
		FlightTotal:     flightTotal,
		DailyTotal:      dailyTotal,
		Total:           total,
		BudgetRemaining: input.TotalBudget - total,
		WithinBudget:    total <= input.TotalBudget,
	}, nil
}

// FilterByBudget keeps destinations whose full trip cost fits the budget
// (with 20% flexibility), cheapest first. An empty result falls back to the
// whole catalog so a tight budget degrades the ranking instead of emptying it.
func (b *BudgetService) FilterByBudget(dests []db_models.Destination, totalBudget float64, tripDays, travelers int) []ScoredDestination {
	matches := make([]ScoredDestination, 0, len(dests))

	for i := range dests {
		sd := scoredFromCatalog(dests[i], tripDays, travelers, totalBudget)
		if sd.TotalTripCost <= totalBudget*budgetFlexibility {
			matches = append(matches, sd)
		}
	}

	if len(matches) == 0 {
		matches = make([]ScoredDestination, 0, len(dests))
		for i := range dests {
			matches = append(matches, scoredFromCatalog(dests[i], tripDays, travelers, totalBudget))
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].TotalTripCost < matches[j].TotalTripCost
	})
	return matches
}

func scoredFromCatalog(dest db_models.Destination, tripDays, travelers int, totalBudget float64) ScoredDestination {
	flightTotal := dest.FlightPrice * float64(travelers)
	dailyTotal := dest.AvgBudgetPerDay * float64(tripDays) * float64(travelers)
	total := flightTotal + dailyTotal

	return ScoredDestination{
		Destination:     dest,
		FlightTotal:     flightTotal,
		DailyTotal:      dailyTotal,
		TotalTripCost:   total,
		BudgetRemaining: totalBudget - total,
		WeatherScore:    NeutralWeatherScore,
	}
}
