package matchfx

import (
	"go.uber.org/fx"

	"tripmatch/internal/repositories"
	"tripmatch/internal/services"
)

var Module = fx.Provide(
	provideMatchingService,
	provideBudgetService,
	provideSimilarityService,
	provideInsightsService,
)

func provideMatchingService() services.MatchingServiceInterface {
	return services.NewMatchingService()
}

func provideBudgetService() services.BudgetServiceInterface {
	return services.NewBudgetService()
}

func provideSimilarityService(
	destRepo repositories.DestinationRepositoryInterface,
	matcher services.MatchingServiceInterface,
) services.SimilarityServiceInterface {
	return services.NewSimilarityService(destRepo, matcher)
}

func provideInsightsService() services.InsightsServiceInterface {
	return services.NewInsightsService()
}
