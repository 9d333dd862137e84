package controllersfx

import (
	"go.uber.org/fx"

	"tripmatch/internal/api/controllers"
	"tripmatch/internal/services"
)

var Module = fx.Provide(
	provideSessionController,
	provideDestinationsController,
	provideBudgetController,
)

func provideSessionController(sessionService services.SessionServiceInterface) *controllers.SessionController {
	return controllers.NewSessionController(sessionService)
}

func provideDestinationsController(
	catalogService services.CatalogServiceInterface,
	similarityService services.SimilarityServiceInterface,
) *controllers.DestinationsController {
	return controllers.NewDestinationsController(catalogService, similarityService)
}

func provideBudgetController(budgetService services.BudgetServiceInterface) *controllers.BudgetController {
	return controllers.NewBudgetController(budgetService)
}
