package sessionfx

import (
	"time"

	"go.uber.org/fx"

	"tripmatch/internal/repositories"
	"tripmatch/internal/services"
	"tripmatch/pkg/memcache"
)

const sessionTTL = 2 * time.Hour

var Module = fx.Provide(
	provideSessionStore,
	provideExportService,
	provideSessionService,
)

func provideSessionStore() *memcache.Store[*services.MatchSession] {
	return memcache.NewStore[*services.MatchSession](sessionTTL)
}

func provideExportService() services.ExportServiceInterface {
	return services.NewExportService()
}

func provideSessionService(
	store *memcache.Store[*services.MatchSession],
	destRepo repositories.DestinationRepositoryInterface,
	matching services.MatchingServiceInterface,
	budget services.BudgetServiceInterface,
	weather services.WeatherServiceInterface,
	flights services.FlightServiceInterface,
	images services.ImageServiceInterface,
	similarity services.SimilarityServiceInterface,
	insights services.InsightsServiceInterface,
	export services.ExportServiceInterface,
) services.SessionServiceInterface {
	return services.NewSessionService(
		store, destRepo, matching, budget, weather,
		flights, images, similarity, insights, export,
	)
}
