package flightsfx

import (
	"go.uber.org/fx"

	"tripmatch/internal/repositories"
	"tripmatch/internal/services"
)

var Module = fx.Provide(provideFlightService)

func provideFlightService(cache repositories.CacheRepository) services.FlightServiceInterface {
	return services.NewAmadeusService(cache)
}
