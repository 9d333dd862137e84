package weatherfx

import (
	"go.uber.org/fx"

	"tripmatch/internal/repositories"
	"tripmatch/internal/services"
)

var Module = fx.Provide(provideWeatherService)

func provideWeatherService(cache repositories.CacheRepository) services.WeatherServiceInterface {
	return services.NewOpenMeteoService(cache)
}
