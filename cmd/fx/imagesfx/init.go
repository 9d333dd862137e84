package imagesfx

import (
	"go.uber.org/fx"

	"tripmatch/internal/repositories"
	"tripmatch/internal/services"
)

var Module = fx.Provide(provideImageService)

func provideImageService(cache repositories.CacheRepository) services.ImageServiceInterface {
	return services.NewUnsplashService(cache)
}
