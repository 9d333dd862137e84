package catalogfx

import (
	"go.uber.org/fx"

	"tripmatch/internal/repositories"
	"tripmatch/internal/services"
)

var Module = fx.Provide(provideCatalogService)

func provideCatalogService(
	destRepo repositories.DestinationRepositoryInterface,
	images services.ImageServiceInterface,
) services.CatalogServiceInterface {
	return services.NewCatalogService(destRepo, images)
}
