package cachefx

import (
	"os"

	"go.uber.org/fx"

	"tripmatch/internal/repositories"
)

var Module = fx.Provide(provideCache)

// Redis when REDIS_ADDR is set, otherwise the in-process cache. Single
// instance deployments do not need the extra moving part.
func provideCache() repositories.CacheRepository {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return repositories.NewRedisCache(addr)
	}
	return repositories.NewMemoryCache()
}
