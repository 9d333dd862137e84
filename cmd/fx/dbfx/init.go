package dbfx

import (
	"context"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"tripmatch/internal/infra"
	"tripmatch/internal/repositories"
)

var Module = fx.Provide(
	provideDB, provideDestinationRepo)

func provideDB(lc fx.Lifecycle) *gorm.DB {
	db := infra.InitPostgresql()
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.ClosePostgresql(db)
			return nil
		},
	})
	return db
}

func provideDestinationRepo(db *gorm.DB) repositories.DestinationRepositoryInterface {
	return repositories.NewDestinationRepository(db)
}
