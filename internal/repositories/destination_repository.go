package repositories

import (
	"context"
	"errors"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tripmatch/internal/models/db_models"
)

type DestinationRepositoryInterface interface {
	GetAll(ctx context.Context) ([]db_models.Destination, error)
	List(ctx context.Context, page, pageSize int) ([]db_models.Destination, error)
	GetByID(ctx context.Context, id string) (*db_models.Destination, error)
	Upsert(ctx context.Context, dest *db_models.Destination) error
	NearestByVector(ctx context.Context, vec pgvector.Vector, k int, excludeID string) ([]db_models.Destination, error)
	Count(ctx context.Context) (int64, error)
}

func NewDestinationRepository(db *gorm.DB) DestinationRepositoryInterface {
	return &DestinationRepository{db: db}
}

type DestinationRepository struct {
	db *gorm.DB
}

func (r *DestinationRepository) GetAll(ctx context.Context) ([]db_models.Destination, error) {
	var dests []db_models.Destination
	// Catalog order is the stable tiebreak for every ranking downstream.
	err := r.db.WithContext(ctx).Order("catalog_order asc").Find(&dests).Error
	if err != nil {
		return nil, err
	}
	return dests, nil
}

func (r *DestinationRepository) List(ctx context.Context, page, pageSize int) ([]db_models.Destination, error) {
	var dests []db_models.Destination
	err := r.db.WithContext(ctx).Scopes(func(db *gorm.DB) *gorm.DB {
		offset := (page - 1) * pageSize
		return db.Order("catalog_order asc").Offset(offset).Limit(pageSize)
	}).Find(&dests).Error
	if err != nil {
		return nil, err
	}
	return dests, nil
}

func (r *DestinationRepository) GetByID(ctx context.Context, id string) (*db_models.Destination, error) {
	var dest db_models.Destination
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dest, nil
}

func (r *DestinationRepository) Upsert(ctx context.Context, dest *db_models.Destination) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.WithContext(ctx).Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "city"}, {Name: "country"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"catalog_order", "continent", "iata_code", "latitude", "longitude",
				"avg_budget_per_day", "flight_price", "population", "safety",
				"visa_easy", "english_level", "climate", "best_months", "crowds",
				"is_coastal", "beach", "culture", "nature", "food", "nightlife",
				"adventure", "romance", "family", "feature_vec", "updated_at",
			}),
		}).Create(dest).Error
	})
}

func (r *DestinationRepository) NearestByVector(ctx context.Context, vec pgvector.Vector, k int, excludeID string) ([]db_models.Destination, error) {
	var results []db_models.Destination

	query := `
        SELECT *
        FROM destinations
        WHERE deleted_at IS NULL AND id <> $2
        ORDER BY feature_vec <-> $1, catalog_order
        LIMIT $3
    `

	err := r.db.WithContext(ctx).Raw(query, vec.String(), excludeID, k).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *DestinationRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&db_models.Destination{}).Count(&n).Error
	return n, err
}
