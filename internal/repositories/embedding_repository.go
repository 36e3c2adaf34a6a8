package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"nearby/internal/models/db_models"
)

type PlaceMatch struct {
	PlaceID    uuid.UUID `gorm:"column:place_id"`
	Similarity float64   `gorm:"column:similarity"`
}

type EmbeddingRepository interface {
	Upsert(ctx context.Context, row *db_models.PlaceEmbedding) error
	Delete(ctx context.Context, placeID uuid.UUID) error
	NearestPlaces(ctx context.Context, vector pgvector.Vector, minSimilarity float64, limit int) ([]PlaceMatch, error)
}

type embeddingRepository struct {
	db *gorm.DB
}

func NewEmbeddingRepository(db *gorm.DB) EmbeddingRepository {
	return &embeddingRepository{db: db}
}

func (r *embeddingRepository) Upsert(ctx context.Context, row *db_models.PlaceEmbedding) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "place_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"content", "embedding", "updated_at"}),
	}).Create(row).Error
}

func (r *embeddingRepository) Delete(ctx context.Context, placeID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("place_id = ?", placeID).Delete(&db_models.PlaceEmbedding{}).Error
}

func (r *embeddingRepository) NearestPlaces(ctx context.Context, vector pgvector.Vector, minSimilarity float64, limit int) ([]PlaceMatch, error) {
	var results []PlaceMatch

	query := `
        SELECT place_id, (1 - (embedding <=> ?)) AS similarity
        FROM place_embeddings
        WHERE (1 - (embedding <=> ?)) > ?
        ORDER BY embedding <=> ?
        LIMIT ?
    `

	err := r.db.WithContext(ctx).Raw(query, vector, vector, minSimilarity, vector, limit).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
