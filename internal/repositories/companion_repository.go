package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"nearby/internal/models/db_models"
)

type CompanionRepository interface {
	ListByPlace(ctx context.Context, placeID uuid.UUID) ([]db_models.CompanionActivity, error)
	ReplaceForPlace(ctx context.Context, placeID uuid.UUID, rows []db_models.CompanionActivity) error
}

type companionRepository struct {
	db *gorm.DB
}

func NewCompanionRepository(db *gorm.DB) CompanionRepository {
	return &companionRepository{db: db}
}

func (r *companionRepository) ListByPlace(ctx context.Context, placeID uuid.UUID) ([]db_models.CompanionActivity, error) {
	var rows []db_models.CompanionActivity
	err := r.db.WithContext(ctx).
		Preload("CompanionPlace").
		Where("place_id = ?", placeID).
		Order("compatibility_score DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ReplaceForPlace swaps the cached rows of a place for the given ones. The
// insert is an upsert so two concurrent recomputations do not collide.
func (r *companionRepository) ReplaceForPlace(ctx context.Context, placeID uuid.UUID, rows []db_models.CompanionActivity) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("place_id = ?", placeID).Delete(&db_models.CompanionActivity{}).Error; err != nil {
			return err
		}

		if len(rows) == 0 {
			return nil
		}

		return tx.Omit("CompanionPlace").Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "place_id"}, {Name: "companion_place_id"}, {Name: "activity_type"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"compatibility_score", "distance_meters", "time_gap_minutes", "reason", "computed_at", "updated_at",
			}),
		}).Create(&rows).Error
	})
}
