package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	dbm "nearby/internal/models/db_models"
)

type ModerationUpdate struct {
	Status      dbm.ModerationStatus
	Notes       string
	ModeratedBy uuid.UUID
	ModeratedAt time.Time
}

// updateModeration writes the moderation columns of one row of model's table.
// It reports whether a row matched.
func updateModeration(ctx context.Context, db *gorm.DB, model interface{}, id uuid.UUID, u ModerationUpdate) (bool, error) {
	result := db.WithContext(ctx).
		Model(model).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"moderation_status": u.Status,
			"moderation_notes":  u.Notes,
			"moderated_by":      u.ModeratedBy,
			"moderated_at":      u.ModeratedAt,
			"updated_at":        time.Now().Unix(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
