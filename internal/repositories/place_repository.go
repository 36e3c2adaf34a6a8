package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"nearby/internal/models/db_models"
)

type PlaceFilter struct {
	Category string
	Visited  *bool
}

type PlaceRepository interface {
	CreatePlace(ctx context.Context, place *db_models.Place) (uuid.UUID, error)
	UpdatePlace(ctx context.Context, place *db_models.Place) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetVisited(ctx context.Context, id uuid.UUID, visited bool) (bool, error)

	GetByID(ctx context.Context, id string) (*db_models.Place, error)
	List(ctx context.Context, filter PlaceFilter, page, pageSize int) ([]db_models.Place, error)
	ListAll(ctx context.Context) ([]db_models.Place, error)
	ListVisited(ctx context.Context) ([]db_models.Place, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]db_models.Place, error)
}

type placeRepository struct {
	db *gorm.DB
}

func NewPlaceRepository(db *gorm.DB) PlaceRepository {
	return &placeRepository{db: db}
}

func (r *placeRepository) CreatePlace(ctx context.Context, place *db_models.Place) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Create(place).Error; err != nil {
		return uuid.Nil, err
	}
	return place.ID, nil
}

func (r *placeRepository) UpdatePlace(ctx context.Context, place *db_models.Place) error {
	result := r.db.WithContext(ctx).Save(place)
	if result.Error != nil {
		return fmt.Errorf("failed to update place: %w", result.Error)
	}
	return nil
}

// Delete soft-deletes the place and drops every cached companion row that
// mentions it on either side.
func (r *placeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Unscoped().
			Where("place_id = ? OR companion_place_id = ?", id, id).
			Delete(&db_models.CompanionActivity{}).Error
		if err != nil {
			return err
		}
		err = tx.Delete(&db_models.Place{}, "id = ?", id).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return nil
	})
}

func (r *placeRepository) SetVisited(ctx context.Context, id uuid.UUID, visited bool) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&db_models.Place{}).
		Where("id = ?", id).
		Update("visited", visited)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ────────────────────────────────────────────────────────────────
// Read helpers: default value + nil error when no rows are found.
// ────────────────────────────────────────────────────────────────

func (r *placeRepository) GetByID(ctx context.Context, id string) (*db_models.Place, error) {
	var place db_models.Place
	err := r.db.WithContext(ctx).First(&place, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &place, nil
}

func (r *placeRepository) List(ctx context.Context, filter PlaceFilter, page, pageSize int) ([]db_models.Place, error) {
	var places []db_models.Place
	q := r.db.WithContext(ctx).Model(&db_models.Place{})
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Visited != nil {
		q = q.Where("visited = ?", *filter.Visited)
	}

	err := q.Order("rating DESC, name ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&places).Error
	if err != nil {
		return nil, err
	}
	return places, nil
}

func (r *placeRepository) ListAll(ctx context.Context) ([]db_models.Place, error) {
	var places []db_models.Place
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&places).Error; err != nil {
		return nil, err
	}
	return places, nil
}

func (r *placeRepository) ListVisited(ctx context.Context) ([]db_models.Place, error) {
	var places []db_models.Place
	err := r.db.WithContext(ctx).
		Where("visited = ?", true).
		Order("created_at ASC").
		Find(&places).Error
	if err != nil {
		return nil, err
	}
	return places, nil
}

func (r *placeRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]db_models.Place, error) {
	if len(ids) == 0 {
		return []db_models.Place{}, nil
	}
	var places []db_models.Place
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&places).Error; err != nil {
		return nil, err
	}
	return places, nil
}
