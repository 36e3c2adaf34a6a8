package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	dbm "nearby/internal/models/db_models"
)

type CommunityRepository interface {
	CreateComment(ctx context.Context, comment *dbm.Comment) error
	ListVisibleComments(ctx context.Context, targetType string, targetID uuid.UUID, page, pageSize int) ([]dbm.Comment, error)
	SetCommentHidden(ctx context.Context, id uuid.UUID, hidden bool) (bool, error)

	CreateSuggestion(ctx context.Context, suggestion *dbm.CommunitySuggestion) error
	GetSuggestionByID(ctx context.Context, id string) (*dbm.CommunitySuggestion, error)
	ListSuggestionsByStatus(ctx context.Context, status dbm.ModerationStatus, page, pageSize int) ([]dbm.CommunitySuggestion, error)
	UpdateSuggestionModeration(ctx context.Context, id uuid.UUID, u ModerationUpdate) (bool, error)
}

type communityRepository struct {
	db *gorm.DB
}

func NewCommunityRepository(db *gorm.DB) CommunityRepository {
	return &communityRepository{db: db}
}

func (r *communityRepository) CreateComment(ctx context.Context, comment *dbm.Comment) error {
	return r.db.WithContext(ctx).Omit("Account").Create(comment).Error
}

func (r *communityRepository) ListVisibleComments(ctx context.Context, targetType string, targetID uuid.UUID, page, pageSize int) ([]dbm.Comment, error) {
	var comments []dbm.Comment
	err := r.db.WithContext(ctx).
		Preload("Account").
		Where("target_type = ? AND target_id = ? AND hidden = ?", targetType, targetID, false).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *communityRepository) SetCommentHidden(ctx context.Context, id uuid.UUID, hidden bool) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&dbm.Comment{}).
		Where("id = ?", id).
		Update("hidden", hidden)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *communityRepository) CreateSuggestion(ctx context.Context, suggestion *dbm.CommunitySuggestion) error {
	return r.db.WithContext(ctx).Create(suggestion).Error
}

func (r *communityRepository) GetSuggestionByID(ctx context.Context, id string) (*dbm.CommunitySuggestion, error) {
	var suggestion dbm.CommunitySuggestion
	if err := r.db.WithContext(ctx).First(&suggestion, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &suggestion, nil
}

func (r *communityRepository) ListSuggestionsByStatus(ctx context.Context, status dbm.ModerationStatus, page, pageSize int) ([]dbm.CommunitySuggestion, error) {
	var suggestions []dbm.CommunitySuggestion
	err := r.db.WithContext(ctx).
		Where("moderation_status = ?", status).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&suggestions).Error
	if err != nil {
		return nil, err
	}
	return suggestions, nil
}

func (r *communityRepository) UpdateSuggestionModeration(ctx context.Context, id uuid.UUID, u ModerationUpdate) (bool, error) {
	return updateModeration(ctx, r.db, &dbm.CommunitySuggestion{}, id, u)
}
