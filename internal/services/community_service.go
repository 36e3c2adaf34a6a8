package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"nearby/internal/models/db_models"
	"nearby/internal/models/request_models"
	"nearby/internal/models/response_models"
	"nearby/internal/repositories"
	"nearby/pkg/utils"
)

type CommunityServiceInterface interface {
	ListComments(ctx context.Context, targetType, targetID string, page, pageSize int) ([]response_models.Comment, error)
	CreateComment(ctx context.Context, accountID string, req request_models.CommentRequest) (uuid.UUID, error)
	SetCommentHidden(ctx context.Context, commentID string, hidden bool) error

	CreateSuggestion(ctx context.Context, accountID string, req request_models.SuggestionRequest) (uuid.UUID, error)
}

type CommunityService struct {
	communityRepo repositories.CommunityRepository
	accountRepo   repositories.AccountRepository
}

func NewCommunityService(communityRepo repositories.CommunityRepository, accountRepo repositories.AccountRepository) CommunityServiceInterface {
	return &CommunityService{
		communityRepo: communityRepo,
		accountRepo:   accountRepo,
	}
}

func (c *CommunityService) ListComments(ctx context.Context, targetType, targetID string, page, pageSize int) ([]response_models.Comment, error) {
	target, err := uuid.Parse(targetID)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}
	comments, err := c.communityRepo.ListVisibleComments(ctx, targetType, target, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.Comment, 0, len(comments))
	for _, cm := range comments {
		out = append(out, response_models.Comment{
			ID:         cm.ID.String(),
			AuthorName: cm.Account.Name,
			Body:       cm.Body,
			CreatedAt:  utils.FormatUnixRFC3339(cm.CreatedAt),
		})
	}
	return out, nil
}

func (c *CommunityService) CreateComment(ctx context.Context, accountID string, req request_models.CommentRequest) (uuid.UUID, error) {
	accountUUID, err := uuid.Parse(accountID)
	if err != nil {
		return uuid.Nil, utils.ErrInvalidInput
	}
	target, err := uuid.Parse(req.TargetID)
	if err != nil {
		return uuid.Nil, utils.ErrInvalidInput
	}
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return uuid.Nil, utils.ErrInvalidInput
	}

	comment := &db_models.Comment{
		AccountID:  accountUUID,
		TargetType: req.TargetType,
		TargetID:   target,
		Body:       body,
	}
	if err := c.communityRepo.CreateComment(ctx, comment); err != nil {
		return uuid.Nil, utils.ErrDatabaseError
	}
	return comment.ID, nil
}

func (c *CommunityService) SetCommentHidden(ctx context.Context, commentID string, hidden bool) error {
	id, err := uuid.Parse(commentID)
	if err != nil {
		return utils.ErrInvalidInput
	}
	found, err := c.communityRepo.SetCommentHidden(ctx, id, hidden)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if !found {
		return utils.ErrCommentNotFound
	}
	return nil
}

// CreateSuggestion queues a place suggestion. Without an explicit address the
// account's own e-mail is used for the approval notice.
func (c *CommunityService) CreateSuggestion(ctx context.Context, accountID string, req request_models.SuggestionRequest) (uuid.UUID, error) {
	accountUUID, err := uuid.Parse(accountID)
	if err != nil {
		return uuid.Nil, utils.ErrInvalidInput
	}
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return uuid.Nil, utils.ErrInvalidInput
	}

	email := req.Email
	if email == "" {
		account, err := c.accountRepo.FindById(ctx, accountID)
		if err != nil {
			return uuid.Nil, utils.ErrDatabaseError
		}
		if account == nil {
			return uuid.Nil, utils.ErrAccountNotFound
		}
		email = account.Email
	}

	suggestion := &db_models.CommunitySuggestion{
		AccountID:      accountUUID,
		Name:           strings.TrimSpace(req.Name),
		Category:       normalizeCategory(req.Category),
		Address:        req.Address,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Reason:         req.Reason,
		SubmitterEmail: email,
		Moderation:     db_models.Moderation{ModerationStatus: db_models.ModerationPending},
	}
	if err := c.communityRepo.CreateSuggestion(ctx, suggestion); err != nil {
		return uuid.Nil, utils.ErrDatabaseError
	}
	return suggestion.ID, nil
}
