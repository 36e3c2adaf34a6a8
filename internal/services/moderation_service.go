package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	dbm "nearby/internal/models/db_models"
	"nearby/internal/repositories"
	"nearby/pkg/utils"
)

type ModerationServiceInterface interface {
	ListDiscoveredEvents(ctx context.Context, status string, page, pageSize int) ([]dbm.DiscoveredEvent, error)
	ListCommunityEvents(ctx context.Context, status string, page, pageSize int) ([]dbm.CommunityEvent, error)
	ListSuggestions(ctx context.Context, status string, page, pageSize int) ([]dbm.CommunitySuggestion, error)

	ModerateDiscoveredEvent(ctx context.Context, id, moderatorID, status, notes string) error
	ModerateCommunityEvent(ctx context.Context, id, moderatorID, status, notes string) error
	ModerateSuggestion(ctx context.Context, id, moderatorID, status, notes string) error
}

// ModerationService applies operator decisions to the review queues. Any of
// the three statuses may be set from any other; there are no transition guards.
type ModerationService struct {
	eventRepo     repositories.EventRepository
	communityRepo repositories.CommunityRepository
	mailer        IMailService
	logger        *zap.Logger

	now   func() time.Time
	spawn func(func())
}

// NewModerationService accepts a nil mailer, which disables approval notices.
func NewModerationService(eventRepo repositories.EventRepository, communityRepo repositories.CommunityRepository,
	mailer IMailService, logger *zap.Logger) ModerationServiceInterface {
	return &ModerationService{
		eventRepo:     eventRepo,
		communityRepo: communityRepo,
		mailer:        mailer,
		logger:        logger,
		now:           time.Now,
		spawn:         func(f func()) { go f() },
	}
}

func parseStatus(raw string) (dbm.ModerationStatus, error) {
	status := dbm.ModerationStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !status.Valid() {
		return "", utils.ErrInvalidModerationStatus
	}
	return status, nil
}

// parseQueueStatus defaults to the pending queue.
func parseQueueStatus(raw string) (dbm.ModerationStatus, error) {
	if strings.TrimSpace(raw) == "" {
		return dbm.ModerationPending, nil
	}
	return parseStatus(raw)
}

func (m *ModerationService) ListDiscoveredEvents(ctx context.Context, status string, page, pageSize int) ([]dbm.DiscoveredEvent, error) {
	s, err := parseQueueStatus(status)
	if err != nil {
		return nil, err
	}
	events, err := m.eventRepo.ListDiscoveredByStatus(ctx, s, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return events, nil
}

func (m *ModerationService) ListCommunityEvents(ctx context.Context, status string, page, pageSize int) ([]dbm.CommunityEvent, error) {
	s, err := parseQueueStatus(status)
	if err != nil {
		return nil, err
	}
	events, err := m.eventRepo.ListCommunityByStatus(ctx, s, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return events, nil
}

func (m *ModerationService) ListSuggestions(ctx context.Context, status string, page, pageSize int) ([]dbm.CommunitySuggestion, error) {
	s, err := parseQueueStatus(status)
	if err != nil {
		return nil, err
	}
	suggestions, err := m.communityRepo.ListSuggestionsByStatus(ctx, s, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return suggestions, nil
}

func (m *ModerationService) buildUpdate(id, moderatorID, status, notes string) (uuid.UUID, repositories.ModerationUpdate, error) {
	s, err := parseStatus(status)
	if err != nil {
		return uuid.Nil, repositories.ModerationUpdate{}, err
	}
	rowID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, repositories.ModerationUpdate{}, utils.ErrInvalidInput
	}
	moderator, err := uuid.Parse(moderatorID)
	if err != nil {
		return uuid.Nil, repositories.ModerationUpdate{}, utils.ErrInvalidInput
	}
	return rowID, repositories.ModerationUpdate{
		Status:      s,
		Notes:       strings.TrimSpace(notes),
		ModeratedBy: moderator,
		ModeratedAt: m.now().UTC(),
	}, nil
}

func (m *ModerationService) ModerateDiscoveredEvent(ctx context.Context, id, moderatorID, status, notes string) error {
	rowID, update, err := m.buildUpdate(id, moderatorID, status, notes)
	if err != nil {
		return err
	}
	found, err := m.eventRepo.UpdateDiscoveredModeration(ctx, rowID, update)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if !found {
		return utils.ErrEventNotFound
	}
	m.logger.Info("discovered event moderated",
		zap.String("event_id", id), zap.String("status", string(update.Status)), zap.String("moderator", moderatorID))
	return nil
}

func (m *ModerationService) ModerateCommunityEvent(ctx context.Context, id, moderatorID, status, notes string) error {
	rowID, update, err := m.buildUpdate(id, moderatorID, status, notes)
	if err != nil {
		return err
	}
	found, err := m.eventRepo.UpdateCommunityModeration(ctx, rowID, update)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if !found {
		return utils.ErrEventNotFound
	}
	m.logger.Info("community event moderated",
		zap.String("event_id", id), zap.String("status", string(update.Status)), zap.String("moderator", moderatorID))
	return nil
}

func (m *ModerationService) ModerateSuggestion(ctx context.Context, id, moderatorID, status, notes string) error {
	rowID, update, err := m.buildUpdate(id, moderatorID, status, notes)
	if err != nil {
		return err
	}
	suggestion, err := m.communityRepo.GetSuggestionByID(ctx, rowID.String())
	if err != nil {
		return utils.ErrDatabaseError
	}
	if suggestion == nil {
		return utils.ErrSuggestionNotFound
	}

	found, err := m.communityRepo.UpdateSuggestionModeration(ctx, rowID, update)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if !found {
		return utils.ErrSuggestionNotFound
	}

	newlyApproved := update.Status == dbm.ModerationApproved && suggestion.ModerationStatus != dbm.ModerationApproved
	if newlyApproved && m.mailer != nil && suggestion.SubmitterEmail != "" {
		to, name, note := suggestion.SubmitterEmail, suggestion.Name, update.Notes
		m.spawn(func() {
			if err := m.mailer.SendSuggestionApproved(to, name, note); err != nil {
				m.logger.Warn("failed to send suggestion approval mail",
					zap.String("suggestion_id", id), zap.Error(err))
			}
		})
	}
	return nil
}
