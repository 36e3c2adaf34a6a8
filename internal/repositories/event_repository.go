package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	dbm "nearby/internal/models/db_models"
)

type EventFilter struct {
	From     *time.Time
	To       *time.Time
	Category string
}

type EventRepository interface {
	ListApprovedDiscovered(ctx context.Context, filter EventFilter) ([]dbm.DiscoveredEvent, error)
	ListApprovedCommunity(ctx context.Context, filter EventFilter) ([]dbm.CommunityEvent, error)

	ListDiscoveredByStatus(ctx context.Context, status dbm.ModerationStatus, page, pageSize int) ([]dbm.DiscoveredEvent, error)
	ListCommunityByStatus(ctx context.Context, status dbm.ModerationStatus, page, pageSize int) ([]dbm.CommunityEvent, error)

	GetDiscoveredByID(ctx context.Context, id string) (*dbm.DiscoveredEvent, error)
	InsertDiscoveredIfNew(ctx context.Context, events []dbm.DiscoveredEvent) (int64, error)
	UpdateDiscoveredModeration(ctx context.Context, id uuid.UUID, u ModerationUpdate) (bool, error)

	CreateCommunityEvent(ctx context.Context, event *dbm.CommunityEvent) error
	UpdateCommunityModeration(ctx context.Context, id uuid.UUID, u ModerationUpdate) (bool, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func applyEventFilter(q *gorm.DB, filter EventFilter) *gorm.DB {
	if filter.From != nil {
		q = q.Where("starts_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("starts_at <= ?", *filter.To)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	return q
}

func (r *eventRepository) ListApprovedDiscovered(ctx context.Context, filter EventFilter) ([]dbm.DiscoveredEvent, error) {
	var events []dbm.DiscoveredEvent
	q := r.db.WithContext(ctx).Where("moderation_status = ?", dbm.ModerationApproved)
	err := applyEventFilter(q, filter).Order("starts_at ASC").Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) ListApprovedCommunity(ctx context.Context, filter EventFilter) ([]dbm.CommunityEvent, error) {
	var events []dbm.CommunityEvent
	q := r.db.WithContext(ctx).Where("moderation_status = ?", dbm.ModerationApproved)
	err := applyEventFilter(q, filter).Order("starts_at ASC").Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) ListDiscoveredByStatus(ctx context.Context, status dbm.ModerationStatus, page, pageSize int) ([]dbm.DiscoveredEvent, error) {
	var events []dbm.DiscoveredEvent
	err := r.db.WithContext(ctx).
		Where("moderation_status = ?", status).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) ListCommunityByStatus(ctx context.Context, status dbm.ModerationStatus, page, pageSize int) ([]dbm.CommunityEvent, error) {
	var events []dbm.CommunityEvent
	err := r.db.WithContext(ctx).
		Where("moderation_status = ?", status).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) GetDiscoveredByID(ctx context.Context, id string) (*dbm.DiscoveredEvent, error) {
	var event dbm.DiscoveredEvent
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

// InsertDiscoveredIfNew skips events whose source_url is already stored and
// returns the number of inserted rows.
func (r *eventRepository) InsertDiscoveredIfNew(ctx context.Context, events []dbm.DiscoveredEvent) (int64, error) {
	if len(events) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "source_url"}}, DoNothing: true}).
		Create(&events)
	return result.RowsAffected, result.Error
}

func (r *eventRepository) UpdateDiscoveredModeration(ctx context.Context, id uuid.UUID, u ModerationUpdate) (bool, error) {
	return updateModeration(ctx, r.db, &dbm.DiscoveredEvent{}, id, u)
}

func (r *eventRepository) CreateCommunityEvent(ctx context.Context, event *dbm.CommunityEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) UpdateCommunityModeration(ctx context.Context, id uuid.UUID, u ModerationUpdate) (bool, error) {
	return updateModeration(ctx, r.db, &dbm.CommunityEvent{}, id, u)
}
