package services

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"nearby/internal/models/db_models"
	"nearby/internal/models/request_models"
	"nearby/internal/models/response_models"
	"nearby/internal/repositories"
	"nearby/pkg/utils"
)

type EventServiceInterface interface {
	ListEvents(ctx context.Context, filter repositories.EventFilter) ([]response_models.Event, error)
	SubmitCommunityEvent(ctx context.Context, accountID string, req request_models.CommunityEventRequest) (uuid.UUID, error)
}

type EventService struct {
	eventRepo repositories.EventRepository
}

func NewEventService(eventRepo repositories.EventRepository) EventServiceInterface {
	return &EventService{eventRepo: eventRepo}
}

// ListEvents merges approved discovered and community events by start time.
func (e *EventService) ListEvents(ctx context.Context, filter repositories.EventFilter) ([]response_models.Event, error) {
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, utils.ErrInvalidInput
	}
	filter.Category = strings.ToLower(strings.TrimSpace(filter.Category))

	discovered, err := e.eventRepo.ListApprovedDiscovered(ctx, filter)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	community, err := e.eventRepo.ListApprovedCommunity(ctx, filter)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.Event, 0, len(discovered)+len(community))
	for _, ev := range discovered {
		out = append(out, response_models.Event{
			ID:          ev.ID.String(),
			Source:      response_models.EventSourceDiscovered,
			Title:       ev.Title,
			Description: ev.Description,
			Venue:       ev.Venue,
			StartsAt:    ev.StartsAt,
			EndsAt:      ev.EndsAt,
			Category:    ev.Category,
			Tags:        nonNilTags(ev.Tags),
			URL:         ev.SourceURL,
			Latitude:    ev.Latitude,
			Longitude:   ev.Longitude,
		})
	}
	for _, ev := range community {
		out = append(out, response_models.Event{
			ID:          ev.ID.String(),
			Source:      response_models.EventSourceCommunity,
			Title:       ev.Title,
			Description: ev.Description,
			Venue:       ev.Venue,
			StartsAt:    ev.StartsAt,
			EndsAt:      ev.EndsAt,
			Category:    ev.Category,
			Tags:        nonNilTags(ev.Tags),
			Latitude:    ev.Latitude,
			Longitude:   ev.Longitude,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

func (e *EventService) SubmitCommunityEvent(ctx context.Context, accountID string, req request_models.CommunityEventRequest) (uuid.UUID, error) {
	accountUUID, err := uuid.Parse(accountID)
	if err != nil {
		return uuid.Nil, utils.ErrInvalidInput
	}
	startsAt, err := utils.ParseOptionalRFC3339(req.StartsAt)
	if err != nil || startsAt == nil {
		return uuid.Nil, utils.ErrInvalidInput
	}
	endsAt, err := utils.ParseOptionalRFC3339(req.EndsAt)
	if err != nil {
		return uuid.Nil, utils.ErrInvalidInput
	}
	if endsAt != nil && endsAt.Before(*startsAt) {
		return uuid.Nil, utils.ErrInvalidInput
	}
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return uuid.Nil, utils.ErrInvalidInput
	}

	event := &db_models.CommunityEvent{
		AccountID:   accountUUID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Venue:       req.Venue,
		StartsAt:    startsAt.UTC(),
		EndsAt:      endsAt,
		Category:    strings.ToLower(strings.TrimSpace(req.Category)),
		Tags:        pq.StringArray(normalizeTags(req.Tags)),
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Moderation:  db_models.Moderation{ModerationStatus: db_models.ModerationPending},
	}
	if err := e.eventRepo.CreateCommunityEvent(ctx, event); err != nil {
		return uuid.Nil, utils.ErrDatabaseError
	}
	return event.ID, nil
}

func nonNilTags(tags pq.StringArray) []string {
	if tags == nil {
		return []string{}
	}
	return []string(tags)
}
