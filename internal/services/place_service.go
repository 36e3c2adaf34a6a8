package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"nearby/internal/models/db_models"
	"nearby/internal/models/request_models"
	"nearby/internal/models/response_models"
	"nearby/internal/repositories"
	"nearby/pkg/utils"
)

type PlaceServiceInterface interface {
	ListPlaces(ctx context.Context, filter repositories.PlaceFilter, page, pageSize int) ([]response_models.Place, error)
	GetPlace(ctx context.Context, id string) (*response_models.Place, error)
	CreatePlace(ctx context.Context, req request_models.PlaceRequest) (uuid.UUID, error)
	UpdatePlace(ctx context.Context, id string, req request_models.PlaceRequest) error
	DeletePlace(ctx context.Context, id string) error
	SetVisited(ctx context.Context, id string, visited bool) error
	ReindexPlace(ctx context.Context, id string) error
}

type PlaceService struct {
	placeRepo repositories.PlaceRepository
	indexer   *EmbeddingIndexer
	logger    *zap.Logger
}

// NewPlaceService accepts a nil indexer when no embedding provider is configured.
func NewPlaceService(placeRepo repositories.PlaceRepository, indexer *EmbeddingIndexer, logger *zap.Logger) PlaceServiceInterface {
	return &PlaceService{
		placeRepo: placeRepo,
		indexer:   indexer,
		logger:    logger,
	}
}

func (p *PlaceService) ListPlaces(ctx context.Context, filter repositories.PlaceFilter, page, pageSize int) ([]response_models.Place, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	places, err := p.placeRepo.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.Place, 0, len(places))
	for _, place := range places {
		out = append(out, toPlaceResponse(place))
	}
	return out, nil
}

func (p *PlaceService) GetPlace(ctx context.Context, id string) (*response_models.Place, error) {
	place, err := p.findPlace(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toPlaceResponse(*place)
	return &resp, nil
}

func (p *PlaceService) CreatePlace(ctx context.Context, req request_models.PlaceRequest) (uuid.UUID, error) {
	place := db_models.Place{}
	applyPlaceRequest(&place, req)

	id, err := p.placeRepo.CreatePlace(ctx, &place)
	if err != nil {
		return uuid.Nil, utils.ErrDatabaseError
	}
	place.ID = id
	p.reindex(ctx, place)
	return id, nil
}

func (p *PlaceService) UpdatePlace(ctx context.Context, id string, req request_models.PlaceRequest) error {
	place, err := p.findPlace(ctx, id)
	if err != nil {
		return err
	}
	applyPlaceRequest(place, req)

	if err := p.placeRepo.UpdatePlace(ctx, place); err != nil {
		return utils.ErrDatabaseError
	}
	p.reindex(ctx, *place)
	return nil
}

func (p *PlaceService) DeletePlace(ctx context.Context, id string) error {
	place, err := p.findPlace(ctx, id)
	if err != nil {
		return err
	}
	if err := p.placeRepo.Delete(ctx, place.ID); err != nil {
		return utils.ErrDatabaseError
	}
	if p.indexer != nil {
		if err := p.indexer.Remove(ctx, place.ID); err != nil {
			p.logger.Warn("failed to remove place embedding", zap.String("place_id", id), zap.Error(err))
		}
	}
	return nil
}

func (p *PlaceService) SetVisited(ctx context.Context, id string, visited bool) error {
	placeID, err := uuid.Parse(id)
	if err != nil {
		return utils.ErrInvalidInput
	}
	found, err := p.placeRepo.SetVisited(ctx, placeID, visited)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if !found {
		return utils.ErrPlaceNotFound
	}
	return nil
}

func (p *PlaceService) ReindexPlace(ctx context.Context, id string) error {
	if p.indexer == nil {
		return utils.ErrEmbeddingUnavailable
	}
	place, err := p.findPlace(ctx, id)
	if err != nil {
		return err
	}
	return p.indexer.Index(ctx, *place)
}

func (p *PlaceService) findPlace(ctx context.Context, id string) (*db_models.Place, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, utils.ErrInvalidInput
	}
	place, err := p.placeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if place == nil {
		return nil, utils.ErrPlaceNotFound
	}
	return place, nil
}

// reindex is best effort; a failed embedding never fails the write.
func (p *PlaceService) reindex(ctx context.Context, place db_models.Place) {
	if p.indexer == nil {
		return
	}
	if err := p.indexer.Index(ctx, place); err != nil {
		p.logger.Warn("failed to index place embedding", zap.String("place_id", place.ID.String()), zap.Error(err))
	}
}

func applyPlaceRequest(place *db_models.Place, req request_models.PlaceRequest) {
	place.Name = strings.TrimSpace(req.Name)
	place.Category = normalizeCategory(req.Category)
	place.Latitude = req.Latitude
	place.Longitude = req.Longitude
	place.Rating = req.Rating
	place.PriceLevel = req.PriceLevel
	place.Visited = req.Visited
	place.Address = req.Address
	place.Description = req.Description
	place.ImageURL = req.ImageURL
	place.MoodTags = pq.StringArray(normalizeTags(req.MoodTags))
	place.HasAC = req.HasAC
	place.HasOutdoorSeating = req.HasOutdoorSeating
	place.IsIndoor = req.IsIndoor
	place.HasWifi = req.HasWifi
}

func normalizeCategory(c string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(c)), " ", "_")
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func toPlaceResponse(p db_models.Place) response_models.Place {
	tags := []string(p.MoodTags)
	if tags == nil {
		tags = []string{}
	}
	return response_models.Place{
		ID:                p.ID.String(),
		Name:              p.Name,
		Category:          p.Category,
		Latitude:          p.Latitude,
		Longitude:         p.Longitude,
		Rating:            p.Rating,
		PriceLevel:        p.PriceLevel,
		Visited:           p.Visited,
		Address:           p.Address,
		Description:       p.Description,
		ImageURL:          p.ImageURL,
		MoodTags:          tags,
		HasAC:             p.HasAC,
		HasOutdoorSeating: p.HasOutdoorSeating,
		IsIndoor:          p.IsIndoor,
		HasWifi:           p.HasWifi,
	}
}
