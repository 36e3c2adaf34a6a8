package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"nearby/internal/models/db_models"
	"nearby/internal/models/response_models"
	"nearby/internal/repositories"
	"nearby/pkg/utils"
)

const (
	defaultSearchLimit  = 10
	minSearchSimilarity = 0.3
)

// EmbeddingIndexer keeps place_embeddings in sync with the place catalog.
type EmbeddingIndexer struct {
	client        utils.EmbeddingClientInterface
	embeddingRepo repositories.EmbeddingRepository
}

// NewEmbeddingIndexer returns nil when there is no embedding client.
func NewEmbeddingIndexer(client utils.EmbeddingClientInterface, embeddingRepo repositories.EmbeddingRepository) *EmbeddingIndexer {
	if client == nil {
		return nil
	}
	return &EmbeddingIndexer{client: client, embeddingRepo: embeddingRepo}
}

func (e *EmbeddingIndexer) Index(ctx context.Context, place db_models.Place) error {
	content := placeEmbeddingContent(place)
	vector, err := e.client.GetEmbedding(ctx, content)
	if err != nil {
		return fmt.Errorf("embed place %s: %w", place.ID, err)
	}
	return e.embeddingRepo.Upsert(ctx, &db_models.PlaceEmbedding{
		PlaceID:   place.ID,
		Content:   content,
		Embedding: vector,
	})
}

func (e *EmbeddingIndexer) Remove(ctx context.Context, placeID uuid.UUID) error {
	return e.embeddingRepo.Delete(ctx, placeID)
}

func placeEmbeddingContent(p db_models.Place) string {
	var b strings.Builder
	b.WriteString(p.Name)
	b.WriteString(". Category: ")
	b.WriteString(strings.ReplaceAll(p.Category, "_", " "))
	if len(p.MoodTags) > 0 {
		b.WriteString(". Mood: ")
		b.WriteString(strings.Join(p.MoodTags, ", "))
	}
	if p.Address != "" {
		b.WriteString(". Address: ")
		b.WriteString(p.Address)
	}
	if p.Description != "" {
		b.WriteString(". ")
		b.WriteString(p.Description)
	}
	return b.String()
}

type SearchServiceInterface interface {
	SearchPlaces(ctx context.Context, query string, limit int) ([]response_models.SearchHit, error)
}

type SearchService struct {
	client        utils.EmbeddingClientInterface
	embeddingRepo repositories.EmbeddingRepository
	placeRepo     repositories.PlaceRepository
	logger        *zap.Logger
}

func NewSearchService(client utils.EmbeddingClientInterface, embeddingRepo repositories.EmbeddingRepository,
	placeRepo repositories.PlaceRepository, logger *zap.Logger) SearchServiceInterface {
	return &SearchService{
		client:        client,
		embeddingRepo: embeddingRepo,
		placeRepo:     placeRepo,
		logger:        logger,
	}
}

func (s *SearchService) SearchPlaces(ctx context.Context, query string, limit int) ([]response_models.SearchHit, error) {
	if s.client == nil {
		return nil, utils.ErrEmbeddingUnavailable
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, utils.ErrInvalidInput
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	vector, err := s.client.GetEmbedding(ctx, query)
	if err != nil {
		s.logger.Warn("embedding provider failed", zap.Error(err))
		return nil, utils.ErrEmbeddingUnavailable
	}

	matches, err := s.embeddingRepo.NearestPlaces(ctx, vector, minSearchSimilarity, limit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if len(matches) == 0 {
		return []response_models.SearchHit{}, nil
	}

	ids := make([]uuid.UUID, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.PlaceID)
	}
	places, err := s.placeRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	byID := make(map[uuid.UUID]db_models.Place, len(places))
	for _, p := range places {
		byID[p.ID] = p
	}

	// keep similarity order; places deleted since indexing are skipped
	hits := make([]response_models.SearchHit, 0, len(matches))
	for _, m := range matches {
		p, ok := byID[m.PlaceID]
		if !ok {
			continue
		}
		hits = append(hits, response_models.SearchHit{Place: toPlaceResponse(p), Similarity: m.Similarity})
	}
	return hits, nil
}
