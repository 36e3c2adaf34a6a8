package services

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"nearby/internal/models/db_models"
	"nearby/internal/models/response_models"
	"nearby/internal/repositories"
	"nearby/pkg/geo"
	"nearby/pkg/utils"
)

const (
	ActivityBefore = "before"
	ActivityAfter  = "after"

	CompanionSourceCache = "cache"
	CompanionSourceLive  = "live"

	maxCompanionDistanceMeters = 1000.0
	maxCompanionsPerSide       = 5
	baseCompatibility          = 0.5
	sharedMoodBonus            = 0.1
	preferredMoodBonus         = 0.1
)

var beforeCategories = map[string]bool{
	"cafe": true, "bakery": true, "park": true, "museum": true,
	"gallery": true, "bookstore": true, "market": true,
}

var afterCategories = map[string]bool{
	"bar": true, "dessert": true, "nightclub": true, "music_venue": true, "pub": true,
}

// anchors visited during the day push uncategorised companions to later
var daytimeAnchors = map[string]bool{
	"cafe": true, "bakery": true, "park": true, "museum": true, "gallery": true, "market": true,
}

// categoryAffinity[anchor][candidate] is added to the base score.
var categoryAffinity = map[string]map[string]float64{
	"restaurant":  {"bar": 0.3, "dessert": 0.3, "cafe": 0.2, "music_venue": 0.2, "park": 0.15, "pub": 0.2},
	"cafe":        {"bookstore": 0.3, "park": 0.25, "museum": 0.2, "gallery": 0.2, "restaurant": 0.15, "market": 0.15},
	"bar":         {"restaurant": 0.3, "music_venue": 0.25, "nightclub": 0.2},
	"pub":         {"restaurant": 0.25, "music_venue": 0.2},
	"park":        {"cafe": 0.25, "bakery": 0.2, "restaurant": 0.15, "museum": 0.1},
	"museum":      {"cafe": 0.2, "restaurant": 0.2, "gallery": 0.25},
	"gallery":     {"cafe": 0.2, "museum": 0.25, "bar": 0.15},
	"bookstore":   {"cafe": 0.3, "bakery": 0.2},
	"market":      {"restaurant": 0.2, "cafe": 0.15, "bakery": 0.15},
	"bakery":      {"park": 0.2, "cafe": 0.15, "market": 0.15},
	"dessert":     {"restaurant": 0.3, "park": 0.1},
	"music_venue": {"bar": 0.25, "restaurant": 0.2},
	"nightclub":   {"bar": 0.3},
}

var pairReasons = map[string]string{
	"restaurant|bar":         "Perfect for drinks after dinner",
	"restaurant|cafe":        "Grab a coffee before your meal",
	"restaurant|dessert":     "Save room for something sweet afterwards",
	"restaurant|park":        "Take a stroll to work up an appetite",
	"restaurant|music_venue": "Catch a live set after dinner",
	"cafe|bookstore":         "Pick up a book to read with your coffee",
	"cafe|park":              "Take a walk in the park before settling in",
	"cafe|museum":            "Explore the exhibits, then unwind with a coffee",
	"cafe|gallery":           "Browse the art before a coffee break",
	"cafe|restaurant":        "Stay for a meal after your coffee",
	"bar|restaurant":         "Have dinner before heading out for drinks",
	"bar|music_venue":        "Catch live music after a drink",
	"bar|nightclub":          "Keep the night going on the dance floor",
	"park|cafe":              "Warm up with a coffee before your walk",
	"park|bakery":            "Pick up pastries for a picnic",
	"museum|cafe":            "Grab a coffee before the galleries",
	"museum|restaurant":      "Refuel with a meal after the museum",
	"gallery|bar":            "Talk about the art over drinks afterwards",
	"gallery|museum":         "Make it a full culture afternoon",
	"bookstore|cafe":         "Find a cozy corner for your new book",
	"market|restaurant":      "See the produce, then taste it cooked",
	"dessert|restaurant":     "Start with dinner and end on something sweet",
}

var genericReasons = []func(candidate db_models.Place, distanceMeters, walkMinutes int) string{
	func(c db_models.Place, _, walk int) string {
		return fmt.Sprintf("Just a %d minute walk to %s", walk, c.Name)
	},
	func(c db_models.Place, d, _ int) string {
		return fmt.Sprintf("A favourite %s only %dm away", humanCategory(c.Category), d)
	},
	func(c db_models.Place, _, _ int) string {
		return fmt.Sprintf("%s pairs nicely with this spot", c.Name)
	},
	func(c db_models.Place, _, _ int) string {
		return fmt.Sprintf("Round out your outing at %s", c.Name)
	},
}

// CompanionPreferences are optional; zero values disable a filter.
type CompanionPreferences struct {
	TimeAvailable int
	Mood          string
	Budget        int
}

type CompanionServiceInterface interface {
	FindCompanions(ctx context.Context, placeID string, prefs CompanionPreferences) (*response_models.CompanionResult, error)
	ComputeAndStoreCompanions(ctx context.Context, placeID string) error
}

type CompanionService struct {
	placeRepo     repositories.PlaceRepository
	companionRepo repositories.CompanionRepository
	cacheTTL      time.Duration
	logger        *zap.Logger

	mu   sync.Mutex
	rand *rand.Rand

	now   func() time.Time
	spawn func(func())
}

func NewCompanionService(placeRepo repositories.PlaceRepository, companionRepo repositories.CompanionRepository,
	cacheTTL time.Duration, logger *zap.Logger) CompanionServiceInterface {
	return newCompanionService(placeRepo, companionRepo, cacheTTL, logger, rand.New(rand.NewSource(time.Now().UnixNano())))
}

func newCompanionService(placeRepo repositories.PlaceRepository, companionRepo repositories.CompanionRepository,
	cacheTTL time.Duration, logger *zap.Logger, rnd *rand.Rand) *CompanionService {
	return &CompanionService{
		placeRepo:     placeRepo,
		companionRepo: companionRepo,
		cacheTTL:      cacheTTL,
		logger:        logger,
		rand:          rnd,
		now:           time.Now,
		spawn:         func(f func()) { go f() },
	}
}

func (s *CompanionService) FindCompanions(ctx context.Context, placeID string, prefs CompanionPreferences) (*response_models.CompanionResult, error) {
	anchor, err := s.loadAnchor(ctx, placeID)
	if err != nil {
		return nil, err
	}

	rows, err := s.companionRepo.ListByPlace(ctx, anchor.ID)
	if err != nil {
		// the live path still answers when the cache table is unreadable
		s.logger.Warn("companion cache read failed", zap.String("place_id", placeID), zap.Error(err))
		rows = nil
	}

	if s.cacheUsable(rows) {
		suggestions := make([]response_models.CompanionSuggestion, 0, len(rows))
		for _, r := range rows {
			suggestions = append(suggestions, response_models.CompanionSuggestion{
				Place:              toPlaceResponse(r.CompanionPlace),
				ActivityType:       r.ActivityType,
				CompatibilityScore: r.CompatibilityScore,
				DistanceMeters:     r.DistanceMeters,
				TimeGapMinutes:     r.TimeGapMinutes,
				Reason:             r.Reason,
			})
		}
		result := splitCompanions(applyPreferences(suggestions, prefs))
		result.Source = CompanionSourceCache
		return result, nil
	}

	candidates, err := s.placeRepo.ListVisited(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	all := s.CalculateCompanions(*anchor, candidates)

	// the cache keeps every companion in range so filtered reads see the same pool
	s.spawn(func() {
		s.store(context.WithoutCancel(ctx), anchor.ID, all)
	})

	result := splitCompanions(applyPreferences(all, prefs))
	result.Source = CompanionSourceLive
	return result, nil
}

func (s *CompanionService) ComputeAndStoreCompanions(ctx context.Context, placeID string) error {
	anchor, err := s.loadAnchor(ctx, placeID)
	if err != nil {
		return err
	}
	candidates, err := s.placeRepo.ListVisited(ctx)
	if err != nil {
		return utils.ErrDatabaseError
	}
	s.store(ctx, anchor.ID, s.CalculateCompanions(*anchor, candidates))
	return nil
}

// CalculateCompanions scores every candidate within walking range of anchor.
// The result is sorted by score, best first, and is not truncated.
func (s *CompanionService) CalculateCompanions(anchor db_models.Place, candidates []db_models.Place) []response_models.CompanionSuggestion {
	from := geo.LatLng{Lat: anchor.Latitude, Lng: anchor.Longitude}
	out := make([]response_models.CompanionSuggestion, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == anchor.ID {
			continue
		}
		distance := geo.HaversineDistance(from, geo.LatLng{Lat: c.Latitude, Lng: c.Longitude})
		if distance > maxCompanionDistanceMeters {
			continue
		}
		meters := int(math.Round(distance))
		walk := geo.CalculateWalkingTime(distance)
		out = append(out, response_models.CompanionSuggestion{
			Place:              toPlaceResponse(c),
			ActivityType:       ClassifyActivity(anchor.Category, c.Category),
			CompatibilityScore: CalculateCompatibility(anchor.Category, c.Category, anchor.MoodTags, c.MoodTags),
			DistanceMeters:     meters,
			TimeGapMinutes:     walk,
			Reason:             s.reasonFor(anchor, c, meters, walk),
		})
	}
	sortByScore(out)
	return out
}

func (s *CompanionService) loadAnchor(ctx context.Context, placeID string) (*db_models.Place, error) {
	if _, err := uuid.Parse(placeID); err != nil {
		return nil, utils.ErrInvalidInput
	}
	anchor, err := s.placeRepo.GetByID(ctx, placeID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if anchor == nil {
		return nil, utils.ErrPlaceNotFound
	}
	return anchor, nil
}

// cacheUsable reports whether rows can answer a query without recomputing.
// Rows whose companion place has been deleted preload as the zero value and
// force a recompute.
func (s *CompanionService) cacheUsable(rows []db_models.CompanionActivity) bool {
	if len(rows) == 0 || s.isStale(rows) {
		return false
	}
	for _, r := range rows {
		if r.CompanionPlace.ID == uuid.Nil {
			return false
		}
	}
	return true
}

// isStale reports whether the oldest cached row has outlived the cache TTL.
func (s *CompanionService) isStale(rows []db_models.CompanionActivity) bool {
	if s.cacheTTL <= 0 {
		return false
	}
	cutoff := s.now().Add(-s.cacheTTL)
	for _, r := range rows {
		if r.ComputedAt.Before(cutoff) {
			return true
		}
	}
	return false
}

// store upserts the untruncated live result. Failures are logged, never retried.
func (s *CompanionService) store(ctx context.Context, placeID uuid.UUID, suggestions []response_models.CompanionSuggestion) {
	computedAt := s.now()
	rows := make([]db_models.CompanionActivity, 0, len(suggestions))
	for _, sug := range suggestions {
		companionID, err := uuid.Parse(sug.Place.ID)
		if err != nil {
			continue
		}
		rows = append(rows, db_models.CompanionActivity{
			PlaceID:            placeID,
			CompanionPlaceID:   companionID,
			ActivityType:       sug.ActivityType,
			CompatibilityScore: sug.CompatibilityScore,
			DistanceMeters:     sug.DistanceMeters,
			TimeGapMinutes:     sug.TimeGapMinutes,
			Reason:             sug.Reason,
			ComputedAt:         computedAt,
		})
	}
	if err := s.companionRepo.ReplaceForPlace(ctx, placeID, rows); err != nil {
		s.logger.Warn("failed to store companion activities",
			zap.String("place_id", placeID.String()), zap.Error(err))
	}
}

func (s *CompanionService) reasonFor(anchor, candidate db_models.Place, meters, walk int) string {
	if r, ok := pairReasons[anchor.Category+"|"+candidate.Category]; ok {
		return r
	}
	s.mu.Lock()
	i := s.rand.Intn(len(genericReasons))
	s.mu.Unlock()
	return genericReasons[i](candidate, meters, walk)
}

// ClassifyActivity places candidate before or after a visit to anchor.
func ClassifyActivity(anchorCategory, candidateCategory string) string {
	switch {
	case beforeCategories[candidateCategory]:
		return ActivityBefore
	case afterCategories[candidateCategory]:
		return ActivityAfter
	case daytimeAnchors[anchorCategory]:
		return ActivityAfter
	default:
		return ActivityBefore
	}
}

// CalculateCompatibility returns a score in [0,1]. Unknown categories only
// get the base score plus mood bonuses.
func CalculateCompatibility(anchorCategory, candidateCategory string, anchorMoods, candidateMoods []string) float64 {
	score := baseCompatibility + categoryAffinity[anchorCategory][candidateCategory]

	if len(anchorMoods) > 0 && len(candidateMoods) > 0 {
		moods := make(map[string]struct{}, len(anchorMoods))
		for _, m := range anchorMoods {
			moods[m] = struct{}{}
		}
		for _, m := range candidateMoods {
			if _, ok := moods[m]; ok {
				score += sharedMoodBonus
			}
		}
	}
	return clamp01(score)
}

func applyPreferences(in []response_models.CompanionSuggestion, prefs CompanionPreferences) []response_models.CompanionSuggestion {
	out := make([]response_models.CompanionSuggestion, 0, len(in))
	for _, sug := range in {
		if prefs.TimeAvailable > 0 && sug.TimeGapMinutes*2 > prefs.TimeAvailable {
			continue
		}
		if prefs.Budget > 0 && sug.Place.PriceLevel > prefs.Budget {
			continue
		}
		if prefs.Mood != "" && hasTag(sug.Place.MoodTags, prefs.Mood) {
			sug.CompatibilityScore = clamp01(sug.CompatibilityScore + preferredMoodBonus)
		}
		out = append(out, sug)
	}
	sortByScore(out)
	return out
}

func splitCompanions(sorted []response_models.CompanionSuggestion) *response_models.CompanionResult {
	result := &response_models.CompanionResult{
		Before: []response_models.CompanionSuggestion{},
		After:  []response_models.CompanionSuggestion{},
	}
	for _, sug := range sorted {
		switch sug.ActivityType {
		case ActivityBefore:
			if len(result.Before) < maxCompanionsPerSide {
				result.Before = append(result.Before, sug)
			}
		case ActivityAfter:
			if len(result.After) < maxCompanionsPerSide {
				result.After = append(result.After, sug)
			}
		}
	}
	return result
}

func sortByScore(s []response_models.CompanionSuggestion) {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].CompatibilityScore > s[j].CompatibilityScore
	})
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func humanCategory(c string) string {
	if c == "" {
		return "spot"
	}
	out := []rune(c)
	for i, r := range out {
		if r == '_' {
			out[i] = ' '
		}
	}
	return string(out)
}
