package services

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"nearby/internal/models/db_models"
	"nearby/internal/models/request_models"
	"nearby/internal/models/response_models"
	"nearby/internal/repositories"
	"nearby/pkg/geo"
	"nearby/pkg/utils"
)

// minutes budgeted at each stop when estimating a journey's duration
const defaultDwellMinutes = 30

type JourneyServiceInterface interface {
	ListJourneys(ctx context.Context, page, pageSize int) ([]response_models.JourneySummary, error)
	GetJourneyDetail(ctx context.Context, journeyID string) (*response_models.JourneyDetailResponse, error)
	CreateJourney(ctx context.Context, req request_models.JourneyRequest, optimize bool) (uuid.UUID, error)
	UpdateJourney(ctx context.Context, journeyID string, req request_models.JourneyRequest, optimize bool) error
	DeleteJourney(ctx context.Context, journeyID string) error

	SaveJourney(ctx context.Context, accountID, journeyID string) error
	UnsaveJourney(ctx context.Context, accountID, journeyID string) error
	ListSavedJourneys(ctx context.Context, accountID string) ([]response_models.JourneySummary, error)
}

type JourneyService struct {
	journeyRepo repositories.JourneyRepository
	placeRepo   repositories.PlaceRepository
	distance    DistanceCalculatorInterface
	logger      *zap.Logger
}

func NewJourneyService(journeyRepo repositories.JourneyRepository, placeRepo repositories.PlaceRepository,
	distance DistanceCalculatorInterface, logger *zap.Logger) JourneyServiceInterface {
	return &JourneyService{
		journeyRepo: journeyRepo,
		placeRepo:   placeRepo,
		distance:    distance,
		logger:      logger,
	}
}

func (j *JourneyService) ListJourneys(ctx context.Context, page, pageSize int) ([]response_models.JourneySummary, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	journeys, err := j.journeyRepo.ListPublished(ctx, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.JourneySummary, 0, len(journeys))
	for _, journey := range journeys {
		out = append(out, toJourneySummary(journey))
	}
	return out, nil
}

func (j *JourneyService) GetJourneyDetail(ctx context.Context, journeyID string) (*response_models.JourneyDetailResponse, error) {
	journey, err := j.findJourney(ctx, journeyID)
	if err != nil {
		return nil, err
	}

	detail := &response_models.JourneyDetailResponse{
		JourneySummary: toJourneySummary(*journey),
		Stops:          make([]response_models.JourneyStop, 0, len(journey.Stops)),
	}
	stops := make([]geo.Stop, 0, len(journey.Stops))
	for _, s := range journey.Stops {
		// a soft-deleted place preloads as the zero value
		if s.Place.ID == uuid.Nil {
			j.logger.Warn("journey stop references a missing place",
				zap.String("journey_id", journeyID), zap.String("place_id", s.PlaceID.String()))
			continue
		}
		detail.Stops = append(detail.Stops, response_models.JourneyStop{
			Position: s.Position,
			Notes:    s.Notes,
			Place:    toPlaceResponse(s.Place),
		})
		stops = append(stops, placeStop(s.Place))
	}

	// the drawn path stays cosmetic; leg figures come from the calculator
	connections := geo.CreatePlaceConnections(stops)
	for i := range connections {
		leg, err := j.distance.CalculateDistance(ctx, stops[i].Location, stops[i+1].Location)
		if err != nil {
			return nil, err
		}
		connections[i].DistanceMeters = leg.DistanceMeters
		connections[i].WalkingTimeMinutes = leg.WalkingTimeMinutes
	}
	if connections == nil {
		connections = []geo.Connection{}
	}
	detail.Connections = connections

	return detail, nil
}

func (j *JourneyService) CreateJourney(ctx context.Context, req request_models.JourneyRequest, optimize bool) (uuid.UUID, error) {
	journey, err := j.buildJourney(ctx, req, optimize)
	if err != nil {
		return uuid.Nil, err
	}

	id, err := j.journeyRepo.CreateJourney(ctx, journey)
	if err != nil {
		return uuid.Nil, utils.ErrDatabaseError
	}
	return id, nil
}

func (j *JourneyService) UpdateJourney(ctx context.Context, journeyID string, req request_models.JourneyRequest, optimize bool) error {
	existing, err := j.findJourney(ctx, journeyID)
	if err != nil {
		return err
	}

	journey, err := j.buildJourney(ctx, req, optimize)
	if err != nil {
		return err
	}
	journey.ID = existing.ID
	journey.CreatedAt = existing.CreatedAt

	if err := j.journeyRepo.ReplaceJourney(ctx, journey); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (j *JourneyService) DeleteJourney(ctx context.Context, journeyID string) error {
	journey, err := j.findJourney(ctx, journeyID)
	if err != nil {
		return err
	}
	if err := j.journeyRepo.Delete(ctx, journey.ID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (j *JourneyService) SaveJourney(ctx context.Context, accountID, journeyID string) error {
	accountUUID, err := uuid.Parse(accountID)
	if err != nil {
		return utils.ErrInvalidInput
	}
	journey, err := j.findJourney(ctx, journeyID)
	if err != nil {
		return err
	}
	if err := j.journeyRepo.SaveForAccount(ctx, accountUUID, journey.ID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (j *JourneyService) UnsaveJourney(ctx context.Context, accountID, journeyID string) error {
	accountUUID, err := uuid.Parse(accountID)
	if err != nil {
		return utils.ErrInvalidInput
	}
	journeyUUID, err := uuid.Parse(journeyID)
	if err != nil {
		return utils.ErrInvalidInput
	}
	if err := j.journeyRepo.UnsaveForAccount(ctx, accountUUID, journeyUUID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (j *JourneyService) ListSavedJourneys(ctx context.Context, accountID string) ([]response_models.JourneySummary, error) {
	accountUUID, err := uuid.Parse(accountID)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}
	journeys, err := j.journeyRepo.ListSavedByAccount(ctx, accountUUID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	out := make([]response_models.JourneySummary, 0, len(journeys))
	for _, journey := range journeys {
		out = append(out, toJourneySummary(journey))
	}
	return out, nil
}

func (j *JourneyService) findJourney(ctx context.Context, journeyID string) (*db_models.Journey, error) {
	if _, err := uuid.Parse(journeyID); err != nil {
		return nil, utils.ErrInvalidInput
	}
	journey, err := j.journeyRepo.GetDetailsOfJourneyById(ctx, journeyID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if journey == nil {
		return nil, utils.ErrJourneyNotFound
	}
	return journey, nil
}

// buildJourney resolves the requested stops, optionally reorders them and
// fills in the distance and duration totals.
func (j *JourneyService) buildJourney(ctx context.Context, req request_models.JourneyRequest, optimize bool) (*db_models.Journey, error) {
	if len(req.Stops) == 0 {
		return nil, utils.ErrInvalidInput
	}

	ids := make([]uuid.UUID, 0, len(req.Stops))
	for _, s := range req.Stops {
		id, err := uuid.Parse(s.PlaceID)
		if err != nil {
			return nil, utils.ErrInvalidInput
		}
		ids = append(ids, id)
	}

	places, err := j.placeRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	byID := make(map[uuid.UUID]db_models.Place, len(places))
	for _, p := range places {
		byID[p.ID] = p
	}

	// stops are keyed by request index so a place listed twice keeps both notes
	stops := make([]geo.Stop, 0, len(ids))
	for i, id := range ids {
		p, ok := byID[id]
		if !ok {
			return nil, utils.ErrPlaceNotFound
		}
		stop := placeStop(p)
		stop.ID = strconv.Itoa(i)
		stops = append(stops, stop)
	}

	if optimize {
		stops = geo.OptimizeJourneyOrder(stops)
	}

	journey := &db_models.Journey{
		Title:       req.Title,
		Description: req.Description,
		VibeTags:    pq.StringArray(normalizeTags(req.VibeTags)),
		Published:   req.Published,
		Stops:       make([]db_models.JourneyStop, 0, len(stops)),
	}

	totalMeters, walkMinutes := 0, 0
	for i, s := range stops {
		idx, _ := strconv.Atoi(s.ID)
		journey.Stops = append(journey.Stops, db_models.JourneyStop{
			PlaceID:  ids[idx],
			Position: i + 1,
			Notes:    req.Stops[idx].Notes,
		})
		if i == 0 {
			continue
		}
		leg, err := j.distance.CalculateDistance(ctx, stops[i-1].Location, s.Location)
		if err != nil {
			return nil, err
		}
		totalMeters += leg.DistanceMeters
		walkMinutes += leg.WalkingTimeMinutes
	}
	journey.TotalDistanceMeters = totalMeters
	journey.EstimatedMinutes = walkMinutes + defaultDwellMinutes*len(stops)

	return journey, nil
}

func placeStop(p db_models.Place) geo.Stop {
	return geo.Stop{
		ID:       p.ID.String(),
		Name:     p.Name,
		Location: geo.LatLng{Lat: p.Latitude, Lng: p.Longitude},
	}
}

func toJourneySummary(j db_models.Journey) response_models.JourneySummary {
	tags := []string(j.VibeTags)
	if tags == nil {
		tags = []string{}
	}
	return response_models.JourneySummary{
		ID:                  j.ID.String(),
		Title:               j.Title,
		Description:         j.Description,
		VibeTags:            tags,
		EstimatedMinutes:    j.EstimatedMinutes,
		TotalDistanceMeters: j.TotalDistanceMeters,
		Published:           j.Published,
	}
}
