package controllers

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	dbm "nearby/internal/models/db_models"
	"nearby/internal/models/request_models"
	"nearby/internal/models/response_models"
	"nearby/internal/repositories"
	"nearby/internal/services"
	"nearby/pkg/geo"
)

type mockPlaceService struct{ mock.Mock }

func (m *mockPlaceService) ListPlaces(ctx context.Context, filter repositories.PlaceFilter, page, pageSize int) ([]response_models.Place, error) {
	args := m.Called(ctx, filter, page, pageSize)
	places, _ := args.Get(0).([]response_models.Place)
	return places, args.Error(1)
}

func (m *mockPlaceService) GetPlace(ctx context.Context, id string) (*response_models.Place, error) {
	args := m.Called(ctx, id)
	place, _ := args.Get(0).(*response_models.Place)
	return place, args.Error(1)
}

func (m *mockPlaceService) CreatePlace(ctx context.Context, req request_models.PlaceRequest) (uuid.UUID, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockPlaceService) UpdatePlace(ctx context.Context, id string, req request_models.PlaceRequest) error {
	return m.Called(ctx, id, req).Error(0)
}

func (m *mockPlaceService) DeletePlace(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockPlaceService) SetVisited(ctx context.Context, id string, visited bool) error {
	return m.Called(ctx, id, visited).Error(0)
}

func (m *mockPlaceService) ReindexPlace(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockCompanionService struct{ mock.Mock }

func (m *mockCompanionService) FindCompanions(ctx context.Context, placeID string, prefs services.CompanionPreferences) (*response_models.CompanionResult, error) {
	args := m.Called(ctx, placeID, prefs)
	res, _ := args.Get(0).(*response_models.CompanionResult)
	return res, args.Error(1)
}

func (m *mockCompanionService) ComputeAndStoreCompanions(ctx context.Context, placeID string) error {
	return m.Called(ctx, placeID).Error(0)
}

type mockSearchService struct{ mock.Mock }

func (m *mockSearchService) SearchPlaces(ctx context.Context, query string, limit int) ([]response_models.SearchHit, error) {
	args := m.Called(ctx, query, limit)
	hits, _ := args.Get(0).([]response_models.SearchHit)
	return hits, args.Error(1)
}

type mockWeatherService struct{ mock.Mock }

func (m *mockWeatherService) ResolveTimeOfDay(raw string) (services.TimeOfDay, error) {
	args := m.Called(raw)
	return args.Get(0).(services.TimeOfDay), args.Error(1)
}

func (m *mockWeatherService) GetRecommendations(ctx context.Context, weather services.WeatherConditions, tod services.TimeOfDay) ([]response_models.PlaceRecommendation, error) {
	args := m.Called(ctx, weather, tod)
	recs, _ := args.Get(0).([]response_models.PlaceRecommendation)
	return recs, args.Error(1)
}

func (m *mockWeatherService) GetJourneyRecommendations(ctx context.Context, weather services.WeatherConditions, tod services.TimeOfDay) ([]response_models.JourneyRecommendation, error) {
	args := m.Called(ctx, weather, tod)
	recs, _ := args.Get(0).([]response_models.JourneyRecommendation)
	return recs, args.Error(1)
}

type mockJourneyService struct{ mock.Mock }

func (m *mockJourneyService) ListJourneys(ctx context.Context, page, pageSize int) ([]response_models.JourneySummary, error) {
	args := m.Called(ctx, page, pageSize)
	out, _ := args.Get(0).([]response_models.JourneySummary)
	return out, args.Error(1)
}

func (m *mockJourneyService) GetJourneyDetail(ctx context.Context, id string) (*response_models.JourneyDetailResponse, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*response_models.JourneyDetailResponse)
	return out, args.Error(1)
}

func (m *mockJourneyService) CreateJourney(ctx context.Context, req request_models.JourneyRequest, optimize bool) (uuid.UUID, error) {
	args := m.Called(ctx, req, optimize)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockJourneyService) UpdateJourney(ctx context.Context, id string, req request_models.JourneyRequest, optimize bool) error {
	return m.Called(ctx, id, req, optimize).Error(0)
}

func (m *mockJourneyService) DeleteJourney(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockJourneyService) SaveJourney(ctx context.Context, accountID, journeyID string) error {
	return m.Called(ctx, accountID, journeyID).Error(0)
}

func (m *mockJourneyService) UnsaveJourney(ctx context.Context, accountID, journeyID string) error {
	return m.Called(ctx, accountID, journeyID).Error(0)
}

func (m *mockJourneyService) ListSavedJourneys(ctx context.Context, accountID string) ([]response_models.JourneySummary, error) {
	args := m.Called(ctx, accountID)
	out, _ := args.Get(0).([]response_models.JourneySummary)
	return out, args.Error(1)
}

type mockDistance struct{ mock.Mock }

func (m *mockDistance) CalculateDistance(ctx context.Context, from, to geo.LatLng) (services.DistanceResult, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(services.DistanceResult), args.Error(1)
}

type mockEventService struct{ mock.Mock }

func (m *mockEventService) ListEvents(ctx context.Context, filter repositories.EventFilter) ([]response_models.Event, error) {
	args := m.Called(ctx, filter)
	out, _ := args.Get(0).([]response_models.Event)
	return out, args.Error(1)
}

func (m *mockEventService) SubmitCommunityEvent(ctx context.Context, accountID string, req request_models.CommunityEventRequest) (uuid.UUID, error) {
	args := m.Called(ctx, accountID, req)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

type mockCommunityService struct{ mock.Mock }

func (m *mockCommunityService) ListComments(ctx context.Context, targetType, targetID string, page, pageSize int) ([]response_models.Comment, error) {
	args := m.Called(ctx, targetType, targetID, page, pageSize)
	out, _ := args.Get(0).([]response_models.Comment)
	return out, args.Error(1)
}

func (m *mockCommunityService) CreateComment(ctx context.Context, accountID string, req request_models.CommentRequest) (uuid.UUID, error) {
	args := m.Called(ctx, accountID, req)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockCommunityService) SetCommentHidden(ctx context.Context, id string, hidden bool) error {
	return m.Called(ctx, id, hidden).Error(0)
}

func (m *mockCommunityService) CreateSuggestion(ctx context.Context, accountID string, req request_models.SuggestionRequest) (uuid.UUID, error) {
	args := m.Called(ctx, accountID, req)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

type mockModerationService struct{ mock.Mock }

func (m *mockModerationService) ListDiscoveredEvents(ctx context.Context, status string, page, pageSize int) ([]dbm.DiscoveredEvent, error) {
	args := m.Called(ctx, status, page, pageSize)
	out, _ := args.Get(0).([]dbm.DiscoveredEvent)
	return out, args.Error(1)
}

func (m *mockModerationService) ListCommunityEvents(ctx context.Context, status string, page, pageSize int) ([]dbm.CommunityEvent, error) {
	args := m.Called(ctx, status, page, pageSize)
	out, _ := args.Get(0).([]dbm.CommunityEvent)
	return out, args.Error(1)
}

func (m *mockModerationService) ListSuggestions(ctx context.Context, status string, page, pageSize int) ([]dbm.CommunitySuggestion, error) {
	args := m.Called(ctx, status, page, pageSize)
	out, _ := args.Get(0).([]dbm.CommunitySuggestion)
	return out, args.Error(1)
}

func (m *mockModerationService) ModerateDiscoveredEvent(ctx context.Context, id, moderatorID, status, notes string) error {
	return m.Called(ctx, id, moderatorID, status, notes).Error(0)
}

func (m *mockModerationService) ModerateCommunityEvent(ctx context.Context, id, moderatorID, status, notes string) error {
	return m.Called(ctx, id, moderatorID, status, notes).Error(0)
}

func (m *mockModerationService) ModerateSuggestion(ctx context.Context, id, moderatorID, status, notes string) error {
	return m.Called(ctx, id, moderatorID, status, notes).Error(0)
}

type mockDashboardService struct{ mock.Mock }

func (m *mockDashboardService) GetDashboard(ctx context.Context) (*response_models.AdminDashboard, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).(*response_models.AdminDashboard)
	return out, args.Error(1)
}

type mockAccountService struct{ mock.Mock }

func (m *mockAccountService) Login(req request_models.LoginRequest, ctx context.Context) (*response_models.LoginResponse, error) {
	args := m.Called(req, ctx)
	out, _ := args.Get(0).(*response_models.LoginResponse)
	return out, args.Error(1)
}

func (m *mockAccountService) CreateAccount(req request_models.SignUpRequest, ctx context.Context) error {
	return m.Called(req, ctx).Error(0)
}
