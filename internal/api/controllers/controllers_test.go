package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"nearby/internal/models/request_models"
	"nearby/internal/models/response_models"
	"nearby/internal/repositories"
	"nearby/internal/services"
	"nearby/pkg/geo"
	"nearby/pkg/utils"
)

const testUserID = "6f1c2a8e-6a43-4c55-9d55-3f1f3b0b9d10"

type envelope struct {
	Status  string          `json:"status"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", testUserID)
		c.Next()
	})
	return r
}

func do(t *testing.T, r *gin.Engine, method, target string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	return rr, env
}

func TestPlacesController_ListPlacesFilters(t *testing.T) {
	svc := new(mockPlaceService)
	ctrl := NewPlacesController(svc, new(mockCompanionService), new(mockSearchService))
	r := newRouter()
	r.GET("/places", ctrl.ListPlaces)

	svc.On("ListPlaces", mock.Anything, mock.MatchedBy(func(f repositories.PlaceFilter) bool {
		return f.Category == "cafe" && f.Visited != nil && *f.Visited
	}), 2, 5).Return([]response_models.Place{{ID: "p1", Name: "Bean"}}, nil).Once()

	rr, env := do(t, r, http.MethodGet, "/places?category=Cafe&visited=true&page=2&pageSize=5", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var places []response_models.Place
	require.NoError(t, json.Unmarshal(env.Data, &places))
	require.Len(t, places, 1)
	assert.Equal(t, "Bean", places[0].Name)
	svc.AssertExpectations(t)

	rr, _ = do(t, r, http.MethodGet, "/places?visited=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr, _ = do(t, r, http.MethodGet, "/places?pageSize=500", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPlacesController_GetPlaceNotFound(t *testing.T) {
	svc := new(mockPlaceService)
	ctrl := NewPlacesController(svc, new(mockCompanionService), new(mockSearchService))
	r := newRouter()
	r.GET("/places/:id", ctrl.GetPlace)

	svc.On("GetPlace", mock.Anything, "missing").Return(nil, utils.ErrPlaceNotFound)

	rr, env := do(t, r, http.MethodGet, "/places/missing", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, "Place not found", env.Message)
}

func TestPlacesController_CompanionPreferences(t *testing.T) {
	companions := new(mockCompanionService)
	ctrl := NewPlacesController(new(mockPlaceService), companions, new(mockSearchService))
	r := newRouter()
	r.GET("/places/:id/companions", ctrl.GetCompanions)

	want := services.CompanionPreferences{TimeAvailable: 90, Mood: "romantic", Budget: 2}
	companions.On("FindCompanions", mock.Anything, "p1", want).Return(&response_models.CompanionResult{
		Before: []response_models.CompanionSuggestion{},
		After:  []response_models.CompanionSuggestion{{ActivityType: services.ActivityAfter, Reason: "Perfect for drinks after dinner"}},
		Source: services.CompanionSourceLive,
	}, nil).Once()

	rr, env := do(t, r, http.MethodGet, "/places/p1/companions?time_available=90&mood=Romantic&budget=2", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var res response_models.CompanionResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Empty(t, res.Before)
	require.Len(t, res.After, 1)
	assert.Equal(t, services.CompanionSourceLive, res.Source)
	companions.AssertExpectations(t)

	rr, _ = do(t, r, http.MethodGet, "/places/p1/companions?budget=9", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPlacesController_Search(t *testing.T) {
	search := new(mockSearchService)
	ctrl := NewPlacesController(new(mockPlaceService), new(mockCompanionService), search)
	r := newRouter()
	r.GET("/search", ctrl.SearchPlaces)

	search.On("SearchPlaces", mock.Anything, "quiet coffee", 0).Return(nil, utils.ErrEmbeddingUnavailable).Once()

	rr, _ := do(t, r, http.MethodGet, "/search?q=quiet+coffee", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	rr, _ = do(t, r, http.MethodGet, "/search?q=a", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	search.AssertExpectations(t)
}

func TestPlacesController_AdminWrites(t *testing.T) {
	svc := new(mockPlaceService)
	companions := new(mockCompanionService)
	ctrl := NewPlacesController(svc, companions, new(mockSearchService))
	r := newRouter()
	r.POST("/places", ctrl.CreatePlace)
	r.PATCH("/places/:id/visited", ctrl.SetVisited)
	r.POST("/places/:id/companions", ctrl.RecomputeCompanions)

	id := uuid.New()
	svc.On("CreatePlace", mock.Anything, mock.MatchedBy(func(req request_models.PlaceRequest) bool {
		return req.Name == "Bean" && req.Category == "cafe"
	})).Return(id, nil).Once()
	svc.On("SetVisited", mock.Anything, "p1", false).Return(nil).Once()
	companions.On("ComputeAndStoreCompanions", mock.Anything, "p1").Return(nil).Once()

	rr, env := do(t, r, http.MethodPost, "/places", gin.H{"name": "Bean", "category": "cafe", "latitude": 40.7, "longitude": -73.9})
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, string(env.Data), id.String())

	rr, _ = do(t, r, http.MethodPost, "/places", gin.H{"name": "Nowhere", "category": "cafe", "latitude": 140.0, "longitude": 0.5})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr, _ = do(t, r, http.MethodPatch, "/places/p1/visited", gin.H{"visited": false})
	assert.Equal(t, http.StatusOK, rr.Code)

	rr, _ = do(t, r, http.MethodPatch, "/places/p1/visited", gin.H{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr, _ = do(t, r, http.MethodPost, "/places/p1/companions", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	svc.AssertExpectations(t)
	companions.AssertExpectations(t)
}

func TestRecommendationsController(t *testing.T) {
	weather := new(mockWeatherService)
	ctrl := NewRecommendationsController(weather)
	r := newRouter()
	r.GET("/weather", ctrl.WeatherRecommendations)
	r.GET("/journeys", ctrl.JourneyRecommendations)

	conditions := services.WeatherConditions{Temperature: 33, RainChance: 10, Humidity: 80}
	weather.On("ResolveTimeOfDay", "").Return(services.Afternoon, nil)
	weather.On("GetRecommendations", mock.Anything, conditions, services.Afternoon).
		Return([]response_models.PlaceRecommendation{{Score: 0.9, Reasons: []string{"Air-conditioned escape from the heat"}}}, nil).Once()
	weather.On("GetJourneyRecommendations", mock.Anything, conditions, services.Afternoon).
		Return([]response_models.JourneyRecommendation{}, nil).Once()

	rr, env := do(t, r, http.MethodGet, "/weather?temp=33&rain_chance=10&humidity=80", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var recs []response_models.PlaceRecommendation
	require.NoError(t, json.Unmarshal(env.Data, &recs))
	require.Len(t, recs, 1)
	assert.InDelta(t, 0.9, recs[0].Score, 1e-9)

	rr, _ = do(t, r, http.MethodGet, "/journeys?temp=33&rain_chance=10&humidity=80", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr, _ = do(t, r, http.MethodGet, "/weather?rain_chance=10", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr, _ = do(t, r, http.MethodGet, "/weather?temp=20&time_of_day=teatime", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	weather.AssertExpectations(t)
}

func TestJourneyController_OptimizeFlag(t *testing.T) {
	svc := new(mockJourneyService)
	ctrl := NewJourneyController(svc)
	r := newRouter()
	r.POST("/journeys", ctrl.CreateJourney)
	r.PUT("/journeys/:id", ctrl.UpdateJourney)

	body := gin.H{
		"title": "Evening stroll",
		"stops": []gin.H{{"place_id": uuid.NewString()}, {"place_id": uuid.NewString()}},
	}
	id := uuid.New()
	svc.On("CreateJourney", mock.Anything, mock.AnythingOfType("request_models.JourneyRequest"), true).Return(id, nil).Once()
	svc.On("UpdateJourney", mock.Anything, "j1", mock.AnythingOfType("request_models.JourneyRequest"), false).
		Return(utils.ErrJourneyNotFound).Once()

	rr, _ := do(t, r, http.MethodPost, "/journeys?optimize=true", body)
	assert.Equal(t, http.StatusCreated, rr.Code)

	rr, _ = do(t, r, http.MethodPut, "/journeys/j1", body)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr, _ = do(t, r, http.MethodPost, "/journeys?optimize=sometimes", body)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr, _ = do(t, r, http.MethodPost, "/journeys", gin.H{"title": "Empty", "stops": []gin.H{}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	svc.AssertExpectations(t)
}

func TestJourneyController_SavedUsesCaller(t *testing.T) {
	svc := new(mockJourneyService)
	ctrl := NewJourneyController(svc)
	r := newRouter()
	r.POST("/me/saved-journeys/:id", ctrl.SaveJourney)
	r.GET("/me/saved-journeys", ctrl.ListSavedJourneys)

	svc.On("SaveJourney", mock.Anything, testUserID, "j1").Return(nil).Once()
	svc.On("ListSavedJourneys", mock.Anything, testUserID).
		Return([]response_models.JourneySummary{{ID: "j1", Title: "Evening stroll"}}, nil).Once()

	rr, _ := do(t, r, http.MethodPost, "/me/saved-journeys/j1", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr, env := do(t, r, http.MethodGet, "/me/saved-journeys", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, string(env.Data), "Evening stroll")
	svc.AssertExpectations(t)
}

func TestDistanceController(t *testing.T) {
	calc := new(mockDistance)
	ctrl := NewDistanceController(calc)
	r := newRouter()
	r.GET("/distance", ctrl.GetDistance)

	from := geo.LatLng{Lat: 40.7, Lng: -73.9}
	to := geo.LatLng{Lat: 40.71, Lng: -73.9}
	calc.On("CalculateDistance", mock.Anything, from, to).
		Return(services.DistanceResult{DistanceMeters: 1112, WalkingTimeMinutes: 14, Source: "estimate"}, nil).Once()

	rr, env := do(t, r, http.MethodGet, "/distance?from_lat=40.7&from_lng=-73.9&to_lat=40.71&to_lng=-73.9", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var res services.DistanceResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, 1112, res.DistanceMeters)

	rr, _ = do(t, r, http.MethodGet, "/distance?from_lat=40.7", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	calc.AssertExpectations(t)
}

func TestCommunityController_Events(t *testing.T) {
	events := new(mockEventService)
	ctrl := NewCommunityController(events, new(mockCommunityService))
	r := newRouter()
	r.GET("/events", ctrl.ListEvents)
	r.POST("/events", ctrl.SubmitEvent)

	events.On("ListEvents", mock.Anything, mock.MatchedBy(func(f repositories.EventFilter) bool {
		return f.From != nil && f.To == nil && f.Category == "music"
	})).Return([]response_models.Event{{ID: "e1", Source: response_models.EventSourceCommunity}}, nil).Once()

	rr, _ := do(t, r, http.MethodGet, "/events?from=2026-05-01T00:00:00Z&category=music", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr, _ = do(t, r, http.MethodGet, "/events?from=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	id := uuid.New()
	events.On("SubmitCommunityEvent", mock.Anything, testUserID, mock.AnythingOfType("request_models.CommunityEventRequest")).
		Return(id, nil).Once()
	rr, _ = do(t, r, http.MethodPost, "/events", gin.H{
		"title": "Open mic", "venue": "Corner Bar", "starts_at": "2026-05-02T20:00:00Z",
	})
	assert.Equal(t, http.StatusCreated, rr.Code)

	rr, _ = do(t, r, http.MethodPost, "/events", gin.H{"title": "No venue"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	events.AssertExpectations(t)
}

func TestCommunityController_Comments(t *testing.T) {
	community := new(mockCommunityService)
	ctrl := NewCommunityController(new(mockEventService), community)
	r := newRouter()
	r.GET("/comments", ctrl.ListComments)
	r.POST("/comments", ctrl.CreateComment)
	r.PATCH("/comments/:id", ctrl.HideComment)

	target := uuid.NewString()
	community.On("ListComments", mock.Anything, "place", target, 1, 20).
		Return([]response_models.Comment{{ID: "c1", Body: "Lovely"}}, nil).Once()
	community.On("CreateComment", mock.Anything, testUserID, mock.AnythingOfType("request_models.CommentRequest")).
		Return(uuid.New(), nil).Once()
	community.On("SetCommentHidden", mock.Anything, "c1", true).Return(utils.ErrCommentNotFound).Once()

	rr, _ := do(t, r, http.MethodGet, "/comments?target_type=place&target_id="+target, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr, _ = do(t, r, http.MethodGet, "/comments?target_type=planet&target_id="+target, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr, _ = do(t, r, http.MethodPost, "/comments", gin.H{"target_type": "journey", "target_id": target, "body": "Great walk"})
	assert.Equal(t, http.StatusCreated, rr.Code)

	rr, _ = do(t, r, http.MethodPatch, "/comments/c1", gin.H{"hidden": true})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	community.AssertExpectations(t)
}

func TestAdminController_Moderation(t *testing.T) {
	moderation := new(mockModerationService)
	dashboard := new(mockDashboardService)
	ctrl := NewAdminController(moderation, dashboard)
	r := newRouter()
	r.GET("/suggestions", ctrl.ListSuggestions)
	r.PATCH("/suggestions/:id", ctrl.ModerateSuggestion)
	r.GET("/dashboard", ctrl.GetDashboard)

	moderation.On("ListSuggestions", mock.Anything, "", 1, 20).Return(nil, nil).Once()
	moderation.On("ModerateSuggestion", mock.Anything, "s1", testUserID, "approved", "welcome aboard").Return(nil).Once()
	moderation.On("ModerateSuggestion", mock.Anything, "s1", testUserID, "maybe", "").Return(utils.ErrInvalidModerationStatus).Once()
	dashboard.On("GetDashboard", mock.Anything).Return(&response_models.AdminDashboard{Places: 12, PendingSuggestions: 2}, nil).Once()

	rr, _ := do(t, r, http.MethodGet, "/suggestions", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr, _ = do(t, r, http.MethodPatch, "/suggestions/s1", gin.H{"status": "approved", "notes": "welcome aboard"})
	assert.Equal(t, http.StatusOK, rr.Code)

	rr, env := do(t, r, http.MethodPatch, "/suggestions/s1", gin.H{"status": "maybe"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, env.Message, "pending, approved, rejected")

	rr, env = do(t, r, http.MethodGet, "/dashboard", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	var dash response_models.AdminDashboard
	require.NoError(t, json.Unmarshal(env.Data, &dash))
	assert.EqualValues(t, 12, dash.Places)

	moderation.AssertExpectations(t)
	dashboard.AssertExpectations(t)
}

func TestAccountController(t *testing.T) {
	svc := new(mockAccountService)
	ctrl := NewAccountController(svc)
	r := newRouter()
	r.POST("/login", ctrl.Login)
	r.POST("/signup", ctrl.SignUp)

	svc.On("Login", request_models.LoginRequest{Email: "a@b.co", Password: "secret123"}, mock.Anything).
		Return(&response_models.LoginResponse{Token: "tok", Role: "user"}, nil).Once()
	svc.On("Login", request_models.LoginRequest{Email: "a@b.co", Password: "wrong"}, mock.Anything).
		Return(nil, utils.ErrInvalidCredentials).Once()
	svc.On("CreateAccount", mock.AnythingOfType("request_models.SignUpRequest"), mock.Anything).
		Return(utils.ErrEmailAlreadyExists).Once()

	rr, env := do(t, r, http.MethodPost, "/login", gin.H{"email": "a@b.co", "password": "secret123"})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, string(env.Data), "tok")

	rr, _ = do(t, r, http.MethodPost, "/login", gin.H{"email": "a@b.co", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr, _ = do(t, r, http.MethodPost, "/signup", gin.H{"name": "Ada", "email": "a@b.co", "password": "longenough"})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr, _ = do(t, r, http.MethodPost, "/signup", gin.H{"name": "Ada", "email": "a@b.co", "password": "short"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertExpectations(t)
}
