package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"nearby/internal/models/request_models"
	"nearby/internal/repositories"
	"nearby/internal/services"
	"nearby/pkg/utils"
)

type PlacesController struct {
	placeService     services.PlaceServiceInterface
	companionService services.CompanionServiceInterface
	searchService    services.SearchServiceInterface
}

func NewPlacesController(placeService services.PlaceServiceInterface,
	companionService services.CompanionServiceInterface,
	searchService services.SearchServiceInterface) *PlacesController {
	return &PlacesController{
		placeService:     placeService,
		companionService: companionService,
		searchService:    searchService,
	}
}

// ListPlaces godoc
// @Summary List places
// @Tags Places
// @Produce json
// @Param category query string false "Category"
// @Param visited query bool false "Only visited or unvisited places"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20) minimum(1) maximum(100)
// @Success 200 {array} response_models.Place
// @Router /api/places [get]
func (p *PlacesController) ListPlaces(c *gin.Context) {
	page, pageSize, err := utils.ParsePagination(c, 20)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	filter := repositories.PlaceFilter{Category: strings.ToLower(c.Query("category"))}
	if raw := c.Query("visited"); raw != "" {
		visited, err := strconv.ParseBool(raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "visited must be true or false")
			return
		}
		filter.Visited = &visited
	}

	places, err := p.placeService.ListPlaces(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, places, "Places fetched successfully")
}

// GetPlace godoc
// @Summary Get a place
// @Tags Places
// @Produce json
// @Param id path string true "Place ID"
// @Success 200 {object} response_models.Place
// @Failure 404 {object} utils.APIResponse
// @Router /api/places/{id} [get]
func (p *PlacesController) GetPlace(c *gin.Context) {
	place, err := p.placeService.GetPlace(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, place, "Place fetched successfully")
}

// GetCompanions godoc
// @Summary Before and after companions for a place
// @Description Visited places within walking range, split into things to do before and after
// @Tags Places
// @Produce json
// @Param id path string true "Place ID"
// @Param time_available query int false "Minutes available"
// @Param mood query string false "Preferred mood tag"
// @Param budget query int false "Maximum price level"
// @Success 200 {object} response_models.CompanionResult
// @Router /api/places/{id}/companions [get]
func (p *PlacesController) GetCompanions(c *gin.Context) {
	var q request_models.CompanionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid companion filters: "+err.Error())
		return
	}

	result, err := p.companionService.FindCompanions(c.Request.Context(), c.Param("id"), services.CompanionPreferences{
		TimeAvailable: q.TimeAvailable,
		Mood:          strings.ToLower(strings.TrimSpace(q.Mood)),
		Budget:        q.Budget,
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Companions fetched successfully")
}

// SearchPlaces godoc
// @Summary Semantic place search
// @Tags Places
// @Produce json
// @Param q query string true "Free text query"
// @Param limit query int false "Max results" default(10)
// @Success 200 {array} response_models.SearchHit
// @Failure 503 {object} utils.APIResponse
// @Router /api/places/search [get]
func (p *PlacesController) SearchPlaces(c *gin.Context) {
	var q request_models.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Query must be at least 2 characters")
		return
	}

	hits, err := p.searchService.SearchPlaces(c.Request.Context(), q.Query, q.Limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, hits, "Search completed")
}

// CreatePlace godoc
// @Summary Create a place
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request_models.PlaceRequest true "Place"
// @Success 201 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/admin/places [post]
func (p *PlacesController) CreatePlace(c *gin.Context) {
	var req request_models.PlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	id, err := p.placeService.CreatePlace(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondWithStatus(c, http.StatusCreated, gin.H{"id": id}, "Place created successfully")
}

func (p *PlacesController) UpdatePlace(c *gin.Context) {
	var req request_models.PlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	if err := p.placeService.UpdatePlace(c.Request.Context(), c.Param("id"), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Place updated successfully")
}

func (p *PlacesController) DeletePlace(c *gin.Context) {
	if err := p.placeService.DeletePlace(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Place deleted successfully")
}

func (p *PlacesController) SetVisited(c *gin.Context) {
	var req request_models.VisitedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "visited is required")
		return
	}

	if err := p.placeService.SetVisited(c.Request.Context(), c.Param("id"), *req.Visited); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Place updated successfully")
}

func (p *PlacesController) ReindexPlace(c *gin.Context) {
	if err := p.placeService.ReindexPlace(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Place reindexed")
}

// RecomputeCompanions refreshes the stored companions of one place.
func (p *PlacesController) RecomputeCompanions(c *gin.Context) {
	if err := p.companionService.ComputeAndStoreCompanions(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Companions recomputed")
}
