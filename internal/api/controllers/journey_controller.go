package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"nearby/internal/models/request_models"
	"nearby/internal/services"
	"nearby/pkg/utils"
)

type JourneyController struct {
	journeyService services.JourneyServiceInterface
}

func NewJourneyController(journeyService services.JourneyServiceInterface) *JourneyController {
	return &JourneyController{
		journeyService: journeyService,
	}
}

// ListJourneys godoc
// @Summary List published journeys
// @Tags Journeys
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {array} response_models.JourneySummary
// @Router /api/journeys [get]
func (j *JourneyController) ListJourneys(c *gin.Context) {
	page, pageSize, err := utils.ParsePagination(c, 10)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	journeys, err := j.journeyService.ListJourneys(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, journeys, "Journeys fetched successfully")
}

// GetJourneyDetail godoc
// @Summary Journey with its ordered stops and walking legs
// @Tags Journeys
// @Produce json
// @Param id path string true "Journey ID"
// @Success 200 {object} response_models.JourneyDetailResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/journeys/{id} [get]
func (j *JourneyController) GetJourneyDetail(c *gin.Context) {
	detail, err := j.journeyService.GetJourneyDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, detail, "Journey fetched successfully")
}

func optimizeFlag(c *gin.Context) (bool, bool) {
	raw := c.Query("optimize")
	if raw == "" {
		return false, true
	}
	optimize, err := strconv.ParseBool(raw)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "optimize must be true or false")
		return false, false
	}
	return optimize, true
}

// CreateJourney godoc
// @Summary Create a journey
// @Description With optimize=true the stops are reordered by nearest neighbour from the first stop
// @Tags Admin
// @Accept json
// @Produce json
// @Param optimize query bool false "Reorder stops"
// @Param request body request_models.JourneyRequest true "Journey"
// @Success 201 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/admin/journeys [post]
func (j *JourneyController) CreateJourney(c *gin.Context) {
	var req request_models.JourneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	optimize, ok := optimizeFlag(c)
	if !ok {
		return
	}

	id, err := j.journeyService.CreateJourney(c.Request.Context(), req, optimize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondWithStatus(c, http.StatusCreated, gin.H{"id": id}, "Journey created successfully")
}

func (j *JourneyController) UpdateJourney(c *gin.Context) {
	var req request_models.JourneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	optimize, ok := optimizeFlag(c)
	if !ok {
		return
	}

	if err := j.journeyService.UpdateJourney(c.Request.Context(), c.Param("id"), req, optimize); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Journey updated successfully")
}

func (j *JourneyController) DeleteJourney(c *gin.Context) {
	if err := j.journeyService.DeleteJourney(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Journey deleted successfully")
}

// SaveJourney godoc
// @Summary Bookmark a journey for the current account
// @Tags Journeys
// @Param id path string true "Journey ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/me/saved-journeys/{id} [post]
func (j *JourneyController) SaveJourney(c *gin.Context) {
	if err := j.journeyService.SaveJourney(c.Request.Context(), c.GetString("user_id"), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Journey saved")
}

func (j *JourneyController) UnsaveJourney(c *gin.Context) {
	if err := j.journeyService.UnsaveJourney(c.Request.Context(), c.GetString("user_id"), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Journey removed")
}

func (j *JourneyController) ListSavedJourneys(c *gin.Context) {
	journeys, err := j.journeyService.ListSavedJourneys(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, journeys, "Saved journeys fetched successfully")
}
