package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"nearby/internal/models/request_models"
	"nearby/internal/repositories"
	"nearby/internal/services"
	"nearby/pkg/utils"
)

type CommunityController struct {
	eventService     services.EventServiceInterface
	communityService services.CommunityServiceInterface
}

func NewCommunityController(eventService services.EventServiceInterface,
	communityService services.CommunityServiceInterface) *CommunityController {
	return &CommunityController{
		eventService:     eventService,
		communityService: communityService,
	}
}

// ListEvents godoc
// @Summary Approved events from discovery and the community
// @Tags Events
// @Produce json
// @Param from query string false "RFC3339 lower bound on start time"
// @Param to query string false "RFC3339 upper bound on start time"
// @Param category query string false "Category"
// @Success 200 {array} response_models.Event
// @Router /api/events [get]
func (cc *CommunityController) ListEvents(c *gin.Context) {
	var q request_models.EventQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid event filters")
		return
	}

	from, err := utils.ParseOptionalRFC3339(q.From)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "from must be an RFC3339 timestamp")
		return
	}
	to, err := utils.ParseOptionalRFC3339(q.To)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "to must be an RFC3339 timestamp")
		return
	}

	events, err := cc.eventService.ListEvents(c.Request.Context(), repositories.EventFilter{
		From:     from,
		To:       to,
		Category: q.Category,
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, events, "Events fetched successfully")
}

// SubmitEvent godoc
// @Summary Submit a community event for review
// @Tags Events
// @Accept json
// @Produce json
// @Param request body request_models.CommunityEventRequest true "Event"
// @Success 201 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/events [post]
func (cc *CommunityController) SubmitEvent(c *gin.Context) {
	var req request_models.CommunityEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	id, err := cc.eventService.SubmitCommunityEvent(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondWithStatus(c, http.StatusCreated, gin.H{"id": id}, "Event submitted for review")
}

func (cc *CommunityController) ListComments(c *gin.Context) {
	var q request_models.CommentQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "target_type and target_id are required")
		return
	}
	page, pageSize, err := utils.ParsePagination(c, 20)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	comments, err := cc.communityService.ListComments(c.Request.Context(), q.TargetType, q.TargetID, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, comments, "Comments fetched successfully")
}

func (cc *CommunityController) CreateComment(c *gin.Context) {
	var req request_models.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	id, err := cc.communityService.CreateComment(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondWithStatus(c, http.StatusCreated, gin.H{"id": id}, "Comment posted")
}

func (cc *CommunityController) HideComment(c *gin.Context) {
	var req request_models.HideCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "hidden is required")
		return
	}

	if err := cc.communityService.SetCommentHidden(c.Request.Context(), c.Param("id"), *req.Hidden); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Comment updated")
}

// CreateSuggestion godoc
// @Summary Suggest a place for the catalog
// @Tags Community
// @Accept json
// @Produce json
// @Param request body request_models.SuggestionRequest true "Suggestion"
// @Success 201 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/suggestions [post]
func (cc *CommunityController) CreateSuggestion(c *gin.Context) {
	var req request_models.SuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	id, err := cc.communityService.CreateSuggestion(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondWithStatus(c, http.StatusCreated, gin.H{"id": id}, "Suggestion received")
}
