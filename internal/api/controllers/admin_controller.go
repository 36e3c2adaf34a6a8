package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"nearby/internal/models/request_models"
	"nearby/internal/services"
	"nearby/pkg/utils"
)

// AdminController serves the moderation queues and the dashboard.
type AdminController struct {
	moderationService services.ModerationServiceInterface
	dashboardService  services.DashboardServiceInterface
}

func NewAdminController(moderationService services.ModerationServiceInterface,
	dashboardService services.DashboardServiceInterface) *AdminController {
	return &AdminController{
		moderationService: moderationService,
		dashboardService:  dashboardService,
	}
}

// GetDashboard godoc
// @Summary Catalog and review queue counters
// @Tags Admin
// @Produce json
// @Success 200 {object} response_models.AdminDashboard
// @Security BearerAuth
// @Router /api/admin/dashboard [get]
func (a *AdminController) GetDashboard(c *gin.Context) {
	dashboard, err := a.dashboardService.GetDashboard(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, dashboard, "Dashboard fetched successfully")
}

type queueLister func(c *gin.Context, status string, page, pageSize int) (any, error)

func listQueue(c *gin.Context, list queueLister) {
	page, pageSize, err := utils.ParsePagination(c, 20)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	items, err := list(c, c.Query("status"), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, items, "Queue fetched successfully")
}

// ListDiscoveredEvents godoc
// @Summary Scraped events by moderation status
// @Tags Admin
// @Produce json
// @Param status query string false "pending, approved or rejected" default(pending)
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/admin/discovered-events [get]
func (a *AdminController) ListDiscoveredEvents(c *gin.Context) {
	listQueue(c, func(c *gin.Context, status string, page, pageSize int) (any, error) {
		return a.moderationService.ListDiscoveredEvents(c.Request.Context(), status, page, pageSize)
	})
}

func (a *AdminController) ListCommunityEvents(c *gin.Context) {
	listQueue(c, func(c *gin.Context, status string, page, pageSize int) (any, error) {
		return a.moderationService.ListCommunityEvents(c.Request.Context(), status, page, pageSize)
	})
}

func (a *AdminController) ListSuggestions(c *gin.Context) {
	listQueue(c, func(c *gin.Context, status string, page, pageSize int) (any, error) {
		return a.moderationService.ListSuggestions(c.Request.Context(), status, page, pageSize)
	})
}

type moderateFunc func(c *gin.Context, id, moderatorID, status, notes string) error

func (a *AdminController) moderate(c *gin.Context, apply moderateFunc) {
	var req request_models.ModerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "status is required")
		return
	}
	if err := apply(c, c.Param("id"), c.GetString("user_id"), req.Status, req.Notes); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Moderation recorded")
}

// ModerateDiscoveredEvent godoc
// @Summary Approve or reject a scraped event
// @Tags Admin
// @Accept json
// @Param id path string true "Event ID"
// @Param request body request_models.ModerationRequest true "Decision"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/admin/discovered-events/{id} [patch]
func (a *AdminController) ModerateDiscoveredEvent(c *gin.Context) {
	a.moderate(c, func(c *gin.Context, id, moderatorID, status, notes string) error {
		return a.moderationService.ModerateDiscoveredEvent(c.Request.Context(), id, moderatorID, status, notes)
	})
}

func (a *AdminController) ModerateCommunityEvent(c *gin.Context) {
	a.moderate(c, func(c *gin.Context, id, moderatorID, status, notes string) error {
		return a.moderationService.ModerateCommunityEvent(c.Request.Context(), id, moderatorID, status, notes)
	})
}

func (a *AdminController) ModerateSuggestion(c *gin.Context) {
	a.moderate(c, func(c *gin.Context, id, moderatorID, status, notes string) error {
		return a.moderationService.ModerateSuggestion(c.Request.Context(), id, moderatorID, status, notes)
	})
}
