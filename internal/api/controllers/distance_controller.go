package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"nearby/internal/models/request_models"
	"nearby/internal/services"
	"nearby/pkg/geo"
	"nearby/pkg/utils"
)

type DistanceController struct {
	calculator services.DistanceCalculatorInterface
}

func NewDistanceController(calculator services.DistanceCalculatorInterface) *DistanceController {
	return &DistanceController{calculator: calculator}
}

// GetDistance godoc
// @Summary Walking distance between two points
// @Tags Distance
// @Produce json
// @Param from_lat query number true "Origin latitude"
// @Param from_lng query number true "Origin longitude"
// @Param to_lat query number true "Destination latitude"
// @Param to_lng query number true "Destination longitude"
// @Success 200 {object} services.DistanceResult
// @Router /api/distance [get]
func (d *DistanceController) GetDistance(c *gin.Context) {
	var q request_models.DistanceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "from_lat, from_lng, to_lat and to_lng are required")
		return
	}

	res, err := d.calculator.CalculateDistance(c.Request.Context(),
		geo.LatLng{Lat: *q.FromLat, Lng: *q.FromLng},
		geo.LatLng{Lat: *q.ToLat, Lng: *q.ToLng})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, res, "Distance calculated")
}
