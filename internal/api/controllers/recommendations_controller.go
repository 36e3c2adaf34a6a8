package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"nearby/internal/models/request_models"
	"nearby/internal/services"
	"nearby/pkg/utils"
)

type RecommendationsController struct {
	weatherService services.WeatherServiceInterface
}

func NewRecommendationsController(weatherService services.WeatherServiceInterface) *RecommendationsController {
	return &RecommendationsController{weatherService: weatherService}
}

func (r *RecommendationsController) bind(c *gin.Context) (services.WeatherConditions, services.TimeOfDay, bool) {
	var q request_models.WeatherQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid weather parameters: "+err.Error())
		return services.WeatherConditions{}, "", false
	}

	tod, err := r.weatherService.ResolveTimeOfDay(q.TimeOfDay)
	if err != nil {
		utils.HandleServiceError(c, err)
		return services.WeatherConditions{}, "", false
	}

	return services.WeatherConditions{
		Temperature: *q.Temperature,
		RainChance:  q.RainChance,
		Humidity:    q.Humidity,
	}, tod, true
}

// WeatherRecommendations godoc
// @Summary Places that suit the current weather
// @Tags Recommendations
// @Produce json
// @Param temp query number true "Temperature in Celsius"
// @Param rain_chance query number false "Chance of rain, 0-100"
// @Param humidity query number false "Relative humidity, 0-100"
// @Param time_of_day query string false "morning, afternoon, evening or night"
// @Success 200 {array} response_models.PlaceRecommendation
// @Router /api/recommendations/weather [get]
func (r *RecommendationsController) WeatherRecommendations(c *gin.Context) {
	weather, tod, ok := r.bind(c)
	if !ok {
		return
	}

	recs, err := r.weatherService.GetRecommendations(c.Request.Context(), weather, tod)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, recs, "Recommendations fetched successfully")
}

// JourneyRecommendations godoc
// @Summary Journeys that suit the current weather
// @Tags Recommendations
// @Produce json
// @Param temp query number true "Temperature in Celsius"
// @Success 200 {array} response_models.JourneyRecommendation
// @Router /api/recommendations/journeys [get]
func (r *RecommendationsController) JourneyRecommendations(c *gin.Context) {
	weather, tod, ok := r.bind(c)
	if !ok {
		return
	}

	recs, err := r.weatherService.GetJourneyRecommendations(c.Request.Context(), weather, tod)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, recs, "Recommendations fetched successfully")
}
