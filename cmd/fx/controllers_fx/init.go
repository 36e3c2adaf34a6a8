package controllers_fx

import (
	"go.uber.org/fx"
	"nearby/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewPlacesController),
	fx.Provide(controllers.NewRecommendationsController),
	fx.Provide(controllers.NewJourneyController),
	fx.Provide(controllers.NewDistanceController),
	fx.Provide(controllers.NewCommunityController),
	fx.Provide(controllers.NewAdminController))
