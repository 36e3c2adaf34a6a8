package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"nearby/cmd/fx/account_fx"
	"nearby/cmd/fx/community_fx"
	"nearby/cmd/fx/config_fx"
	"nearby/cmd/fx/controllers_fx"
	"nearby/cmd/fx/dashboard_fx"
	"nearby/cmd/fx/db_fx"
	"nearby/cmd/fx/distance_matrix_fx"
	"nearby/cmd/fx/embedding_fx"
	"nearby/cmd/fx/event_fx"
	"nearby/cmd/fx/journey_fx"
	"nearby/cmd/fx/mail_fx"
	"nearby/cmd/fx/memcache_fx"
	"nearby/cmd/fx/place_fx"
	"nearby/internal/api/controllers"
	"nearby/internal/config"
	"nearby/pkg/middleware"
	"nearby/pkg/utils"
)

func main() {
	app := fx.New(
		config_fx.Module,
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
		db_fx.Module,
		memcache_fx.Module,
		distance_matrix_fx.Module,
		mail_fx.Module,
		embedding_fx.Module,
		account_fx.Module,
		place_fx.Module,
		journey_fx.Module,
		community_fx.Module,
		event_fx.Module,
		dashboard_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

type routeHandlers struct {
	fx.In

	Account         *controllers.AccountController
	Places          *controllers.PlacesController
	Recommendations *controllers.RecommendationsController
	Journeys        *controllers.JourneyController
	Distance        *controllers.DistanceController
	Community       *controllers.CommunityController
	Admin           *controllers.AdminController
}

func ProvideRouter(cfg *config.Config, logger *zap.Logger, issuer *utils.TokenIssuer, h routeHandlers) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(logger))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, issuer, h)

	return r
}

func RegisterRoutes(r *gin.Engine, issuer *utils.TokenIssuer, h routeHandlers) {
	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/signup", h.Account.SignUp)
	auth.POST("/login", h.Account.Login)

	places := api.Group("/places")
	places.GET("", h.Places.ListPlaces)
	places.GET("/search", h.Places.SearchPlaces)
	places.GET("/:id", h.Places.GetPlace)
	places.GET("/:id/companions", h.Places.GetCompanions)

	recs := api.Group("/recommendations")
	recs.GET("/weather", h.Recommendations.WeatherRecommendations)
	recs.GET("/journeys", h.Recommendations.JourneyRecommendations)

	journeys := api.Group("/journeys")
	journeys.GET("", h.Journeys.ListJourneys)
	journeys.GET("/:id", h.Journeys.GetJourneyDetail)

	api.GET("/distance", h.Distance.GetDistance)
	api.GET("/events", h.Community.ListEvents)
	api.GET("/comments", h.Community.ListComments)

	user := api.Group("", middleware.JWTAuthMiddleware(issuer))
	user.GET("/me/saved-journeys", h.Journeys.ListSavedJourneys)
	user.POST("/me/saved-journeys/:id", h.Journeys.SaveJourney)
	user.DELETE("/me/saved-journeys/:id", h.Journeys.UnsaveJourney)
	user.POST("/events", h.Community.SubmitEvent)
	user.POST("/comments", h.Community.CreateComment)
	user.POST("/suggestions", h.Community.CreateSuggestion)

	admin := api.Group("/admin", middleware.JWTAuthMiddleware(issuer), middleware.RoleMiddleware(middleware.RoleAdmin))
	admin.GET("/dashboard", h.Admin.GetDashboard)

	admin.POST("/places", h.Places.CreatePlace)
	admin.PUT("/places/:id", h.Places.UpdatePlace)
	admin.DELETE("/places/:id", h.Places.DeletePlace)
	admin.PATCH("/places/:id/visited", h.Places.SetVisited)
	admin.POST("/places/:id/reindex", h.Places.ReindexPlace)
	admin.POST("/places/:id/companions", h.Places.RecomputeCompanions)

	admin.POST("/journeys", h.Journeys.CreateJourney)
	admin.PUT("/journeys/:id", h.Journeys.UpdateJourney)
	admin.DELETE("/journeys/:id", h.Journeys.DeleteJourney)

	admin.GET("/discovered-events", h.Admin.ListDiscoveredEvents)
	admin.PATCH("/discovered-events/:id", h.Admin.ModerateDiscoveredEvent)
	admin.GET("/community-events", h.Admin.ListCommunityEvents)
	admin.PATCH("/community-events/:id", h.Admin.ModerateCommunityEvent)
	admin.GET("/suggestions", h.Admin.ListSuggestions)
	admin.PATCH("/suggestions/:id", h.Admin.ModerateSuggestion)
	admin.PATCH("/comments/:id", h.Community.HideComment)
}
