package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"yatra/cmd/fx/config_fx"
	"yatra/cmd/fx/controllers_fx"
	"yatra/cmd/fx/db_fx"
	"yatra/cmd/fx/generation_fx"
	"yatra/cmd/fx/itinerary_fx"
	"yatra/cmd/fx/search_fx"
	"yatra/cmd/fx/suggestion_fx"
	"yatra/internal/api/controllers"
	"yatra/internal/config"
	"yatra/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		generation_fx.Module,
		search_fx.Module,
		itinerary_fx.Module,
		suggestion_fx.Module,
		controllers_fx.Module,

		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, log *zap.Logger) {
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
			log.Info("Starting HTTP server", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg *config.Config,
	log *zap.Logger,
	itineraryController *controllers.ItineraryController,
	suggestionController *controllers.SuggestionController,
	healthController *controllers.HealthController) *gin.Engine {

	if cfg.LogFormat == "json" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(log.Named("http")))
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowOrigins))

	RegisterRoutes(r, itineraryController, suggestionController, healthController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	itineraryController *controllers.ItineraryController,
	suggestionController *controllers.SuggestionController,
	healthController *controllers.HealthController) {

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	api.GET("/health", healthController.HealthHandler)

	api.POST("/itinerary", itineraryController.GenerateItineraryHandler)
	api.GET("/itinerary/:id", itineraryController.GetItineraryHandler)

	api.GET("/suggest-fashion", suggestionController.SuggestFashionHandler)
	api.GET("/suggest-hotels", suggestionController.SuggestHotelsHandler)
	api.GET("/suggest-flights", suggestionController.SuggestFlightsHandler)
	api.GET("/image-search", suggestionController.ImageSearchHandler)
}
