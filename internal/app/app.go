package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/Nazarious-ucu/weather-lookup/docs"
	"github.com/Nazarious-ucu/weather-lookup/internal/config"
	"github.com/Nazarious-ucu/weather-lookup/internal/handlers/page"
	weatherHTTP "github.com/Nazarious-ucu/weather-lookup/internal/handlers/weather"
	"github.com/Nazarious-ucu/weather-lookup/internal/models"
	"github.com/Nazarious-ucu/weather-lookup/internal/services/logger"
	"github.com/Nazarious-ucu/weather-lookup/internal/services/lookup"
	metricsSvc "github.com/Nazarious-ucu/weather-lookup/internal/services/metrics"
	serviceWeather "github.com/Nazarious-ucu/weather-lookup/internal/services/weather"
	"github.com/Nazarious-ucu/weather-lookup/internal/view"
	fLogger "github.com/Nazarious-ucu/weather-lookup/pkg/logger"
)

type weatherFetcher interface {
	Fetch(ctx context.Context, q models.Query) (models.WeatherReport, error)
}

// ServiceContainer holds initialized dependencies for the HTTP server.
type ServiceContainer struct {
	Router     *gin.Engine
	Srv        *http.Server
	fileLogger *zap.Logger
}

// App ties together config, logger, and metrics for startup/shutdown.
type App struct {
	cfg config.Config
	l   zerolog.Logger
	m   *metricsSvc.Metrics
}

// New prepares a new App with given config, zerolog logger, and metrics.
func New(cfg config.Config, logger zerolog.Logger, met *metricsSvc.Metrics) *App {
	return &App{
		cfg: cfg,
		l:   logger,
		m:   met,
	}
}

// Start serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Start(ctx context.Context) error {
	srvContainer := a.Init()

	go func() {
		a.l.Info().
			Str("address", srvContainer.Srv.Addr).
			Msg("starting weather lookup HTTP server")
		if err := srvContainer.Srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.l.Error().
				Err(err).
				Msg("weather lookup server error")
		}
	}()

	<-ctx.Done()
	a.l.Info().Msg("shutdown signal received, stopping weather lookup service")

	if err := a.Shutdown(srvContainer); err != nil {
		a.l.Error().Err(err).Msg("failed to shutdown application")
		return err
	}
	a.l.Info().Msg("application shutdown successfully")
	return nil
}

// Shutdown stops the HTTP server and syncs the outbound request log.
func (a *App) Shutdown(srvContainer ServiceContainer) error {
	defer func(logger *zap.Logger) {
		if err := logger.Sync(); err != nil {
			a.l.Error().Err(err).Msg("failed to sync file logger")
		}
	}(srvContainer.fileLogger)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(a.cfg.Server.ReadTimeout)*time.Second)
	defer cancel()

	return srvContainer.Srv.Shutdown(shutdownCtx)
}

// Init builds services, middleware and routes without starting the server.
func (a *App) Init() ServiceContainer {
	a.l.Info().
		Str("address", a.cfg.ServerAddress()).
		Str("provider_url", a.cfg.OpenWeatherMap.URL).
		Bool("breaker_enabled", a.cfg.Breaker.Enabled).
		Msg("initializing weather lookup service")

	fileLogger, err := fLogger.NewFileLogger(a.cfg.HTTPLogsPath)
	if err != nil {
		a.l.Error().Err(err).Msg("failed to create file logger, outbound requests will not be logged")
		fileLogger = zap.NewNop()
	}

	// HTTP client logging
	httpLogClient := &http.Client{Transport: logger.NewRoundTripper(fileLogger)}

	var client weatherFetcher = serviceWeather.NewClientOpenWeatherMap(
		a.cfg.OpenWeatherMap.APIKey,
		a.cfg.OpenWeatherMap.URL,
		httpLogClient,
		a.l,
	)
	if a.cfg.Breaker.Enabled {
		client = serviceWeather.NewBreakerClient("OpenWeather", serviceWeather.BreakerConfig{
			TimeInterval: time.Duration(a.cfg.Breaker.TimeInterval) * time.Second,
			TimeTimeOut:  time.Duration(a.cfg.Breaker.TimeTimeOut) * time.Second,
			RepeatNumber: a.cfg.Breaker.RepeatNumber,
		}, client)
	}

	lookupHandler := lookup.NewHandler(client, a.cfg.RequestTimeout(), a.l, a.m)
	pageHandler := page.NewHandler(
		lookupHandler,
		view.NewSessions(a.cfg.SessionLifetime()),
		a.cfg.SessionLifetime(),
		a.l,
	)
	weatherHandler := weatherHTTP.NewHandler(client, a.cfg.RequestTimeout(), a.l)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(a.m.HTTPMiddleware())
	router.SetHTMLTemplate(page.Template())

	router.GET("/", pageHandler.Show)
	router.POST("/search", pageHandler.Search)
	router.GET("/weather", weatherHandler.GetWeather)
	router.GET("/metrics", gin.WrapH(a.m.Handler()))

	docs.SwaggerInfo.Host = a.cfg.ServerAddress()
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	httpServer := &http.Server{
		Addr:        a.cfg.ServerAddress(),
		Handler:     router,
		ReadTimeout: time.Duration(a.cfg.Server.ReadTimeout) * time.Second,
	}

	return ServiceContainer{
		Router:     router,
		Srv:        httpServer,
		fileLogger: fileLogger,
	}
}
