// @title           Registrar API
// @version         1.0
// @description     Checks domain availability and registers domains through Namecheap.

// @contact.name   API Support
// @contact.email  info@bentech.app

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/namecheap
// @schemes   http https
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/vit0-9/registrar_api/docs"
	"github.com/vit0-9/registrar_api/handlers"
	"github.com/vit0-9/registrar_api/pkg/config"
	"github.com/vit0-9/registrar_api/pkg/metrics"
	"github.com/vit0-9/registrar_api/pkg/registration"
)

// Larger request bodies are rejected with 413.
const maxBodyBytes = 100 << 10

// App encapsulates all the components of the application
type App struct {
	Router         *gin.Engine
	Config         *config.Config
	Metrics        *metrics.Metrics
	DomainHandlers *handlers.DomainHandlers
	HealthHandler  *handlers.HealthHandler

	logger *log.Logger
}

// NewApp wires the registrar, the registration service and the HTTP
// handlers into a router.
func NewApp(cfg *config.Config, registrar registration.Registrar, logger *log.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: nil config")
	}
	if registrar == nil {
		return nil, errors.New("app: nil registrar")
	}
	if logger == nil {
		logger = log.Default()
	}

	m := metrics.New()
	service := registration.NewService(m.InstrumentRegistrar(registrar))

	app := &App{
		Router:         gin.New(),
		Config:         cfg,
		Metrics:        m,
		DomainHandlers: handlers.NewDomainHandlers(service, logger),
		HealthHandler:  handlers.NewHealthHandler(config.Version),
		logger:         logger,
	}

	if err := app.setupMiddleware(); err != nil {
		return nil, err
	}
	app.setupRoutes()
	return app, nil
}

func (app *App) setupMiddleware() error {
	dev := app.Config.IsDevelopment()

	// cors.New panics on a bad origin.
	corsCfg := corsConfig(app.Config.CORSAllowOrigins)
	if err := corsCfg.Validate(); err != nil {
		return fmt.Errorf("app: cors: %w", err)
	}

	app.Router.Use(
		gin.LoggerWithWriter(app.logger.Writer()),
		gin.CustomRecoveryWithWriter(app.logger.Writer(), handlers.Recovery(dev)),
		cors.New(corsCfg),
		app.Metrics.GinMiddleware(),
		handlers.BodyLimit(maxBodyBytes),
		handlers.ErrorHandler(dev, app.logger),
	)
	return nil
}

// setupRoutes defines all the application routes
func (app *App) setupRoutes() {
	api := app.Router.Group(app.Config.BasePath)
	{
		api.POST("/check", app.DomainHandlers.CheckDomainsHandler)
		api.POST("/register", app.DomainHandlers.RegisterDomainHandler)
	}

	app.Router.GET("/health", app.HealthHandler.HealthCheckHandler)
	app.Router.GET("/metrics", gin.WrapH(app.Metrics.Handler()))

	docs.SwaggerInfo.BasePath = app.Config.BasePath
	app.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	app.Router.NoRoute(handlers.NotFoundHandler)
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}

// Start serves HTTP on addr until ctx is canceled, then drains in-flight
// requests for up to ten seconds.
func (app *App) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Registrations can take a while upstream.
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  90 * time.Second,
	}

	shutdownErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
			return
		}
		app.logger.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		shutdownErr <- srv.Shutdown(shutdownCtx)
	}()

	app.logger.Printf("API server starting on %s (base path %s)", addr, app.Config.BasePath)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-shutdownErr
}
