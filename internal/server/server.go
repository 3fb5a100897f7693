package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/alchemorsel-recettes/backend/config"
	"github.com/pageza/alchemorsel-recettes/backend/internal/api"
	"github.com/pageza/alchemorsel-recettes/backend/internal/middleware"
	"github.com/pageza/alchemorsel-recettes/backend/internal/service"
)

// Dependencies are the collaborators the HTTP server routes to
type Dependencies struct {
	DB      *gorm.DB
	Redis   *redis.Client
	Recipes service.IRecipeService
	Metrics *service.Metrics
}

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	logger *zap.Logger
}

// New creates a new server instance
func New(cfg *config.Config, deps Dependencies, log *zap.Logger) (*Server, error) {
	if cfg.Environment.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := api.RegisterValidators(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(
		middleware.ErrorHandler(log),
		middleware.RequestLogger(log),
		middleware.CORS(cfg.CORSOrigin),
	)

	api.NewHealthHandler(deps.DB, deps.Redis).RegisterRoutes(router)
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	api.NewRecipeHandler(deps.Recipes, log).RegisterRoutes(router.Group("/api"))

	return &Server{
		router: router,
		logger: log,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Handler returns the routed HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until the server is shut down
func (s *Server) Start() error {
	s.logger.Info("starting server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
