// ABOUTME: HTTP API server for mood entries, journal, goals, preferences, and recaps.
// ABOUTME: Gin engine with CORS, request logging, Prometheus metrics, and graceful shutdown.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/harperreed/mood/internal/logging"
	"github.com/harperreed/mood/internal/models"
	"github.com/harperreed/mood/internal/storage"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 30 * time.Second
)

// WeatherProvider returns current weather for a city. Implementations
// never fail; the Source field tells where the data came from.
type WeatherProvider interface {
	Current(ctx context.Context, city string) models.Weather
}

// Options configures a Server.
type Options struct {
	Repo    storage.Repository
	Weather WeatherProvider
	Logger  *zap.SugaredLogger

	// Registry receives the API collectors and backs /metrics.
	// A fresh registry is created when nil.
	Registry *prometheus.Registry

	// Location is the calendar used for days, weeks, and time of day.
	Location *time.Location

	// DefaultUserID owns requests that do not name a user.
	DefaultUserID int64

	// Now overrides the clock in tests.
	Now func() time.Time
}

// Server serves the mood HTTP API.
type Server struct {
	repo        storage.Repository
	weather     WeatherProvider
	log         *zap.SugaredLogger
	metrics     *Metrics
	loc         *time.Location
	defaultUser int64
	now         func() time.Time
	started     time.Time
	engine      *gin.Engine
}

// New builds the server and its routes.
func New(opts Options) (*Server, error) {
	if opts.Repo == nil {
		return nil, errors.New("api: repository is required")
	}
	if opts.Weather == nil {
		return nil, errors.New("api: weather provider is required")
	}

	s := &Server{
		repo:        opts.Repo,
		weather:     opts.Weather,
		log:         opts.Logger,
		loc:         opts.Location,
		defaultUser: opts.DefaultUserID,
		now:         opts.Now,
	}
	if s.log == nil {
		s.log = logging.Nop()
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.defaultUser <= 0 {
		s.defaultUser = models.GuestUserID
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.started = s.now()

	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	metrics, err := NewMetrics(reg)
	if err != nil {
		return nil, err
	}
	s.metrics = metrics

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestLogger(s.log))
	engine.Use(Instrument(metrics))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Requested-With"}
	engine.Use(cors.New(corsConfig))

	s.engine = engine
	s.routes(reg)
	return s, nil
}

func (s *Server) routes(gatherer prometheus.Gatherer) {
	s.engine.GET("/status", s.handleStatus)
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := s.engine.Group("/api")

	api.GET("/weather", s.handleWeather)

	moods := api.Group("/mood-entries")
	{
		moods.GET("", s.handleListMoods)
		moods.GET("/range", s.handleMoodRange)
		moods.POST("", s.handleCreateMood)
		moods.DELETE("/:id", s.handleDeleteMood)
	}

	journal := api.Group("/journal-entries")
	{
		journal.GET("", s.handleListJournal)
		journal.POST("", s.handleCreateJournal)
	}

	goals := api.Group("/daily-goals")
	{
		goals.GET("", s.handleListGoals)
		goals.POST("", s.handleCreateGoal)
		goals.PATCH("/:id", s.handleUpdateGoal)
	}

	api.GET("/preferences", s.handleGetPreferences)
	api.PATCH("/preferences", s.handleUpdatePreferences)

	api.GET("/recap/weekly", s.handleWeeklyRecap)
	api.GET("/theme", s.handleTheme)
	api.GET("/suggestions", s.handleSuggestions)
}

// Handler exposes the engine for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Infow("http server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.log.Infow("shutting down http server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"uptime":  int64(s.now().Sub(s.started).Seconds()),
		"time":    s.now().In(s.loc).Format(time.RFC3339),
		"version": "1.0.0",
	})
}
