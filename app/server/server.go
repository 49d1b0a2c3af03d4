// Package server provides the HTTP API for the mandala planner.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/didip/tollbooth/v8"
	"github.com/didip/tollbooth/v8/limiter"
	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/routegroup"
	"github.com/go-playground/validator/v10"

	"github.com/gurza/mandala/app/generator"
	"github.com/gurza/mandala/app/store"
)

//go:generate moq -out mocks/goalstore.go -pkg mocks -skip-ensure -fmt goimports . GoalStore
//go:generate moq -out mocks/activitystore.go -pkg mocks -skip-ensure -fmt goimports . ActivityStore
//go:generate moq -out mocks/generator.go -pkg mocks -skip-ensure -fmt goimports . Generator
//go:generate moq -out mocks/events.go -pkg mocks -skip-ensure -fmt goimports . Events

// Server represents the HTTP server.
type Server struct {
	Deps
	Config
	validate *validator.Validate
}

// GoalStore defines the interface for chart and goal storage operations.
type GoalStore interface {
	CreateChart(ctx context.Context, title string) (store.Chart, error)
	GetChart(ctx context.Context, id string) (store.Chart, error)
	ListCharts(ctx context.Context) ([]store.Chart, error)
	DeleteChart(ctx context.Context, id string) error
	CreateGoal(ctx context.Context, g store.Goal) (store.Goal, error)
	GetGoal(ctx context.Context, id string) (store.Goal, error)
	ListGoals(ctx context.Context, chartID string) ([]store.Goal, error)
	UpdateGoal(ctx context.Context, g store.Goal) (store.Goal, error)
	UpdateGoalWithVersion(ctx context.Context, g store.Goal, expectedVersion time.Time) (store.Goal, error)
	DeleteGoal(ctx context.Context, id string) error
}

// ActivityStore defines the interface for activity log storage.
type ActivityStore interface {
	LogActivity(ctx context.Context, entry store.ActivityEntry) error
	QueryActivity(ctx context.Context, q store.ActivityQuery) ([]store.ActivityEntry, int, error)
}

// Generator defines the interface for AI suggestion generation.
type Generator interface {
	SubGoals(ctx context.Context, req generator.Request) ([]generator.Suggestion, error)
	Actions(ctx context.Context, req generator.Request) ([]generator.Suggestion, error)
	Tasks(ctx context.Context, req generator.Request) ([]generator.Suggestion, error)
}

// Events defines the interface for publishing goal change events.
type Events interface {
	Publish(chartID, goalID, action string)
}

// Shutdowner is implemented by event services that need graceful shutdown.
type Shutdowner interface {
	Shutdown(ctx context.Context) error
}

// Config holds server configuration.
type Config struct {
	Address         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	Version         string
	BaseURL         string // base URL path for reverse proxy (e.g., /mandala)

	BodySizeLimit  int64   // max request body size in bytes
	RequestsPerSec float64 // max requests per second (rate limit)
	MaxConcurrent  int64   // max concurrent in-flight requests

	ActivityEnabled    bool // enable activity logging
	ActivityQueryLimit int  // max entries per activity query (default 10000)
}

// Deps holds server dependencies.
type Deps struct {
	Store     GoalStore
	Activity  ActivityStore // optional, nil to disable activity logging
	Generator Generator     // optional, nil to disable AI generation
	SSE       http.Handler  // optional, nil to disable goal change subscriptions
	Events    Events        // optional, nil to disable event publishing
}

// New creates a new Server instance.
func New(deps Deps, cfg Config) (*Server, error) {
	if deps.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	return &Server{Deps: deps, Config: cfg, validate: validator.New()}, nil
}

// Run starts the HTTP server and blocks until context is canceled.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.Address,
		Handler:           s.handler(),
		ReadHeaderTimeout: s.ReadTimeout,
		WriteTimeout:      s.WriteTimeout,
		IdleTimeout:       s.IdleTimeout,
	}

	// graceful shutdown
	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")

		// shutdown SSE first to close active connections (half the timeout budget)
		if sd, ok := s.SSE.(Shutdowner); ok {
			sseCtx, sseCancel := context.WithTimeout(context.Background(), s.ShutdownTimeout/2)
			if err := sd.Shutdown(sseCtx); err != nil {
				log.Printf("[WARN] SSE shutdown error: %v", err)
			}
			sseCancel()
		}

		// shutdown HTTP server with remaining timeout budget
		httpCtx, httpCancel := context.WithTimeout(context.Background(), s.ShutdownTimeout/2)
		defer httpCancel()
		if err := httpServer.Shutdown(httpCtx); err != nil {
			log.Printf("[WARN] shutdown error: %v", err)
		}
	}()

	log.Printf("[DEBUG] started server on %s", s.Address)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// handler returns the HTTP handler, wrapping routes with base URL support if configured.
func (s *Server) handler() http.Handler {
	routes := s.routes()
	if s.BaseURL == "" {
		return routes
	}
	mux := http.NewServeMux()
	// redirect /base to /base/
	mux.HandleFunc(s.BaseURL, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, s.BaseURL+"/", http.StatusMovedPermanently)
	})
	// strip prefix for all routes under base URL
	mux.Handle(s.BaseURL+"/", http.StripPrefix(s.BaseURL, routes))
	return mux
}

// routes configures and returns the HTTP handler with all routes and middleware.
func (s *Server) routes() http.Handler {
	router := routegroup.New(http.NewServeMux())

	// global middleware (applies to all routes)
	router.Use(
		rest.Recoverer(log.Default()),
		rest.RealIP, // must be before rate limiting to limit by real client IP
		s.rateLimiter(),
		rest.Throttle(s.maxConcurrent()),
		rest.Trace,
		rest.SizeLimit(s.bodySizeLimit()),
		rest.AppInfo("mandala", "gurza", s.Version),
		rest.Ping,
	)

	router.Mount("/api").Route(func(api *routegroup.Bundle) {
		api.Use(s.activityMiddleware())

		api.HandleFunc("GET /charts", s.handleChartList)
		api.HandleFunc("POST /charts", s.handleChartCreate)
		api.HandleFunc("GET /charts/{id}", s.handleChartGet)
		api.HandleFunc("DELETE /charts/{id}", s.handleChartDelete)

		api.HandleFunc("POST /goals", s.handleGoalCreate)
		api.HandleFunc("GET /goals/{id}", s.handleGoalGet)
		api.HandleFunc("PUT /goals/{id}", s.handleGoalUpdate)
		api.HandleFunc("DELETE /goals/{id}", s.handleGoalDelete)

		api.HandleFunc("POST /generate/subgoals", s.handleGenerateSubGoals)
		api.HandleFunc("POST /generate/actions", s.handleGenerateActions)
		api.HandleFunc("POST /generate/tasks", s.handleGenerateTasks)

		if s.ActivityEnabled && s.Activity != nil {
			api.HandleFunc("POST /activity/query", s.handleActivityQuery)
		}

		// SSE subscription endpoint (if enabled)
		// GET /subscribe/{chart} for one chart, GET /subscribe/* for all
		if s.SSE != nil {
			api.Handle("GET /subscribe/{chart...}", s.SSE)
		}
	})

	return router
}

// bodySizeLimit returns the configured body size limit, or default 1MB if not set.
func (s *Server) bodySizeLimit() int64 {
	if s.BodySizeLimit > 0 {
		return s.BodySizeLimit
	}
	return 1024 * 1024
}

// requestsPerSec returns the configured rate limit (requests per second), or default 100 if not set.
func (s *Server) requestsPerSec() float64 {
	if s.RequestsPerSec > 0 {
		return s.RequestsPerSec
	}
	return 100
}

// maxConcurrent returns the configured max concurrent in-flight requests, or default 1000 if not set.
func (s *Server) maxConcurrent() int64 {
	if s.MaxConcurrent > 0 {
		return s.MaxConcurrent
	}
	return 1000
}

// rateLimiter returns middleware that limits requests per second using tollbooth.
func (s *Server) rateLimiter() func(http.Handler) http.Handler {
	lmt := tollbooth.NewLimiter(s.requestsPerSec(), &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
	lmt.SetIPLookup(limiter.IPLookup{Name: "RemoteAddr", IndexFromRight: 0}) // use RemoteAddr (RealIP middleware sets it)
	lmt.SetBurst(int(s.requestsPerSec()))                                    // burst equals rate limit
	return func(next http.Handler) http.Handler {
		return tollbooth.LimitHandler(lmt, next)
	}
}

// publishEvent publishes a goal change event to SSE subscribers if events are enabled.
func (s *Server) publishEvent(chartID, goalID, action string) {
	if s.Events == nil {
		return
	}
	s.Events.Publish(chartID, goalID, action)
}
