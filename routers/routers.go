package routers

import (
	"context"
	"net/http"
	"time"

	"blackLedger/models"
	"blackLedger/services/pickService"
	"blackLedger/services/xpService"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type JobRunner interface {
	GeneratePicks(ctx context.Context) (*pickService.BatchResult, error)
	GradePicks(ctx context.Context) (*xpService.GradeSummary, error)
	CleanupMocks(ctx context.Context, marker string) (int64, error)
}

type PickReader interface {
	PicksBySport(ctx context.Context) (map[string]map[string][]models.Pick, error)
	LatestPicks(ctx context.Context, limit int) ([]models.Pick, error)
	LatestParlays(ctx context.Context, limit int) ([]models.BlackLedgerPick, error)
	LatestMystery(ctx context.Context) (*models.BlackLedgerPick, error)
}

// NewRouter wires the admin and read endpoints. metrics may be nil.
func NewRouter(jobs JobRunner, picks PickReader, metrics http.Handler, allowedOrigins []string) http.Handler {
	h := NewHandler(jobs, picks)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:5000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", h.HealthCheck)

	// generation can outlast the default timeout
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(10 * time.Minute))
		r.Get("/run-now", h.RunNow)
		r.Post("/run-now", h.RunNow)
		r.Get("/test-refresh", h.RunNow)
		r.Post("/test-refresh", h.RunNow)
		r.Post("/grade", h.Grade)
		r.Get("/cleanup-mocks", h.CleanupMocks)
		r.Post("/cleanup-mocks", h.CleanupMocks)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))
		r.Get("/picks", h.PicksBySport)
		r.Get("/picks/latest", h.LatestPicks)
		r.Get("/parlays", h.LatestParlays)
		r.Get("/parlays/mystery", h.Mystery)
	})

	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}

	return r
}
