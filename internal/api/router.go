package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fundlens/fundlens/internal/api/handlers"
	custommiddleware "github.com/fundlens/fundlens/internal/api/middleware"
	"github.com/fundlens/fundlens/internal/config"
	"github.com/fundlens/fundlens/internal/service"
)

// Services bundles the service dependencies of the router.
type Services struct {
	System     *service.SystemService
	Position   *service.PositionService
	MarketData *service.MarketDataService
	Overview   *service.OverviewService
	Snapshot   *service.SnapshotService
	Tag        *service.TagService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/positions", func(r chi.Router) {
			positionHandler := handlers.NewPositionHandler(svc.Position)
			r.Get("/", positionHandler.List)
			r.Post("/", positionHandler.Create)
			r.Get("/export", positionHandler.Export)
			r.Post("/import", positionHandler.Import)

			r.Route("/{id}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", positionHandler.Get)
				r.Put("/", positionHandler.Update)
				r.Delete("/", positionHandler.Delete)
				r.Put("/events", positionHandler.SubmitEvent)
				r.Delete("/events/{date}", positionHandler.DeleteEvent)
			})
		})

		analyticsHandler := handlers.NewAnalyticsHandler(svc.Overview, svc.Snapshot, svc.Tag)
		r.Get("/overview", analyticsHandler.Overview)
		r.Get("/snapshots", analyticsHandler.Snapshots)
		r.Get("/tags", analyticsHandler.Tags)

		refreshHandler := handlers.NewRefreshHandler(svc.MarketData, svc.Position)
		r.Post("/refresh", refreshHandler.Refresh)
	})

	return r
}
