package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/portfolio/internal/auth"
	"github.com/frahmantamala/portfolio/internal/budget"
	"github.com/frahmantamala/portfolio/internal/education"
	"github.com/frahmantamala/portfolio/internal/experience"
	"github.com/frahmantamala/portfolio/internal/project"
	"github.com/frahmantamala/portfolio/internal/transport/middleware"
	"github.com/frahmantamala/portfolio/internal/transport/swagger"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes carries everything RegisterAllRoutes mounts. Nil handlers are
// skipped, which keeps tests small.
type Routes struct {
	DB     *sql.DB
	Logger *slog.Logger
	Guard  *auth.Guard

	Budget      *budget.Handler
	Projects    *project.Handler
	Experiences *experience.Handler
	Educations  *education.Handler

	AllowedOrigins string

	HTTPMetrics *middleware.HTTPMetrics
	Gatherer    prometheus.Gatherer
	MetricsPath string

	OpenAPI *openapi3.T
}

func RegisterAllRoutes(router *chi.Mux, routes Routes) {
	healthHandler := NewHealthHandler(routes.DB)

	router.Use(middleware.CORS(routes.AllowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(routes.Logger))
	router.Use(middleware.LoggingMiddleware())
	if routes.HTTPMetrics != nil {
		router.Use(routes.HTTPMetrics.Instrument)
	}

	if routes.Gatherer != nil {
		path := routes.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		router.Handle(path, promhttp.HandlerFor(routes.Gatherer, promhttp.HandlerOpts{}))
	}

	// Spec and Swagger UI sit outside the API prefix.
	if routes.OpenAPI != nil {
		router.Handle("/openapi.json", swagger.SpecHandler(routes.OpenAPI))
		router.Handle("/swagger/*", swagger.Handler("/openapi.json"))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Public portfolio reads
		if routes.Projects != nil {
			r.Get("/projects", routes.Projects.ListProjects)
			r.Get("/projects/{slug}", routes.Projects.GetProject)
		}
		if routes.Experiences != nil {
			r.Get("/experiences", routes.Experiences.ListExperiences)
		}
		if routes.Educations != nil {
			r.Get("/educations", routes.Educations.ListEducations)
		}

		// Admin
		r.Group(func(ar chi.Router) {
			if routes.Guard != nil {
				ar.Use(routes.Guard.RequireAdmin)
			}

			if routes.Budget != nil {
				ar.Route("/budget", routes.Budget.RegisterRoutes)
			}

			if routes.Projects != nil {
				ar.Post("/projects", routes.Projects.CreateProject)
				ar.Patch("/projects/{slug}", routes.Projects.UpdateProject)
				ar.Delete("/projects/{slug}", routes.Projects.DeleteProject)
			}

			if routes.Experiences != nil {
				ar.Post("/experiences", routes.Experiences.CreateExperience)
				ar.Put("/experiences/{id}", routes.Experiences.UpdateExperience)
				ar.Delete("/experiences/{id}", routes.Experiences.DeleteExperience)
			}

			if routes.Educations != nil {
				ar.Post("/educations", routes.Educations.CreateEducation)
				ar.Put("/educations/{id}", routes.Educations.UpdateEducation)
				ar.Delete("/educations/{id}", routes.Educations.DeleteEducation)
			}
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"type":"NOT_FOUND","code":"ROUTE_NOT_FOUND","message":"route not found"}}`))
	})
}
