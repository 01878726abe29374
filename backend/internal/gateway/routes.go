// ============================================================================
// backend/internal/gateway/routes.go
// Chi router setup and route registration
// ============================================================================

// Package gateway is the HTTP surface over the consistency and aggregation
// managers. Handlers stay thin: decode, call a manager, map errors to status
// codes. All interesting semantics live in the internal packages below it.
package gateway

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"uniportal/backend/internal/gateway/handlers"
	"uniportal/backend/internal/registry"
	"uniportal/backend/internal/shared"
	"uniportal/backend/internal/store"
	"uniportal/backend/internal/submission"
)

// SetupRoutes configures the Chi router, middleware, and route handlers.
func SetupRoutes(cfg *shared.Config, st store.Store) *chi.Mux {
	r := chi.NewRouter()

	// 1. Global Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS Configuration (Allow React Frontend)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	// 2. Initialize Managers and Handlers
	authenticator := NewAuthenticator(cfg.Security)
	registrySvc := registry.NewService(st)
	submissionSvc := submission.NewService(st)

	authHandler := &handlers.AuthHandler{Store: st, Tokens: authenticator}
	courseHandler := &handlers.CourseHandler{Store: st, Registry: registrySvc}
	unitHandler := &handlers.UnitHandler{Store: st, Registry: registrySvc}
	submissionHandler := &handlers.SubmissionHandler{Store: st, Submission: submissionSvc}
	metricsHandler := &handlers.MetricsHandler{Store: st}

	// 3. Define Routes (grouped by prefix)
	r.Route("/api", func(r chi.Router) {

		// --- Public Routes ---

		// Auth
		r.Post("/auth/login", authHandler.Login)

		// Catalog (Publicly viewable)
		r.Get("/courses", courseHandler.ListCourses)
		r.Get("/courses/{code}", courseHandler.GetCourse)
		r.Get("/units", unitHandler.ListUnits)

		// --- Protected Routes (Require Valid Token) ---
		r.Group(func(r chi.Router) {
			r.Use(authenticator.AuthMiddleware)

			// Structure Management
			r.Post("/courses", courseHandler.CreateCourse)
			r.Delete("/courses/{code}", courseHandler.DeleteCourse)
			r.Post("/units", unitHandler.CreateUnit)
			r.Put("/units/{code}", unitHandler.UpdateUnit)
			r.Delete("/units/{code}", unitHandler.DeleteUnit)

			// Submissions and Progress
			r.Route("/submissions", func(r chi.Router) {
				r.Get("/", submissionHandler.ListSubmissions)
				r.Post("/", submissionHandler.SaveSubmission)
				r.Post("/{id}/grade", submissionHandler.GradeSubmission)
			})
			r.Post("/progress", submissionHandler.SetWeekMaterial)
			r.Get("/students/{id}/units", submissionHandler.EnrolledUnits)

			// Metrics
			r.Route("/metrics", func(r chi.Router) {
				r.Get("/units/{code}/progress", metricsHandler.UnitProgress)
				r.Get("/average-progress", metricsHandler.AverageProgress)
				r.Get("/average-grade", metricsHandler.AverageGrade)
				r.Get("/submission-rate", metricsHandler.SubmissionRate)
				r.Get("/dashboard", metricsHandler.Dashboard)
			})
		})
	})

	return r
}
