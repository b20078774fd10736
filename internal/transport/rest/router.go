package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/guardforce/workforce-management/internal/assignment"
	"github.com/guardforce/workforce-management/internal/auth"
	"github.com/guardforce/workforce-management/internal/core/roles"
	"github.com/guardforce/workforce-management/internal/dashboard"
	"github.com/guardforce/workforce-management/internal/location"
	"github.com/guardforce/workforce-management/internal/registration"
	"github.com/guardforce/workforce-management/internal/transport/middleware"
	"github.com/guardforce/workforce-management/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, authz *auth.CapabilityAuthorization, assignmentHandler *assignment.Handler, registrationHandler *registration.Handler, locationHandler *location.Handler, dashboardHandler *dashboard.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check route
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		if authHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", authHandler.Login)
				sr.Post("/refresh", authHandler.RefreshToken)
			})
		}

		if authHandler == nil {
			return
		}

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			if locationHandler != nil {
				pr.Route("/locations", func(lr chi.Router) {
					lr.Get("/", locationHandler.GetLocations)
					lr.Get("/{id}/beats", locationHandler.GetLocationBeats)
				})
			}

			if assignmentHandler != nil {
				pr.Route("/assignments", func(ar chi.Router) {
					ar.Group(func(cr chi.Router) {
						cr.Use(authz.Require(roles.OpCreateAssignment))
						cr.Post("/", assignmentHandler.CreateAssignment)
					})

					ar.Group(func(lr chi.Router) {
						lr.Use(authz.Require(roles.OpListAssignments))
						lr.Get("/pending", assignmentHandler.ListPendingAssignments)
						lr.Get("/active", assignmentHandler.ListActiveAssignments)
					})

					ar.Group(func(mr chi.Router) {
						mr.Use(authz.RequireApproveAssignment())
						mr.Patch("/{id}/approve", assignmentHandler.ApproveAssignment)
					})

					ar.Group(func(mr chi.Router) {
						mr.Use(authz.RequireRejectAssignment())
						mr.Patch("/{id}/reject", assignmentHandler.RejectAssignment)
					})

					ar.Group(func(mr chi.Router) {
						mr.Use(authz.Require(roles.OpEndAssignment))
						mr.Patch("/{id}/end", assignmentHandler.EndAssignment)
					})
				})

				pr.Group(func(mr chi.Router) {
					mr.Use(authz.RequireReassignOperator())
					mr.Post("/operators/{id}/reassign", assignmentHandler.ReassignOperator)
				})
			}

			if registrationHandler != nil {
				pr.Group(func(rr chi.Router) {
					rr.Use(authz.RequireRegisterOperator())
					rr.Post("/registrations/operators", registrationHandler.RegisterOperator)
				})
			}

			if dashboardHandler != nil {
				pr.Group(func(dr chi.Router) {
					dr.Use(authz.Require(roles.OpViewDashboard))
					dr.Get("/dashboard", dashboardHandler.GetOverview)
				})
			}
		})
	})
}
