package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the public gallery surface and the password-gated admin
// mutations.
func setupRoutes(r chi.Router, handlers *routeHandlers, admin adminMiddleware) {
	// Public gallery routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/projects", handlers.projectHandler.listProjects())
		r.Get("/projects/{projectID}", handlers.projectHandler.getProject())
		r.Post("/projects/{projectID}/view", handlers.projectHandler.trackView())
		r.Post("/projects/{projectID}/like", handlers.projectHandler.toggleLike())
	})

	// Admin CRUD routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(admin.authenticate)

		r.Post("/projects", handlers.projectHandler.createProject())
		r.Put("/projects/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/projects/{projectID}", handlers.projectHandler.deleteProject())
	})
}
