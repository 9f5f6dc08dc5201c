package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/login", h.login)
	})

	// routes for any authenticated identity
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/auth/logout", h.logout)
		r.Get("/api/records", h.listRecords)
		r.Get("/api/records/export", h.exportRecords)
		r.Get("/api/records/summary", h.summary)

		// admin-only mutations
		r.Group(func(r chi.Router) {
			r.Use(h.requireAdmin)

			r.Post("/api/users", h.createUser)
			r.Post("/api/records", h.addRecord)
			r.Put("/api/records/{id}", h.updateRecord)
			r.Delete("/api/records/{id}", h.deleteRecord)
			r.Post("/api/records/import", h.importRecords)
		})
	})

	return router
}
