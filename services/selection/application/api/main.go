package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/mamecholeye-lab/Rmam/services/selection/application/handlers"
	appsvcs "github.com/mamecholeye-lab/Rmam/services/selection/application/services"
)

// SelectionRoutes registers selection endpoints on the provided chi router.
func SelectionRoutes(r chi.Router, svcs *appsvcs.Services) {
	r.Group(func(r chi.Router) {
		r.Route("/selections", func(r chi.Router) {
			r.Post("/", handlers.NewPostSelectionHandler(svcs).Execute)
			r.Post("/quick", handlers.NewPostQuickPickHandler(svcs).Execute)
			r.Get("/history", handlers.NewGetHistoryHandler(svcs).Execute)
		})
	})
}
