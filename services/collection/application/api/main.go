package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/mamecholeye-lab/Rmam/services/collection/application/handlers"
	appsvcs "github.com/mamecholeye-lab/Rmam/services/collection/application/services"
)

// CollectionRoutes registers collection, group and item endpoints on the provided chi router.
func CollectionRoutes(r chi.Router, svcs *appsvcs.Services) {
	r.Group(func(r chi.Router) {
		r.Route("/collection", func(r chi.Router) {
			r.Get("/", handlers.NewGetCollectionHandler(svcs).Execute)
			r.Delete("/", handlers.NewDeleteCollectionHandler(svcs).Execute)
			r.Post("/import", handlers.NewPostImportHandler(svcs).Execute)
			r.Get("/items", handlers.NewGetItemsHandler(svcs).Execute)
			r.Get("/export", handlers.NewGetExportHandler(svcs).Execute)
			r.Get("/stats", handlers.NewGetStatsHandler(svcs).Execute)
		})
		r.Route("/groups", func(r chi.Router) {
			r.Post("/", handlers.NewPostGroupHandler(svcs).Execute)
			r.Delete("/{name}", handlers.NewDeleteGroupHandler(svcs).Execute)
		})
		r.Put("/items/{id}/group", handlers.NewPutItemGroupHandler(svcs).Execute)
	})
}
