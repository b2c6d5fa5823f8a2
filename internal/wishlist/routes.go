package wishlist

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registra las rutas de la lista de desejos detrás del middleware de auth.
// Mantener esto separado hace que main.go no crezca sin control.
func RegisterRoutes(route chi.Router, handler *Handler, authenticate func(http.Handler) http.Handler) {
	route.Route("/lista-desejos", func(route chi.Router) {
		route.Use(authenticate)

		route.Get("/", handler.List)
		route.Post("/adicionar", handler.Create)
		route.Get("/{item_id}", handler.GetByID)
		route.Put("/{item_id}", handler.Update)
		route.Delete("/{item_id}", handler.Delete)
	})
}
