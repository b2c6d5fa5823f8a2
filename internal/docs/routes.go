package docs

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// UIPath es donde queda montada la Swagger UI.
const UIPath = "/docs/"

// RegisterRoutes monta las rutas de documentación (Swagger UI + OpenAPI YAML).
// Son públicas: no pasan por el middleware de auth.
// Van planas y no con r.Route: el Mount de un subrouter en /docs pisaría el redirect.
func RegisterRoutes(r chi.Router) {
	redirect := func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, UIPath, http.StatusMovedPermanently)
	}

	// /docs sin slash y el alias /apidocs terminan en la UI.
	r.Get("/docs", redirect)
	r.Get("/apidocs", redirect)

	r.Get(UIPath, SwaggerUIHandler())

	// La UI la consume por URL.
	r.Get(UIPath+openAPIFile, OpenAPIHandler())
}
