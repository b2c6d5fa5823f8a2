// Package health expone liveness y readiness del servicio.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Lelo88/lista-desejos-api/internal/httpx"
	"github.com/Lelo88/lista-desejos-api/internal/logger"
)

// pingTimeout acota cuánto puede tardar /ready en contestar.
const pingTimeout = 2 * time.Second

// Pinger es lo único que readiness necesita de la base.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler encapsula endpoints de health.
type Handler struct {
	db Pinger
}

// New crea un handler de health. db puede ser nil: /ready responde 503.
func New(db Pinger) *Handler {
	return &Handler{db: db}
}

// RegisterRoutes monta /health y /ready.
func (handler *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", handler.Health)
	r.Get("/ready", handler.Ready)
}

// Health indica si el proceso está vivo.
// NO chequea base de datos. Eso va en /ready.
func (handler *Handler) Health(w http.ResponseWriter, r *http.Request) {
	httpx.OK(w, r, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready indica si el servicio puede atender tráfico: hace ping a la DB.
func (handler *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if handler.db == nil {
		httpx.Fail(w, r, http.StatusServiceUnavailable, "not_ready", "database pool not configured")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := handler.db.Ping(ctx); err != nil {
		logger.FromRequest(r).Warn().Err(err).Msg("readiness ping failed")
		httpx.Fail(w, r, http.StatusServiceUnavailable, "not_ready", "database is not reachable")
		return
	}

	httpx.OK(w, r, http.StatusOK, map[string]any{"status": "ready"})
}
