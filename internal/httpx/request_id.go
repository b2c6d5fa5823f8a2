package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// RequestIDHeader es el header con el que chi recibe y devolvemos el request id.
const RequestIDHeader = "X-Request-Id"

// RequestIDFrom lee el request id generado por middleware.RequestID.
// Si no está en el contexto cae al header entrante.
func RequestIDFrom(request *http.Request) string {
	if request == nil {
		return ""
	}
	if id := middleware.GetReqID(request.Context()); id != "" {
		return id
	}
	return request.Header.Get(RequestIDHeader)
}

// EchoRequestID copia el request id a la respuesta para que el cliente
// pueda correlacionar con los logs del servidor.
func EchoRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := RequestIDFrom(r); id != "" {
			w.Header().Set(RequestIDHeader, id)
		}
		next.ServeHTTP(w, r)
	})
}
