package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorBody es el formato de todos los errores que devuelve la API.
// Nunca incluye detalles internos (SQL, errores de JWT, etc.).
type ErrorBody struct {
	Message   string `json:"message"`
	Code      string `json:"code,omitempty"` // ej: "invalid_input", "not_found"
	RequestID string `json:"request_id,omitempty"`
}

// MessageBody es la respuesta de las operaciones de escritura.
type MessageBody struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// JSON escribe una respuesta JSON con headers correctos.
// Nota: en caso de error de encodeo, responde 500 de forma segura.
func JSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		// Último recurso: no se pudo serializar JSON.
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"internal server error","code":"internal_error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

// OK devuelve una respuesta exitosa con el payload tal cual.
func OK(w http.ResponseWriter, r *http.Request, status int, payload any) {
	JSON(w, status, payload)
}

// Message devuelve {"message": ...} con un id opcional.
func Message(w http.ResponseWriter, r *http.Request, status int, message, id string) {
	JSON(w, status, MessageBody{Message: message, ID: id})
}

// Fail devuelve un error estructurado.
func Fail(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	JSON(w, status, ErrorBody{
		Message:   message,
		Code:      code,
		RequestID: RequestIDFrom(r),
	})
}
