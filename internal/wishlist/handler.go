package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Lelo88/lista-desejos-api/internal/auth"
	"github.com/Lelo88/lista-desejos-api/internal/httpx"
)

// Mensajes expuestos al cliente (contrato de la API).
const (
	messageCreated       = "Item adicionado com sucesso"
	messageUpdated       = "Item atualizado com sucesso"
	messageDeleted       = "Item removido com sucesso"
	messageNotFound      = "Item não encontrado"
	messageNoData        = "Dados não fornecidos"
	messageInvalidJSON   = "JSON inválido"
	messageMissingFields = "Campos obrigatórios ausentes: "
	messageValorNaN      = "Valor deve ser um número válido"
	messageValorNegative = "Valor deve ser positivo"
	messageInvalidInput  = "Dados inválidos: nome e link devem ser textos não vazios"
	messageNothingToSet  = "Nenhum campo válido para atualizar (nome, valor, link)"
	messageUnauthorized  = "Token de autenticação ausente"
	messageCreateFailed  = "Erro ao adicionar item"
	messageUpdateFailed  = "Erro ao atualizar item"
	messageDeleteFailed  = "Erro ao remover item"
	messageUnexpected    = "Erro inesperado"
)

// maxBodyBytes limita el tamaño de los payloads de escritura.
const maxBodyBytes = 1 << 20

// requiredFields en el orden en que se chequean y se reportan.
var requiredFields = []string{"nome", "valor", "link"}

// ServiceAPI define lo que el handler necesita.
// Permite testear handlers con stubs sin tocar DB.
type ServiceAPI interface {
	List(ctx context.Context, userID, search string) ([]Item, error)
	Get(ctx context.Context, userID, id string) (Item, error)
	Create(ctx context.Context, userID string, input CreateItemInput) (string, error)
	Update(ctx context.Context, userID, id string, input UpdateItemInput) error
	Delete(ctx context.Context, userID, id string) error
}

// Handler HTTP de la lista de desejos.
// Sólo traduce HTTP <-> dominio (service).
type Handler struct {
	service ServiceAPI
}

// NewHandler crea un handler de items.
func NewHandler(service ServiceAPI) *Handler {
	return &Handler{service: service}
}

// List maneja GET /lista-desejos con búsqueda opcional por ?search=.
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	userID, ok := handler.userID(writer, request)
	if !ok {
		return
	}

	items, err := handler.service.List(request.Context(), userID, request.URL.Query().Get("search"))
	if err != nil {
		httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", messageUnexpected)
		return
	}

	httpx.OK(writer, request, http.StatusOK, map[string]any{"items": Views(items)})
}

// Create maneja POST /lista-desejos/adicionar.
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	userID, ok := handler.userID(writer, request)
	if !ok {
		return
	}

	fields, err := decodeObject(writer, request)
	if err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_json", messageInvalidJSON)
		return
	}

	if err := checkRequired(fields); err != nil {
		handler.failValidation(writer, request, err)
		return
	}

	valor, err := ParseValor(fields["valor"])
	if err != nil {
		handler.failValidation(writer, request, err)
		return
	}

	var input CreateItemInput
	if json.Unmarshal(fields["nome"], &input.Nome) != nil || json.Unmarshal(fields["link"], &input.Link) != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_input", messageInvalidInput)
		return
	}
	input.Valor = valor

	id, err := handler.service.Create(request.Context(), userID, input)
	if err != nil {
		if handler.failValidation(writer, request, err) {
			return
		}
		// No filtramos detalles internos.
		httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", messageCreateFailed)
		return
	}

	httpx.Message(writer, request, http.StatusCreated, messageCreated, id)
}

// GetByID maneja GET /lista-desejos/{item_id}.
func (handler *Handler) GetByID(writer http.ResponseWriter, request *http.Request) {
	userID, ok := handler.userID(writer, request)
	if !ok {
		return
	}

	id, ok := itemID(request)
	if !ok {
		httpx.Fail(writer, request, http.StatusNotFound, "not_found", messageNotFound)
		return
	}

	item, err := handler.service.Get(request.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httpx.Fail(writer, request, http.StatusNotFound, "not_found", messageNotFound)
		default:
			httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", messageUnexpected)
		}
		return
	}

	httpx.OK(writer, request, http.StatusOK, item.View())
}

// Update maneja PUT /lista-desejos/{item_id}. Sólo cambian los campos enviados.
func (handler *Handler) Update(writer http.ResponseWriter, request *http.Request) {
	userID, ok := handler.userID(writer, request)
	if !ok {
		return
	}

	fields, err := decodeObject(writer, request)
	if err != nil || len(fields) == 0 {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_json", messageNoData)
		return
	}

	id, ok := itemID(request)
	if !ok {
		httpx.Fail(writer, request, http.StatusNotFound, "not_found", messageNotFound)
		return
	}

	var input UpdateItemInput
	if present(fields, "nome") {
		var nome string
		if err := json.Unmarshal(fields["nome"], &nome); err != nil {
			httpx.Fail(writer, request, http.StatusBadRequest, "invalid_input", messageInvalidInput)
			return
		}
		input.Nome = &nome
	}
	if present(fields, "valor") {
		valor, err := ParseValor(fields["valor"])
		if err != nil {
			handler.failValidation(writer, request, err)
			return
		}
		input.Valor = &valor
	}
	if present(fields, "link") {
		var link string
		if err := json.Unmarshal(fields["link"], &link); err != nil {
			httpx.Fail(writer, request, http.StatusBadRequest, "invalid_input", messageInvalidInput)
			return
		}
		input.Link = &link
	}

	err = handler.service.Update(request.Context(), userID, id, input)
	if err != nil {
		if handler.failValidation(writer, request, err) {
			return
		}
		switch {
		case errors.Is(err, ErrNotFound):
			httpx.Fail(writer, request, http.StatusNotFound, "not_found", messageNotFound)
		default:
			httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", messageUpdateFailed)
		}
		return
	}

	httpx.Message(writer, request, http.StatusOK, messageUpdated, "")
}

// Delete maneja DELETE /lista-desejos/{item_id}.
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	userID, ok := handler.userID(writer, request)
	if !ok {
		return
	}

	id, ok := itemID(request)
	if !ok {
		httpx.Fail(writer, request, http.StatusNotFound, "not_found", messageNotFound)
		return
	}

	err := handler.service.Delete(request.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httpx.Fail(writer, request, http.StatusNotFound, "not_found", messageNotFound)
		default:
			httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", messageDeleteFailed)
		}
		return
	}

	httpx.Message(writer, request, http.StatusOK, messageDeleted, "")
}

// userID lee el usuario que dejó el middleware de auth.
// Si falta, la ruta quedó montada sin auth: respondemos 401 igual.
func (handler *Handler) userID(writer http.ResponseWriter, request *http.Request) (string, bool) {
	userID, ok := auth.UserIDFrom(request.Context())
	if !ok {
		httpx.Fail(writer, request, http.StatusUnauthorized, "unauthorized", messageUnauthorized)
		return "", false
	}
	return userID, true
}

// failValidation traduce errores de validación a 400. Devuelve false si err no lo es.
func (handler *Handler) failValidation(writer http.ResponseWriter, request *http.Request, err error) bool {
	var missing *MissingFieldsError
	switch {
	case errors.As(err, &missing):
		httpx.Fail(writer, request, http.StatusBadRequest, "missing_fields", messageMissingFields+strings.Join(missing.Fields, ", "))
	case errors.Is(err, ErrValorNotNumber):
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_valor", messageValorNaN)
	case errors.Is(err, ErrValorNegative):
		httpx.Fail(writer, request, http.StatusBadRequest, "negative_valor", messageValorNegative)
	case errors.Is(err, ErrEmptyUpdate):
		httpx.Fail(writer, request, http.StatusBadRequest, "empty_update", messageNothingToSet)
	case errors.Is(err, ErrInvalidInput):
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_input", messageInvalidInput)
	default:
		return false
	}
	return true
}

// itemID valida el id del path. En DB es uuid: cualquier otra cosa no puede
// existir, así que se responde como no encontrado sin consultar.
func itemID(request *http.Request) (string, bool) {
	parsed, err := uuid.Parse(chi.URLParam(request, "item_id"))
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

// decodeObject lee el body como objeto JSON conservando qué claves vinieron.
func decodeObject(writer http.ResponseWriter, request *http.Request) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	body := http.MaxBytesReader(writer, request.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&fields); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	if fields == nil {
		// "null" decodifica sin error pero no es un objeto.
		return nil, io.ErrUnexpectedEOF
	}
	return fields, nil
}

// checkRequired devuelve un *MissingFieldsError con los obligatorios ausentes.
func checkRequired(fields map[string]json.RawMessage) error {
	var missing []string
	for _, name := range requiredFields {
		if !present(fields, name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}

// present indica si la clave vino y no es null.
func present(fields map[string]json.RawMessage, name string) bool {
	raw, ok := fields[name]
	if !ok {
		return false
	}
	return strings.TrimSpace(string(raw)) != "null"
}
