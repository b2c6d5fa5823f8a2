package wishlist

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Store es lo que el service necesita del repositorio.
type Store interface {
	List(ctx context.Context, userID string) ([]Item, error)
	Search(ctx context.Context, userID, term string) ([]Item, error)
	GetByID(ctx context.Context, userID, id string) (Item, error)
	Create(ctx context.Context, userID string, input CreateItemInput) (string, error)
	Update(ctx context.Context, userID, id string, input UpdateItemInput) error
	Delete(ctx context.Context, userID, id string) error
}

// Service contiene las reglas de negocio de la lista de desejos.
type Service struct {
	store    Store
	validate *validator.Validate
}

// NewService crea un service de items.
func NewService(store Store) *Service {
	return &Service{
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// List devuelve los items del usuario; con search no vacío filtra por nome.
func (service *Service) List(ctx context.Context, userID, search string) ([]Item, error) {
	search = strings.TrimSpace(search)
	if search == "" {
		return service.store.List(ctx, userID)
	}
	return service.store.Search(ctx, userID, search)
}

// Get obtiene un item del usuario.
func (service *Service) Get(ctx context.Context, userID, id string) (Item, error) {
	return service.store.GetByID(ctx, userID, id)
}

// Create valida reglas y crea el item. Devuelve el id generado.
func (service *Service) Create(ctx context.Context, userID string, input CreateItemInput) (string, error) {
	// Normalización mínima.
	input.Nome = strings.TrimSpace(input.Nome)
	input.Link = strings.TrimSpace(input.Link)

	if err := service.validate.Struct(input); err != nil {
		return "", ErrInvalidInput
	}
	if input.Valor.IsNegative() {
		return "", ErrValorNegative
	}

	return service.store.Create(ctx, userID, input)
}

// Update aplica una actualización parcial.
// La existencia se chequea con una lectura previa explícita, no con el
// resultado del UPDATE.
func (service *Service) Update(ctx context.Context, userID, id string, input UpdateItemInput) error {
	if input.IsEmpty() {
		return ErrEmptyUpdate
	}

	if input.Nome != nil {
		nome := strings.TrimSpace(*input.Nome)
		input.Nome = &nome
	}
	if input.Link != nil {
		link := strings.TrimSpace(*input.Link)
		input.Link = &link
	}

	if err := service.validate.Struct(input); err != nil {
		return ErrInvalidInput
	}
	if input.Valor != nil && input.Valor.IsNegative() {
		return ErrValorNegative
	}

	if _, err := service.store.GetByID(ctx, userID, id); err != nil {
		return err
	}

	return service.store.Update(ctx, userID, id, input)
}

// Delete elimina un item del usuario, previa verificación de que existe.
func (service *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := service.store.GetByID(ctx, userID, id); err != nil {
		return err
	}
	return service.store.Delete(ctx, userID, id)
}
