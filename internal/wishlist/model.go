package wishlist

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un registro persistido en la tabla de la lista de desejos.
// Valor se guarda en centavos (entero) para evitar errores de precisión.
type Item struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	Nome      string    `json:"nome"`
	Valor     int64     `json:"valor"`
	Link      string    `json:"link"`
	CreatedAt time.Time `json:"created_at"`
}

// ItemView es lo que devuelve la API: el item tal cual está guardado más
// el valor ya convertido a reais para mostrar.
type ItemView struct {
	Item
	ValorFormatado string `json:"valor_formatado"`
}

// View arma la representación pública del item.
func (item Item) View() ItemView {
	return ItemView{Item: item, ValorFormatado: FromCentavos(item.Valor)}
}

// Views convierte una lista completa; nunca devuelve nil para que el JSON sea [].
func Views(items []Item) []ItemView {
	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, item.View())
	}
	return views
}

// CreateItemInput es el payload validado para crear un item.
// Valor viene en reais; la conversión a centavos la hace el repositorio.
type CreateItemInput struct {
	Nome  string          `validate:"required"`
	Valor decimal.Decimal `validate:"-"`
	Link  string          `validate:"required"`
}

// UpdateItemInput es una actualización parcial: nil significa "no tocar".
type UpdateItemInput struct {
	Nome  *string          `validate:"omitnil,min=1"`
	Valor *decimal.Decimal `validate:"-"`
	Link  *string          `validate:"omitnil,min=1"`
}

// IsEmpty indica que no vino ningún campo para actualizar.
func (in UpdateItemInput) IsEmpty() bool {
	return in.Nome == nil && in.Valor == nil && in.Link == nil
}
