package wishlist

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)

	// Mayor valor en reais cuyo equivalente en centavos entra en un bigint.
	maxValor = decimal.New(math.MaxInt64, -2)
)

// Límites de la representación aceptada. Un exponente extremo ("1e-10000000")
// obliga a decimal a reescalar enteros gigantes en cada Cmp/Mul/Round.
const (
	maxValorLen      = 64
	minValorExponent = -18
	maxValorExponent = 18
)

// ParseValor interpreta el valor recibido en reais. Acepta un número JSON o
// un string numérico ("49.90"), igual que el cliente web original.
func ParseValor(raw json.RawMessage) (decimal.Decimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.Decimal{}, ErrValorNotNumber
	}

	var text string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return decimal.Decimal{}, ErrValorNotNumber
		}
		text = strings.TrimSpace(text)
	} else {
		var number json.Number
		if err := json.Unmarshal(raw, &number); err != nil {
			return decimal.Decimal{}, ErrValorNotNumber
		}
		text = number.String()
	}

	if len(text) > maxValorLen {
		return decimal.Decimal{}, ErrValorNotNumber
	}

	valor, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Decimal{}, ErrValorNotNumber
	}
	// Antes de cualquier operación aritmética.
	if exp := valor.Exponent(); exp < minValorExponent || exp > maxValorExponent {
		return decimal.Decimal{}, ErrValorNotNumber
	}
	if valor.IsNegative() {
		return decimal.Decimal{}, ErrValorNegative
	}
	if valor.GreaterThan(maxValor) {
		return decimal.Decimal{}, ErrValorNotNumber
	}
	return valor, nil
}

// ToCentavos convierte reais a centavos: round(valor * 100).
// El redondeo es half away from zero, sobre la representación decimal exacta.
func ToCentavos(valor decimal.Decimal) int64 {
	return valor.Mul(hundred).Round(0).IntPart()
}

// FromCentavos formatea centavos como reais con dos decimales.
func FromCentavos(centavos int64) string {
	return decimal.New(centavos, -2).StringFixed(2)
}
