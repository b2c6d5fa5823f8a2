package wishlist

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParseValor(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{name: "number", raw: `49.90`, want: "49.9"},
		{name: "integer", raw: `10`, want: "10"},
		{name: "zero", raw: `0`, want: "0"},
		{name: "numeric string", raw: `"12.34"`, want: "12.34"},
		{name: "numeric string with spaces", raw: `" 7.5 "`, want: "7.5"},
		{name: "exponent", raw: `1e2`, want: "100"},
		{name: "text", raw: `"abc"`, wantErr: ErrValorNotNumber},
		{name: "empty string", raw: `""`, wantErr: ErrValorNotNumber},
		{name: "boolean", raw: `true`, wantErr: ErrValorNotNumber},
		{name: "object", raw: `{"v":1}`, wantErr: ErrValorNotNumber},
		{name: "null", raw: `null`, wantErr: ErrValorNotNumber},
		{name: "too large", raw: `1e30`, wantErr: ErrValorNotNumber},
		{name: "negative number", raw: `-5`, wantErr: ErrValorNegative},
		{name: "negative string", raw: `"-0.01"`, wantErr: ErrValorNegative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valor, err := ParseValor(json.RawMessage(tt.raw))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.True(t, decimal.RequireFromString(tt.want).Equal(valor), "got %s", valor)
		})
	}
}

func TestParseValor_RejectsExtremeRepresentations(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "tiny exponent number", raw: `1e-10000000`},
		{name: "tiny exponent string", raw: `"1e-10000000"`},
		{name: "huge exponent number", raw: `1e999999999`},
		{name: "huge negative exponent", raw: `-1e-999999999`},
		{name: "too many decimals", raw: `0.0000000000000000001`},
		{name: "exponent above window", raw: `1e19`},
		{name: "very long mantissa", raw: `"` + strings.Repeat("9", 100) + `"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := time.Now()

			_, err := ParseValor(json.RawMessage(tt.raw))

			require.ErrorIs(t, err, ErrValorNotNumber)
			require.Less(t, time.Since(start), 100*time.Millisecond)
		})
	}
}

func TestParseValor_AcceptsExponentWindowEdges(t *testing.T) {
	valor, err := ParseValor(json.RawMessage(`1e-18`))
	require.NoError(t, err)
	require.Equal(t, int64(0), ToCentavos(valor))

	valor, err = ParseValor(json.RawMessage(`1e15`))
	require.NoError(t, err)
	require.Equal(t, int64(100000000000000000), ToCentavos(valor))
}

func TestToCentavos(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{input: "49.90", want: 4990},
		{input: "0.29", want: 29},
		{input: "0", want: 0},
		{input: "19.999", want: 2000},
		{input: "0.005", want: 1},
		{input: "0.004", want: 0},
		{input: "1234567.89", want: 123456789},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.want, ToCentavos(decimal.RequireFromString(tt.input)))
		})
	}
}

func TestToCentavos_MatchesRoundedFloat(t *testing.T) {
	// Para valores con hasta dos decimales, round(v*100) es exacto.
	for cents := int64(0); cents <= 100000; cents += 7 {
		text := FromCentavos(cents)
		valor, err := ParseValor(json.RawMessage(text))
		require.NoError(t, err)
		require.Equal(t, cents, ToCentavos(valor))
	}
}

func TestFromCentavos(t *testing.T) {
	require.Equal(t, "49.90", FromCentavos(4990))
	require.Equal(t, "0.05", FromCentavos(5))
	require.Equal(t, "0.00", FromCentavos(0))
	require.Equal(t, "1000.00", FromCentavos(100000))
}

func TestCheckRequired(t *testing.T) {
	err := checkRequired(map[string]json.RawMessage{
		"valor": json.RawMessage(`10`),
		"link":  json.RawMessage(`null`),
	})

	require.ErrorIs(t, err, ErrMissingFields)
	var missing *MissingFieldsError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, []string{"nome", "link"}, missing.Fields)
	require.Equal(t, "missing required fields: nome, link", err.Error())

	require.NoError(t, checkRequired(map[string]json.RawMessage{
		"nome":  json.RawMessage(`"Mouse"`),
		"valor": json.RawMessage(`0`),
		"link":  json.RawMessage(`"http://x"`),
	}))
}
