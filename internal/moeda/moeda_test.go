package moeda

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseTecladoCentavos(t *testing.T) {
	// Digitação sequencial: cada tecla entra pelo lado dos centavos.
	assert.True(t, ParseTeclado("1").Equal(decimal.RequireFromString("0.01")))
	assert.True(t, ParseTeclado("12").Equal(decimal.RequireFromString("0.12")))
	assert.True(t, ParseTeclado("123").Equal(decimal.RequireFromString("1.23")))

	// "100" digitado é 1,00 — nunca 100.
	assert.True(t, ParseTeclado("100").Equal(decimal.NewFromInt(1)))
}

func TestParseTecladoDescartaNaoDigitos(t *testing.T) {
	assert.True(t, ParseTeclado("R$ 1.5a0").Equal(decimal.RequireFromString("1.50")))
	assert.True(t, ParseTeclado("").Equal(decimal.Zero))
	assert.True(t, ParseTeclado("abc").Equal(decimal.Zero))
}

func TestFormatarMoeda(t *testing.T) {
	casos := map[string]string{
		"0":          "0,00",
		"1.5":        "1,50",
		"1234.5":     "1.234,50",
		"1234567.89": "1.234.567,89",
		"-987654.3":  "-987.654,30",
		"999":        "999,00",
		"1000":       "1.000,00",
	}
	for entrada, esperado := range casos {
		v := decimal.RequireFromString(entrada)
		assert.Equal(t, esperado, FormatarMoeda(v), "entrada %s", entrada)
	}
}

func TestFormatarPercentual(t *testing.T) {
	assert.Equal(t, "12,3%", FormatarPercentual(decimal.RequireFromString("12.34"), 1))
	assert.Equal(t, "0,0%", FormatarPercentual(decimal.Zero, 1))
	assert.Equal(t, "100%", FormatarPercentual(decimal.NewFromInt(100), 0))
	assert.Equal(t, "-5,5%", FormatarPercentual(decimal.RequireFromString("-5.5"), 1))
}

func TestParseMoedaInversoDeFormatar(t *testing.T) {
	valores := []string{"0", "1.5", "1234.5", "1234567.89", "-987654.3"}
	for _, s := range valores {
		v := decimal.RequireFromString(s)
		assert.True(t, ParseMoeda(FormatarMoeda(v)).Equal(v), "valor %s", s)
	}
}

func TestParseMoedaFormasLegadas(t *testing.T) {
	assert.True(t, ParseMoeda("1234.56").Equal(decimal.RequireFromString("1234.56")))
	assert.True(t, ParseMoeda("").Equal(decimal.Zero))
	assert.True(t, ParseMoeda("  1.000,00 ").Equal(decimal.NewFromInt(1000)))
}
