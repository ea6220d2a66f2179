// Package moeda concentra a entrada e a formatação de valores monetários
// no padrão pt-BR usado pelas telas (1.234,56).
package moeda

import (
	"strings"

	"github.com/shopspring/decimal"
)

var cem = decimal.NewFromInt(100)

// ParseTeclado interpreta os dígitos digitados como centavos: "150" vira
// 1,50. Digitar "1", depois "12", depois "123" produz 0,01 / 0,12 / 1,23.
// Tudo que não for dígito é descartado.
func ParseTeclado(raw string) decimal.Decimal {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return decimal.Zero
	}
	centavos, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero
	}
	return centavos.Div(cem)
}

// FormatarMoeda devolve o valor com duas casas decimais, vírgula decimal
// e ponto como separador de milhar: 1234.5 -> "1.234,50".
func FormatarMoeda(v decimal.Decimal) string {
	s := v.StringFixed(2) // ex.: "-1234.50"
	negativo := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	partes := strings.SplitN(s, ".", 2)
	inteiro, fracao := partes[0], partes[1]

	out := agruparMilhares(inteiro) + "," + fracao
	if negativo {
		out = "-" + out
	}
	return out
}

// FormatarPercentual formata com o número de casas pedido e sufixo "%".
// Por convenção das telas, percentuais usam uma casa decimal.
func FormatarPercentual(v decimal.Decimal, casas int) string {
	if casas < 0 {
		casas = 0
	}
	s := v.StringFixed(int32(casas))
	return strings.Replace(s, ".", ",", 1) + "%"
}

// ParseMoeda é o inverso de FormatarMoeda: aceita "1.234,56" (e também
// "1234.56", forma já numérica de snapshots antigos). String vazia vale zero.
func ParseMoeda(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return v
}

func agruparMilhares(digitos string) string {
	n := len(digitos)
	if n <= 3 {
		return digitos
	}
	var b strings.Builder
	resto := n % 3
	if resto > 0 {
		b.WriteString(digitos[:resto])
	}
	for i := resto; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digitos[i : i+3])
	}
	return b.String()
}
