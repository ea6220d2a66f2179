package cnpj

import "strings"

// Normalizar remove tudo que não for dígito. O CNPJ é armazenado
// sempre na forma normalizada (apenas os 14 dígitos).
func Normalizar(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Validar verifica os dois dígitos verificadores do CNPJ (módulo 11).
// Retorna false para qualquer entrada malformada, nunca entra em pânico.
func Validar(raw string) bool {
	digitos := Normalizar(raw)
	if len(digitos) != 14 {
		return false
	}

	// Elimina sequências conhecidas inválidas (00.000.000/0000-00 etc.)
	todosIguais := true
	for i := 1; i < len(digitos); i++ {
		if digitos[i] != digitos[0] {
			todosIguais = false
			break
		}
	}
	if todosIguais {
		return false
	}

	if digitoVerificador(digitos[:12]) != int(digitos[12]-'0') {
		return false
	}
	if digitoVerificador(digitos[:13]) != int(digitos[13]-'0') {
		return false
	}
	return true
}

// digitoVerificador calcula o DV módulo 11 sobre os n primeiros dígitos,
// com pesos ciclando de 2 a 9 a partir da posição mais à direita.
func digitoVerificador(digitos string) int {
	peso := 2
	soma := 0
	for i := len(digitos) - 1; i >= 0; i-- {
		soma += int(digitos[i]-'0') * peso
		peso++
		if peso > 9 {
			peso = 2
		}
	}
	resto := soma % 11
	if resto < 2 {
		return 0
	}
	return 11 - resto
}

// AplicarMascara insere a pontuação ##.###.###/####-## conforme os
// dígitos são digitados, truncando em 14 dígitos. Aplicar a máscara
// sobre um valor já mascarado reproduz a mesma saída (idempotente).
func AplicarMascara(raw string) string {
	digitos := Normalizar(raw)
	if len(digitos) > 14 {
		digitos = digitos[:14]
	}

	var b strings.Builder
	for i, r := range digitos {
		switch i {
		case 2, 5:
			b.WriteByte('.')
		case 8:
			b.WriteByte('/')
		case 12:
			b.WriteByte('-')
		}
		b.WriteRune(r)
	}
	return b.String()
}
