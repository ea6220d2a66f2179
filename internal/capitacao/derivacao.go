package capitacao

import (
	"time"

	"github.com/impactox/api-capitacao/internal/models"
	"github.com/shopspring/decimal"
)

const formatoData = "2006-01-02"

var nomesMeses = [...]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

// NomeMes devolve a abreviação pt-BR do mês de uma data ("Jan".."Dez").
func NomeMes(t time.Time) string {
	return nomesMeses[int(t.Month())-1]
}

// CalcularMargem aplica a convenção canônica de sinal:
// margem = valor repassado - valor contratado.
func CalcularMargem(contratado, repassado decimal.Decimal) decimal.Decimal {
	return repassado.Sub(contratado)
}

// CalcularMargemPercentual devolve margem/contratado*100, com guarda para
// base zero ou negativa (resultado 0, nunca NaN ou infinito).
func CalcularMargemPercentual(contratado, margem decimal.Decimal) decimal.Decimal {
	if contratado.Sign() <= 0 {
		return decimal.Zero
	}
	return margem.Div(contratado).Mul(decimal.NewFromInt(100))
}

// AdicionarMeses soma meses a uma data ISO com dia ancorado no fim do mês:
// 2024-01-31 + 1 mês = 2024-02-29, nunca um transbordo para março.
// Data vazia ou inválida devolve vazio (sem fallback para "hoje").
func AdicionarMeses(dataISO string, meses int) string {
	inicio, err := time.Parse(formatoData, dataISO)
	if err != nil {
		return ""
	}
	ano, mes, dia := inicio.Date()
	alvo := time.Date(ano, mes+time.Month(meses), 1, 0, 0, 0, 0, time.UTC)
	ultimoDia := time.Date(alvo.Year(), alvo.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if dia > ultimoDia {
		dia = ultimoDia
	}
	return time.Date(alvo.Year(), alvo.Month(), dia, 0, 0, 0, 0, time.UTC).Format(formatoData)
}

// DiasRestantes conta dias de calendário entre hoje e a data de término
// (negativo quando já venceu). O segundo retorno é false para data vazia
// ou inválida.
func DiasRestantes(dataTermino string, hoje time.Time) (int, bool) {
	termino, err := time.Parse(formatoData, dataTermino)
	if err != nil {
		return 0, false
	}
	hojeData := time.Date(hoje.Year(), hoje.Month(), hoje.Day(), 0, 0, 0, 0, time.UTC)
	return int(termino.Sub(hojeData).Hours() / 24), true
}

// Classificar aplica os limiares automáticos sobre a data de término:
// já passou -> vencido; até 30 dias -> vencendo; além disso -> ativo.
// Nunca devolve "inativo": esse status é exclusivamente manual.
func Classificar(dataTermino string, hoje time.Time) string {
	dias, ok := DiasRestantes(dataTermino, hoje)
	if !ok {
		return models.StatusAtivo
	}
	switch {
	case dias < 0:
		return models.StatusVencido
	case dias <= models.JanelaVencendoDias:
		return models.StatusVencendo
	default:
		return models.StatusAtivo
	}
}

// Derivar recalcula todos os campos derivados do contrato. É uma função
// pura dos campos de entrada: entradas idênticas produzem saídas idênticas.
//
// O status automático só é reclassificado quando a data de término de fato
// mudou. A regra não é otimização: mudar valor contratado ou repassado não
// pode mexer no status, e um "inativo" fixado pelo operador sobrevive a
// qualquer recálculo até que ele próprio escolha outro status.
func Derivar(c *Capitacao, hoje time.Time) {
	c.Margem = CalcularMargem(c.ValorContratado, c.ValorRepassado)
	c.MargemPercentual = CalcularMargemPercentual(c.ValorContratado, c.Margem)

	novoTermino := AdicionarMeses(c.DataInicio, c.PeriodoMeses)
	terminoMudou := novoTermino != c.DataTermino
	c.DataTermino = novoTermino

	if terminoMudou && !c.StatusManual {
		c.Status = Classificar(c.DataTermino, hoje)
	}
}
