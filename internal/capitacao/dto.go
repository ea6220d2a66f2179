package capitacao

import (
	"github.com/impactox/api-capitacao/internal/cnpj"
	"github.com/impactox/api-capitacao/internal/moeda"
	"github.com/shopspring/decimal"
)

// criarCapitacaoRequest cobre criação e edição; os campos derivados não
// aparecem aqui de propósito.
type criarCapitacaoRequest struct {
	Nome             string          `json:"nome"`
	CNPJ             string          `json:"cnpj"`
	RazaoSocial      string          `json:"razaoSocial"`
	NomeFantasia     string          `json:"nomeFantasia"`
	Endereco         string          `json:"endereco"`
	ValorContratado  decimal.Decimal `json:"valorContratado"`
	ValorRepassado   decimal.Decimal `json:"valorRepassado"`
	DataInicio       string          `json:"dataInicio"`
	PeriodoMeses     int             `json:"periodoMeses"`
	EmpreendimentoID uint            `json:"empreendimentoId"`
	Empreendimento   string          `json:"empreendimento"`
	Status           string          `json:"status"`
	Renovado         bool            `json:"renovado"`
}

type atualizarStatusRequest struct {
	Status string `json:"status"`
}

// CapitacaoDTO devolve o contrato acrescido das formas de exibição usadas
// pelas telas (moeda pt-BR, CNPJ pontuado).
type CapitacaoDTO struct {
	Capitacao
	CNPJFormatado             string `json:"cnpjFormatado"`
	ValorContratadoFormatado  string `json:"valorContratadoFormatado"`
	ValorRepassadoFormatado   string `json:"valorRepassadoFormatado"`
	MargemFormatada           string `json:"margemFormatada"`
	MargemPercentualFormatada string `json:"margemPercentualFormatada"`
}

// respostaCapitacao acompanha um aviso não bloqueante (ex.: CNPJ já
// cadastrado em outro registro).
type respostaCapitacao struct {
	Capitacao CapitacaoDTO `json:"capitacao"`
	Aviso     string       `json:"aviso,omitempty"`
}

// NovoDTO monta a forma de exibição de um contrato.
func NovoDTO(c Capitacao) CapitacaoDTO {
	return CapitacaoDTO{
		Capitacao:                 c,
		CNPJFormatado:             cnpj.AplicarMascara(c.CNPJ),
		ValorContratadoFormatado:  moeda.FormatarMoeda(c.ValorContratado),
		ValorRepassadoFormatado:   moeda.FormatarMoeda(c.ValorRepassado),
		MargemFormatada:           moeda.FormatarMoeda(c.Margem),
		MargemPercentualFormatada: moeda.FormatarPercentual(c.MargemPercentual, 1),
	}
}

// NovosDTOs converte uma lista preservando a ordem.
func NovosDTOs(lista []Capitacao) []CapitacaoDTO {
	out := make([]CapitacaoDTO, 0, len(lista))
	for _, c := range lista {
		out = append(out, NovoDTO(c))
	}
	return out
}
