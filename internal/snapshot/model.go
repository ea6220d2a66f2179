package snapshot

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/impactox/api-capitacao/internal/capitacao"
	"github.com/impactox/api-capitacao/internal/cnpj"
	"github.com/impactox/api-capitacao/internal/empreendimento"
	"github.com/impactox/api-capitacao/internal/models"
	"github.com/impactox/api-capitacao/internal/operador"
	"github.com/impactox/api-capitacao/internal/registro"
	"github.com/shopspring/decimal"
)

// Versão carimbada nos snapshots exportados. Na importação o campo é
// ignorado: a compatibilidade é resolvida pelo adaptador de campos.
const Versao = "2.5.0"

// Snapshot é o pacote completo de exportação/backup.
type Snapshot struct {
	DBID            string                          `json:"dbId"`
	Timestamp       time.Time                       `json:"timestamp"`
	Version         string                          `json:"version"`
	Users           []operador.Operador             `json:"users"`
	Capitacoes      []capitacao.Capitacao           `json:"capitacoes"`
	Empreendimentos []empreendimento.Empreendimento `json:"empreendimentos"`
	AccessLogs      []registro.Registro             `json:"accessLogs,omitempty"`
	SystemName      string                          `json:"systemName"`
	LogoURL         string                          `json:"logoUrl"`
}

// capitacaoImportada aceita as duas gerações de esquema: a antiga
// (valor_proposta/valor_pago, data_inicio, periodo textual) e a atual
// (valorContratado/valorRepassado, dataInicio, periodoMeses).
type capitacaoImportada struct {
	ID           json.RawMessage `json:"id"`
	Nome         string          `json:"nome"`
	CNPJ         string          `json:"cnpj"`
	RazaoSocial  string          `json:"razaoSocial"`
	NomeFantasia string          `json:"nomeFantasia"`
	Endereco     string          `json:"endereco"`

	ValorContratado *decimal.Decimal `json:"valorContratado"`
	ValorRepassado  *decimal.Decimal `json:"valorRepassado"`
	ValorProposta   *decimal.Decimal `json:"valor_proposta"`
	ValorPago       *decimal.Decimal `json:"valor_pago"`

	DataInicio       string `json:"dataInicio"`
	DataInicioLegada string `json:"data_inicio"`
	PeriodoMeses     *int   `json:"periodoMeses"`
	Periodo          string `json:"periodo"` // geração antiga: texto livre ("6", "6 meses")
	DataTermino      string `json:"dataTermino"`

	Status       string `json:"status"`
	StatusManual bool   `json:"statusManual"`

	EmpreendimentoID uint   `json:"empreendimentoId"`
	Empreendimento   string `json:"empreendimento"`

	Renovado               bool `json:"renovado"`
	AvisoVencimentoEnviado bool `json:"aviso5DiasEnviado"`
	OperadorID             uint `json:"operadorId"`

	Mes  string `json:"mes"`
	Data string `json:"data"`
}

// Converter traduz para o esquema canônico. A margem nunca é lida do
// snapshot: é rederivada com o sinal canônico (repassado - contratado),
// assim como data de término e status automático.
func (ci capitacaoImportada) Converter(hoje time.Time) capitacao.Capitacao {
	contratado := escolherValor(ci.ValorContratado, ci.ValorProposta)
	repassado := escolherValor(ci.ValorRepassado, ci.ValorPago)

	inicio := ci.DataInicio
	if inicio == "" {
		inicio = ci.DataInicioLegada
	}
	meses := 0
	if ci.PeriodoMeses != nil {
		meses = *ci.PeriodoMeses
	} else {
		meses = parsePeriodo(ci.Periodo)
	}

	c := capitacao.Capitacao{
		Nome:                   ci.Nome,
		CNPJ:                   cnpj.Normalizar(ci.CNPJ),
		RazaoSocial:            ci.RazaoSocial,
		NomeFantasia:           ci.NomeFantasia,
		Endereco:               ci.Endereco,
		ValorContratado:        contratado,
		ValorRepassado:         repassado,
		DataInicio:             inicio,
		PeriodoMeses:           meses,
		DataTermino:            ci.DataTermino,
		Status:                 ci.Status,
		StatusManual:           ci.StatusManual || ci.Status == models.StatusInativo,
		EmpreendimentoID:       ci.EmpreendimentoID,
		Empreendimento:         ci.Empreendimento,
		Renovado:               ci.Renovado,
		AvisoVencimentoEnviado: ci.AvisoVencimentoEnviado,
		OperadorID:             ci.OperadorID,
		Mes:                    ci.Mes,
		Data:                   ci.Data,
	}
	c.ID = parseID(ci.ID)
	capitacao.Derivar(&c, hoje)
	return c
}

type operadorImportado struct {
	ID      json.RawMessage `json:"id"`
	Nome    string          `json:"nome"`
	Email   string          `json:"email"`
	Cargo   string          `json:"cargo"`
	Avatar  string          `json:"avatar"`
	Cor     string          `json:"cor"`
	IsAdmin bool            `json:"isAdmin"`
}

func (oi operadorImportado) Converter() operador.Operador {
	o := operador.Operador{
		Nome:    oi.Nome,
		Email:   oi.Email,
		Cargo:   oi.Cargo,
		Avatar:  oi.Avatar,
		Cor:     oi.Cor,
		IsAdmin: oi.IsAdmin,
	}
	o.ID = parseID(oi.ID)
	return o
}

type empreendimentoImportado struct {
	ID           json.RawMessage `json:"id"`
	Nome         string          `json:"nome"`
	Profissional string          `json:"profissional"`
	Telefone     string          `json:"telefone"`
	Email        string          `json:"email"`
	Status       string          `json:"status"`
	Data         string          `json:"data"`
}

func (ei empreendimentoImportado) Converter() empreendimento.Empreendimento {
	e := empreendimento.Empreendimento{
		Nome:         ei.Nome,
		Profissional: ei.Profissional,
		Telefone:     ei.Telefone,
		Email:        ei.Email,
		Status:       ei.Status,
		Data:         ei.Data,
	}
	e.ID = parseID(ei.ID)
	return e
}

// parseID aceita ids numéricos e numéricos-em-string; ids opacos de
// gerações antigas ("admin_123") viram 0 e recebem id novo na gravação.
func parseID(raw json.RawMessage) uint {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if s == "" || s == "null" {
		return 0
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}

func escolherValor(novo, legado *decimal.Decimal) decimal.Decimal {
	if novo != nil {
		return *novo
	}
	if legado != nil {
		return *legado
	}
	return decimal.Zero
}

// parsePeriodo extrai os meses do campo textual antigo ("6 meses" -> 6).
func parsePeriodo(s string) int {
	digitos := strings.Builder{}
	for _, r := range strings.TrimSpace(s) {
		if r < '0' || r > '9' {
			break
		}
		digitos.WriteRune(r)
	}
	n, err := strconv.Atoi(digitos.String())
	if err != nil {
		return 0
	}
	return n
}
