package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/impactox/api-capitacao/internal/capitacao"
	"github.com/impactox/api-capitacao/internal/empreendimento"
	"github.com/impactox/api-capitacao/internal/operador"
	"github.com/impactox/api-capitacao/internal/registro"
)

// ErrFormatoInvalido indica um corpo que não é nem lista de capitações
// nem objeto de snapshot com alguma chave reconhecida.
var ErrFormatoInvalido = errors.New("formato de snapshot não reconhecido")

// Colecoes é o estado em memória sobre o qual a mesclagem opera. O motor
// em si não toca banco nenhum: Interpretar + Aplicar são funções puras e
// o handler aplica o resultado numa transação única.
type Colecoes struct {
	Operadores      []operador.Operador
	Capitacoes      []capitacao.Capitacao
	Empreendimentos []empreendimento.Empreendimento
	Registros       []registro.Registro
	NomeSistema     string
	LogoURL         string
}

// Importacao é o resultado tipado da interpretação de um corpo importado:
// cada coleção vem acompanhada da informação de presença, porque chave
// ausente significa "não mexa", não "esvazie".
type Importacao struct {
	Capitacoes         []capitacao.Capitacao
	TemCapitacoes      bool
	Empreendimentos    []empreendimento.Empreendimento
	TemEmpreendimentos bool
	Operadores         []operador.Operador
	TemOperadores      bool
	Registros          []registro.Registro
	TemRegistros       bool
	NomeSistema        *string
	LogoURL            *string
}

// snapshotBruto cobre as duas gerações de nomes de chave do pacote.
type snapshotBruto struct {
	Users           *[]operadorImportado       `json:"users"`
	Capitacoes      *[]capitacaoImportada      `json:"capitacoes"`
	Contracts       *[]capitacaoImportada      `json:"contracts"`
	Empreendimentos *[]empreendimentoImportado `json:"empreendimentos"`
	BusinessUnits   *[]empreendimentoImportado `json:"businessUnits"`
	AccessLogs      *[]registro.Registro       `json:"accessLogs"`
	SystemName      *string                    `json:"systemName"`
	LogoURL         *string                    `json:"logoUrl"`
}

// Interpretar decide o formato do corpo importado:
//   - lista JSON -> formato legado de exportação: substituição integral da
//     coleção de capitações;
//   - objeto JSON com chaves reconhecidas -> substituição integral por
//     coleção presente;
//   - qualquer outra coisa -> ErrFormatoInvalido, sem coerção silenciosa.
func Interpretar(raw []byte, hoje time.Time) (*Importacao, error) {
	corpo := bytes.TrimSpace(raw)
	if len(corpo) == 0 {
		return nil, ErrFormatoInvalido
	}

	switch corpo[0] {
	case '[':
		var itens []capitacaoImportada
		if err := json.Unmarshal(corpo, &itens); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFormatoInvalido, err)
		}
		imp := &Importacao{TemCapitacoes: true}
		imp.Capitacoes = converterCapitacoes(itens, hoje)
		return imp, nil

	case '{':
		var bruto snapshotBruto
		if err := json.Unmarshal(corpo, &bruto); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFormatoInvalido, err)
		}
		imp := &Importacao{}

		capitacoes := bruto.Capitacoes
		if capitacoes == nil {
			capitacoes = bruto.Contracts
		}
		if capitacoes != nil {
			imp.TemCapitacoes = true
			imp.Capitacoes = converterCapitacoes(*capitacoes, hoje)
		}

		empreendimentos := bruto.Empreendimentos
		if empreendimentos == nil {
			empreendimentos = bruto.BusinessUnits
		}
		if empreendimentos != nil {
			imp.TemEmpreendimentos = true
			for _, ei := range *empreendimentos {
				imp.Empreendimentos = append(imp.Empreendimentos, ei.Converter())
			}
		}

		if bruto.Users != nil {
			imp.TemOperadores = true
			for _, oi := range *bruto.Users {
				imp.Operadores = append(imp.Operadores, oi.Converter())
			}
		}
		if bruto.AccessLogs != nil {
			imp.TemRegistros = true
			imp.Registros = *bruto.AccessLogs
		}
		imp.NomeSistema = bruto.SystemName
		imp.LogoURL = bruto.LogoURL

		if !imp.TemCapitacoes && !imp.TemEmpreendimentos && !imp.TemOperadores &&
			!imp.TemRegistros && imp.NomeSistema == nil && imp.LogoURL == nil {
			return nil, ErrFormatoInvalido
		}
		return imp, nil
	}
	return nil, ErrFormatoInvalido
}

// Aplicar mescla a importação sobre o estado atual: coleção presente é
// substituída por inteiro, coleção ausente fica exatamente como estava.
// Não há mesclagem registro a registro.
func Aplicar(atual Colecoes, imp *Importacao) Colecoes {
	resultado := atual
	if imp.TemCapitacoes {
		resultado.Capitacoes = imp.Capitacoes
	}
	if imp.TemEmpreendimentos {
		resultado.Empreendimentos = imp.Empreendimentos
	}
	if imp.TemOperadores {
		resultado.Operadores = imp.Operadores
	}
	if imp.TemRegistros {
		resultado.Registros = imp.Registros
	}
	if imp.NomeSistema != nil && *imp.NomeSistema != "" {
		resultado.NomeSistema = *imp.NomeSistema
	}
	if imp.LogoURL != nil && *imp.LogoURL != "" {
		resultado.LogoURL = *imp.LogoURL
	}
	return resultado
}

// SessaoEncerrada diz se o operador da sessão atual deixou de existir na
// lista importada — nesse caso a sessão é derrubada para não apontar para
// uma identidade removida.
func SessaoEncerrada(imp *Importacao, operadorAtivo uint) bool {
	if !imp.TemOperadores || operadorAtivo == 0 {
		return false
	}
	for _, o := range imp.Operadores {
		if o.ID == operadorAtivo {
			return false
		}
	}
	return true
}

func converterCapitacoes(itens []capitacaoImportada, hoje time.Time) []capitacao.Capitacao {
	out := make([]capitacao.Capitacao, 0, len(itens))
	for _, ci := range itens {
		out = append(out, ci.Converter(hoje))
	}
	return out
}
