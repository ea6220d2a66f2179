// Package planilha cobre o caminho tabular de entrada e saída: importação
// aditiva de pontos a partir de um .xlsx e exportação do relatório.
package planilha

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/impactox/api-capitacao/internal/capitacao"
	"github.com/impactox/api-capitacao/internal/cnpj"
	"github.com/impactox/api-capitacao/internal/models"
	"github.com/impactox/api-capitacao/internal/moeda"
	"github.com/xuri/excelize/v2"
)

// Sinônimos aceitos por coluna. Os cabeçalhos variam entre planilhas em
// português e inglês; a comparação ignora caixa, acentos e sublinhados.
var sinonimos = map[string][]string{
	"nome":           {"nome", "ponto", "nome do ponto", "point name", "name"},
	"cnpj":           {"cnpj", "tax id", "taxid"},
	"empreendimento": {"empreendimento", "business unit", "unidade"},
	"status":         {"status"},
	"valorPago":      {"valor pago", "valor repassado", "paid value"},
	"valorProposta":  {"valor proposta", "valor contratado", "proposed value"},
	"dataInicio":     {"data inicio", "start date", "inicio"},
	"periodo":        {"periodo", "contract period", "periodo meses", "meses"},
}

// LerCapitacoes interpreta a primeira aba do arquivo e devolve um contrato
// por linha de dados, já com os derivados calculados. Linhas totalmente
// vazias são puladas; colunas desconhecidas são ignoradas.
func LerCapitacoes(r io.Reader, hoje time.Time) ([]capitacao.Capitacao, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("planilha ilegível: %w", err)
	}
	defer f.Close()

	aba := f.GetSheetName(0)
	linhas, err := f.GetRows(aba)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler a aba %q: %w", aba, err)
	}
	if len(linhas) < 2 {
		return nil, fmt.Errorf("planilha sem linhas de dados")
	}

	colunas := mapearColunas(linhas[0])
	if _, ok := colunas["nome"]; !ok {
		return nil, fmt.Errorf("planilha sem coluna de nome do ponto")
	}

	var capitacoes []capitacao.Capitacao
	for _, linha := range linhas[1:] {
		if linhaVazia(linha) {
			continue
		}
		c := capitacao.Capitacao{
			Nome:            celula(linha, colunas, "nome"),
			CNPJ:            cnpj.Normalizar(celula(linha, colunas, "cnpj")),
			Empreendimento:  celula(linha, colunas, "empreendimento"),
			ValorRepassado:  moeda.ParseMoeda(celula(linha, colunas, "valorPago")),
			ValorContratado: moeda.ParseMoeda(celula(linha, colunas, "valorProposta")),
			DataInicio:      celula(linha, colunas, "dataInicio"),
			PeriodoMeses:    parseMeses(celula(linha, colunas, "periodo")),
			Status:          models.StatusAtivo,
			Data:            hoje.Format("2006-01-02"),
			Mes:             capitacao.NomeMes(hoje),
		}
		if s := strings.ToLower(strings.TrimSpace(celula(linha, colunas, "status"))); s != "" {
			c.Status = s
			c.StatusManual = s == models.StatusInativo
		}
		capitacao.Derivar(&c, hoje)
		capitacoes = append(capitacoes, c)
	}
	return capitacoes, nil
}

// GerarPlanilha monta o arquivo de exportação, uma linha por contrato.
func GerarPlanilha(capitacoes []capitacao.Capitacao) (*excelize.File, error) {
	f := excelize.NewFile()
	aba := "Capitacoes"
	indice, err := f.NewSheet(aba)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(indice)

	cabecalho := []string{"ID", "Nome", "CNPJ", "Empreendimento", "Status",
		"Valor Contratado", "Valor Repassado", "Margem", "Margem %",
		"Data Início", "Período (meses)", "Data Término"}
	for c, v := range cabecalho {
		celula, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(aba, celula, v)
	}
	for i, ct := range capitacoes {
		linha := i + 2
		valores := []any{
			ct.ID,
			ct.Nome,
			cnpj.AplicarMascara(ct.CNPJ),
			ct.Empreendimento,
			ct.Status,
			moeda.FormatarMoeda(ct.ValorContratado),
			moeda.FormatarMoeda(ct.ValorRepassado),
			moeda.FormatarMoeda(ct.Margem),
			moeda.FormatarPercentual(ct.MargemPercentual, 1),
			ct.DataInicio,
			ct.PeriodoMeses,
			ct.DataTermino,
		}
		for c, v := range valores {
			celula, _ := excelize.CoordinatesToCellName(c+1, linha)
			_ = f.SetCellValue(aba, celula, v)
		}
	}
	return f, nil
}

func mapearColunas(cabecalho []string) map[string]int {
	colunas := make(map[string]int)
	for i, titulo := range cabecalho {
		chave := normalizarTitulo(titulo)
		for campo, nomes := range sinonimos {
			if _, ja := colunas[campo]; ja {
				continue
			}
			for _, n := range nomes {
				if chave == n {
					colunas[campo] = i
					break
				}
			}
		}
	}
	return colunas
}

// normalizarTitulo baixa a caixa e descarta acentos e pontuação comuns de
// cabeçalho, para "Data de Início" casar com "data inicio".
func normalizarTitulo(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	substituicoes := strings.NewReplacer(
		"á", "a", "â", "a", "ã", "a", "é", "e", "ê", "e",
		"í", "i", "ó", "o", "ô", "o", "õ", "o", "ú", "u", "ç", "c",
		"_", " ", "(", "", ")", "", "-", " ",
	)
	s = substituicoes.Replace(s)
	s = strings.ReplaceAll(s, " de ", " ")
	return strings.Join(strings.Fields(s), " ")
}

func celula(linha []string, colunas map[string]int, campo string) string {
	i, ok := colunas[campo]
	if !ok || i >= len(linha) {
		return ""
	}
	return strings.TrimSpace(linha[i])
}

func linhaVazia(linha []string) bool {
	for _, v := range linha {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func parseMeses(s string) int {
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
