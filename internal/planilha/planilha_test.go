package planilha

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/impactox/api-capitacao/internal/capitacao"
	"github.com/impactox/api-capitacao/internal/models"
)

var hojeFixo = time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

func montarPlanilha(t *testing.T, linhas [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, linha := range linhas {
		for c, v := range linha {
			cel, err := excelize.CoordinatesToCellName(c+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cel, v))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestLerCapitacoes(t *testing.T) {
	buf := montarPlanilha(t, [][]any{
		{"Nome do Ponto", "CNPJ", "Empreendimento", "Valor Contratado", "Valor Repassado", "Data Início", "Período (meses)"},
		{"Alfa", "11.222.333/0001-81", "Sede", "100.000,00", "150.000,00", "2026-01-01", "12"},
		{"Beta", "", "Filial", "1.000,00", "900,00", "2026-03-01", "6 meses"},
	})

	capitacoes, err := LerCapitacoes(buf, hojeFixo)
	require.NoError(t, err)
	require.Len(t, capitacoes, 2)

	a := capitacoes[0]
	assert.Equal(t, "Alfa", a.Nome)
	assert.Equal(t, "11222333000181", a.CNPJ)
	assert.Equal(t, "Sede", a.Empreendimento)
	assert.True(t, decimal.NewFromInt(100000).Equal(a.ValorContratado))
	assert.True(t, decimal.NewFromInt(150000).Equal(a.ValorRepassado))
	assert.True(t, decimal.NewFromInt(50000).Equal(a.Margem))
	assert.Equal(t, 12, a.PeriodoMeses)
	assert.Equal(t, "2027-01-01", a.DataTermino)
	assert.Equal(t, models.StatusAtivo, a.Status)
	assert.Equal(t, "2026-03-15", a.Data)
	assert.Equal(t, "Mar", a.Mes)

	b := capitacoes[1]
	assert.Equal(t, 6, b.PeriodoMeses)
	assert.True(t, decimal.NewFromInt(-100).Equal(b.Margem))
}

func TestLerCapitacoesCabecalhoTolerante(t *testing.T) {
	buf := montarPlanilha(t, [][]any{
		{"PONTO", "Tax ID", "Unidade", "VALOR PROPOSTA", "Valor Pago", "Início", "Meses"},
		{"Gama", "00000000000191", "Norte", "500,00", "700,00", "2026-02-10", "3"},
	})

	capitacoes, err := LerCapitacoes(buf, hojeFixo)
	require.NoError(t, err)
	require.Len(t, capitacoes, 1)
	assert.Equal(t, "Gama", capitacoes[0].Nome)
	assert.Equal(t, "00000000000191", capitacoes[0].CNPJ)
	assert.True(t, decimal.NewFromInt(500).Equal(capitacoes[0].ValorContratado))
	assert.Equal(t, "2026-05-10", capitacoes[0].DataTermino)
}

func TestLerCapitacoesPulaLinhasVazias(t *testing.T) {
	buf := montarPlanilha(t, [][]any{
		{"Nome", "CNPJ"},
		{"Alfa", ""},
		{"", ""},
		{"Beta", ""},
	})

	capitacoes, err := LerCapitacoes(buf, hojeFixo)
	require.NoError(t, err)
	require.Len(t, capitacoes, 2)
	assert.Equal(t, "Alfa", capitacoes[0].Nome)
	assert.Equal(t, "Beta", capitacoes[1].Nome)
}

func TestLerCapitacoesErros(t *testing.T) {
	_, err := LerCapitacoes(bytes.NewReader([]byte("isso não é um xlsx")), hojeFixo)
	assert.Error(t, err)

	semNome := montarPlanilha(t, [][]any{
		{"CNPJ", "Status"},
		{"11222333000181", "ativo"},
	})
	_, err = LerCapitacoes(semNome, hojeFixo)
	assert.ErrorContains(t, err, "nome")

	soCabecalho := montarPlanilha(t, [][]any{{"Nome", "CNPJ"}})
	_, err = LerCapitacoes(soCabecalho, hojeFixo)
	assert.ErrorContains(t, err, "sem linhas")
}

func TestLerCapitacoesStatusInativoManual(t *testing.T) {
	buf := montarPlanilha(t, [][]any{
		{"Nome", "Status", "Data Início", "Meses"},
		{"Delta", "Inativo", "2026-01-01", "12"},
	})

	capitacoes, err := LerCapitacoes(buf, hojeFixo)
	require.NoError(t, err)
	require.Len(t, capitacoes, 1)
	assert.Equal(t, models.StatusInativo, capitacoes[0].Status)
	assert.True(t, capitacoes[0].StatusManual)
}

func TestGerarPlanilhaRoundTrip(t *testing.T) {
	originais := []capitacao.Capitacao{
		{
			Nome:            "Alfa",
			CNPJ:            "11222333000181",
			Empreendimento:  "Sede",
			ValorContratado: decimal.NewFromInt(100000),
			ValorRepassado:  decimal.NewFromInt(150000),
			DataInicio:      "2026-01-01",
			PeriodoMeses:    12,
		},
	}
	capitacao.Derivar(&originais[0], hojeFixo)

	f, err := GerarPlanilha(originais)
	require.NoError(t, err)
	defer f.Close()

	linhas, err := f.GetRows("Capitacoes")
	require.NoError(t, err)
	require.Len(t, linhas, 2)
	assert.Equal(t, "Nome", linhas[0][1])
	assert.Equal(t, "11.222.333/0001-81", linhas[1][2])
	assert.Equal(t, "100.000,00", linhas[1][5])

	// O arquivo exportado é importável de volta.
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	relidas, err := LerCapitacoes(buf, hojeFixo)
	require.NoError(t, err)
	require.Len(t, relidas, 1)
	assert.Equal(t, "Alfa", relidas[0].Nome)
	assert.Equal(t, "11222333000181", relidas[0].CNPJ)
	assert.True(t, originais[0].ValorContratado.Equal(relidas[0].ValorContratado))
	assert.Equal(t, originais[0].DataTermino, relidas[0].DataTermino)
}

func TestNormalizarTitulo(t *testing.T) {
	assert.Equal(t, "periodo meses", normalizarTitulo("  Período (Meses) "))
	assert.Equal(t, "nome do ponto", normalizarTitulo("Nome do Ponto"))
	assert.Equal(t, "data inicio", normalizarTitulo("Data Início"))
}
