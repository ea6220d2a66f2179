package capitacao

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/impactox/api-capitacao/internal/models"
	"github.com/impactox/api-capitacao/internal/registro"
)

func bancoDeTeste(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Capitacao{}, &registro.Registro{}))
	return db
}

func roteadorDeTeste(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/capitacoes", h.Criar).Methods("POST")
	r.HandleFunc("/capitacoes", h.Listar).Methods("GET")
	r.HandleFunc("/capitacoes/inativas", h.LimparInativas).Methods("DELETE")
	r.HandleFunc("/capitacoes/{id}", h.BuscarPorID).Methods("GET")
	r.HandleFunc("/capitacoes/{id}", h.Atualizar).Methods("PUT")
	r.HandleFunc("/capitacoes/{id}/status", h.AtualizarStatus).Methods("PATCH")
	r.HandleFunc("/capitacoes/{id}", h.Deletar).Methods("DELETE")
	return r
}

func requisicao(t *testing.T, r *mux.Router, metodo, alvo string, corpo any) *httptest.ResponseRecorder {
	t.Helper()
	var b bytes.Buffer
	if corpo != nil {
		require.NoError(t, json.NewEncoder(&b).Encode(corpo))
	}
	req := httptest.NewRequest(metodo, alvo, &b)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCriarCapitacao(t *testing.T) {
	h := NewHandler(bancoDeTeste(t))
	r := roteadorDeTeste(h)

	rec := requisicao(t, r, "POST", "/capitacoes", map[string]any{
		"nome":            "Ponto Alfa",
		"cnpj":            "11.222.333/0001-81",
		"valorContratado": 100000,
		"valorRepassado":  150000,
		"dataInicio":      "2026-01-01",
		"periodoMeses":    120,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Capitacao CapitacaoDTO `json:"capitacao"`
		Aviso     string       `json:"aviso"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	c := resp.Capitacao
	assert.Empty(t, resp.Aviso)
	assert.NotZero(t, c.ID)
	assert.Equal(t, "11222333000181", c.CNPJ)
	assert.Equal(t, "11.222.333/0001-81", c.CNPJFormatado)
	assert.Equal(t, "2036-01-01", c.DataTermino)
	assert.Equal(t, models.StatusAtivo, c.Status)
	assert.Equal(t, "50.000,00", c.MargemFormatada)
	assert.Equal(t, "50,0%", c.MargemPercentualFormatada)
}

func TestCriarCapitacaoValidacoes(t *testing.T) {
	h := NewHandler(bancoDeTeste(t))
	r := roteadorDeTeste(h)

	rec := requisicao(t, r, "POST", "/capitacoes", map[string]any{"cnpj": "11222333000181"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nome")

	rec = requisicao(t, r, "POST", "/capitacoes", map[string]any{"nome": "X", "cnpj": "11222333000180"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "CNPJ inválido")
}

func TestCriarCapitacaoAvisaDuplicata(t *testing.T) {
	h := NewHandler(bancoDeTeste(t))
	r := roteadorDeTeste(h)

	alertado := make(chan string, 1)
	h.AlertaCNPJ = func(cnpj string) { alertado <- cnpj }

	corpo := map[string]any{"nome": "Primeiro", "cnpj": "11222333000181", "periodoMeses": 12, "dataInicio": "2026-01-01"}
	rec := requisicao(t, r, "POST", "/capitacoes", corpo)
	require.Equal(t, http.StatusCreated, rec.Code)

	corpo["nome"] = "Segundo"
	rec = requisicao(t, r, "POST", "/capitacoes", corpo)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Aviso string `json:"aviso"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Aviso, "Primeiro")
	assert.Equal(t, "11222333000181", <-alertado)

	// Duplicata não bloqueia: as duas existem.
	var total int64
	require.NoError(t, h.DB.Model(&Capitacao{}).Count(&total).Error)
	assert.EqualValues(t, 2, total)
}

func TestAtualizarStatusInativo(t *testing.T) {
	h := NewHandler(bancoDeTeste(t))
	r := roteadorDeTeste(h)

	rec := requisicao(t, r, "POST", "/capitacoes", map[string]any{
		"nome": "Ponto", "cnpj": "11222333000181", "dataInicio": "2026-01-01", "periodoMeses": 12,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = requisicao(t, r, "PATCH", "/capitacoes/1/status", map[string]any{"status": "inativo"})
	require.Equal(t, http.StatusOK, rec.Code)

	var c Capitacao
	require.NoError(t, h.DB.First(&c, 1).Error)
	assert.Equal(t, models.StatusInativo, c.Status)
	assert.True(t, c.StatusManual)

	rec = requisicao(t, r, "PATCH", "/capitacoes/1/status", map[string]any{"status": "pausado"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListarOrdenaMaisRecentesPrimeiro(t *testing.T) {
	h := NewHandler(bancoDeTeste(t))
	r := roteadorDeTeste(h)

	for _, nome := range []string{"Primeira", "Segunda", "Terceira"} {
		rec := requisicao(t, r, "POST", "/capitacoes", map[string]any{
			"nome": nome, "cnpj": "11222333000181", "dataInicio": "2026-01-01", "periodoMeses": 12,
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := requisicao(t, r, "GET", "/capitacoes", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var lista []CapitacaoDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lista))
	require.Len(t, lista, 3)
	assert.Equal(t, "Terceira", lista[0].Nome)
	assert.Equal(t, "Primeira", lista[2].Nome)
}

func TestLimparInativas(t *testing.T) {
	h := NewHandler(bancoDeTeste(t))
	r := roteadorDeTeste(h)

	registros := []Capitacao{
		{Nome: "Ativa", Status: models.StatusAtivo},
		{Nome: "Inativa A", Status: models.StatusInativo, StatusManual: true},
		{Nome: "Inativa B", Status: models.StatusInativo, StatusManual: true},
	}
	for i := range registros {
		require.NoError(t, h.DB.Create(&registros[i]).Error)
	}

	rec := requisicao(t, r, "DELETE", "/capitacoes/inativas", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"removidas": 2}`, rec.Body.String())

	var restantes []Capitacao
	require.NoError(t, h.DB.Find(&restantes).Error)
	require.Len(t, restantes, 1)
	assert.Equal(t, "Ativa", restantes[0].Nome)
}
