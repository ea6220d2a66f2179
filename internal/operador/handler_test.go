package operador

import (
	"bytes"
	"context"
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

	"github.com/impactox/api-capitacao/internal/auth"
	"github.com/impactox/api-capitacao/internal/registro"
	"github.com/impactox/api-capitacao/internal/utils"
)

func bancoDeTeste(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Operador{}, &registro.Registro{}))
	return db
}

func criarOperadorDeTeste(t *testing.T, db *gorm.DB, senha string) *Operador {
	t.Helper()
	hash, err := utils.HashSenha(senha)
	require.NoError(t, err)
	o := Operador{Nome: "Maria", Email: "maria@impacto.com", Senha: hash, IsAdmin: true}
	require.NoError(t, db.Create(&o).Error)
	return &o
}

func TestLogin(t *testing.T) {
	db := bancoDeTeste(t)
	h := NewHandler(db)
	criarOperadorDeTeste(t, db, "segredo123")

	corpo, _ := json.Marshal(LoginRequest{Email: "maria@impacto.com", Senha: "segredo123"})
	req := httptest.NewRequest("POST", "/login", bytes.NewReader(corpo))
	rec := httptest.NewRecorder()
	h.Login(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token    string   `json:"token"`
		Operador Operador `json:"operador"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Maria", resp.Operador.Nome)

	// Hash de senha nunca sai na resposta.
	var bruto struct {
		Operador map[string]any `json:"operador"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bruto))
	assert.NotContains(t, bruto.Operador, "senha")

	claims, err := auth.ParseAndValidate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.Operador.ID, claims.OperadorID)
	assert.True(t, claims.IsAdmin)
}

func TestLoginCredenciaisInvalidas(t *testing.T) {
	db := bancoDeTeste(t)
	h := NewHandler(db)
	criarOperadorDeTeste(t, db, "segredo123")

	casos := []LoginRequest{
		{Email: "maria@impacto.com", Senha: "errada"},
		{Email: "ninguem@impacto.com", Senha: "segredo123"},
	}
	for _, c := range casos {
		corpo, _ := json.Marshal(c)
		rec := httptest.NewRecorder()
		h.Login(rec, httptest.NewRequest("POST", "/login", bytes.NewReader(corpo)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "email %s", c.Email)
	}
}

func TestCriarSemSenhaGeraTemporaria(t *testing.T) {
	db := bancoDeTeste(t)
	h := NewHandler(db)

	corpo, _ := json.Marshal(map[string]any{"nome": "Novo", "email": "novo@impacto.com"})
	rec := httptest.NewRecorder()
	h.Criar(rec, httptest.NewRequest("POST", "/operadores", bytes.NewReader(corpo)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Operador        Operador `json:"operador"`
		SenhaTemporaria string   `json:"senhaTemporaria"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.SenhaTemporaria, 12)

	// A senha temporária de fato autentica.
	var salvo Operador
	require.NoError(t, db.First(&salvo, resp.Operador.ID).Error)
	assert.True(t, utils.CheckSenha(salvo.Senha, resp.SenhaTemporaria))
}

func TestCriarComSenhaNaoDevolveTemporaria(t *testing.T) {
	db := bancoDeTeste(t)
	h := NewHandler(db)

	corpo, _ := json.Marshal(map[string]any{"nome": "Novo", "email": "novo@impacto.com", "senha": "escolhida1"})
	rec := httptest.NewRecorder()
	h.Criar(rec, httptest.NewRequest("POST", "/operadores", bytes.NewReader(corpo)))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "senhaTemporaria")
}

func TestAtualizarExigeDonoOuAdmin(t *testing.T) {
	db := bancoDeTeste(t)
	h := NewHandler(db)
	alvo := criarOperadorDeTeste(t, db, "segredo123")

	corpo, _ := json.Marshal(map[string]any{"nome": "Maria Silva"})
	req := httptest.NewRequest("PUT", "/operadores/1", bytes.NewReader(corpo))
	req = mux.SetURLVars(req, map[string]string{"id": "1"})

	// Outro operador comum não pode editar.
	ctx := context.WithValue(req.Context(), auth.CtxOperadorID, uint(77))
	rec := httptest.NewRecorder()
	h.Atualizar(rec, req.WithContext(ctx))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// O próprio dono pode.
	corpo, _ = json.Marshal(map[string]any{"nome": "Maria Silva"})
	req = httptest.NewRequest("PUT", "/operadores/1", bytes.NewReader(corpo))
	req = mux.SetURLVars(req, map[string]string{"id": "1"})
	ctx = context.WithValue(req.Context(), auth.CtxOperadorID, alvo.ID)
	rec = httptest.NewRecorder()
	h.Atualizar(rec, req.WithContext(ctx))
	require.Equal(t, http.StatusOK, rec.Code)

	var salvo Operador
	require.NoError(t, db.First(&salvo, alvo.ID).Error)
	assert.Equal(t, "Maria Silva", salvo.Nome)
}
