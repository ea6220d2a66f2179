package notificacao

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/impactox/api-capitacao/internal/capitacao"
	"github.com/impactox/api-capitacao/internal/models"
)

func bancoDeTeste(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&capitacao.Capitacao{}))
	return db
}

func TestVerificarVencimentos(t *testing.T) {
	hoje := time.Date(2026, time.March, 15, 8, 0, 0, 0, time.UTC)
	alvo := "2026-03-20"

	db := bancoDeTeste(t)
	pontos := []capitacao.Capitacao{
		{Nome: "Vence em 5 dias", DataTermino: alvo, Status: models.StatusVencendo},
		{Nome: "Já avisado", DataTermino: alvo, Status: models.StatusVencendo, AvisoVencimentoEnviado: true},
		{Nome: "Inativo", DataTermino: alvo, Status: models.StatusInativo, StatusManual: true},
		{Nome: "Vence em 10 dias", DataTermino: "2026-03-25", Status: models.StatusVencendo},
		{Nome: "Ativo na janela", DataTermino: alvo, Status: models.StatusAtivo},
	}
	for i := range pontos {
		require.NoError(t, db.Create(&pontos[i]).Error)
	}

	var avisados []string
	original := enviarAviso
	enviarAviso = func(nome, dataTermino string, dias int) {
		avisados = append(avisados, nome)
		assert.Equal(t, alvo, dataTermino)
		assert.Equal(t, models.JanelaAvisoDias, dias)
	}
	defer func() { enviarAviso = original }()

	total, err := VerificarVencimentos(db, hoje)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.ElementsMatch(t, []string{"Vence em 5 dias", "Ativo na janela"}, avisados)

	// A marca de envio persiste: rodar de novo não avisa ninguém.
	avisados = nil
	total, err = VerificarVencimentos(db, hoje)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, avisados)
}
