package notificacao

import (
	"log"
	"time"

	"github.com/impactox/api-capitacao/internal/capitacao"
	"github.com/impactox/api-capitacao/internal/models"
	"gorm.io/gorm"
)

// enviarAviso é indireta para os testes substituírem o webhook real.
var enviarAviso = EnviarAlertaVencimento

// VerificarVencimentos procura pontos ativos que vencem exatamente daqui a
// 5 dias e ainda não foram avisados, dispara o alerta e marca o envio.
// A janela de 5 dias é a da notificação; não tem relação com o limiar de
// 30 dias que classifica um contrato como "vencendo" nas telas.
//
// Devolve quantos pontos foram processados nesta rodada.
func VerificarVencimentos(db *gorm.DB, hoje time.Time) (int, error) {
	alvo := hoje.AddDate(0, 0, models.JanelaAvisoDias).Format("2006-01-02")

	var pontos []capitacao.Capitacao
	err := db.Where("data_termino = ? AND status IN ? AND aviso_vencimento_enviado = ?",
		alvo, []string{models.StatusAtivo, models.StatusVencendo}, false).
		Find(&pontos).Error
	if err != nil {
		return 0, err
	}

	for i := range pontos {
		enviarAviso(pontos[i].Nome, pontos[i].DataTermino, models.JanelaAvisoDias)
		if err := db.Model(&pontos[i]).Update("aviso_vencimento_enviado", true).Error; err != nil {
			return i, err
		}
	}
	if len(pontos) > 0 {
		log.Printf("varredura de vencimentos: %d pontos avisados (término em %s)", len(pontos), alvo)
	}
	return len(pontos), nil
}
