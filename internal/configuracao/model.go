package configuracao

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Configuracao é a linha única de ajustes do sistema: identidade do banco
// (DBID acompanha os snapshots exportados), nome exibido, logotipo e o
// carimbo da última sincronização.
type Configuracao struct {
	ID                  uint      `gorm:"primaryKey" json:"-"`
	DBID                string    `gorm:"size:36" json:"dbId"`
	NomeSistema         string    `json:"systemName"`
	LogoURL             string    `json:"logoUrl"`
	UltimaSincronizacao time.Time `json:"ultimaSincronizacao"`
}

func (Configuracao) TableName() string { return "configuracoes" }

// Carregar devolve a linha de configuração, criando-a com os padrões na
// primeira execução.
func Carregar(db *gorm.DB) (*Configuracao, error) {
	var cfg Configuracao
	err := db.First(&cfg).Error
	if err == gorm.ErrRecordNotFound {
		cfg = Configuracao{
			DBID:                uuid.NewString(),
			NomeSistema:         "Impacto X",
			UltimaSincronizacao: time.Now(),
		}
		if err := db.Create(&cfg).Error; err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
