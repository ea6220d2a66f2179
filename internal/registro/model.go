package registro

import "time"

// Registro é uma entrada do log de acessos e ações exibido na tela de
// configurações. Apenas as 100 entradas mais recentes são mantidas.
type Registro struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
	Acao      string    `gorm:"size:100" json:"acao"`
	Detalhes  string    `json:"detalhes"`
	Tipo      string    `gorm:"size:10" json:"tipo"` // info | success | warning | error
	Operador  string    `json:"operador,omitempty"`
}

func (Registro) TableName() string { return "registros" }

// Limite de entradas retidas no log.
const Limite = 100
