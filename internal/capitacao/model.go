package capitacao

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Capitacao representa um ponto de captação contratado e carrega tanto os
// campos digitados quanto os derivados (margem, percentual, data de término
// e status automático). Os derivados nunca são editados diretamente: são
// recalculados a cada gravação a partir dos demais campos.
type Capitacao struct {
	gorm.Model

	Nome         string `gorm:"size:255;not null" json:"nome"`
	CNPJ         string `gorm:"size:14;index" json:"cnpj"` // armazenado normalizado (apenas dígitos)
	RazaoSocial  string `json:"razaoSocial"`
	NomeFantasia string `json:"nomeFantasia"`
	Endereco     string `json:"endereco"`

	ValorContratado  decimal.Decimal `gorm:"type:numeric;not null" json:"valorContratado"`
	ValorRepassado   decimal.Decimal `gorm:"type:numeric;not null" json:"valorRepassado"`
	Margem           decimal.Decimal `gorm:"type:numeric" json:"margem"`           // derivado: repassado - contratado
	MargemPercentual decimal.Decimal `gorm:"type:numeric" json:"margemPercentual"` // derivado

	DataInicio   string `gorm:"size:10" json:"dataInicio"` // AAAA-MM-DD, pode ficar vazio
	PeriodoMeses int    `gorm:"not null;default:0" json:"periodoMeses"`
	DataTermino  string `gorm:"size:10;index" json:"dataTermino"` // derivado; vazio quando DataInicio é vazio/inválida

	// Status tem duas superfícies de controle: a automática (ativo/vencendo/
	// vencido, função pura de DataTermino + hoje) e a manual ("inativo",
	// fixado pelo operador). StatusManual=true indica a segunda.
	Status       string `gorm:"size:20;index" json:"status"`
	StatusManual bool   `json:"statusManual"`

	EmpreendimentoID uint   `gorm:"index" json:"empreendimentoId"`
	Empreendimento   string `json:"empreendimento"` // nome denormalizado para exibição

	Renovado               bool `json:"renovado"`
	AvisoVencimentoEnviado bool `json:"aviso5DiasEnviado"` // marcado pela varredura diária

	OperadorID uint `gorm:"index" json:"operadorId"`

	Mes  string `gorm:"size:3" json:"mes"`   // carimbo do mês de cadastro ("Jan".."Dez")
	Data string `gorm:"size:10" json:"data"` // carimbo da data de cadastro
}
