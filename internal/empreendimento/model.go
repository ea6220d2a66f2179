package empreendimento

import "gorm.io/gorm"

// Empreendimento é a unidade organizacional dona de zero ou mais
// capitações. Status aqui é manual (concluido/agendado), sem derivação.
type Empreendimento struct {
	gorm.Model
	Nome         string `gorm:"size:255;not null" json:"nome"`
	Profissional string `json:"profissional"`
	Telefone     string `json:"telefone"`
	Email        string `json:"email"`
	Status       string `gorm:"size:20" json:"status"`
	Data         string `gorm:"size:10" json:"data"`
}

func (Empreendimento) TableName() string { return "empreendimentos" }
