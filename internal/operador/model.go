package operador

import "gorm.io/gorm"

// Operador é o perfil de usuário do sistema: quem cadastra e edita os
// pontos. Avatar e Cor alimentam a tela de seleção de perfil.
type Operador struct {
	gorm.Model
	Nome    string `gorm:"size:255;not null" json:"nome"`
	Email   string `gorm:"uniqueIndex;size:255" json:"email"`
	Cargo   string `json:"cargo"`
	Avatar  string `json:"avatar"`
	Cor     string `json:"cor"`
	Senha   string `json:"-"`
	IsAdmin bool   `json:"isAdmin"`
}

func (Operador) TableName() string { return "operadores" }
