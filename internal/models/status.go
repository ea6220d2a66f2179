// models/status.go
package models

// Convenção de status do ciclo de vida de uma capitação.
// "Inativo" nunca é atribuído automaticamente: somente por ação do operador.
const (
	StatusAtivo    = "ativo"
	StatusVencendo = "vencendo"
	StatusVencido  = "vencido"
	StatusInativo  = "inativo"
)

// Status de empreendimento (manuais, sem derivação).
const (
	StatusConcluido = "concluido"
	StatusAgendado  = "agendado"
)

// Tipos de entrada no registro de acessos.
const (
	RegistroInfo    = "info"
	RegistroSucesso = "success"
	RegistroAlerta  = "warning"
	RegistroErro    = "error"
)

// Janela em dias para classificar um contrato como "vencendo" na UI.
// Não confundir com a janela de 5 dias da varredura de notificações,
// que serve a outro propósito (aviso por webhook).
const JanelaVencendoDias = 30

// Antecedência em dias do aviso de vencimento enviado pela varredura diária.
const JanelaAvisoDias = 5
