package registro

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/impactox/api-capitacao/internal/auth"
	"gorm.io/gorm"
)

type Repository interface {
	Inserir(db *gorm.DB, reg *Registro) error
	Listar(db *gorm.DB) ([]Registro, error)
	SubstituirTodos(db *gorm.DB, regs []Registro) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

// Inserir grava a entrada e poda o que passar do limite de retenção.
func (r *repositoryImpl) Inserir(db *gorm.DB, reg *Registro) error {
	if reg.ID == "" {
		reg.ID = uuid.NewString()
	}
	if reg.Timestamp.IsZero() {
		reg.Timestamp = time.Now()
	}
	if err := db.Create(reg).Error; err != nil {
		return err
	}
	// Mantém apenas as entradas mais recentes.
	sub := db.Model(&Registro{}).Select("id").Order("timestamp DESC, id DESC").Limit(Limite)
	return db.Where("id NOT IN (?)", sub).Delete(&Registro{}).Error
}

func (r *repositoryImpl) Listar(db *gorm.DB) ([]Registro, error) {
	var regs []Registro
	err := db.Order("timestamp DESC, id DESC").Limit(Limite).Find(&regs).Error
	return regs, err
}

func (r *repositoryImpl) SubstituirTodos(db *gorm.DB, regs []Registro) error {
	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Registro{}).Error; err != nil {
		return err
	}
	if len(regs) == 0 {
		return nil
	}
	return db.Create(&regs).Error
}

// Gravar é o atalho usado pelos handlers: resolve o operador autenticado
// e engole falhas do log (uma auditoria indisponível nunca derruba a
// operação registrada).
func Gravar(db *gorm.DB, ctx context.Context, acao, detalhes, tipo string) {
	reg := Registro{
		Acao:     acao,
		Detalhes: detalhes,
		Tipo:     tipo,
		Operador: nomeOperador(db, ctx),
	}
	if err := (&repositoryImpl{}).Inserir(db, &reg); err != nil {
		log.Printf("falha ao gravar registro de acesso: %v", err)
	}
}

func nomeOperador(db *gorm.DB, ctx context.Context) string {
	id := auth.OperadorDoContexto(ctx)
	if id == 0 {
		return "Sistema"
	}
	var nomes []string
	if err := db.Table("operadores").Where("id = ?", id).Pluck("nome", &nomes).Error; err != nil || len(nomes) == 0 {
		return "Sistema"
	}
	return nomes[0]
}
