package empreendimento

import "gorm.io/gorm"

type Repository interface {
	Salvar(db *gorm.DB, e *Empreendimento) error
	ListarTodos(db *gorm.DB) ([]Empreendimento, error)
	BuscarPorID(db *gorm.DB, id uint) (*Empreendimento, error)
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, e *Empreendimento) error {
	if e.ID == 0 {
		return db.Create(e).Error
	}
	return db.Save(e).Error
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Empreendimento, error) {
	var empreendimentos []Empreendimento
	err := db.Order("created_at DESC, id DESC").Find(&empreendimentos).Error
	return empreendimentos, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Empreendimento, error) {
	var e Empreendimento
	err := db.First(&e, id).Error
	return &e, err
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Empreendimento{}, id).Error
}
