package operador

import "gorm.io/gorm"

type Repository interface {
	Salvar(db *gorm.DB, o *Operador) error
	ListarTodos(db *gorm.DB) ([]Operador, error)
	BuscarPorID(db *gorm.DB, id uint) (*Operador, error)
	BuscarPorEmail(db *gorm.DB, email string) (*Operador, error)
	Deletar(db *gorm.DB, id uint) error
	Contar(db *gorm.DB) (int64, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, o *Operador) error {
	if o.ID == 0 {
		return db.Create(o).Error
	}
	return db.Save(o).Error
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Operador, error) {
	var operadores []Operador
	err := db.Order("id ASC").Find(&operadores).Error
	return operadores, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Operador, error) {
	var o Operador
	err := db.First(&o, id).Error
	return &o, err
}

func (r *repositoryImpl) BuscarPorEmail(db *gorm.DB, email string) (*Operador, error) {
	var o Operador
	err := db.Where("email = ?", email).First(&o).Error
	return &o, err
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Operador{}, id).Error
}

func (r *repositoryImpl) Contar(db *gorm.DB) (int64, error) {
	var n int64
	err := db.Model(&Operador{}).Count(&n).Error
	return n, err
}
