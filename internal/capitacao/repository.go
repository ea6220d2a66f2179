package capitacao

import (
	"github.com/impactox/api-capitacao/internal/models"
	"gorm.io/gorm"
)

type Repository interface {
	Salvar(db *gorm.DB, c *Capitacao) error
	ListarTodas(db *gorm.DB) ([]Capitacao, error)
	BuscarPorID(db *gorm.DB, id uint) (*Capitacao, error)
	BuscarOutraPorCNPJ(db *gorm.DB, cnpj string, ignorarID uint) (*Capitacao, error)
	Deletar(db *gorm.DB, id uint) error
	RemoverInativas(db *gorm.DB) (int64, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, c *Capitacao) error {
	if c.ID == 0 {
		return db.Create(c).Error
	}
	return db.Save(c).Error
}

// ListarTodas devolve os contratos do mais recente para o mais antigo,
// mesma ordem em que as telas os empilham.
func (r *repositoryImpl) ListarTodas(db *gorm.DB) ([]Capitacao, error) {
	var capitacoes []Capitacao
	err := db.Order("created_at DESC, id DESC").Find(&capitacoes).Error
	return capitacoes, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Capitacao, error) {
	var c Capitacao
	err := db.First(&c, id).Error
	return &c, err
}

// BuscarOutraPorCNPJ procura um registro diferente de ignorarID com o mesmo
// CNPJ normalizado. Resultado nil sem erro significa "não há duplicata".
func (r *repositoryImpl) BuscarOutraPorCNPJ(db *gorm.DB, cnpj string, ignorarID uint) (*Capitacao, error) {
	var c Capitacao
	err := db.Where("cnpj = ? AND id <> ?", cnpj, ignorarID).First(&c).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Capitacao{}, id).Error
}

// RemoverInativas descarta todos os contratos fixados como inativos e
// devolve quantos foram removidos.
func (r *repositoryImpl) RemoverInativas(db *gorm.DB) (int64, error) {
	res := db.Where("status = ?", models.StatusInativo).Delete(&Capitacao{})
	return res.RowsAffected, res.Error
}
