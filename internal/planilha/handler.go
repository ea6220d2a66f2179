package planilha

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/impactox/api-capitacao/internal/capitacao"
	"github.com/impactox/api-capitacao/internal/models"
	"github.com/impactox/api-capitacao/internal/registro"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository capitacao.Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: capitacao.NewRepository()}
}

// POST /capitacoes/importar-planilha
//
// Caminho aditivo: as linhas importadas entram NA FRENTE da coleção atual,
// nada é substituído nem removido. É deliberadamente diferente da
// restauração de snapshot, que troca coleções inteiras.
func (h *Handler) Importar(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Upload inválido", http.StatusBadRequest)
		return
	}
	arquivo, _, err := r.FormFile("arquivo")
	if err != nil {
		http.Error(w, "Arquivo de planilha ausente", http.StatusBadRequest)
		return
	}
	defer arquivo.Close()

	novas, err := LerCapitacoes(arquivo, time.Now())
	if err != nil {
		http.Error(w, "Falha ao ler a planilha. Verifique o arquivo.", http.StatusBadRequest)
		return
	}

	// Tudo ou nada: uma linha inválida no meio não pode deixar metade
	// importada.
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		for i := range novas {
			if err := tx.Create(&novas[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		http.Error(w, "Erro ao gravar os pontos importados", http.StatusInternalServerError)
		return
	}

	registro.Gravar(h.DB, r.Context(), "Importação Excel",
		fmt.Sprintf("%d novos pontos adicionados via planilha", len(novas)), models.RegistroSucesso)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]int{"importadas": len(novas)})
}

// GET /capitacoes/exportar-planilha
func (h *Handler) Exportar(w http.ResponseWriter, r *http.Request) {
	capitacoes, err := h.Repository.ListarTodas(h.DB)
	if err != nil {
		http.Error(w, "Erro ao listar capitações", http.StatusInternalServerError)
		return
	}
	f, err := GerarPlanilha(capitacoes)
	if err != nil {
		http.Error(w, "Erro ao gerar a planilha", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=capitacoes_%s.xlsx", time.Now().Format("2006-01-02")))
	if err := f.Write(w); err != nil {
		http.Error(w, "Erro ao enviar a planilha", http.StatusInternalServerError)
	}
}
