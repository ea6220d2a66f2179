package notificacao

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/impactox/api-capitacao/internal/models"
	"github.com/impactox/api-capitacao/internal/registro"
	"gorm.io/gorm"
)

type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

// POST /notificacoes/varredura — disparo manual da varredura diária.
func (h *Handler) Varredura(w http.ResponseWriter, r *http.Request) {
	avisados, err := VerificarVencimentos(h.DB, time.Now())
	if err != nil {
		http.Error(w, "Erro na varredura de vencimentos", http.StatusInternalServerError)
		return
	}
	registro.Gravar(h.DB, r.Context(), "Notificação",
		fmt.Sprintf("Varredura de vencimentos processou %d pontos", avisados), models.RegistroInfo)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"avisados": avisados})
}
