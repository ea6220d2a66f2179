package registro

import (
	"encoding/json"
	"net/http"

	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

// GET /registros
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	regs, err := h.Repository.Listar(h.DB)
	if err != nil {
		http.Error(w, "Erro ao listar registros", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(regs)
}
