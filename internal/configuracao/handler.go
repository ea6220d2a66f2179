package configuracao

import (
	"encoding/json"
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

type atualizarRequest struct {
	NomeSistema string `json:"systemName"`
	LogoURL     string `json:"logoUrl"`
}

// GET /configuracoes
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	cfg, err := Carregar(h.DB)
	if err != nil {
		http.Error(w, "Erro ao carregar configurações", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cfg)
}

// PUT /configuracoes
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	cfg, err := Carregar(h.DB)
	if err != nil {
		http.Error(w, "Erro ao carregar configurações", http.StatusInternalServerError)
		return
	}
	var req atualizarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if req.NomeSistema != "" {
		cfg.NomeSistema = req.NomeSistema
	}
	if req.LogoURL != "" {
		cfg.LogoURL = req.LogoURL
	}
	if err := h.DB.Save(cfg).Error; err != nil {
		http.Error(w, "Erro ao salvar configurações", http.StatusInternalServerError)
		return
	}
	registro.Gravar(h.DB, r.Context(), "Configuração", "Ajustes do sistema atualizados", models.RegistroInfo)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cfg)
}

// POST /configuracoes/sincronizar — carimba a última sincronização.
func (h *Handler) Sincronizar(w http.ResponseWriter, r *http.Request) {
	cfg, err := Carregar(h.DB)
	if err != nil {
		http.Error(w, "Erro ao carregar configurações", http.StatusInternalServerError)
		return
	}
	cfg.UltimaSincronizacao = time.Now()
	if err := h.DB.Save(cfg).Error; err != nil {
		http.Error(w, "Erro ao sincronizar", http.StatusInternalServerError)
		return
	}
	registro.Gravar(h.DB, r.Context(), "Sincronização",
		"Banco de dados sincronizado e persistido", models.RegistroSucesso)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cfg)
}
