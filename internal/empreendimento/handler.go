package empreendimento

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/impactox/api-capitacao/internal/capitacao"
	"github.com/impactox/api-capitacao/internal/models"
	"github.com/impactox/api-capitacao/internal/registro"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

// POST /empreendimentos
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var e Empreendimento
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if e.Nome == "" {
		http.Error(w, "Nome é obrigatório", http.StatusBadRequest)
		return
	}
	if e.Status == "" {
		e.Status = models.StatusAgendado
	}
	if e.Data == "" {
		e.Data = time.Now().Format("2006-01-02")
	}
	if err := h.Repository.Salvar(h.DB, &e); err != nil {
		http.Error(w, "Erro ao salvar empreendimento", http.StatusInternalServerError)
		return
	}
	registro.Gravar(h.DB, r.Context(), "Novo Cadastro",
		fmt.Sprintf("Novo empreendimento criado: %s", e.Nome), models.RegistroSucesso)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(e)
}

// GET /empreendimentos
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	lista, err := h.Repository.ListarTodos(h.DB)
	if err != nil {
		http.Error(w, "Erro ao listar empreendimentos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lista)
}

// GET /empreendimentos/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	e, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Empreendimento não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(e)
}

// PUT /empreendimentos/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	existente, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Empreendimento não encontrado", http.StatusNotFound)
		return
	}
	var e Empreendimento
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	existente.Nome = e.Nome
	existente.Profissional = e.Profissional
	existente.Telefone = e.Telefone
	existente.Email = e.Email
	existente.Status = e.Status
	existente.Data = e.Data
	if err := h.Repository.Salvar(h.DB, existente); err != nil {
		http.Error(w, "Erro ao atualizar empreendimento", http.StatusInternalServerError)
		return
	}
	registro.Gravar(h.DB, r.Context(), "Edição",
		fmt.Sprintf("Empreendimento %q atualizado", existente.Nome), models.RegistroInfo)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(existente)
}

// DELETE /empreendimentos/{id}
//
// A exclusão não cascateia nem é bloqueada: capitações vinculadas ficam
// órfãs, comportamento assumido do sistema. O total de órfãs entra no
// registro para o problema ao menos ficar visível.
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var orfas int64
	h.DB.Model(&capitacao.Capitacao{}).Where("empreendimento_id = ?", id).Count(&orfas)

	if err := h.Repository.Deletar(h.DB, uint(id)); err != nil {
		http.Error(w, "Erro ao excluir empreendimento", http.StatusInternalServerError)
		return
	}
	registro.Gravar(h.DB, r.Context(), "Exclusão",
		fmt.Sprintf("Empreendimento removido (%d capitações vinculadas permanecem)", orfas),
		models.RegistroAlerta)
	w.WriteHeader(http.StatusOK)
}
