package operador

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/impactox/api-capitacao/internal/auth"
	"github.com/impactox/api-capitacao/internal/models"
	"github.com/impactox/api-capitacao/internal/registro"
	"github.com/impactox/api-capitacao/internal/utils"
	"gorm.io/gorm"
)

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

// Login gera um JWT para credenciais válidas
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	op, err := h.Repository.BuscarPorEmail(h.DB, req.Email)
	if err != nil {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}
	if !utils.CheckSenha(op.Senha, req.Senha) {
		http.Error(w, "senha incorreta", http.StatusUnauthorized)
		return
	}

	token, err := auth.GerarToken(op.ID, op.IsAdmin)
	if err != nil {
		http.Error(w, "erro ao gerar token", http.StatusInternalServerError)
		return
	}
	registro.Gravar(h.DB, r.Context(), "Segurança",
		fmt.Sprintf("Login realizado com sucesso por %s", op.Nome), models.RegistroSucesso)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(loginResponse{Token: token, Operador: *op})
}

// Criar cadastra um novo operador (somente administradores).
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req criarOperadorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if req.Nome == "" || req.Email == "" {
		http.Error(w, "Nome e email são obrigatórios", http.StatusBadRequest)
		return
	}

	senhaTemporaria := ""
	if req.Senha == "" {
		gerada, err := utils.GerarSenhaTemporaria()
		if err != nil {
			http.Error(w, "erro ao gerar senha", http.StatusInternalServerError)
			return
		}
		req.Senha = gerada
		senhaTemporaria = gerada
	}
	hash, err := utils.HashSenha(req.Senha)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}

	o := Operador{
		Nome:    req.Nome,
		Email:   req.Email,
		Cargo:   req.Cargo,
		Avatar:  req.Avatar,
		Cor:     req.Cor,
		Senha:   hash,
		IsAdmin: req.IsAdmin,
	}
	if err := h.Repository.Salvar(h.DB, &o); err != nil {
		http.Error(w, "erro ao salvar operador", http.StatusInternalServerError)
		return
	}
	registro.Gravar(h.DB, r.Context(), "Gestão Equipe",
		fmt.Sprintf("Novo operador cadastrado: %s", o.Nome), models.RegistroSucesso)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(criadoResponse{Operador: o, SenhaTemporaria: senhaTemporaria})
}

// Listar devolve todos os operadores (sem hashes de senha).
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	lista, err := h.Repository.ListarTodos(h.DB)
	if err != nil {
		http.Error(w, "Erro ao listar operadores", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lista)
}

// GET /operadores/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	o, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Operador não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(o)
}

// Atualizar altera o próprio perfil, ou qualquer perfil quando admin.
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	solicitante := auth.OperadorDoContexto(r.Context())
	isAdmin, _ := r.Context().Value(auth.CtxIsAdmin).(bool)
	if uint(id) != solicitante && !isAdmin {
		http.Error(w, "Sem permissão para editar este operador", http.StatusForbidden)
		return
	}

	existente, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Operador não encontrado", http.StatusNotFound)
		return
	}

	var req atualizarOperadorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	existente.Nome = req.Nome
	existente.Cargo = req.Cargo
	existente.Avatar = req.Avatar
	existente.Cor = req.Cor
	if req.Senha != "" {
		hash, err := utils.HashSenha(req.Senha)
		if err != nil {
			http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
			return
		}
		existente.Senha = hash
	}
	if err := h.Repository.Salvar(h.DB, existente); err != nil {
		http.Error(w, "erro ao atualizar operador", http.StatusInternalServerError)
		return
	}
	registro.Gravar(h.DB, r.Context(), "Gestão Equipe",
		fmt.Sprintf("Dados do operador %s atualizados", existente.Nome), models.RegistroInfo)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(existente)
}

// Deletar remove um operador (somente administradores). Remover o próprio
// operador da sessão é permitido: o token simplesmente deixa de resolver.
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	alvo, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Operador não encontrado", http.StatusNotFound)
		return
	}
	if err := h.Repository.Deletar(h.DB, uint(id)); err != nil {
		http.Error(w, "erro ao excluir operador", http.StatusInternalServerError)
		return
	}
	registro.Gravar(h.DB, r.Context(), "Gestão Equipe",
		fmt.Sprintf("Operador %s removido", alvo.Nome), models.RegistroAlerta)
	w.WriteHeader(http.StatusOK)
}
