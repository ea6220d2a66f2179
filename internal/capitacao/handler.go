package capitacao

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/impactox/api-capitacao/internal/auth"
	"github.com/impactox/api-capitacao/internal/cnpj"
	"github.com/impactox/api-capitacao/internal/models"
	"github.com/impactox/api-capitacao/internal/registro"
	"gorm.io/gorm"
)

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository

	// AlertaCNPJ, quando configurado, é disparado em segundo plano ao
	// detectar CNPJ duplicado (ligado ao webhook de notificação no main).
	AlertaCNPJ func(cnpj string)
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

// POST /capitacoes
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req criarCapitacaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if req.Nome == "" {
		http.Error(w, "Nome é obrigatório", http.StatusBadRequest)
		return
	}
	if !cnpj.Validar(req.CNPJ) {
		http.Error(w, "CNPJ inválido", http.StatusBadRequest)
		return
	}

	hoje := time.Now()
	c := Capitacao{
		Nome:             req.Nome,
		CNPJ:             cnpj.Normalizar(req.CNPJ),
		RazaoSocial:      req.RazaoSocial,
		NomeFantasia:     req.NomeFantasia,
		Endereco:         req.Endereco,
		ValorContratado:  req.ValorContratado,
		ValorRepassado:   req.ValorRepassado,
		DataInicio:       req.DataInicio,
		PeriodoMeses:     req.PeriodoMeses,
		EmpreendimentoID: req.EmpreendimentoID,
		Empreendimento:   req.Empreendimento,
		Renovado:         req.Renovado,
		OperadorID:       auth.OperadorDoContexto(r.Context()),
		Mes:              NomeMes(hoje),
		Data:             hoje.Format(formatoData),
	}
	if req.Status == models.StatusInativo {
		c.Status = models.StatusInativo
		c.StatusManual = true
	} else {
		c.Status = models.StatusAtivo
	}
	Derivar(&c, hoje)

	aviso := h.avisoDuplicata(c.CNPJ, 0)

	if err := h.Repository.Salvar(h.DB, &c); err != nil {
		http.Error(w, "Erro ao salvar capitação", http.StatusInternalServerError)
		return
	}
	registro.Gravar(h.DB, r.Context(), "Novo Cadastro",
		fmt.Sprintf("Nova capitação criada: %s", c.Nome), models.RegistroSucesso)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(respostaCapitacao{Capitacao: NovoDTO(c), Aviso: aviso})
}

// GET /capitacoes
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	lista, err := h.Repository.ListarTodas(h.DB)
	if err != nil {
		http.Error(w, "Erro ao listar capitações", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(NovosDTOs(lista))
}

// GET /capitacoes/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	c, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Capitação não encontrada", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(NovoDTO(*c))
}

// PUT /capitacoes/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	existente, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Capitação não encontrada", http.StatusNotFound)
		return
	}

	var req criarCapitacaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if !cnpj.Validar(req.CNPJ) {
		http.Error(w, "CNPJ inválido", http.StatusBadRequest)
		return
	}

	existente.Nome = req.Nome
	existente.CNPJ = cnpj.Normalizar(req.CNPJ)
	existente.RazaoSocial = req.RazaoSocial
	existente.NomeFantasia = req.NomeFantasia
	existente.Endereco = req.Endereco
	existente.ValorContratado = req.ValorContratado
	existente.ValorRepassado = req.ValorRepassado
	existente.DataInicio = req.DataInicio
	existente.PeriodoMeses = req.PeriodoMeses
	existente.EmpreendimentoID = req.EmpreendimentoID
	existente.Empreendimento = req.Empreendimento
	existente.Renovado = req.Renovado
	// Status não entra aqui: a troca manual tem rota própria, e a derivação
	// só reclassifica se a data de término mudar.
	Derivar(existente, time.Now())

	aviso := h.avisoDuplicata(existente.CNPJ, existente.ID)

	if err := h.Repository.Salvar(h.DB, existente); err != nil {
		http.Error(w, "Erro ao atualizar capitação", http.StatusInternalServerError)
		return
	}
	registro.Gravar(h.DB, r.Context(), "Edição",
		fmt.Sprintf("Capitação %q atualizada", existente.Nome), models.RegistroSucesso)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(respostaCapitacao{Capitacao: NovoDTO(*existente), Aviso: aviso})
}

// PATCH /capitacoes/{id}/status — única forma de fixar "inativo".
func (h *Handler) AtualizarStatus(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	existente, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Capitação não encontrada", http.StatusNotFound)
		return
	}

	var req atualizarStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	switch req.Status {
	case models.StatusAtivo, models.StatusVencendo, models.StatusVencido, models.StatusInativo:
	default:
		http.Error(w, "Status desconhecido", http.StatusBadRequest)
		return
	}

	existente.Status = req.Status
	existente.StatusManual = req.Status == models.StatusInativo

	if err := h.Repository.Salvar(h.DB, existente); err != nil {
		http.Error(w, "Erro ao atualizar status", http.StatusInternalServerError)
		return
	}
	registro.Gravar(h.DB, r.Context(), "Edição",
		fmt.Sprintf("Status da capitação %q definido para %s", existente.Nome, req.Status), models.RegistroInfo)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(NovoDTO(*existente))
}

// DELETE /capitacoes/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if err := h.Repository.Deletar(h.DB, uint(id)); err != nil {
		http.Error(w, "Erro ao excluir capitação", http.StatusInternalServerError)
		return
	}
	registro.Gravar(h.DB, r.Context(), "Exclusão", "Capitação removida", models.RegistroAlerta)
	w.WriteHeader(http.StatusOK)
}

// DELETE /capitacoes/inativas — descarta de uma vez os contratos inativos.
func (h *Handler) LimparInativas(w http.ResponseWriter, r *http.Request) {
	removidas, err := h.Repository.RemoverInativas(h.DB)
	if err != nil {
		http.Error(w, "Erro ao limpar capitações inativas", http.StatusInternalServerError)
		return
	}
	registro.Gravar(h.DB, r.Context(), "Exclusão",
		fmt.Sprintf("%d capitações inativas removidas", removidas), models.RegistroAlerta)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int64{"removidas": removidas})
}

// avisoDuplicata monta o aviso não bloqueante de CNPJ repetido. Duplicatas
// são permitidas; o registro é apenas sinalizado.
func (h *Handler) avisoDuplicata(cnpjNormalizado string, ignorarID uint) string {
	outra, err := h.Repository.BuscarOutraPorCNPJ(h.DB, cnpjNormalizado, ignorarID)
	if err != nil || outra == nil {
		return ""
	}
	if h.AlertaCNPJ != nil {
		go h.AlertaCNPJ(cnpjNormalizado)
	}
	return fmt.Sprintf("CNPJ já cadastrado na capitação %q (id %d)", outra.Nome, outra.ID)
}
