package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/impactox/api-capitacao/internal/auth"
	"github.com/impactox/api-capitacao/internal/capitacao"
	"github.com/impactox/api-capitacao/internal/configuracao"
	"github.com/impactox/api-capitacao/internal/empreendimento"
	"github.com/impactox/api-capitacao/internal/models"
	"github.com/impactox/api-capitacao/internal/operador"
	"github.com/impactox/api-capitacao/internal/registro"
	"gorm.io/gorm"
)

// corpo máximo aceito na importação (snapshots carregam logos em data-URL)
const limiteCorpo = 32 << 20

type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

// GET /snapshot — monta o pacote completo de backup.
func (h *Handler) Exportar(w http.ResponseWriter, r *http.Request) {
	cfg, err := configuracao.Carregar(h.DB)
	if err != nil {
		http.Error(w, "Erro ao carregar configurações", http.StatusInternalServerError)
		return
	}

	var snap Snapshot
	snap.DBID = cfg.DBID
	snap.Timestamp = time.Now()
	snap.Version = Versao
	snap.SystemName = cfg.NomeSistema
	snap.LogoURL = cfg.LogoURL

	if err := h.DB.Order("id ASC").Find(&snap.Users).Error; err != nil {
		http.Error(w, "Erro ao exportar operadores", http.StatusInternalServerError)
		return
	}
	if err := h.DB.Order("created_at DESC, id DESC").Find(&snap.Capitacoes).Error; err != nil {
		http.Error(w, "Erro ao exportar capitações", http.StatusInternalServerError)
		return
	}
	if err := h.DB.Order("created_at DESC, id DESC").Find(&snap.Empreendimentos).Error; err != nil {
		http.Error(w, "Erro ao exportar empreendimentos", http.StatusInternalServerError)
		return
	}
	if err := h.DB.Order("timestamp DESC").Find(&snap.AccessLogs).Error; err != nil {
		http.Error(w, "Erro ao exportar registros", http.StatusInternalServerError)
		return
	}

	registro.Gravar(h.DB, r.Context(), "Backup", "Snapshot completo exportado", models.RegistroInfo)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=snapshot_%s.json", snap.Timestamp.Format("2006-01-02")))
	json.NewEncoder(w).Encode(snap)
}

type importacaoResponse struct {
	Capitacoes      int  `json:"capitacoes"`
	Empreendimentos int  `json:"empreendimentos"`
	Operadores      int  `json:"operadores"`
	SessaoEncerrada bool `json:"sessaoEncerrada"`
}

// POST /snapshot/importar — restauração total. Interpreta e valida o corpo
// inteiro antes de qualquer escrita; a aplicação acontece numa transação
// única, então uma falha no meio não deixa estado parcial.
func (h *Handler) Importar(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, limiteCorpo))
	if err != nil {
		http.Error(w, "Erro ao ler o arquivo de snapshot", http.StatusBadRequest)
		return
	}

	imp, err := Interpretar(raw, time.Now())
	if err != nil {
		http.Error(w, "Falha ao processar os dados do snapshot. Verifique o arquivo.", http.StatusBadRequest)
		return
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if imp.TemCapitacoes {
			if err := substituirColecao(tx, &capitacao.Capitacao{}); err != nil {
				return err
			}
			for i := range imp.Capitacoes {
				if err := tx.Create(&imp.Capitacoes[i]).Error; err != nil {
					return err
				}
			}
		}
		if imp.TemEmpreendimentos {
			if err := substituirColecao(tx, &empreendimento.Empreendimento{}); err != nil {
				return err
			}
			for i := range imp.Empreendimentos {
				if err := tx.Create(&imp.Empreendimentos[i]).Error; err != nil {
					return err
				}
			}
		}
		if imp.TemOperadores {
			if err := substituirColecao(tx, &operador.Operador{}); err != nil {
				return err
			}
			for i := range imp.Operadores {
				if err := tx.Create(&imp.Operadores[i]).Error; err != nil {
					return err
				}
			}
		}
		if imp.TemRegistros {
			if err := registro.NewRepository().SubstituirTodos(tx, imp.Registros); err != nil {
				return err
			}
		}
		if imp.NomeSistema != nil || imp.LogoURL != nil {
			cfg, err := configuracao.Carregar(tx)
			if err != nil {
				return err
			}
			if imp.NomeSistema != nil && *imp.NomeSistema != "" {
				cfg.NomeSistema = *imp.NomeSistema
			}
			if imp.LogoURL != nil && *imp.LogoURL != "" {
				cfg.LogoURL = *imp.LogoURL
			}
			if err := tx.Save(cfg).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		http.Error(w, "Erro ao aplicar o snapshot", http.StatusInternalServerError)
		return
	}

	registro.Gravar(h.DB, r.Context(), "Restauração",
		"Restauração total do banco de dados concluída", models.RegistroSucesso)

	resp := importacaoResponse{
		Capitacoes:      len(imp.Capitacoes),
		Empreendimentos: len(imp.Empreendimentos),
		Operadores:      len(imp.Operadores),
		SessaoEncerrada: SessaoEncerrada(imp, auth.OperadorDoContexto(r.Context())),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// substituirColecao esvazia a tabela de vez (sem soft delete): a
// substituição é integral e os ids importados são preservados.
func substituirColecao(tx *gorm.DB, modelo interface{}) error {
	return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(modelo).Error
}
