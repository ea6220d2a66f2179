package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/impactox/api-capitacao/internal/auth"
	"github.com/impactox/api-capitacao/internal/capitacao"
	"github.com/impactox/api-capitacao/internal/configuracao"
	"github.com/impactox/api-capitacao/internal/empreendimento"
	"github.com/impactox/api-capitacao/internal/notificacao"
	"github.com/impactox/api-capitacao/internal/operador"
	"github.com/impactox/api-capitacao/internal/planilha"
	"github.com/impactox/api-capitacao/internal/registro"
	"github.com/impactox/api-capitacao/internal/snapshot"
	"github.com/impactox/api-capitacao/internal/utils"
	"github.com/impactox/api-capitacao/internal/utils/db"
	"github.com/jasonlvhit/gocron"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Arquivo .env não encontrado, usando variáveis do ambiente")
	}

	database, err := db.GetDB()
	if err != nil {
		log.Fatal("Erro ao conectar no banco:", err)
	}

	if err := database.AutoMigrate(
		&operador.Operador{},
		&empreendimento.Empreendimento{},
		&capitacao.Capitacao{},
		&registro.Registro{},
		&configuracao.Configuracao{},
	); err != nil {
		log.Fatal("Erro no AutoMigrate:", err)
	}

	if err := seedOperadorInicial(database); err != nil {
		log.Fatal("Erro ao criar operador inicial:", err)
	}
	if _, err := configuracao.Carregar(database); err != nil {
		log.Fatal("Erro ao carregar configurações:", err)
	}

	operadorHandler := operador.NewHandler(database)
	empreendimentoHandler := empreendimento.NewHandler(database)
	capitacaoHandler := capitacao.NewHandler(database)
	capitacaoHandler.AlertaCNPJ = notificacao.EnviarAlertaCNPJDuplicado
	registroHandler := registro.NewHandler(database)
	configuracaoHandler := configuracao.NewHandler(database)
	snapshotHandler := snapshot.NewHandler(database)
	planilhaHandler := planilha.NewHandler(database)
	notificacaoHandler := notificacao.NewHandler(database)

	r := mux.NewRouter()

	// Rotas públicas
	r.HandleFunc("/login", operadorHandler.Login).Methods("POST")
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	api := r.PathPrefix("/").Subrouter()
	api.Use(auth.MiddlewareAutenticacao)

	api.HandleFunc("/capitacoes", capitacaoHandler.Criar).Methods("POST")
	api.HandleFunc("/capitacoes", capitacaoHandler.Listar).Methods("GET")
	api.HandleFunc("/capitacoes/inativas", capitacaoHandler.LimparInativas).Methods("DELETE")
	api.HandleFunc("/capitacoes/importar-planilha", planilhaHandler.Importar).Methods("POST")
	api.HandleFunc("/capitacoes/exportar-planilha", planilhaHandler.Exportar).Methods("GET")
	api.HandleFunc("/capitacoes/{id}", capitacaoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/capitacoes/{id}", capitacaoHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/capitacoes/{id}/status", capitacaoHandler.AtualizarStatus).Methods("PATCH")
	api.HandleFunc("/capitacoes/{id}", capitacaoHandler.Deletar).Methods("DELETE")

	api.HandleFunc("/empreendimentos", empreendimentoHandler.Criar).Methods("POST")
	api.HandleFunc("/empreendimentos", empreendimentoHandler.Listar).Methods("GET")
	api.HandleFunc("/empreendimentos/{id}", empreendimentoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/empreendimentos/{id}", empreendimentoHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/empreendimentos/{id}", empreendimentoHandler.Deletar).Methods("DELETE")

	// Criação e remoção de operadores restritas a administradores
	api.Handle("/operadores", auth.RequireAdmin(http.HandlerFunc(operadorHandler.Criar))).Methods("POST")
	api.HandleFunc("/operadores", operadorHandler.Listar).Methods("GET")
	api.HandleFunc("/operadores/{id}", operadorHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/operadores/{id}", operadorHandler.Atualizar).Methods("PUT")
	api.Handle("/operadores/{id}", auth.RequireAdmin(http.HandlerFunc(operadorHandler.Deletar))).Methods("DELETE")

	api.HandleFunc("/registros", registroHandler.Listar).Methods("GET")
	api.HandleFunc("/configuracoes", configuracaoHandler.Buscar).Methods("GET")
	api.HandleFunc("/configuracoes", configuracaoHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/configuracoes/sincronizar", configuracaoHandler.Sincronizar).Methods("POST")
	api.HandleFunc("/snapshot", snapshotHandler.Exportar).Methods("GET")
	api.HandleFunc("/snapshot/importar", snapshotHandler.Importar).Methods("POST")
	api.HandleFunc("/notificacoes/varredura", notificacaoHandler.Varredura).Methods("POST")

	// Varredura diária: avisa 5 dias antes do término de cada capitação
	go agendarVarredura(database)

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(r)

	fmt.Println("Servidor rodando em http://localhost:8080")
	log.Fatal(http.ListenAndServe(":8080", handler))
}

// seedOperadorInicial garante um administrador na primeira execução.
func seedOperadorInicial(database *gorm.DB) error {
	repo := operador.NewRepository()
	total, err := repo.Contar(database)
	if err != nil || total > 0 {
		return err
	}

	senha := os.Getenv("ADMIN_SENHA")
	if senha == "" {
		senha = "admin123"
		log.Println("ADMIN_SENHA não definida, operador inicial criado com senha padrão")
	}
	hash, err := utils.HashSenha(senha)
	if err != nil {
		return err
	}
	return repo.Salvar(database, &operador.Operador{
		Nome:    "Administrador",
		Email:   "admin@impacto.com",
		Cargo:   "Diretor de Operações",
		Cor:     "from-sky-500 to-blue-700",
		Senha:   hash,
		IsAdmin: true,
	})
}

func agendarVarredura(database *gorm.DB) {
	gocron.Every(1).Day().At("08:00").Do(func() {
		if _, err := notificacao.VerificarVencimentos(database, time.Now()); err != nil {
			log.Printf("Varredura de vencimentos falhou: %v", err)
		}
	})
	<-gocron.Start()
}
