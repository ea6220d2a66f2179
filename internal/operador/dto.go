package operador

// request DTOs
type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type criarOperadorRequest struct {
	Nome    string `json:"nome"`
	Email   string `json:"email"`
	Cargo   string `json:"cargo"`
	Avatar  string `json:"avatar"`
	Cor     string `json:"cor"`
	Senha   string `json:"senha"`
	IsAdmin bool   `json:"isAdmin"`
}

type atualizarOperadorRequest struct {
	Nome   string `json:"nome"`
	Cargo  string `json:"cargo"`
	Avatar string `json:"avatar"`
	Cor    string `json:"cor"`
	Senha  string `json:"senha"` // vazio mantém a senha atual
}

type loginResponse struct {
	Token    string   `json:"token"`
	Operador Operador `json:"operador"`
}

// criadoResponse devolve a senha temporária gerada quando o cadastro
// veio sem senha, para ser repassada ao novo operador.
type criadoResponse struct {
	Operador        Operador `json:"operador"`
	SenhaTemporaria string   `json:"senhaTemporaria,omitempty"`
}
