package notificacao

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"os"
)

// URL do provedor de mensagens (Z-API, Twilio etc.), configurável por
// ambiente. Vazia desativa o envio — os alertas só aparecem no log.
func webhookURL() string {
	return os.Getenv("WEBHOOK_URL")
}

// EnviarAlertaCNPJDuplicado avisa que um CNPJ já cadastrado foi usado em
// outro registro. Fire-and-forget: falha de entrega não interrompe nada.
func EnviarAlertaCNPJDuplicado(cnpj string) {
	enviar(map[string]string{
		"mensagem": "Alerta: nova capitação registrada com CNPJ já existente",
		"cnpj":     cnpj,
	})
}

// EnviarAlertaVencimento notifica que um ponto vence em poucos dias.
func EnviarAlertaVencimento(nome, dataTermino string, diasRestantes int) {
	enviar(map[string]any{
		"mensagem": "⚠️ Alerta de vencimento",
		"detalhes": "O ponto de captação " + nome + " vence em " + dataTermino + ". Verifique no aplicativo.",
		"ponto":    nome,
		"vence":    dataTermino,
		"dias":     diasRestantes,
	})
}

func enviar(payload any) {
	url := webhookURL()
	body, _ := json.Marshal(payload)
	if url == "" {
		log.Printf("webhook desativado, alerta não enviado: %s", body)
		return
	}
	resp, err := http.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		log.Printf("Erro ao enviar webhook: %v", err)
		return
	}
	defer resp.Body.Close()
}
