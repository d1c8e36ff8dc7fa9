package domain

import "time"

// GeneratedEmail é o corpo de e-mail produzido para um match, seja pela
// geração de conteúdo via IA, seja pelo template determinístico de fallback.
type GeneratedEmail struct {
	CustomerID string `json:"customer_id"`
	ProductID  string `json:"product_id"`
	Subject    string `json:"subject"`
	BodyHTML   string `json:"body_html"`
	BodyText   string `json:"body_text,omitempty"`
	OfferCode  string `json:"offer_code,omitempty"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
}

// SendResult é o desfecho do envio para um destinatário
type SendResult struct {
	CustomerID string     `json:"customer_id"`
	Email      string     `json:"email,omitempty"`
	Subject    string     `json:"subject,omitempty"`
	Success    bool       `json:"success"`
	MessageID  string     `json:"message_id,omitempty"`
	Error      string     `json:"error,omitempty"`
	SentAt     *time.Time `json:"sent_at,omitempty"`
}

// DispatchSummary agrega os desfechos de uma rodada de disparo.
// Attempted conta apenas os matches válidos que entraram no pipeline;
// matches que já chegaram com falha aparecem somente em Total.
type DispatchSummary struct {
	Total     int `json:"total"`
	Attempted int `json:"attempted"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// DispatchResult é o retorno final de uma rodada de disparo: um resultado
// por match de entrada, na mesma ordem, mais o resumo agregado.
type DispatchResult struct {
	CampaignID string          `json:"campaign_id"`
	Results    []SendResult    `json:"results"`
	Summary    DispatchSummary `json:"summary"`
}
