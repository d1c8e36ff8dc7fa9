package domain

// Match representa a recomendação de um produto para um cliente.
// É um dado efêmero: produzido por requisição e nunca persistido.
type Match struct {
	Customer   Customer `json:"customer"`
	Product    *Product `json:"product,omitempty"`
	Confidence float64  `json:"confidence"`
	Rationale  string   `json:"rationale,omitempty"`
	Success    bool     `json:"success"`
	Error      string   `json:"error,omitempty"`
}
