package domain

import "strings"

// Customer representa uma linha da planilha de clientes.
// A planilha é a fonte de verdade; o registro nunca é cacheado entre requisições.
type Customer struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	City      string `json:"city"`
	Profile   string `json:"profile"`
	Notes     string `json:"notes,omitempty"`
}

func (c Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
