package domain

import "time"

// ProductStatus representa o estado do ciclo de vida de um produto
type ProductStatus string

const (
	ProductStatusDraft    ProductStatus = "draft"
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// ProductTerms representa as condições financeiras de um produto
type ProductTerms struct {
	Rate           float64 `json:"rate"`
	MinAmount      float64 `json:"min_amount"`
	MaxAmount      float64 `json:"max_amount"`
	DurationMonths int     `json:"duration_months"`
}

type Product struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Category    string        `json:"category"`
	Description string        `json:"description"`
	Terms       ProductTerms  `json:"terms"`
	Status      ProductStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	DeletedAt   *time.Time    `json:"deleted_at,omitempty"`
}

// UpdateProductRequest contém os campos que podem ser alterados em um produto.
// Campos nulos são ignorados na atualização.
type UpdateProductRequest struct {
	Name        *string        `json:"name"`
	Category    *string        `json:"category"`
	Description *string        `json:"description"`
	Terms       *ProductTerms  `json:"terms"`
	Status      *ProductStatus `json:"status"`
}

// ProductFilters restringe a listagem de produtos
type ProductFilters struct {
	Status   ProductStatus
	Category string
	Search   string
}

// ProductStatistics agrega contagens do catálogo de produtos
type ProductStatistics struct {
	Total      int            `json:"total"`
	ByStatus   map[string]int `json:"by_status"`
	ByCategory map[string]int `json:"by_category"`
	Oldest     *Product       `json:"oldest,omitempty"`
	Newest     *Product       `json:"newest,omitempty"`
}
