package cataloging

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto do catálogo de produtos
var (
	ErrValidation        = errors.New("produto com campos obrigatórios ausentes")
	ErrNotFound          = errors.New("produto não encontrado")
	ErrDuplicate         = errors.New("identificador de produto já cadastrado")
	ErrUnsupportedFormat = errors.New("formato de exportação desconhecido")

	// Erros de armazenamento
	ErrStorageOperation = errors.New("erro ao acessar o armazenamento de produtos")
)

// CatalogError é um erro com contexto adicional para o catálogo
type CatalogError struct {
	Err       error  // Erro base
	Code      string // Código de erro para API
	ProductID string // ID do produto envolvido (quando aplicável)
	Details   string // Detalhes adicionais
}

// Error implementa a interface error
func (e *CatalogError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *CatalogError) Unwrap() error {
	return e.Err
}

// NewCatalogError cria um novo CatalogError
func NewCatalogError(err error, code string, details string) *CatalogError {
	return &CatalogError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewCatalogErrorWithID cria um novo CatalogError com ID do produto
func NewCatalogErrorWithID(err error, code string, productID string, details string) *CatalogError {
	return &CatalogError{
		Err:       err,
		Code:      code,
		ProductID: productID,
		Details:   details,
	}
}
