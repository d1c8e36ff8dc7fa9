package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Códigos de erro retornados pela API
const (
	// Erros de autenticação (1000-1999)
	ErrInvalidCredentials    = "AUTH_001" // Credenciais inválidas
	ErrUserDisabled          = "AUTH_002" // Usuário desativado
	ErrUserNotFound          = "AUTH_003" // Usuário não encontrado
	ErrInvalidToken          = "AUTH_004" // Token inválido
	ErrExpiredToken          = "AUTH_005" // Token expirado
	ErrInsufficientPrivilege = "AUTH_006" // Privilégios insuficientes
	ErrUserAlreadyExists     = "AUTH_007" // Usuário já existe

	// Erros de validação (2000-2999)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido

	// Erros do catálogo de produtos (3000-3999)
	ErrProductValidation  = "CAT_001" // Produto com campos obrigatórios ausentes
	ErrProductNotFound    = "CAT_002" // Produto não encontrado
	ErrProductDuplicate   = "CAT_003" // Identificador de produto já cadastrado
	ErrUnsupportedFormat  = "CAT_004" // Formato de exportação desconhecido
	ErrCustomerNotFound   = "CAT_005" // Cliente não encontrado na planilha
	ErrSpreadsheetFailure = "CAT_006" // Erro ao ler ou escrever a planilha

	// Erros de integração (4000-4999)
	ErrContentGeneration = "GEN_001" // Falha na geração de conteúdo via IA
	ErrEmailSend         = "SND_001" // Falha no envio de e-mail

	// Erros do servidor (5000-5999)
	ErrInternalServer   = "SRV_001" // Erro interno do servidor
	ErrStorageOperation = "SRV_002" // Erro de operação no armazenamento
	ErrExternalService  = "SRV_003" // Erro em serviço externo
	ErrCommunication    = "SRV_004" // Erro de comunicação
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidCredentials:    http.StatusUnauthorized,
	ErrUserDisabled:          http.StatusForbidden,
	ErrUserNotFound:          http.StatusNotFound,
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrUserAlreadyExists:     http.StatusBadRequest,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrProductValidation:     http.StatusBadRequest,
	ErrProductNotFound:       http.StatusNotFound,
	ErrProductDuplicate:      http.StatusConflict,
	ErrUnsupportedFormat:     http.StatusBadRequest,
	ErrCustomerNotFound:      http.StatusNotFound,
	ErrSpreadsheetFailure:    http.StatusInternalServerError,
	ErrContentGeneration:     http.StatusBadGateway,
	ErrEmailSend:             http.StatusBadGateway,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrStorageOperation:      http.StatusInternalServerError,
	ErrExternalService:       http.StatusBadGateway,
	ErrCommunication:         http.StatusServiceUnavailable,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}

// FromError cria um erro de API a partir de um erro Go
// Útil para quando você quer envolver um erro existente em um erro de API
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
