package openai

import (
	"errors"
	"fmt"
)

var (
	ErrGeneration = errors.New("falha na geração de conteúdo")
	ErrParse      = errors.New("resposta do modelo não é um JSON válido")
)

// GenerationError indica que a chamada ao serviço de geração falhou
type GenerationError struct {
	Err       error  // Erro base
	Operation string // Operação que estava sendo executada
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Operation, e.Err.Error())
}

func (e *GenerationError) Unwrap() error {
	return ErrGeneration
}

// ParseError indica que a resposta do modelo não pôde ser interpretada como
// o objeto estruturado esperado
type ParseError struct {
	Err error  // Erro base
	Raw string // Conteúdo bruto devolvido pelo modelo
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("erro ao interpretar resposta do modelo: %s", e.Err.Error())
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

func NewGenerationError(err error, operation string) *GenerationError {
	return &GenerationError{Err: err, Operation: operation}
}

func NewParseError(err error, raw string) *ParseError {
	return &ParseError{Err: err, Raw: raw}
}
