package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSON(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "objeto puro passa direto",
			input:    `{"subject": "Olá"}`,
			expected: `{"subject": "Olá"}`,
		},
		{
			name:     "remove cerca de markdown com linguagem",
			input:    "```json\n{\"subject\": \"Olá\"}\n```",
			expected: `{"subject": "Olá"}`,
		},
		{
			name:     "remove cerca de markdown sem linguagem",
			input:    "```\n{\"ok\": true}\n```",
			expected: `{"ok": true}`,
		},
		{
			name:     "ignora comentário antes e depois do objeto",
			input:    "Claro! Segue o JSON pedido:\n{\"headline\": \"Invista hoje\"}\nEspero ter ajudado.",
			expected: `{"headline": "Invista hoje"}`,
		},
		{
			name:     "mantém chaves internas do objeto",
			input:    `prefixo {"a": {"b": 1}} sufixo`,
			expected: `{"a": {"b": 1}}`,
		},
		{
			name:     "texto sem objeto volta aparado",
			input:    "  sem json aqui  ",
			expected: "sem json aqui",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ExtractJSON(tc.input))
		})
	}
}
