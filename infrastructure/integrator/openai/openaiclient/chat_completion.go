package openaiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
)

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ResponseFormat struct {
	Type string `json:"type"`
}

// ChatCompletionRequest é o corpo enviado ao endpoint de chat completions
type ChatCompletionRequest struct {
	Messages   []Message
	JSONOutput bool
}

type chatCompletionBody struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	Temperature    float64         `json:"temperature,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// CreateChatCompletion envia a lista de mensagens ao serviço de geração de
// texto e retorna o conteúdo da primeira escolha. Nenhuma nova tentativa é
// feita aqui; quem chama decide se tenta de novo ou usa fallback.
func (c *OpenAIClient) CreateChatCompletion(ctx context.Context, req ChatCompletionRequest) (string, error) {
	endpoint, err := url.Parse(c.config.OpenAI.URL)
	if err != nil {
		return "", fmt.Errorf("erro ao analisar a URL base: %w", err)
	}
	endpoint.Path = path.Join(endpoint.Path, "/chat/completions")

	body := chatCompletionBody{
		Model:       c.config.OpenAI.Model,
		Messages:    req.Messages,
		MaxTokens:   c.config.OpenAI.MaxTokens,
		Temperature: c.config.OpenAI.Temperature,
	}
	if req.JSONOutput {
		body.ResponseFormat = &ResponseFormat{Type: "json_object"}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("erro ao serializar a requisição: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.config.OpenAI.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("erro ao ler a resposta: %w", err)
	}

	var response chatCompletionResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return "", fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if response.Error != nil {
			return "", fmt.Errorf("requisição falhou (%s): %s", resp.Status, response.Error.Message)
		}
		return "", fmt.Errorf("requisição falhou com status: %s", resp.Status)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("resposta sem escolhas do modelo")
	}

	return response.Choices[0].Message.Content, nil
}
