package resendclient

import (
	"context"
	"encoding/json"
	"fmt"
)

// BatchEntry é o desfecho por mensagem retornado pelo endpoint de lote
type BatchEntry struct {
	ID    string `json:"id"`
	Error string `json:"error,omitempty"`
}

type sendBatchResponse struct {
	Data []BatchEntry `json:"data"`
}

// SendBatch submete até MaxBatchSize e-mails em uma única chamada.
// A falha aqui é da chamada inteira; desfechos individuais vêm em Data.
func (c *ResendClient) SendBatch(ctx context.Context, emails []Email) ([]BatchEntry, error) {
	if len(emails) == 0 {
		return []BatchEntry{}, nil
	}

	if len(emails) > MaxBatchSize {
		return nil, fmt.Errorf("lote excede o limite do provedor: %d > %d", len(emails), MaxBatchSize)
	}

	body, err := c.post(ctx, "/emails/batch", emails)
	if err != nil {
		return nil, err
	}

	var response sendBatchResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	if len(response.Data) != len(emails) {
		return nil, fmt.Errorf("provedor retornou %d desfechos para %d mensagens", len(response.Data), len(emails))
	}

	return response.Data, nil
}
