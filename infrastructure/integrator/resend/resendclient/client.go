package resendclient

import (
	"context"
	"net/http"
	"time"

	"github.com/vfg2006/nudge-marketing-api/internal/config"
)

// O endpoint de lote do provedor aceita no máximo 100 mensagens por chamada
const MaxBatchSize = 100

type Client interface {
	SendEmail(ctx context.Context, email Email) (string, error)
	SendBatch(ctx context.Context, emails []Email) ([]BatchEntry, error)
}

type ResendClient struct {
	httpClient *http.Client
	config     *config.Config
}

func NewClient(cfg *config.Config) Client {
	return &ResendClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		config: cfg,
	}
}
