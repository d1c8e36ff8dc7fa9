package openaiclient

import (
	"context"
	"net/http"
	"time"

	"github.com/vfg2006/nudge-marketing-api/internal/config"
)

type Client interface {
	CreateChatCompletion(ctx context.Context, req ChatCompletionRequest) (string, error)
}

type OpenAIClient struct {
	httpClient *http.Client
	config     *config.Config
}

func NewClient(cfg *config.Config) Client {
	return &OpenAIClient{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		config: cfg,
	}
}
