package campaigning

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	openaidomain "github.com/vfg2006/nudge-marketing-api/infrastructure/integrator/openai/domain"
	openaimocks "github.com/vfg2006/nudge-marketing-api/infrastructure/integrator/openai/mocks"
	"github.com/vfg2006/nudge-marketing-api/infrastructure/integrator/resend/resendclient"
	resendmocks "github.com/vfg2006/nudge-marketing-api/infrastructure/integrator/resend/mocks"
	"github.com/vfg2006/nudge-marketing-api/internal/config"
	"github.com/vfg2006/nudge-marketing-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func testConfig() *config.Config {
	return &config.Config{
		Dispatch: config.Dispatch{
			ChunkSize:      3,
			BatchChunkSize: 100,
			ChunkDelayMS:   0,
		},
		Preview: config.Preview{CacheTTLMinutes: 60},
	}
}

func newTestService(generator *openaimocks.MockContentGenerator, sender *resendmocks.MockEmailSender) *Service {
	cfg := testConfig()
	return &Service{
		cfg:       cfg,
		generator: generator,
		sender:    sender,
		cache:     NewPreviewCache(cfg.Preview.CacheTTL()),
	}
}

func testProduct(id string) *domain.Product {
	return &domain.Product{
		ID:          id,
		Name:        "CDB Prefixado",
		Category:    "investimento",
		Description: "Renda fixa com liquidez no vencimento",
		Status:      domain.ProductStatusActive,
		Terms:       domain.ProductTerms{Rate: 12.5},
	}
}

func testMatch(customerID string) domain.Match {
	return domain.Match{
		Customer: domain.Customer{
			ID:        customerID,
			FirstName: "Cliente",
			LastName:  customerID,
			Email:     fmt.Sprintf("%s@example.com", customerID),
		},
		Product:    testProduct("prod-1"),
		Confidence: 0.9,
		Success:    true,
	}
}

func TestService_Dispatch_PreservaOrdemComFalhaDeEnvio(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	generator := openaimocks.NewMockContentGenerator(ctrl)
	sender := resendmocks.NewMockEmailSender(ctrl)
	service := newTestService(generator, sender)

	// Cenário de ponta a ponta: 5 matches, chunk de 2, uma falha do provedor
	matches := []domain.Match{
		testMatch("c1"), testMatch("c2"), testMatch("c3"), testMatch("c4"), testMatch("c5"),
	}

	generator.EXPECT().
		GenerateEmailContent(gomock.Any(), gomock.Any()).
		Return(&openaidomain.EmailContent{Subject: "Oferta", BodyHTML: "<p>corpo</p>"}, nil).
		Times(5)

	sender.EXPECT().
		Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, email domain.GeneratedEmail, recipient, _ string) (string, error) {
			if recipient == "c4@example.com" {
				return "", fmt.Errorf("saldo de envios insuficiente")
			}
			return "msg-" + email.CustomerID, nil
		}).
		Times(5)

	result := service.Dispatch(context.Background(), matches, Options{ChunkSize: 2})

	// Um resultado por match de entrada, na mesma ordem
	assert.Len(t, result.Results, 5)
	for i, match := range matches {
		assert.Equal(t, match.Customer.ID, result.Results[i].CustomerID)
	}

	assert.False(t, result.Results[3].Success)
	assert.Contains(t, result.Results[3].Error, "saldo de envios insuficiente")
	assert.True(t, result.Results[0].Success)
	assert.Equal(t, "msg-c1", result.Results[0].MessageID)

	assert.Equal(t, 5, result.Summary.Total)
	assert.Equal(t, 5, result.Summary.Attempted)
	assert.Equal(t, 4, result.Summary.Succeeded)
	assert.Equal(t, 1, result.Summary.Failed)
}

func TestService_Dispatch_MatchesComFalhaPassamDireto(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	generator := openaimocks.NewMockContentGenerator(ctrl)
	sender := resendmocks.NewMockEmailSender(ctrl)
	service := newTestService(generator, sender)

	failed := domain.Match{
		Customer: domain.Customer{ID: "c1", Email: "c1@example.com"},
		Success:  false,
		Error:    "recomendação indisponível",
	}
	matches := []domain.Match{failed, testMatch("c2")}

	// Apenas o match válido passa pela geração e pelo envio
	generator.EXPECT().
		GenerateEmailContent(gomock.Any(), gomock.Any()).
		Return(&openaidomain.EmailContent{Subject: "Oferta", BodyHTML: "<p>corpo</p>"}, nil).
		Times(1)

	sender.EXPECT().
		Send(gomock.Any(), gomock.Any(), "c2@example.com", gomock.Any()).
		Return("msg-1", nil).
		Times(1)

	result := service.Dispatch(context.Background(), matches, Options{})

	assert.Len(t, result.Results, 2)
	assert.False(t, result.Results[0].Success)
	assert.Equal(t, "recomendação indisponível", result.Results[0].Error)
	assert.True(t, result.Results[1].Success)

	assert.Equal(t, 2, result.Summary.Total)
	assert.Equal(t, 1, result.Summary.Attempted)
	assert.Equal(t, 1, result.Summary.Succeeded)
	assert.Equal(t, 0, result.Summary.Failed)
}

func TestService_DispatchWithProgress_EventosEChunks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	generator := openaimocks.NewMockContentGenerator(ctrl)
	sender := resendmocks.NewMockEmailSender(ctrl)
	service := newTestService(generator, sender)

	// 7 e-mails com chunk de 3 devem virar 3 chunks (3, 3, 1)
	matches := make([]domain.Match, 0, 7)
	for i := 1; i <= 7; i++ {
		matches = append(matches, testMatch(fmt.Sprintf("c%d", i)))
	}

	generator.EXPECT().
		GenerateEmailContent(gomock.Any(), gomock.Any()).
		Return(&openaidomain.EmailContent{Subject: "Oferta", BodyHTML: "<p>corpo</p>"}, nil).
		Times(7)

	sender.EXPECT().
		Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("msg-1", nil).
		Times(7)

	var events []ProgressEvent
	result := service.DispatchWithProgress(context.Background(), matches, Options{ChunkSize: 3}, func(event ProgressEvent) {
		events = append(events, event)
	})

	assert.Equal(t, 7, result.Summary.Succeeded)

	chunkEvents := make([]ProgressEvent, 0)
	for _, event := range events {
		if event.Type == EventTypeChunk {
			chunkEvents = append(chunkEvents, event)
		}
	}
	assert.Len(t, chunkEvents, 3)
	assert.Len(t, chunkEvents[0].Results, 3)
	assert.Len(t, chunkEvents[1].Results, 3)
	assert.Len(t, chunkEvents[2].Results, 1)

	// O evento terminal é do tipo complete, com o resultado inteiro e 100%
	last := events[len(events)-1]
	assert.Equal(t, EventTypeComplete, last.Type)
	assert.Equal(t, PhaseDone, last.Phase)
	assert.Equal(t, 100, last.Percent)
	assert.NotNil(t, last.Result)
	assert.Len(t, last.Result.Results, 7)

	// Percentuais nunca retrocedem
	previous := -1
	for _, event := range events {
		assert.GreaterOrEqual(t, event.Percent, previous)
		previous = event.Percent
	}
}

func TestService_DispatchWithProgress_NenhumEmailValido(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	generator := openaimocks.NewMockContentGenerator(ctrl)
	sender := resendmocks.NewMockEmailSender(ctrl)
	service := newTestService(generator, sender)

	matches := []domain.Match{
		{Customer: domain.Customer{ID: "c1"}, Success: false, Error: "sem recomendação"},
		{Customer: domain.Customer{ID: "c2"}, Success: false, Error: "sem recomendação"},
	}

	var events []ProgressEvent
	result := service.DispatchWithProgress(context.Background(), matches, Options{}, func(event ProgressEvent) {
		events = append(events, event)
	})

	// Nenhum envio foi tentado, mas cada match vira um registro mesmo assim
	assert.Len(t, result.Results, 2)
	assert.Equal(t, 0, result.Summary.Attempted)
	assert.Equal(t, 0, result.Summary.Succeeded)

	last := events[len(events)-1]
	assert.Equal(t, EventTypeError, last.Type)
}

func TestService_Dispatch_FallbackQuandoGeracaoFalha(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	generator := openaimocks.NewMockContentGenerator(ctrl)
	sender := resendmocks.NewMockEmailSender(ctrl)
	service := newTestService(generator, sender)

	matches := []domain.Match{testMatch("c1")}

	generator.EXPECT().
		GenerateEmailContent(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("provedor de IA indisponível")).
		Times(1)

	var sent domain.GeneratedEmail
	sender.EXPECT().
		Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, email domain.GeneratedEmail, _, _ string) (string, error) {
			sent = email
			return "msg-1", nil
		}).
		Times(1)

	result := service.Dispatch(context.Background(), matches, Options{})

	// O template determinístico substitui a IA: o match não é descartado
	assert.True(t, result.Results[0].Success)
	assert.Equal(t, "Oferta exclusiva: CDB Prefixado", sent.Subject)
	assert.Contains(t, sent.BodyHTML, "CDB Prefixado")
	assert.Contains(t, sent.BodyHTML, sent.OfferCode)
	assert.NotEmpty(t, sent.OfferCode)
}

func TestService_Dispatch_CaminhoEmLote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	generator := openaimocks.NewMockContentGenerator(ctrl)
	sender := resendmocks.NewMockEmailSender(ctrl)
	service := newTestService(generator, sender)

	matches := []domain.Match{testMatch("c1"), testMatch("c2"), testMatch("c3")}

	generator.EXPECT().
		GenerateEmailContent(gomock.Any(), gomock.Any()).
		Return(&openaidomain.EmailContent{Subject: "Oferta", BodyHTML: "<p>corpo</p>"}, nil).
		Times(3)

	// Uma única chamada ao endpoint de lote, com falha individual no segundo
	sender.EXPECT().
		SendBatch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]resendclient.BatchEntry{
			{ID: "batch-1"},
			{Error: "destinatário rejeitado"},
			{ID: "batch-3"},
		}, nil).
		Times(1)

	result := service.Dispatch(context.Background(), matches, Options{UseBatchEndpoint: true})

	assert.True(t, result.Results[0].Success)
	assert.Equal(t, "batch-1", result.Results[0].MessageID)
	assert.False(t, result.Results[1].Success)
	assert.Equal(t, "destinatário rejeitado", result.Results[1].Error)
	assert.True(t, result.Results[2].Success)

	assert.Equal(t, 3, result.Summary.Attempted)
	assert.Equal(t, 2, result.Summary.Succeeded)
	assert.Equal(t, 1, result.Summary.Failed)
}

func TestService_Preview_UsaCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	generator := openaimocks.NewMockContentGenerator(ctrl)
	sender := resendmocks.NewMockEmailSender(ctrl)
	service := newTestService(generator, sender)

	customer := domain.Customer{ID: "c1", FirstName: "Ana", Email: "c1@example.com"}
	product := testProduct("prod-1")

	// A geração acontece uma única vez; a segunda chamada sai do cache
	generator.EXPECT().
		GenerateEmailContent(gomock.Any(), gomock.Any()).
		Return(&openaidomain.EmailContent{Subject: "Oferta", BodyHTML: "<p>corpo</p>"}, nil).
		Times(1)

	first := service.Preview(context.Background(), customer, product)
	second := service.Preview(context.Background(), customer, product)

	assert.True(t, first.Success)
	assert.Equal(t, first.Subject, second.Subject)
	assert.Equal(t, first.OfferCode, second.OfferCode)
}

func TestChunkPending(t *testing.T) {
	pending := make([]pendingEmail, 7)

	chunks := chunkPending(pending, 3)
	assert.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 3)
	assert.Len(t, chunks[2], 1)

	assert.Len(t, chunkPending(nil, 3), 0)
	assert.Len(t, chunkPending(pending, 100), 1)
}

func TestNormalizeOptions(t *testing.T) {
	service := &Service{cfg: testConfig()}

	opts := service.normalizeOptions(Options{})
	assert.Equal(t, 3, opts.ChunkSize)
	assert.NotEmpty(t, opts.CampaignID)

	batch := service.normalizeOptions(Options{UseBatchEndpoint: true})
	assert.Equal(t, 100, batch.ChunkSize)

	capped := service.normalizeOptions(Options{UseBatchEndpoint: true, ChunkSize: 500})
	assert.Equal(t, resendclient.MaxBatchSize, capped.ChunkSize)
}

func TestPreviewCache_TTL(t *testing.T) {
	current := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	cache := NewPreviewCache(time.Hour).WithClock(func() time.Time { return current })

	email := domain.GeneratedEmail{CustomerID: "c1", ProductID: "p1", Subject: "Oferta", Success: true}
	cache.Set("c1", "p1", email)

	// Dentro do TTL a entrada volta intacta
	got, ok := cache.Get("c1", "p1")
	assert.True(t, ok)
	assert.Equal(t, "Oferta", got.Subject)

	// Pouco antes de expirar ainda vale
	current = current.Add(59 * time.Minute)
	_, ok = cache.Get("c1", "p1")
	assert.True(t, ok)

	// Depois do TTL a entrada expira de forma preguiçosa
	current = current.Add(2 * time.Minute)
	_, ok = cache.Get("c1", "p1")
	assert.False(t, ok)

	// Set sobrescreve e renova a janela
	cache.Set("c1", "p1", email)
	_, ok = cache.Get("c1", "p1")
	assert.True(t, ok)
	assert.Equal(t, 1, cache.Len())
}
