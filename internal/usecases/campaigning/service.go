package campaigning

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"text/template"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/nudge-marketing-api/infrastructure/integrator/openai"
	"github.com/vfg2006/nudge-marketing-api/infrastructure/integrator/resend"
	"github.com/vfg2006/nudge-marketing-api/infrastructure/integrator/resend/resendclient"
	"github.com/vfg2006/nudge-marketing-api/internal/config"
	"github.com/vfg2006/nudge-marketing-api/internal/domain"
	"github.com/vfg2006/nudge-marketing-api/pkg/utils"
)

// Dispatcher é o pipeline de disparo em lote: gera os corpos de e-mail,
// particiona em chunks e envia, convertendo toda falha por item em um
// registro de falha em vez de propagá-la
type Dispatcher interface {
	Dispatch(ctx context.Context, matches []domain.Match, opts Options) *domain.DispatchResult
	DispatchWithProgress(ctx context.Context, matches []domain.Match, opts Options, emit ProgressFunc) *domain.DispatchResult
	Preview(ctx context.Context, customer domain.Customer, product *domain.Product) domain.GeneratedEmail
}

// Options ajusta uma rodada de disparo. Zero values usam os defaults de
// configuração: chunk de 3 no fluxo interativo e o limite do provedor (100)
// quando UseBatchEndpoint está ligado.
type Options struct {
	CampaignID       string
	ChunkSize        int
	UseBatchEndpoint bool
}

type Service struct {
	cfg        *config.Config
	generator  openai.ContentGenerator
	sender     resend.EmailSender
	cache      *PreviewCache
	chunkDelay time.Duration
}

func NewService(cfg *config.Config, generator openai.ContentGenerator, sender resend.EmailSender, cache *PreviewCache) *Service {
	return &Service{
		cfg:        cfg,
		generator:  generator,
		sender:     sender,
		cache:      cache,
		chunkDelay: cfg.Dispatch.ChunkDelay(),
	}
}

// pendingEmail carrega um e-mail gerado junto com a posição do match de
// origem, para que o resultado do envio volte para o slot certo
type pendingEmail struct {
	index     int
	email     domain.GeneratedEmail
	recipient string
}

func (s *Service) Dispatch(ctx context.Context, matches []domain.Match, opts Options) *domain.DispatchResult {
	return s.dispatch(ctx, matches, opts, nil)
}

func (s *Service) DispatchWithProgress(ctx context.Context, matches []domain.Match, opts Options, emit ProgressFunc) *domain.DispatchResult {
	return s.dispatch(ctx, matches, opts, emit)
}

// dispatch executa a rodada completa: INIT → GENERATING → SENDING → DONE.
// O estado DONE é sempre alcançado porque cada unidade de trabalho converte
// sua própria falha em registro; nada escapa do pipeline depois que ele começa.
func (s *Service) dispatch(ctx context.Context, matches []domain.Match, opts Options, emit ProgressFunc) *domain.DispatchResult {
	opts = s.normalizeOptions(opts)

	emitEvent := func(event ProgressEvent) {
		if emit != nil {
			emit(event)
		}
	}

	logrus.WithFields(logrus.Fields{
		"campaign_id": opts.CampaignID,
		"matches":     len(matches),
		"chunk_size":  opts.ChunkSize,
	}).Info("campaigning: iniciando rodada de disparo")

	emitEvent(ProgressEvent{
		Type:    EventTypeStatus,
		Phase:   PhaseInit,
		Message: fmt.Sprintf("Iniciando disparo para %d matches", len(matches)),
		Percent: 0,
	})

	// Fase de geração
	emitEvent(ProgressEvent{
		Type:    EventTypeStatus,
		Phase:   PhaseGenerating,
		Message: "Gerando conteúdo dos e-mails",
		Percent: 10,
	})

	results := make([]domain.SendResult, len(matches))
	pending := make([]pendingEmail, 0, len(matches))
	attempted := 0

	for i, match := range matches {
		// Matches que já chegaram com falha passam direto, com o erro original intacto
		if !match.Success {
			results[i] = domain.SendResult{
				CustomerID: match.Customer.ID,
				Email:      match.Customer.Email,
				Success:    false,
				Error:      match.Error,
			}
			continue
		}

		attempted++

		email := s.generateEmail(ctx, match)
		if !email.Success {
			results[i] = domain.SendResult{
				CustomerID: match.Customer.ID,
				Email:      match.Customer.Email,
				Subject:    email.Subject,
				Success:    false,
				Error:      email.Error,
			}
			continue
		}

		pending = append(pending, pendingEmail{
			index:     i,
			email:     email,
			recipient: match.Customer.Email,
		})
	}

	if len(pending) == 0 {
		// Falha de preparação: nenhum envio chega a ser tentado
		emitEvent(ProgressEvent{
			Type:    EventTypeError,
			Phase:   PhaseGenerating,
			Message: "Nenhum e-mail válido após a fase de geração",
			Percent: 100,
		})

		return s.finalize(opts.CampaignID, matches, results, attempted)
	}

	// Fase de envio
	chunks := chunkPending(pending, opts.ChunkSize)

	emitEvent(ProgressEvent{
		Type:    EventTypeStatus,
		Phase:   PhaseSending,
		Message: fmt.Sprintf("Enviando %d e-mails em %d chunks", len(pending), len(chunks)),
		Percent: 30,
	})

	for ci, chunk := range chunks {
		if opts.UseBatchEndpoint {
			s.sendChunkBatch(ctx, chunk, results, opts.CampaignID)
		} else {
			s.sendChunkConcurrent(ctx, chunk, results, opts.CampaignID)
		}

		chunkResults := make([]domain.SendResult, 0, len(chunk))
		for _, p := range chunk {
			chunkResults = append(chunkResults, results[p.index])
		}

		percent := 30 + (65*(ci+1))/len(chunks)
		emitEvent(ProgressEvent{
			Type:    EventTypeChunk,
			Phase:   PhaseSending,
			Message: fmt.Sprintf("Chunk %d/%d processado", ci+1, len(chunks)),
			Percent: percent,
			Results: chunkResults,
		})

		// Pausa entre chunks para respeitar o rate limit, nunca após o último
		if s.chunkDelay > 0 && ci < len(chunks)-1 {
			time.Sleep(s.chunkDelay)
		}
	}

	result := s.finalize(opts.CampaignID, matches, results, attempted)

	emitEvent(ProgressEvent{
		Type:    EventTypeComplete,
		Phase:   PhaseDone,
		Message: fmt.Sprintf("Disparo concluído: %d enviados, %d falhas", result.Summary.Succeeded, result.Summary.Failed),
		Percent: 100,
		Result:  result,
	})

	return result
}

// Preview retorna o e-mail gerado para o par (cliente, produto), usando o
// cache quando a entrada ainda está dentro do TTL
func (s *Service) Preview(ctx context.Context, customer domain.Customer, product *domain.Product) domain.GeneratedEmail {
	match := domain.Match{
		Customer: customer,
		Product:  product,
		Success:  true,
	}

	return s.generateEmail(ctx, match)
}

// generateEmail produz o corpo do e-mail para um match válido: primeiro o
// cache, depois a geração via IA e, se ela falhar, o template determinístico
// de fallback. Só retorna success=false se até o fallback falhar.
func (s *Service) generateEmail(ctx context.Context, match domain.Match) domain.GeneratedEmail {
	if match.Product == nil {
		return domain.GeneratedEmail{
			CustomerID: match.Customer.ID,
			Success:    false,
			Error:      "match sem produto recomendado",
		}
	}

	if cached, ok := s.cache.Get(match.Customer.ID, match.Product.ID); ok {
		logrus.WithFields(logrus.Fields{
			"customer_id": match.Customer.ID,
			"product_id":  match.Product.ID,
		}).Debug("campaigning: e-mail obtido do cache de preview")
		return cached
	}

	offerCode, err := utils.GenerateID()
	if err != nil {
		offerCode = ""
	}

	email := domain.GeneratedEmail{
		CustomerID: match.Customer.ID,
		ProductID:  match.Product.ID,
		OfferCode:  offerCode,
	}

	content, genErr := s.generator.GenerateEmailContent(ctx, match)
	if genErr == nil {
		email.Subject = content.Subject
		email.BodyHTML = content.BodyHTML
		email.Success = true

		s.cache.Set(match.Customer.ID, match.Product.ID, email)
		return email
	}

	logrus.WithFields(logrus.Fields{
		"customer_id": match.Customer.ID,
		"product_id":  match.Product.ID,
		"error":       genErr.Error(),
	}).Warn("campaigning: geração via IA falhou, usando template de fallback")

	subject, body, fallbackErr := fallbackEmail(match, offerCode)
	if fallbackErr != nil {
		// Nem a IA nem o fallback produziram corpo: o match vira registro de
		// falha com o erro original retido, nunca é descartado em silêncio
		email.Success = false
		email.Error = fmt.Sprintf("geração falhou (%s) e fallback falhou (%s)", genErr.Error(), fallbackErr.Error())
		return email
	}

	email.Subject = subject
	email.BodyHTML = body
	email.Success = true

	s.cache.Set(match.Customer.ID, match.Product.ID, email)
	return email
}

// sendChunkConcurrent dispara todos os envios do chunk de uma vez e espera
// todos assentarem. Cada goroutine escreve apenas no seu próprio slot de
// resultado; a falha de um envio nunca cancela os irmãos do mesmo chunk.
func (s *Service) sendChunkConcurrent(ctx context.Context, chunk []pendingEmail, results []domain.SendResult, campaignID string) {
	var wg sync.WaitGroup

	for _, p := range chunk {
		wg.Add(1)
		go func(p pendingEmail) {
			defer wg.Done()

			now := time.Now()
			result := domain.SendResult{
				CustomerID: p.email.CustomerID,
				Email:      p.recipient,
				Subject:    p.email.Subject,
				SentAt:     &now,
			}

			messageID, err := s.sender.Send(ctx, p.email, p.recipient, campaignID)
			if err != nil {
				result.Success = false
				result.Error = err.Error()
			} else {
				result.Success = true
				result.MessageID = messageID
			}

			results[p.index] = result
		}(p)
	}

	wg.Wait()
}

// sendChunkBatch submete o chunk inteiro em uma única chamada ao endpoint de
// lote do provedor. A falha da chamada inteira vira falha individual de cada
// destinatário do chunk; chunks seguintes não são afetados.
func (s *Service) sendChunkBatch(ctx context.Context, chunk []pendingEmail, results []domain.SendResult, campaignID string) {
	emails := make([]domain.GeneratedEmail, 0, len(chunk))
	recipients := make([]string, 0, len(chunk))
	for _, p := range chunk {
		emails = append(emails, p.email)
		recipients = append(recipients, p.recipient)
	}

	now := time.Now()

	entries, err := s.sender.SendBatch(ctx, emails, recipients, campaignID)
	if err != nil {
		for _, p := range chunk {
			results[p.index] = domain.SendResult{
				CustomerID: p.email.CustomerID,
				Email:      p.recipient,
				Subject:    p.email.Subject,
				Success:    false,
				Error:      err.Error(),
				SentAt:     &now,
			}
		}
		return
	}

	for i, p := range chunk {
		result := domain.SendResult{
			CustomerID: p.email.CustomerID,
			Email:      p.recipient,
			Subject:    p.email.Subject,
			SentAt:     &now,
		}

		if entries[i].Error != "" {
			result.Success = false
			result.Error = entries[i].Error
		} else {
			result.Success = true
			result.MessageID = entries[i].ID
		}

		results[p.index] = result
	}
}

// finalize monta o resultado agregado: um item por match de entrada, na
// mesma ordem, mais o resumo de contagens
func (s *Service) finalize(campaignID string, matches []domain.Match, results []domain.SendResult, attempted int) *domain.DispatchResult {
	succeeded := 0
	for _, result := range results {
		if result.Success {
			succeeded++
		}
	}

	summary := domain.DispatchSummary{
		Total:     len(matches),
		Attempted: attempted,
		Succeeded: succeeded,
		Failed:    attempted - succeeded,
	}

	logrus.WithFields(logrus.Fields{
		"campaign_id": campaignID,
		"total":       summary.Total,
		"attempted":   summary.Attempted,
		"succeeded":   summary.Succeeded,
		"failed":      summary.Failed,
	}).Info("campaigning: rodada de disparo concluída")

	return &domain.DispatchResult{
		CampaignID: campaignID,
		Results:    results,
		Summary:    summary,
	}
}

func (s *Service) normalizeOptions(opts Options) Options {
	if opts.CampaignID == "" {
		opts.CampaignID = uuid.New().String()
	}

	if opts.ChunkSize <= 0 {
		if opts.UseBatchEndpoint {
			opts.ChunkSize = s.cfg.Dispatch.BatchChunkSize
		} else {
			opts.ChunkSize = s.cfg.Dispatch.ChunkSize
		}
	}

	// O endpoint de lote do provedor aceita no máximo 100 mensagens
	if opts.UseBatchEndpoint && opts.ChunkSize > resendclient.MaxBatchSize {
		opts.ChunkSize = resendclient.MaxBatchSize
	}

	return opts
}

func chunkPending(pending []pendingEmail, size int) [][]pendingEmail {
	if size <= 0 {
		size = 1
	}

	chunks := make([][]pendingEmail, 0, (len(pending)+size-1)/size)
	for start := 0; start < len(pending); start += size {
		end := start + size
		if end > len(pending) {
			end = len(pending)
		}
		chunks = append(chunks, pending[start:end])
	}

	return chunks
}

var fallbackTemplate = template.Must(template.New("fallback").Parse(`<p>Olá {{.Name}},</p>
<p>Temos uma oferta pensada para você: <strong>{{.ProductName}}</strong>.</p>
<p>{{.Description}}</p>
<p>Taxa a partir de {{printf "%.2f" .Rate}}% ao ano.{{if .OfferCode}} Use o código <strong>{{.OfferCode}}</strong> ao contratar.{{end}}</p>
<p>Atenciosamente,<br>Equipe Nudge</p>`))

// fallbackEmail monta o corpo determinístico a partir dos campos estáticos do
// match, usado quando a geração via IA falha
func fallbackEmail(match domain.Match, offerCode string) (string, string, error) {
	data := struct {
		Name        string
		ProductName string
		Description string
		Rate        float64
		OfferCode   string
	}{
		Name:        match.Customer.FullName(),
		ProductName: match.Product.Name,
		Description: match.Product.Description,
		Rate:        match.Product.Terms.Rate,
		OfferCode:   offerCode,
	}

	var body bytes.Buffer
	if err := fallbackTemplate.Execute(&body, data); err != nil {
		return "", "", err
	}

	subject := fmt.Sprintf("Oferta exclusiva: %s", match.Product.Name)
	return subject, body.String(), nil
}
