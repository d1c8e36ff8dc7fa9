package resend

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/nudge-marketing-api/infrastructure/integrator/resend/resendclient"
	"github.com/vfg2006/nudge-marketing-api/internal/config"
	"github.com/vfg2006/nudge-marketing-api/internal/domain"
)

// EmailSender envia e-mails pelo provedor transacional. Send retorna o
// identificador de mensagem atribuído pelo provedor; SendBatch aceita até
// 100 mensagens por chamada.
type EmailSender interface {
	Send(ctx context.Context, email domain.GeneratedEmail, recipient string, campaignID string) (string, error)
	SendBatch(ctx context.Context, emails []domain.GeneratedEmail, recipients []string, campaignID string) ([]resendclient.BatchEntry, error)
}

// SendError é a falha de envio para um destinatário específico
type SendError struct {
	Err       error  // Erro base
	Recipient string // Destinatário envolvido
}

func (e *SendError) Error() string {
	return fmt.Sprintf("erro ao enviar para %s: %s", e.Recipient, e.Err.Error())
}

func (e *SendError) Unwrap() error {
	return e.Err
}

type Service struct {
	cfg    *config.Config
	Client resendclient.Client
}

func New(cfg *config.Config, client resendclient.Client) EmailSender {
	return &Service{
		cfg:    cfg,
		Client: client,
	}
}

func (s *Service) Send(ctx context.Context, email domain.GeneratedEmail, recipient string, campaignID string) (string, error) {
	messageID, err := s.Client.SendEmail(ctx, s.toOutbound(email, recipient, campaignID))
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"customer_id": email.CustomerID,
			"product_id":  email.ProductID,
			"error":       err.Error(),
		}).Error("resend: falha no envio de e-mail")
		return "", &SendError{Err: err, Recipient: recipient}
	}

	return messageID, nil
}

func (s *Service) SendBatch(ctx context.Context, emails []domain.GeneratedEmail, recipients []string, campaignID string) ([]resendclient.BatchEntry, error) {
	if len(emails) != len(recipients) {
		return nil, fmt.Errorf("lote inconsistente: %d e-mails para %d destinatários", len(emails), len(recipients))
	}

	outbound := make([]resendclient.Email, 0, len(emails))
	for i, email := range emails {
		outbound = append(outbound, s.toOutbound(email, recipients[i], campaignID))
	}

	entries, err := s.Client.SendBatch(ctx, outbound)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"batch_size": len(emails),
			"error":      err.Error(),
		}).Error("resend: falha no envio em lote")
		return nil, err
	}

	return entries, nil
}

// toOutbound monta a mensagem no formato do provedor, com os cabeçalhos
// customizados usados para reconciliação (cliente, produto, campanha, oferta)
func (s *Service) toOutbound(email domain.GeneratedEmail, recipient string, campaignID string) resendclient.Email {
	headers := map[string]string{
		"X-Customer-ID": email.CustomerID,
		"X-Product-ID":  email.ProductID,
		"X-Campaign-ID": campaignID,
	}
	if email.OfferCode != "" {
		headers["X-Offer-Code"] = email.OfferCode
	}

	return resendclient.Email{
		From:    fmt.Sprintf("%s <%s>", s.cfg.Resend.FromName, s.cfg.Resend.FromEmail),
		To:      []string{recipient},
		Subject: email.Subject,
		HTML:    email.BodyHTML,
		Headers: headers,
	}
}
