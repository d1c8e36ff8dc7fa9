package matching

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/nudge-marketing-api/infrastructure/integrator/openai"
	"github.com/vfg2006/nudge-marketing-api/internal/config"
	"github.com/vfg2006/nudge-marketing-api/internal/domain"
)

type Matcher interface {
	MatchAll(ctx context.Context, customers []domain.Customer, products []*domain.Product) []domain.Match
}

type Service struct {
	generator    openai.ContentGenerator
	requestDelay time.Duration
}

func NewService(cfg *config.Config, generator openai.ContentGenerator) Matcher {
	return &Service{
		generator:    generator,
		requestDelay: cfg.Matching.RequestDelay(),
	}
}

// MatchAll percorre os clientes um a um, com o catálogo inteiro embutido em
// cada chamada de recomendação e um atraso fixo entre chamadas para respeitar
// o rate limit do provedor. A falha de uma iteração vira um Match com
// success=false e não interrompe as demais; a ordem de entrada é preservada.
func (s *Service) MatchAll(ctx context.Context, customers []domain.Customer, products []*domain.Product) []domain.Match {
	matches := make([]domain.Match, 0, len(customers))

	for i, customer := range customers {
		match := s.matchOne(ctx, customer, products)
		matches = append(matches, match)

		// Atraso apenas entre chamadas, nunca após a última
		if s.requestDelay > 0 && i < len(customers)-1 {
			time.Sleep(s.requestDelay)
		}
	}

	return matches
}

func (s *Service) matchOne(ctx context.Context, customer domain.Customer, products []*domain.Product) domain.Match {
	recommendation, err := s.generator.GenerateRecommendation(ctx, customer, products)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"customer_id": customer.ID,
			"error":       err.Error(),
		}).Warn("matching: falha ao gerar recomendação para o cliente")

		return domain.Match{
			Customer: customer,
			Success:  false,
			Error:    err.Error(),
		}
	}

	var product *domain.Product
	for _, p := range products {
		if p.ID == recommendation.ProductID {
			product = p
			break
		}
	}

	logrus.WithFields(logrus.Fields{
		"customer_id": customer.ID,
		"product_id":  recommendation.ProductID,
		"confidence":  recommendation.Confidence,
	}).Debug("matching: recomendação gerada")

	return domain.Match{
		Customer:   customer,
		Product:    product,
		Confidence: recommendation.Confidence,
		Rationale:  recommendation.Rationale,
		Success:    true,
	}
}
