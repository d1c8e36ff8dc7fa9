package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	openaidomain "github.com/vfg2006/nudge-marketing-api/infrastructure/integrator/openai/domain"
	"github.com/vfg2006/nudge-marketing-api/infrastructure/integrator/openai/openaiclient"
	"github.com/vfg2006/nudge-marketing-api/internal/config"
	"github.com/vfg2006/nudge-marketing-api/internal/domain"
	"github.com/vfg2006/nudge-marketing-api/pkg/utils"
)

// ContentGenerator cobre todas as chamadas ao serviço de geração de texto.
// Nenhum método tenta de novo: quem chama decide entre repetir e fallback.
type ContentGenerator interface {
	GenerateRecommendation(ctx context.Context, customer domain.Customer, products []*domain.Product) (*openaidomain.Recommendation, error)
	GenerateEmailContent(ctx context.Context, match domain.Match) (*openaidomain.EmailContent, error)
	GenerateCampaignContent(ctx context.Context, req openaidomain.CampaignRequest) (*openaidomain.CampaignContent, error)
	GenerateCustomerProfile(ctx context.Context, customer domain.Customer) (string, error)
}

type Service struct {
	cfg    *config.Config
	Client openaiclient.Client
}

func New(cfg *config.Config, client openaiclient.Client) ContentGenerator {
	return &Service{
		cfg:    cfg,
		Client: client,
	}
}

// GenerateRecommendation pede ao modelo uma recomendação de produto para o
// cliente, com o catálogo inteiro embutido na requisição
func (s *Service) GenerateRecommendation(ctx context.Context, customer domain.Customer, products []*domain.Product) (*openaidomain.Recommendation, error) {
	catalog := make([]map[string]any, 0, len(products))
	for _, product := range products {
		catalog = append(catalog, map[string]any{
			"id":          product.ID,
			"name":        product.Name,
			"category":    product.Category,
			"description": product.Description,
			"terms":       product.Terms,
		})
	}

	catalogJSON, err := json.Marshal(catalog)
	if err != nil {
		return nil, NewGenerationError(err, "GenerateRecommendation")
	}

	prompt := fmt.Sprintf(`You are a financial product matching specialist.

Customer:
- Name: %s
- City: %s
- Profile: %s
- Notes: %s

Product catalog (JSON):
%s

Pick the single best product for this customer. Respond with a JSON object
containing exactly these fields:
- "product_id": the id of the chosen product (must exist in the catalog)
- "confidence": a number between 0 and 1
- "rationale": one short paragraph explaining the choice
- "personalization": one sentence connecting the product to this customer's profile`,
		customer.FullName(), customer.City, customer.Profile, customer.Notes, string(catalogJSON))

	content, err := s.complete(ctx, "GenerateRecommendation", prompt, true)
	if err != nil {
		return nil, err
	}

	var recommendation openaidomain.Recommendation
	if err := json.Unmarshal([]byte(utils.ExtractJSON(content)), &recommendation); err != nil {
		return nil, NewParseError(err, content)
	}

	if recommendation.ProductID == "" {
		return nil, NewParseError(fmt.Errorf("resposta sem product_id"), content)
	}

	// O modelo precisa devolver um produto que exista no catálogo
	known := false
	for _, product := range products {
		if product.ID == recommendation.ProductID {
			known = true
			break
		}
	}
	if !known {
		return nil, NewParseError(fmt.Errorf("product_id desconhecido: %s", recommendation.ProductID), content)
	}

	return &recommendation, nil
}

// GenerateEmailContent pede ao modelo um e-mail personalizado para o match
func (s *Service) GenerateEmailContent(ctx context.Context, match domain.Match) (*openaidomain.EmailContent, error) {
	if match.Product == nil {
		return nil, NewGenerationError(fmt.Errorf("match sem produto"), "GenerateEmailContent")
	}

	prompt := fmt.Sprintf(`You are a marketing copywriter for a financial institution.

Write a short marketing email offering the product below to the customer below.

Customer:
- Name: %s
- City: %s
- Profile: %s

Product:
- Name: %s
- Category: %s
- Description: %s
- Rate: %.2f%%

Why this product fits: %s

Write the subject and body in Brazilian Portuguese.

Respond with a JSON object containing exactly these fields:
- "subject": the email subject line
- "body_html": the email body as simple HTML (paragraphs only, no head or styles)`,
		match.Customer.FullName(), match.Customer.City, match.Customer.Profile,
		match.Product.Name, match.Product.Category, match.Product.Description,
		match.Product.Terms.Rate, match.Rationale)

	content, err := s.complete(ctx, "GenerateEmailContent", prompt, true)
	if err != nil {
		return nil, err
	}

	var email openaidomain.EmailContent
	if err := json.Unmarshal([]byte(utils.ExtractJSON(content)), &email); err != nil {
		return nil, NewParseError(err, content)
	}

	if email.Subject == "" || email.BodyHTML == "" {
		return nil, NewParseError(fmt.Errorf("resposta sem subject ou body_html"), content)
	}

	return &email, nil
}

// GenerateCampaignContent gera conteúdo de campanha a partir dos dados de
// template específicos da categoria
func (s *Service) GenerateCampaignContent(ctx context.Context, req openaidomain.CampaignRequest) (*openaidomain.CampaignContent, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a marketing copywriter for a financial institution.\n\n")
	fmt.Fprintf(&sb, "Create campaign content for the %q category.\n", req.Category)
	fmt.Fprintf(&sb, "Product: %s\n", req.ProductName)
	fmt.Fprintf(&sb, "Target audience: %s\n", req.Audience)
	fmt.Fprintf(&sb, "Tone: %s\n", req.Tone)
	fmt.Fprintf(&sb, "Key benefit: %s\n", req.KeyBenefit)
	if req.AdditionalInfo != "" {
		fmt.Fprintf(&sb, "Additional info: %s\n", req.AdditionalInfo)
	}
	fmt.Fprintf(&sb, "\nRespond with a JSON object containing exactly these fields:\n")
	fmt.Fprintf(&sb, `- "headline": a short attention-grabbing headline`+"\n")
	fmt.Fprintf(&sb, `- "body": two short paragraphs of campaign copy`+"\n")
	fmt.Fprintf(&sb, `- "call_to_action": one sentence call to action`+"\n")

	content, err := s.complete(ctx, "GenerateCampaignContent", sb.String(), true)
	if err != nil {
		return nil, err
	}

	var campaign openaidomain.CampaignContent
	if err := json.Unmarshal([]byte(utils.ExtractJSON(content)), &campaign); err != nil {
		return nil, NewParseError(err, content)
	}

	if campaign.Headline == "" || campaign.Body == "" {
		return nil, NewParseError(fmt.Errorf("resposta sem headline ou body"), content)
	}

	return &campaign, nil
}

// GenerateCustomerProfile gera um perfil detalhado de cliente em texto livre
func (s *Service) GenerateCustomerProfile(ctx context.Context, customer domain.Customer) (string, error) {
	prompt := fmt.Sprintf(`You are a customer analytics expert. Based on the following information, create a detailed customer profile for %s who lives in %s.

Additional notes (if available):
%s

Generate a comprehensive customer profile that includes demographics, purchasing habits, interests and lifestyle, a realistic financial profile with a credit score (300-850), brand preferences and communication preferences. Make the profile realistic and detailed (2-3 paragraphs). If no specific data is available for this person, create a believable profile based on demographic patterns for someone in %s.

Include a credit score at the end in this format: "Credit Score: XXX"

Respond with just the profile text, no additional formatting or headers.`,
		customer.FullName(), customer.City, customer.Notes, customer.City)

	content, err := s.complete(ctx, "GenerateCustomerProfile", prompt, false)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(content), nil
}

// complete executa uma chamada de chat completion com a mensagem de sistema padrão
func (s *Service) complete(ctx context.Context, operation, prompt string, jsonOutput bool) (string, error) {
	req := openaiclient.ChatCompletionRequest{
		Messages: []openaiclient.Message{
			{
				Role:    openaiclient.RoleSystem,
				Content: "You are a marketing assistant for a financial institution. Be precise and follow the requested output format exactly.",
			},
			{
				Role:    openaiclient.RoleUser,
				Content: prompt,
			},
		},
		JSONOutput: jsonOutput,
	}

	content, err := s.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"operation": operation,
			"error":     err.Error(),
		}).Error("openai: falha na chamada de geração de conteúdo")
		return "", NewGenerationError(err, operation)
	}

	return content, nil
}
