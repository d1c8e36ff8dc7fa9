package openaidomain

// Recommendation é a resposta estruturada esperada para uma recomendação de
// produto: deve conter um identificador de produto conhecido e um score.
type Recommendation struct {
	ProductID       string  `json:"product_id"`
	Confidence      float64 `json:"confidence"`
	Rationale       string  `json:"rationale"`
	Personalization string  `json:"personalization"`
}

// EmailContent é a resposta estruturada esperada para um e-mail gerado
type EmailContent struct {
	Subject  string `json:"subject"`
	BodyHTML string `json:"body_html"`
}

// CampaignRequest são os dados de template específicos por categoria usados
// na geração avulsa de conteúdo de campanha
type CampaignRequest struct {
	Category       string `json:"category"`
	ProductName    string `json:"product_name"`
	Audience       string `json:"audience"`
	Tone           string `json:"tone"`
	KeyBenefit     string `json:"key_benefit"`
	AdditionalInfo string `json:"additional_info,omitempty"`
}

// CampaignContent é a resposta estruturada esperada para conteúdo de campanha
type CampaignContent struct {
	Headline     string `json:"headline"`
	Body         string `json:"body"`
	CallToAction string `json:"call_to_action"`
}
