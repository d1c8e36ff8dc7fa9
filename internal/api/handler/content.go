package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/nudge-marketing-api/infrastructure/integrator/openai"
	openaidomain "github.com/vfg2006/nudge-marketing-api/infrastructure/integrator/openai/domain"
	"github.com/vfg2006/nudge-marketing-api/pkg/apiErrors"
)

// GenerateCampaignContent gera o texto de uma campanha avulsa. Diferente do
// disparo em lote, aqui a falha de geração é propagada para o cliente.
func GenerateCampaignContent(generator openai.ContentGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GenerateCampaignContent")

		var req openaidomain.CampaignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if req.ProductName == "" || req.Audience == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "product_name e audience são obrigatórios", nil)
			return
		}

		content, err := generator.GenerateCampaignContent(r.Context(), req)
		if err != nil {
			logrus.Error(err)

			var parseErr *openai.ParseError
			if errors.As(err, &parseErr) {
				apiErrors.WriteError(w, apiErrors.ErrContentGeneration, parseErr.Error(), map[string]any{
					"raw": parseErr.Raw,
				})
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrContentGeneration, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(content); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}
