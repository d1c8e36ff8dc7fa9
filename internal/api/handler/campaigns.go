package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/nudge-marketing-api/infrastructure/repository"
	"github.com/vfg2006/nudge-marketing-api/internal/domain"
	"github.com/vfg2006/nudge-marketing-api/internal/usecases/campaigning"
	"github.com/vfg2006/nudge-marketing-api/internal/usecases/cataloging"
	"github.com/vfg2006/nudge-marketing-api/pkg/apiErrors"
)

type DispatchRequest struct {
	CampaignID       string         `json:"campaign_id,omitempty"`
	ChunkSize        int            `json:"chunk_size,omitempty"`
	UseBatchEndpoint bool           `json:"use_batch_endpoint,omitempty"`
	Matches          []domain.Match `json:"matches"`
}

// DispatchCampaign executa o disparo completo e responde com o resultado
// agregado em JSON
func DispatchCampaign(dispatcher campaigning.Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - DispatchCampaign")

		req, ok := decodeDispatchRequest(w, r)
		if !ok {
			return
		}

		result := dispatcher.Dispatch(r.Context(), req.Matches, campaigning.Options{
			CampaignID:       req.CampaignID,
			ChunkSize:        req.ChunkSize,
			UseBatchEndpoint: req.UseBatchEndpoint,
		})

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// DispatchCampaignStream executa o disparo emitindo o progresso por
// Server-Sent Events. Cada marco vira um frame "data:" com o evento em JSON;
// o frame terminal é do tipo complete (ou error, se o disparo não chega a
// enviar nada).
func DispatchCampaignStream(dispatcher campaigning.Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - DispatchCampaignStream")

		req, ok := decodeDispatchRequest(w, r)
		if !ok {
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Streaming não suportado pela conexão", nil)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		emit := func(event campaigning.ProgressEvent) {
			payload, err := json.Marshal(event)
			if err != nil {
				logrus.WithError(err).Error("Erro ao serializar evento de progresso")
				return
			}

			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}

		dispatcher.DispatchWithProgress(r.Context(), req.Matches, campaigning.Options{
			CampaignID:       req.CampaignID,
			ChunkSize:        req.ChunkSize,
			UseBatchEndpoint: req.UseBatchEndpoint,
		}, emit)
	}
}

// PreviewCampaignEmail retorna o e-mail gerado para um par cliente/produto,
// aproveitando o cache de previews
func PreviewCampaignEmail(
	dispatcher campaigning.Dispatcher,
	customerRepo repository.CustomerRepository,
	catalogService cataloging.CatalogService,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID := r.URL.Query().Get("customer_id")
		productID := r.URL.Query().Get("product_id")
		if customerID == "" || productID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "customer_id e product_id são obrigatórios", nil)
			return
		}

		customer, err := customerRepo.GetCustomerByID(customerID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrSpreadsheetFailure, "Erro ao ler a planilha de clientes", nil)
			return
		}
		if customer == nil {
			apiErrors.WriteError(w, apiErrors.ErrCustomerNotFound, "Cliente não encontrado", nil)
			return
		}

		product, err := catalogService.GetProduct(productID)
		if err != nil {
			handleCatalogError(w, err)
			return
		}
		if product == nil {
			apiErrors.WriteError(w, apiErrors.ErrProductNotFound, "Produto não encontrado", nil)
			return
		}

		email := dispatcher.Preview(r.Context(), *customer, product)
		if !email.Success {
			apiErrors.WriteError(w, apiErrors.ErrContentGeneration, email.Error, nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(email); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

func decodeDispatchRequest(w http.ResponseWriter, r *http.Request) (DispatchRequest, bool) {
	var req DispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
		return req, false
	}

	if len(req.Matches) == 0 {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nenhum match fornecido para disparo", nil)
		return req, false
	}

	return req, true
}
