package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/nudge-marketing-api/infrastructure/repository"
	"github.com/vfg2006/nudge-marketing-api/internal/domain"
	"github.com/vfg2006/nudge-marketing-api/internal/usecases/cataloging"
	"github.com/vfg2006/nudge-marketing-api/internal/usecases/matching"
	"github.com/vfg2006/nudge-marketing-api/pkg/apiErrors"
)

type RunMatchingRequest struct {
	// CustomerIDs limita o matching a um subconjunto da planilha. Vazio
	// significa todos os clientes.
	CustomerIDs []string `json:"customer_ids,omitempty"`
}

// RunMatching executa o matcher sobre os clientes da planilha contra os
// produtos ativos do catálogo e retorna um match por cliente, na mesma ordem
func RunMatching(
	matcher matching.Matcher,
	customerRepo repository.CustomerRepository,
	catalogService cataloging.CatalogService,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunMatching")

		var req RunMatchingRequest
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				logrus.Error(err)
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
				return
			}
		}

		customers, err := customerRepo.ListCustomers()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrSpreadsheetFailure, "Erro ao ler a planilha de clientes", nil)
			return
		}

		if len(req.CustomerIDs) > 0 {
			customers = filterCustomers(customers, req.CustomerIDs)
		}

		products, err := catalogService.ListProducts(domain.ProductFilters{Status: domain.ProductStatusActive})
		if err != nil {
			handleCatalogError(w, err)
			return
		}

		matches := matcher.MatchAll(r.Context(), customers, products)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(matches); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// filterCustomers mantém apenas os clientes cujo ID está na lista, preservando
// a ordem da planilha
func filterCustomers(customers []domain.Customer, ids []string) []domain.Customer {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	filtered := make([]domain.Customer, 0, len(ids))
	for _, customer := range customers {
		if _, ok := wanted[customer.ID]; ok {
			filtered = append(filtered, customer)
		}
	}

	return filtered
}
