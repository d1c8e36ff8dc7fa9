package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/nudge-marketing-api/internal/domain"
	"github.com/vfg2006/nudge-marketing-api/internal/usecases/cataloging"
	"github.com/vfg2006/nudge-marketing-api/pkg/apiErrors"
)

type ExportProductsRequest struct {
	Format     string   `json:"format"`
	ProductIDs []string `json:"product_ids,omitempty"`
}

type ExportProductsResponse struct {
	File string `json:"file"`
}

// ListProducts lista os produtos do catálogo, com filtros opcionais por
// status, categoria e busca textual via query string
func ListProducts(service cataloging.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters := domain.ProductFilters{
			Status:   domain.ProductStatus(r.URL.Query().Get("status")),
			Category: r.URL.Query().Get("category"),
			Search:   r.URL.Query().Get("search"),
		}

		products, err := service.ListProducts(filters)
		if err != nil {
			handleCatalogError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(products); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// GetProduct retorna um produto do catálogo por ID
func GetProduct(service cataloging.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do produto não fornecido", nil)
			return
		}

		product, err := service.GetProduct(id)
		if err != nil {
			handleCatalogError(w, err)
			return
		}

		if product == nil {
			apiErrors.WriteError(w, apiErrors.ErrProductNotFound, "Produto não encontrado", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(product); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// CreateProduct insere um produto novo no catálogo
func CreateProduct(service cataloging.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateProduct")

		var product *domain.Product
		if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		created, err := service.AddProduct(product)
		if err != nil {
			handleCatalogError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(created); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// UpdateProduct aplica uma atualização parcial a um produto existente
func UpdateProduct(service cataloging.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UpdateProduct")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do produto não fornecido", nil)
			return
		}

		var req domain.UpdateProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		product, err := service.UpdateProduct(id, &req)
		if err != nil {
			handleCatalogError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(product); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// DeleteProduct remove um produto. Por padrão a remoção é lógica (o produto
// fica inativo); com ?hard=true o produto sai do arquivo em definitivo.
func DeleteProduct(service cataloging.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - DeleteProduct")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do produto não fornecido", nil)
			return
		}

		hard := r.URL.Query().Get("hard") == "true"

		if err := service.DeleteProduct(id, hard); err != nil {
			handleCatalogError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// GetProductStatistics retorna os agregados do catálogo
func GetProductStatistics(service cataloging.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := service.Statistics()
		if err != nil {
			handleCatalogError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(stats); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// ExportProducts exporta o catálogo (ou um subconjunto) para JSON ou CSV e
// retorna o caminho do arquivo gerado
func ExportProducts(service cataloging.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ExportProducts")

		var req ExportProductsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		file, err := service.Export(req.Format, req.ProductIDs)
		if err != nil {
			handleCatalogError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(ExportProductsResponse{File: file}); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// handleCatalogError converte erros do catálogo em respostas padronizadas
func handleCatalogError(w http.ResponseWriter, err error) {
	logrus.Error(err)

	var catalogErr *cataloging.CatalogError
	if errors.As(err, &catalogErr) {
		var details any
		if catalogErr.ProductID != "" {
			details = map[string]any{"product_id": catalogErr.ProductID}
		}
		apiErrors.WriteError(w, catalogErr.Code, catalogErr.Error(), details)
		return
	}

	switch {
	case errors.Is(err, cataloging.ErrValidation):
		apiErrors.WriteError(w, apiErrors.ErrProductValidation, err.Error(), nil)

	case errors.Is(err, cataloging.ErrNotFound):
		apiErrors.WriteError(w, apiErrors.ErrProductNotFound, err.Error(), nil)

	case errors.Is(err, cataloging.ErrDuplicate):
		apiErrors.WriteError(w, apiErrors.ErrProductDuplicate, err.Error(), nil)

	case errors.Is(err, cataloging.ErrUnsupportedFormat):
		apiErrors.WriteError(w, apiErrors.ErrUnsupportedFormat, err.Error(), nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrStorageOperation, "Erro ao acessar o catálogo de produtos", nil)
	}
}
