package cataloging

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/nudge-marketing-api/infrastructure/repository"
	"github.com/vfg2006/nudge-marketing-api/internal/config"
	"github.com/vfg2006/nudge-marketing-api/internal/domain"
	"github.com/vfg2006/nudge-marketing-api/pkg/apiErrors"
	"github.com/vfg2006/nudge-marketing-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Formatos de exportação aceitos
const (
	ExportFormatJSON = "json"
	ExportFormatCSV  = "csv"
)

type CatalogService interface {
	AddProduct(product *domain.Product) (*domain.Product, error)
	GetProduct(id string) (*domain.Product, error)
	ListProducts(filters domain.ProductFilters) ([]*domain.Product, error)
	UpdateProduct(id string, req *domain.UpdateProductRequest) (*domain.Product, error)
	DeleteProduct(id string, hard bool) error
	Statistics() (*domain.ProductStatistics, error)
	Export(format string, ids []string) (string, error)
}

type Service struct {
	productRepo repository.ProductRepository
	cfg         *config.Config
}

func NewService(productRepo repository.ProductRepository, cfg *config.Config) CatalogService {
	return &Service{
		productRepo: productRepo,
		cfg:         cfg,
	}
}

// AddProduct valida e insere um produto novo com status padrão active
func (s *Service) AddProduct(product *domain.Product) (*domain.Product, error) {
	if product.ID == "" || product.Name == "" || product.Category == "" {
		return nil, NewCatalogError(ErrValidation, apiErrors.ErrProductValidation, "id, nome e categoria são obrigatórios")
	}

	existing, err := s.productRepo.GetByID(product.ID)
	if err != nil {
		return nil, NewCatalogError(err, apiErrors.ErrStorageOperation, "erro ao consultar produto")
	}
	if existing != nil {
		return nil, NewCatalogErrorWithID(ErrDuplicate, apiErrors.ErrProductDuplicate, product.ID, "")
	}

	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	if product.Status == "" {
		product.Status = domain.ProductStatusActive
	}

	if err := s.productRepo.Save(product); err != nil {
		return nil, NewCatalogError(err, apiErrors.ErrStorageOperation, "erro ao persistir produto")
	}

	logrus.WithFields(logrus.Fields{
		"product_id": product.ID,
		"category":   product.Category,
	}).Info("catalog: produto cadastrado")

	return product, nil
}

// GetProduct retorna o produto ou nil quando ausente (ausência não é erro)
func (s *Service) GetProduct(id string) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, NewCatalogError(err, apiErrors.ErrStorageOperation, "erro ao consultar produto")
	}

	return product, nil
}

// ListProducts retorna os produtos, opcionalmente filtrados por status,
// categoria e busca textual em nome+descrição
func (s *Service) ListProducts(filters domain.ProductFilters) ([]*domain.Product, error) {
	products, err := s.productRepo.List()
	if err != nil {
		return nil, NewCatalogError(err, apiErrors.ErrStorageOperation, "erro ao listar produtos")
	}

	filtered := make([]*domain.Product, 0, len(products))
	for _, product := range products {
		if filters.Status != "" && product.Status != filters.Status {
			continue
		}
		if filters.Category != "" && !strings.EqualFold(product.Category, filters.Category) {
			continue
		}
		if filters.Search != "" {
			search := strings.ToLower(filters.Search)
			name := strings.ToLower(product.Name)
			description := strings.ToLower(product.Description)
			if !strings.Contains(name, search) && !strings.Contains(description, search) {
				continue
			}
		}
		filtered = append(filtered, product)
	}

	return filtered, nil
}

// UpdateProduct aplica o patch campo a campo e atualiza o timestamp
func (s *Service) UpdateProduct(id string, req *domain.UpdateProductRequest) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, NewCatalogError(err, apiErrors.ErrStorageOperation, "erro ao consultar produto")
	}
	if product == nil {
		return nil, NewCatalogErrorWithID(ErrNotFound, apiErrors.ErrProductNotFound, id, "")
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Terms != nil {
		product.Terms = *req.Terms
	}
	if req.Status != nil {
		product.Status = *req.Status
	}

	product.UpdatedAt = time.Now()

	if err := s.productRepo.Save(product); err != nil {
		return nil, NewCatalogError(err, apiErrors.ErrStorageOperation, "erro ao persistir produto")
	}

	return product, nil
}

// DeleteProduct remove o produto. Soft delete marca o status como inactive e
// registra o momento; hard delete remove o registro do documento.
func (s *Service) DeleteProduct(id string, hard bool) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return NewCatalogError(err, apiErrors.ErrStorageOperation, "erro ao consultar produto")
	}
	if product == nil {
		return NewCatalogErrorWithID(ErrNotFound, apiErrors.ErrProductNotFound, id, "")
	}

	if hard {
		if err := s.productRepo.Remove(id); err != nil {
			return NewCatalogError(err, apiErrors.ErrStorageOperation, "erro ao remover produto")
		}

		logrus.WithField("product_id", id).Info("catalog: produto removido definitivamente")
		return nil
	}

	now := time.Now()
	product.Status = domain.ProductStatusInactive
	product.DeletedAt = &now
	product.UpdatedAt = now

	if err := s.productRepo.Save(product); err != nil {
		return NewCatalogError(err, apiErrors.ErrStorageOperation, "erro ao persistir produto")
	}

	logrus.WithField("product_id", id).Info("catalog: produto desativado")
	return nil
}

// Statistics agrega contagens por status e categoria, além do registro mais
// antigo e do mais recente
func (s *Service) Statistics() (*domain.ProductStatistics, error) {
	products, err := s.productRepo.List()
	if err != nil {
		return nil, NewCatalogError(err, apiErrors.ErrStorageOperation, "erro ao listar produtos")
	}

	stats := &domain.ProductStatistics{
		Total:      len(products),
		ByStatus:   make(map[string]int),
		ByCategory: make(map[string]int),
	}

	for _, product := range products {
		stats.ByStatus[string(product.Status)]++
		stats.ByCategory[product.Category]++

		if stats.Oldest == nil || product.CreatedAt.Before(stats.Oldest.CreatedAt) {
			stats.Oldest = product
		}
		if stats.Newest == nil || product.CreatedAt.After(stats.Newest.CreatedAt) {
			stats.Newest = product
		}
	}

	return stats, nil
}

// Export serializa os produtos selecionados (ou todos) para um arquivo no
// diretório de exportação e retorna o caminho gerado
func (s *Service) Export(format string, ids []string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != ExportFormatJSON && format != ExportFormatCSV {
		return "", NewCatalogError(ErrUnsupportedFormat, apiErrors.ErrUnsupportedFormat, fmt.Sprintf("formato %q", format))
	}

	products, err := s.selectForExport(ids)
	if err != nil {
		return "", err
	}

	suffix, err := utils.GenerateID()
	if err != nil {
		return "", NewCatalogError(err, apiErrors.ErrInternalServer, "erro ao gerar identificador de exportação")
	}

	if err := os.MkdirAll(s.cfg.Catalog.ExportDir, 0o755); err != nil {
		return "", NewCatalogError(err, apiErrors.ErrStorageOperation, "erro ao criar diretório de exportação")
	}

	filename := fmt.Sprintf("products_%s_%s.%s", time.Now().Format("20060102"), suffix, format)
	exportPath := filepath.Join(s.cfg.Catalog.ExportDir, filename)

	switch format {
	case ExportFormatJSON:
		err = writeJSONExport(exportPath, products)
	case ExportFormatCSV:
		err = writeCSVExport(exportPath, products)
	}
	if err != nil {
		return "", NewCatalogError(err, apiErrors.ErrStorageOperation, "erro ao gravar arquivo de exportação")
	}

	logrus.WithFields(logrus.Fields{
		"format": format,
		"count":  len(products),
		"path":   exportPath,
	}).Info("catalog: exportação concluída")

	return exportPath, nil
}

// selectForExport resolve a lista de produtos a exportar; ids vazios exportam tudo
func (s *Service) selectForExport(ids []string) ([]*domain.Product, error) {
	if len(ids) == 0 {
		products, err := s.productRepo.List()
		if err != nil {
			return nil, NewCatalogError(err, apiErrors.ErrStorageOperation, "erro ao listar produtos")
		}
		return products, nil
	}

	products := make([]*domain.Product, 0, len(ids))
	for _, id := range ids {
		product, err := s.productRepo.GetByID(id)
		if err != nil {
			return nil, NewCatalogError(err, apiErrors.ErrStorageOperation, "erro ao consultar produto")
		}
		if product == nil {
			return nil, NewCatalogErrorWithID(ErrNotFound, apiErrors.ErrProductNotFound, id, "")
		}
		products = append(products, product)
	}

	return products, nil
}

func writeJSONExport(path string, products []*domain.Product) error {
	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func writeCSVExport(path string, products []*domain.Product) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"id", "name", "category", "description", "rate", "min_amount", "max_amount", "duration_months", "status", "created_at", "updated_at"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, product := range products {
		record := []string{
			product.ID,
			product.Name,
			product.Category,
			product.Description,
			fmt.Sprintf("%.2f", product.Terms.Rate),
			fmt.Sprintf("%.2f", product.Terms.MinAmount),
			fmt.Sprintf("%.2f", product.Terms.MaxAmount),
			fmt.Sprintf("%d", product.Terms.DurationMonths),
			string(product.Status),
			product.CreatedAt.Format(time.RFC3339),
			product.UpdatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return writer.Error()
}
