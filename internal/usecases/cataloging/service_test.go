package cataloging

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/nudge-marketing-api/infrastructure/repository"
	"github.com/vfg2006/nudge-marketing-api/internal/config"
	"github.com/vfg2006/nudge-marketing-api/internal/domain"
)

func newTestCatalog(t *testing.T) CatalogService {
	t.Helper()

	dir := t.TempDir()
	repo, err := repository.NewProductRepository(filepath.Join(dir, "products.json"))
	require.NoError(t, err)

	cfg := &config.Config{
		Catalog: config.Catalog{ExportDir: filepath.Join(dir, "exports")},
	}

	return NewService(repo, cfg)
}

func catalogProduct(id, name, category string) *domain.Product {
	return &domain.Product{
		ID:          id,
		Name:        name,
		Category:    category,
		Description: "Produto de teste",
		Terms:       domain.ProductTerms{Rate: 10, MinAmount: 100, MaxAmount: 10000, DurationMonths: 12},
	}
}

func TestService_AddProduct(t *testing.T) {
	service := newTestCatalog(t)

	created, err := service.AddProduct(catalogProduct("cdb-01", "CDB Prefixado", "investimento"))
	require.NoError(t, err)

	// Status padrão e timestamps preenchidos
	assert.Equal(t, domain.ProductStatusActive, created.Status)
	assert.False(t, created.CreatedAt.IsZero())

	// O que entrou é o que sai
	got, err := service.GetProduct("cdb-01")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "CDB Prefixado", got.Name)
	assert.Equal(t, created.CreatedAt.Unix(), got.CreatedAt.Unix())
}

func TestService_AddProduct_Validacao(t *testing.T) {
	service := newTestCatalog(t)

	_, err := service.AddProduct(&domain.Product{ID: "x"})
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestService_AddProduct_DuplicadoRejeitado(t *testing.T) {
	service := newTestCatalog(t)

	_, err := service.AddProduct(catalogProduct("cdb-01", "CDB Prefixado", "investimento"))
	require.NoError(t, err)

	_, err = service.AddProduct(catalogProduct("cdb-01", "Outro nome", "investimento"))
	assert.True(t, errors.Is(err, ErrDuplicate))

	var catalogErr *CatalogError
	require.True(t, errors.As(err, &catalogErr))
	assert.Equal(t, "cdb-01", catalogErr.ProductID)
}

func TestService_GetProduct_AusenteNaoEhErro(t *testing.T) {
	service := newTestCatalog(t)

	got, err := service.GetProduct("nao-existe")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestService_ListProducts_Filtros(t *testing.T) {
	service := newTestCatalog(t)

	_, err := service.AddProduct(catalogProduct("cdb-01", "CDB Prefixado", "investimento"))
	require.NoError(t, err)
	_, err = service.AddProduct(catalogProduct("cred-01", "Crédito Pessoal", "credito"))
	require.NoError(t, err)

	inactive := catalogProduct("cdb-02", "CDB Antigo", "investimento")
	inactive.Status = domain.ProductStatusInactive
	_, err = service.AddProduct(inactive)
	require.NoError(t, err)

	tests := []struct {
		name    string
		filters domain.ProductFilters
		wantIDs []string
	}{
		{
			name:    "Sem filtros retorna tudo",
			filters: domain.ProductFilters{},
			wantIDs: []string{"cdb-01", "cred-01", "cdb-02"},
		},
		{
			name:    "Filtro por status active",
			filters: domain.ProductFilters{Status: domain.ProductStatusActive},
			wantIDs: []string{"cdb-01", "cred-01"},
		},
		{
			name:    "Filtro por categoria",
			filters: domain.ProductFilters{Category: "credito"},
			wantIDs: []string{"cred-01"},
		},
		{
			name:    "Busca textual no nome",
			filters: domain.ProductFilters{Search: "pessoal"},
			wantIDs: []string{"cred-01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := service.ListProducts(tt.filters)
			require.NoError(t, err)

			ids := make([]string, 0, len(products))
			for _, product := range products {
				ids = append(ids, product.ID)
			}
			assert.ElementsMatch(t, tt.wantIDs, ids)
		})
	}
}

func TestService_UpdateProduct(t *testing.T) {
	service := newTestCatalog(t)

	_, err := service.AddProduct(catalogProduct("cdb-01", "CDB Prefixado", "investimento"))
	require.NoError(t, err)

	newName := "CDB Pós-fixado"
	newStatus := domain.ProductStatusDraft
	updated, err := service.UpdateProduct("cdb-01", &domain.UpdateProductRequest{
		Name:   &newName,
		Status: &newStatus,
	})
	require.NoError(t, err)

	// Apenas os campos presentes no patch mudam
	assert.Equal(t, "CDB Pós-fixado", updated.Name)
	assert.Equal(t, domain.ProductStatusDraft, updated.Status)
	assert.Equal(t, "investimento", updated.Category)
}

func TestService_UpdateProduct_NaoEncontrado(t *testing.T) {
	service := newTestCatalog(t)

	name := "Qualquer"
	_, err := service.UpdateProduct("nao-existe", &domain.UpdateProductRequest{Name: &name})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestService_DeleteProduct_SoftEHard(t *testing.T) {
	service := newTestCatalog(t)

	_, err := service.AddProduct(catalogProduct("cdb-01", "CDB Prefixado", "investimento"))
	require.NoError(t, err)

	// Soft delete: o produto continua visível, mas inativo e marcado
	require.NoError(t, service.DeleteProduct("cdb-01", false))

	got, err := service.GetProduct("cdb-01")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.ProductStatusInactive, got.Status)
	assert.NotNil(t, got.DeletedAt)

	// Hard delete: o produto some do documento
	require.NoError(t, service.DeleteProduct("cdb-01", true))

	got, err = service.GetProduct("cdb-01")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Remover de novo falha com não encontrado
	err = service.DeleteProduct("cdb-01", true)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestService_Statistics(t *testing.T) {
	service := newTestCatalog(t)

	_, err := service.AddProduct(catalogProduct("cdb-01", "CDB Prefixado", "investimento"))
	require.NoError(t, err)
	_, err = service.AddProduct(catalogProduct("cred-01", "Crédito Pessoal", "credito"))
	require.NoError(t, err)
	require.NoError(t, service.DeleteProduct("cred-01", false))

	stats, err := service.Statistics()
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.ByStatus[string(domain.ProductStatusActive)])
	assert.Equal(t, 1, stats.ByStatus[string(domain.ProductStatusInactive)])
	assert.Equal(t, 1, stats.ByCategory["investimento"])
	assert.NotNil(t, stats.Oldest)
	assert.NotNil(t, stats.Newest)
}

func TestService_Export(t *testing.T) {
	service := newTestCatalog(t)

	_, err := service.AddProduct(catalogProduct("cdb-01", "CDB Prefixado", "investimento"))
	require.NoError(t, err)
	_, err = service.AddProduct(catalogProduct("cred-01", "Crédito Pessoal", "credito"))
	require.NoError(t, err)

	t.Run("JSON com todos os produtos", func(t *testing.T) {
		path, err := service.Export("json", nil)
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(path, ".json"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "cdb-01")
		assert.Contains(t, string(data), "cred-01")
	})

	t.Run("CSV com subconjunto", func(t *testing.T) {
		path, err := service.Export("csv", []string{"cdb-01"})
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(path, ".csv"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "cdb-01")
		assert.NotContains(t, string(data), "cred-01")
	})

	t.Run("Formato desconhecido", func(t *testing.T) {
		_, err := service.Export("xml", nil)
		assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	})

	t.Run("ID inexistente no subconjunto", func(t *testing.T) {
		_, err := service.Export("json", []string{"nao-existe"})
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}
