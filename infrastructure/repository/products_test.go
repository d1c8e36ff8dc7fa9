package repository

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/nudge-marketing-api/internal/domain"
)

func newProduct(id, name string, createdAt time.Time) *domain.Product {
	return &domain.Product{
		ID:          id,
		Name:        name,
		Category:    "investimento",
		Description: "Produto de teste",
		Terms: domain.ProductTerms{
			Rate:           11.5,
			MinAmount:      1000,
			MaxAmount:      50000,
			DurationMonths: 12,
		},
		Status:    domain.ProductStatusActive,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestProductRepository_PersisteEntreInstancias(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "products.json")

	repo, err := NewProductRepository(path)
	require.NoError(t, err)

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(newProduct("prod-b", "LCI Habitação", base.Add(time.Hour))))
	require.NoError(t, repo.Save(newProduct("prod-a", "CDB Prefixado", base)))

	// Uma nova instância deve enxergar tudo o que foi gravado no documento
	reloaded, err := NewProductRepository(path)
	require.NoError(t, err)

	products, err := reloaded.List()
	require.NoError(t, err)
	require.Len(t, products, 2)

	// A listagem segue a ordem de criação, não a ordem de gravação
	assert.Equal(t, "prod-a", products[0].ID)
	assert.Equal(t, "prod-b", products[1].ID)

	found, err := reloaded.GetByID("prod-a")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "CDB Prefixado", found.Name)
	assert.Equal(t, 11.5, found.Terms.Rate)
}

func TestProductRepository_ArquivoAusenteSignificaCatalogoVazio(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")

	repo, err := NewProductRepository(path)
	require.NoError(t, err)

	products, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, products)

	missing, err := repo.GetByID("prod-x")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProductRepository_RemoveReescreveODocumento(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")

	repo, err := NewProductRepository(path)
	require.NoError(t, err)

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(newProduct("prod-a", "CDB Prefixado", base)))
	require.NoError(t, repo.Save(newProduct("prod-b", "LCI Habitação", base.Add(time.Hour))))

	require.NoError(t, repo.Remove("prod-a"))

	reloaded, err := NewProductRepository(path)
	require.NoError(t, err)

	products, err := reloaded.List()
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "prod-b", products[0].ID)
}

func TestProductRepository_RetornaCopias(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")

	repo, err := NewProductRepository(path)
	require.NoError(t, err)

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(newProduct("prod-a", "CDB Prefixado", base)))

	first, err := repo.GetByID("prod-a")
	require.NoError(t, err)
	first.Name = "alterado fora do repositório"

	second, err := repo.GetByID("prod-a")
	require.NoError(t, err)
	assert.Equal(t, "CDB Prefixado", second.Name)
}

func TestProductRepository_ArquivoCorrompido(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte("{isso não é json"), 0o644))

	_, err := NewProductRepository(path)
	assert.Error(t, err)
}
