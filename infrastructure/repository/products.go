package repository

import (
	"os"
	"path/filepath"
	"sort"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/nudge-marketing-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ProductRepository é o dono exclusivo do documento JSON de produtos.
// Toda mutação reescreve o documento inteiro; aceitável para centenas de
// registros, mas não escala — limitação conhecida do formato de armazenamento.
type ProductRepository interface {
	GetByID(id string) (*domain.Product, error)
	List() ([]*domain.Product, error)
	Save(product *domain.Product) error
	Remove(id string) error
}

type productRepository struct {
	path     string
	mu       sync.RWMutex
	products map[string]*domain.Product
}

type productsDocument struct {
	Products []*domain.Product `json:"products"`
}

func NewProductRepository(path string) (ProductRepository, error) {
	repo := &productRepository{
		path:     path,
		products: make(map[string]*domain.Product),
	}

	if err := repo.load(); err != nil {
		return nil, err
	}

	return repo, nil
}

// load carrega o documento do disco; a ausência do arquivo significa catálogo vazio
func (r *productRepository) load() error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, "erro ao ler o arquivo de produtos")
	}

	if len(data) == 0 {
		return nil
	}

	var doc productsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(err, "erro ao decodificar o arquivo de produtos")
	}

	for _, product := range doc.Products {
		r.products[product.ID] = product
	}

	return nil
}

// persist reescreve o documento inteiro no disco
func (r *productRepository) persist() error {
	doc := productsDocument{Products: make([]*domain.Product, 0, len(r.products))}
	for _, product := range r.products {
		doc.Products = append(doc.Products, product)
	}

	// Ordenar por data de criação para manter o documento estável entre escritas
	sort.Slice(doc.Products, func(i, j int) bool {
		if doc.Products[i].CreatedAt.Equal(doc.Products[j].CreatedAt) {
			return doc.Products[i].ID < doc.Products[j].ID
		}
		return doc.Products[i].CreatedAt.Before(doc.Products[j].CreatedAt)
	})

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "erro ao serializar produtos")
	}

	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "erro ao criar diretório de dados")
		}
	}

	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return errors.Wrap(err, "erro ao gravar o arquivo de produtos")
	}

	return nil
}

// GetByID retorna o produto ou nil quando ausente (ausência não é erro)
func (r *productRepository) GetByID(id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, nil
	}

	copied := *product
	return &copied, nil
}

func (r *productRepository) List() ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		copied := *product
		products = append(products, &copied)
	}

	sort.Slice(products, func(i, j int) bool {
		if products[i].CreatedAt.Equal(products[j].CreatedAt) {
			return products[i].ID < products[j].ID
		}
		return products[i].CreatedAt.Before(products[j].CreatedAt)
	})

	return products, nil
}

// Save insere ou substitui o produto e persiste o documento
func (r *productRepository) Save(product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *product
	r.products[product.ID] = &copied

	return r.persist()
}

func (r *productRepository) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.products, id)

	return r.persist()
}
