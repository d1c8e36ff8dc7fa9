package campaigning

import (
	"sync"
	"time"

	"github.com/vfg2006/nudge-marketing-api/internal/domain"
)

// PreviewCache memoriza e-mails gerados por par (cliente, produto) com TTL.
// A expiração é preguiçosa: entradas vencidas são tratadas como ausentes na
// leitura e sobrescritas no próximo Set — não há varredura ativa, então o
// mapa cresce durante a vida do processo (limitação conhecida).
type PreviewCache struct {
	mu      sync.RWMutex
	entries map[previewKey]previewEntry
	ttl     time.Duration
	now     func() time.Time
}

type previewKey struct {
	customerID string
	productID  string
}

type previewEntry struct {
	email    domain.GeneratedEmail
	storedAt time.Time
}

func NewPreviewCache(ttl time.Duration) *PreviewCache {
	return &PreviewCache{
		entries: make(map[previewKey]previewEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// WithClock substitui a fonte de tempo, usado nos testes de expiração
func (c *PreviewCache) WithClock(now func() time.Time) *PreviewCache {
	c.now = now
	return c
}

// Get retorna o e-mail memorizado se ainda estiver dentro do TTL
func (c *PreviewCache) Get(customerID, productID string) (domain.GeneratedEmail, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[previewKey{customerID: customerID, productID: productID}]
	if !ok {
		return domain.GeneratedEmail{}, false
	}

	if c.now().Sub(entry.storedAt) >= c.ttl {
		return domain.GeneratedEmail{}, false
	}

	return entry.email, true
}

// Set memoriza o e-mail com o instante atual, sobrescrevendo entrada anterior
func (c *PreviewCache) Set(customerID, productID string, email domain.GeneratedEmail) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[previewKey{customerID: customerID, productID: productID}] = previewEntry{
		email:    email,
		storedAt: c.now(),
	}
}

// Len retorna o número de entradas, incluindo as já vencidas
func (c *PreviewCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
