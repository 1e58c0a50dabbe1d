package embedding

import (
	"fmt"
	"sync"
)

// Loader constructs an Embedder. Loading is expensive (model read and
// session creation), so a Provider ensures it happens at most once.
type Loader func() (Embedder, error)

// Provider guards one-time initialization of a shared Embedder. Concurrent
// first calls result in exactly one successful load; a failed load is not
// cached, so the next call retries. The loaded instance lives for the rest
// of the process.
type Provider struct {
	load Loader
	mu   sync.Mutex
	emb  Embedder
}

// NewProvider returns a Provider that initializes via load on first Get.
func NewProvider(load Loader) *Provider {
	return &Provider{load: load}
}

// Get returns the shared Embedder, loading it on first use.
func (p *Provider) Get() (Embedder, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.emb != nil {
		return p.emb, nil
	}
	emb, err := p.load()
	if err != nil {
		return nil, fmt.Errorf("embedder unavailable: %w", err)
	}
	p.emb = emb
	return p.emb, nil
}

// Close releases the loaded Embedder, if any.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.emb == nil {
		return nil
	}
	err := p.emb.Close()
	p.emb = nil
	return err
}
