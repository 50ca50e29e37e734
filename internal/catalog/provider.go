package catalog

import (
	"sync"

	"talentbridge_backend/pkg/logger"

	"go.uber.org/zap"
)

// Provider holds the live catalog. Reload swaps it atomically and keeps the old
// catalog when the new file does not validate.
type Provider struct {
	mu      sync.RWMutex
	path    string
	current *Catalog
}

func NewProvider(path string) (*Provider, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Provider{path: path, current: c}, nil
}

// NewStaticProvider serves a fixed catalog. Reload is a no-op.
func NewStaticProvider(c *Catalog) *Provider {
	return &Provider{current: c}
}

func (p *Provider) Current() *Catalog {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

func (p *Provider) Path() string {
	return p.path
}

func (p *Provider) Reload() error {
	if p.path == "" {
		return nil
	}
	c, err := Load(p.path)
	if err != nil {
		logger.Log.Error("Catalog reload rejected, keeping previous catalog",
			zap.String("path", p.path), zap.Error(err))
		return err
	}

	p.mu.Lock()
	p.current = c
	p.mu.Unlock()

	logger.Log.Info("Catalog reloaded", zap.String("path", p.path))
	return nil
}
