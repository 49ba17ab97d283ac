package exchange

import (
	"fmt"
	"sort"
	"sync"

	"github.com/David200308/crypto-price-mcp-server/pkg/config"
)

var (
	registry = make(map[string]Factory)
	mu       sync.RWMutex
)

// Register adds an adapter factory to the registry
func Register(name string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = factory
}

// Create creates a new adapter instance by name
func Create(name string, cfg config.ExchangeConfig, deps Deps) (Adapter, error) {
	mu.RLock()
	defer mu.RUnlock()

	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAdapter, name)
	}

	return factory(cfg, deps)
}

// List returns all registered adapter names, sorted
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
