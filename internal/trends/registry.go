package trends

import (
	"fmt"

	"TrendPoster/internal/domain"
	"TrendPoster/internal/ports"
)

// Registry keeps a mapping from source identities to their provider implementations.
type Registry struct {
	providers map[domain.Source]ports.TrendProvider
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: map[domain.Source]ports.TrendProvider{}}
}

// Register adds or replaces a provider implementation.
func (r *Registry) Register(provider ports.TrendProvider) {
	if r.providers == nil {
		r.providers = map[domain.Source]ports.TrendProvider{}
	}
	r.providers[provider.Source()] = provider
}

// Resolve returns a provider by source or an error if it is absent.
func (r *Registry) Resolve(source domain.Source) (ports.TrendProvider, error) {
	if provider, ok := r.providers[source]; ok {
		return provider, nil
	}
	return nil, fmt.Errorf("provider %s is not registered", source)
}
