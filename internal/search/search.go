package search

import (
	"context"
	"fmt"

	"TrendsReporter/internal/domain"
)

// Request carries all parameters required to query one category.
type Request struct {
	Category   string
	Queries    []string
	MaxResults int
}

// Provider captures a single retrieval strategy (Google CSE, RSS, etc.).
type Provider interface {
	Name() string
	Search(ctx context.Context, req Request) ([]domain.ArticleCandidate, error)
}

// Registry keeps a mapping from provider names to their implementations.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: map[string]Provider{}}
}

// Register adds or replaces a provider implementation.
func (r *Registry) Register(provider Provider) {
	if r.providers == nil {
		r.providers = map[string]Provider{}
	}
	r.providers[provider.Name()] = provider
}

// Resolve returns a provider by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Provider, error) {
	if provider, ok := r.providers[name]; ok {
		return provider, nil
	}
	return nil, fmt.Errorf("search provider %s is not registered", name)
}
