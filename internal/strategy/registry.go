package strategy

import (
	"fmt"
	"sort"
)

// Registry holds strategies keyed by name so the HTTP layer can dispatch
// to them. It is populated at startup and read-only afterwards.
type Registry struct {
	strategies map[string]Strategy
}

// NewRegistry creates a registry holding the given strategies.
func NewRegistry(strategies ...Strategy) (*Registry, error) {
	r := &Registry{strategies: make(map[string]Strategy, len(strategies))}
	for _, s := range strategies {
		if err := r.Use(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Use registers a strategy under its name. Duplicate names are rejected.
func (r *Registry) Use(s Strategy) error {
	name := s.Name()
	if name == "" {
		return fmt.Errorf("strategy has no name")
	}
	if _, ok := r.strategies[name]; ok {
		return fmt.Errorf("strategy %s is already registered", name)
	}
	r.strategies[name] = s
	return nil
}

// Get returns the strategy registered under name.
func (r *Registry) Get(name string) (Strategy, error) {
	s, ok := r.strategies[name]
	if !ok {
		return nil, fmt.Errorf("unknown authentication strategy: %s", name)
	}
	return s, nil
}

// Names returns the registered strategy names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
