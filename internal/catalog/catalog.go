// Package catalog provides read-only lookup tables for crops, materials and
// seedling prices, and the policy applied when a requested key is missing.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrConfiguration is matched by every ConfigurationError.
var ErrConfiguration = errors.New("catalog configuration error")

// ConfigurationError reports a key that a catalog could not resolve.
type ConfigurationError struct {
	Catalog string
	ID      string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s catalog: %s", e.Catalog, e.Reason)
	}
	return fmt.Sprintf("%s catalog: %s %q", e.Catalog, e.Reason, e.ID)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// FallbackPolicy decides what Resolve does with an unknown id.
type FallbackPolicy int

const (
	// FallbackFirstEntry substitutes the first catalog entry and flags the resolution.
	FallbackFirstEntry FallbackPolicy = iota
	// FallbackStrict returns a ConfigurationError.
	FallbackStrict
)

// ParseFallbackPolicy maps a config value to a policy. Empty means first_entry.
func ParseFallbackPolicy(s string) (FallbackPolicy, error) {
	switch s {
	case "", "first_entry":
		return FallbackFirstEntry, nil
	case "strict":
		return FallbackStrict, nil
	default:
		return 0, fmt.Errorf("unknown catalog fallback policy %q", s)
	}
}

func (p FallbackPolicy) String() string {
	if p == FallbackStrict {
		return "strict"
	}
	return "first_entry"
}

// Resolution is the outcome of a lookup. Fallback is true when Value is a substitute.
type Resolution[T any] struct {
	Value       T
	ResolvedID  string
	RequestedID string
	Fallback    bool
}

// Catalog is an insertion-ordered id → entry table. It is not modified after New.
type Catalog[T any] struct {
	name  string
	ids   []string
	items map[string]T
}

// New builds a catalog from entries; id extracts each entry's key.
func New[T any](name string, entries []T, id func(T) string) (*Catalog[T], error) {
	c := &Catalog[T]{
		name:  name,
		ids:   make([]string, 0, len(entries)),
		items: make(map[string]T, len(entries)),
	}
	for _, e := range entries {
		key := id(e)
		if key == "" {
			return nil, &ConfigurationError{Catalog: name, Reason: "entry without id"}
		}
		if _, dup := c.items[key]; dup {
			return nil, &ConfigurationError{Catalog: name, ID: key, Reason: "duplicate id"}
		}
		c.ids = append(c.ids, key)
		c.items[key] = e
	}
	return c, nil
}

func (c *Catalog[T]) Name() string { return c.name }

func (c *Catalog[T]) Len() int {
	if c == nil {
		return 0
	}
	return len(c.ids)
}

// Get returns the entry for id without applying any fallback.
func (c *Catalog[T]) Get(id string) (T, bool) {
	if c == nil {
		var zero T
		return zero, false
	}
	v, ok := c.items[id]
	return v, ok
}

// IDs returns the keys in insertion order.
func (c *Catalog[T]) IDs() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

// Entries returns the entries in insertion order.
func (c *Catalog[T]) Entries() []T {
	if c == nil {
		return nil
	}
	out := make([]T, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.items[id])
	}
	return out
}

// Resolve looks up id and applies policy when it is missing.
// An empty catalog always yields a ConfigurationError.
func (c *Catalog[T]) Resolve(id string, policy FallbackPolicy) (Resolution[T], error) {
	if v, ok := c.Get(id); ok {
		return Resolution[T]{Value: v, ResolvedID: id, RequestedID: id}, nil
	}
	name := "unnamed"
	if c != nil {
		name = c.name
	}
	if c.Len() == 0 {
		return Resolution[T]{}, &ConfigurationError{Catalog: name, ID: id, Reason: "empty catalog, cannot resolve"}
	}
	if policy == FallbackStrict {
		return Resolution[T]{}, &ConfigurationError{Catalog: name, ID: id, Reason: "unknown id"}
	}
	first := c.ids[0]
	return Resolution[T]{
		Value:       c.items[first],
		ResolvedID:  first,
		RequestedID: id,
		Fallback:    true,
	}, nil
}

// MarshalJSON encodes the entries as an ordered array.
func (c *Catalog[T]) MarshalJSON() ([]byte, error) {
	entries := c.Entries()
	if entries == nil {
		entries = []T{}
	}
	return json.Marshal(entries)
}
