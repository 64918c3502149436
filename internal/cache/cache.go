// Package cache memoizes simulation results by a content hash of their inputs.
// The engine never consults it; callers decide when to read and write.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"

	"greenhouse_sim/internal/engine"
	"greenhouse_sim/internal/logger"
	"greenhouse_sim/internal/models"
)

// Cache stores annual results by key.
type Cache interface {
	Get(ctx context.Context, key string) (models.AnnualSimulationResult, bool)
	Put(ctx context.Context, key string, res models.AnnualSimulationResult)
}

// Key hashes the JSON encoding of in, catalog snapshots and policy included.
// Equal inputs give equal keys.
func Key(in engine.Input) (string, error) {
	b, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("encode simulation input: %w", err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

// Stats reports cache effectiveness.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

// Memory is a bounded in-process cache.
type Memory struct {
	mu     sync.RWMutex
	max    int
	items  map[string]models.AnnualSimulationResult
	hits   int64
	misses int64
}

// DefaultMaxEntries bounds a Memory cache built with a non-positive size.
const DefaultMaxEntries = 4096

func NewMemory(maxEntries int) *Memory {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Memory{max: maxEntries, items: make(map[string]models.AnnualSimulationResult)}
}

func (m *Memory) Get(_ context.Context, key string) (models.AnnualSimulationResult, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.items[key]
	if !ok {
		m.misses++
		return models.AnnualSimulationResult{}, false
	}
	m.hits++
	return clone(res), true
}

// Put stores res. When full, an arbitrary entry is evicted.
func (m *Memory) Put(_ context.Context, key string, res models.AnnualSimulationResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.items[key]; !exists && len(m.items) >= m.max {
		for k := range m.items {
			delete(m.items, k)
			break
		}
	}
	m.items[key] = clone(res)
}

// clone copies the slices of res so cached entries never alias caller memory.
func clone(res models.AnnualSimulationResult) models.AnnualSimulationResult {
	if res.Months != nil {
		res.Months = append([]models.MonthlySimulationRecord(nil), res.Months...)
	}
	if res.Diagnostics != nil {
		res.Diagnostics = append([]models.Diagnostic(nil), res.Diagnostics...)
	}
	return res
}

func (m *Memory) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Stats{Hits: m.hits, Misses: m.misses, Size: len(m.items)}
}

// Store is durable storage behind a Layered cache.
type Store interface {
	Get(ctx context.Context, key string) (models.AnnualSimulationResult, bool, error)
	Put(ctx context.Context, key string, res models.AnnualSimulationResult) error
}

// Layered reads through memory to a Store and writes to both. Store errors
// are logged and treated as misses.
type Layered struct {
	mem   *Memory
	store Store
	log   *logger.Logger
}

func NewLayered(mem *Memory, store Store, log *logger.Logger) *Layered {
	return &Layered{mem: mem, store: store, log: logger.OrNop(log)}
}

func (l *Layered) Get(ctx context.Context, key string) (models.AnnualSimulationResult, bool) {
	if res, ok := l.mem.Get(ctx, key); ok {
		return res, true
	}
	res, ok, err := l.store.Get(ctx, key)
	if err != nil {
		l.log.Warnw("simulation_cache_read_failed", "key", key, "error", err)
		return models.AnnualSimulationResult{}, false
	}
	if ok {
		l.mem.Put(ctx, key, res)
	}
	return res, ok
}

func (l *Layered) Put(ctx context.Context, key string, res models.AnnualSimulationResult) {
	l.mem.Put(ctx, key, res)
	if err := l.store.Put(ctx, key, res); err != nil {
		l.log.Warnw("simulation_cache_write_failed", "key", key, "error", err)
	}
}

func (l *Layered) Stats() Stats { return l.mem.Stats() }
