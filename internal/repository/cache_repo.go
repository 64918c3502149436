package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"greenhouse_sim/internal/models"
)

// SimulationCacheSQLite persists simulation results keyed by input hash.
type SimulationCacheSQLite struct {
	db *sql.DB
}

func NewSimulationCacheSQLite(db *sql.DB) *SimulationCacheSQLite {
	return &SimulationCacheSQLite{db: db}
}

var _ SimulationCache = (*SimulationCacheSQLite)(nil)

const (
	upsertSimulationSQL = `
		INSERT INTO simulation_cache (key, result_json, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			result_json=excluded.result_json,
			created_at=excluded.created_at
	`

	selectSimulationSQL = `SELECT result_json FROM simulation_cache WHERE key = ?`
)

// Put stores or replaces the result for key.
func (r *SimulationCacheSQLite) Put(ctx context.Context, key string, res models.AnnualSimulationResult) error {
	b, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode simulation result: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, upsertSimulationSQL, key, string(b), time.Now().UTC().Format(sqliteTimeLayout)); err != nil {
		return fmt.Errorf("upsert simulation %s: %w", key, err)
	}
	return nil
}

// Get returns the stored result; ok is false when key is absent.
func (r *SimulationCacheSQLite) Get(ctx context.Context, key string) (models.AnnualSimulationResult, bool, error) {
	var raw string
	if err := r.db.QueryRowContext(ctx, selectSimulationSQL, key).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.AnnualSimulationResult{}, false, nil
		}
		return models.AnnualSimulationResult{}, false, err
	}
	var res models.AnnualSimulationResult
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		return models.AnnualSimulationResult{}, false, fmt.Errorf("decode simulation %s: %w", key, err)
	}
	return res, true, nil
}
