package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"greenhouse_sim/internal/models"
)

// ErrNotFound is returned by lookups by primary key that match no row.
var ErrNotFound = errors.New("not found")

// sqliteTimeLayout is the TIMESTAMP text format written to sqlite.
const sqliteTimeLayout = "2006-01-02 15:04:05"

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type SweepRuns interface {
	Save(ctx context.Context, run models.SweepRun) (string, error)
	Get(ctx context.Context, id string) (models.SweepRun, error)
	List(ctx context.Context, ownerID int, from, to time.Time, variable string) ([]models.SweepRun, error)
}

type SimulationCache interface {
	Get(ctx context.Context, key string) (models.AnnualSimulationResult, bool, error)
	Put(ctx context.Context, key string, res models.AnnualSimulationResult) error
}

type Repository struct {
	Auth            Authorization
	SweepRuns       SweepRuns
	SimulationCache SimulationCache
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Auth:            NewUserRepository(db),
		SweepRuns:       NewSweepRunSQLite(db),
		SimulationCache: NewSimulationCacheSQLite(db),
	}
}
