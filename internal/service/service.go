package service

import (
	"context"
	"errors"
	"time"

	"greenhouse_sim/internal/cache"
	"greenhouse_sim/internal/catalog"
	"greenhouse_sim/internal/engine"
	"greenhouse_sim/internal/logger"
	"greenhouse_sim/internal/models"
	"greenhouse_sim/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Simulation runs the annual and hourly simulations.
type Simulation interface {
	Simulate(ctx context.Context, req SimulationRequest) (models.AnnualSimulationResult, error)
	SimulateDay(ctx context.Context, req DayRequest) (models.DaySimulationResult, error)
}

// Optimizer sweeps one design variable and persists the run.
// onPoint may be nil; it receives points in completion order.
type Optimizer interface {
	Sweep(ctx context.Context, ownerID int, req SweepRequest, onPoint func(models.SweepPoint)) (models.SweepRun, error)
}

// History exposes persisted sweep runs of a designer.
type History interface {
	List(ctx context.Context, f HistoryFilter) ([]models.SweepRun, error)
	Get(ctx context.Context, ownerID int, id string) (models.SweepRun, error)
}

// Catalog exposes the loaded reference data.
type Catalog interface {
	Snapshot(ctx context.Context) CatalogSnapshot
}

// Service aggregates all sub-services.
type Service struct {
	Simulation
	Optimizer
	History
	Catalog
	Authorization
}

// Deps are the runtime settings and shared components of the services.
type Deps struct {
	Catalog    *catalog.Set
	Cache      cache.Cache // nil disables memoization
	Policy     engine.Policy
	Workers    int
	MaxPoints  int
	SigningKey string
	TokenTTL   time.Duration
	Log        *logger.Logger
}

func NewService(repos *repository.Repository, deps Deps) *Service {
	log := logger.OrNop(deps.Log)
	inputs := newInputBuilder(deps.Catalog, deps.Policy)
	return &Service{
		Simulation:    NewSimulationService(inputs, deps.Cache, log.Named("simulation")),
		Optimizer:     NewSweepService(inputs, repos.SweepRuns, deps.Workers, deps.MaxPoints, log.Named("sweep")),
		History:       NewHistoryService(repos.SweepRuns),
		Catalog:       NewCatalogService(deps.Catalog),
		Authorization: NewAuthService(repos.Auth, deps.SigningKey, deps.TokenTTL),
	}
}

// ErrInvalidRequest marks requests that are malformed before reaching the engine.
var ErrInvalidRequest = errors.New("invalid request")

// IsValidation reports whether err was caused by the caller's input rather
// than by the system.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, engine.ErrDimension) ||
		errors.Is(err, engine.ErrInvalidSpec) ||
		errors.Is(err, engine.ErrInvalidRange) ||
		errors.Is(err, catalog.ErrConfiguration) ||
		errors.Is(err, errInvalidTimeRange)
}
