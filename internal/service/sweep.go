package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"greenhouse_sim/internal/engine"
	"greenhouse_sim/internal/logger"
	"greenhouse_sim/internal/metrics"
	"greenhouse_sim/internal/models"
	"greenhouse_sim/internal/repository"
)

type SweepService struct {
	inputs    *inputBuilder
	runs      repository.SweepRuns
	workers   int
	maxPoints int
	log       *logger.Logger
}

func NewSweepService(inputs *inputBuilder, runs repository.SweepRuns, workers, maxPoints int, log *logger.Logger) *SweepService {
	return &SweepService{inputs: inputs, runs: runs, workers: workers, maxPoints: maxPoints, log: logger.OrNop(log)}
}

// plan resolves the range and cost model, falling back to the built-in ones.
func (s *SweepService) plan(req SweepRequest, gh models.GreenhouseSpec) (models.SweepRange, engine.CostModel, error) {
	r := models.SweepRange{}
	if req.Range != nil {
		r = *req.Range
	} else {
		def, err := engine.DefaultRange(req.Variable, gh)
		if err != nil {
			return r, nil, err
		}
		r = def
	}
	params := engine.DefaultCostParams()
	if req.Costs != nil {
		params = *req.Costs
	}
	cost, err := engine.DefaultCostModel(req.Variable, gh, params)
	if err != nil {
		return r, nil, err
	}
	return r, cost, nil
}

// Sweep evaluates the request and stores the run under ownerID. A cancelled
// sweep is not stored; its partial result is returned with the context error.
func (s *SweepService) Sweep(ctx context.Context, ownerID int, req SweepRequest, onPoint func(models.SweepPoint)) (models.SweepRun, error) {
	in, err := s.inputs.Build(req.SimulationRequest)
	if err != nil {
		return models.SweepRun{}, err
	}
	r, cost, err := s.plan(req, in.Greenhouse)
	if err != nil {
		return models.SweepRun{}, err
	}

	variable := string(req.Variable)
	var failedOnce sync.Once
	opts := engine.SweepOptions{
		Workers:   s.workers,
		MaxPoints: s.maxPoints,
		OnPoint: func(p models.SweepPoint) {
			metrics.ObservePoint(variable, p.OK())
			if !p.OK() {
				failedOnce.Do(func() {
					s.log.Warnw("sweep_point_failed", "variable", variable, "value", p.Value, "err", p.Error)
				})
			}
			if onPoint != nil {
				onPoint(p)
			}
		},
	}

	start := time.Now()
	res, err := engine.Sweep(ctx, in, req.Variable, r, cost, opts)
	metrics.SweepDuration.WithLabelValues(variable).Observe(time.Since(start).Seconds())
	run := models.SweepRun{OwnerID: ownerID, Variable: req.Variable, Result: res}
	if err != nil {
		return run, err
	}

	s.log.Infow("sweep_completed",
		"variable", variable, "points", len(res.Points), "failed", res.Failed,
		"best_index", res.BestIndex, "duration", time.Since(start))

	if run.Request, err = json.Marshal(req); err != nil {
		return run, fmt.Errorf("encode sweep request: %w", err)
	}
	if run.ID, err = s.runs.Save(ctx, run); err != nil {
		return run, fmt.Errorf("save sweep run: %w", err)
	}
	return run, nil
}
