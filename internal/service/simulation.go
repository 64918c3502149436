package service

import (
	"context"
	"fmt"

	"greenhouse_sim/internal/cache"
	"greenhouse_sim/internal/engine"
	"greenhouse_sim/internal/logger"
	"greenhouse_sim/internal/metrics"
	"greenhouse_sim/internal/models"
)

type SimulationService struct {
	inputs *inputBuilder
	cache  cache.Cache
	log    *logger.Logger
}

func NewSimulationService(inputs *inputBuilder, c cache.Cache, log *logger.Logger) *SimulationService {
	return &SimulationService{inputs: inputs, cache: c, log: logger.OrNop(log)}
}

// Simulate runs the annual simulation, serving repeated inputs from the cache.
func (s *SimulationService) Simulate(ctx context.Context, req SimulationRequest) (models.AnnualSimulationResult, error) {
	in, err := s.inputs.Build(req)
	if err != nil {
		metrics.Simulations.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return models.AnnualSimulationResult{}, err
	}

	var key string
	if s.cache != nil {
		if key, err = cache.Key(in); err != nil {
			s.log.Warnw("simulation_cache_key_failed", "err", err)
		} else {
			res, ok := s.cache.Get(ctx, key)
			metrics.ObserveCache(ok)
			if ok {
				s.log.Debugw("simulation_cache_hit", "key", key)
				metrics.Simulations.WithLabelValues(metrics.OutcomeOK).Inc()
				s.logDiagnostics(res.Diagnostics)
				return res, nil
			}
		}
	}

	res, err := engine.Simulate(in)
	if err != nil {
		if IsValidation(err) {
			metrics.Simulations.WithLabelValues(metrics.OutcomeInvalid).Inc()
		} else {
			metrics.Simulations.WithLabelValues(metrics.OutcomeError).Inc()
		}
		return models.AnnualSimulationResult{}, err
	}
	metrics.Simulations.WithLabelValues(metrics.OutcomeOK).Inc()
	s.logDiagnostics(res.Diagnostics)

	if s.cache != nil && key != "" {
		s.cache.Put(ctx, key, res)
	}
	return res, nil
}

func (s *SimulationService) logDiagnostics(diags []models.Diagnostic) {
	for _, d := range diags {
		metrics.Diagnostics.WithLabelValues(d.Code).Inc()
		s.log.Warnw("simulation_diagnostic", "code", d.Code, "month", d.Month, "message", d.Message)
	}
}

// SimulateDay runs the hourly simulation of one day.
func (s *SimulationService) SimulateDay(ctx context.Context, req DayRequest) (models.DaySimulationResult, error) {
	policy, err := s.inputs.policyFor(req.Policy)
	if err != nil {
		return models.DaySimulationResult{}, err
	}
	gh, err := s.inputs.greenhouse(req.Greenhouse, req.Roof)
	if err != nil {
		return models.DaySimulationResult{}, err
	}
	mat, err := s.inputs.material(gh, policy)
	if err != nil {
		return models.DaySimulationResult{}, err
	}
	if mat.Fallback {
		metrics.Diagnostics.WithLabelValues(models.DiagCatalogFallback).Inc()
		s.log.Warnw("catalog_fallback", "catalog", "material", "requested", mat.RequestedID, "resolved", mat.ResolvedID)
	}
	res, err := engine.SimulateDay(gh, req.Fans, mat.Value, req.Hours)
	if err != nil {
		return models.DaySimulationResult{}, fmt.Errorf("simulate day: %w", err)
	}
	return res, nil
}
