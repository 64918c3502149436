package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"greenhouse_sim/internal/models"
	"greenhouse_sim/internal/repository"
)

type HistoryService struct {
	runs repository.SweepRuns
}

func NewHistoryService(runs repository.SweepRuns) *HistoryService {
	return &HistoryService{runs: runs}
}

var (
	errInvalidTimeRange = errors.New("invalid time range: From must be <= To")
)

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeVariable trims spaces and lowercases the variable filter.
func normalizeVariable(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

func knownVariable(v string) bool {
	switch models.SweepVariable(v) {
	case models.SweepExhaustFans, models.SweepShading, models.SweepRoofVent, models.SweepFog:
		return true
	}
	return false
}

// normalizeAndValidateFilter prepares query parameters and validates them.
func normalizeAndValidateFilter(f HistoryFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", errInvalidTimeRange
	}

	variable := normalizeVariable(f.Variable)
	if variable != "" && !knownVariable(variable) {
		return time.Time{}, time.Time{}, "", fmt.Errorf("%w: unknown sweep variable %q", ErrInvalidRequest, variable)
	}
	return from, to, variable, nil
}

func (s *HistoryService) List(ctx context.Context, f HistoryFilter) ([]models.SweepRun, error) {
	from, to, variable, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.runs.List(ctx, f.OwnerID, from, to, variable)
}

// Get returns a run of ownerID. Runs of other owners are reported as not found.
func (s *HistoryService) Get(ctx context.Context, ownerID int, id string) (models.SweepRun, error) {
	run, err := s.runs.Get(ctx, id)
	if err != nil {
		return models.SweepRun{}, err
	}
	if run.OwnerID != ownerID {
		return models.SweepRun{}, repository.ErrNotFound
	}
	return run, nil
}
