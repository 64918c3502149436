package engine

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"

	"greenhouse_sim/internal/models"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// DefaultMaxPoints bounds a sweep when the caller sets no limit.
const DefaultMaxPoints = 10000

// SweepOptions tunes execution; the zero value is usable.
type SweepOptions struct {
	Workers   int // parallel evaluations, <= 0 means GOMAXPROCS
	MaxPoints int // <= 0 means DefaultMaxPoints
	// OnPoint is called once per evaluated point in completion order.
	// Calls are serialized.
	OnPoint func(models.SweepPoint)
}

// RangeValues expands a half-open range. Value i is Start + i·Step.
func RangeValues(r models.SweepRange, maxPoints int) ([]float64, error) {
	if maxPoints <= 0 {
		maxPoints = DefaultMaxPoints
	}
	for _, v := range []float64{r.Start, r.Stop, r.Step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: non-finite bound", ErrInvalidRange)
		}
	}
	if r.Step <= 0 {
		return nil, fmt.Errorf("%w: step %v must be > 0", ErrInvalidRange, r.Step)
	}
	if r.Stop <= r.Start {
		return nil, fmt.Errorf("%w: empty range [%v, %v)", ErrInvalidRange, r.Start, r.Stop)
	}
	var out []float64
	for i := 0; ; i++ {
		v := r.Start + float64(i)*r.Step
		if v >= r.Stop {
			break
		}
		if len(out) == maxPoints {
			return nil, fmt.Errorf("%w: more than %d points", ErrInvalidRange, maxPoints)
		}
		out = append(out, v)
	}
	return out, nil
}

// apply returns a copy of in with the swept field set to value.
func apply(in Input, v models.SweepVariable, value float64) (Input, error) {
	switch v {
	case models.SweepExhaustFans:
		in.Fans.ExhaustFanCount = int(math.Round(value))
	case models.SweepShading:
		in.Greenhouse.ShadingPercent = value
	case models.SweepRoofVent:
		in.Greenhouse.RoofVentArea = value
	case models.SweepFog:
		in.Greenhouse.FogCapacity = value
	default:
		return in, fmt.Errorf("%w: unknown variable %q", ErrInvalidRange, v)
	}
	return in, nil
}

// requireWhole rejects fractional fan counts, which would be costed as the
// fraction but simulated as the rounded count.
func requireWhole(values []float64) error {
	for _, v := range values {
		if v != math.Trunc(v) {
			return fmt.Errorf("%w: exhaust fan count %v is not a whole number", ErrInvalidRange, v)
		}
	}
	return nil
}

// Sweep evaluates the annual simulation for every value of r applied to
// variable and returns the points in index order with the most profitable
// one (first on ties). Invalid base inputs fail the whole sweep; a value that
// makes the spec invalid is recorded on its point. On cancellation the points
// completed so far are returned together with ctx.Err().
func Sweep(ctx context.Context, base Input, variable models.SweepVariable, r models.SweepRange, cost CostModel, opts SweepOptions) (models.SweepResult, error) {
	res := models.SweepResult{Variable: variable, BestIndex: -1}
	if cost == nil {
		return res, fmt.Errorf("%w: nil cost model", ErrInvalidRange)
	}
	if _, err := apply(base, variable, 0); err != nil {
		return res, err
	}
	values, err := RangeValues(r, opts.MaxPoints)
	if err != nil {
		return res, err
	}
	if variable == models.SweepExhaustFans {
		if err := requireWhole(values); err != nil {
			return res, err
		}
	}
	if err := base.Validate(); err != nil {
		return res, err
	}
	resolvedBase, err := resolve(base)
	if err != nil {
		return res, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	points := make([]models.SweepPoint, len(values))
	done := make([]bool, len(values))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, value := range values {
		i, value := i, value
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			p := evaluatePoint(base, resolvedBase, variable, i, value, cost)
			mu.Lock()
			points[i] = p
			done[i] = true
			if opts.OnPoint != nil {
				opts.OnPoint(p)
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	for i := range points {
		if done[i] {
			res.Points = append(res.Points, points[i])
		}
	}
	res.Failed, res.BestIndex = summarize(res.Points)
	if res.BestIndex >= 0 {
		for i := range res.Points {
			if res.Points[i].Index == res.BestIndex {
				best := res.Points[i]
				res.Best = &best
				break
			}
		}
	}
	return res, ctx.Err()
}

func evaluatePoint(base Input, r *resolved, variable models.SweepVariable, index int, value float64, cost CostModel) models.SweepPoint {
	p := models.SweepPoint{Index: index, Value: value}
	in, err := apply(base, variable, value)
	if err == nil {
		err = validateGreenhouse(in.Greenhouse, in.Fans)
	}
	if err != nil {
		p.Error = err.Error()
		return p
	}
	annual := run(in, r)
	c := cost.AnnualCost(value)
	if math.IsNaN(c) || math.IsInf(c, 0) {
		p.Error = fmt.Sprintf("cost model returned %v", c)
		return p
	}
	p.Revenue = annual.TotalRevenue
	p.Yield = annual.TotalYield
	p.Cost = c
	p.Profit = annual.TotalRevenue - c
	return p
}

// summarize counts failed points and returns the sweep index of the first
// maximum profit among successful ones, or -1.
func summarize(points []models.SweepPoint) (failed, bestIndex int) {
	profits := make([]float64, 0, len(points))
	indexes := make([]int, 0, len(points))
	for _, p := range points {
		if !p.OK() {
			failed++
			continue
		}
		profits = append(profits, p.Profit)
		indexes = append(indexes, p.Index)
	}
	if len(profits) == 0 {
		return failed, -1
	}
	return failed, indexes[floats.MaxIdx(profits)]
}
