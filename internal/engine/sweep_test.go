package engine

import (
	"context"
	"sync"
	"testing"

	"greenhouse_sim/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeValues(t *testing.T) {
	got, err := RangeValues(models.SweepRange{Start: 0, Stop: 95, Step: 10}, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90}, got)

	got, err = RangeValues(models.SweepRange{Start: 0, Stop: 3, Step: 1}, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2}, got)

	bad := []models.SweepRange{
		{Start: 0, Stop: 10, Step: 0},
		{Start: 0, Stop: 10, Step: -1},
		{Start: 5, Stop: 5, Step: 1},
	}
	for _, r := range bad {
		_, err := RangeValues(r, 0)
		assert.ErrorIs(t, err, ErrInvalidRange, "%+v", r)
	}

	_, err = RangeValues(models.SweepRange{Start: 0, Stop: 100, Step: 1}, 50)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestSweepBestIsFirstMaxProfit(t *testing.T) {
	in := testInput(t)
	res, err := Sweep(context.Background(), in, models.SweepExhaustFans,
		models.SweepRange{Start: 0, Stop: 20, Step: 1}, FanCost(DefaultCostParams()), SweepOptions{Workers: 4})
	require.NoError(t, err)
	require.Len(t, res.Points, 20)
	require.NotNil(t, res.Best)

	best := 0
	for i, p := range res.Points {
		assert.Equal(t, i, p.Index)
		assert.Equal(t, float64(i), p.Value)
		assert.InDelta(t, p.Revenue-p.Cost, p.Profit, 1e-9)
		if p.Profit > res.Points[best].Profit {
			best = i
		}
	}
	assert.Equal(t, best, res.BestIndex)
	assert.Equal(t, res.Points[best], *res.Best)
	assert.Equal(t, 0, res.Failed)
}

func TestSweepRejectsFractionalFanCounts(t *testing.T) {
	in := testInput(t)
	calls := 0
	cost := CostFunc(func(v float64) float64 { calls++; return 100 * v })

	res, err := Sweep(context.Background(), in, models.SweepExhaustFans,
		models.SweepRange{Start: 0, Stop: 3, Step: 0.5}, cost, SweepOptions{})
	require.ErrorIs(t, err, ErrInvalidRange)
	assert.Empty(t, res.Points)
	assert.Equal(t, -1, res.BestIndex)
	assert.Zero(t, calls)

	// fractional values stay valid for continuous variables
	res, err = Sweep(context.Background(), in, models.SweepShading,
		models.SweepRange{Start: 0, Stop: 3, Step: 0.5}, cost, SweepOptions{Workers: 1})
	require.NoError(t, err)
	assert.Len(t, res.Points, 6)
}

func TestSweepMatchesSimulate(t *testing.T) {
	in := testInput(t)
	res, err := Sweep(context.Background(), in, models.SweepShading,
		models.SweepRange{Start: 0, Stop: 95, Step: 10}, ShadingCost(DefaultCostParams(), in.Greenhouse.FloorArea()), SweepOptions{})
	require.NoError(t, err)

	for _, p := range res.Points {
		single := in
		single.Greenhouse.ShadingPercent = p.Value
		annual, err := Simulate(single)
		require.NoError(t, err)
		assert.Equal(t, annual.TotalRevenue, p.Revenue)
		assert.Equal(t, annual.TotalYield, p.Yield)
	}
}

func TestSweepDeterministicAcrossWorkers(t *testing.T) {
	in := testInput(t)
	r := models.SweepRange{Start: 0, Stop: 300, Step: 25}
	cost := FogCost(DefaultCostParams(), in.Greenhouse.FloorArea())

	serial, err := Sweep(context.Background(), in, models.SweepFog, r, cost, SweepOptions{Workers: 1})
	require.NoError(t, err)
	parallel, err := Sweep(context.Background(), in, models.SweepFog, r, cost, SweepOptions{Workers: 8})
	require.NoError(t, err)
	assert.Equal(t, serial, parallel)
}

func TestSweepTagsFailedPoints(t *testing.T) {
	in := testInput(t)
	res, err := Sweep(context.Background(), in, models.SweepShading,
		models.SweepRange{Start: 0, Stop: 150, Step: 25}, CostFunc(func(float64) float64 { return 0 }), SweepOptions{})
	require.NoError(t, err)
	require.Len(t, res.Points, 6)
	assert.Equal(t, 1, res.Failed)
	assert.False(t, res.Points[5].OK())
	assert.Contains(t, res.Points[5].Error, "shading")
	assert.NotEqual(t, 5, res.BestIndex)
}

func TestSweepRejectsBadBase(t *testing.T) {
	in := testInput(t)
	in.Prices = nil
	_, err := Sweep(context.Background(), in, models.SweepShading, models.SweepRange{Start: 0, Stop: 10, Step: 5}, VentCost(DefaultCostParams()), SweepOptions{})
	assert.ErrorIs(t, err, ErrDimension)

	_, err = Sweep(context.Background(), testInput(t), "doors", models.SweepRange{Start: 0, Stop: 10, Step: 5}, VentCost(DefaultCostParams()), SweepOptions{})
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = Sweep(context.Background(), testInput(t), models.SweepRoofVent, models.SweepRange{Start: 0, Stop: 10, Step: 5}, nil, SweepOptions{})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestSweepCancellationKeepsCompletedPoints(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	seen := 0
	res, err := Sweep(ctx, testInput(t), models.SweepExhaustFans, models.SweepRange{Start: 0, Stop: 50, Step: 1},
		FanCost(DefaultCostParams()), SweepOptions{
			Workers: 1,
			OnPoint: func(models.SweepPoint) {
				seen++
				if seen == 3 {
					cancel()
				}
			},
		})
	require.ErrorIs(t, err, context.Canceled)
	assert.Len(t, res.Points, 3)
	require.NotNil(t, res.Best)
	assert.Less(t, res.BestIndex, 3)
}

func TestSweepOnPointCalledPerPoint(t *testing.T) {
	var mu sync.Mutex
	indexes := map[int]bool{}
	res, err := Sweep(context.Background(), testInput(t), models.SweepRoofVent, models.SweepRange{Start: 0, Stop: 100, Step: 10},
		VentCost(DefaultCostParams()), SweepOptions{
			Workers: 3,
			OnPoint: func(p models.SweepPoint) {
				mu.Lock()
				indexes[p.Index] = true
				mu.Unlock()
			},
		})
	require.NoError(t, err)
	assert.Len(t, indexes, len(res.Points))
}

func TestSummarizeTies(t *testing.T) {
	points := []models.SweepPoint{
		{Index: 0, Profit: 5},
		{Index: 1, Profit: 9, Error: "boom"},
		{Index: 2, Profit: 7},
		{Index: 3, Profit: 7},
	}
	failed, best := summarize(points)
	assert.Equal(t, 1, failed)
	assert.Equal(t, 2, best)

	failed, best = summarize([]models.SweepPoint{{Index: 0, Error: "x"}})
	assert.Equal(t, 1, failed)
	assert.Equal(t, -1, best)
}
