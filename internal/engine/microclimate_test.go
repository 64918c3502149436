package engine

import (
	"testing"

	"greenhouse_sim/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeMicroclimateForcedVentilation(t *testing.T) {
	m := MonthClimate{Temp: 28, Solar: 20, WindSpeed: 2, RelativeHumidity: 70}
	got := ComputeMicroclimate(testGreenhouse(), testFans(), testGlass(), m)

	// 291667 W solar over 106667 W/K ventilative plus 10324 W/K conductive loss
	assert.InDelta(t, 30.493, got.IndoorTemp, 0.01)
	assert.InDelta(t, 59.26, got.ACH, 0.01)
	assert.InDelta(t, 0.63, got.EffectiveTransmittance, 1e-12)
	assert.GreaterOrEqual(t, got.IndoorTemp, m.Temp)
	assert.False(t, got.FogActive)
	assert.Greater(t, got.VPD, 0.0)
}

func TestComputeMicroclimateIndoorNotBelowOutdoor(t *testing.T) {
	for _, shading := range []float64{0, 50, 100} {
		for _, fans := range []int{0, 4, 40} {
			for _, solar := range []float64{0, 5, 25} {
				gh := testGreenhouse()
				gh.ShadingPercent = shading
				gh.RoofVentArea = 100
				fs := models.FanSpec{ExhaustFanCount: fans, ExhaustFlowRate: 30000}
				got := ComputeMicroclimate(gh, fs, testGlass(), MonthClimate{Temp: 22, Solar: solar, WindSpeed: 1, RelativeHumidity: 60})
				assert.GreaterOrEqual(t, got.IndoorTemp, 22.0, "shading=%v fans=%d solar=%v", shading, fans, solar)
			}
		}
	}
}

func TestComputeMicroclimateZeroLossGuard(t *testing.T) {
	gh := models.GreenhouseSpec{Width: 10, Length: 10}
	mat := models.MaterialProfile{Transmittance: 0.9, UValue: 0}
	got := ComputeMicroclimate(gh, models.FanSpec{}, mat, MonthClimate{Temp: 18, Solar: 20, WindSpeed: 3, RelativeHumidity: 50})

	assert.Equal(t, 18.0, got.IndoorTemp)
	assert.Equal(t, 0.0, got.DeltaT)
	assert.Equal(t, 0.0, got.ACH)
}

func TestComputeMicroclimateFogging(t *testing.T) {
	m := MonthClimate{Temp: 32, Solar: 20, WindSpeed: 2, RelativeHumidity: 60}
	dry := ComputeMicroclimate(testGreenhouse(), testFans(), testGlass(), m)

	gh := testGreenhouse()
	gh.FogCapacity = 100
	fogged := ComputeMicroclimate(gh, testFans(), testGlass(), m)
	assert.True(t, fogged.FogActive)
	assert.Less(t, fogged.IndoorTemp, dry.IndoorTemp)
	assert.GreaterOrEqual(t, fogged.IndoorTemp, m.Temp-FogMaxCooling)
	assert.Equal(t, dry.HeatHours.Baseline30, fogged.HeatHours.Baseline30, "baseline ignores fog")

	gh.FogCapacity = 2000
	heavy := ComputeMicroclimate(gh, testFans(), testGlass(), m)
	assert.InDelta(t, m.Temp-FogMaxCooling, heavy.IndoorTemp, 1e-12)

	gh.FogTriggerTemp = 35
	idle := ComputeMicroclimate(gh, testFans(), testGlass(), m)
	assert.False(t, idle.FogActive)
	assert.Equal(t, dry.IndoorTemp, idle.IndoorTemp)
}

func TestHeatHours(t *testing.T) {
	cold := heatHours(10, 10)
	assert.Equal(t, HeatHours{}, cold)

	hot := heatHours(41, 41)
	assert.Equal(t, 24*DaysPerMonth, hot.Baseline30)
	assert.Equal(t, 24*DaysPerMonth, hot.Indoor35)

	// offset peaks at +5 at hour 15, so 27 reaches 30 only near the peak
	mid := heatHours(27, 20)
	assert.Greater(t, mid.Baseline30, 0)
	assert.Less(t, mid.Baseline30, 24*DaysPerMonth)
	assert.Equal(t, 0, mid.Indoor30)
	assert.Equal(t, 0, mid.Baseline30%DaysPerMonth)
}
