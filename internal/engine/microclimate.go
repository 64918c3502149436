package engine

import (
	"math"

	"greenhouse_sim/internal/models"
	"greenhouse_sim/internal/psychro"
)

// ----------- Heat balance constants -----------
const (
	DaylightSeconds      = 12 * 3600 // monthly solar is spread over 12 h of daylight
	DischargeCoefficient = 0.4
	AirHeatCapacity      = 1200.0 // J/m³K
	DiurnalAmplitude     = 5.0    // °C
	BaselineFactor       = 1.5    // unmitigated reference multiplier on ΔT
	DaysPerMonth         = 30
	DefaultFogTrigger    = 28.0 // °C
	LatentHeat           = 2450.0 // J/g
	FogEfficiency        = 0.8
	FogMaxCooling        = 2.0 // °C below outdoor
)

// MonthClimate is one month of outdoor conditions.
type MonthClimate struct {
	Temp             float64 // mean °C
	Solar            float64 // MJ/m²/day
	WindSpeed        float64 // m/s
	RelativeHumidity float64 // %
}

// MonthOf extracts month i (0-based) of a profile. The profile must be validated.
func MonthOf(p models.ClimateMonthlyProfile, i int) MonthClimate {
	return MonthClimate{
		Temp:             p.MeanTemp[i],
		Solar:            p.Solar[i],
		WindSpeed:        p.WindSpeed[i],
		RelativeHumidity: p.RelativeHumidity[i],
	}
}

// HeatHours counts monthly hours at or above 30 °C and 35 °C.
type HeatHours struct {
	Baseline30 int
	Baseline35 int
	Indoor30   int
	Indoor35   int
}

// Microclimate is the steady-state indoor condition for one month.
type Microclimate struct {
	IndoorTemp             float64
	DeltaT                 float64
	ACH                    float64
	VPD                    float64
	EffectiveTransmittance float64
	FogActive              bool
	HeatHours              HeatHours
}

// ComputeMicroclimate solves the monthly heat balance. It never fails:
// degenerate denominators yield ΔT = 0 and ACH = 0.
func ComputeMicroclimate(gh models.GreenhouseSpec, fans models.FanSpec, mat models.MaterialProfile, m MonthClimate) Microclimate {
	return computeMicroclimate(gh, fans, mat, m, newEnvelope(gh))
}

func computeMicroclimate(gh models.GreenhouseSpec, fans models.FanSpec, mat models.MaterialProfile, m MonthClimate, env envelope) Microclimate {
	trans := mat.Transmittance * (1 - gh.ShadingPercent/100)
	qSolar := (m.Solar * 1e6 / DaylightSeconds) * env.floorArea * trans

	flow := ventilationFlow(gh, fans, env, m.WindSpeed)
	ach := 0.0
	if env.volume > 0 {
		ach = flow * 3600 / env.volume
	}

	loss := flow*AirHeatCapacity + mat.UValue*env.surface
	solarDelta := 0.0
	if loss > 0 {
		solarDelta = qSolar / loss
	}

	fog := fogActive(gh, m.Temp)
	delta := solarDelta
	indoor := m.Temp + delta
	if fog {
		if loss > 0 {
			delta = (qSolar - fogCooling(gh, env)) / loss
		}
		indoor = math.Max(m.Temp+delta, m.Temp-FogMaxCooling)
		delta = indoor - m.Temp
	}

	return Microclimate{
		IndoorTemp:             indoor,
		DeltaT:                 delta,
		ACH:                    ach,
		VPD:                    psychro.VaporPressureDeficit(indoor, m.RelativeHumidity),
		EffectiveTransmittance: trans,
		FogActive:              fog,
		HeatHours:              heatHours(m.Temp+BaselineFactor*solarDelta, indoor),
	}
}

// ventilationFlow returns natural plus forced flow in m³/s.
func ventilationFlow(gh models.GreenhouseSpec, fans models.FanSpec, env envelope, wind float64) float64 {
	natural := wind * (gh.RoofVentArea + gh.SideVentArea) * DischargeCoefficient * (gh.InsectNetOpenness / 100) * env.ventEff
	forced := float64(fans.ExhaustFanCount) * fans.ExhaustFlowRate / 3600
	return natural + forced
}

func fogActive(gh models.GreenhouseSpec, outdoor float64) bool {
	trigger := orDefault(gh.FogTriggerTemp, DefaultFogTrigger)
	return gh.FogCapacity > 0 && outdoor > trigger
}

// fogCooling returns the evaporative cooling power in W.
func fogCooling(gh models.GreenhouseSpec, env envelope) float64 {
	return gh.FogCapacity * env.floorArea * LatentHeat / 3600 * FogEfficiency
}

// heatHours walks a synthetic sinusoidal day around both reference temperatures.
func heatHours(baseline, indoor float64) HeatHours {
	var h HeatHours
	for hour := 0; hour < 24; hour++ {
		offset := DiurnalAmplitude * math.Sin(float64(hour-9)*math.Pi/12)
		if baseline+offset >= 30 {
			h.Baseline30++
		}
		if baseline+offset >= 35 {
			h.Baseline35++
		}
		if indoor+offset >= 30 {
			h.Indoor30++
		}
		if indoor+offset >= 35 {
			h.Indoor35++
		}
	}
	h.Baseline30 *= DaysPerMonth
	h.Baseline35 *= DaysPerMonth
	h.Indoor30 *= DaysPerMonth
	h.Indoor35 *= DaysPerMonth
	return h
}
