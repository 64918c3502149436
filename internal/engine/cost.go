package engine

import (
	"fmt"
	"math"

	"greenhouse_sim/internal/models"
)

// CostModel returns the annual cost of a swept value.
type CostModel interface {
	AnnualCost(value float64) float64
}

// CostFunc adapts a function to CostModel.
type CostFunc func(value float64) float64

func (f CostFunc) AnnualCost(value float64) float64 { return f(value) }

// CostParams carries the unit prices behind the built-in cost models.
type CostParams struct {
	RunHours        float64 `json:"run_hours"`        // h/year
	ElectricityRate float64 `json:"electricity_rate"` // currency/kWh

	FanUnitPrice float64 `json:"fan_unit_price"`
	FanLifeYears float64 `json:"fan_life_years"`
	FanPowerW    float64 `json:"fan_power_w"`

	ShadingNetPrice  float64 `json:"shading_net_price"` // currency/m²
	ShadingLifeYears float64 `json:"shading_life_years"`

	VentPrice     float64 `json:"vent_price"` // currency/m²
	VentLifeYears float64 `json:"vent_life_years"`

	WaterPrice     float64 `json:"water_price"`      // currency/m³
	FogSystemPrice float64 `json:"fog_system_price"` // currency per g/m²/h per year
}

// DefaultCostParams are the dashboard defaults.
func DefaultCostParams() CostParams {
	return CostParams{
		RunHours:         3000,
		ElectricityRate:  4.0,
		FanUnitPrice:     15000,
		FanLifeYears:     5,
		FanPowerW:        1000,
		ShadingNetPrice:  50,
		ShadingLifeYears: 3,
		VentPrice:        3000,
		VentLifeYears:    10,
		WaterPrice:       12.0,
		FogSystemPrice:   10.0,
	}
}

func perYear(price, life float64) float64 {
	if life <= 0 {
		return price
	}
	return price / life
}

// FanCost is amortized purchase plus electricity per exhaust fan.
func FanCost(p CostParams) CostModel {
	perFan := perYear(p.FanUnitPrice, p.FanLifeYears) + p.FanPowerW/1000*p.RunHours*p.ElectricityRate
	return CostFunc(func(count float64) float64 { return count * perFan })
}

// ShadingCost treats shading percent as the share of floor area covered by net.
func ShadingCost(p CostParams, floorArea float64) CostModel {
	rate := perYear(p.ShadingNetPrice, p.ShadingLifeYears)
	return CostFunc(func(percent float64) float64 { return floorArea * percent / 100 * rate })
}

// VentCost is the amortized build cost of roof vent area.
func VentCost(p CostParams) CostModel {
	rate := perYear(p.VentPrice, p.VentLifeYears)
	return CostFunc(func(area float64) float64 { return area * rate })
}

// FogCost is water plus pump electricity plus amortized system cost for a fog capacity in g/m²/h.
func FogCost(p CostParams, floorArea float64) CostModel {
	return CostFunc(func(capacity float64) float64 {
		waterM3 := capacity * floorArea * p.RunHours / 1e6
		elec := capacity * floorArea * 0.005 * p.RunHours * p.ElectricityRate / 1000
		return waterM3*p.WaterPrice + elec + capacity*p.FogSystemPrice
	})
}

// DefaultCostModel picks the built-in model for a variable.
func DefaultCostModel(v models.SweepVariable, gh models.GreenhouseSpec, p CostParams) (CostModel, error) {
	switch v {
	case models.SweepExhaustFans:
		return FanCost(p), nil
	case models.SweepShading:
		return ShadingCost(p, gh.FloorArea()), nil
	case models.SweepRoofVent:
		return VentCost(p), nil
	case models.SweepFog:
		return FogCost(p, gh.FloorArea()), nil
	default:
		return nil, fmt.Errorf("%w: unknown variable %q", ErrInvalidRange, v)
	}
}

// DefaultRange is the half-open range the dashboard sweeps for a variable.
func DefaultRange(v models.SweepVariable, gh models.GreenhouseSpec) (models.SweepRange, error) {
	switch v {
	case models.SweepExhaustFans:
		return models.SweepRange{Start: 0, Stop: 1000, Step: 1}, nil
	case models.SweepShading:
		return models.SweepRange{Start: 0, Stop: 95, Step: 10}, nil
	case models.SweepRoofVent:
		maxArea := math.Floor(gh.FloorArea() * newEnvelope(gh).surfCoef)
		step := math.Max(1, math.Floor(maxArea/10))
		return models.SweepRange{Start: 0, Stop: maxArea, Step: step}, nil
	case models.SweepFog:
		return models.SweepRange{Start: 0, Stop: 600, Step: 10}, nil
	default:
		return models.SweepRange{}, fmt.Errorf("%w: unknown variable %q", ErrInvalidRange, v)
	}
}
