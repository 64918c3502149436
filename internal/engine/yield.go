package engine

import (
	"math"

	"greenhouse_sim/internal/models"
)

// ----------- Crop response constants -----------
const (
	ToleranceWidth    = 1.5
	CirculationBonus  = 1.1
	CompensationRatio = 0.2

	vpdFloorScore = 0.5
	vpdLow        = 0.3 // kPa
	vpdOptLow     = 0.8
	vpdOptHigh    = 1.2
	vpdHigh       = 2.5
)

// TemperatureScore rates indoor temperature against the crop optimum. With
// circulation fans the score is multiplied by 1.1; FanBonusCapped clamps it to 1.
func TemperatureScore(indoor float64, crop models.CropProfile, circulating bool, bonus FanBonus) float64 {
	var score float64
	width := crop.TempTolerance * ToleranceWidth
	switch {
	case width > 0:
		score = math.Max(0, 1-math.Abs(indoor-crop.IdealTemp)/width)
	case indoor == crop.IdealTemp:
		score = 1
	}
	if circulating {
		score *= CirculationBonus
		if bonus == FanBonusCapped {
			score = math.Min(score, 1)
		}
	}
	return score
}

// VPDScore is a trapezoid: 1 on [0.8, 1.2] kPa, ramps to 0.5 at 0.3 and 2.5, 0.5 outside.
func VPDScore(vpd float64) float64 {
	switch {
	case vpd >= vpdOptLow && vpd <= vpdOptHigh:
		return 1
	case vpd >= vpdLow && vpd < vpdOptLow:
		return vpdFloorScore + 0.5*(vpd-vpdLow)/(vpdOptLow-vpdLow)
	case vpd > vpdOptHigh && vpd <= vpdHigh:
		return 1 - 0.5*(vpd-vpdOptHigh)/(vpdHigh-vpdOptHigh)
	default:
		return vpdFloorScore
	}
}

// LightScore is 0 below the compensation point (20% of saturation), 1 at or
// above saturation and linear between.
func LightScore(effectiveSolar, saturation float64) float64 {
	compensation := saturation * CompensationRatio
	switch {
	case effectiveSolar >= saturation:
		return 1
	case effectiveSolar <= compensation:
		return 0
	default:
		return (effectiveSolar - compensation) / (saturation - compensation)
	}
}

// YieldInput is everything the crop response needs for one month.
type YieldInput struct {
	Micro             Microclimate
	Crop              models.CropProfile
	Solar             float64 // outdoor MJ/m²/day
	FloorArea         float64
	Density           float64 // plants/m²
	AnnualCycles      float64
	Price             float64 // currency/kg
	SeedlingUnitPrice float64
	Circulating       bool
	FanBonus          FanBonus
}

// YieldOutput is the crop and money outcome for one month.
type YieldOutput struct {
	TemperatureScore float64
	VPDScore         float64
	LightScore       float64
	Efficiency       float64
	YieldMass        float64
	Revenue          float64
	SeedlingCost     float64
}

// ComputeYield converts a month's microclimate into yield, revenue and seedling cost.
// Efficiency is not clamped after the fan bonus.
func ComputeYield(in YieldInput) YieldOutput {
	ts := TemperatureScore(in.Micro.IndoorTemp, in.Crop, in.Circulating, in.FanBonus)
	vs := VPDScore(in.Micro.VPD)
	ls := LightScore(in.Solar*in.Micro.EffectiveTransmittance, in.Crop.LightSaturation)
	eff := ts * vs * ls

	planting := in.FloorArea * PlantingAreaRatio
	share := in.AnnualCycles / 12
	mass := planting * in.Density * in.Crop.BaseUnitWeight * eff * share
	return YieldOutput{
		TemperatureScore: ts,
		VPDScore:         vs,
		LightScore:       ls,
		Efficiency:       eff,
		YieldMass:        mass,
		Revenue:          mass * in.Price,
		SeedlingCost:     planting * in.Density * share * in.SeedlingUnitPrice,
	}
}
