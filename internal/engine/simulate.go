package engine

import (
	"fmt"
	"math"

	"greenhouse_sim/internal/catalog"
	"greenhouse_sim/internal/models"
	"greenhouse_sim/internal/psychro"
)

// Months is the length of every monthly series.
const Months = 12

// summerMonth is the index whose indoor temperature is reported as the summer maximum (July).
const summerMonth = 6

// Input is the full argument tuple of a simulation. Catalog snapshots are part
// of the tuple so that encoding an Input identifies a result.
type Input struct {
	Greenhouse     models.GreenhouseSpec        `json:"greenhouse"`
	Fans           models.FanSpec               `json:"fans"`
	Climate        models.ClimateMonthlyProfile `json:"climate"`
	CropPlan       []string                     `json:"crop_plan"` // crop id per month
	Density        float64                      `json:"density"`   // plants/m²
	AnnualCycles   float64                      `json:"annual_cycles"`
	Prices         []float64                    `json:"prices"` // currency/kg per month
	SeedlingMethod string                       `json:"seedling_method,omitempty"`

	Crops     *catalog.Crops     `json:"crops"`
	Materials *catalog.Materials `json:"materials"`
	Nursery   *catalog.Nursery   `json:"nursery"`
	Policy    Policy             `json:"policy"`
}

// Validate checks series lengths and value ranges.
func (in Input) Validate() error {
	series := []struct {
		name string
		n    int
	}{
		{"climate.mean_temp", len(in.Climate.MeanTemp)},
		{"climate.max_temp", len(in.Climate.MaxTemp)},
		{"climate.min_temp", len(in.Climate.MinTemp)},
		{"climate.solar", len(in.Climate.Solar)},
		{"climate.wind_speed", len(in.Climate.WindSpeed)},
		{"climate.relative_humidity", len(in.Climate.RelativeHumidity)},
		{"crop_plan", len(in.CropPlan)},
		{"prices", len(in.Prices)},
	}
	for _, s := range series {
		if s.n != Months {
			return &DimensionError{Field: s.name, Got: s.n, Want: Months}
		}
	}
	if err := validateGreenhouse(in.Greenhouse, in.Fans); err != nil {
		return err
	}
	if !finiteNonNeg(in.Density) {
		return invalidf("density %v must be >= 0", in.Density)
	}
	if !finiteNonNeg(in.AnnualCycles) {
		return invalidf("annual cycles %v must be >= 0", in.AnnualCycles)
	}
	for _, arr := range [][]float64{in.Climate.MeanTemp, in.Climate.Solar, in.Climate.WindSpeed, in.Climate.RelativeHumidity, in.Prices} {
		for i, v := range arr {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return invalidf("non-finite monthly value at month %d", i+1)
			}
		}
	}
	return nil
}

func validateGreenhouse(gh models.GreenhouseSpec, fans models.FanSpec) error {
	dims := map[string]float64{
		"width":            gh.Width,
		"length":           gh.Length,
		"gutter_height":    gh.GutterHeight,
		"roof_vent_area":   gh.RoofVentArea,
		"side_vent_area":   gh.SideVentArea,
		"fog_capacity":     gh.FogCapacity,
		"exhaust_flow":     fans.ExhaustFlowRate,
		"circ_fan_spacing": fans.CirculationFanSpacing,
	}
	for _, name := range []string{"width", "length", "gutter_height", "roof_vent_area", "side_vent_area", "fog_capacity", "exhaust_flow", "circ_fan_spacing"} {
		if !finiteNonNeg(dims[name]) {
			return invalidf("%s %v must be >= 0", name, dims[name])
		}
	}
	if !inPercent(gh.ShadingPercent) {
		return invalidf("shading %v outside [0, 100]", gh.ShadingPercent)
	}
	if !inPercent(gh.InsectNetOpenness) {
		return invalidf("insect net openness %v outside [0, 100]", gh.InsectNetOpenness)
	}
	if fans.ExhaustFanCount < 0 || fans.CirculationFanCount < 0 {
		return invalidf("fan counts must be >= 0")
	}
	return nil
}

func finiteNonNeg(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}

func inPercent(v float64) bool {
	return v >= 0 && v <= 100
}

// resolved holds catalog lookups that do not depend on swept fields.
type resolved struct {
	material models.MaterialProfile
	crops    [Months]models.CropProfile
	seedling [Months]float64
	diags    []models.Diagnostic
}

func resolve(in Input) (*resolved, error) {
	r := &resolved{}
	mat, err := in.Materials.Resolve(in.Greenhouse.MaterialID, in.Policy.CatalogFallback)
	if err != nil {
		return nil, err
	}
	if mat.Fallback {
		r.diags = append(r.diags, models.Diagnostic{
			Code:    models.DiagCatalogFallback,
			Message: fmt.Sprintf("material %q not found, using %q", mat.RequestedID, mat.ResolvedID),
		})
	}
	r.material = mat.Value

	reported := map[string]bool{}
	for i, id := range in.CropPlan {
		crop, err := in.Crops.Resolve(id, in.Policy.CatalogFallback)
		if err != nil {
			return nil, fmt.Errorf("month %d: %w", i+1, err)
		}
		r.crops[i] = crop.Value
		if crop.Fallback && !reported["crop:"+id] {
			reported["crop:"+id] = true
			r.diags = append(r.diags, models.Diagnostic{
				Code:    models.DiagCatalogFallback,
				Month:   i + 1,
				Message: fmt.Sprintf("crop %q not found, using %q", crop.RequestedID, crop.ResolvedID),
			})
		}

		price := in.Nursery.Lookup(crop.Value, in.SeedlingMethod, in.Policy.NurseryMatch, in.Policy.DefaultSeedlingPrice)
		r.seedling[i] = price.UnitPrice
		if price.Degraded() && !reported["nursery:"+crop.ResolvedID] {
			reported["nursery:"+crop.ResolvedID] = true
			d := models.Diagnostic{
				Code:    models.DiagNurseryDefault,
				Month:   i + 1,
				Message: fmt.Sprintf("no seedling price for %q, using default %.2f", crop.Value.DisplayName, price.UnitPrice),
			}
			if price.Match == catalog.MatchBySubstr {
				d.Code = models.DiagNurseryFuzzy
				d.Message = fmt.Sprintf("seedling price for %q matched by name substring %q", crop.Value.DisplayName, price.Entry.CropName)
			}
			r.diags = append(r.diags, d)
		}
	}
	return r, nil
}

// Simulate runs the microclimate and yield engines over twelve months.
// It is a pure function of in: equal inputs give equal results.
func Simulate(in Input) (models.AnnualSimulationResult, error) {
	if err := in.Validate(); err != nil {
		return models.AnnualSimulationResult{}, err
	}
	r, err := resolve(in)
	if err != nil {
		return models.AnnualSimulationResult{}, err
	}
	return run(in, r), nil
}

func run(in Input, r *resolved) models.AnnualSimulationResult {
	env := newEnvelope(in.Greenhouse)
	circulating := in.Fans.CirculationFanCount > 0

	res := models.AnnualSimulationResult{
		Months:      make([]models.MonthlySimulationRecord, 0, Months),
		Diagnostics: append([]models.Diagnostic(nil), r.diags...),
	}
	yields := make([]float64, Months)
	revenues := make([]float64, Months)
	seedlings := make([]float64, Months)
	efficiencies := make([]float64, Months)

	for i := 0; i < Months; i++ {
		m := MonthOf(in.Climate, i)
		crop := r.crops[i]
		micro := computeMicroclimate(in.Greenhouse, in.Fans, r.material, m, env)
		y := ComputeYield(YieldInput{
			Micro:             micro,
			Crop:              crop,
			Solar:             m.Solar,
			FloorArea:         env.floorArea,
			Density:           in.Density,
			AnnualCycles:      in.AnnualCycles,
			Price:             in.Prices[i],
			SeedlingUnitPrice: r.seedling[i],
			Circulating:       circulating,
			FanBonus:          in.Policy.FanBonus,
		})
		if y.Efficiency > 1 {
			res.Diagnostics = append(res.Diagnostics, models.Diagnostic{
				Code:    models.DiagEfficiencyAboveOne,
				Month:   i + 1,
				Message: fmt.Sprintf("efficiency %.3f exceeds 1 after circulation bonus", y.Efficiency),
			})
		}

		pw := psychro.VaporPressure(m.Temp, m.RelativeHumidity)
		w := psychro.HumidityRatio(psychro.VaporPressure(micro.IndoorTemp, m.RelativeHumidity), psychro.StandardPressure)
		res.Months = append(res.Months, models.MonthlySimulationRecord{
			Month:             i + 1,
			CropID:            crop.ID,
			CropName:          crop.DisplayName,
			OutdoorTemp:       m.Temp,
			IndoorTemp:        micro.IndoorTemp,
			VPD:               micro.VPD,
			ACH:               micro.ACH,
			DewPoint:          psychro.DewPoint(pw),
			Enthalpy:          psychro.Enthalpy(micro.IndoorTemp, w),
			YieldMass:         y.YieldMass,
			Revenue:           y.Revenue,
			EfficiencyPercent: y.Efficiency * 100,
			Heat30Baseline:    micro.HeatHours.Baseline30,
			Heat35Baseline:    micro.HeatHours.Baseline35,
			Heat30Indoor:      micro.HeatHours.Indoor30,
			Heat35Indoor:      micro.HeatHours.Indoor35,
			SeedlingCost:      y.SeedlingCost,
		})
		yields[i] = y.YieldMass
		revenues[i] = y.Revenue
		seedlings[i] = y.SeedlingCost
		efficiencies[i] = y.Efficiency * 100
	}

	res.TotalYield = sumAscending(yields)
	res.TotalRevenue = sumAscending(revenues)
	res.TotalSeedlingCost = sumAscending(seedlings)
	res.NetRevenue = res.TotalRevenue - res.TotalSeedlingCost
	res.AverageEfficiencyPercent = sumAscending(efficiencies) / Months
	res.MaxSummerIndoorTemp = res.Months[summerMonth].IndoorTemp
	return res
}

// sumAscending adds strictly in index order. Vectorized sums reassociate,
// which would make totals depend on the platform.
func sumAscending(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}
