package service

import (
	"fmt"

	"greenhouse_sim/internal/catalog"
	"greenhouse_sim/internal/engine"
	"greenhouse_sim/internal/models"
)

// inputBuilder turns requests into engine inputs against the loaded catalog.
type inputBuilder struct {
	set    *catalog.Set
	policy engine.Policy
}

func newInputBuilder(set *catalog.Set, policy engine.Policy) *inputBuilder {
	if set == nil {
		set = &catalog.Set{}
	}
	return &inputBuilder{set: set, policy: policy}
}

func (b *inputBuilder) policyFor(o *PolicyOverride) (engine.Policy, error) {
	if o == nil {
		return b.policy, nil
	}
	p, err := engine.ParsePolicy(o.CatalogFallback, o.FanBonus, o.NurseryMatch, o.DefaultSeedlingPrice)
	if err != nil {
		return engine.Policy{}, fmt.Errorf("%w: policy: %v", ErrInvalidRequest, err)
	}
	return p, nil
}

func (b *inputBuilder) greenhouse(gh models.GreenhouseSpec, roof *models.RoofGeometry) (models.GreenhouseSpec, error) {
	if roof == nil {
		return gh, nil
	}
	return engine.DeriveCoefficients(gh, *roof)
}

func (b *inputBuilder) climate(req SimulationRequest) (models.ClimateMonthlyProfile, error) {
	switch {
	case req.Climate != nil:
		return *req.Climate, nil
	case req.ClimateID != "":
		c, ok := b.set.Climates.Get(req.ClimateID)
		if !ok {
			return models.ClimateMonthlyProfile{}, &catalog.ConfigurationError{Catalog: "climate", ID: req.ClimateID, Reason: "unknown id"}
		}
		return c, nil
	default:
		return models.ClimateMonthlyProfile{}, fmt.Errorf("%w: climate or climate_id is required", ErrInvalidRequest)
	}
}

// prices returns the request prices or, when omitted, month i of the
// catalog price plan of the crop planned for month i.
func (b *inputBuilder) prices(req SimulationRequest) ([]float64, error) {
	if len(req.Prices) > 0 || len(req.CropPlan) != engine.Months {
		return req.Prices, nil
	}
	out := make([]float64, engine.Months)
	for i, id := range req.CropPlan {
		plan, ok := b.set.PricesFor(id)
		if !ok || len(plan) != engine.Months {
			return nil, fmt.Errorf("%w: no 12-month price plan for crop %q; send prices", ErrInvalidRequest, id)
		}
		out[i] = plan[i]
	}
	return out, nil
}

// Build resolves a request to an engine input. Catalog ids are resolved by
// the engine itself.
func (b *inputBuilder) Build(req SimulationRequest) (engine.Input, error) {
	policy, err := b.policyFor(req.Policy)
	if err != nil {
		return engine.Input{}, err
	}
	gh, err := b.greenhouse(req.Greenhouse, req.Roof)
	if err != nil {
		return engine.Input{}, err
	}
	climate, err := b.climate(req)
	if err != nil {
		return engine.Input{}, err
	}
	prices, err := b.prices(req)
	if err != nil {
		return engine.Input{}, err
	}
	return engine.Input{
		Greenhouse:     gh,
		Fans:           req.Fans,
		Climate:        climate,
		CropPlan:       req.CropPlan,
		Density:        req.Density,
		AnnualCycles:   req.AnnualCycles,
		Prices:         prices,
		SeedlingMethod: req.SeedlingMethod,
		Crops:          b.set.Crops,
		Materials:      b.set.Materials,
		Nursery:        b.set.Nursery,
		Policy:         policy,
	}, nil
}

// material resolves the covering of gh for the hourly simulation.
func (b *inputBuilder) material(gh models.GreenhouseSpec, policy engine.Policy) (catalog.Resolution[models.MaterialProfile], error) {
	return b.set.Materials.Resolve(gh.MaterialID, policy.CatalogFallback)
}
