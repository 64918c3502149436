package service

import (
	"context"
	"strings"
	"testing"

	"greenhouse_sim/internal/catalog"
	"greenhouse_sim/internal/models"
)

const testCatalogYAML = `
crops:
  - id: lettuce
    display_name: Lettuce
    ideal_temp: 20
    temp_tolerance: 6
    base_unit_weight: 0.35
    light_saturation: 11
  - id: tomato
    display_name: Tomato
    ideal_temp: 24
    temp_tolerance: 5
    base_unit_weight: 1.2
    light_saturation: 14
materials:
  - id: glass
    label: Float glass
    transmittance: 0.9
    u_value: 5.8
  - id: po
    label: PO film
    transmittance: 0.85
    u_value: 6.0
climates:
  - id: coastal
    name: Coastal
    mean_temp: [15, 16, 19, 23, 26, 28, 29, 28.5, 27, 24, 20, 16]
    max_temp: [20, 21, 24, 28, 31, 33, 34, 34, 32, 29, 25, 21]
    min_temp: [10, 11, 14, 18, 21, 23, 24, 24, 22, 19, 15, 11]
    solar: [9, 10, 12, 14, 16, 18, 20, 19, 17, 14, 11, 9]
    wind_speed: [2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2]
    relative_humidity: [70, 70, 70, 70, 70, 70, 70, 70, 70, 70, 70, 70]
nursery:
  - crop_id: lettuce
    crop_name: Lettuce
    method: Seed
    unit_price: 1.5
  - crop_name: Cherry Tomato
    method: Grafted
    unit_price: 6
prices:
  - crop_id: lettuce
    prices: [40, 40, 40, 40, 40, 40, 40, 40, 40, 40, 40, 40]
  - crop_id: tomato
    prices: [60, 60, 60, 60, 60, 60, 60, 60, 60, 60, 60, 60]
`

func testSet(t *testing.T) *catalog.Set {
	t.Helper()
	set, err := catalog.Parse([]byte(testCatalogYAML))
	if err != nil {
		t.Fatalf("parse test catalog: %v", err)
	}
	return set
}

func testPlan() []string {
	plan := make([]string, 12)
	for i := range plan {
		plan[i] = "lettuce"
		if i >= 4 && i <= 8 {
			plan[i] = "tomato"
		}
	}
	return plan
}

func testRequest() SimulationRequest {
	return SimulationRequest{
		Greenhouse: models.GreenhouseSpec{
			Width:             20,
			Length:            50,
			GutterHeight:      4.5,
			MaterialID:        "glass",
			ShadingPercent:    30,
			InsectNetOpenness: 70,
		},
		Fans:         models.FanSpec{ExhaustFanCount: 8, ExhaustFlowRate: 40000},
		ClimateID:    "coastal",
		CropPlan:     testPlan(),
		Density:      20,
		AnnualCycles: 6,
	}
}

// countingCache is an in-test cache.Cache recording traffic.
type countingCache struct {
	items map[string]models.AnnualSimulationResult
	gets  int
	puts  int
	keys  []string
}

func newCountingCache() *countingCache {
	return &countingCache{items: map[string]models.AnnualSimulationResult{}}
}

func (c *countingCache) Get(_ context.Context, key string) (models.AnnualSimulationResult, bool) {
	c.gets++
	r, ok := c.items[key]
	return r, ok
}

func (c *countingCache) Put(_ context.Context, key string, res models.AnnualSimulationResult) {
	c.puts++
	c.keys = append(c.keys, key)
	c.items[key] = res
}

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
