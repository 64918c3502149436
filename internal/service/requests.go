package service

import (
	"time"

	"greenhouse_sim/internal/catalog"
	"greenhouse_sim/internal/engine"
	"greenhouse_sim/internal/models"
)

// SimulationRequest is an annual simulation as submitted by a designer.
// The climate is given inline or by catalog id. Prices may be omitted when
// the catalog carries a price plan for every planned crop.
type SimulationRequest struct {
	Greenhouse     models.GreenhouseSpec         `json:"greenhouse"`
	Roof           *models.RoofGeometry          `json:"roof,omitempty"`
	Fans           models.FanSpec                `json:"fans"`
	Climate        *models.ClimateMonthlyProfile `json:"climate,omitempty"`
	ClimateID      string                        `json:"climate_id,omitempty"`
	CropPlan       []string                      `json:"crop_plan"`
	Density        float64                       `json:"density"`
	AnnualCycles   float64                       `json:"annual_cycles"`
	Prices         []float64                     `json:"prices,omitempty"`
	SeedlingMethod string                        `json:"seedling_method,omitempty"`
	Policy         *PolicyOverride               `json:"policy,omitempty"`
}

// PolicyOverride replaces the configured policy for one request. Empty
// fields select the engine defaults, not the configured values.
type PolicyOverride struct {
	CatalogFallback      string  `json:"catalog_fallback,omitempty" example:"strict"`
	FanBonus             string  `json:"fan_bonus,omitempty" example:"capped"`
	NurseryMatch         string  `json:"nursery_match,omitempty" example:"id_only"`
	DefaultSeedlingPrice float64 `json:"default_seedling_price,omitempty"`
}

// DayRequest is an hourly simulation of a single day.
type DayRequest struct {
	Greenhouse models.GreenhouseSpec  `json:"greenhouse"`
	Roof       *models.RoofGeometry   `json:"roof,omitempty"`
	Fans       models.FanSpec         `json:"fans"`
	Hours      []models.HourlyWeather `json:"hours"`
	Policy     *PolicyOverride        `json:"policy,omitempty"`
}

// SweepRequest varies one field of a simulation. Range and Costs default
// to the built-in range and cost model of the variable.
type SweepRequest struct {
	SimulationRequest
	Variable models.SweepVariable `json:"variable"`
	Range    *models.SweepRange   `json:"range,omitempty"`
	Costs    *engine.CostParams   `json:"costs,omitempty"`
}

// HistoryFilter selects sweep runs of one owner.
type HistoryFilter struct {
	OwnerID  int
	From     time.Time // inclusive; zero means no lower bound
	To       time.Time // inclusive; zero means no upper bound
	Variable string    // "", "exhaust_fans", "shading", "roof_vent", "fog"
}

// CatalogSnapshot lists the reference data available to requests.
type CatalogSnapshot struct {
	Crops     []models.CropProfile           `json:"crops"`
	Materials []models.MaterialProfile       `json:"materials"`
	Climates  []models.ClimateMonthlyProfile `json:"climates"`
	Nursery   []models.NurseryEntry          `json:"nursery"`
	Prices    []catalog.PricePlan            `json:"prices"`
}
