package models

// MonthlySimulationRecord is the engine output for one month.
type MonthlySimulationRecord struct {
	Month             int     `json:"month"` // 1..12
	CropID            string  `json:"crop_id"`
	CropName          string  `json:"crop_name"`
	OutdoorTemp       float64 `json:"outdoor_temp"`
	IndoorTemp        float64 `json:"indoor_temp"`
	VPD               float64 `json:"vpd"`
	ACH               float64 `json:"ach"`
	DewPoint          float64 `json:"dew_point"`
	Enthalpy          float64 `json:"enthalpy"`
	YieldMass         float64 `json:"yield_mass"`
	Revenue           float64 `json:"revenue"`
	EfficiencyPercent float64 `json:"efficiency_percent"`
	Heat30Baseline    int     `json:"heat30_baseline"`
	Heat35Baseline    int     `json:"heat35_baseline"`
	Heat30Indoor      int     `json:"heat30_indoor"`
	Heat35Indoor      int     `json:"heat35_indoor"`
	SeedlingCost      float64 `json:"seedling_cost"`
}

// AnnualSimulationResult aggregates twelve monthly records.
type AnnualSimulationResult struct {
	Months                   []MonthlySimulationRecord `json:"months"`
	TotalYield               float64                   `json:"total_yield"`
	TotalRevenue             float64                   `json:"total_revenue"`
	MaxSummerIndoorTemp      float64                   `json:"max_summer_indoor_temp"`
	TotalSeedlingCost        float64                   `json:"total_seedling_cost"`
	NetRevenue               float64                   `json:"net_revenue"`
	AverageEfficiencyPercent float64                   `json:"average_efficiency_percent"`
	Diagnostics              []Diagnostic              `json:"diagnostics,omitempty"`
}

// Diagnostic codes.
const (
	DiagCatalogFallback    = "CATALOG_FALLBACK"
	DiagNurseryFuzzy       = "NURSERY_FUZZY_MATCH"
	DiagNurseryDefault     = "NURSERY_DEFAULT_PRICE"
	DiagEfficiencyAboveOne = "EFFICIENCY_ABOVE_ONE"
)

// Diagnostic is a warning-level note attached to a result.
type Diagnostic struct {
	Code    string `json:"code"`
	Month   int    `json:"month,omitempty"`
	Message string `json:"message"`
}

// HourlyRecord is one hour of a day simulation.
type HourlyRecord struct {
	Hour        int     `json:"hour"`
	OutdoorTemp float64 `json:"outdoor_temp"`
	IndoorTemp  float64 `json:"indoor_temp"`
	SolarWatts  float64 `json:"solar_watts"` // W/m²
	FogActive   bool    `json:"fog_active"`
}

// DaySimulationResult is the hourly simulation of one day.
type DaySimulationResult struct {
	Hours         []HourlyRecord `json:"hours"`
	MaxIndoorTemp float64        `json:"max_indoor_temp"`
	DiurnalRange  float64        `json:"diurnal_range"`
}
