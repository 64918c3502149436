package models

// CropProfile holds the growth parameters used by yield scoring.
type CropProfile struct {
	ID              string  `json:"id" yaml:"id"`
	DisplayName     string  `json:"display_name" yaml:"display_name"`
	IdealTemp       float64 `json:"ideal_temp" yaml:"ideal_temp"`             // °C
	TempTolerance   float64 `json:"temp_tolerance" yaml:"temp_tolerance"`     // °C
	BaseUnitWeight  float64 `json:"base_unit_weight" yaml:"base_unit_weight"` // kg/plant
	LightSaturation float64 `json:"light_saturation" yaml:"light_saturation"` // MJ/m²/day
	CycleDays       int     `json:"cycle_days,omitempty" yaml:"cycle_days"`
}

// MaterialProfile describes a covering material.
type MaterialProfile struct {
	ID            string  `json:"id" yaml:"id"`
	Label         string  `json:"label" yaml:"label"`
	Transmittance float64 `json:"transmittance" yaml:"transmittance"` // 0..1
	UValue        float64 `json:"u_value" yaml:"u_value"`             // W/m²K
}

// NurseryEntry is one seedling price row.
type NurseryEntry struct {
	CropID    string  `json:"crop_id,omitempty" yaml:"crop_id"`
	CropName  string  `json:"crop_name" yaml:"crop_name"`
	Method    string  `json:"method,omitempty" yaml:"method"` // Seed | Grafted | Runner
	UnitPrice float64 `json:"unit_price" yaml:"unit_price"`   // currency per plant
}
