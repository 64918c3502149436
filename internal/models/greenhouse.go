package models

// GreenhouseSpec describes the structure and its passive equipment.
// Zero derived coefficients mean "not derived"; the engine substitutes defaults.
type GreenhouseSpec struct {
	Width             float64 `json:"width"`         // m
	Length            float64 `json:"length"`        // m
	GutterHeight      float64 `json:"gutter_height"` // m
	MaterialID        string  `json:"material_id"`
	RoofVentArea      float64 `json:"roof_vent_area"`      // m²
	SideVentArea      float64 `json:"side_vent_area"`      // m²
	ShadingPercent    float64 `json:"shading_percent"`     // 0..100
	InsectNetOpenness float64 `json:"insect_net_openness"` // 0..100

	FogCapacity    float64 `json:"fog_capacity,omitempty"`     // g/m²/h, 0 disables fogging
	FogTriggerTemp float64 `json:"fog_trigger_temp,omitempty"` // °C, 0 means default trigger

	VolumeCoefficient     float64 `json:"volume_coefficient,omitempty"`
	SurfaceCoefficient    float64 `json:"surface_coefficient,omitempty"`
	VentilationEfficiency float64 `json:"ventilation_efficiency,omitempty"`
}

// FloorArea returns width × length.
func (g GreenhouseSpec) FloorArea() float64 {
	return g.Width * g.Length
}

// FanSpec describes mechanical ventilation.
type FanSpec struct {
	ExhaustFanCount       int     `json:"exhaust_fan_count"`
	ExhaustFlowRate       float64 `json:"exhaust_flow_rate"` // m³/h per fan
	CirculationFanCount   int     `json:"circulation_fan_count"`
	CirculationFanSpacing float64 `json:"circulation_fan_spacing"` // m
}

type RoofType string

const (
	RoofVenlo       RoofType = "Venlo"
	RoofTunnel      RoofType = "Tunnel"
	RoofSingleSlope RoofType = "SingleSlope"
)

type CultivationSystem string

const (
	SystemNFT  CultivationSystem = "NFT"
	SystemDFT  CultivationSystem = "DFT"
	SystemSoil CultivationSystem = "Soil"
	SystemPot  CultivationSystem = "Pot"
)

// RoofGeometry is the input from which the derived coefficients of a GreenhouseSpec are computed.
type RoofGeometry struct {
	RoofType RoofType          `json:"roof_type"`
	AngleDeg float64           `json:"angle_deg"`
	System   CultivationSystem `json:"system"`
}
