package engine

import (
	"math"

	"greenhouse_sim/internal/models"
)

// ----------- Envelope defaults -----------
const (
	DefaultVolumeCoefficient     = 1.2
	DefaultSurfaceCoefficient    = 1.15
	DefaultVentilationEfficiency = 1.0
	PlantingAreaRatio            = 0.6
	defaultSystemFactor          = 1.2
)

var systemFactors = map[models.CultivationSystem]float64{
	models.SystemNFT:  1.1,
	models.SystemPot:  1.2,
	models.SystemSoil: 1.4,
	models.SystemDFT:  1.6,
}

// DeriveCoefficients fills the derived coefficients of gh from its roof geometry.
// The angle must lie in [0, 90).
func DeriveCoefficients(gh models.GreenhouseSpec, roof models.RoofGeometry) (models.GreenhouseSpec, error) {
	if math.IsNaN(roof.AngleDeg) || roof.AngleDeg < 0 || roof.AngleDeg >= 90 {
		return gh, invalidf("roof angle %.2f outside [0, 90)", roof.AngleDeg)
	}
	switch roof.RoofType {
	case models.RoofVenlo, models.RoofTunnel, models.RoofSingleSlope, "":
	default:
		return gh, invalidf("unknown roof type %q", roof.RoofType)
	}

	rad := roof.AngleDeg * math.Pi / 180
	avgRoofHeight := 0.5 * gh.Width * math.Tan(rad)
	if roof.RoofType == models.RoofTunnel {
		avgRoofHeight = 0
	}
	factor, ok := systemFactors[roof.System]
	if !ok {
		factor = defaultSystemFactor
	}

	ratio := 0.0
	if gh.GutterHeight > 0 {
		ratio = avgRoofHeight / gh.GutterHeight
	}
	gh.VolumeCoefficient = (1 + ratio) * factor
	gh.SurfaceCoefficient = 1 / math.Cos(rad)
	gh.VentilationEfficiency = (1 + 0.5*math.Sin(rad)) * (gh.InsectNetOpenness / 100) * 0.8
	return gh, nil
}

// envelope holds the geometry shared by every month of a simulation.
type envelope struct {
	floorArea    float64
	volume       float64
	surface      float64
	plantingArea float64
	ventEff      float64
	surfCoef     float64
}

func newEnvelope(gh models.GreenhouseSpec) envelope {
	volCoef := orDefault(gh.VolumeCoefficient, DefaultVolumeCoefficient)
	surfCoef := orDefault(gh.SurfaceCoefficient, DefaultSurfaceCoefficient)
	floor := gh.FloorArea()
	return envelope{
		floorArea:    floor,
		volume:       floor * gh.GutterHeight * volCoef,
		surface:      floor*surfCoef + 2*(gh.Width+gh.Length)*gh.GutterHeight,
		plantingArea: floor * PlantingAreaRatio,
		ventEff:      orDefault(gh.VentilationEfficiency, DefaultVentilationEfficiency),
		surfCoef:     surfCoef,
	}
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
