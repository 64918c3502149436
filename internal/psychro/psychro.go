// Package psychro holds the ASAE psychrometric correlations used by the engine.
// Every function is pure; pressures are in kPa and temperatures in °C.
package psychro

import "math"

// StandardPressure is sea-level atmospheric pressure in kPa.
const StandardPressure = 101.325

// DewPointUndefined is returned by DewPoint when the vapor pressure is not positive.
const DewPointUndefined = -999.0

// OutOfRangePressure is returned by SaturationVaporPressure outside [MinTemp, MaxTemp].
const OutOfRangePressure = 0.001

const (
	MinTemp = -50.0
	MaxTemp = 200.0
)

// ASAE D271.2 coefficients, ice regime.
const (
	c1 = -5.6745359e+03
	c2 = 6.3925247
	c3 = -9.677843e-03
	c4 = 6.2215701e-07
	c5 = 2.0747825e-09
	c6 = -9.484024e-13
	c7 = 4.1635019
)

// ASAE D271.2 coefficients, liquid water regime.
const (
	c8  = -5.8002206e+03
	c9  = 1.3914993
	c10 = -4.8640239e-02
	c11 = 4.1764768e-05
	c12 = -1.4452093e-08
	c13 = 6.5459673
)

const kelvin = 273.15

// SaturationVaporPressure returns the saturation vapor pressure over water (t ≥ 0)
// or ice (t < 0). The two fits do not meet exactly at 0 °C.
func SaturationVaporPressure(tempC float64) float64 {
	if math.IsNaN(tempC) || tempC < MinTemp || tempC > MaxTemp {
		return OutOfRangePressure
	}
	t := tempC + kelvin
	var lnP float64
	if tempC >= 0 {
		lnP = c8/t + c9 + c10*t + c11*t*t + c12*t*t*t + c13*math.Log(t)
	} else {
		lnP = c1/t + c2 + c3*t + c4*t*t + c5*t*t*t + c6*t*t*t*t + c7*math.Log(t)
	}
	return math.Exp(lnP) / 1000
}

// VaporPressure returns the actual vapor pressure at the given relative humidity (%).
func VaporPressure(tempC, rh float64) float64 {
	return SaturationVaporPressure(tempC) * rh / 100
}

// VaporPressureDeficit is saturation minus actual vapor pressure.
func VaporPressureDeficit(tempC, rh float64) float64 {
	sat := SaturationVaporPressure(tempC)
	return sat - sat*rh/100
}

// DewPoint returns the dew point temperature for a vapor pressure in kPa,
// or DewPointUndefined for a non-positive pressure.
func DewPoint(pwKPa float64) float64 {
	if pwKPa <= 0 || math.IsNaN(pwKPa) {
		return DewPointUndefined
	}
	l := math.Log(pwKPa * 1000)
	return -35.957 - 1.8726*l + 1.1689*l*l
}

// HumidityRatio returns kg water per kg dry air. It is zero when the vapor
// pressure reaches the atmospheric pressure.
func HumidityRatio(pwKPa, atmKPa float64) float64 {
	if atmKPa <= pwKPa {
		return 0
	}
	return 0.62198 * pwKPa / (atmKPa - pwKPa)
}

// Enthalpy returns moist air enthalpy in kJ/kg dry air.
func Enthalpy(tempC, w float64) float64 {
	return 1.006*tempC + w*(2501+1.805*tempC)
}
