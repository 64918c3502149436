package models

// ClimateMonthlyProfile carries twelve monthly values per field, January first.
type ClimateMonthlyProfile struct {
	ID               string    `json:"id,omitempty" yaml:"id"`
	Name             string    `json:"name,omitempty" yaml:"name"`
	MeanTemp         []float64 `json:"mean_temp" yaml:"mean_temp"`                 // °C
	MaxTemp          []float64 `json:"max_temp" yaml:"max_temp"`                   // °C
	MinTemp          []float64 `json:"min_temp" yaml:"min_temp"`                   // °C
	Solar            []float64 `json:"solar" yaml:"solar"`                         // MJ/m²/day
	WindSpeed        []float64 `json:"wind_speed" yaml:"wind_speed"`               // m/s
	RelativeHumidity []float64 `json:"relative_humidity" yaml:"relative_humidity"` // %
}

// HourlyWeather is one observation of a day profile.
type HourlyWeather struct {
	Hour      int     `json:"hour"`
	Temp      float64 `json:"temp"`       // °C
	Solar     float64 `json:"solar"`      // MJ/m²/h
	WindSpeed float64 `json:"wind_speed"` // m/s
}
