package engine

import (
	"math"

	"greenhouse_sim/internal/models"

	"gonum.org/v1/gonum/floats"
)

// SimulateDay applies the heat balance hour by hour to one day of
// observations. Solar input is MJ/m²/h. Indoor temperature never drops more
// than FogMaxCooling below outdoor.
func SimulateDay(gh models.GreenhouseSpec, fans models.FanSpec, mat models.MaterialProfile, rows []models.HourlyWeather) (models.DaySimulationResult, error) {
	if len(rows) == 0 {
		return models.DaySimulationResult{}, invalidf("day profile has no rows")
	}
	if err := validateGreenhouse(gh, fans); err != nil {
		return models.DaySimulationResult{}, err
	}

	env := newEnvelope(gh)
	trans := mat.Transmittance * (1 - gh.ShadingPercent/100)
	loss := func(flow float64) float64 { return flow*AirHeatCapacity + mat.UValue*env.surface }

	out := models.DaySimulationResult{Hours: make([]models.HourlyRecord, 0, len(rows))}
	indoor := make([]float64, 0, len(rows))
	for _, row := range rows {
		if math.IsNaN(row.Temp) || math.IsNaN(row.Solar) || math.IsNaN(row.WindSpeed) {
			return models.DaySimulationResult{}, invalidf("non-finite observation at hour %d", row.Hour)
		}
		qSolar := (row.Solar * 1e6 / 3600) * env.floorArea * trans
		fog := fogActive(gh, row.Temp)
		qFog := 0.0
		if fog {
			qFog = fogCooling(gh, env)
		}
		q := loss(ventilationFlow(gh, fans, env, row.WindSpeed))
		delta := 0.0
		if q > 0 {
			delta = (qSolar - qFog) / q
		}
		t := math.Max(row.Temp+delta, row.Temp-FogMaxCooling)

		out.Hours = append(out.Hours, models.HourlyRecord{
			Hour:        row.Hour,
			OutdoorTemp: row.Temp,
			IndoorTemp:  t,
			SolarWatts:  row.Solar * 1e6 / 3600,
			FogActive:   fog,
		})
		indoor = append(indoor, t)
	}
	out.MaxIndoorTemp = floats.Max(indoor)
	out.DiurnalRange = out.MaxIndoorTemp - floats.Min(indoor)
	return out, nil
}
