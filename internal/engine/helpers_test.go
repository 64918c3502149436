package engine

import (
	"testing"

	"greenhouse_sim/internal/catalog"
	"greenhouse_sim/internal/models"

	"github.com/stretchr/testify/require"
)

func repeat(v float64) []float64 {
	out := make([]float64, Months)
	for i := range out {
		out[i] = v
	}
	return out
}

func testGreenhouse() models.GreenhouseSpec {
	return models.GreenhouseSpec{
		Width:             20,
		Length:            50,
		GutterHeight:      4.5,
		MaterialID:        "glass",
		ShadingPercent:    30,
		InsectNetOpenness: 70,
	}
}

func testFans() models.FanSpec {
	return models.FanSpec{ExhaustFanCount: 8, ExhaustFlowRate: 40000}
}

func testGlass() models.MaterialProfile {
	return models.MaterialProfile{ID: "glass", Transmittance: 0.9, UValue: 5.8}
}

func testLettuce() models.CropProfile {
	return models.CropProfile{ID: "lettuce", DisplayName: "Lettuce", IdealTemp: 20, TempTolerance: 6, BaseUnitWeight: 0.35, LightSaturation: 11}
}

func testInput(t *testing.T) Input {
	t.Helper()
	crops, err := catalog.New("crop", []models.CropProfile{
		testLettuce(),
		{ID: "tomato", DisplayName: "Tomato", IdealTemp: 24, TempTolerance: 5, BaseUnitWeight: 1.2, LightSaturation: 14},
	}, func(c models.CropProfile) string { return c.ID })
	require.NoError(t, err)
	materials, err := catalog.New("material", []models.MaterialProfile{
		testGlass(),
		{ID: "po", Transmittance: 0.85, UValue: 6.0},
	}, func(m models.MaterialProfile) string { return m.ID })
	require.NoError(t, err)

	plan := make([]string, Months)
	for i := range plan {
		plan[i] = "lettuce"
		if i >= 4 && i <= 8 {
			plan[i] = "tomato"
		}
	}
	return Input{
		Greenhouse: testGreenhouse(),
		Fans:       testFans(),
		Climate: models.ClimateMonthlyProfile{
			MeanTemp:         []float64{15, 16, 19, 23, 26, 28, 29, 28.5, 27, 24, 20, 16},
			MaxTemp:          repeat(32),
			MinTemp:          repeat(12),
			Solar:            []float64{9, 10, 12, 14, 16, 18, 20, 19, 17, 14, 11, 9},
			WindSpeed:        repeat(2),
			RelativeHumidity: repeat(70),
		},
		CropPlan:     plan,
		Density:      20,
		AnnualCycles: 6,
		Prices:       repeat(40),
		Crops:        crops,
		Materials:    materials,
		Nursery: catalog.NewNursery([]models.NurseryEntry{
			{CropID: "lettuce", CropName: "Lettuce", UnitPrice: 1.5},
			{CropName: "Cherry Tomato", UnitPrice: 6},
		}),
	}
}
