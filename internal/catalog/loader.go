package catalog

import (
	"fmt"
	"os"

	"greenhouse_sim/internal/models"

	"gopkg.in/yaml.v3"
)

type (
	Crops     = Catalog[models.CropProfile]
	Materials = Catalog[models.MaterialProfile]
	Climates  = Catalog[models.ClimateMonthlyProfile]
)

// PricePlan is a named 12-month market price series (currency per kg).
type PricePlan struct {
	CropID string    `json:"crop_id" yaml:"crop_id"`
	Prices []float64 `json:"prices" yaml:"prices"`
}

// Set is everything read from a catalog file.
type Set struct {
	Crops     *Crops      `json:"crops"`
	Materials *Materials  `json:"materials"`
	Climates  *Climates   `json:"climates"`
	Nursery   *Nursery    `json:"nursery"`
	Prices    []PricePlan `json:"prices"`
}

type fileLayout struct {
	Crops     []models.CropProfile           `yaml:"crops"`
	Materials []models.MaterialProfile       `yaml:"materials"`
	Climates  []models.ClimateMonthlyProfile `yaml:"climates"`
	Nursery   []models.NurseryEntry          `yaml:"nursery"`
	Prices    []PricePlan                    `yaml:"prices"`
}

// Load reads and parses a catalog YAML file.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %q: %w", path, err)
	}
	set, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %q: %w", path, err)
	}
	return set, nil
}

// Parse decodes catalog YAML.
func Parse(data []byte) (*Set, error) {
	var f fileLayout
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return build(f)
}

func build(f fileLayout) (*Set, error) {
	crops, err := New("crop", f.Crops, func(c models.CropProfile) string { return c.ID })
	if err != nil {
		return nil, err
	}
	materials, err := New("material", f.Materials, func(m models.MaterialProfile) string { return m.ID })
	if err != nil {
		return nil, err
	}
	climates, err := New("climate", f.Climates, func(c models.ClimateMonthlyProfile) string { return c.ID })
	if err != nil {
		return nil, err
	}
	return &Set{
		Crops:     crops,
		Materials: materials,
		Climates:  climates,
		Nursery:   NewNursery(f.Nursery),
		Prices:    f.Prices,
	}, nil
}

// PricesFor returns the price plan of a crop, if any.
func (s *Set) PricesFor(cropID string) ([]float64, bool) {
	for _, p := range s.Prices {
		if p.CropID == cropID {
			return p.Prices, true
		}
	}
	return nil, false
}
