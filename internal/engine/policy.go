package engine

import (
	"fmt"
	"math"

	"greenhouse_sim/internal/catalog"
)

// FanBonus selects how the circulation fan temperature bonus is applied.
type FanBonus int

const (
	// FanBonusBoost multiplies the temperature score by 1.1 with no upper clamp.
	FanBonusBoost FanBonus = iota
	// FanBonusCapped applies the same factor but clamps the score at 1.
	FanBonusCapped
)

func ParseFanBonus(s string) (FanBonus, error) {
	switch s {
	case "", "boost":
		return FanBonusBoost, nil
	case "capped":
		return FanBonusCapped, nil
	default:
		return 0, fmt.Errorf("unknown fan bonus policy %q", s)
	}
}

func (b FanBonus) String() string {
	if b == FanBonusCapped {
		return "capped"
	}
	return "boost"
}

// Policy bundles the caller-chosen behavior for the lenient parts of a simulation.
// The zero value is the historical behavior: first-entry fallback, uncapped
// fan bonus and fuzzy nursery matching with the default seedling price.
type Policy struct {
	CatalogFallback      catalog.FallbackPolicy `json:"catalog_fallback"`
	FanBonus             FanBonus               `json:"fan_bonus"`
	NurseryMatch         catalog.MatchMode      `json:"nursery_match"`
	DefaultSeedlingPrice float64                `json:"default_seedling_price,omitempty"`
}

// ParsePolicy builds a policy from its textual settings. Empty strings select
// the defaults; a zero seedlingPrice leaves catalog.DefaultSeedlingPrice in effect.
func ParsePolicy(fallback, fanBonus, nurseryMatch string, seedlingPrice float64) (Policy, error) {
	fb, err := catalog.ParseFallbackPolicy(fallback)
	if err != nil {
		return Policy{}, fmt.Errorf("catalog_fallback: %w", err)
	}
	bonus, err := ParseFanBonus(fanBonus)
	if err != nil {
		return Policy{}, fmt.Errorf("fan_bonus: %w", err)
	}
	match, err := catalog.ParseMatchMode(nurseryMatch)
	if err != nil {
		return Policy{}, fmt.Errorf("nursery_match: %w", err)
	}
	if math.IsNaN(seedlingPrice) || seedlingPrice < 0 {
		return Policy{}, fmt.Errorf("default_seedling_price must be >= 0, got %v", seedlingPrice)
	}
	return Policy{
		CatalogFallback:      fb,
		FanBonus:             bonus,
		NurseryMatch:         match,
		DefaultSeedlingPrice: seedlingPrice,
	}, nil
}
