package engine

import (
	"math"
	"testing"

	"greenhouse_sim/internal/catalog"
)

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("", "", "", 0)
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if p != (Policy{}) {
		t.Fatalf("empty settings must give the zero policy, got %+v", p)
	}

	p, err = ParsePolicy("strict", "capped", "id_only", 1.5)
	if err != nil {
		t.Fatalf("ParsePolicy: %v", err)
	}
	want := Policy{CatalogFallback: catalog.FallbackStrict, FanBonus: FanBonusCapped, NurseryMatch: catalog.MatchIDOnly, DefaultSeedlingPrice: 1.5}
	if p != want {
		t.Fatalf("got %+v, want %+v", p, want)
	}

	bad := []struct {
		name                   string
		fallback, bonus, match string
		price                  float64
	}{
		{"fallback", "closest", "", "", 0},
		{"bonus", "", "triple", "", 0},
		{"match", "", "", "regex", 0},
		{"negative price", "", "", "", -1},
		{"nan price", "", "", "", math.NaN()},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePolicy(tt.fallback, tt.bonus, tt.match, tt.price); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
