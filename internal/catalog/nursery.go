package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"greenhouse_sim/internal/models"
)

// DefaultSeedlingPrice is charged per plant when no nursery entry matches.
const DefaultSeedlingPrice = 2.0

// MatchMode controls how crops are matched against nursery rows.
type MatchMode int

const (
	// MatchFuzzy tries the crop id, then the exact name, then a substring of the name.
	MatchFuzzy MatchMode = iota
	// MatchIDOnly only accepts rows keyed by the crop id.
	MatchIDOnly
)

func ParseMatchMode(s string) (MatchMode, error) {
	switch s {
	case "", "fuzzy":
		return MatchFuzzy, nil
	case "id_only":
		return MatchIDOnly, nil
	default:
		return 0, fmt.Errorf("unknown nursery match mode %q", s)
	}
}

func (m MatchMode) String() string {
	if m == MatchIDOnly {
		return "id_only"
	}
	return "fuzzy"
}

// MatchKind says which rule produced a SeedlingPrice.
type MatchKind string

const (
	MatchByID      MatchKind = "id"
	MatchByName    MatchKind = "name"
	MatchBySubstr  MatchKind = "substring"
	MatchByDefault MatchKind = "default"
)

// SeedlingPrice is the per-plant cost resolved for a crop.
type SeedlingPrice struct {
	UnitPrice float64
	Match     MatchKind
	Entry     *models.NurseryEntry
}

// Degraded reports whether the price came from a name heuristic or the default.
func (p SeedlingPrice) Degraded() bool {
	return p.Match == MatchBySubstr || p.Match == MatchByDefault
}

// Nursery is the seedling price table.
type Nursery struct {
	entries []models.NurseryEntry
}

func NewNursery(entries []models.NurseryEntry) *Nursery {
	out := make([]models.NurseryEntry, 0, len(entries))
	for _, e := range entries {
		e.CropName = strings.TrimSpace(e.CropName)
		out = append(out, e)
	}
	return &Nursery{entries: out}
}

func (n *Nursery) Entries() []models.NurseryEntry {
	if n == nil {
		return nil
	}
	out := make([]models.NurseryEntry, len(n.entries))
	copy(out, n.entries)
	return out
}

func (n *Nursery) MarshalJSON() ([]byte, error) {
	entries := n.Entries()
	if entries == nil {
		entries = []models.NurseryEntry{}
	}
	return json.Marshal(entries)
}

// Lookup resolves the seedling price of crop. method filters by propagation
// method when at least one matching row has it. defaultPrice applies when
// nothing matches; a non-positive value selects DefaultSeedlingPrice.
func (n *Nursery) Lookup(crop models.CropProfile, method string, mode MatchMode, defaultPrice float64) SeedlingPrice {
	if defaultPrice <= 0 {
		defaultPrice = DefaultSeedlingPrice
	}
	fallback := SeedlingPrice{UnitPrice: defaultPrice, Match: MatchByDefault}
	if n == nil || len(n.entries) == 0 {
		return fallback
	}

	if crop.ID != "" {
		if e := pick(n.filter(func(e models.NurseryEntry) bool { return e.CropID == crop.ID }), method); e != nil {
			return SeedlingPrice{UnitPrice: e.UnitPrice, Match: MatchByID, Entry: e}
		}
	}
	if mode == MatchIDOnly {
		return fallback
	}

	target := strings.ToLower(strings.TrimSpace(crop.DisplayName))
	if target == "" {
		return fallback
	}
	exact := n.filter(func(e models.NurseryEntry) bool { return strings.ToLower(e.CropName) == target })
	if e := pick(exact, method); e != nil {
		return SeedlingPrice{UnitPrice: e.UnitPrice, Match: MatchByName, Entry: e}
	}
	sub := n.filter(func(e models.NurseryEntry) bool { return strings.Contains(strings.ToLower(e.CropName), target) })
	if e := pick(sub, method); e != nil {
		return SeedlingPrice{UnitPrice: e.UnitPrice, Match: MatchBySubstr, Entry: e}
	}
	return fallback
}

func (n *Nursery) filter(keep func(models.NurseryEntry) bool) []models.NurseryEntry {
	var out []models.NurseryEntry
	for _, e := range n.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// pick returns the first row, preferring rows of the given method.
func pick(rows []models.NurseryEntry, method string) *models.NurseryEntry {
	if len(rows) == 0 {
		return nil
	}
	if method != "" {
		for i := range rows {
			if strings.EqualFold(rows[i].Method, method) {
				e := rows[i]
				return &e
			}
		}
	}
	e := rows[0]
	return &e
}
