package models

import (
	"encoding/json"
	"time"
)

// SweepVariable names the design field varied by a sweep.
type SweepVariable string

const (
	SweepExhaustFans SweepVariable = "exhaust_fans"
	SweepShading     SweepVariable = "shading"
	SweepRoofVent    SweepVariable = "roof_vent"
	SweepFog         SweepVariable = "fog"
)

// SweepRange is the half-open interval [Start, Stop) walked in Step increments.
type SweepRange struct {
	Start float64 `json:"start"`
	Stop  float64 `json:"stop"`
	Step  float64 `json:"step"`
}

// SweepPoint is the evaluation of one swept value.
type SweepPoint struct {
	Index   int     `json:"index"`
	Value   float64 `json:"value"`
	Revenue float64 `json:"revenue"`
	Cost    float64 `json:"cost"`
	Profit  float64 `json:"profit"`
	Yield   float64 `json:"yield"`
	Error   string  `json:"error,omitempty"`
}

// OK reports whether the point evaluated without error.
func (p SweepPoint) OK() bool { return p.Error == "" }

// SweepResult holds the points in ascending index order and the most profitable one.
// BestIndex is -1 when no point evaluated successfully.
type SweepResult struct {
	Variable  SweepVariable `json:"variable"`
	Points    []SweepPoint  `json:"points"`
	Best      *SweepPoint   `json:"best,omitempty"`
	BestIndex int           `json:"best_index"`
	Failed    int           `json:"failed"`
}

// SweepRun is a persisted sweep.
type SweepRun struct {
	ID        string          `json:"id"`
	OwnerID   int             `json:"owner_id"`
	Variable  SweepVariable   `json:"variable"`
	CreatedAt time.Time       `json:"created_at"`
	Result    SweepResult     `json:"result"`
	Request   json.RawMessage `json:"request,omitempty"`
}
