package findings

import (
	"github.com/healthobs/healthobs/internal/domain/reference"
)

// Subtype distinguishes the two kinds of outside-optimal findings.
type Subtype string

const (
	SubtypeOutside              Subtype = "outside"
	SubtypeAcceptableNotOptimal Subtype = "acceptable-not-optimal"
)

// Item is one metric-level finding, carrying enough context for the
// report composer to render without re-walking the state tree.
type Item struct {
	SystemID       string           `json:"system_id"`
	SystemName     string           `json:"system_name"`
	ObservableID   string           `json:"observable_id"`
	ObservableName string           `json:"observable_name"`
	MetricID       string           `json:"metric_id"`
	MetricName     string           `json:"metric_name"`
	Value          string           `json:"value"`
	Unit           string           `json:"unit"`
	DisplayRange   string           `json:"display_range,omitempty"`
	Importance     int              `json:"importance"`
	Fidelity       int              `json:"fidelity"`
	Status         reference.Status `json:"status"`
	Subtype        Subtype          `json:"subtype,omitempty"`
}

// PatternKind tags how a notable pattern was detected.
type PatternKind string

const (
	PatternSameSystem  PatternKind = "same_system"
	PatternCrossSystem PatternKind = "cross_system"
)

// Pattern is a cross-cutting observation over the finding set.
type Pattern struct {
	Kind      PatternKind `json:"kind"`
	SystemIDs []string    `json:"system_ids"`
	Count     int         `json:"count,omitempty"`
	Text      string      `json:"text"`
}

// Gap flags an important observable with no entered metrics at all.
type Gap struct {
	SystemID       string `json:"system_id"`
	SystemName     string `json:"system_name"`
	ObservableID   string `json:"observable_id"`
	ObservableName string `json:"observable_name"`
	Importance     int    `json:"importance"`
}

// Findings groups extracted items into the five report buckets.
type Findings struct {
	Concerning     []Item    `json:"concerning"`
	OutsideOptimal []Item    `json:"outside_optimal"`
	Notable        []Pattern `json:"notable"`
	Strengths      []Item    `json:"strengths"`
	Incomplete     []Gap     `json:"incomplete"`
}
