package report

import (
	"github.com/google/uuid"

	"github.com/healthobs/healthobs/internal/domain/findings"
	"github.com/healthobs/healthobs/internal/domain/state"
)

// Priority ranks attention items. Lower is more urgent.
type Priority int

const (
	PriorityConcerning       Priority = 1 // concerning findings
	PriorityImportantOutside Priority = 2 // outside-optimal on importance >=4 observables
	PriorityOtherOutside     Priority = 3 // remaining outside-optimal
)

// AttentionItem is one row of the prioritized needs-attention list.
type AttentionItem struct {
	Priority Priority      `json:"priority"`
	Finding  findings.Item `json:"finding"`
}

// Overview carries the headline counts for the report.
type Overview struct {
	TotalMetrics   int              `json:"total_metrics"`
	Entered        int              `json:"entered"`
	Completeness   int              `json:"completeness"`
	Optimal        int              `json:"optimal"`
	Concerning     int              `json:"concerning"`
	OutsideOptimal int              `json:"outside_optimal"`
	Status         state.NodeStatus `json:"status"`
}

// SystemSection is the per-system narrative block.
type SystemSection struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Narrative string        `json:"narrative"`
	Stability string        `json:"stability"`
	Summary   state.Summary `json:"summary"`
}

// Report is the language/format-neutral report structure. Rendering to
// markup or print layout is the caller's concern.
type Report struct {
	EvaluationID uuid.UUID          `json:"evaluation_id"`
	PersonName   *string            `json:"person_name,omitempty"`
	PersonAge    *int               `json:"person_age,omitempty"`
	PersonSex    *string            `json:"person_sex,omitempty"`
	Overview     Overview           `json:"overview"`
	Attention    []AttentionItem    `json:"attention"`
	Strengths    []findings.Item    `json:"strengths"`
	Gaps         []findings.Gap     `json:"gaps"`
	Systems      []SystemSection    `json:"systems"`
	Patterns     []findings.Pattern `json:"patterns"`
	Interactions []string           `json:"interactions,omitempty"`
	Guidance     string             `json:"guidance"`
	Notes        *string            `json:"notes,omitempty"`
}
