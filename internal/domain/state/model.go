package state

import (
	"github.com/google/uuid"

	"github.com/healthobs/healthobs/internal/domain/reference"
)

// NodeStatus is the coarse rollup label at observable/system/overall level.
type NodeStatus string

const (
	NodeEmpty      NodeStatus = "empty"
	NodeConcerns   NodeStatus = "concerns"
	NodeMixed      NodeStatus = "mixed"
	NodeAllOptimal NodeStatus = "all_optimal"
)

// Summary aggregates metric statuses at one level of the tree.
type Summary struct {
	Total        int        `json:"total"`
	Entered      int        `json:"entered"`
	Optimal      int        `json:"optimal"`
	Acceptable   int        `json:"acceptable"`
	Concerning   int        `json:"concerning"`
	Outside      int        `json:"outside"`
	Completeness int        `json:"completeness"`
	Status       NodeStatus `json:"status"`
}

// MetricState is one leaf of the health state tree.
type MetricState struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Unit         string           `json:"unit"`
	Fidelity     int              `json:"fidelity"`
	Method       string           `json:"method"`
	Value        string           `json:"value,omitempty"`
	Date         string           `json:"date,omitempty"`
	Context      string           `json:"context,omitempty"`
	Status       reference.Status `json:"status"`
	DisplayRange string           `json:"display_range,omitempty"`
}

// ObservableState groups the metric states of one observable.
type ObservableState struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Importance  int           `json:"importance"`
	Description string        `json:"description"`
	Metrics     []MetricState `json:"metrics"`
	Summary     Summary       `json:"summary"`
}

// SystemState groups the observable states of one system.
type SystemState struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Observables []ObservableState `json:"observables"`
	Summary     Summary           `json:"summary"`
}

// SystemRow is one per-system line of the overall breakdown.
type SystemRow struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Summary Summary `json:"summary"`
}

// HealthState is the derived tree for one evaluation. It is never
// persisted or hand-edited; it is recomputed on every read as a pure
// projection of (evaluation, taxonomy, reference table).
type HealthState struct {
	EvaluationID uuid.UUID     `json:"evaluation_id"`
	PersonName   *string       `json:"person_name,omitempty"`
	PersonAge    *int          `json:"person_age,omitempty"`
	PersonSex    *string       `json:"person_sex,omitempty"`
	Notes        *string       `json:"notes,omitempty"`
	Systems      []SystemState `json:"systems"`
	Summary      Summary       `json:"summary"`
	Breakdown    []SystemRow   `json:"breakdown"`
}
