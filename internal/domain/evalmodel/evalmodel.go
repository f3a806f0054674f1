// Package evalmodel holds the evaluation data types in a leaf package
// so that both the evaluation lifecycle package and the pure state
// projection can depend on them without an import cycle. The evaluation
// package re-exports these types under their original names via type
// aliases.
package evalmodel

import (
	"time"

	"github.com/google/uuid"
)

// Measurement is one entered value for a metric. At most one current
// measurement exists per metric id; later writes overwrite.
type Measurement struct {
	Value   string `json:"value"`
	Date    string `json:"date,omitempty"`    // YYYY-MM-DD, defaults to day of entry
	Context string `json:"context,omitempty"` // free-text tag, e.g. "fasting"
}

// Evaluation is one person-session: person info, the measurement map
// and free-text notes. Overwrite is destructive; no history is kept.
type Evaluation struct {
	ID           uuid.UUID              `db:"id" json:"id"`
	PersonName   *string                `db:"person_name" json:"person_name,omitempty"`
	PersonAge    *int                   `db:"person_age" json:"person_age,omitempty"`
	PersonSex    *string                `db:"person_sex" json:"person_sex,omitempty"`
	Measurements map[string]Measurement `db:"measurements" json:"measurements"`
	Notes        *string                `db:"notes" json:"notes,omitempty"`
	CreatedAt    time.Time              `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time              `db:"updated_at" json:"updated_at"`
}

// Measurement returns the current measurement for a metric, if any.
func (e *Evaluation) Measurement(metricID string) (Measurement, bool) {
	m, ok := e.Measurements[metricID]
	return m, ok
}

// Summary is the list-view projection of an evaluation.
type Summary struct {
	ID               uuid.UUID `db:"id" json:"id"`
	PersonName       *string   `db:"person_name" json:"person_name,omitempty"`
	PersonAge        *int      `db:"person_age" json:"person_age,omitempty"`
	PersonSex        *string   `db:"person_sex" json:"person_sex,omitempty"`
	MeasurementCount int       `db:"measurement_count" json:"measurement_count"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}
