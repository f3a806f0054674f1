package evaluation

import (
	"github.com/healthobs/healthobs/internal/domain/evalmodel"
)

// The evaluation data types live in the leaf package evalmodel so that
// the state projection can use them without importing this package
// (which itself imports state). The aliases keep the original API:
// evaluation.Evaluation etc. remain the same types.

// Measurement is one entered value for a metric. At most one current
// measurement exists per metric id; later writes overwrite.
type Measurement = evalmodel.Measurement

// Evaluation is one person-session: person info, the measurement map
// and free-text notes. Overwrite is destructive; no history is kept.
type Evaluation = evalmodel.Evaluation

// Summary is the list-view projection of an evaluation.
type Summary = evalmodel.Summary
