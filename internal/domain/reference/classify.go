package reference

import (
	"strconv"
	"strings"
)

// Classify maps one raw measurement value onto a Status using the
// table's banded ranges for the given person.
//
// The absent-value check runs before any band lookup. Band resolution
// follows the fallback chain in Resolve; a missing age resolves to the
// youngest band (see AgeBandFor). Tier checks run in fixed order —
// optimal, then acceptable, then concerning — each as closed-interval
// membership, so the order is the tie-break when source intervals
// overlap. A judged value matching no tier is outside_range.
func (t *Table) Classify(metricID, raw string, age *int, sex Sex) Status {
	value := strings.TrimSpace(raw)
	if value == "" {
		return StatusNotEntered
	}

	bands, ok := t.Resolve(metricID, sex, AgeBandFor(age))
	if !ok {
		return StatusNoReference
	}
	if bands.Empty() {
		// Metric exists in the table but is not yet quantified.
		return StatusNoReference
	}

	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return StatusNoReference
	}

	switch {
	case bands.Optimal != nil && bands.Optimal.Contains(v):
		return StatusOptimal
	case bands.Acceptable != nil && bands.Acceptable.Contains(v):
		return StatusAcceptable
	case bands.Concerning != nil && bands.Concerning.Contains(v):
		return StatusConcerning
	default:
		return StatusOutsideRange
	}
}

// DisplayRange renders the optimal tier for a metric as "low–high", or
// "" when no optimal tier resolves for the given person.
func (t *Table) DisplayRange(metricID string, age *int, sex Sex) string {
	bands, ok := t.Resolve(metricID, sex, AgeBandFor(age))
	if !ok || bands.Optimal == nil {
		return ""
	}
	return bands.Optimal.String()
}
