package state

import (
	"math"

	evaluation "github.com/healthobs/healthobs/internal/domain/evalmodel"
	"github.com/healthobs/healthobs/internal/domain/reference"
	"github.com/healthobs/healthobs/internal/domain/taxonomy"
)

// Build projects an evaluation onto the taxonomy and returns the nested
// health state tree. It is deterministic, side-effect free and total:
// missing person info or measurements are first-class states, never
// errors, so the result for an empty evaluation is a fully not_entered
// tree.
func Build(cat *taxonomy.Catalog, tbl *reference.Table, ev *evaluation.Evaluation) *HealthState {
	hs := &HealthState{
		EvaluationID: ev.ID,
		PersonName:   ev.PersonName,
		PersonAge:    ev.PersonAge,
		PersonSex:    ev.PersonSex,
		Notes:        ev.Notes,
	}

	sex := reference.SexAny
	if ev.PersonSex != nil {
		sex = reference.Sex(*ev.PersonSex)
	}

	var allStatuses []reference.Status
	for _, sys := range cat.Systems() {
		sysState := SystemState{ID: sys.ID, Name: sys.Name}
		var sysStatuses []reference.Status

		for _, obs := range sys.Observables {
			obsState := ObservableState{
				ID:          obs.ID,
				Name:        obs.Name,
				Importance:  obs.Importance,
				Description: obs.Description,
			}
			var obsStatuses []reference.Status

			for _, metric := range obs.Metrics {
				ms := MetricState{
					ID:       metric.ID,
					Name:     metric.Name,
					Unit:     metric.Unit,
					Fidelity: metric.Fidelity,
					Method:   metric.Method,
				}
				if m, ok := ev.Measurement(metric.ID); ok {
					ms.Value = m.Value
					ms.Date = m.Date
					ms.Context = m.Context
				}
				ms.Status = tbl.Classify(metric.ID, ms.Value, ev.PersonAge, sex)
				ms.DisplayRange = tbl.DisplayRange(metric.ID, ev.PersonAge, sex)

				obsState.Metrics = append(obsState.Metrics, ms)
				obsStatuses = append(obsStatuses, ms.Status)
			}

			obsState.Summary = summarize(obsStatuses)
			sysState.Observables = append(sysState.Observables, obsState)
			sysStatuses = append(sysStatuses, obsStatuses...)
		}

		sysState.Summary = summarize(sysStatuses)
		hs.Systems = append(hs.Systems, sysState)
		hs.Breakdown = append(hs.Breakdown, SystemRow{ID: sys.ID, Name: sys.Name, Summary: sysState.Summary})
		allStatuses = append(allStatuses, sysStatuses...)
	}

	hs.Summary = summarize(allStatuses)
	return hs
}

// summarize applies the rollup rule shared by observable, system and
// overall levels.
func summarize(statuses []reference.Status) Summary {
	s := Summary{Total: len(statuses)}
	for _, st := range statuses {
		if st.Entered() {
			s.Entered++
		}
		switch st {
		case reference.StatusOptimal:
			s.Optimal++
		case reference.StatusAcceptable:
			s.Acceptable++
		case reference.StatusConcerning:
			s.Concerning++
		case reference.StatusOutsideRange:
			s.Outside++
		}
	}
	if s.Total > 0 {
		s.Completeness = int(math.Round(100 * float64(s.Entered) / float64(s.Total)))
		// The endpoints are reserved for exact emptiness/fullness;
		// rounding must not claim them.
		switch {
		case s.Entered == s.Total:
			s.Completeness = 100
		case s.Entered == 0:
			s.Completeness = 0
		case s.Completeness == 100:
			s.Completeness = 99
		case s.Completeness == 0:
			s.Completeness = 1
		}
	}
	s.Status = coarseStatus(s)
	return s
}

// coarseStatus applies the fixed precedence: empty, then concerns, then
// mixed (outside present, or partial entry), then all_optimal, else mixed.
func coarseStatus(s Summary) NodeStatus {
	switch {
	case s.Entered == 0:
		return NodeEmpty
	case s.Concerning > 0:
		return NodeConcerns
	case s.Outside > 0:
		return NodeMixed
	case s.Entered < s.Total:
		return NodeMixed
	case s.Optimal == s.Total:
		return NodeAllOptimal
	default:
		return NodeMixed
	}
}
