package findings

import (
	"fmt"

	"github.com/healthobs/healthobs/internal/domain/reference"
	"github.com/healthobs/healthobs/internal/domain/state"
)

// importantObservable is the importance threshold for strengths and
// incomplete-data detection.
const importantObservable = 4

// clusterThreshold is the number of attention items within one system
// that constitutes a same-system cluster.
const clusterThreshold = 2

// crossSystemPairs is the closed, hardcoded rule set for cross-system
// pattern detection. Each pair fires when both sides have at least one
// concerning finding.
var crossSystemPairs = []struct {
	a, b string
	text string
}{
	{"cardiovascular", "metabolic",
		"Concerning findings appear in both the cardiovascular and metabolic systems; these commonly reinforce each other."},
	{"inflammatory", "cardiovascular",
		"Systemic inflammation alongside cardiovascular findings can amplify vascular strain."},
	{"inflammatory", "metabolic",
		"Systemic inflammation alongside metabolic findings often tracks insulin resistance."},
}

// Extract scans a health state tree and produces categorized findings.
// Traversal follows taxonomy order, so every bucket comes out in stable
// system/observable/metric order.
func Extract(hs *state.HealthState) *Findings {
	f := &Findings{}

	for _, sys := range hs.Systems {
		for _, obs := range sys.Observables {
			if obs.Importance >= importantObservable && obs.Summary.Entered == 0 {
				f.Incomplete = append(f.Incomplete, Gap{
					SystemID:       sys.ID,
					SystemName:     sys.Name,
					ObservableID:   obs.ID,
					ObservableName: obs.Name,
					Importance:     obs.Importance,
				})
			}
			for _, m := range obs.Metrics {
				item := Item{
					SystemID:       sys.ID,
					SystemName:     sys.Name,
					ObservableID:   obs.ID,
					ObservableName: obs.Name,
					MetricID:       m.ID,
					MetricName:     m.Name,
					Value:          m.Value,
					Unit:           m.Unit,
					DisplayRange:   m.DisplayRange,
					Importance:     obs.Importance,
					Fidelity:       m.Fidelity,
					Status:         m.Status,
				}
				switch m.Status {
				case reference.StatusConcerning:
					f.Concerning = append(f.Concerning, item)
				case reference.StatusOutsideRange:
					item.Subtype = SubtypeOutside
					f.OutsideOptimal = append(f.OutsideOptimal, item)
				case reference.StatusAcceptable:
					item.Subtype = SubtypeAcceptableNotOptimal
					f.OutsideOptimal = append(f.OutsideOptimal, item)
				case reference.StatusOptimal:
					if obs.Importance >= importantObservable {
						f.Strengths = append(f.Strengths, item)
					}
				}
				// no_reference and not_entered produce no per-metric finding
			}
		}
	}

	f.Notable = detectPatterns(hs, f)
	return f
}

// detectPatterns runs over the already-classified finding set.
func detectPatterns(hs *state.HealthState, f *Findings) []Pattern {
	attention := make(map[string]int)
	concerning := make(map[string]bool)
	for _, it := range f.Concerning {
		attention[it.SystemID]++
		concerning[it.SystemID] = true
	}
	for _, it := range f.OutsideOptimal {
		attention[it.SystemID]++
	}

	var patterns []Pattern

	// Same-system clustering, in taxonomy order.
	for _, sys := range hs.Systems {
		if n := attention[sys.ID]; n >= clusterThreshold {
			patterns = append(patterns, Pattern{
				Kind:      PatternSameSystem,
				SystemIDs: []string{sys.ID},
				Count:     n,
				Text:      fmt.Sprintf("%d findings cluster in the %s system.", n, sys.Name),
			})
		}
	}

	for _, pair := range crossSystemPairs {
		if concerning[pair.a] && concerning[pair.b] {
			patterns = append(patterns, Pattern{
				Kind:      PatternCrossSystem,
				SystemIDs: []string{pair.a, pair.b},
				Text:      pair.text,
			})
		}
	}

	return patterns
}
