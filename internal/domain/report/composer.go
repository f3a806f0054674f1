package report

import (
	"github.com/healthobs/healthobs/internal/domain/findings"
	"github.com/healthobs/healthobs/internal/domain/state"
)

const (
	maxStrengths = 5
	maxGaps      = 3

	importantObservable = 4
	partialThreshold    = 30  // completeness % below which a system counts as partially observed
	stableRatio         = 0.7 // optimal share of entered values for "generally stable"
)

// Compose turns a health state tree into the prioritized report
// structure. Pure; findings extraction runs internally.
func Compose(hs *state.HealthState) *Report {
	f := findings.Extract(hs)

	r := &Report{
		EvaluationID: hs.EvaluationID,
		PersonName:   hs.PersonName,
		PersonAge:    hs.PersonAge,
		PersonSex:    hs.PersonSex,
		Notes:        hs.Notes,
		Patterns:     f.Notable,
	}

	r.Overview = Overview{
		TotalMetrics:   hs.Summary.Total,
		Entered:        hs.Summary.Entered,
		Completeness:   hs.Summary.Completeness,
		Optimal:        hs.Summary.Optimal,
		Concerning:     hs.Summary.Concerning,
		OutsideOptimal: hs.Summary.Outside + hs.Summary.Acceptable,
		Status:         hs.Summary.Status,
	}

	// Priority tiers; each bucket is already in taxonomy traversal order,
	// which is the stable order within a tier.
	for _, it := range f.Concerning {
		r.Attention = append(r.Attention, AttentionItem{Priority: PriorityConcerning, Finding: it})
	}
	for _, it := range f.OutsideOptimal {
		if it.Importance >= importantObservable {
			r.Attention = append(r.Attention, AttentionItem{Priority: PriorityImportantOutside, Finding: it})
		}
	}
	for _, it := range f.OutsideOptimal {
		if it.Importance < importantObservable {
			r.Attention = append(r.Attention, AttentionItem{Priority: PriorityOtherOutside, Finding: it})
		}
	}

	r.Strengths = f.Strengths
	if len(r.Strengths) > maxStrengths {
		r.Strengths = r.Strengths[:maxStrengths]
	}
	r.Gaps = f.Incomplete
	if len(r.Gaps) > maxGaps {
		r.Gaps = r.Gaps[:maxGaps]
	}

	for _, sys := range hs.Systems {
		narrative, stability := systemNarrative(sys.Summary)
		r.Systems = append(r.Systems, SystemSection{
			ID:        sys.ID,
			Name:      sys.Name,
			Narrative: narrative,
			Stability: stability,
			Summary:   sys.Summary,
		})
	}

	for _, p := range f.Notable {
		if p.Kind == findings.PatternCrossSystem {
			r.Interactions = append(r.Interactions, p.Text)
		}
	}

	r.Guidance = guidance(hs.Summary)
	return r
}

// systemNarrative picks the fixed-template description and its paired
// stability label by thresholding the system's own summary. Branch
// order is fixed; the first match wins.
func systemNarrative(s state.Summary) (string, string) {
	attention := s.Concerning + s.Outside + s.Acceptable
	switch {
	case s.Entered == 0:
		return "This system has not yet been observed.", "Not yet observed"
	case s.Completeness < partialThreshold:
		return "Partial observation; too few values entered to characterise this system.", "Partially observed"
	case attention == 0 && s.Optimal == s.Entered:
		return "All observed values are within expected parameters.", "Stable"
	case attention == 0 && float64(s.Optimal)/float64(s.Entered) > stableRatio:
		return "Observed values are generally within expected ranges.", "Generally stable"
	case s.Concerning > 0:
		return "One or more values in this system are worth discussing.", "Review recommended"
	case s.Outside > 0:
		return "Some values may warrant closer observation.", "Some variation"
	default:
		return "Mixed observations across this system.", "Mixed"
	}
}

// guidance selects overall stability guidance from a fixed catalog
// keyed by completeness and concern thresholds. Static lookup data,
// not generated text.
func guidance(s state.Summary) string {
	switch {
	case s.Entered == 0:
		return "No measurements have been entered yet. Enter values to build a picture of the current state."
	case s.Concerning >= 3:
		return "Several values fall in concerning ranges. Reviewing these together with a clinician is advisable."
	case s.Concerning > 0:
		return "At least one value falls in a concerning range and deserves follow-up discussion."
	case s.Completeness < 50:
		return "The picture is still incomplete. Filling in the remaining important measurements will sharpen it."
	case s.Outside+s.Acceptable > 0:
		return "No concerning values, though some sit outside optimal ranges; routine monitoring is reasonable."
	default:
		return "All entered values look good. Maintain current habits and re-evaluate periodically."
	}
}
