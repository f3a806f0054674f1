package state

import (
	"reflect"
	"testing"

	"github.com/google/uuid"

	evaluation "github.com/healthobs/healthobs/internal/domain/evalmodel"
	"github.com/healthobs/healthobs/internal/domain/reference"
	"github.com/healthobs/healthobs/internal/domain/taxonomy"
)

func strPtr(s string) *string { return &s }
func intPtr(v int) *int       { return &v }

func testEvaluation() *evaluation.Evaluation {
	return &evaluation.Evaluation{
		ID:        uuid.New(),
		PersonAge: intPtr(30),
		PersonSex: strPtr("male"),
		Measurements: map[string]evaluation.Measurement{
			"bp_resting_systolic":  {Value: "118", Date: "2026-08-01"},
			"bp_resting_diastolic": {Value: "83", Date: "2026-08-01"},
			"resting_heart_rate":   {Value: "85", Date: "2026-08-01"},
			"ldl_cholesterol":      {Value: "310", Date: "2026-08-02", Context: "fasting"},
			"hs_crp":               {Value: "0.5", Date: "2026-08-02"},
		},
	}
}

func findSystem(t *testing.T, hs *HealthState, id string) SystemState {
	t.Helper()
	for _, s := range hs.Systems {
		if s.ID == id {
			return s
		}
	}
	t.Fatalf("system %s not in state tree", id)
	return SystemState{}
}

func findObservable(t *testing.T, sys SystemState, id string) ObservableState {
	t.Helper()
	for _, o := range sys.Observables {
		if o.ID == id {
			return o
		}
	}
	t.Fatalf("observable %s not in system %s", id, sys.ID)
	return ObservableState{}
}

func TestBuild_RollsUpHierarchy(t *testing.T) {
	hs := Build(taxonomy.Default(), reference.Default(), testEvaluation())

	cardio := findSystem(t, hs, "cardiovascular")
	bp := findObservable(t, cardio, "blood_pressure_regulation")

	if bp.Summary.Total != 3 || bp.Summary.Entered != 3 {
		t.Errorf("blood pressure summary total/entered = %d/%d, want 3/3", bp.Summary.Total, bp.Summary.Entered)
	}
	if bp.Summary.Optimal != 1 || bp.Summary.Acceptable != 1 || bp.Summary.Concerning != 1 {
		t.Errorf("blood pressure tier counts = %+v", bp.Summary)
	}
	if bp.Summary.Status != NodeConcerns {
		t.Errorf("blood pressure status = %s, want concerns", bp.Summary.Status)
	}
	if bp.Summary.Completeness != 100 {
		t.Errorf("blood pressure completeness = %d, want 100", bp.Summary.Completeness)
	}

	// The system rollup flattens metric statuses, not observable ones.
	if cardio.Summary.Total != 8 || cardio.Summary.Entered != 4 {
		t.Errorf("cardiovascular total/entered = %d/%d, want 8/4", cardio.Summary.Total, cardio.Summary.Entered)
	}
	if cardio.Summary.Outside != 1 {
		t.Errorf("cardiovascular outside = %d, want 1 (LDL 310)", cardio.Summary.Outside)
	}
	if cardio.Summary.Completeness != 50 {
		t.Errorf("cardiovascular completeness = %d, want 50", cardio.Summary.Completeness)
	}
	if cardio.Summary.Status != NodeConcerns {
		t.Errorf("cardiovascular status = %s, want concerns", cardio.Summary.Status)
	}

	// Partially entered system with only optimal values rolls up mixed.
	inflam := findSystem(t, hs, "inflammatory")
	if inflam.Summary.Status != NodeMixed {
		t.Errorf("inflammatory status = %s, want mixed (partial entry)", inflam.Summary.Status)
	}

	// Untouched system is empty.
	resp := findSystem(t, hs, "respiratory")
	if resp.Summary.Status != NodeEmpty || resp.Summary.Entered != 0 {
		t.Errorf("respiratory summary = %+v, want empty", resp.Summary)
	}

	if hs.Summary.Status != NodeConcerns {
		t.Errorf("overall status = %s, want concerns", hs.Summary.Status)
	}
	if len(hs.Breakdown) != len(hs.Systems) {
		t.Errorf("breakdown has %d rows, want %d", len(hs.Breakdown), len(hs.Systems))
	}
}

func TestBuild_MetricLeafCarriesMeasurement(t *testing.T) {
	hs := Build(taxonomy.Default(), reference.Default(), testEvaluation())

	cardio := findSystem(t, hs, "cardiovascular")
	bp := findObservable(t, cardio, "blood_pressure_regulation")

	var systolic *MetricState
	for i := range bp.Metrics {
		if bp.Metrics[i].ID == "bp_resting_systolic" {
			systolic = &bp.Metrics[i]
		}
	}
	if systolic == nil {
		t.Fatal("bp_resting_systolic missing from leaf metrics")
	}
	if systolic.Value != "118" || systolic.Date != "2026-08-01" {
		t.Errorf("leaf carries %q/%q, want 118/2026-08-01", systolic.Value, systolic.Date)
	}
	if systolic.Status != reference.StatusOptimal {
		t.Errorf("leaf status = %s, want optimal", systolic.Status)
	}
	if systolic.DisplayRange != "90–120" {
		t.Errorf("leaf display range = %q, want 90–120", systolic.DisplayRange)
	}
}

func TestBuild_EmptyEvaluation(t *testing.T) {
	ev := &evaluation.Evaluation{ID: uuid.New()}
	hs := Build(taxonomy.Default(), reference.Default(), ev)

	if hs.Summary.Status != NodeEmpty {
		t.Errorf("overall status = %s, want empty", hs.Summary.Status)
	}
	if hs.Summary.Entered != 0 || hs.Summary.Completeness != 0 {
		t.Errorf("summary = %+v, want zero entered and completeness", hs.Summary)
	}
	for _, sys := range hs.Systems {
		if sys.Summary.Status != NodeEmpty {
			t.Errorf("system %s status = %s, want empty", sys.ID, sys.Summary.Status)
		}
	}
}

func TestBuild_Deterministic(t *testing.T) {
	ev := testEvaluation()
	a := Build(taxonomy.Default(), reference.Default(), ev)
	b := Build(taxonomy.Default(), reference.Default(), ev)
	if !reflect.DeepEqual(a, b) {
		t.Error("two builds of the same evaluation differ")
	}
}

func TestSummarize_Invariants(t *testing.T) {
	statuses := []reference.Status{
		reference.StatusOptimal,
		reference.StatusAcceptable,
		reference.StatusConcerning,
		reference.StatusOutsideRange,
		reference.StatusNoReference,
		reference.StatusNotEntered,
	}
	s := summarize(statuses)

	classified := s.Optimal + s.Acceptable + s.Concerning + s.Outside
	if classified > s.Entered {
		t.Errorf("classified %d exceeds entered %d", classified, s.Entered)
	}
	if s.Entered > s.Total {
		t.Errorf("entered %d exceeds total %d", s.Entered, s.Total)
	}
	// no_reference counts as entered but lands in no tier bucket.
	if s.Entered != 5 {
		t.Errorf("entered = %d, want 5", s.Entered)
	}
	if s.Completeness != 83 {
		t.Errorf("completeness = %d, want 83 (round of 5/6)", s.Completeness)
	}
}

func TestSummarize_CompletenessEndpointsExact(t *testing.T) {
	// With large status sets, rounding alone would report 100 for
	// 299/300 and 0 for 1/300; the endpoints must stay reserved for
	// exactly-full and exactly-empty.
	nearlyFull := make([]reference.Status, 300)
	for i := range nearlyFull {
		nearlyFull[i] = reference.StatusOptimal
	}
	nearlyFull[0] = reference.StatusNotEntered

	s := summarize(nearlyFull)
	if s.Completeness != 99 {
		t.Errorf("299/300 completeness = %d, want 99", s.Completeness)
	}

	nearlyEmpty := make([]reference.Status, 300)
	for i := range nearlyEmpty {
		nearlyEmpty[i] = reference.StatusNotEntered
	}
	nearlyEmpty[0] = reference.StatusOptimal

	s = summarize(nearlyEmpty)
	if s.Completeness != 1 {
		t.Errorf("1/300 completeness = %d, want 1", s.Completeness)
	}

	full := []reference.Status{reference.StatusOptimal, reference.StatusOptimal}
	if s = summarize(full); s.Completeness != 100 {
		t.Errorf("full set completeness = %d, want 100", s.Completeness)
	}
	empty := []reference.Status{reference.StatusNotEntered}
	if s = summarize(empty); s.Completeness != 0 {
		t.Errorf("empty set completeness = %d, want 0", s.Completeness)
	}
}

func TestCoarseStatus_Precedence(t *testing.T) {
	cases := []struct {
		name string
		s    Summary
		want NodeStatus
	}{
		{"nothing entered", Summary{Total: 3}, NodeEmpty},
		{"concerning wins over outside", Summary{Total: 3, Entered: 3, Concerning: 1, Outside: 1, Optimal: 1}, NodeConcerns},
		{"outside forces mixed", Summary{Total: 2, Entered: 2, Optimal: 1, Outside: 1}, NodeMixed},
		{"partial entry forces mixed", Summary{Total: 4, Entered: 2, Optimal: 2}, NodeMixed},
		{"all optimal", Summary{Total: 2, Entered: 2, Optimal: 2}, NodeAllOptimal},
		{"acceptable mixes", Summary{Total: 2, Entered: 2, Optimal: 1, Acceptable: 1}, NodeMixed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := coarseStatus(tc.s); got != tc.want {
				t.Errorf("coarseStatus = %s, want %s", got, tc.want)
			}
		})
	}
}
