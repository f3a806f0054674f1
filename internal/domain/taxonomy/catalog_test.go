package taxonomy

import "testing"

func TestLoad_EmbeddedCatalog(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	systems := c.Systems()
	if len(systems) != 6 {
		t.Fatalf("expected 6 systems, got %d", len(systems))
	}
	if systems[0].ID != "cardiovascular" {
		t.Errorf("expected cardiovascular first, got %s", systems[0].ID)
	}

	ref, ok := c.FindMetric("hba1c")
	if !ok {
		t.Fatal("expected hba1c in catalog")
	}
	if ref.System.ID != "metabolic" || ref.Observable.ID != "glucose_regulation" {
		t.Errorf("hba1c resolved to %s/%s", ref.System.ID, ref.Observable.ID)
	}
	if ref.Observable.Importance != 5 {
		t.Errorf("glucose_regulation importance = %d, want 5", ref.Observable.Importance)
	}

	if _, ok := c.FindMetric("no_such_metric"); ok {
		t.Error("unexpected hit for unknown metric")
	}

	if c.MetricCount() == 0 {
		t.Error("expected non-zero metric count")
	}
}

func TestNew_RejectsInvalidData(t *testing.T) {
	cases := []struct {
		name    string
		systems []System
	}{
		{
			"importance out of range",
			[]System{{ID: "s", Observables: []Observable{{ID: "o", Importance: 6}}}},
		},
		{
			"fidelity out of range",
			[]System{{ID: "s", Observables: []Observable{{
				ID: "o", Importance: 3,
				Metrics: []Metric{{ID: "m", Fidelity: 0}},
			}}}},
		},
		{
			"duplicate metric id",
			[]System{{ID: "s", Observables: []Observable{{
				ID: "o", Importance: 3,
				Metrics: []Metric{{ID: "m", Fidelity: 3}, {ID: "m", Fidelity: 3}},
			}}}},
		},
		{
			"missing system id",
			[]System{{}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.systems); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestDefault_Idempotent(t *testing.T) {
	if Default() != Default() {
		t.Error("Default must return the same catalog")
	}
}
