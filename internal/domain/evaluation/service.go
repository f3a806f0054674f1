package evaluation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/healthobs/healthobs/internal/domain/reference"
	"github.com/healthobs/healthobs/internal/domain/report"
	"github.com/healthobs/healthobs/internal/domain/state"
	"github.com/healthobs/healthobs/internal/domain/taxonomy"
)

// ErrIncomplete is returned when a report is requested for an
// evaluation that does not yet have age, sex and a measurement. The
// core engine itself is total over partial data; this precondition
// lives at the service edge.
var ErrIncomplete = errors.New("evaluation needs age, sex and at least one measurement")

// Service owns evaluation lifecycle and the derived state/report
// projections. The catalog and reference table are loaded once and
// never mutated.
type Service struct {
	repo Repository
	cat  *taxonomy.Catalog
	tbl  *reference.Table
}

func NewService(repo Repository, cat *taxonomy.Catalog, tbl *reference.Table) *Service {
	return &Service{repo: repo, cat: cat, tbl: tbl}
}

func validSex(sex *string) bool {
	return sex == nil || *sex == string(reference.SexMale) || *sex == string(reference.SexFemale)
}

// Create saves a new evaluation. Age is required on save; name, sex,
// measurements and notes may still be absent.
func (s *Service) Create(ctx context.Context, ev *Evaluation) error {
	if ev.PersonAge == nil {
		return fmt.Errorf("person_age is required")
	}
	if *ev.PersonAge < 0 || *ev.PersonAge > 130 {
		return fmt.Errorf("person_age %d out of range", *ev.PersonAge)
	}
	if !validSex(ev.PersonSex) {
		return fmt.Errorf("person_sex must be %q or %q", reference.SexMale, reference.SexFemale)
	}
	if err := s.validateMeasurements(ev.Measurements); err != nil {
		return err
	}
	if ev.Measurements == nil {
		ev.Measurements = make(map[string]Measurement)
	}
	return s.repo.Create(ctx, ev)
}

// Get loads one evaluation.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Evaluation, error) {
	return s.repo.GetByID(ctx, id)
}

// Update overwrites an evaluation in full. Destructive; no versioning
// or history is kept.
func (s *Service) Update(ctx context.Context, ev *Evaluation) error {
	if ev.PersonAge == nil {
		return fmt.Errorf("person_age is required")
	}
	if !validSex(ev.PersonSex) {
		return fmt.Errorf("person_sex must be %q or %q", reference.SexMale, reference.SexFemale)
	}
	if err := s.validateMeasurements(ev.Measurements); err != nil {
		return err
	}
	if ev.Measurements == nil {
		ev.Measurements = make(map[string]Measurement)
	}
	return s.repo.Update(ctx, ev)
}

// Delete removes an evaluation.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// List returns evaluation summaries, most recently updated first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*Summary, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// SetMeasurement enters or edits one measurement. An empty value clears
// the metric; a missing capture date defaults to the day of entry.
func (s *Service) SetMeasurement(ctx context.Context, id uuid.UUID, metricID string, m Measurement) (*Evaluation, error) {
	if _, ok := s.cat.FindMetric(metricID); !ok {
		return nil, fmt.Errorf("unknown metric id %q", metricID)
	}
	ev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if m.Value == "" {
		delete(ev.Measurements, metricID)
	} else {
		if m.Date == "" {
			m.Date = time.Now().UTC().Format("2006-01-02")
		} else if _, err := time.Parse("2006-01-02", m.Date); err != nil {
			return nil, fmt.Errorf("invalid measurement date %q: %w", m.Date, err)
		}
		ev.Measurements[metricID] = m
	}

	if err := s.repo.Update(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

// BuildState recomputes the derived health state for an evaluation.
func (s *Service) BuildState(ctx context.Context, id uuid.UUID) (*state.HealthState, error) {
	ev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return state.Build(s.cat, s.tbl, ev), nil
}

// ComposeReport builds the findings report for an evaluation. Unlike
// BuildState it requires a minimally filled evaluation.
func (s *Service) ComposeReport(ctx context.Context, id uuid.UUID) (*report.Report, error) {
	ev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ev.PersonAge == nil || ev.PersonSex == nil || len(ev.Measurements) == 0 {
		return nil, ErrIncomplete
	}
	return report.Compose(state.Build(s.cat, s.tbl, ev)), nil
}

// Taxonomy exposes the static catalog for form-rendering clients.
func (s *Service) Taxonomy() []taxonomy.System {
	return s.cat.Systems()
}

func (s *Service) validateMeasurements(ms map[string]Measurement) error {
	for metricID, m := range ms {
		if _, ok := s.cat.FindMetric(metricID); !ok {
			return fmt.Errorf("unknown metric id %q", metricID)
		}
		if m.Value == "" {
			return fmt.Errorf("metric %s: empty value; omit the entry to clear it", metricID)
		}
		if m.Date != "" {
			if _, err := time.Parse("2006-01-02", m.Date); err != nil {
				return fmt.Errorf("metric %s: invalid date %q", metricID, m.Date)
			}
		}
	}
	return nil
}
