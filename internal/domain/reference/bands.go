package reference

import (
	_ "embed"
	"fmt"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/ranges.yaml
var rangesYAML []byte

// Interval is a closed numeric interval [Low, High], both ends inclusive.
type Interval struct {
	Low  float64
	High float64
}

// Contains reports closed-interval membership.
func (i *Interval) Contains(v float64) bool {
	return v >= i.Low && v <= i.High
}

// String renders the interval for display, e.g. "90–120".
func (i *Interval) String() string {
	return strconv.FormatFloat(i.Low, 'f', -1, 64) + "–" + strconv.FormatFloat(i.High, 'f', -1, 64)
}

// BandSet holds the tier intervals for one sex/age-band combination.
// Any tier may be nil, meaning that tier is not defined.
type BandSet struct {
	Optimal    *Interval
	Acceptable *Interval
	Concerning *Interval
}

// Empty reports whether no tier is defined at all. An entry like this
// marks a metric as "not yet quantified": a value entered against it
// classifies as no_reference, never via numeric comparison.
func (b *BandSet) Empty() bool {
	return b.Optimal == nil && b.Acceptable == nil && b.Concerning == nil
}

type bandKey struct {
	sex  Sex
	band AgeBand
}

// MetricBands is the full banded range data for one metric.
type MetricBands struct {
	Direction Direction
	entries   map[bandKey]*BandSet
}

// Table is the immutable reference range lookup, keyed by metric id.
type Table struct {
	metrics map[string]*MetricBands
}

// TableEntry is one sex/age-band row used when constructing a table.
type TableEntry struct {
	Sex     Sex
	AgeBand AgeBand
	Bands   BandSet
}

// MetricDefinition is the band data for one metric when building a
// table programmatically.
type MetricDefinition struct {
	Direction Direction
	Entries   []TableEntry
}

// NewTable builds a table from explicit rows, mainly for tests and for
// callers that load band data from elsewhere.
func NewTable(metrics map[string]MetricDefinition) *Table {
	t := &Table{metrics: make(map[string]*MetricBands, len(metrics))}
	for id, m := range metrics {
		mb := &MetricBands{Direction: m.Direction, entries: make(map[bandKey]*BandSet)}
		for i := range m.Entries {
			e := m.Entries[i]
			bands := e.Bands
			mb.entries[bandKey{sex: e.Sex, band: e.AgeBand}] = &bands
		}
		t.metrics[id] = mb
	}
	return t
}

// Resolve finds the band set for a metric given sex and age band,
// walking the fallback chain:
// (sex, band) → (sex, all) → (any, band) → (any, all).
// An absent sex starts the chain at the `any` entries.
func (t *Table) Resolve(metricID string, sex Sex, band AgeBand) (*BandSet, bool) {
	mb, ok := t.metrics[metricID]
	if !ok {
		return nil, false
	}
	keys := []bandKey{
		{sex: sex, band: band},
		{sex: sex, band: AgeBandAll},
		{sex: SexAny, band: band},
		{sex: SexAny, band: AgeBandAll},
	}
	if sex == "" || sex == SexAny {
		keys = keys[2:]
	}
	for _, k := range keys {
		if bs, ok := mb.entries[k]; ok {
			return bs, true
		}
	}
	return nil, false
}

// Direction returns the direction metadata for a metric.
func (t *Table) Direction(metricID string) (Direction, bool) {
	mb, ok := t.metrics[metricID]
	if !ok {
		return "", false
	}
	return mb.Direction, true
}

// -- YAML loading --

type rangeEntryYAML struct {
	Sex        string    `yaml:"sex"`
	AgeBand    string    `yaml:"age_band"`
	Optimal    []float64 `yaml:"optimal"`
	Acceptable []float64 `yaml:"acceptable"`
	Concerning []float64 `yaml:"concerning"`
}

type metricRangesYAML struct {
	Direction string           `yaml:"direction"`
	Bands     []rangeEntryYAML `yaml:"bands"`
}

func intervalFromYAML(metricID, tier string, pair []float64) (*Interval, error) {
	if pair == nil {
		return nil, nil
	}
	if len(pair) != 2 {
		return nil, fmt.Errorf("metric %s: %s interval needs [low, high], got %d values", metricID, tier, len(pair))
	}
	if pair[0] > pair[1] {
		return nil, fmt.Errorf("metric %s: %s interval low %v > high %v", metricID, tier, pair[0], pair[1])
	}
	return &Interval{Low: pair[0], High: pair[1]}, nil
}

// Load parses the embedded reference range catalog.
func Load() (*Table, error) {
	var doc map[string]metricRangesYAML
	if err := yaml.Unmarshal(rangesYAML, &doc); err != nil {
		return nil, fmt.Errorf("parse reference ranges: %w", err)
	}

	t := &Table{metrics: make(map[string]*MetricBands, len(doc))}
	for id, m := range doc {
		mb := &MetricBands{Direction: Direction(m.Direction), entries: make(map[bandKey]*BandSet)}
		for _, e := range m.Bands {
			sex := Sex(e.Sex)
			if sex != SexMale && sex != SexFemale && sex != SexAny {
				return nil, fmt.Errorf("metric %s: invalid sex %q", id, e.Sex)
			}
			band := AgeBand(e.AgeBand)
			switch band {
			case AgeBand18to39, AgeBand40to59, AgeBand60Plus, AgeBandAll:
			default:
				return nil, fmt.Errorf("metric %s: invalid age band %q", id, e.AgeBand)
			}
			key := bandKey{sex: sex, band: band}
			if _, dup := mb.entries[key]; dup {
				return nil, fmt.Errorf("metric %s: duplicate band entry %s/%s", id, sex, band)
			}
			var bs BandSet
			var err error
			if bs.Optimal, err = intervalFromYAML(id, "optimal", e.Optimal); err != nil {
				return nil, err
			}
			if bs.Acceptable, err = intervalFromYAML(id, "acceptable", e.Acceptable); err != nil {
				return nil, err
			}
			if bs.Concerning, err = intervalFromYAML(id, "concerning", e.Concerning); err != nil {
				return nil, err
			}
			mb.entries[key] = &bs
		}
		t.metrics[id] = mb
	}
	return t, nil
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the embedded reference range table. Static data, so a
// parse failure panics at startup.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := Load()
		if err != nil {
			panic(fmt.Sprintf("reference: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}
