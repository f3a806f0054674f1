package taxonomy

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/taxonomy.yaml
var catalogYAML []byte

// Catalog is the immutable System/Observable/Metric hierarchy. It is
// loaded once at startup and indexed by metric id; metric ids are
// globally unique across the whole taxonomy.
type Catalog struct {
	systems  []System
	byMetric map[string]MetricRef
}

// New builds a catalog from the given systems and validates it.
func New(systems []System) (*Catalog, error) {
	c := &Catalog{
		systems:  systems,
		byMetric: make(map[string]MetricRef),
	}
	for si := range c.systems {
		sys := &c.systems[si]
		if sys.ID == "" {
			return nil, fmt.Errorf("system %d has no id", si)
		}
		for oi := range sys.Observables {
			obs := &sys.Observables[oi]
			if obs.Importance < 1 || obs.Importance > 5 {
				return nil, fmt.Errorf("observable %s: importance %d out of range 1-5", obs.ID, obs.Importance)
			}
			for mi := range obs.Metrics {
				m := &obs.Metrics[mi]
				if m.Fidelity < 1 || m.Fidelity > 5 {
					return nil, fmt.Errorf("metric %s: fidelity %d out of range 1-5", m.ID, m.Fidelity)
				}
				if _, dup := c.byMetric[m.ID]; dup {
					return nil, fmt.Errorf("duplicate metric id %q", m.ID)
				}
				c.byMetric[m.ID] = MetricRef{System: sys, Observable: obs, Metric: m}
			}
		}
	}
	return c, nil
}

// Load parses the embedded catalog definition.
func Load() (*Catalog, error) {
	var doc struct {
		Systems []System `yaml:"systems"`
	}
	if err := yaml.Unmarshal(catalogYAML, &doc); err != nil {
		return nil, fmt.Errorf("parse taxonomy: %w", err)
	}
	return New(doc.Systems)
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog. The data is static and shipped
// with the binary, so a parse failure is a build defect and panics.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load()
		if err != nil {
			panic(fmt.Sprintf("taxonomy: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Systems returns the ordered system list.
func (c *Catalog) Systems() []System { return c.systems }

// FindMetric looks up a metric by id.
func (c *Catalog) FindMetric(id string) (MetricRef, bool) {
	ref, ok := c.byMetric[id]
	return ref, ok
}

// MetricCount returns the total number of metrics in the catalog.
func (c *Catalog) MetricCount() int { return len(c.byMetric) }
