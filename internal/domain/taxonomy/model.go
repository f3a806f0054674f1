package taxonomy

// System is a top-level physiological category (e.g. Cardiovascular).
type System struct {
	ID          string       `yaml:"id" json:"id"`
	Name        string       `yaml:"name" json:"name"`
	Observables []Observable `yaml:"observables" json:"observables"`
}

// Observable is a clinically meaningful construct within a System,
// weighted by importance and measured through one or more metrics.
type Observable struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Importance  int      `yaml:"importance" json:"importance"`
	Description string   `yaml:"description" json:"description"`
	Metrics     []Metric `yaml:"metrics" json:"metrics"`
}

// Metric is a single measurable quantity. Fidelity grades how reliable
// the measurement is as a proxy for the observable (1-5).
type Metric struct {
	ID       string `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Unit     string `yaml:"unit" json:"unit"`
	Fidelity int    `yaml:"fidelity" json:"fidelity"`
	Method   string `yaml:"method" json:"method"`
}

// MetricRef locates a metric inside the catalog together with its
// enclosing observable and system.
type MetricRef struct {
	System     *System
	Observable *Observable
	Metric     *Metric
}
