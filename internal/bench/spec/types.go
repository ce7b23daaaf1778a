package spec

type EvalSpec struct {
	Metrics  MetricsConfig   `yaml:"metrics"`
	Tracking TrackingConfig  `yaml:"tracking"`
	Postgres *PostgresConfig `yaml:"postgres,omitempty"`
	Runs     []Run           `yaml:"runs"`
}

type MetricsConfig struct {
	MaxK   int `yaml:"max_k"`
	KRange int `yaml:"k_range"`
}

type TrackingConfig struct {
	Backend string `yaml:"backend"`
	RunID   string `yaml:"run_id,omitempty"`
	// Record sends the final-k scalars of every run to the backend.
	Record           bool     `yaml:"record"`
	MLflowURI        string   `yaml:"mlflow_uri,omitempty"`
	// MLflowExperiment is the experiment each run is created in.
	MLflowExperiment string   `yaml:"mlflow_experiment_id,omitempty"`
	ElasticAddresses []string `yaml:"elastic_addresses,omitempty"`
	ElasticIndex     string   `yaml:"elastic_index,omitempty"`
}

type PostgresConfig struct {
	URL string `yaml:"url"`
}

type Run struct {
	Name        string    `yaml:"name"`
	Results     string    `yaml:"results,omitempty"`
	GroundTruth string    `yaml:"groundtruth,omitempty"`
	Postgres    *PGSource `yaml:"postgres,omitempty"`
	MaxK        int       `yaml:"max_k,omitempty"`
	KRange      int       `yaml:"k_range,omitempty"`
}

// PGSource names the run_results run and groundtruth collection to load.
type PGSource struct {
	Run        string `yaml:"run"`
	Collection string `yaml:"collection"`
}

// Cutoffs returns the run's max_k and k_range, falling back to the spec-level metrics.
func (r Run) Cutoffs(m MetricsConfig) (maxK, kRange int) {
	maxK, kRange = m.MaxK, m.KRange
	if r.MaxK > 0 {
		maxK = r.MaxK
	}
	if r.KRange > 0 {
		kRange = r.KRange
	}
	return maxK, kRange
}
