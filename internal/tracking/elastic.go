package tracking

import (
	"context"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

const DefaultElasticIndex = "rankeval-metrics"

type ElasticConfig struct {
	Addresses []string
	Index     string
	Username  string
	Password  string
}

// Elastic indexes one document per scalar, keyed by run id.
type Elastic struct {
	client *elasticsearch.TypedClient
	index  string
	runID  string
	now    func() time.Time
}

type elasticMetricDoc struct {
	RunID     string    `json:"run_id"`
	Name      string    `json:"name"`
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"@timestamp"`
}

func NewElastic(cfg ElasticConfig, runID string) (*Elastic, error) {
	if len(cfg.Addresses) == 0 {
		return nil, fmt.Errorf("elasticsearch addresses are required")
	}

	esCfg := elasticsearch.Config{
		Addresses: cfg.Addresses,
	}
	if cfg.Username != "" && cfg.Password != "" {
		esCfg.Username = cfg.Username
		esCfg.Password = cfg.Password
	}

	client, err := elasticsearch.NewTypedClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	index := cfg.Index
	if index == "" {
		index = DefaultElasticIndex
	}

	return &Elastic{client: client, index: index, runID: runID, now: time.Now}, nil
}

func (e *Elastic) RunID() string {
	return e.runID
}

func (e *Elastic) LogScalar(ctx context.Context, name string, value float64) error {
	doc := elasticMetricDoc{
		RunID:     e.runID,
		Name:      name,
		Value:     value,
		Timestamp: e.now().UTC(),
	}

	if _, err := e.client.Index(e.index).Document(doc).Do(ctx); err != nil {
		return fmt.Errorf("failed to index metric %q: %w", name, err)
	}
	return nil
}
