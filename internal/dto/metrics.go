package dto

import "encoding/json"

// MetricsRequest carries an evaluation to score. Results and ground truth are
// objects of query id to candidate id list; ids may be strings or numbers.
type MetricsRequest struct {
	Name        string          `json:"name,omitempty"`
	MaxK        *int            `json:"max_k,omitempty"`
	KRange      *int            `json:"k_range,omitempty"`
	Results     json.RawMessage `json:"results" swaggertype:"object"`
	GroundTruth json.RawMessage `json:"groundtruth" swaggertype:"object"`
	Record      bool            `json:"record,omitempty"`
}
