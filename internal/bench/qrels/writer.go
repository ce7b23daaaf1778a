package qrels

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"
)

// SaveResults writes results in the format implied by the path extension.
// CSV/TSV output carries a rank column; a query without candidates is written as a
// single row with an empty candidate and rank 0.
func SaveResults(m Mapping, path string) error {
	return save(m, path, kindResults)
}

// SaveGroundTruth writes ground truth in the format implied by the path extension.
// CSV/TSV output carries a relevance column set to 1; a query without relevant
// candidates is written as a single row with an empty candidate and relevance 0.
func SaveGroundTruth(m Mapping, path string) error {
	return save(m, path, kindGroundTruth)
}

func save(m Mapping, path string, k kind) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	data, err := encode(m, format, k)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", k, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", k, err)
	}
	return nil
}

func encode(m Mapping, format Format, k kind) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(m, "", "  ")
	case FormatYAML:
		return yaml.Marshal(map[string][]string(m))
	case FormatCSV:
		return encodeDelimited(m, ',', k)
	case FormatTSV:
		return encodeDelimited(m, '\t', k)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

func encodeDelimited(m Mapping, comma rune, k kind) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = comma

	if err := w.Write([]string{"query_id", "candidate_id", thirdColumn(k)}); err != nil {
		return nil, err
	}

	qIDs := make([]string, 0, len(m))
	for qID := range m {
		qIDs = append(qIDs, qID)
	}
	slices.Sort(qIDs)

	for _, qID := range qIDs {
		if len(m[qID]) == 0 {
			if err := w.Write([]string{qID, "", "0"}); err != nil {
				return nil, err
			}
			continue
		}
		for i, id := range m[qID] {
			third := "1"
			if k == kindResults {
				third = strconv.Itoa(i + 1)
			}
			if err := w.Write([]string{qID, id, third}); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
