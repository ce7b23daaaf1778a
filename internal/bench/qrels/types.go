// Package qrels loads and saves the two evaluation inputs: ranked results per query and
// ground-truth relevant candidates per query.
package qrels

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Mapping maps a query id to candidate ids. For results the order is the ranking;
// for ground truth it is only a membership list.
type Mapping map[string][]string

// Format identifies an on-disk encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
)

// idString renders a decoded identifier. Query and candidate ids may be written as
// integers in source files; they are compared as their decimal text.
func idString(v any) (string, error) {
	switch id := v.(type) {
	case string:
		return id, nil
	case json.Number:
		return id.String(), nil
	case int:
		return strconv.Itoa(id), nil
	case int64:
		return strconv.FormatInt(id, 10), nil
	case uint64:
		return strconv.FormatUint(id, 10), nil
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported id type %T", v)
	}
}

func idStrings(vals []any) ([]string, error) {
	ids := make([]string, 0, len(vals))
	for i, v := range vals {
		id, err := idString(v)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Len returns the total number of candidate entries across all queries.
func (m Mapping) Len() int {
	var n int
	for _, ids := range m {
		n += len(ids)
	}
	return n
}
