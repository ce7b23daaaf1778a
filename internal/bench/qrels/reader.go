package qrels

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/rankeval/internal/apperr"
	"gopkg.in/yaml.v3"
)

type kind int

const (
	kindResults kind = iota
	kindGroundTruth
)

func (k kind) String() string {
	if k == kindGroundTruth {
		return "ground truth"
	}
	return "results"
}

// FormatFromPath picks the encoding from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".csv":
		return FormatCSV, nil
	case ".tsv":
		return FormatTSV, nil
	default:
		return "", fmt.Errorf("unsupported file extension %q", filepath.Ext(path))
	}
}

// LoadResults reads ranked candidates per query. In CSV/TSV files an optional third
// column holds the 1-based rank; without it rows keep file order.
func LoadResults(path string) (Mapping, error) {
	return load(path, kindResults)
}

// LoadGroundTruth reads relevant candidates per query. In CSV/TSV files an optional third
// column holds a relevance grade; rows graded 0 or below are not relevant.
func LoadGroundTruth(path string) (Mapping, error) {
	return load(path, kindGroundTruth)
}

func load(path string, k kind) (Mapping, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, apperr.NewDataLoad(path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.NewDataLoad(path, fmt.Errorf("read %s file: %w", k, err))
	}

	m, err := decode(data, format, k)
	if err != nil {
		return nil, apperr.NewDataLoad(path, err)
	}
	return m, nil
}

// DecodeResults parses results already held in memory.
func DecodeResults(data []byte, format Format) (Mapping, error) {
	return decode(data, format, kindResults)
}

// DecodeGroundTruth parses ground truth already held in memory.
func DecodeGroundTruth(data []byte, format Format) (Mapping, error) {
	return decode(data, format, kindGroundTruth)
}

func decode(data []byte, format Format, k kind) (Mapping, error) {
	var (
		m   Mapping
		err error
	)
	switch format {
	case FormatJSON:
		m, err = decodeJSON(data)
	case FormatYAML:
		m, err = decodeYAML(data)
	case FormatCSV:
		m, err = decodeDelimited(data, ',', k)
	case FormatTSV:
		m, err = decodeDelimited(data, '\t', k)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s %s: %w", k, format, err)
	}
	return m, nil
}

func decodeJSON(data []byte) (Mapping, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string][]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	m := make(Mapping, len(raw))
	for qID, vals := range raw {
		ids, err := idStrings(vals)
		if err != nil {
			return nil, fmt.Errorf("query %q: %w", qID, err)
		}
		m[qID] = ids
	}
	return m, nil
}

func decodeYAML(data []byte) (Mapping, error) {
	var raw map[any][]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	m := make(Mapping, len(raw))
	for key, vals := range raw {
		qID, err := idString(key)
		if err != nil {
			return nil, fmt.Errorf("query key: %w", err)
		}
		ids, err := idStrings(vals)
		if err != nil {
			return nil, fmt.Errorf("query %q: %w", qID, err)
		}
		m[qID] = ids
	}
	return m, nil
}

type row struct {
	id    string
	order int
}

func decodeDelimited(data []byte, comma rune, k kind) (Mapping, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	rows := make(map[string][]row)
	hasRank := false
	line := 0

	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line++

		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "query_id") {
			continue
		}
		if len(rec) < 2 || len(rec) > 3 {
			return nil, fmt.Errorf("line %d: expected 2 or 3 fields, got %d", line, len(rec))
		}

		qID := strings.TrimSpace(rec[0])
		id := strings.TrimSpace(rec[1])
		order := len(rows[qID]) + 1

		// An empty candidate marks a query that is present with no candidates.
		if id == "" {
			if _, ok := rows[qID]; !ok {
				rows[qID] = nil
			}
			continue
		}

		if len(rec) == 3 {
			v, err := strconv.Atoi(strings.TrimSpace(rec[2]))
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid %s column %q: %w", line, thirdColumn(k), rec[2], err)
			}
			if k == kindGroundTruth && v <= 0 {
				if _, ok := rows[qID]; !ok {
					rows[qID] = nil
				}
				continue
			}
			if k == kindResults {
				order = v
				hasRank = true
			}
		}

		rows[qID] = append(rows[qID], row{id: id, order: order})
	}

	m := make(Mapping, len(rows))
	for qID, rs := range rows {
		if hasRank {
			sort.SliceStable(rs, func(i, j int) bool { return rs[i].order < rs[j].order })
		}
		ids := make([]string, len(rs))
		for i, rr := range rs {
			ids[i] = rr.id
		}
		m[qID] = ids
	}
	return m, nil
}

func thirdColumn(k kind) string {
	if k == kindGroundTruth {
		return "relevance"
	}
	return "rank"
}
