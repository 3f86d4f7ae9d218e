package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"agentmgr/domain/core"
)

// SourceKind identifies where a data source came from
type SourceKind string

const (
	KindCSV   SourceKind = "csv"
	KindExcel SourceKind = "excel"
	KindDemo  SourceKind = "demo"
)

// Row is a single record keyed by column name. Values are scalars as decoded
// from CSV, Excel or JSON uploads (string, float64, bool, nil).
type Row map[string]interface{}

// DataSource represents a stored tabular dataset. Rows and Columns are treated
// as immutable by the analysis layer.
type DataSource struct {
	ID          core.SourceID  `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Kind        SourceKind     `json:"kind"`
	Columns     []string       `json:"columns"`
	Rows        []Row          `json:"rows"`
	CreatedAt   core.Timestamp `json:"created_at"`
	UpdatedAt   core.Timestamp `json:"updated_at"`
}

// New creates a data source with a fresh ID and timestamps
func New(name string, kind SourceKind, columns []string, rows []Row) *DataSource {
	now := core.Now()
	return &DataSource{
		ID:        core.SourceID(core.NewID()),
		Name:      name,
		Kind:      kind,
		Columns:   columns,
		Rows:      rows,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// RowCount returns the number of rows
func (ds *DataSource) RowCount() int {
	if ds == nil {
		return 0
	}
	return len(ds.Rows)
}

// ColumnCount returns the number of columns
func (ds *DataSource) ColumnCount() int {
	if ds == nil {
		return 0
	}
	return len(ds.Columns)
}

// IsEmpty reports whether the source has no rows or no columns
func (ds *DataSource) IsEmpty() bool {
	return ds == nil || len(ds.Rows) == 0 || len(ds.Columns) == 0
}

// ColumnValues returns the raw values of a column in row order,
// including missing entries as nil.
func (ds *DataSource) ColumnValues(column string) []interface{} {
	values := make([]interface{}, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		values = append(values, row[column])
	}
	return values
}

// IsMissing reports whether a cell value counts as absent: nil or a string
// that is empty after trimming.
func IsMissing(v interface{}) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// ToFloat attempts to interpret a cell value as a float64. Strings go through
// standard decimal parsing. Values that do not parse are absent, never zero.
func ToFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// ToString renders a cell value for categorical grouping. Numeric cells keep
// their original textual form where possible.
func ToString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprintf("%v", v)
	}
}
