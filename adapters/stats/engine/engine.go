package engine

import (
	"fmt"
	"sort"

	"agentmgr/domain/dataset"
	model "agentmgr/domain/stats"

	"github.com/montanaflynn/stats"
)

// Engine computes per-column descriptive statistics and classifies columns as
// numeric or categorical. It is stateless apart from its configuration and
// safe for concurrent use.
type Engine struct {
	cfg model.ClassifierConfig
}

// NewEngine creates a stats engine with the given classifier thresholds
func NewEngine(cfg model.ClassifierConfig) *Engine {
	return &Engine{cfg: cfg}
}

// NewDefaultEngine creates a stats engine with the default thresholds
func NewDefaultEngine() *Engine {
	return NewEngine(model.DefaultClassifierConfig())
}

// Compute produces descriptive statistics for the given columns. A nil or
// empty dataset yields an empty Statistics value, never an error. When columns
// is nil, all dataset columns are considered.
func (e *Engine) Compute(ds *dataset.DataSource, columns []string) model.Statistics {
	result := model.Empty()
	if ds.IsEmpty() {
		return result
	}
	if columns == nil {
		columns = ds.Columns
	}

	result.RowCount = ds.RowCount()
	result.ColumnCount = len(columns)

	for _, column := range columns {
		values := nonMissingValues(ds, column)

		// The two classifications are computed independently; a column may
		// satisfy both.
		if e.isNumeric(values) {
			result.NumericColumns = append(result.NumericColumns, column)
			if summary, ok := e.numericSummary(values); ok {
				result.NumericStats[column] = summary
			}
		}
		if e.isCategorical(values) {
			result.CategoricalColumns = append(result.CategoricalColumns, column)
			result.CategoricalStats[column] = e.categoricalSummary(values, ds.RowCount())
		}
	}

	return result
}

// nonMissingValues filters out null and empty-string cells for one column
func nonMissingValues(ds *dataset.DataSource, column string) []interface{} {
	values := make([]interface{}, 0, ds.RowCount())
	for _, row := range ds.Rows {
		if v, exists := row[column]; exists && !dataset.IsMissing(v) {
			values = append(values, v)
		}
	}
	return values
}

// parseFloats converts values to floats, discarding unparseable entries
func parseFloats(values []interface{}) []float64 {
	parsed := make([]float64, 0, len(values))
	for _, v := range values {
		if f, ok := dataset.ToFloat(v); ok {
			parsed = append(parsed, f)
		}
	}
	return parsed
}

// isNumeric reports whether more than NumericRatio of the non-empty values
// parse as floats
func (e *Engine) isNumeric(values []interface{}) bool {
	if len(values) == 0 {
		return false
	}
	numericCount := 0
	for _, v := range values {
		if _, ok := dataset.ToFloat(v); ok {
			numericCount++
		}
	}
	return float64(numericCount)/float64(len(values)) > e.cfg.NumericRatio
}

// isCategorical applies the unique-ratio OR absolute-threshold rule
func (e *Engine) isCategorical(values []interface{}) bool {
	unique := make(map[string]struct{}, len(values))
	for _, v := range values {
		unique[dataset.ToString(v)] = struct{}{}
	}
	if float64(len(unique)) < float64(len(values))*e.cfg.CategoricalUniqueRatio {
		return true
	}
	return len(unique) < e.cfg.CategoricalUniqueMax
}

// numericSummary computes mean, median, min, max and population standard
// deviation. Columns with zero parseable values report ok=false and are
// silently excluded from the result.
func (e *Engine) numericSummary(values []interface{}) (model.NumericSummary, bool) {
	parsed := parseFloats(values)
	if len(parsed) == 0 {
		return model.NumericSummary{}, false
	}

	mean, _ := stats.Mean(parsed)
	median, _ := stats.Median(parsed)
	min, _ := stats.Min(parsed)
	max, _ := stats.Max(parsed)
	stdDev, _ := stats.StandardDeviationPopulation(parsed)

	return model.NumericSummary{
		Mean:   mean,
		Median: median,
		Min:    min,
		Max:    max,
		StdDev: stdDev,
		Count:  len(parsed),
	}, true
}

// categoricalSummary builds a frequency table over the raw (unparsed) values,
// sorted by descending count and bounded to the configured limit. Percentages
// are relative to the dataset row count.
func (e *Engine) categoricalSummary(values []interface{}, rowCount int) model.CategoricalSummary {
	freq := make(map[string]int, len(values))
	for _, v := range values {
		freq[dataset.ToString(v)]++
	}

	categories := make([]model.CategoryCount, 0, len(freq))
	for category, count := range freq {
		pct := 0.0
		if rowCount > 0 {
			pct = float64(count) / float64(rowCount) * 100
		}
		categories = append(categories, model.CategoryCount{
			Category:   category,
			Count:      count,
			Percentage: fmt.Sprintf("%.1f%%", pct),
		})
	}

	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Count != categories[j].Count {
			return categories[i].Count > categories[j].Count
		}
		return categories[i].Category < categories[j].Category
	})

	limit := e.cfg.TopCategoryLimit
	if limit > 0 && len(categories) > limit {
		categories = categories[:limit]
	}

	return model.CategoricalSummary{
		UniqueCount:   len(freq),
		TopCategories: categories,
	}
}

// sortedColumn returns the parsed numeric values of a column in ascending
// order. Used by the quartile-based routines.
func sortedColumn(ds *dataset.DataSource, column string) []float64 {
	parsed := parseFloats(ds.ColumnValues(column))
	sort.Float64s(parsed)
	return parsed
}

// quartiles returns Q1 and Q3 using the lower-index convention
// (floor(n*0.25), floor(n*0.75)) without interpolation.
func quartiles(sorted []float64) (q1, q3 float64) {
	n := len(sorted)
	q1 = sorted[n/4]
	q3 = sorted[n*3/4]
	return q1, q3
}
