package engine

import (
	"agentmgr/domain/dataset"
)

// iqrMultiplier is the standard Tukey fence factor
const iqrMultiplier = 1.5

// DetectOutliers flags row indices whose value in the given column falls
// strictly outside [Q1 - 1.5*IQR, Q3 + 1.5*IQR]. Indices are 0-based in
// original row order. Rows whose value does not parse are skipped, never
// flagged. Malformed or missing input yields an empty result, never an error.
func (e *Engine) DetectOutliers(ds *dataset.DataSource, column string) []int {
	outliers := []int{}
	if ds.IsEmpty() {
		return outliers
	}

	sorted := sortedColumn(ds, column)
	if len(sorted) == 0 {
		return outliers
	}

	q1, q3 := quartiles(sorted)
	iqr := q3 - q1
	lower := q1 - iqrMultiplier*iqr
	upper := q3 + iqrMultiplier*iqr

	// Re-scan the original, unsorted rows so indices line up with the input
	for i, row := range ds.Rows {
		value, ok := dataset.ToFloat(row[column])
		if !ok {
			continue
		}
		if value < lower || value > upper {
			outliers = append(outliers, i)
		}
	}

	return outliers
}

// OutlierBounds exposes the IQR fence for a column, mainly for display.
// The boolean is false when the column has no parseable numeric values.
func (e *Engine) OutlierBounds(ds *dataset.DataSource, column string) (lower, upper float64, ok bool) {
	if ds.IsEmpty() {
		return 0, 0, false
	}
	sorted := sortedColumn(ds, column)
	if len(sorted) == 0 {
		return 0, 0, false
	}
	q1, q3 := quartiles(sorted)
	iqr := q3 - q1
	return q1 - iqrMultiplier*iqr, q3 + iqrMultiplier*iqr, true
}
