package engine

import (
	"math"

	"agentmgr/domain/dataset"

	"gonum.org/v1/gonum/stat"
)

// CorrelationPair names two numeric columns and their Pearson correlation
type CorrelationPair struct {
	ColumnX string  `json:"column_x"`
	ColumnY string  `json:"column_y"`
	R       float64 `json:"r"`
}

// StrongestCorrelation finds the numeric column pair with the largest absolute
// Pearson correlation, considering only rows where both columns parse. Pairs
// with fewer than three complete rows are skipped. The boolean is false when
// no eligible pair exists.
func (e *Engine) StrongestCorrelation(ds *dataset.DataSource, columns []string) (CorrelationPair, bool) {
	best := CorrelationPair{}
	found := false
	if ds.IsEmpty() || len(columns) < 2 {
		return best, false
	}

	for i := 0; i < len(columns); i++ {
		for j := i + 1; j < len(columns); j++ {
			xs, ys := pairedValues(ds, columns[i], columns[j])
			if len(xs) < 3 {
				continue
			}
			r := stat.Correlation(xs, ys, nil)
			if math.IsNaN(r) {
				continue
			}
			if !found || math.Abs(r) > math.Abs(best.R) {
				best = CorrelationPair{ColumnX: columns[i], ColumnY: columns[j], R: r}
				found = true
			}
		}
	}

	return best, found
}

// pairedValues collects rows where both columns hold parseable numbers
func pairedValues(ds *dataset.DataSource, colX, colY string) ([]float64, []float64) {
	xs := make([]float64, 0, ds.RowCount())
	ys := make([]float64, 0, ds.RowCount())
	for _, row := range ds.Rows {
		x, okX := dataset.ToFloat(row[colX])
		y, okY := dataset.ToFloat(row[colY])
		if okX && okY {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	return xs, ys
}
