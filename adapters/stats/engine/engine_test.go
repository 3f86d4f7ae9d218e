package engine

import (
	"testing"

	"agentmgr/domain/dataset"
	model "agentmgr/domain/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSource builds a test data source from a column list and cell grid
func newSource(columns []string, grid [][]interface{}) *dataset.DataSource {
	rows := make([]dataset.Row, 0, len(grid))
	for _, cells := range grid {
		row := dataset.Row{}
		for i, col := range columns {
			if i < len(cells) {
				row[col] = cells[i]
			}
		}
		rows = append(rows, row)
	}
	return dataset.New("test", dataset.KindDemo, columns, rows)
}

func TestCompute_EmptyDataset(t *testing.T) {
	eng := NewDefaultEngine()

	result := eng.Compute(nil, nil)
	assert.Equal(t, 0, result.RowCount)
	assert.Empty(t, result.NumericStats)
	assert.Empty(t, result.CategoricalStats)

	empty := dataset.New("empty", dataset.KindDemo, []string{"a"}, nil)
	result = eng.Compute(empty, nil)
	assert.Equal(t, 0, result.RowCount)
	assert.Empty(t, result.NumericColumns)
}

func TestCompute_NumericClassification(t *testing.T) {
	// 3 of 4 non-empty values parse: 75% > 50% threshold
	ds := newSource([]string{"x"}, [][]interface{}{
		{"1"}, {"2.5"}, {"n/a"}, {"4"}, {""},
	})

	result := NewDefaultEngine().Compute(ds, nil)
	require.Contains(t, result.NumericColumns, "x")

	summary, ok := result.NumericStats["x"]
	require.True(t, ok)
	assert.Equal(t, 3, summary.Count)
	assert.InDelta(t, 2.5, summary.Mean, 1e-9)
	assert.InDelta(t, 2.5, summary.Median, 1e-9)
	assert.InDelta(t, 1, summary.Min, 1e-9)
	assert.InDelta(t, 4, summary.Max, 1e-9)
}

func TestCompute_MostlyTextIsNotNumeric(t *testing.T) {
	ds := newSource([]string{"label"}, [][]interface{}{
		{"red"}, {"green"}, {"blue"}, {"7"},
	})

	result := NewDefaultEngine().Compute(ds, nil)
	assert.NotContains(t, result.NumericColumns, "label")
	assert.NotContains(t, result.NumericStats, "label")
}

func TestCompute_MedianEvenCount(t *testing.T) {
	ds := newSource([]string{"v"}, [][]interface{}{
		{"4"}, {"1"}, {"3"}, {"2"},
	})

	result := NewDefaultEngine().Compute(ds, nil)
	summary := result.NumericStats["v"]
	assert.InDelta(t, 2.5, summary.Median, 1e-9)
}

func TestCompute_PopulationStdDev(t *testing.T) {
	// Values 2,4,4,4,5,5,7,9: population variance 4, stddev 2
	ds := newSource([]string{"v"}, [][]interface{}{
		{"2"}, {"4"}, {"4"}, {"4"}, {"5"}, {"5"}, {"7"}, {"9"},
	})

	result := NewDefaultEngine().Compute(ds, nil)
	summary := result.NumericStats["v"]
	assert.InDelta(t, 2.0, summary.StdDev, 1e-9)
	assert.InDelta(t, 5.0, summary.Mean, 1e-9)
}

func TestCompute_CategoricalExample(t *testing.T) {
	ds := newSource([]string{"category"}, [][]interface{}{
		{"A"}, {"A"}, {"B"},
	})

	result := NewDefaultEngine().Compute(ds, []string{"category"})
	require.Contains(t, result.CategoricalColumns, "category")

	summary := result.CategoricalStats["category"]
	assert.Equal(t, 2, summary.UniqueCount)
	require.Len(t, summary.TopCategories, 2)
	assert.Equal(t, model.CategoryCount{Category: "A", Count: 2, Percentage: "66.7%"}, summary.TopCategories[0])
	assert.Equal(t, model.CategoryCount{Category: "B", Count: 1, Percentage: "33.3%"}, summary.TopCategories[1])
}

func TestCompute_TopCategoriesBounded(t *testing.T) {
	grid := make([][]interface{}, 0, 60)
	for i := 0; i < 26; i++ {
		letter := string(rune('a' + i))
		// Earlier letters appear more often so ordering is deterministic
		for j := 0; j <= 26-i; j++ {
			grid = append(grid, []interface{}{letter})
		}
	}
	ds := newSource([]string{"tag"}, grid)

	cfg := model.DefaultClassifierConfig()
	result := NewEngine(cfg).Compute(ds, nil)

	summary, ok := result.CategoricalStats["tag"]
	require.True(t, ok)
	assert.Equal(t, 26, summary.UniqueCount)
	assert.Len(t, summary.TopCategories, cfg.TopCategoryLimit)
	assert.Equal(t, "a", summary.TopCategories[0].Category)

	// Counts must descend
	for i := 1; i < len(summary.TopCategories); i++ {
		assert.GreaterOrEqual(t, summary.TopCategories[i-1].Count, summary.TopCategories[i].Count)
	}
}

func TestCompute_ClassificationsOverlap(t *testing.T) {
	// Few distinct numeric values: numeric (all parse) and categorical
	// (2 distinct < 15) at the same time
	ds := newSource([]string{"flag"}, [][]interface{}{
		{"0"}, {"1"}, {"0"}, {"1"}, {"0"},
	})

	result := NewDefaultEngine().Compute(ds, nil)
	assert.Contains(t, result.NumericColumns, "flag")
	assert.Contains(t, result.CategoricalColumns, "flag")
}

func TestCompute_CountNeverExceedsNonEmpty(t *testing.T) {
	ds := newSource([]string{"v"}, [][]interface{}{
		{"1"}, {""}, {nil}, {"2"}, {"x"}, {"3"},
	})

	result := NewDefaultEngine().Compute(ds, nil)
	summary, ok := result.NumericStats["v"]
	require.True(t, ok)
	// 4 non-empty values, 3 parseable
	assert.LessOrEqual(t, summary.Count, 4)
	assert.Equal(t, 3, summary.Count)
}

func TestCompute_RestrictedColumns(t *testing.T) {
	ds := newSource([]string{"a", "b"}, [][]interface{}{
		{"1", "x"}, {"2", "y"},
	})

	result := NewDefaultEngine().Compute(ds, []string{"a"})
	assert.Equal(t, 1, result.ColumnCount)
	assert.Contains(t, result.NumericStats, "a")
	assert.NotContains(t, result.CategoricalStats, "b")
}

func TestStrongestCorrelation(t *testing.T) {
	ds := newSource([]string{"x", "y", "z"}, [][]interface{}{
		{"1", "2", "5"},
		{"2", "4", "1"},
		{"3", "6", "9"},
		{"4", "8", "2"},
	})

	pair, ok := NewDefaultEngine().StrongestCorrelation(ds, []string{"x", "y", "z"})
	require.True(t, ok)
	assert.Equal(t, "x", pair.ColumnX)
	assert.Equal(t, "y", pair.ColumnY)
	assert.InDelta(t, 1.0, pair.R, 1e-9)
}

func TestStrongestCorrelation_TooFewRows(t *testing.T) {
	ds := newSource([]string{"x", "y"}, [][]interface{}{
		{"1", "2"}, {"2", "4"},
	})

	_, ok := NewDefaultEngine().StrongestCorrelation(ds, []string{"x", "y"})
	assert.False(t, ok)
}
