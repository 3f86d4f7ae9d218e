package stats

// NumericSummary holds descriptive statistics for one numeric column.
// StdDev is the population standard deviation (divisor n).
type NumericSummary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"std_dev"`
	Count  int     `json:"count"`
}

// CategoryCount is one entry in a categorical frequency table. Percentage is
// preformatted to one decimal place with a trailing percent sign.
type CategoryCount struct {
	Category   string `json:"category"`
	Count      int    `json:"count"`
	Percentage string `json:"percentage"`
}

// CategoricalSummary holds the frequency profile for one categorical column
type CategoricalSummary struct {
	UniqueCount   int             `json:"unique_count"`
	TopCategories []CategoryCount `json:"top_categories"`
}

// Statistics is the full output of the stats engine for one dataset
type Statistics struct {
	RowCount           int                           `json:"row_count"`
	ColumnCount        int                           `json:"column_count"`
	NumericColumns     []string                      `json:"numeric_columns"`
	CategoricalColumns []string                      `json:"categorical_columns"`
	NumericStats       map[string]NumericSummary     `json:"numeric_stats"`
	CategoricalStats   map[string]CategoricalSummary `json:"categorical_stats"`
}

// Empty returns a zero Statistics with initialized maps. An empty dataset
// yields this rather than an error.
func Empty() Statistics {
	return Statistics{
		NumericColumns:     []string{},
		CategoricalColumns: []string{},
		NumericStats:       make(map[string]NumericSummary),
		CategoricalStats:   make(map[string]CategoricalSummary),
	}
}

// ClassifierConfig holds the column-classification heuristics. The thresholds
// are product heuristics carried over from the source system; they are
// configurable rather than hard-coded.
type ClassifierConfig struct {
	// NumericRatio: a column is numeric when more than this fraction of its
	// non-empty values parse as floats.
	NumericRatio float64
	// CategoricalUniqueRatio: categorical when distinct/non-empty is below
	// this fraction.
	CategoricalUniqueRatio float64
	// CategoricalUniqueMax: categorical when the distinct count is below this
	// absolute threshold, regardless of ratio.
	CategoricalUniqueMax int
	// TopCategoryLimit bounds the frequency table per categorical column.
	TopCategoryLimit int
}

// DefaultClassifierConfig returns the thresholds used by the source system
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		NumericRatio:           0.5,
		CategoricalUniqueRatio: 0.2,
		CategoricalUniqueMax:   15,
		TopCategoryLimit:       10,
	}
}
