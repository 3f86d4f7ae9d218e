// Package synthesis assembles report records from agent capability flags and
// computed statistics. The synthesizer is deterministic and template-driven;
// it stands in for the AI backend when none is configured.
package synthesis

import (
	"context"
	"fmt"

	"agentmgr/adapters/stats/engine"
	"agentmgr/domain/agent"
	"agentmgr/domain/core"
	"agentmgr/domain/dataset"
	"agentmgr/domain/report"
	model "agentmgr/domain/stats"
	"agentmgr/ports"
)

// Config holds the synthesis heuristics carried over from the source system
type Config struct {
	// ChartRowLimit bounds bar chart series to the first N records.
	ChartRowLimit int
	// PieCategoryLimit bounds pie charts to the top N categories.
	PieCategoryLimit int
	// CorrelationMin is the minimum |r| worth an insight line.
	CorrelationMin float64
}

// DefaultConfig returns the limits used by the source system
func DefaultConfig() Config {
	return Config{
		ChartRowLimit:    10,
		PieCategoryLimit: 5,
		CorrelationMin:   0.3,
	}
}

// Synthesizer builds reports from agent descriptors and datasets. It is a
// pure function of its inputs; persistence is the caller's responsibility.
type Synthesizer struct {
	engine *engine.Engine
	cfg    Config
}

// New creates a synthesizer backed by the given stats engine
func New(eng *engine.Engine, cfg Config) *Synthesizer {
	return &Synthesizer{engine: eng, cfg: cfg}
}

// Generate implements ports.ReportGenerator
func (s *Synthesizer) Generate(_ context.Context, req ports.ReportRequest) (*report.Report, error) {
	return s.Synthesize(req.Agent, req.Source, req.Statistics)
}

// Synthesize produces a report for one agent run. Capability behaviors are
// independent; multiple may fire in one call, each appending to the shared
// report. A dataset with zero rows or zero columns yields
// core.ErrInvalidDataSource.
func (s *Synthesizer) Synthesize(ag *agent.Agent, ds *dataset.DataSource, precomputed *model.Statistics) (*report.Report, error) {
	if ds.IsEmpty() {
		return nil, core.ErrInvalidDataSource
	}

	rep := report.New(ag.ID, ds.ID)
	rep.Summary = fmt.Sprintf("Analysis of %s: %d records across %d fields.",
		ds.Name, ds.RowCount(), ds.ColumnCount())

	var computed *model.Statistics
	statistics := func() *model.Statistics {
		if precomputed != nil {
			return precomputed
		}
		if computed == nil {
			st := s.engine.Compute(ds, nil)
			computed = &st
		}
		return computed
	}

	if ag.HasCapability(agent.CapStatisticalAnalysis) {
		s.appendStatistics(rep, ds, statistics())
	}

	if ag.Type == agent.TypeVisualizer || ag.HasCapability(agent.CapChartGeneration) {
		s.appendCharts(rep, ds)
	}

	if ag.Type == agent.TypeSummarizer || ag.HasCapability(agent.CapTextSummarization) {
		rep.Summary = s.buildSummary(ds, statistics())
	}

	return rep, nil
}

// appendStatistics attaches the statistics block and its insight lines
func (s *Synthesizer) appendStatistics(rep *report.Report, ds *dataset.DataSource, st *model.Statistics) {
	rep.Statistics = st

	rep.AddInsight(fmt.Sprintf("Dataset contains %d numeric and %d categorical columns across %d records",
		len(st.NumericColumns), len(st.CategoricalColumns), st.RowCount))

	if lo, hi, ok := meanRange(st); ok {
		rep.AddInsight(fmt.Sprintf("Mean values across numeric columns range from %.2f to %.2f", lo, hi))
	}

	if pair, ok := s.engine.StrongestCorrelation(ds, st.NumericColumns); ok && abs(pair.R) >= s.cfg.CorrelationMin {
		rep.AddInsight(fmt.Sprintf("Strongest relationship observed between %s and %s (r = %.2f)",
			pair.ColumnX, pair.ColumnY, pair.R))
	}
}

// appendCharts emits one bar and one pie specification when the dataset has
// both a numeric-looking and a categorical-looking column
func (s *Synthesizer) appendCharts(rep *report.Report, ds *dataset.DataSource) {
	numericCol, categoricalCol, ok := chartColumns(ds)
	if !ok {
		return
	}

	bar := report.Visualization{
		Type:  report.VizBar,
		Title: fmt.Sprintf("%s by %s", numericCol, categoricalCol),
		Data:  []report.DataPoint{},
		Config: map[string]interface{}{
			"x_axis": categoricalCol,
			"series": numericCol,
		},
	}
	limit := s.cfg.ChartRowLimit
	for i, row := range ds.Rows {
		if limit > 0 && i >= limit {
			break
		}
		value, parsed := dataset.ToFloat(row[numericCol])
		if !parsed {
			continue
		}
		bar.Data = append(bar.Data, report.DataPoint{
			Label: dataset.ToString(row[categoricalCol]),
			Value: value,
		})
	}
	rep.AddVisualization(bar)

	pie := report.Visualization{
		Type:  report.VizPie,
		Title: fmt.Sprintf("Distribution of %s", categoricalCol),
		Data:  []report.DataPoint{},
		Config: map[string]interface{}{
			"category": categoricalCol,
		},
	}
	for _, entry := range topCategories(ds, categoricalCol, s.cfg.PieCategoryLimit) {
		pie.Data = append(pie.Data, report.DataPoint{
			Label: entry.Category,
			Value: float64(entry.Count),
		})
	}
	rep.AddVisualization(pie)
}

// chartColumns locates the first column whose first data row parses as
// numeric and the first whose first row is a non-numeric string
func chartColumns(ds *dataset.DataSource) (numericCol, categoricalCol string, ok bool) {
	if ds.RowCount() == 0 {
		return "", "", false
	}
	first := ds.Rows[0]

	for _, col := range ds.Columns {
		if _, parsed := dataset.ToFloat(first[col]); parsed {
			numericCol = col
			break
		}
	}
	for _, col := range ds.Columns {
		v := first[col]
		if dataset.IsMissing(v) {
			continue
		}
		if _, parsed := dataset.ToFloat(v); !parsed {
			categoricalCol = col
			break
		}
	}

	return numericCol, categoricalCol, numericCol != "" && categoricalCol != ""
}

// topCategories counts category frequencies across the whole column and
// returns the top N by count
func topCategories(ds *dataset.DataSource, column string, limit int) []model.CategoryCount {
	freq := make(map[string]int)
	for _, row := range ds.Rows {
		v := row[column]
		if dataset.IsMissing(v) {
			continue
		}
		freq[dataset.ToString(v)]++
	}

	entries := make([]model.CategoryCount, 0, len(freq))
	for category, count := range freq {
		entries = append(entries, model.CategoryCount{Category: category, Count: count})
	}
	sortCategories(entries)

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// meanRange returns the lowest and highest column means
func meanRange(st *model.Statistics) (lo, hi float64, ok bool) {
	first := true
	for _, summary := range st.NumericStats {
		if first {
			lo, hi = summary.Mean, summary.Mean
			first = false
			continue
		}
		if summary.Mean < lo {
			lo = summary.Mean
		}
		if summary.Mean > hi {
			hi = summary.Mean
		}
	}
	return lo, hi, !first
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
