package synthesis

import (
	"context"
	"strings"
	"testing"

	"agentmgr/adapters/stats/engine"
	"agentmgr/domain/agent"
	"agentmgr/domain/core"
	"agentmgr/domain/dataset"
	"agentmgr/domain/report"
	"agentmgr/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSynthesizer() *Synthesizer {
	return New(engine.NewDefaultEngine(), DefaultConfig())
}

func salesSource() *dataset.DataSource {
	columns := []string{"amount", "region", "units"}
	rows := []dataset.Row{
		{"amount": "120.5", "region": "North", "units": "12"},
		{"amount": "80.0", "region": "South", "units": "8"},
		{"amount": "95.25", "region": "North", "units": "9"},
		{"amount": "130.0", "region": "East", "units": "13"},
		{"amount": "60.75", "region": "South", "units": "6"},
	}
	return dataset.New("sales", dataset.KindDemo, columns, rows)
}

func TestSynthesize_InvalidDataSource(t *testing.T) {
	s := newSynthesizer()
	ag := agent.New("a", agent.TypeAnalyzer, nil)

	_, err := s.Synthesize(ag, nil, nil)
	require.ErrorIs(t, err, core.ErrInvalidDataSource)

	empty := dataset.New("empty", dataset.KindDemo, []string{"x"}, nil)
	_, err = s.Synthesize(ag, empty, nil)
	require.ErrorIs(t, err, core.ErrInvalidDataSource)

	noColumns := dataset.New("nocols", dataset.KindDemo, nil, []dataset.Row{{"x": "1"}})
	_, err = s.Synthesize(ag, noColumns, nil)
	require.ErrorIs(t, err, core.ErrInvalidDataSource)
}

func TestSynthesize_StatisticalAnalysisCapability(t *testing.T) {
	s := newSynthesizer()
	ag := agent.New("analyst", agent.TypeAnalyzer, []agent.Capability{agent.CapStatisticalAnalysis})

	rep, err := s.Synthesize(ag, salesSource(), nil)
	require.NoError(t, err)

	require.NotNil(t, rep.Statistics)
	assert.Contains(t, rep.Statistics.NumericColumns, "amount")
	assert.Contains(t, rep.Statistics.NumericColumns, "units")
	require.GreaterOrEqual(t, len(rep.Insights), 2)
	assert.Contains(t, rep.Insights[0], "numeric")
	assert.Contains(t, rep.Insights[1], "Mean values")
}

func TestSynthesize_NoCapabilitiesStillProducesReport(t *testing.T) {
	s := newSynthesizer()
	ag := agent.New("plain", agent.TypeCustom, nil)

	rep, err := s.Synthesize(ag, salesSource(), nil)
	require.NoError(t, err)

	assert.Nil(t, rep.Statistics)
	assert.Empty(t, rep.Insights)
	assert.Empty(t, rep.Visualizations)
	assert.Contains(t, rep.Summary, "sales")
}

func TestSynthesize_VisualizerCharts(t *testing.T) {
	s := newSynthesizer()
	ag := agent.New("viz", agent.TypeVisualizer, nil)

	rep, err := s.Synthesize(ag, salesSource(), nil)
	require.NoError(t, err)

	require.Len(t, rep.Visualizations, 2)

	bar := rep.Visualizations[0]
	assert.Equal(t, report.VizBar, bar.Type)
	assert.Equal(t, "region", bar.Config["x_axis"])
	assert.Equal(t, "amount", bar.Config["series"])
	require.Len(t, bar.Data, 5)
	assert.Equal(t, report.DataPoint{Label: "North", Value: 120.5}, bar.Data[0])

	pie := rep.Visualizations[1]
	assert.Equal(t, report.VizPie, pie.Type)
	require.Len(t, pie.Data, 3)
	// Top category by frequency first
	assert.Equal(t, "North", pie.Data[0].Label)
	assert.Equal(t, 2.0, pie.Data[0].Value)
}

func TestSynthesize_ChartGenerationCapabilityOnCustomType(t *testing.T) {
	s := newSynthesizer()
	ag := agent.New("custom", agent.TypeCustom, []agent.Capability{agent.CapChartGeneration})

	rep, err := s.Synthesize(ag, salesSource(), nil)
	require.NoError(t, err)
	assert.Len(t, rep.Visualizations, 2)
}

func TestSynthesize_ChartsSkippedWithoutCategoricalColumn(t *testing.T) {
	s := newSynthesizer()
	ag := agent.New("viz", agent.TypeVisualizer, nil)

	numericOnly := dataset.New("nums", dataset.KindDemo, []string{"a", "b"}, []dataset.Row{
		{"a": "1", "b": "2"},
		{"a": "3", "b": "4"},
	})

	rep, err := s.Synthesize(ag, numericOnly, nil)
	require.NoError(t, err)
	assert.Empty(t, rep.Visualizations)
}

func TestSynthesize_BarChartRowLimit(t *testing.T) {
	columns := []string{"value", "group"}
	rows := make([]dataset.Row, 0, 25)
	for i := 0; i < 25; i++ {
		rows = append(rows, dataset.Row{"value": "1", "group": "g"})
	}
	ds := dataset.New("big", dataset.KindDemo, columns, rows)

	s := newSynthesizer()
	ag := agent.New("viz", agent.TypeVisualizer, nil)

	rep, err := s.Synthesize(ag, ds, nil)
	require.NoError(t, err)
	require.Len(t, rep.Visualizations, 2)
	assert.Len(t, rep.Visualizations[0].Data, DefaultConfig().ChartRowLimit)
}

func TestSynthesize_SummarizerSections(t *testing.T) {
	s := newSynthesizer()
	ag := agent.New("writer", agent.TypeSummarizer, nil)

	rep, err := s.Synthesize(ag, salesSource(), nil)
	require.NoError(t, err)

	for _, header := range []string{
		headerOverview, headerKeyObservations, headerStatInsights,
		headerPatterns, headerRecommendations, headerMethodology,
	} {
		assert.Contains(t, rep.Summary, header)
	}
	assert.Contains(t, rep.Summary, "sales")
	assert.Contains(t, rep.Summary, "amount")
}

func TestSynthesize_CapabilitiesAreCumulative(t *testing.T) {
	s := newSynthesizer()
	ag := agent.New("full", agent.TypeAnalyzer, []agent.Capability{
		agent.CapStatisticalAnalysis,
		agent.CapChartGeneration,
		agent.CapTextSummarization,
	})

	rep, err := s.Synthesize(ag, salesSource(), nil)
	require.NoError(t, err)

	assert.NotNil(t, rep.Statistics)
	assert.NotEmpty(t, rep.Insights)
	assert.Len(t, rep.Visualizations, 2)
	assert.True(t, strings.HasPrefix(rep.Summary, "# Analysis Report"))
}

func TestSynthesize_UsesPrecomputedStatistics(t *testing.T) {
	s := newSynthesizer()
	ag := agent.New("analyst", agent.TypeAnalyzer, []agent.Capability{agent.CapStatisticalAnalysis})

	ds := salesSource()
	st := engine.NewDefaultEngine().Compute(ds, nil)

	rep, err := s.Synthesize(ag, ds, &st)
	require.NoError(t, err)
	assert.Same(t, &st, rep.Statistics)
}

func TestGenerate_ImplementsReportGenerator(t *testing.T) {
	var gen ports.ReportGenerator = newSynthesizer()

	ag := agent.New("analyst", agent.TypeAnalyzer, []agent.Capability{agent.CapStatisticalAnalysis})
	rep, err := gen.Generate(context.Background(), ports.ReportRequest{Agent: ag, Source: salesSource()})
	require.NoError(t, err)
	assert.Equal(t, ag.ID, rep.AgentID)
}
