package storage

import (
	"context"
	"testing"

	"agentmgr/adapters/kv"
	"agentmgr/domain/agent"
	"agentmgr/domain/core"
	"agentmgr/domain/dataset"
	"agentmgr/domain/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgentRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewAgentRepository(kv.NewMemoryStore())

	a := agent.New("analyst", agent.TypeAnalyzer, []agent.Capability{agent.CapStatisticalAnalysis})
	require.NoError(t, repo.Create(ctx, a))

	loaded, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Name, loaded.Name)
	assert.Equal(t, agent.StatusIdle, loaded.Status)
	assert.True(t, loaded.HasCapability(agent.CapStatisticalAnalysis))

	loaded.Description = "updated"
	require.NoError(t, repo.Update(ctx, loaded))

	agents, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, agents, 1)
	assert.Equal(t, "updated", agents[0].Description)

	require.NoError(t, repo.Delete(ctx, a.ID))
	_, err = repo.GetByID(ctx, a.ID)
	assert.True(t, core.IsNotFoundError(err))
}

func TestAgentRepository_CreateRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	repo := NewAgentRepository(kv.NewMemoryStore())

	bad := agent.New("", agent.TypeAnalyzer, nil)
	assert.Error(t, repo.Create(ctx, bad))
}

func TestAgentRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewAgentRepository(kv.NewMemoryStore())

	a := agent.New("runner", agent.TypeCustom, nil)
	require.NoError(t, repo.Create(ctx, a))

	require.NoError(t, repo.UpdateStatus(ctx, a.ID, agent.StatusRunning, ""))
	loaded, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, loaded.IsRunning())

	require.NoError(t, repo.UpdateStatus(ctx, a.ID, agent.StatusError, "boom"))
	loaded, err = repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, agent.StatusError, loaded.Status)
	assert.Equal(t, "boom", loaded.LastError)
}

func TestSourceRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewSourceRepository(kv.NewMemoryStore())

	ds := dataset.New("sales", dataset.KindCSV, []string{"a", "b"}, []dataset.Row{
		{"a": "1", "b": "x"},
		{"a": "2", "b": "y"},
	})
	require.NoError(t, repo.Create(ctx, ds))

	loaded, err := repo.GetByID(ctx, ds.ID)
	require.NoError(t, err)
	assert.Equal(t, ds.Columns, loaded.Columns)
	assert.Equal(t, 2, loaded.RowCount())
	assert.Equal(t, "x", loaded.Rows[0]["b"])

	sources, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, sources, 1)

	require.NoError(t, repo.Delete(ctx, ds.ID))
	_, err = repo.GetByID(ctx, ds.ID)
	assert.True(t, core.IsNotFoundError(err))
}

func TestReportRepository_ListByAgent(t *testing.T) {
	ctx := context.Background()
	repo := NewReportRepository(kv.NewMemoryStore())

	agentA := core.AgentID(core.NewID())
	agentB := core.AgentID(core.NewID())
	source := core.SourceID(core.NewID())

	repA1 := report.New(agentA, source)
	repA2 := report.New(agentA, source)
	repB := report.New(agentB, source)
	for _, rep := range []*report.Report{repA1, repA2, repB} {
		require.NoError(t, repo.Create(ctx, rep))
	}

	mine, err := repo.ListByAgent(ctx, agentA)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, repo.Delete(ctx, repB.ID))
	_, err = repo.GetByID(ctx, repB.ID)
	assert.True(t, core.IsNotFoundError(err))
}

func TestReportRepository_PreservesVisualizations(t *testing.T) {
	ctx := context.Background()
	repo := NewReportRepository(kv.NewMemoryStore())

	rep := report.New(core.AgentID(core.NewID()), core.SourceID(core.NewID()))
	rep.AddInsight("something interesting")
	rep.AddVisualization(report.Visualization{
		Type:  report.VizBar,
		Title: "amount by region",
		Data:  []report.DataPoint{{Label: "North", Value: 12}},
	})
	require.NoError(t, repo.Create(ctx, rep))

	loaded, err := repo.GetByID(ctx, rep.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Visualizations, 1)
	assert.Equal(t, report.VizBar, loaded.Visualizations[0].Type)
	assert.Equal(t, []string{"something interesting"}, loaded.Insights)
}
