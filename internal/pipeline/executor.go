// Package pipeline drives agent executions: load, validate, analyze,
// generate, persist. The staged progress callbacks mirror the execution
// pipeline of the source system, minus its artificial timers.
package pipeline

import (
	"context"
	"fmt"

	"agentmgr/adapters/stats/engine"
	"agentmgr/domain/agent"
	"agentmgr/domain/core"
	"agentmgr/domain/report"
	model "agentmgr/domain/stats"
	"agentmgr/internal"
	"agentmgr/ports"

	"golang.org/x/sync/errgroup"
)

// Stage names one step of an execution
type Stage string

const (
	StageValidate Stage = "validate"
	StageAnalyze  Stage = "analyze"
	StageGenerate Stage = "generate"
	StagePersist  Stage = "persist"
)

// Progress reports pipeline advancement to the caller
type Progress struct {
	Stage   Stage  `json:"stage"`
	Percent int    `json:"percent"`
	Message string `json:"message"`
}

// ProgressFunc receives stage transitions; may be nil
type ProgressFunc func(Progress)

// batchConcurrency bounds parallel agent executions in a batch
const batchConcurrency = 4

// Executor coordinates one agent run end to end
type Executor struct {
	engine    *engine.Engine
	generator ports.ReportGenerator
	agents    ports.AgentRepository
	sources   ports.SourceRepository
	reports   ports.ReportRepository
	log       *internal.Logger
}

// NewExecutor wires the pipeline dependencies
func NewExecutor(
	eng *engine.Engine,
	generator ports.ReportGenerator,
	agents ports.AgentRepository,
	sources ports.SourceRepository,
	reports ports.ReportRepository,
	logger *internal.Logger,
) *Executor {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Executor{
		engine:    eng,
		generator: generator,
		agents:    agents,
		sources:   sources,
		reports:   reports,
		log:       logger,
	}
}

// Execute runs one agent against one data source and persists the resulting
// report. The agent's status reflects the run: running during, idle after
// success, error with message after failure.
func (x *Executor) Execute(ctx context.Context, agentID core.AgentID, sourceID core.SourceID, onProgress ProgressFunc) (*report.Report, error) {
	notify := func(stage Stage, percent int, message string) {
		if onProgress != nil {
			onProgress(Progress{Stage: stage, Percent: percent, Message: message})
		}
	}

	ag, err := x.agents.GetByID(ctx, agentID)
	if err != nil {
		return nil, err
	}
	ds, err := x.sources.GetByID(ctx, sourceID)
	if err != nil {
		return nil, err
	}

	notify(StageValidate, 10, fmt.Sprintf("validating data source %s", ds.Name))
	if ds.IsEmpty() {
		return nil, x.fail(ctx, agentID, core.ErrInvalidDataSource)
	}

	if err := x.agents.UpdateStatus(ctx, agentID, agent.StatusRunning, ""); err != nil {
		return nil, err
	}

	notify(StageAnalyze, 40, "computing statistics")
	var statistics *model.Statistics
	if ag.HasCapability(agent.CapStatisticalAnalysis) {
		st := x.engine.Compute(ds, nil)
		statistics = &st
	}

	if err := ctx.Err(); err != nil {
		return nil, x.fail(ctx, agentID, err)
	}

	notify(StageGenerate, 70, "generating report")
	rep, err := x.generator.Generate(ctx, ports.ReportRequest{
		Agent:      ag,
		Source:     ds,
		Statistics: statistics,
	})
	if err != nil {
		return nil, x.fail(ctx, agentID, err)
	}

	notify(StagePersist, 90, "storing report")
	if err := x.reports.Create(ctx, rep); err != nil {
		return nil, x.fail(ctx, agentID, err)
	}

	if err := x.agents.UpdateStatus(ctx, agentID, agent.StatusIdle, ""); err != nil {
		return nil, err
	}

	notify(StagePersist, 100, "done")
	x.log.Info("agent %s produced report %s for source %s", agentID, rep.ID, sourceID)
	return rep, nil
}

// ExecuteBatch runs several agents against one data source concurrently.
// It returns the reports of the agents that succeeded along with the first
// error, if any.
func (x *Executor) ExecuteBatch(ctx context.Context, agentIDs []core.AgentID, sourceID core.SourceID) ([]*report.Report, error) {
	results := make([]*report.Report, len(agentIDs))

	// Agents run independently; one failure must not cancel its siblings
	var g errgroup.Group
	g.SetLimit(batchConcurrency)
	for i, agentID := range agentIDs {
		i, agentID := i, agentID
		g.Go(func() error {
			rep, err := x.Execute(ctx, agentID, sourceID, nil)
			if err != nil {
				return fmt.Errorf("agent %s: %w", agentID, err)
			}
			results[i] = rep
			return nil
		})
	}
	err := g.Wait()

	reports := make([]*report.Report, 0, len(results))
	for _, rep := range results {
		if rep != nil {
			reports = append(reports, rep)
		}
	}
	return reports, err
}

// fail records the error on the agent and passes it through
func (x *Executor) fail(ctx context.Context, agentID core.AgentID, cause error) error {
	if err := x.agents.UpdateStatus(ctx, agentID, agent.StatusError, cause.Error()); err != nil {
		x.log.Warn("failed to record error status for agent %s: %v", agentID, err)
	}
	return cause
}
