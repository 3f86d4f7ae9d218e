package ports

import (
	"context"

	"agentmgr/domain/agent"
	"agentmgr/domain/dataset"
	"agentmgr/domain/report"
	"agentmgr/domain/stats"
)

// ReportRequest carries everything a generator needs to produce a report.
// Statistics is optional; generators recompute when it is nil.
type ReportRequest struct {
	Agent      *agent.Agent
	Source     *dataset.DataSource
	Statistics *stats.Statistics
}

// ReportGenerator produces a report for an agent run. Implementations include
// the deterministic mock synthesizer and the AI-backed generator.
type ReportGenerator interface {
	Generate(ctx context.Context, req ReportRequest) (*report.Report, error)
}
