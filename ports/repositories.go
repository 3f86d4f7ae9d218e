package ports

import (
	"context"

	"agentmgr/domain/agent"
	"agentmgr/domain/core"
	"agentmgr/domain/dataset"
	"agentmgr/domain/report"
)

// AgentRepository defines storage operations for agent records
type AgentRepository interface {
	Create(ctx context.Context, a *agent.Agent) error
	GetByID(ctx context.Context, id core.AgentID) (*agent.Agent, error)
	List(ctx context.Context) ([]*agent.Agent, error)
	Update(ctx context.Context, a *agent.Agent) error
	Delete(ctx context.Context, id core.AgentID) error
	UpdateStatus(ctx context.Context, id core.AgentID, status agent.Status, lastError string) error
}

// SourceRepository defines storage operations for data sources
type SourceRepository interface {
	Create(ctx context.Context, ds *dataset.DataSource) error
	GetByID(ctx context.Context, id core.SourceID) (*dataset.DataSource, error)
	List(ctx context.Context) ([]*dataset.DataSource, error)
	Delete(ctx context.Context, id core.SourceID) error
}

// ReportRepository defines storage operations for synthesized reports
type ReportRepository interface {
	Create(ctx context.Context, r *report.Report) error
	GetByID(ctx context.Context, id core.ReportID) (*report.Report, error)
	List(ctx context.Context) ([]*report.Report, error)
	ListByAgent(ctx context.Context, agentID core.AgentID) ([]*report.Report, error)
	Delete(ctx context.Context, id core.ReportID) error
}
