package agent

import (
	"agentmgr/domain/core"
)

// AgentType declares the broad analysis role of an agent
type AgentType string

const (
	TypeAnalyzer   AgentType = "analyzer"
	TypeVisualizer AgentType = "visualizer"
	TypeSummarizer AgentType = "summarizer"
	TypeCustom     AgentType = "custom"
)

// Capability is a tag enabling one analysis behavior during report synthesis.
// Capabilities are independent; any combination may be active on one agent.
type Capability string

const (
	CapStatisticalAnalysis Capability = "statistical-analysis"
	CapChartGeneration     Capability = "chart-generation"
	CapTextSummarization   Capability = "text-summarization"
	CapTrendDetection      Capability = "trend-detection"
)

// Status represents the execution state of an agent
type Status string

const (
	StatusIdle    Status = "idle"
	StatusRunning Status = "running"
	StatusError   Status = "error"
)

// Agent is a configuration record describing which analysis capabilities to
// apply. It is not a live process; execution is driven by the pipeline.
type Agent struct {
	ID           core.AgentID   `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description,omitempty"`
	Type         AgentType      `json:"type"`
	Capabilities []Capability   `json:"capabilities"`
	Status       Status         `json:"status"`
	LastError    string         `json:"last_error,omitempty"`
	CreatedAt    core.Timestamp `json:"created_at"`
	UpdatedAt    core.Timestamp `json:"updated_at"`
}

// New creates an agent with a fresh ID, idle status and timestamps
func New(name string, agentType AgentType, capabilities []Capability) *Agent {
	now := core.Now()
	return &Agent{
		ID:           core.AgentID(core.NewID()),
		Name:         name,
		Type:         agentType,
		Capabilities: capabilities,
		Status:       StatusIdle,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// HasCapability reports whether the agent declares a capability tag
func (a *Agent) HasCapability(c Capability) bool {
	for _, have := range a.Capabilities {
		if have == c {
			return true
		}
	}
	return false
}

// Validate checks the agent configuration for storable consistency
func (a *Agent) Validate() error {
	if a.Name == "" {
		return core.NewValidationError("name", "cannot be empty")
	}
	switch a.Type {
	case TypeAnalyzer, TypeVisualizer, TypeSummarizer, TypeCustom:
	default:
		return core.NewValidationError("type", "unknown agent type "+string(a.Type))
	}
	return nil
}

// IsRunning reports whether the agent is currently executing
func (a *Agent) IsRunning() bool {
	return a.Status == StatusRunning
}
