package report

import (
	"agentmgr/domain/core"
	"agentmgr/domain/stats"
)

// VizType identifies a chart specification kind
type VizType string

const (
	VizBar  VizType = "bar"
	VizPie  VizType = "pie"
	VizLine VizType = "line"
)

// DataPoint is one labeled value in a chart series
type DataPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Visualization is a renderer-agnostic chart specification
type Visualization struct {
	Type   VizType                `json:"type"`
	Title  string                 `json:"title"`
	Data   []DataPoint            `json:"data"`
	Config map[string]interface{} `json:"config,omitempty"`
}

// Report is the synthesized output record for one agent execution. It is
// created fresh per synthesis call and never mutated afterwards; ownership
// passes to the caller for storage.
type Report struct {
	ID             core.ReportID     `json:"id"`
	AgentID        core.AgentID      `json:"agent_id"`
	SourceID       core.SourceID     `json:"data_source_id"`
	GeneratedAt    core.Timestamp    `json:"generated_at"`
	Summary        string            `json:"summary"`
	Insights       []string          `json:"insights"`
	Visualizations []Visualization   `json:"visualizations"`
	Statistics     *stats.Statistics `json:"statistics,omitempty"`
}

// New creates an empty report bound to an agent and data source
func New(agentID core.AgentID, sourceID core.SourceID) *Report {
	return &Report{
		ID:             core.ReportID(core.NewID()),
		AgentID:        agentID,
		SourceID:       sourceID,
		GeneratedAt:    core.Now(),
		Insights:       []string{},
		Visualizations: []Visualization{},
	}
}

// AddInsight appends an insight string
func (r *Report) AddInsight(text string) {
	r.Insights = append(r.Insights, text)
}

// AddVisualization appends a chart specification
func (r *Report) AddVisualization(v Visualization) {
	r.Visualizations = append(r.Visualizations, v)
}
