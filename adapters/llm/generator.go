package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"agentmgr/domain/dataset"
	"agentmgr/domain/report"
	"agentmgr/ports"
)

// systemPrompt steers the model towards the JSON shape DecodeReport expects
const systemPrompt = `You are a data analysis assistant. Analyze the provided dataset ` +
	`and respond with JSON: {"summary": string, "insights": [string], ` +
	`"visualizations": [{"type": "bar"|"pie", "title": string, ` +
	`"data": [{"label": string, "value": number}]}]}.`

// sampleRowLimit bounds how many records go into the prompt
const sampleRowLimit = 5

// Generator is the AI-backed ports.ReportGenerator. Any failure along the
// request or decoding path falls back to the deterministic generator so an
// execution always yields a report.
type Generator struct {
	client   *Client
	fallback ports.ReportGenerator
}

// NewGenerator creates an AI generator with a mandatory fallback
func NewGenerator(client *Client, fallback ports.ReportGenerator) *Generator {
	return &Generator{client: client, fallback: fallback}
}

// Generate implements ports.ReportGenerator
func (g *Generator) Generate(ctx context.Context, req ports.ReportRequest) (*report.Report, error) {
	if req.Source.IsEmpty() {
		// Let the fallback surface the canonical invalid-source error
		return g.fallback.Generate(ctx, req)
	}

	raw, err := g.client.Complete(ctx, systemPrompt, buildPrompt(req))
	if err != nil {
		return g.fallback.Generate(ctx, req)
	}

	decoded := DecodeReport(raw)
	if decoded.Summary == "" && len(decoded.Insights) == 0 && len(decoded.Visualizations) == 0 {
		return g.fallback.Generate(ctx, req)
	}

	rep := report.New(req.Agent.ID, req.Source.ID)
	rep.Summary = decoded.Summary
	rep.Insights = append(rep.Insights, decoded.Insights...)
	rep.Visualizations = append(rep.Visualizations, decoded.Visualizations...)
	rep.Statistics = req.Statistics
	return rep, nil
}

// buildPrompt renders the dataset sample, statistics and agent intent into
// one user message
func buildPrompt(req ports.ReportRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Agent %q (type %s, capabilities: %s) requests a report.\n\n",
		req.Agent.Name, req.Agent.Type, joinCapabilities(req))

	ds := req.Source
	fmt.Fprintf(&b, "Dataset %q: %d records, columns: %s\n\nSample rows:\n",
		ds.Name, ds.RowCount(), strings.Join(ds.Columns, ", "))
	for i, row := range ds.Rows {
		if i >= sampleRowLimit {
			break
		}
		cells := make([]string, 0, len(ds.Columns))
		for _, col := range ds.Columns {
			cells = append(cells, dataset.ToString(row[col]))
		}
		fmt.Fprintf(&b, "%s\n", strings.Join(cells, ", "))
	}

	if req.Statistics != nil {
		if encoded, err := json.Marshal(req.Statistics); err == nil {
			fmt.Fprintf(&b, "\nPrecomputed statistics:\n%s\n", encoded)
		}
	}

	return b.String()
}

func joinCapabilities(req ports.ReportRequest) string {
	if len(req.Agent.Capabilities) == 0 {
		return "none"
	}
	tags := make([]string, 0, len(req.Agent.Capabilities))
	for _, c := range req.Agent.Capabilities {
		tags = append(tags, string(c))
	}
	return strings.Join(tags, ", ")
}
