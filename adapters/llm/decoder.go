package llm

import (
	"encoding/json"
	"regexp"
	"strings"

	"agentmgr/domain/report"
)

// DecodedReport is the best-effort extraction of a report shape from model
// output. Fields left empty simply were not recoverable.
type DecodedReport struct {
	Summary        string
	Insights       []string
	Visualizations []report.Visualization
}

// looseReport mirrors the JSON shape the prompt asks the model for
type looseReport struct {
	Summary        string   `json:"summary"`
	Insights       []string `json:"insights"`
	Visualizations []struct {
		Type  string `json:"type"`
		Title string `json:"title"`
		Data  []struct {
			Label string  `json:"label"`
			Value float64 `json:"value"`
		} `json:"data"`
	} `json:"visualizations"`
}

var fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// DecodeReport attempts to extract a report shape from unstructured model
// text. The contract is bounded: it returns a partial result, or the raw text
// as the summary, and never fails. Extraction order:
//  1. the whole text as JSON
//  2. the first fenced code block as JSON
//  3. the substring between the first '{' and the last '}' as JSON
//  4. Markdown heuristics: bullet lines become insights, everything becomes
//     the summary
func DecodeReport(raw string) DecodedReport {
	trimmed := strings.TrimSpace(raw)

	if decoded, ok := decodeJSON(trimmed); ok {
		return decoded
	}

	if match := fenceRe.FindStringSubmatch(trimmed); match != nil {
		if decoded, ok := decodeJSON(strings.TrimSpace(match[1])); ok {
			return decoded
		}
	}

	if start, end := strings.Index(trimmed, "{"), strings.LastIndex(trimmed, "}"); start >= 0 && end > start {
		if decoded, ok := decodeJSON(trimmed[start : end+1]); ok {
			return decoded
		}
	}

	return DecodedReport{
		Summary:  trimmed,
		Insights: harvestBullets(trimmed),
	}
}

// decodeJSON tries to unmarshal text into the loose report shape. A document
// that parses but carries none of the expected fields is rejected.
func decodeJSON(text string) (DecodedReport, bool) {
	var loose looseReport
	if err := json.Unmarshal([]byte(text), &loose); err != nil {
		return DecodedReport{}, false
	}
	if loose.Summary == "" && len(loose.Insights) == 0 && len(loose.Visualizations) == 0 {
		return DecodedReport{}, false
	}

	decoded := DecodedReport{
		Summary:  loose.Summary,
		Insights: loose.Insights,
	}
	for _, viz := range loose.Visualizations {
		spec := report.Visualization{
			Type:  report.VizType(viz.Type),
			Title: viz.Title,
			Data:  []report.DataPoint{},
		}
		for _, point := range viz.Data {
			spec.Data = append(spec.Data, report.DataPoint{Label: point.Label, Value: point.Value})
		}
		decoded.Visualizations = append(decoded.Visualizations, spec)
	}
	return decoded, true
}

// harvestBullets collects Markdown bullet lines as insight strings
func harvestBullets(text string) []string {
	insights := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
			if item := strings.TrimSpace(line[2:]); item != "" {
				insights = append(insights, item)
			}
		}
	}
	return insights
}
