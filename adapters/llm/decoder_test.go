package llm

import (
	"testing"

	"agentmgr/domain/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeReport_PlainJSON(t *testing.T) {
	raw := `{"summary": "sales look healthy", "insights": ["revenue is up"],
		"visualizations": [{"type": "bar", "title": "by region",
		"data": [{"label": "North", "value": 12}]}]}`

	decoded := DecodeReport(raw)

	assert.Equal(t, "sales look healthy", decoded.Summary)
	assert.Equal(t, []string{"revenue is up"}, decoded.Insights)
	require.Len(t, decoded.Visualizations, 1)
	assert.Equal(t, report.VizBar, decoded.Visualizations[0].Type)
	assert.Equal(t, report.DataPoint{Label: "North", Value: 12}, decoded.Visualizations[0].Data[0])
}

func TestDecodeReport_FencedJSON(t *testing.T) {
	raw := "Here is the analysis you asked for:\n\n```json\n" +
		`{"summary": "fenced", "insights": ["a", "b"]}` +
		"\n```\n\nLet me know if you need more."

	decoded := DecodeReport(raw)
	assert.Equal(t, "fenced", decoded.Summary)
	assert.Equal(t, []string{"a", "b"}, decoded.Insights)
}

func TestDecodeReport_EmbeddedJSON(t *testing.T) {
	raw := `Sure! {"summary": "embedded", "insights": []} Hope that helps.`

	decoded := DecodeReport(raw)
	assert.Equal(t, "embedded", decoded.Summary)
}

func TestDecodeReport_MarkdownFallback(t *testing.T) {
	raw := "# Findings\n\nSome prose about the data.\n\n" +
		"- first insight\n* second insight\n- \n"

	decoded := DecodeReport(raw)

	// Raw text is preserved as the summary
	assert.Contains(t, decoded.Summary, "Some prose about the data.")
	assert.Equal(t, []string{"first insight", "second insight"}, decoded.Insights)
	assert.Empty(t, decoded.Visualizations)
}

func TestDecodeReport_GarbageJSONFallsThrough(t *testing.T) {
	raw := `{"unexpected": "shape"}`

	decoded := DecodeReport(raw)
	// Parses as JSON but carries no report fields: treated as raw text
	assert.Equal(t, raw, decoded.Summary)
}

func TestDecodeReport_EmptyInput(t *testing.T) {
	decoded := DecodeReport("   \n  ")
	assert.Equal(t, "", decoded.Summary)
	assert.Empty(t, decoded.Insights)
}
