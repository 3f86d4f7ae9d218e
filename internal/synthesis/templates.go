package synthesis

import (
	"fmt"
	"sort"
	"strings"

	"agentmgr/domain/dataset"
	model "agentmgr/domain/stats"
)

// Fixed section headers for the templated Markdown summary. These mirror the
// report layout of the source system and are interpolated, not model-generated.
const (
	headerOverview        = "## Overview"
	headerKeyObservations = "## Key Observations"
	headerStatInsights    = "## Statistical Insights"
	headerPatterns        = "## Patterns & Trends"
	headerRecommendations = "## Recommendations"
	headerMethodology     = "## Methodology"
)

// maxSummaryColumns bounds how many numeric columns get their own range line
const maxSummaryColumns = 3

// buildSummary renders the structured Markdown summary from dataset shape and
// computed statistics
func (s *Synthesizer) buildSummary(ds *dataset.DataSource, st *model.Statistics) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Analysis Report: %s\n\n", ds.Name)

	b.WriteString(headerOverview + "\n\n")
	fmt.Fprintf(&b, "The dataset **%s** holds %d records across %d fields: %s.\n\n",
		ds.Name, ds.RowCount(), ds.ColumnCount(), strings.Join(ds.Columns, ", "))

	b.WriteString(headerKeyObservations + "\n\n")
	wroteObservation := false
	for _, col := range st.CategoricalColumns {
		summary, ok := st.CategoricalStats[col]
		if !ok || len(summary.TopCategories) == 0 {
			continue
		}
		top := summary.TopCategories[0]
		fmt.Fprintf(&b, "- The most frequent value in **%s** is %q (%s of records, %d distinct values)\n",
			col, top.Category, top.Percentage, summary.UniqueCount)
		wroteObservation = true
		break
	}
	for _, col := range st.NumericColumns {
		if len(s.engine.DetectOutliers(ds, col)) > 0 {
			fmt.Fprintf(&b, "- Column **%s** contains values outside the expected interquartile range\n", col)
			wroteObservation = true
			break
		}
	}
	if !wroteObservation {
		b.WriteString("- No dominant categories or anomalous values stand out in this dataset\n")
	}
	b.WriteString("\n")

	b.WriteString(headerStatInsights + "\n\n")
	if len(st.NumericColumns) == 0 {
		b.WriteString("No numeric columns were identified for statistical analysis.\n\n")
	} else {
		for i, col := range st.NumericColumns {
			if i >= maxSummaryColumns {
				fmt.Fprintf(&b, "- %d further numeric columns omitted for brevity\n", len(st.NumericColumns)-i)
				break
			}
			summary, ok := st.NumericStats[col]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "- **%s**: mean %.2f, median %.2f, range %.2f to %.2f (n=%d)\n",
				col, summary.Mean, summary.Median, summary.Min, summary.Max, summary.Count)
		}
		b.WriteString("\n")
	}

	b.WriteString(headerPatterns + "\n\n")
	if pair, ok := s.engine.StrongestCorrelation(ds, st.NumericColumns); ok && abs(pair.R) >= s.cfg.CorrelationMin {
		fmt.Fprintf(&b, "Values of **%s** and **%s** move together (Pearson r = %.2f).\n\n",
			pair.ColumnX, pair.ColumnY, pair.R)
	} else {
		b.WriteString("No strong pairwise relationships were detected between numeric columns.\n\n")
	}

	b.WriteString(headerRecommendations + "\n\n")
	b.WriteString("- Review flagged outliers before drawing conclusions from aggregate figures\n")
	b.WriteString("- Collect additional records to strengthen the statistical estimates\n")
	b.WriteString("- Consider segmenting the analysis by the dominant categorical fields\n\n")

	b.WriteString(headerMethodology + "\n\n")
	b.WriteString("Columns were classified as numeric or categorical from their parse ratios. " +
		"Descriptive statistics use population standard deviation; outliers follow the " +
		"1.5 IQR rule; category frequencies are reported against total record count.\n")

	return b.String()
}

// sortCategories orders frequency entries by descending count, then name
func sortCategories(entries []model.CategoryCount) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Category < entries[j].Category
	})
}
