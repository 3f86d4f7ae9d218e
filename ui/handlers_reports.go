package ui

import (
	"net/http"

	"agentmgr/domain/core"
	"agentmgr/domain/report"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// reportSummary is the list view of a report, heavy fields elided
type reportSummary struct {
	ID          core.ReportID  `json:"id"`
	AgentID     core.AgentID   `json:"agent_id"`
	SourceID    core.SourceID  `json:"data_source_id"`
	Insights    int            `json:"insight_count"`
	Charts      int            `json:"chart_count"`
	GeneratedAt core.Timestamp `json:"generated_at"`
}

// handleListReports lists reports, optionally filtered by ?agent_id=
func (s *Server) handleListReports(c *gin.Context) {
	var (
		reports []*report.Report
		err     error
	)
	if raw := c.Query("agent_id"); raw != "" {
		agentID, parseErr := core.ParseAgentID(raw)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": parseErr.Error()})
			return
		}
		reports, err = s.reports.ListByAgent(c.Request.Context(), agentID)
	} else {
		reports, err = s.reports.List(c.Request.Context())
	}
	if err != nil {
		s.respondError(c, err)
		return
	}

	summaries := make([]reportSummary, 0, len(reports))
	for _, rep := range reports {
		summaries = append(summaries, reportSummary{
			ID:          rep.ID,
			AgentID:     rep.AgentID,
			SourceID:    rep.SourceID,
			Insights:    len(rep.Insights),
			Charts:      len(rep.Visualizations),
			GeneratedAt: rep.GeneratedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"reports": summaries})
}

// handleGetReport returns a report as JSON, or as rendered HTML when
// ?format=html is given and the report carries a Markdown summary.
func (s *Server) handleGetReport(c *gin.Context) {
	id, err := core.ParseReportID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	rep, err := s.reports.GetByID(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}

	if c.Query("format") == "html" {
		c.Data(http.StatusOK, "text/html; charset=utf-8", renderMarkdown(rep.Summary))
		return
	}
	c.JSON(http.StatusOK, rep)
}

func (s *Server) handleDeleteReport(c *gin.Context) {
	id, err := core.ParseReportID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := s.reports.Delete(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func renderMarkdown(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(p.Parse([]byte(md)), r)
}
