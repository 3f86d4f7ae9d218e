package ui

import (
	"net/http"
	"strings"

	"agentmgr/domain/core"
	"agentmgr/internal/ingest"

	"github.com/gin-gonic/gin"
)

// sourceSummary is the list view of a data source, rows elided
type sourceSummary struct {
	ID          core.SourceID  `json:"id"`
	Name        string         `json:"name"`
	Kind        string         `json:"kind"`
	RowCount    int            `json:"row_count"`
	ColumnCount int            `json:"column_count"`
	Columns     []string       `json:"columns"`
	CreatedAt   core.Timestamp `json:"created_at"`
}

func (s *Server) handleListSources(c *gin.Context) {
	sources, err := s.sources.List(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}

	summaries := make([]sourceSummary, 0, len(sources))
	for _, ds := range sources {
		summaries = append(summaries, sourceSummary{
			ID:          ds.ID,
			Name:        ds.Name,
			Kind:        string(ds.Kind),
			RowCount:    ds.RowCount(),
			ColumnCount: ds.ColumnCount(),
			Columns:     ds.Columns,
			CreatedAt:   ds.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"sources": summaries})
}

// handleUploadSource accepts a multipart CSV or Excel file upload
func (s *Server) handleUploadSource(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "multipart field 'file' is required"})
		return
	}

	file, err := header.Open()
	if err != nil {
		s.respondError(c, err)
		return
	}
	defer file.Close()

	ds, err := ingest.ReadFile(file, header.Filename)
	if err != nil {
		s.respondError(c, err)
		return
	}

	if err := s.sources.Create(c.Request.Context(), ds); err != nil {
		s.respondError(c, err)
		return
	}

	s.log.Info("ingested %s (%d rows, %d columns)", ds.Name, ds.RowCount(), ds.ColumnCount())
	c.JSON(http.StatusCreated, gin.H{
		"id":           ds.ID,
		"name":         ds.Name,
		"row_count":    ds.RowCount(),
		"column_count": ds.ColumnCount(),
	})
}

func (s *Server) handleGetSource(c *gin.Context) {
	id, err := core.ParseSourceID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	ds, err := s.sources.GetByID(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ds)
}

func (s *Server) handleDeleteSource(c *gin.Context) {
	id, err := core.ParseSourceID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := s.sources.Delete(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// handleSourceStatistics computes descriptive statistics on demand.
// Optional ?columns=a,b restricts the analysis.
func (s *Server) handleSourceStatistics(c *gin.Context) {
	id, err := core.ParseSourceID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	ds, err := s.sources.GetByID(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}

	var columns []string
	if raw := c.Query("columns"); raw != "" {
		columns = splitColumns(raw)
	}

	c.JSON(http.StatusOK, s.engine.Compute(ds, columns))
}

// handleSourceOutliers flags IQR outlier row indices for ?column=
func (s *Server) handleSourceOutliers(c *gin.Context) {
	id, err := core.ParseSourceID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	column := c.Query("column")
	if column == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "query parameter 'column' is required"})
		return
	}

	ds, err := s.sources.GetByID(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}

	response := gin.H{
		"column":   column,
		"outliers": s.engine.DetectOutliers(ds, column),
	}
	if lower, upper, ok := s.engine.OutlierBounds(ds, column); ok {
		response["lower_bound"] = lower
		response["upper_bound"] = upper
	}
	c.JSON(http.StatusOK, response)
}

func splitColumns(raw string) []string {
	parts := strings.Split(raw, ",")
	columns := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			columns = append(columns, trimmed)
		}
	}
	return columns
}
