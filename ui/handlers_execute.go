package ui

import (
	"errors"
	"net/http"

	"agentmgr/domain/core"

	"github.com/gin-gonic/gin"
)

type executeRequest struct {
	AgentID  core.AgentID  `json:"agent_id" binding:"required"`
	SourceID core.SourceID `json:"data_source_id" binding:"required"`
}

type batchExecuteRequest struct {
	AgentIDs []core.AgentID `json:"agent_ids" binding:"required"`
	SourceID core.SourceID  `json:"data_source_id" binding:"required"`
}

// handleExecute runs one agent against one data source synchronously
func (s *Server) handleExecute(c *gin.Context) {
	var req executeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	rep, err := s.executor.Execute(c.Request.Context(), req.AgentID, req.SourceID, nil)
	if err != nil {
		if errors.Is(err, core.ErrInvalidDataSource) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "report": rep})
}

// handleExecuteBatch runs several agents against one data source. Partial
// success returns the reports that did complete alongside the error.
func (s *Server) handleExecuteBatch(c *gin.Context) {
	var req batchExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	reports, err := s.executor.ExecuteBatch(c.Request.Context(), req.AgentIDs, req.SourceID)
	if err != nil {
		s.log.Warn("batch execution completed with errors: %v", err)
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error(), "reports": reports})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "reports": reports})
}
