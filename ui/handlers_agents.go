package ui

import (
	"net/http"

	"agentmgr/domain/agent"
	"agentmgr/domain/core"

	"github.com/gin-gonic/gin"
)

// agentRequest is the JSON payload for creating or updating an agent
type agentRequest struct {
	Name         string             `json:"name" binding:"required"`
	Description  string             `json:"description"`
	Type         agent.AgentType    `json:"type" binding:"required"`
	Capabilities []agent.Capability `json:"capabilities"`
}

func (s *Server) handleListAgents(c *gin.Context) {
	agents, err := s.agents.List(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"agents": agents})
}

func (s *Server) handleCreateAgent(c *gin.Context) {
	var req agentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	a := agent.New(req.Name, req.Type, req.Capabilities)
	a.Description = req.Description

	if err := s.agents.Create(c.Request.Context(), a); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (s *Server) handleGetAgent(c *gin.Context) {
	id, err := core.ParseAgentID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	a, err := s.agents.GetByID(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (s *Server) handleUpdateAgent(c *gin.Context) {
	id, err := core.ParseAgentID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	var req agentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	a, err := s.agents.GetByID(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}

	a.Name = req.Name
	a.Description = req.Description
	a.Type = req.Type
	a.Capabilities = req.Capabilities

	if err := s.agents.Update(c.Request.Context(), a); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (s *Server) handleDeleteAgent(c *gin.Context) {
	id, err := core.ParseAgentID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := s.agents.Delete(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
