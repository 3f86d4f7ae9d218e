// Package ui exposes the REST API over the agent, data source and report
// registries, and drives pipeline executions.
package ui

import (
	"net/http"

	"agentmgr/adapters/stats/engine"
	"agentmgr/domain/core"
	"agentmgr/internal"
	"agentmgr/internal/pipeline"
	"agentmgr/ports"

	"github.com/gin-gonic/gin"
)

// Server is the REST API server for the agent manager
type Server struct {
	router   *gin.Engine
	agents   ports.AgentRepository
	sources  ports.SourceRepository
	reports  ports.ReportRepository
	executor *pipeline.Executor
	engine   *engine.Engine
	log      *internal.Logger
}

// NewServer creates the API server and registers its routes
func NewServer(
	agents ports.AgentRepository,
	sources ports.SourceRepository,
	reports ports.ReportRepository,
	executor *pipeline.Executor,
	eng *engine.Engine,
	logger *internal.Logger,
) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &Server{
		router:   gin.Default(),
		agents:   agents,
		sources:  sources,
		reports:  reports,
		executor: executor,
		engine:   eng,
		log:      logger,
	}
	s.setupRoutes()
	return s
}

// Router exposes the underlying handler, mainly for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// Run starts the HTTP server on the given port
func (s *Server) Run(port string) error {
	s.log.Info("API server listening on :%s", port)
	return s.router.Run(":" + port)
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")

	api.GET("/agents", s.handleListAgents)
	api.POST("/agents", s.handleCreateAgent)
	api.GET("/agents/:id", s.handleGetAgent)
	api.PUT("/agents/:id", s.handleUpdateAgent)
	api.DELETE("/agents/:id", s.handleDeleteAgent)

	api.GET("/sources", s.handleListSources)
	api.POST("/sources", s.handleUploadSource)
	api.GET("/sources/:id", s.handleGetSource)
	api.DELETE("/sources/:id", s.handleDeleteSource)
	api.GET("/sources/:id/statistics", s.handleSourceStatistics)
	api.GET("/sources/:id/outliers", s.handleSourceOutliers)

	api.POST("/execute", s.handleExecute)
	api.POST("/execute/batch", s.handleExecuteBatch)

	api.GET("/reports", s.handleListReports)
	api.GET("/reports/:id", s.handleGetReport)
	api.DELETE("/reports/:id", s.handleDeleteReport)
}

// respondError maps domain errors onto HTTP status codes
func (s *Server) respondError(c *gin.Context, err error) {
	switch {
	case core.IsNotFoundError(err):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
	case core.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	default:
		s.log.Error("request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
	}
}
