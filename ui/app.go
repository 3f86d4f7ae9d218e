package ui

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"agentmgr/internal"
	"agentmgr/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Version is stamped at build time via -ldflags
var Version = "dev"

const opsProbeTimeout = 2 * time.Second

// OpsApp serves the operational endpoints (health, readiness, version)
// on a separate port from the API server.
type OpsApp struct {
	router *chi.Mux
	store  ports.KVStore
	log    *internal.Logger
}

// NewOpsApp creates the operational sub-application
func NewOpsApp(store ports.KVStore, logger *internal.Logger) *OpsApp {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	app := &OpsApp{
		router: chi.NewRouter(),
		store:  store,
		log:    logger,
	}
	app.setupMiddleware()
	app.setupRoutes()
	return app
}

func (a *OpsApp) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
}

func (a *OpsApp) setupRoutes() {
	a.router.Get("/healthz", a.handleHealth)
	a.router.Get("/readyz", a.handleReady)
	a.router.Get("/version", a.handleVersion)
}

// Router exposes the underlying handler, mainly for tests
func (a *OpsApp) Router() http.Handler {
	return a.router
}

// Start runs the ops server on the given port
func (a *OpsApp) Start(port string) error {
	a.log.Info("ops server listening on :%s", port)
	return http.ListenAndServe(":"+port, a.router)
}

func (a *OpsApp) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady probes the backing store so readiness reflects storage health
func (a *OpsApp) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), opsProbeTimeout)
	defer cancel()

	if _, _, err := a.store.Get(ctx, "ops/readyz"); err != nil {
		a.log.Warn("readiness probe failed: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (a *OpsApp) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": Version})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
