package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/lws/gateway/internal/api/handler"
	mw "github.com/lws/gateway/internal/api/middleware"
	"github.com/lws/gateway/internal/config"
	"github.com/lws/gateway/internal/core"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	router     chi.Router
	logger     zerolog.Logger
	workloads  handler.WorkloadManager
	nodes      handler.NodeEnroller
	database   Pinger
	platform   Pinger
	adminToken string
}

func NewServer(logger zerolog.Logger, database Pinger, services *core.Services, cfg *config.Config) *Server {
	return newServer(logger, database, services.Workload, services.Workload, services.NodeEnrollment, cfg.AdminToken)
}

func newServer(
	logger zerolog.Logger,
	database, platform Pinger,
	workloads handler.WorkloadManager,
	nodes handler.NodeEnroller,
	adminToken string,
) *Server {
	s := &Server{
		router:     chi.NewRouter(),
		logger:     logger,
		workloads:  workloads,
		nodes:      nodes,
		database:   database,
		platform:   platform,
		adminToken: adminToken,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(mw.Metrics)
}

func (s *Server) setupRoutes() {
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)

	s.router.Route("/api/v1", func(r chi.Router) {
		// Tenant workloads
		r.Group(func(r chi.Router) {
			r.Use(mw.Tenant)

			deployment := handler.NewDeployment(s.workloads)
			r.Get("/deployments", deployment.List)
			r.Post("/deployments", deployment.Create)
			r.Delete("/deployments/{name}", deployment.Delete)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(mw.AdminAuth(s.adminToken))

			// Tenant namespaces
			namespace := handler.NewNamespace(s.workloads)
			r.Post("/tenants/{tenantID}/namespace", namespace.Create)
			r.Delete("/tenants/{tenantID}/namespace", namespace.Delete)

			// Node fleet
			node := handler.NewNode(s.nodes)
			r.Get("/nodes", node.List)
			r.Post("/nodes", node.Enroll)
		})
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	for name, dep := range map[string]Pinger{"database": s.database, "kubernetes": s.platform} {
		if err := dep.Ping(ctx); err != nil {
			checks[name] = err.Error()
			healthy = false
		} else {
			checks[name] = "ok"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(checks)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
