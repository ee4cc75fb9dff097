package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "github.com/lws/gateway/internal/api/middleware"
	"github.com/lws/gateway/internal/api/request"
	"github.com/lws/gateway/internal/api/response"
	"github.com/lws/gateway/internal/model"
)

// WorkloadManager is the workload orchestration surface the HTTP layer uses.
type WorkloadManager interface {
	CreateNamespace(ctx context.Context, tenantID string) error
	DeleteNamespace(ctx context.Context, tenantID string) error
	CreateDeployment(ctx context.Context, tenantID string, workloadType model.WorkloadType) (*model.DeploymentDefinition, error)
	DeleteDeployment(ctx context.Context, tenantID, deploymentName string) error
	ListDeployments(ctx context.Context, tenantID string) ([]model.DeploymentDefinition, error)
}

// Deployment serves the calling tenant's workloads.
type Deployment struct {
	svc WorkloadManager
}

func NewDeployment(svc WorkloadManager) *Deployment {
	return &Deployment{svc: svc}
}

func (h *Deployment) List(w http.ResponseWriter, r *http.Request) {
	tenantID, err := request.RequireTenantID(mw.TenantID(r.Context()))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	defs, err := h.svc.ListDeployments(r.Context(), tenantID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, defs)
}

func (h *Deployment) Create(w http.ResponseWriter, r *http.Request) {
	tenantID, err := request.RequireTenantID(mw.TenantID(r.Context()))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.CreateDeployment
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	def, err := h.svc.CreateDeployment(r.Context(), tenantID, model.WorkloadType(req.WorkloadType))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, def)
}

func (h *Deployment) Delete(w http.ResponseWriter, r *http.Request) {
	tenantID, err := request.RequireTenantID(mw.TenantID(r.Context()))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	name, err := request.RequireDeploymentName(chi.URLParam(r, "name"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.DeleteDeployment(r.Context(), tenantID, name); err != nil {
		writeServiceError(w, r, err)
		return
	}

	response.WriteNoContent(w)
}
