package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lws/gateway/internal/api/request"
	"github.com/lws/gateway/internal/api/response"
)

// Namespace manages tenant isolation boundaries for administrators.
type Namespace struct {
	svc WorkloadManager
}

func NewNamespace(svc WorkloadManager) *Namespace {
	return &Namespace{svc: svc}
}

func (h *Namespace) Create(w http.ResponseWriter, r *http.Request) {
	tenantID, err := request.RequireTenantID(chi.URLParam(r, "tenantID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.CreateNamespace(r.Context(), tenantID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	response.WriteNoContent(w)
}

func (h *Namespace) Delete(w http.ResponseWriter, r *http.Request) {
	tenantID, err := request.RequireTenantID(chi.URLParam(r, "tenantID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.DeleteNamespace(r.Context(), tenantID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	response.WriteNoContent(w)
}
