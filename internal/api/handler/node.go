package handler

import (
	"context"
	"net/http"

	"github.com/lws/gateway/internal/api/request"
	"github.com/lws/gateway/internal/api/response"
	"github.com/lws/gateway/internal/model"
)

// NodeEnroller admits nodes into the fleet and lists it.
type NodeEnroller interface {
	Enroll(ctx context.Context, nodeURL, secret string) (*model.Node, error)
	ListNodes(ctx context.Context) ([]model.Node, error)
}

type Node struct {
	svc NodeEnroller
}

func NewNode(svc NodeEnroller) *Node {
	return &Node{svc: svc}
}

func (h *Node) List(w http.ResponseWriter, r *http.Request) {
	nodes, err := h.svc.ListNodes(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, nodes)
}

func (h *Node) Enroll(w http.ResponseWriter, r *http.Request) {
	var req request.EnrollNode
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	node, err := h.svc.Enroll(r.Context(), req.NodeURL, req.NodeKey)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, node)
}
