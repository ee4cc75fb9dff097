package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"

	mw "github.com/lws/gateway/internal/api/middleware"
	"github.com/lws/gateway/internal/model"
)

type mockWorkloads struct {
	mock.Mock
}

func (m *mockWorkloads) CreateNamespace(ctx context.Context, tenantID string) error {
	return m.Called(ctx, tenantID).Error(0)
}

func (m *mockWorkloads) DeleteNamespace(ctx context.Context, tenantID string) error {
	return m.Called(ctx, tenantID).Error(0)
}

func (m *mockWorkloads) CreateDeployment(ctx context.Context, tenantID string, workloadType model.WorkloadType) (*model.DeploymentDefinition, error) {
	args := m.Called(ctx, tenantID, workloadType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DeploymentDefinition), args.Error(1)
}

func (m *mockWorkloads) DeleteDeployment(ctx context.Context, tenantID, deploymentName string) error {
	return m.Called(ctx, tenantID, deploymentName).Error(0)
}

func (m *mockWorkloads) ListDeployments(ctx context.Context, tenantID string) ([]model.DeploymentDefinition, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DeploymentDefinition), args.Error(1)
}

type mockNodes struct {
	mock.Mock
}

func (m *mockNodes) Enroll(ctx context.Context, nodeURL, secret string) (*model.Node, error) {
	args := m.Called(ctx, nodeURL, secret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Node), args.Error(1)
}

func (m *mockNodes) ListNodes(ctx context.Context) ([]model.Node, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Node), args.Error(1)
}

// newRequest creates a new HTTP request with an optional JSON body.
func newRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	r := httptest.NewRequest(method, target, &buf)
	r.Header.Set("Content-Type", "application/json")
	return r
}

// newRequestRaw creates a new HTTP request with a raw string body.
func newRequestRaw(method, target, body string) *http.Request {
	r := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// withChiURLParam adds a chi URL parameter to the request context.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// withTenant injects the caller's tenant id as the Tenant middleware does.
func withTenant(r *http.Request, tenantID string) *http.Request {
	return r.WithContext(mw.WithTenantID(r.Context(), tenantID))
}

// decodeErrorResponse parses the JSON error response body into a map.
func decodeErrorResponse(rec *httptest.ResponseRecorder) map[string]string {
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	return body
}
