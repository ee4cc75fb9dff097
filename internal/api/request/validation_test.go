package request

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPost(t *testing.T, body string) *http.Request {
	t.Helper()
	r, err := http.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	require.NoError(t, err)
	return r
}

// ---------- Decode ----------

func TestDecode_CreateDeployment(t *testing.T) {
	var req CreateDeployment
	require.NoError(t, Decode(newPost(t, `{"workload_type":"ubuntu"}`), &req))
	assert.Equal(t, "ubuntu", req.WorkloadType)
}

func TestDecode_InvalidJSON(t *testing.T) {
	var req CreateDeployment
	err := Decode(newPost(t, `{not valid json}`), &req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestDecode_UnknownWorkloadType(t *testing.T) {
	var req CreateDeployment
	err := Decode(newPost(t, `{"workload_type":"windows"}`), &req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation error")
}

func TestDecode_MissingWorkloadType(t *testing.T) {
	var req CreateDeployment
	err := Decode(newPost(t, `{}`), &req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation error")
}

func TestDecode_EnrollNode(t *testing.T) {
	var req EnrollNode
	require.NoError(t, Decode(newPost(t, `{"node_url":"http://10.0.0.5:8080","node_key":"k"}`), &req))
	assert.Equal(t, "http://10.0.0.5:8080", req.NodeURL)
	assert.Equal(t, "k", req.NodeKey)
}

func TestDecode_EnrollNode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing key", `{"node_url":"http://10.0.0.5:8080"}`},
		{"missing url", `{"node_key":"k"}`},
		{"not http", `{"node_url":"ftp://10.0.0.5","node_key":"k"}`},
		{"not a url", `{"node_url":"node five","node_key":"k"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req EnrollNode
			err := Decode(newPost(t, tt.body), &req)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validation error")
		})
	}
}

// ---------- Path values ----------

func TestRequireTenantID(t *testing.T) {
	valid := []string{"tenantA", "t", "acme-42", strings.Repeat("a", 63)}
	for _, s := range valid {
		t.Run(s, func(t *testing.T) {
			got, err := RequireTenantID(s)
			require.NoError(t, err)
			assert.Equal(t, s, got)
		})
	}

	invalid := []string{"", "-lead", "trail-", "has space", "under_score", strings.Repeat("a", 64)}
	for _, s := range invalid {
		t.Run("invalid "+s, func(t *testing.T) {
			_, err := RequireTenantID(s)
			assert.Error(t, err)
		})
	}
}

func TestRequireDeploymentName(t *testing.T) {
	got, err := RequireDeploymentName("tenanta-ubuntu-x1y2z")
	require.NoError(t, err)
	assert.Equal(t, "tenanta-ubuntu-x1y2z", got)

	_, err = RequireDeploymentName("")
	assert.ErrorContains(t, err, "missing deployment name")

	_, err = RequireDeploymentName("Bad_Name")
	assert.ErrorContains(t, err, "invalid deployment name")
}
