package core

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lws/gateway/internal/nodeclient"
)

func TestPlatformError_Unwrap(t *testing.T) {
	cause := errors.New("namespaces \"t\" already exists")
	err := fmt.Errorf("create namespace: %w", &PlatformError{Op: "create namespace", Err: cause})

	var platformErr *PlatformError
	assert.True(t, errors.As(err, &platformErr))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "platform create namespace")
}

func TestClassifyNodeError_Unauthorized(t *testing.T) {
	err := classifyNodeError(&nodeclient.StatusError{StatusCode: http.StatusUnauthorized}, func(body string) error {
		return &UnknownHealthError{Body: body}
	})
	assert.ErrorIs(t, err, ErrAuthRejected)
}

func TestClassifyNodeError_OtherStatusKeepsBody(t *testing.T) {
	err := classifyNodeError(&nodeclient.StatusError{StatusCode: http.StatusBadGateway, Body: "upstream down"}, func(body string) error {
		return &UnknownProvisioningError{Body: body}
	})

	var unknown *UnknownProvisioningError
	assert.True(t, errors.As(err, &unknown))
	assert.Equal(t, "upstream down", unknown.Body)
}

func TestClassifyNodeError_TransportFailure(t *testing.T) {
	err := classifyNodeError(errors.New("dial tcp: connection refused"), func(body string) error {
		return &UnknownHealthError{Body: body}
	})

	var unknown *UnknownHealthError
	assert.True(t, errors.As(err, &unknown))
	assert.Equal(t, "dial tcp: connection refused", unknown.Body)
}

func TestNodeProbeError_Unwrap(t *testing.T) {
	err := &NodeProbeError{NodeID: "n-1", URL: "http://n1", Evicted: true, Err: ErrAuthRejected}
	assert.ErrorIs(t, err, ErrAuthRejected)
	assert.Equal(t, "node n-1 (http://n1): cannot authorize node with defined key", err.Error())
}
