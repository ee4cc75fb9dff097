package core

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/lws/gateway/internal/nodeclient"
)

var (
	// ErrUnknownWorkloadType means no strategy is registered for a workload type.
	ErrUnknownWorkloadType = errors.New("unknown workload type")

	// ErrAuthRejected means a node refused the presented key.
	ErrAuthRejected = errors.New("cannot authorize node with defined key")

	// ErrMalformedResponse means a node answered 2xx with unusable metadata.
	ErrMalformedResponse = errors.New("malformed node response")
)

// PlatformError wraps a failed call against the orchestration platform.
type PlatformError struct {
	Op  string
	Err error
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("platform %s: %v", e.Op, e.Err)
}

func (e *PlatformError) Unwrap() error { return e.Err }

// UnknownProvisioningError is a non-2xx, non-401 enrollment handshake.
type UnknownProvisioningError struct {
	Body string
}

func (e *UnknownProvisioningError) Error() string {
	return "unknown error occurred during node enrollment: " + e.Body
}

// UnknownHealthError is a non-2xx, non-401 heartbeat, or a heartbeat that
// got no response at all.
type UnknownHealthError struct {
	Body string
}

func (e *UnknownHealthError) Error() string {
	return "unknown error occurred during node heartbeat: " + e.Body
}

// NodeProbeError reports one node's failed heartbeat within a sweep.
type NodeProbeError struct {
	NodeID string
	URL    string
	// Evicted is false only when removing the node record failed.
	Evicted bool
	Err     error
}

func (e *NodeProbeError) Error() string {
	return fmt.Sprintf("node %s (%s): %v", e.NodeID, e.URL, e.Err)
}

func (e *NodeProbeError) Unwrap() error { return e.Err }

// classifyNodeError maps a node client error onto the gateway taxonomy.
// Non-401 statuses and transport failures go through unknown.
func classifyNodeError(err error, unknown func(body string) error) error {
	var statusErr *nodeclient.StatusError
	if errors.As(err, &statusErr) {
		if statusErr.StatusCode == http.StatusUnauthorized {
			return ErrAuthRejected
		}
		return unknown(statusErr.Body)
	}
	return unknown(err.Error())
}
