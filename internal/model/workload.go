package model

import "fmt"

// WorkloadType selects the provisioning strategy for a deployment.
type WorkloadType string

// Workload type constants.
const (
	// WorkloadShell is a general-purpose container reachable over SSH.
	WorkloadShell WorkloadType = "ubuntu"
)

// WorkloadTypes lists every known workload type.
var WorkloadTypes = []WorkloadType{WorkloadShell}

// ParseWorkloadType returns the WorkloadType named by s.
func ParseWorkloadType(s string) (WorkloadType, error) {
	for _, t := range WorkloadTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown workload type %q", s)
}
