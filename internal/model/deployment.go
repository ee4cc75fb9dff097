package model

import "time"

// DeploymentDefinition describes one provisioned workload. It is written
// only after the platform resources behind it exist.
type DeploymentDefinition struct {
	ID             string       `json:"id" db:"id"`
	TenantID       string       `json:"tenant_id" db:"tenant_id"`
	ServiceName    string       `json:"service_name,omitempty" db:"service_name"`
	DeploymentName string       `json:"deployment_name" db:"deployment_name"`
	WorkloadType   WorkloadType `json:"workload_type" db:"workload_type"`
	// OpenedPorts holds the fixed internal port first, then the
	// externally reachable ports allocated by the platform.
	OpenedPorts []int `json:"opened_ports" db:"opened_ports"`
	// CreatedAt is epoch milliseconds.
	CreatedAt int64 `json:"created_at" db:"created_at"`
}

// NewDeploymentDefinition stamps the creation time.
func NewDeploymentDefinition(tenantID string, workloadType WorkloadType) *DeploymentDefinition {
	return &DeploymentDefinition{
		TenantID:     tenantID,
		WorkloadType: workloadType,
		CreatedAt:    time.Now().UnixMilli(),
	}
}
