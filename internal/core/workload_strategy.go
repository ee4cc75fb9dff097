package core

import (
	"context"

	"k8s.io/client-go/kubernetes"

	"github.com/lws/gateway/internal/model"
)

// WorkloadStrategy provisions and removes one kind of workload on the
// orchestration platform.
type WorkloadStrategy interface {
	// Create provisions the workload in the tenant's namespace and returns
	// its definition. Nothing is persisted.
	Create(ctx context.Context, tenantID string) (*model.DeploymentDefinition, error)
	// Remove deletes the named workload from the tenant's namespace.
	Remove(ctx context.Context, tenantID, deploymentName string) error
}

// DefaultWorkloadStrategies maps every known workload type to its strategy.
// A new workload type needs a constant in model and an entry here.
func DefaultWorkloadStrategies(client kubernetes.Interface, shellImage string) map[model.WorkloadType]WorkloadStrategy {
	return map[model.WorkloadType]WorkloadStrategy{
		model.WorkloadShell: NewShellWorkload(client, shellImage),
	}
}
