package core

import (
	"github.com/rs/zerolog"
	"k8s.io/client-go/kubernetes"

	"github.com/lws/gateway/internal/config"
)

type Services struct {
	Deployment     *DeploymentService
	Node           *NodeService
	Workload       *WorkloadService
	NodeEnrollment *NodeEnrollmentService
	NodeHealth     *NodeHealthSupervisor
}

func NewServices(db DB, kubeClient kubernetes.Interface, nodeClient NodeClient, cfg *config.Config, logger zerolog.Logger) *Services {
	deployments := NewDeploymentService(db)
	nodes := NewNodeService(db)
	return &Services{
		Deployment:     deployments,
		Node:           nodes,
		Workload:       NewWorkloadService(kubeClient, DefaultWorkloadStrategies(kubeClient, cfg.ShellWorkloadImage), deployments, logger),
		NodeEnrollment: NewNodeEnrollmentService(nodeClient, nodes, logger),
		NodeHealth:     NewNodeHealthSupervisor(nodeClient, nodes, cfg.HealthCheckInterval, logger),
	}
}
