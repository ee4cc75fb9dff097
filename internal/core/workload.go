package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/lws/gateway/internal/kube"
	"github.com/lws/gateway/internal/metrics"
	"github.com/lws/gateway/internal/model"
)

// DeploymentRegistry stores deployment definitions per tenant.
type DeploymentRegistry interface {
	Create(ctx context.Context, def *model.DeploymentDefinition) error
	ListByTenant(ctx context.Context, tenantID string) ([]model.DeploymentDefinition, error)
}

// WorkloadService provisions tenant workloads through the strategy
// registered for their type and records the result.
type WorkloadService struct {
	client      kubernetes.Interface
	strategies  map[model.WorkloadType]WorkloadStrategy
	deployments DeploymentRegistry
	logger      zerolog.Logger
}

func NewWorkloadService(
	client kubernetes.Interface,
	strategies map[model.WorkloadType]WorkloadStrategy,
	deployments DeploymentRegistry,
	logger zerolog.Logger,
) *WorkloadService {
	return &WorkloadService{
		client:      client,
		strategies:  strategies,
		deployments: deployments,
		logger:      logger.With().Str("component", "workload-service").Logger(),
	}
}

// CreateNamespace creates the namespace isolating the tenant's workloads.
// An existing namespace is reported as a PlatformError like any rejection.
func (s *WorkloadService) CreateNamespace(ctx context.Context, tenantID string) error {
	ns := &corev1.Namespace{
		ObjectMeta: metav1.ObjectMeta{Name: kube.NamespaceName(tenantID)},
	}
	if _, err := s.client.CoreV1().Namespaces().Create(ctx, ns, metav1.CreateOptions{}); err != nil {
		return &PlatformError{Op: "create namespace " + ns.Name, Err: err}
	}
	s.logger.Info().Str("tenant", tenantID).Str("namespace", ns.Name).Msg("namespace created")
	return nil
}

// DeleteNamespace removes the tenant's namespace and everything in it.
func (s *WorkloadService) DeleteNamespace(ctx context.Context, tenantID string) error {
	name := kube.NamespaceName(tenantID)
	if err := s.client.CoreV1().Namespaces().Delete(ctx, name, metav1.DeleteOptions{}); err != nil {
		return &PlatformError{Op: "delete namespace " + name, Err: err}
	}
	s.logger.Info().Str("tenant", tenantID).Str("namespace", name).Msg("namespace deleted")
	return nil
}

// CreateDeployment provisions a workload of the given type for the tenant
// and records it. Platform resources are not rolled back when recording
// fails.
func (s *WorkloadService) CreateDeployment(ctx context.Context, tenantID string, workloadType model.WorkloadType) (*model.DeploymentDefinition, error) {
	strategy, err := s.strategy(workloadType)
	if err != nil {
		return nil, err
	}

	def, err := strategy.Create(ctx, tenantID)
	if err != nil {
		metrics.WorkloadsProvisionedTotal.WithLabelValues(string(workloadType), "platform_error").Inc()
		return nil, err
	}

	if err := s.deployments.Create(ctx, def); err != nil {
		metrics.WorkloadsProvisionedTotal.WithLabelValues(string(workloadType), "registry_error").Inc()
		s.logger.Error().Err(err).
			Str("tenant", tenantID).
			Str("deployment", def.DeploymentName).
			Msg("workload provisioned but not recorded")
		return nil, fmt.Errorf("record deployment %s: %w", def.DeploymentName, err)
	}

	metrics.WorkloadsProvisionedTotal.WithLabelValues(string(workloadType), "success").Inc()
	s.logger.Info().
		Str("tenant", tenantID).
		Str("deployment", def.DeploymentName).
		Ints("ports", def.OpenedPorts).
		Msg("workload provisioned")
	return def, nil
}

// DeleteDeployment removes the named workload through the shell strategy.
// Ownership is not checked and the registry row is kept.
func (s *WorkloadService) DeleteDeployment(ctx context.Context, tenantID, deploymentName string) error {
	strategy, err := s.strategy(model.WorkloadShell)
	if err != nil {
		return err
	}
	if err := strategy.Remove(ctx, tenantID, deploymentName); err != nil {
		return err
	}
	s.logger.Info().Str("tenant", tenantID).Str("deployment", deploymentName).Msg("workload removed")
	return nil
}

// ListDeployments returns every recorded deployment of the tenant.
func (s *WorkloadService) ListDeployments(ctx context.Context, tenantID string) ([]model.DeploymentDefinition, error) {
	return s.deployments.ListByTenant(ctx, tenantID)
}

// Ping checks that the platform API server answers.
func (s *WorkloadService) Ping(ctx context.Context) error {
	if _, err := s.client.Discovery().ServerVersion(); err != nil {
		return &PlatformError{Op: "get server version", Err: err}
	}
	return nil
}

func (s *WorkloadService) strategy(workloadType model.WorkloadType) (WorkloadStrategy, error) {
	strategy, ok := s.strategies[workloadType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWorkloadType, workloadType)
	}
	return strategy, nil
}
