package core

import (
	"context"
	"fmt"

	"github.com/lws/gateway/internal/model"
	"github.com/lws/gateway/internal/platform"
)

// DeploymentService persists deployment definitions per tenant.
type DeploymentService struct {
	db DB
}

func NewDeploymentService(db DB) *DeploymentService {
	return &DeploymentService{db: db}
}

// Create inserts def, assigning its ID when empty.
func (s *DeploymentService) Create(ctx context.Context, def *model.DeploymentDefinition) error {
	if def.ID == "" {
		def.ID = platform.NewID()
	}
	if def.OpenedPorts == nil {
		def.OpenedPorts = []int{}
	}

	_, err := s.db.Exec(ctx,
		`INSERT INTO deployment_definitions (id, tenant_id, service_name, deployment_name, workload_type, opened_ports, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		def.ID, def.TenantID, def.ServiceName, def.DeploymentName, string(def.WorkloadType), def.OpenedPorts, def.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create deployment %s: %w", def.DeploymentName, err)
	}
	return nil
}

// ListByTenant returns every definition recorded for tenantID. Tenant IDs
// are matched case-insensitively, the same way they map onto namespaces.
func (s *DeploymentService) ListByTenant(ctx context.Context, tenantID string) ([]model.DeploymentDefinition, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, tenant_id, service_name, deployment_name, workload_type, opened_ports, created_at
		 FROM deployment_definitions WHERE lower(tenant_id) = lower($1) ORDER BY created_at`, tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("list deployments for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	defs := []model.DeploymentDefinition{}
	for rows.Next() {
		var d model.DeploymentDefinition
		var workloadType string
		if err := rows.Scan(&d.ID, &d.TenantID, &d.ServiceName, &d.DeploymentName, &workloadType, &d.OpenedPorts, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan deployment: %w", err)
		}
		d.WorkloadType = model.WorkloadType(workloadType)
		defs = append(defs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deployments: %w", err)
	}
	return defs, nil
}
