package core

import (
	"context"
	"fmt"

	"github.com/lws/gateway/internal/model"
	"github.com/lws/gateway/internal/platform"
)

// NodeService persists fleet membership.
type NodeService struct {
	db DB
}

func NewNodeService(db DB) *NodeService {
	return &NodeService{db: db}
}

// Create inserts node, assigning its ID when empty.
func (s *NodeService) Create(ctx context.Context, node *model.Node) error {
	if node.ID == "" {
		node.ID = platform.NewID()
	}

	_, err := s.db.Exec(ctx,
		`INSERT INTO nodes (id, url, key, nickname, max_cpu, max_ram, allocated_cpu, allocated_ram, cpu_usage, ram_usage)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		node.ID, node.URL, node.Key, node.Nickname, node.MaxCPU, node.MaxRAM,
		node.AllocatedCPU, node.AllocatedRAM, node.CPUUsage, node.RAMUsage,
	)
	if err != nil {
		return fmt.Errorf("create node %s: %w", node.URL, err)
	}
	return nil
}

// List returns the whole fleet.
func (s *NodeService) List(ctx context.Context) ([]model.Node, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, url, key, nickname, max_cpu, max_ram, allocated_cpu, allocated_ram, cpu_usage, ram_usage
		 FROM nodes ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list nodes: %w", err)
	}
	defer rows.Close()

	nodes := []model.Node{}
	for rows.Next() {
		var n model.Node
		if err := rows.Scan(&n.ID, &n.URL, &n.Key, &n.Nickname, &n.MaxCPU, &n.MaxRAM,
			&n.AllocatedCPU, &n.AllocatedRAM, &n.CPUUsage, &n.RAMUsage); err != nil {
			return nil, fmt.Errorf("scan node: %w", err)
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate nodes: %w", err)
	}
	return nodes, nil
}

// Delete removes the node record. Deleting an absent node is not an error.
func (s *NodeService) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM nodes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete node %s: %w", id, err)
	}
	return nil
}
