package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lws/gateway/internal/model"
	"github.com/lws/gateway/internal/nodeclient"
)

// NodeClient is the subset of the node management API the gateway uses.
type NodeClient interface {
	GetConfiguration(ctx context.Context, baseURL, key string) (*model.NodeConfiguration, error)
	Alive(ctx context.Context, baseURL, key string) error
}

// NodeRegistry stores fleet membership.
type NodeRegistry interface {
	Create(ctx context.Context, node *model.Node) error
	List(ctx context.Context) ([]model.Node, error)
	Delete(ctx context.Context, id string) error
}

// NodeEnrollmentService admits new nodes into the fleet.
type NodeEnrollmentService struct {
	client NodeClient
	nodes  NodeRegistry
	logger zerolog.Logger
}

func NewNodeEnrollmentService(client NodeClient, nodes NodeRegistry, logger zerolog.Logger) *NodeEnrollmentService {
	return &NodeEnrollmentService{
		client: client,
		nodes:  nodes,
		logger: logger.With().Str("component", "node-enrollment").Logger(),
	}
}

// Enroll performs the management handshake against nodeURL with secret and
// registers the node with the capacity it reports. Nothing is recorded
// unless the handshake succeeds. There is no retry.
func (s *NodeEnrollmentService) Enroll(ctx context.Context, nodeURL, secret string) (*model.Node, error) {
	cfg, err := s.client.GetConfiguration(ctx, nodeURL, secret)
	if err != nil {
		if errors.Is(err, nodeclient.ErrDecode) {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		return nil, classifyNodeError(err, func(body string) error {
			return &UnknownProvisioningError{Body: body}
		})
	}
	if cfg.IsZero() {
		return nil, fmt.Errorf("%w: empty node configuration", ErrMalformedResponse)
	}

	key := cfg.NodeKey
	if key == "" {
		key = secret
	}

	node := &model.Node{
		URL:      nodeURL,
		Key:      key,
		Nickname: cfg.NodeNickName,
		MaxCPU:   cfg.NodeMaximumCPU,
		MaxRAM:   cfg.NodeMaximumRAM,
	}
	if err := s.nodes.Create(ctx, node); err != nil {
		return nil, fmt.Errorf("register node %s: %w", nodeURL, err)
	}

	s.logger.Info().
		Str("node_id", node.ID).
		Str("url", node.URL).
		Str("nickname", node.Nickname).
		Int("max_cpu", node.MaxCPU).
		Int("max_ram", node.MaxRAM).
		Msg("node enrolled")
	return node, nil
}

// ListNodes returns the current fleet.
func (s *NodeEnrollmentService) ListNodes(ctx context.Context) ([]model.Node, error) {
	return s.nodes.List(ctx)
}
