package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lws/gateway/internal/metrics"
	"github.com/lws/gateway/internal/model"
)

// SweepResult summarizes one pass over the fleet.
type SweepResult struct {
	Probed   int
	Healthy  int
	Failures []*NodeProbeError
}

// NodeHealthSupervisor periodically probes every registered node and evicts
// the ones that do not answer their heartbeat with 2xx.
type NodeHealthSupervisor struct {
	client   NodeClient
	nodes    NodeRegistry
	interval time.Duration
	logger   zerolog.Logger
}

func NewNodeHealthSupervisor(client NodeClient, nodes NodeRegistry, interval time.Duration, logger zerolog.Logger) *NodeHealthSupervisor {
	return &NodeHealthSupervisor{
		client:   client,
		nodes:    nodes,
		interval: interval,
		logger:   logger.With().Str("component", "node-health").Logger(),
	}
}

// RunLoop sweeps once immediately and then on every tick until ctx is done.
func (s *NodeHealthSupervisor) RunLoop(ctx context.Context) {
	s.logger.Info().Dur("interval", s.interval).Msg("heartbeat started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.runSweep(ctx)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("heartbeat stopped")
			return
		case <-ticker.C:
			s.runSweep(ctx)
		}
	}
}

func (s *NodeHealthSupervisor) runSweep(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Interface("panic", r).Msg("node sweep panicked")
		}
	}()

	result, err := s.Sweep(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("node sweep failed")
		return
	}
	for _, f := range result.Failures {
		if !f.Evicted {
			s.logger.Warn().Err(f.Err).
				Str("node_id", f.NodeID).
				Str("node_url", f.URL).
				Msg("unhealthy node kept in fleet")
		}
	}
	s.logger.Debug().
		Int("probed", result.Probed).
		Int("healthy", result.Healthy).
		Int("failed", len(result.Failures)).
		Msg("node sweep finished")
}

// Sweep probes a snapshot of the fleet sequentially. A failing node is
// evicted before its error is classified and the sweep moves on to the
// next node. The returned error is set only when the fleet cannot be listed.
func (s *NodeHealthSupervisor) Sweep(ctx context.Context) (SweepResult, error) {
	metrics.NodeSweepsTotal.Inc()

	nodes, err := s.nodes.List(ctx)
	if err != nil {
		return SweepResult{}, fmt.Errorf("snapshot fleet: %w", err)
	}
	metrics.FleetSize.Set(float64(len(nodes)))

	var result SweepResult
	for _, node := range nodes {
		if ctx.Err() != nil {
			break
		}
		result.Probed++

		probeErr := s.client.Alive(ctx, node.URL, node.Key)
		s.logger.Debug().Str("node_id", node.ID).Str("node_url", node.URL).Bool("alive", probeErr == nil).Msg("node probed")
		if probeErr == nil {
			result.Healthy++
			continue
		}
		if ctx.Err() != nil {
			// Shutdown interrupted the probe; the node did not fail it.
			break
		}

		result.Failures = append(result.Failures, s.evict(ctx, node, probeErr))
	}
	return result, nil
}

func (s *NodeHealthSupervisor) evict(ctx context.Context, node model.Node, probeErr error) *NodeProbeError {
	failure := &NodeProbeError{
		NodeID: node.ID,
		URL:    node.URL,
		Err: classifyNodeError(probeErr, func(body string) error {
			return &UnknownHealthError{Body: body}
		}),
	}

	if err := s.nodes.Delete(ctx, node.ID); err != nil {
		s.logger.Error().Err(err).Str("node_id", node.ID).Msg("evict node")
		failure.Err = errors.Join(failure.Err, err)
		return failure
	}
	failure.Evicted = true

	reason := "unknown"
	if errors.Is(failure.Err, ErrAuthRejected) {
		reason = "unauthorized"
	}
	metrics.NodeEvictionsTotal.WithLabelValues(reason).Inc()
	s.logger.Error().Err(failure.Err).
		Str("node_id", node.ID).
		Str("node_url", node.URL).
		Str("reason", reason).
		Msg("node evicted")
	return failure
}
