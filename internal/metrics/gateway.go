package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	NodeSweepsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gateway_node_sweeps_total",
		Help: "Total number of node health sweeps started",
	})

	NodeEvictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_node_evictions_total",
		Help: "Total number of nodes evicted from the fleet",
	}, []string{"reason"})

	FleetSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gateway_fleet_size",
		Help: "Number of nodes in the fleet at the start of the last sweep",
	})

	WorkloadsProvisionedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_workload_provisioned_total",
		Help: "Total number of workload provisioning attempts",
	}, []string{"workload_type", "result"})
)
