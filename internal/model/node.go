package model

// Node is a registered fleet member. The allocation and usage fields are
// zeroed at enrollment and owned by a scheduler outside the gateway.
type Node struct {
	ID           string  `json:"id" db:"id"`
	URL          string  `json:"url" db:"url"`
	Key          string  `json:"-" db:"key"`
	Nickname     string  `json:"nickname" db:"nickname"`
	MaxCPU       int     `json:"max_cpu" db:"max_cpu"`
	MaxRAM       int     `json:"max_ram" db:"max_ram"`
	AllocatedCPU int     `json:"allocated_cpu" db:"allocated_cpu"`
	AllocatedRAM int     `json:"allocated_ram" db:"allocated_ram"`
	CPUUsage     float64 `json:"cpu_usage" db:"cpu_usage"`
	RAMUsage     float64 `json:"ram_usage" db:"ram_usage"`
}

// NodeConfiguration is the capacity metadata a node reports from its
// management endpoint during enrollment.
type NodeConfiguration struct {
	NodeKey        string `json:"nodeKey"`
	NodeNickName   string `json:"nodeNickName"`
	NodeMaximumCPU int    `json:"nodeMaximumCpu"`
	NodeMaximumRAM int    `json:"nodeMaximumRam"`
}

// IsZero reports whether no metadata field was populated.
func (c NodeConfiguration) IsZero() bool {
	return c == NodeConfiguration{}
}
