package request

type CreateDeployment struct {
	WorkloadType string `json:"workload_type" validate:"required,workload_type"`
}
