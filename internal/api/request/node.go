package request

type EnrollNode struct {
	NodeURL string `json:"node_url" validate:"required,http_url"`
	NodeKey string `json:"node_key" validate:"required"`
}
