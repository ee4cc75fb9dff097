package request

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/lws/gateway/internal/model"
)

var validate = validator.New()

// tenantIDRegex admits ids whose lowercase form is a valid namespace name.
var tenantIDRegex = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9-]{0,61}[A-Za-z0-9])?$`)

var deploymentNameRegex = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,251}[a-z0-9])?$`)

func init() {
	validate.RegisterValidation("tenant_id", func(fl validator.FieldLevel) bool {
		return tenantIDRegex.MatchString(fl.Field().String())
	})
	validate.RegisterValidation("workload_type", func(fl validator.FieldLevel) bool {
		_, err := model.ParseWorkloadType(fl.Field().String())
		return err == nil
	})
}

func Decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}

// RequireTenantID checks that s is a usable tenant id.
func RequireTenantID(s string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("missing tenant id")
	}
	if !tenantIDRegex.MatchString(s) {
		return "", fmt.Errorf("invalid tenant id %q", s)
	}
	return s, nil
}

// RequireDeploymentName checks that s is a syntactically valid deployment name.
func RequireDeploymentName(s string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("missing deployment name")
	}
	if !deploymentNameRegex.MatchString(s) {
		return "", fmt.Errorf("invalid deployment name %q", s)
	}
	return s, nil
}
