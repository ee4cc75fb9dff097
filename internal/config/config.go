package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	ServiceName       string `env:"SERVICE_NAME" envDefault:"lws-gateway"`
	DatabaseURL       string `env:"DATABASE_URL"`
	HTTPListenAddr    string `env:"HTTP_LISTEN_ADDR" envDefault:":8090"`
	MetricsListenAddr string `env:"METRICS_LISTEN_ADDR"`
	LogLevel          string `env:"LOG_LEVEL" envDefault:"info"`
	// KubeConfigPath points at a kubeconfig file. Empty means in-cluster.
	KubeConfigPath     string `env:"KUBECONFIG"`
	ShellWorkloadImage string `env:"SHELL_WORKLOAD_IMAGE" envDefault:"kangdroid/multiarch-sshd"`
	// HealthCheckInterval is the period between node fleet sweeps.
	HealthCheckInterval time.Duration `env:"HEALTH_CHECK_INTERVAL" envDefault:"1m"`
	NodeRequestTimeout  time.Duration `env:"NODE_REQUEST_TIMEOUT" envDefault:"10s"`
	AdminToken          string        `env:"ADMIN_TOKEN"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return &cfg, nil
}

// Validate checks that every key the given service needs is present.
func (c *Config) Validate(service string) error {
	var missing []string

	switch service {
	case "gateway":
		if c.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
		if c.HTTPListenAddr == "" {
			missing = append(missing, "HTTP_LISTEN_ADDR")
		}
		if c.AdminToken == "" {
			missing = append(missing, "ADMIN_TOKEN")
		}
		if c.ShellWorkloadImage == "" {
			missing = append(missing, "SHELL_WORKLOAD_IMAGE")
		}
	case "migrate":
		if c.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}

	if service == "gateway" {
		if c.HealthCheckInterval <= 0 {
			return fmt.Errorf("HEALTH_CHECK_INTERVAL must be positive (got %s)", c.HealthCheckInterval)
		}
		if c.NodeRequestTimeout <= 0 {
			return fmt.Errorf("NODE_REQUEST_TIMEOUT must be positive (got %s)", c.NodeRequestTimeout)
		}
	}

	return nil
}
