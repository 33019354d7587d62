// Package config holds the static environment/endpoint table.
//
// The table is fixed infrastructure configuration: which registry and which
// outbound proxy each deployment environment uses, plus the single docker
// mirror shared by both. It is loaded once at process start and treated as
// immutable afterwards; nothing in the pipeline mutates it.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Endpoint is the registry/proxy pair for one deployment environment.
type Endpoint struct {
	Registry string `mapstructure:"registry"`
	ProxyURL string `mapstructure:"proxy_url"`
}

// Endpoints is the full endpoint table consumed by the resolver.
type Endpoints struct {
	Staging      Endpoint `mapstructure:"staging"`
	Production   Endpoint `mapstructure:"production"`
	DockerMirror string   `mapstructure:"docker_mirror"`
}

// Built-in defaults. Overridable per installation via SHIPCI_* environment
// variables (e.g. SHIPCI_STAGING_REGISTRY), never per pipeline run.
const (
	defaultStagingRegistry    = "nexus-docker-hosted.stg.example.com"
	defaultStagingProxy       = "staging-proxy:3128"
	defaultProductionRegistry = "nexus-docker-hosted.prd.example.com"
	defaultProductionProxy    = "production-proxy:3128"
	defaultDockerMirror       = "mirror.example.com"
)

// Load builds the endpoint table from defaults and environment overrides.
func Load() (Endpoints, error) {
	v := viper.New()

	v.SetDefault("staging.registry", defaultStagingRegistry)
	v.SetDefault("staging.proxy_url", defaultStagingProxy)
	v.SetDefault("production.registry", defaultProductionRegistry)
	v.SetDefault("production.proxy_url", defaultProductionProxy)
	v.SetDefault("docker_mirror", defaultDockerMirror)

	v.SetEnvPrefix("SHIPCI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var eps Endpoints
	if err := v.Unmarshal(&eps); err != nil {
		return Endpoints{}, fmt.Errorf("failed to unmarshal endpoint table: %w", err)
	}
	if err := eps.validate(); err != nil {
		return Endpoints{}, err
	}
	return eps, nil
}

func (e Endpoints) validate() error {
	for _, check := range []struct{ name, val string }{
		{"staging.registry", e.Staging.Registry},
		{"staging.proxy_url", e.Staging.ProxyURL},
		{"production.registry", e.Production.Registry},
		{"production.proxy_url", e.Production.ProxyURL},
		{"docker_mirror", e.DockerMirror},
	} {
		if strings.TrimSpace(check.val) == "" {
			return fmt.Errorf("endpoint table: %s is empty", check.name)
		}
	}
	return nil
}
