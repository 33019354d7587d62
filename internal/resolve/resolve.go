// Package resolve turns the triggering git ref into a deployment decision.
//
// The resolver is the first thing a pipeline run executes: it classifies the
// ref (release tag vs branch), picks the environment, formats the version
// string used as the primary image tag, and selects the registry/proxy
// endpoints for that environment. Everything downstream consumes its output
// read-only; the resolution itself is pure and has no I/O.
package resolve

import (
	"fmt"
	"strings"

	"shipci/internal/config"
)

// Environment is the deployment target classification.
type Environment string

const (
	Staging    Environment = "staging"
	Production Environment = "production"
)

// ResolvedEnvironment is the single source of truth for a pipeline run.
// Created once by Resolver.Resolve, never mutated afterwards; concurrent
// readers (one per matrix service) need no coordination.
type ResolvedEnvironment struct {
	Environment  Environment
	Version      string
	Registry     string
	ProxyURL     string
	DockerMirror string

	// DepsImageTag is the fully qualified tag of the auxiliary dependency
	// image, set only when the run asked for one. The resolver derives the
	// tag; building and pushing it is the docker layer's job.
	DepsImageTag string
}

// Resolver resolves references against a fixed endpoint table for one
// image repository. Safe for concurrent use.
type Resolver struct {
	Endpoints       config.Endpoints
	ImageRepository string

	// BuildDeps requests derivation of DepsImageTag.
	BuildDeps bool
}

// Resolve classifies the reference and produces the run's environment.
//
// A release tag ("v1.2.3") resolves to production with the tag name kept
// verbatim as the version. Any other ref resolves to staging with
// "<sanitized-branch>-<shortSHA>" as the version. The mapping is total and
// deterministic; the only failures are input errors.
func (r Resolver) Resolve(reference, shortSHA string) (ResolvedEnvironment, error) {
	if strings.TrimSpace(r.ImageRepository) == "" {
		return ResolvedEnvironment{}, fmt.Errorf("image repository is empty")
	}

	ref, err := ClassifyRef(reference)
	if err != nil {
		return ResolvedEnvironment{}, err
	}

	var resolved ResolvedEnvironment
	resolved.DockerMirror = r.Endpoints.DockerMirror

	switch ref.Kind {
	case RefTag:
		resolved.Environment = Production
		resolved.Version = ref.Name
		resolved.Registry = r.Endpoints.Production.Registry
		resolved.ProxyURL = r.Endpoints.Production.ProxyURL
	case RefBranch:
		if strings.TrimSpace(shortSHA) == "" {
			return ResolvedEnvironment{}, fmt.Errorf("short commit SHA is empty for branch ref %q", ref.Name)
		}
		resolved.Environment = Staging
		resolved.Version = SanitizeBranch(ref.Name) + "-" + shortSHA
		resolved.Registry = r.Endpoints.Staging.Registry
		resolved.ProxyURL = r.Endpoints.Staging.ProxyURL
	}

	if r.BuildDeps {
		resolved.DepsImageTag = fmt.Sprintf("%s/%s/deps:%s",
			resolved.Registry, r.ImageRepository, resolved.Version)
	}

	return resolved, nil
}
