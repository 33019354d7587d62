// internal/docker/options.go
//
// This layer adapts the runtime context + resolved environment into concrete
// BuildOptions for one service of the matrix. It calls the tag builder for
// the coordinate set and assembles the build args every Dockerfile receives:
// commit metadata, the environment's proxy and mirror, and the dependency
// image tag when one was derived.
//
// Keep it lean: validation, tag builder call, build args, return.

package docker

import (
	"fmt"
	"path/filepath"

	"shipci/internal/resolve"
	"shipci/internal/runtime"
)

// ServiceBuildOptions produces fully-populated BuildOptions for one service.
func ServiceBuildOptions(c *runtime.Context, resolved resolve.ResolvedEnvironment, service string) (*BuildOptions, error) {
	if c == nil {
		return nil, fmt.Errorf("nil CI context")
	}

	coords, err := BuildTags(resolved, c.ImageRepository, service)
	if err != nil {
		return nil, err
	}

	// Per-service Dockerfile layout (services/<name>/Dockerfile) when a
	// dockerfile dir is configured; single Dockerfile at the root otherwise.
	df := c.Dockerfile
	ctxPath := c.ContextPath
	if c.DockerfileDir != "" {
		df = filepath.Join(c.DockerfileDir, service, "Dockerfile")
		ctxPath = filepath.Join(c.DockerfileDir, service)
	}

	args := [][2]string{
		{"GIT_SHA", c.SHA},
		{"GIT_SHORT_SHA", c.ShortSHA},
		{"CI_PROJECT_PATH", c.ProjectPath},
		{"SERVICE_NAME", service},
		{"VERSION", resolved.Version},
		{"HTTP_PROXY", resolved.ProxyURL},
		{"HTTPS_PROXY", resolved.ProxyURL},
		{"DOCKER_MIRROR", resolved.DockerMirror},
	}
	if resolved.DepsImageTag != "" {
		// Pure passthrough: the dependency image tag is consumed by the
		// Dockerfile (FROM ${DEPS_IMAGE}), never rewritten here.
		args = append(args, [2]string{"DEPS_IMAGE", resolved.DepsImageTag})
	}

	return &BuildOptions{
		Dockerfile:  df,
		ContextPath: ctxPath,
		BuildArgs:   args,
		FullRefs:    Refs(coords),
		Pull:        c.Pull,
		NoCache:     c.NoCache,
		Push:        c.Push,
		DryRun:      c.DryRun,
	}, nil
}

// DependencyBuildOptions produces BuildOptions for the auxiliary dependency
// image. The single ref is the resolver-derived deps tag; proxy and mirror
// args match the service builds so the deps image resolves upstreams the
// same way.
func DependencyBuildOptions(c *runtime.Context, resolved resolve.ResolvedEnvironment) (*BuildOptions, error) {
	if c == nil {
		return nil, fmt.Errorf("nil CI context")
	}
	if resolved.DepsImageTag == "" {
		return nil, fmt.Errorf("no dependency image tag resolved (BuildDeps not requested)")
	}

	return &BuildOptions{
		Dockerfile:  c.DepsDockerfile,
		ContextPath: c.ContextPath,
		BuildArgs: [][2]string{
			{"GIT_SHA", c.SHA},
			{"VERSION", resolved.Version},
			{"HTTP_PROXY", resolved.ProxyURL},
			{"HTTPS_PROXY", resolved.ProxyURL},
			{"DOCKER_MIRROR", resolved.DockerMirror},
		},
		FullRefs: []string{resolved.DepsImageTag},
		Pull:     c.Pull,
		NoCache:  c.NoCache,
		Push:     c.Push,
		DryRun:   c.DryRun,
	}, nil
}
