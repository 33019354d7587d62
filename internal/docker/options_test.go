package docker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipci/internal/runtime"
)

func baseContext() runtime.Context {
	return runtime.Context{
		RefName:         "main",
		SHA:             "a1b2c3d4e5f60718",
		ShortSHA:        "a1b2c3d",
		ProjectPath:     "platform/checkout",
		ImageRepository: "platform/checkout",
		Services:        []string{"api", "worker"},
		Dockerfile:      "Dockerfile",
		ContextPath:     ".",
		Push:            true,
	}
}

func buildArg(t *testing.T, opts *BuildOptions, key string) string {
	t.Helper()
	for _, kv := range opts.BuildArgs {
		if kv[0] == key {
			return kv[1]
		}
	}
	return ""
}

func TestServiceBuildOptions(t *testing.T) {
	ctx := baseContext()
	resolved := stagingEnv()

	opts, err := ServiceBuildOptions(&ctx, resolved, "api")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"nexus-docker-hosted.stg.example.com/platform/checkout/api:main-a1b2c3d",
		"nexus-docker-hosted.stg.example.com/platform/checkout/api:latest",
	}, opts.FullRefs)
	assert.True(t, opts.Push)
	assert.Equal(t, "Dockerfile", opts.Dockerfile)

	assert.Equal(t, "staging-proxy:3128", buildArg(t, opts, "HTTP_PROXY"))
	assert.Equal(t, "staging-proxy:3128", buildArg(t, opts, "HTTPS_PROXY"))
	assert.Equal(t, "mirror.example.com", buildArg(t, opts, "DOCKER_MIRROR"))
	assert.Equal(t, "main-a1b2c3d", buildArg(t, opts, "VERSION"))
	assert.Equal(t, "api", buildArg(t, opts, "SERVICE_NAME"))
	assert.Empty(t, buildArg(t, opts, "DEPS_IMAGE"))
}

func TestServiceBuildOptionsDockerfileDir(t *testing.T) {
	ctx := baseContext()
	ctx.DockerfileDir = "services"

	opts, err := ServiceBuildOptions(&ctx, stagingEnv(), "worker")
	require.NoError(t, err)

	assert.Equal(t, "services/worker/Dockerfile", opts.Dockerfile)
	assert.Equal(t, "services/worker", opts.ContextPath)
}

func TestServiceBuildOptionsDepsPassthrough(t *testing.T) {
	ctx := baseContext()
	resolved := stagingEnv()
	resolved.DepsImageTag = "nexus-docker-hosted.stg.example.com/platform/checkout/deps:main-a1b2c3d"

	opts, err := ServiceBuildOptions(&ctx, resolved, "api")
	require.NoError(t, err)

	// passed through unmodified, never rewritten
	assert.Equal(t, resolved.DepsImageTag, buildArg(t, opts, "DEPS_IMAGE"))
}

func TestDependencyBuildOptions(t *testing.T) {
	ctx := baseContext()
	ctx.BuildDeps = true
	ctx.DepsDockerfile = "deps/Dockerfile"
	resolved := stagingEnv()
	resolved.DepsImageTag = "nexus-docker-hosted.stg.example.com/platform/checkout/deps:main-a1b2c3d"

	opts, err := DependencyBuildOptions(&ctx, resolved)
	require.NoError(t, err)

	assert.Equal(t, []string{resolved.DepsImageTag}, opts.FullRefs)
	assert.Equal(t, "deps/Dockerfile", opts.Dockerfile)
	assert.Equal(t, "staging-proxy:3128", buildArg(t, opts, "HTTP_PROXY"))
}

func TestDependencyBuildOptionsRequiresTag(t *testing.T) {
	ctx := baseContext()

	_, err := DependencyBuildOptions(&ctx, stagingEnv())
	assert.Error(t, err)
}

func TestBuildImageDryRunValidation(t *testing.T) {
	opts := &BuildOptions{DryRun: true}
	assert.Error(t, BuildImage(opts), "no refs")

	opts.FullRefs = []string{"r.example.com/org/repo/app:v1 .0"}
	assert.Error(t, BuildImage(opts), "whitespace in ref")

	opts.FullRefs = []string{"r.example.com/org/repo/app:v1.0.0"}
	assert.NoError(t, BuildImage(opts), "dry-run build prints instead of executing")
}

func TestPushImageDryRun(t *testing.T) {
	t.Setenv("CI_REGISTRY_USER", "ci")
	t.Setenv("CI_REGISTRY_PASSWORD", "secret")

	opts := &BuildOptions{
		DryRun: true,
		FullRefs: []string{
			"r.example.com/org/repo/app:v1.0.0",
			"r.example.com/org/repo/app:latest",
		},
	}
	assert.NoError(t, PushImage(opts))
}

func TestPushImageMissingCreds(t *testing.T) {
	t.Setenv("CI_REGISTRY_USER", "")
	t.Setenv("CI_REGISTRY_PASSWORD", "")
	t.Setenv("CI_JOB_TOKEN", "")

	opts := &BuildOptions{DryRun: true, FullRefs: []string{"r.example.com/org/repo/app:latest"}}
	assert.Error(t, PushImage(opts))
}
