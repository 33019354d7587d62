// shipci main entrypoint
//
// This binary is meant to run inside CI as a single build stage. It reads the
// triggering ref from the environment, resolves the deployment environment
// (staging vs production) and the version string, then builds and pushes one
// image per service in the matrix, two tags each (version and latest),
// against the environment's registry. Dependency images, when requested, are
// built first and handed to the service builds as a build arg.
//
// Keep this file simple: load config + context, resolve, print summary,
// deps image, per-service build/push. All the heavy lifting stays internal.

package main

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"shipci/internal/config"
	"shipci/internal/docker"
	"shipci/internal/resolve"
	"shipci/internal/runtime"
)

func main() {
	// Local overrides for dev runs; harmless in CI.
	_ = godotenv.Load("environments/local.env")

	if os.Getenv("SHIPCI_LOG_JSON") == "true" {
		log.SetFormatter(&log.JSONFormatter{})
	}

	// 1) Static endpoint table (registry/proxy per environment, mirror)
	endpoints, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load endpoint config: %v", err)
	}

	// 2) CI/CD runtime context
	ctx, err := runtime.LoadContext()
	if err != nil {
		log.Fatalf("failed to load context: %v", err)
	}

	// 3) Resolve environment + version from the triggering ref.
	// Any input error dies here, before a single docker command runs.
	resolver := resolve.Resolver{
		Endpoints:       endpoints,
		ImageRepository: ctx.ImageRepository,
		BuildDeps:       ctx.BuildDeps,
	}
	resolved, err := resolver.Resolve(ctx.Reference(), ctx.ShortSHA)
	if err != nil {
		log.Fatalf("failed to resolve environment: %v", err)
	}

	// 4) Print summary
	ctx.PrintSummary(resolved)
	log.Infof("[shipci] resolved environment: %s (version %s)", resolved.Environment, resolved.Version)

	// 5) Dependency image first, so service builds can consume DEPS_IMAGE.
	if ctx.BuildDeps {
		opts, err := docker.DependencyBuildOptions(&ctx, resolved)
		if err != nil {
			log.Fatalf("failed to create dependency build options: %v", err)
		}
		if err := docker.BuildAndPush(opts); err != nil {
			log.Fatalf("dependency image build/push failed: %v", err)
		}
	}

	// 6) One build per service in the matrix.
	for _, service := range ctx.Services {
		opts, err := docker.ServiceBuildOptions(&ctx, resolved, service)
		if err != nil {
			log.Fatalf("failed to create build options for %s: %v", service, err)
		}

		log.Infof("[docker] service=%s refs: %v", service, opts.FullRefs)
		log.Infof("[docker] push=%v (SHIPCI_PUSH=%q, dry_run=%v)",
			opts.Push, os.Getenv("SHIPCI_PUSH"), opts.DryRun)

		if err := docker.BuildAndPush(opts); err != nil {
			log.Fatalf("build/push failed for %s: %v", service, err)
		}
	}
}
