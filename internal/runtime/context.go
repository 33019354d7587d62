package runtime

import (
	"fmt"
	"os"
	"strings"

	"shipci/internal/resolve"
)

// Context captures the relevant CI/CD environment state for one pipeline run.
// This assumes execution inside GitLab-style CI (CI_* variables), with
// SHIPCI_* overrides for everything that matters.
type Context struct {
	RefName     string // branch name or tag name that triggered the run
	Tag         string // set only on tag pipelines
	SHA         string
	ShortSHA    string
	ProjectPath string

	// ImageRepository is the registry-relative repository all of this
	// project's images live under, e.g. "platform/checkout".
	ImageRepository string

	// Services is the build matrix: one image per service name.
	Services []string

	// Dependency image handling
	BuildDeps      bool
	DepsDockerfile string

	// Build inputs
	Dockerfile    string
	DockerfileDir string
	ContextPath   string

	// Run switches
	Push    bool
	Pull    bool
	NoCache bool
	DryRun  bool
}

// LoadContext constructs a run Context by reading CI/CD environment variables.
func LoadContext() (Context, error) {
	tag := strings.TrimSpace(os.Getenv("CI_COMMIT_TAG"))

	ref := firstNonEmpty(
		tag,
		os.Getenv("CI_COMMIT_BRANCH"),
		os.Getenv("CI_COMMIT_REF_NAME"),
	)
	if ref == "" {
		return Context{}, fmt.Errorf("no triggering ref found (CI_COMMIT_TAG / CI_COMMIT_BRANCH / CI_COMMIT_REF_NAME all empty)")
	}

	// Ensure ShortSHA is populated (fallback if CI_COMMIT_SHORT_SHA is missing)
	sha := os.Getenv("CI_COMMIT_SHA")
	short := os.Getenv("CI_COMMIT_SHORT_SHA")
	if short == "" && len(sha) >= 8 {
		short = sha[:8]
	}

	repo := resolveImageRepository()
	if repo == "" {
		return Context{}, fmt.Errorf("image repository is empty (set SHIPCI_IMAGE_REPOSITORY or CI_PROJECT_PATH)")
	}

	ctx := Context{
		RefName:         ref,
		Tag:             tag,
		SHA:             sha,
		ShortSHA:        short,
		ProjectPath:     os.Getenv("CI_PROJECT_PATH"),
		ImageRepository: repo,
		Services:        splitServices(os.Getenv("SHIPCI_SERVICES")),
		BuildDeps:       os.Getenv("SHIPCI_BUILD_DEPS") == "true",
		DepsDockerfile:  getenv("SHIPCI_DEPS_DOCKERFILE", "deps/Dockerfile"),
		Dockerfile:      getenv("SHIPCI_DOCKERFILE", "Dockerfile"),
		DockerfileDir:   os.Getenv("SHIPCI_DOCKERFILE_DIR"),
		ContextPath:     getenv("SHIPCI_BUILD_CONTEXT", "."),
		Push:            os.Getenv("SHIPCI_PUSH") != "false",
		Pull:            os.Getenv("SHIPCI_PULL") == "true",
		NoCache:         os.Getenv("SHIPCI_NOCACHE") == "true",
		DryRun:          os.Getenv("SHIPCI_DRY_RUN") == "true",
	}

	// Without an explicit matrix, build a single image named after the last
	// repository segment.
	if len(ctx.Services) == 0 {
		parts := strings.Split(repo, "/")
		ctx.Services = []string{parts[len(parts)-1]}
	}

	return ctx, nil
}

// Reference returns the git pointer the resolver classifies: the tag name on
// tag pipelines, the branch name otherwise.
func (c Context) Reference() string {
	if c.Tag != "" {
		return c.Tag
	}
	return c.RefName
}

// resolveImageRepository picks the image repository:
// 1. If SHIPCI_IMAGE_REPOSITORY is set, use that.
// 2. Otherwise fall back to CI_PROJECT_PATH (group/project).
func resolveImageRepository() string {
	if v := strings.TrimSpace(os.Getenv("SHIPCI_IMAGE_REPOSITORY")); v != "" {
		return strings.Trim(v, "/")
	}
	return strings.Trim(strings.TrimSpace(os.Getenv("CI_PROJECT_PATH")), "/")
}

func splitServices(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// PrintSummary emits a scannable report of the run context and the
// environment resolution for the CI job log.
func (c Context) PrintSummary(resolved resolve.ResolvedEnvironment) {
	fmt.Println("CI/CD Environment Summary")
	fmt.Println("--------------------------")

	fmt.Println("Ref / Commit")
	fmt.Printf("  Reference             : %s\n", c.Reference())
	if c.Tag != "" {
		fmt.Printf("  Tag                   : %s\n", c.Tag)
	}
	fmt.Printf("  Commit SHA            : %s\n", formatOrNone(c.SHA))
	fmt.Printf("  Commit Short SHA      : %s\n", formatOrNone(c.ShortSHA))
	fmt.Println()

	fmt.Println("Project")
	fmt.Printf("  Project Path          : %s\n", formatOrNone(c.ProjectPath))
	fmt.Printf("  Image Repository      : %s\n", c.ImageRepository)
	fmt.Printf("  Services              : %s\n", strings.Join(c.Services, ", "))
	fmt.Println()

	fmt.Println("Resolution")
	fmt.Printf("  Environment           : %s\n", resolved.Environment)
	fmt.Printf("  Version               : %s\n", resolved.Version)
	fmt.Printf("  Registry              : %s\n", resolved.Registry)
	fmt.Printf("  Proxy                 : %s\n", resolved.ProxyURL)
	fmt.Printf("  Docker Mirror         : %s\n", resolved.DockerMirror)
	if resolved.DepsImageTag != "" {
		fmt.Printf("  Dependency Image      : %s\n", resolved.DepsImageTag)
	}
	fmt.Println()

	fmt.Println("Derived")
	fmt.Printf("  Build Dependencies    : %s\n", emoji(c.BuildDeps))
	fmt.Printf("  Push Enabled          : %s\n", emoji(c.Push))
	fmt.Printf("  Dry Run Mode          : %s\n", emoji(c.DryRun))
	fmt.Println()
}
