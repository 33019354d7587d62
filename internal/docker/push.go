// internal/docker/push.go
//
// Pushing built images to the environment's registry.
// - Reads registry credentials from the standard CI variables
//   (CI_REGISTRY_USER / CI_REGISTRY_PASSWORD, falling back to CI_JOB_TOKEN).
// - Logs in, pushes each tag, logs out.
// - Push is all-or-nothing per service: if a ref fails after an earlier one
//   already landed, the error names both. Nothing is rolled back; the
//   half-published state is surfaced for the caller to deal with.
// - Respects DryRun mode: prints commands instead of executing.

package docker

import (
	"errors"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"shipci/internal/executil"
)

// PushImage logs into the registry hosting opts.FullRefs and pushes every ref.
// All refs in one call are assumed to live on the same registry, which holds
// by construction: BuildTags pins them all to the resolved environment.
func PushImage(opts *BuildOptions) error {
	if opts == nil {
		return errors.New("PushImage: opts is nil")
	}
	refs := dedupRefs(opts.FullRefs)
	if len(refs) == 0 {
		return errors.New("PushImage: no refs to push (FullRefs empty)")
	}

	registry := registryOf(refs[0])
	user, password := credsFromEnv()
	if user == "" {
		return fmt.Errorf("missing CI_REGISTRY_USER")
	}
	if password == "" {
		return fmt.Errorf("missing CI_REGISTRY_PASSWORD or CI_JOB_TOKEN")
	}

	if err := login(registry, user, password, opts.DryRun); err != nil {
		return fmt.Errorf("docker login failed: %w", err)
	}
	if !opts.DryRun {
		// Only log out if we actually logged in
		defer logout(registry)
	}

	var pushed []string
	for _, r := range refs {
		if err := pushRef(r, opts.DryRun); err != nil {
			if len(pushed) > 0 {
				return fmt.Errorf("push failed for %s after %s already pushed (no rollback): %w",
					r, strings.Join(pushed, ", "), err)
			}
			return fmt.Errorf("push failed for %s: %w", r, err)
		}
		pushed = append(pushed, r)
	}
	return nil
}

// registryOf extracts the registry hostname from a fully qualified ref.
func registryOf(ref string) string {
	if i := strings.IndexByte(ref, '/'); i > 0 {
		return ref[:i]
	}
	return ref
}

// credsFromEnv pulls user/password from the standard CI variables.
func credsFromEnv() (user, password string) {
	user = os.Getenv("CI_REGISTRY_USER")
	password = os.Getenv("CI_REGISTRY_PASSWORD")
	if password == "" {
		password = os.Getenv("CI_JOB_TOKEN")
	}
	return
}

// login runs a docker login (masked if dry-run).
func login(registry, user, password string, dry bool) error {
	if dry {
		return executil.DryRunCMD("docker", "login", "-u", user, "-p", "[REDACTED]", registry)
	}
	return executil.RunCMD("docker", "login", "-u", user, "-p", password, registry)
}

// logout runs docker logout, but doesn't fail the pipeline if it errors.
func logout(registry string) {
	if err := executil.RunCMD("docker", "logout", registry); err != nil {
		log.Warnf("docker logout failed: %v", err)
	}
}

// pushRef pushes a single tag (respects dry-run).
func pushRef(ref string, dry bool) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil
	}
	if dry {
		return executil.DryRunCMD("docker", "push", ref)
	}
	log.Infof("Pushing image: %s", ref)
	return executil.RunCMD("docker", "push", ref)
}
