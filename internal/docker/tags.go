// internal/docker/tags.go
//
// The tag builder converts a resolved environment + service name into the
// coordinate set to build and push. Policy is fixed: every service gets
// exactly two tags, the run's version and "latest", both against the
// environment's registry. This is the "brains" of image naming; the runner
// in build.go/push.go just consumes the refs.

package docker

import (
	"fmt"
	"strings"

	"github.com/distribution/reference"

	"shipci/internal/resolve"
)

// BuildTags produces the two coordinates for one service:
//
//	<registry>/<imageRepository>/<service>:<version>
//	<registry>/<imageRepository>/<service>:latest
//
// Every coordinate is checked against the canonical image-reference grammar
// before being returned, so a malformed repository or branch-derived tag
// fails here instead of inside docker build.
func BuildTags(resolved resolve.ResolvedEnvironment, imageRepository, serviceName string) ([]ImageCoordinate, error) {
	imageRepository = strings.Trim(strings.TrimSpace(imageRepository), "/")
	serviceName = strings.TrimSpace(serviceName)

	if imageRepository == "" {
		return nil, fmt.Errorf("image repository is empty")
	}
	if serviceName == "" {
		return nil, fmt.Errorf("service name is empty")
	}
	if resolved.Registry == "" || resolved.Version == "" {
		return nil, fmt.Errorf("resolved environment is incomplete (registry=%q, version=%q)",
			resolved.Registry, resolved.Version)
	}

	coords := []ImageCoordinate{
		{Registry: resolved.Registry, Repository: imageRepository, Service: serviceName, Tag: resolved.Version},
		{Registry: resolved.Registry, Repository: imageRepository, Service: serviceName, Tag: "latest"},
	}

	for _, c := range coords {
		if err := validateCoordinate(c); err != nil {
			return nil, err
		}
	}
	return coords, nil
}

// validateCoordinate parses the rendered reference with the distribution
// grammar and insists it carries an explicit tag.
func validateCoordinate(c ImageCoordinate) error {
	named, err := reference.ParseNamed(c.String())
	if err != nil {
		return fmt.Errorf("invalid image coordinate %q: %w", c.String(), err)
	}
	if _, ok := named.(reference.Tagged); !ok {
		return fmt.Errorf("invalid image coordinate %q: missing tag", c.String())
	}
	return nil
}

// Refs renders coordinates to the plain strings the docker CLI takes.
func Refs(coords []ImageCoordinate) []string {
	out := make([]string, 0, len(coords))
	for _, c := range coords {
		out = append(out, c.String())
	}
	return dedupRefs(out)
}
