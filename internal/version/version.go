package version

import (
	"fmt"
	"strconv"
	"strings"
)

type Version struct {
	Major int
	Minor int
	Patch int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Tag returns the release-tag form, e.g. "v1.2.3".
func (v Version) Tag() string {
	return "v" + v.String()
}

// Parse parses a version string in the format "X.Y.Z"
func Parse(versionStr string) (Version, error) {
	parts := strings.Split(versionStr, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid version format: expected X.Y.Z, got %s", versionStr)
	}

	major, err := parseComponent(parts[0])
	if err != nil {
		return Version{}, fmt.Errorf("invalid major version: %w", err)
	}
	minor, err := parseComponent(parts[1])
	if err != nil {
		return Version{}, fmt.Errorf("invalid minor version: %w", err)
	}
	patch, err := parseComponent(parts[2])
	if err != nil {
		return Version{}, fmt.Errorf("invalid patch version: %w", err)
	}

	return Version{Major: major, Minor: minor, Patch: patch}, nil
}

// parseComponent accepts only plain non-negative integers. strconv.Atoi alone
// would let "+1" or "-2" through, and those are not valid tag components.
func parseComponent(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty component")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-numeric component %q", s)
		}
	}
	return strconv.Atoi(s)
}

// ParseTag parses a release tag of the exact form "v<major>.<minor>.<patch>".
// Anything else (missing prefix, a pre-release suffix like "v1.0.0-rc1",
// build metadata) is rejected; such tags are outside the release convention.
func ParseTag(tag string) (Version, error) {
	if !strings.HasPrefix(tag, "v") {
		return Version{}, fmt.Errorf("invalid release tag %q: missing v prefix", tag)
	}
	v, err := Parse(strings.TrimPrefix(tag, "v"))
	if err != nil {
		return Version{}, fmt.Errorf("invalid release tag %q: %w", tag, err)
	}
	return v, nil
}

// IsReleaseTag reports whether the ref name matches the release convention.
func IsReleaseTag(ref string) bool {
	_, err := ParseTag(ref)
	return err == nil
}

func (v Version) LessThan(other Version) bool {
	if v.Major != other.Major {
		return v.Major < other.Major
	}
	if v.Minor != other.Minor {
		return v.Minor < other.Minor
	}
	return v.Patch < other.Patch
}
