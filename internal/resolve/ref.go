package resolve

import (
	"fmt"
	"strings"

	"shipci/internal/version"
)

// RefKind discriminates the two shapes a triggering git ref can take.
type RefKind string

const (
	RefTag    RefKind = "tag"
	RefBranch RefKind = "branch"
)

// Ref is the classified version-control reference that triggered the run.
type Ref struct {
	Kind RefKind
	Name string
}

func (r Ref) String() string {
	return fmt.Sprintf("%s(%s)", r.Kind, r.Name)
}

// ClassifyRef decides whether a ref name is a release tag or a branch.
// Only refs matching the release convention "v<major>.<minor>.<patch>"
// count as tags; a tag pushed outside that convention (e.g. "v1.0.0-rc1",
// "nightly") behaves exactly like a branch and never targets production.
func ClassifyRef(name string) (Ref, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Ref{}, fmt.Errorf("reference is empty")
	}
	if version.IsReleaseTag(name) {
		return Ref{Kind: RefTag, Name: name}, nil
	}
	return Ref{Kind: RefBranch, Name: name}, nil
}

// SanitizeBranch maps a branch name onto the docker-tag-safe alphabet.
// Every rune outside [A-Za-z0-9._-] becomes '-' (branch names routinely
// carry '/'). Idempotent: sanitizing twice yields the same string.
func SanitizeBranch(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			return r
		default:
			return '-'
		}
	}, s)
}
