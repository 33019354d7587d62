package docker

import "fmt"

// ImageCoordinate is one fully qualified image reference:
// <registry>/<repository>/<service>:<tag>.
type ImageCoordinate struct {
	Registry   string
	Repository string
	Service    string
	Tag        string
}

func (c ImageCoordinate) String() string {
	return fmt.Sprintf("%s/%s/%s:%s", c.Registry, c.Repository, c.Service, c.Tag)
}

// BuildOptions is everything the docker runner needs for one service build.
type BuildOptions struct {
	Dockerfile  string      // default: "Dockerfile"
	ContextPath string      // default: "."
	BuildArgs   [][2]string // KEY,VALUE (deterministic)
	Labels      [][2]string // optional

	FullRefs []string // e.g. ["reg/org/app/svc:v1.2.3","reg/org/app/svc:latest"]

	Target  string // optional multi-stage target
	Pull    bool   // docker build --pull
	NoCache bool   // docker build --no-cache
	Push    bool   // push after build
	DryRun  bool   // print only
}
