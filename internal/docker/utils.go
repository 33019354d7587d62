package docker

import (
	"os"
	"path/filepath"
	"strings"
)

// ---- FS / shell helpers ----

func absOr(p, fallback string) string {
	if a, err := filepath.Abs(p); err == nil {
		return a
	}
	return fallback
}

func shellQuoteArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		if a == "" || strings.ContainsAny(a, " \t\n\"'`$\\*?[]{}()<>|&;") {
			a = "'" + strings.ReplaceAll(a, "'", `'\''`) + "'"
		}
		quoted[i] = a
	}
	return strings.Join(quoted, " ")
}

// ---- Env / redaction ----

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func redactBuildArgs(args []string) []string {
	sus := func(k string) bool {
		k = strings.ToUpper(k)
		return strings.Contains(k, "PASSWORD") ||
			strings.Contains(k, "TOKEN") ||
			strings.Contains(k, "SECRET") ||
			k == "CI_JOB_TOKEN" ||
			k == "DOCKER_AUTH_CONFIG"
	}
	out := make([]string, len(args))
	copy(out, args)
	for i := 0; i < len(out)-1; i++ {
		if out[i] == "--build-arg" {
			kv := out[i+1]
			if eq := strings.IndexByte(kv, '='); eq > 0 {
				key := kv[:eq]
				val := kv[eq+1:]
				if sus(key) && val != "" {
					out[i+1] = key + "=REDACTED"
				}
			}
		}
	}
	return out
}

// dedupRefs preserves insertion order.
func dedupRefs(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
