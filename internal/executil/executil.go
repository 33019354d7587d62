// internal/executil/executil.go
package executil

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"
)

// RunCMD executes the given command with inherited stdout/stderr.
func RunCMD(name string, args ...string) error {
	return runCore(false, name, args...)
}

// DryRunCMD logs the command that would be run without executing.
func DryRunCMD(name string, args ...string) error {
	return runCore(true, name, args...)
}

// ----------------------------------------------------------------

func runCore(dry bool, name string, args ...string) error {
	fullCmd := name + " " + shellQuoteArgs(args)

	if dry {
		log.Infof("[DRY RUN] %s", fullCmd)
		return nil
	}

	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()

	log.Infof("Running: %s", fullCmd)
	if err := cmd.Run(); err != nil {
		// include exit status if available
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if status, ok := exitErr.Sys().(syscall.WaitStatus); ok {
				return fmt.Errorf("command failed (exit=%d): %s: %w", status.ExitStatus(), fullCmd, err)
			}
		}
		return fmt.Errorf("failed to run command: %s: %w", fullCmd, err)
	}
	return nil
}

// shellQuoteArgs returns a printable, shell-safe representation of args.
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
