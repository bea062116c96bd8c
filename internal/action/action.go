// Package action invokes the external plugin-management executable for
// install and uninstall. The executable's contract: run with an action verb
// and a plugin identifier, exit zero on success, say why on stderr otherwise.
package action

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"plugdeck/internal/log"
)

// Verb is a mutating action the executable understands.
type Verb string

const (
	Install   Verb = "install"
	Uninstall Verb = "uninstall"
)

// Outcome reports how an invocation went. A failed launch is an Outcome,
// not an error: the interactive session must keep running either way.
type Outcome struct {
	Success    bool
	Diagnostic string
}

// DefaultExecutable is the plugin-management program looked up on PATH when
// no override is configured.
const DefaultExecutable = "claude-plugin"

// Runner runs plugin actions through the external executable. The caller
// (the interaction state machine) guarantees at most one invocation is in
// flight at a time; Runner itself does no locking.
type Runner struct {
	Executable string
}

// NewRunner creates a runner for the given executable, falling back to
// DefaultExecutable when empty.
func NewRunner(executable string) *Runner {
	if executable == "" {
		executable = DefaultExecutable
	}
	return &Runner{Executable: executable}
}

// Run invokes the executable with the verb and plugin id as separate argv
// entries; nothing is shell-interpreted, so plugin ids containing shell
// metacharacters cannot inject commands. No timeout is imposed: the process
// runs to completion or process-level error.
func (r *Runner) Run(ctx context.Context, verb Verb, pluginID string) Outcome {
	start := time.Now()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Executable, string(verb), pluginID)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	log.Logger().Debug("plugin action finished",
		zap.String("verb", string(verb)),
		zap.String("plugin", pluginID),
		zap.Duration("took", time.Since(start)),
		zap.Error(err))

	if err == nil {
		return Outcome{Success: true}
	}

	if _, ok := err.(*exec.ExitError); !ok {
		// Could not be started at all: not found, permission denied.
		return Outcome{Diagnostic: fmt.Sprintf("failed to run %s: %v", r.Executable, err)}
	}

	diag := strings.TrimSpace(stderr.String())
	if diag == "" {
		diag = strings.TrimSpace(stdout.String())
	}
	if diag == "" {
		diag = err.Error()
	}
	return Outcome{Diagnostic: diag}
}
