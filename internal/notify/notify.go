// Package notify runs an external hook command when an assessment
// completes.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"github.com/ayusman/armline/internal/assess"
)

// Runner executes the completion hook with timeout support. The session
// summary is passed to the command as JSON on stdin.
type Runner struct {
	command string
	timeout time.Duration
}

// NewRunner creates a Runner for the given shell command. An empty command
// disables notification.
func NewRunner(command string, timeout time.Duration) *Runner {
	return &Runner{
		command: command,
		timeout: timeout,
	}
}

// Notify runs the hook with the final session status. It is a no-op when
// no command is configured.
func (r *Runner) Notify(status assess.Status) error {
	if r.command == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", r.command)

	payload, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	cmd.Stdin = bytes.NewReader(payload)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err = cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("completion hook timeout after %s", r.timeout)
	}

	if err != nil {
		if stderr.Len() > 0 {
			return fmt.Errorf("completion hook failed: %w, stderr: %s", err, stderr.String())
		}
		return fmt.Errorf("completion hook failed: %w", err)
	}

	return nil
}
