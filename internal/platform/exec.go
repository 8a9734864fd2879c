package platform

import (
	"context"
	"fmt"
	"os/exec"
)

// ExecLauncher starts the tool as a child process. With Wait it blocks until
// the process exits; otherwise it returns once the process has started.
type ExecLauncher struct {
	Wait bool
}

func (l *ExecLauncher) Launch(ctx context.Context, exe string, args ...string) error {
	if !l.Wait {
		// Detached: the tool outlives this command, so no context here.
		cmd := exec.Command(exe, args...)
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("failed to start %s: %w", exe, err)
		}
		return cmd.Process.Release()
	}
	cmd := exec.CommandContext(ctx, exe, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s failed: %w: %s", exe, err, out)
	}
	return nil
}
