package platform

import "context"

// Launcher starts the external screenshot tool.
type Launcher interface {
	// Launch runs exe with args. Implementations may return as soon as the
	// process has started.
	Launch(ctx context.Context, exe string, args ...string) error
}

// LauncherFunc adapts a function to Launcher.
type LauncherFunc func(ctx context.Context, exe string, args ...string) error

func (f LauncherFunc) Launch(ctx context.Context, exe string, args ...string) error {
	return f(ctx, exe, args...)
}
