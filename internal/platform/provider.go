package platform

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// ErrExecutableNotFound is returned when the screenshot tool cannot be located.
var ErrExecutableNotFound = errors.New("screenshot tool executable not found")

// DefaultFlag is the command-line switch that makes the tool run a macro file.
const DefaultFlag = "/macro"

// Provider bundles the launcher with where to look for the tool on this OS.
type Provider struct {
	Launcher    Launcher
	SearchPaths []string
}

// NewProvider returns a Provider for the current OS.
func NewProvider() *Provider {
	return &Provider{
		Launcher:    &ExecLauncher{},
		SearchPaths: DefaultSearchPaths(runtime.GOOS),
	}
}

// DefaultSearchPaths lists the usual install locations of the tool.
func DefaultSearchPaths(goos string) []string {
	switch goos {
	case "windows":
		return []string{
			`C:\Program Files\Greenshot\Greenshot.exe`,
			`C:\Program Files (x86)\Greenshot\Greenshot.exe`,
			`D:\Program Files\Greenshot\Greenshot.exe`,
			"Greenshot.exe",
		}
	case "darwin":
		return []string{"/Applications/Greenshot.app/Contents/MacOS/Greenshot", "greenshot"}
	default:
		return []string{"greenshot"}
	}
}

// Locate resolves the executable. A configured path wins and must exist;
// otherwise candidates are tried in order, bare names through PATH.
func Locate(configured string, candidates []string) (string, error) {
	if configured != "" {
		if p, ok := resolve(configured); ok {
			return p, nil
		}
		return "", fmt.Errorf("%w: %s", ErrExecutableNotFound, configured)
	}
	for _, c := range candidates {
		if p, ok := resolve(c); ok {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %d locations; set launcher.executable or --exe", ErrExecutableNotFound, len(candidates))
}

func resolve(candidate string) (string, bool) {
	if filepath.IsAbs(candidate) || filepath.Base(candidate) != candidate {
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			return "", false
		}
		return candidate, true
	}
	p, err := exec.LookPath(candidate)
	if err != nil {
		return "", false
	}
	return p, true
}
