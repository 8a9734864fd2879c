package platform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/mj1618/macro-cli/internal/model"
)

// RunOptions control how a macro is handed to the tool.
type RunOptions struct {
	Executable  string
	Flag        string
	TempDir     string
	SearchPaths []string
	// Keep leaves the temp file in place after the tool exits. Only
	// meaningful when the launcher waits.
	Keep bool
}

// Runner hands documents to the screenshot tool: it writes the document to
// a temp file and invokes "<exe> <flag> <file>".
type Runner struct {
	Launcher Launcher
	Options  RunOptions
}

// RunResult describes a launch.
type RunResult struct {
	Executable string   `yaml:"executable" json:"executable"`
	Args       []string `yaml:"args"       json:"args"`
	MacroFile  string   `yaml:"macro_file" json:"macro_file"`
}

// NewRunner builds a Runner from the provider's launcher and search paths.
func NewRunner(p *Provider, opts RunOptions) *Runner {
	if len(opts.SearchPaths) == 0 {
		opts.SearchPaths = p.SearchPaths
	}
	return &Runner{Launcher: p.Launcher, Options: opts}
}

// Run writes doc to a temp file and launches the tool on it.
func (r *Runner) Run(ctx context.Context, doc *model.Document) (*RunResult, error) {
	exe, err := Locate(r.Options.Executable, r.Options.SearchPaths)
	if err != nil {
		return nil, err
	}
	path, err := r.writeTemp(doc)
	if err != nil {
		return nil, err
	}
	flag := r.Options.Flag
	if flag == "" {
		flag = DefaultFlag
	}
	args := []string{flag, path}
	if err := r.Launcher.Launch(ctx, exe, args...); err != nil {
		os.Remove(path)
		return nil, err
	}
	if l, ok := r.Launcher.(*ExecLauncher); ok && l.Wait && !r.Options.Keep {
		os.Remove(path)
	}
	return &RunResult{Executable: exe, Args: args, MacroFile: path}, nil
}

func (r *Runner) writeTemp(doc *model.Document) (string, error) {
	data, err := model.Marshal(doc)
	if err != nil {
		return "", err
	}
	dir := r.Options.TempDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	path := filepath.Join(dir, "macro-"+uuid.NewString()+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write macro file: %w", err)
	}
	return path, nil
}
