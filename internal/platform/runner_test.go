package platform

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mj1618/macro-cli/internal/model"
)

func fakeExecutable(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Greenshot.exe")
	if err := os.WriteFile(path, []byte("stub"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLocate(t *testing.T) {
	exe := fakeExecutable(t)

	got, err := Locate(exe, nil)
	if err != nil || got != exe {
		t.Errorf("configured: got %q, %v", got, err)
	}

	got, err = Locate("", []string{filepath.Join(t.TempDir(), "nope.exe"), exe})
	if err != nil || got != exe {
		t.Errorf("candidates: got %q, %v", got, err)
	}

	_, err = Locate(filepath.Join(t.TempDir(), "missing.exe"), []string{exe})
	if !errors.Is(err, ErrExecutableNotFound) {
		t.Errorf("missing configured path: got %v, want ErrExecutableNotFound", err)
	}

	_, err = Locate("", []string{"definitely-not-a-real-tool-xyz"})
	if !errors.Is(err, ErrExecutableNotFound) {
		t.Errorf("no candidates: got %v, want ErrExecutableNotFound", err)
	}
}

func TestRunner_WritesMacroAndLaunches(t *testing.T) {
	exe := fakeExecutable(t)
	tmp := t.TempDir()

	var gotExe string
	var gotArgs []string
	var written []byte
	launcher := LauncherFunc(func(ctx context.Context, exe string, args ...string) error {
		gotExe, gotArgs = exe, args
		data, err := os.ReadFile(args[1])
		written = data
		return err
	})

	doc := model.New()
	_, _ = doc.AddStep(model.StepCapture)
	r := &Runner{Launcher: launcher, Options: RunOptions{Executable: exe, TempDir: tmp}}
	res, err := r.Run(context.Background(), doc)
	if err != nil {
		t.Fatal(err)
	}

	if gotExe != exe {
		t.Errorf("exe: got %q, want %q", gotExe, exe)
	}
	if len(gotArgs) != 2 || gotArgs[0] != DefaultFlag {
		t.Fatalf("args: got %v", gotArgs)
	}
	if filepath.Dir(gotArgs[1]) != tmp || !strings.HasPrefix(filepath.Base(gotArgs[1]), "macro-") || filepath.Ext(gotArgs[1]) != ".json" {
		t.Errorf("macro file: got %q", gotArgs[1])
	}
	want, _ := model.Marshal(doc)
	if string(written) != string(want) {
		t.Errorf("macro content:\n%s\nwant:\n%s", written, want)
	}
	if res.MacroFile != gotArgs[1] {
		t.Errorf("result file: got %q, want %q", res.MacroFile, gotArgs[1])
	}
}

func TestRunner_CustomFlag(t *testing.T) {
	exe := fakeExecutable(t)
	var gotArgs []string
	r := &Runner{
		Launcher: LauncherFunc(func(ctx context.Context, exe string, args ...string) error {
			gotArgs = args
			return nil
		}),
		Options: RunOptions{Executable: exe, Flag: "--macro", TempDir: t.TempDir()},
	}
	if _, err := r.Run(context.Background(), model.New()); err != nil {
		t.Fatal(err)
	}
	if gotArgs[0] != "--macro" {
		t.Errorf("flag: got %q, want --macro", gotArgs[0])
	}
}

func TestRunner_LaunchFailureRemovesTempFile(t *testing.T) {
	exe := fakeExecutable(t)
	tmp := t.TempDir()
	r := &Runner{
		Launcher: LauncherFunc(func(ctx context.Context, exe string, args ...string) error {
			return errors.New("boom")
		}),
		Options: RunOptions{Executable: exe, TempDir: tmp},
	}
	if _, err := r.Run(context.Background(), model.New()); err == nil {
		t.Fatal("expected launch error")
	}
	entries, _ := os.ReadDir(tmp)
	if len(entries) != 0 {
		t.Errorf("expected temp dir to be empty, got %d entries", len(entries))
	}
}

func TestRunner_ExecutableNotFound(t *testing.T) {
	r := NewRunner(&Provider{Launcher: &ExecLauncher{}, SearchPaths: []string{"definitely-not-a-real-tool-xyz"}}, RunOptions{TempDir: t.TempDir()})
	_, err := r.Run(context.Background(), model.New())
	if !errors.Is(err, ErrExecutableNotFound) {
		t.Errorf("got %v, want ErrExecutableNotFound", err)
	}
}

func TestDefaultSearchPaths(t *testing.T) {
	for _, goos := range []string{"windows", "darwin", "linux"} {
		if len(DefaultSearchPaths(goos)) == 0 {
			t.Errorf("%s: no search paths", goos)
		}
	}
}
