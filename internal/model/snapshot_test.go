package model

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSnapshotKey_Stable(t *testing.T) {
	a := SnapshotKey("macro.json")
	if a != SnapshotKey("macro.json") {
		t.Error("expected same key for same path")
	}
	if len(a) != 16 {
		t.Errorf("expected 16 hex chars, got %q", a)
	}
	if a == SnapshotKey("other.json") {
		t.Error("expected different keys for different paths")
	}
}

func TestSaveSnapshot_LatestWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "macro.json")

	first := New()
	second := New()
	if _, err := second.AddStep(StepCapture); err != nil {
		t.Fatal(err)
	}

	if _, err := SaveSnapshot(dir, path, 100, first); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := SaveSnapshot(dir, path, 200, second); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := SaveSnapshot(dir, filepath.Join(dir, "other.json"), 300, first); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	files, err := Snapshots(dir, path)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(files))
	}

	latest, err := LatestSnapshot(dir, path)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := Load(latest)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if doc.Len() != 1 {
		t.Errorf("expected the newest snapshot with 1 step, got %d", doc.Len())
	}
}

func TestLatestSnapshot_None(t *testing.T) {
	_, err := LatestSnapshot(t.TempDir(), "macro.json")
	if !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("expected ErrNoSnapshot, got %v", err)
	}
	_, err = LatestSnapshot(filepath.Join(t.TempDir(), "missing"), "macro.json")
	if !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("expected ErrNoSnapshot for a missing dir, got %v", err)
	}
}

func TestCleanSnapshots(t *testing.T) {
	dir := t.TempDir()
	path := "macro.json"
	old, err := SaveSnapshot(dir, path, 1, New())
	if err != nil {
		t.Fatal(err)
	}
	fresh, err := SaveSnapshot(dir, path, 2, New())
	if err != nil {
		t.Fatal(err)
	}
	past := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(old, past, past); err != nil {
		t.Fatal(err)
	}

	CleanSnapshots(dir, path, 24*time.Hour)

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("expected old snapshot to be removed")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Error("expected fresh snapshot to be kept")
	}
}
