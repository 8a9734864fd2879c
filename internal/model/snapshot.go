package model

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ErrNoSnapshot is returned when a document has no saved snapshot.
var ErrNoSnapshot = errors.New("no snapshot")

// snapshotPrefix is the filename prefix for snapshot files.
const snapshotPrefix = "macro-cli-snapshot-"

// SnapshotKey computes a stable identity for a document file so snapshots of
// different documents sharing a directory do not mix.
func SnapshotKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	h := sha256.New()
	fmt.Fprint(h, path)
	return fmt.Sprintf("%x", h.Sum(nil))[:16]
}

func snapshotPath(dir, path string, ts int64) string {
	return filepath.Join(dir, fmt.Sprintf("%s%s-%d.json", snapshotPrefix, SnapshotKey(path), ts))
}

// SaveSnapshot writes d as the state of the document at path at time ts and
// returns the snapshot file.
func SaveSnapshot(dir, path string, ts int64, d *Document) (string, error) {
	data, err := Marshal(d)
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}
	file := snapshotPath(dir, path, ts)
	if err := os.WriteFile(file, data, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return file, nil
}

// Snapshots lists the snapshot files of the document at path, oldest first.
func Snapshots(dir, path string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	prefix := snapshotPrefix + SnapshotKey(path) + "-"
	type snap struct {
		file string
		ts   int64
	}
	var snaps []snap
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".json") {
			continue
		}
		var ts int64
		if _, err := fmt.Sscanf(strings.TrimSuffix(strings.TrimPrefix(name, prefix), ".json"), "%d", &ts); err != nil {
			continue
		}
		snaps = append(snaps, snap{file: filepath.Join(dir, name), ts: ts})
	}
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].ts < snaps[j].ts })

	files := make([]string, len(snaps))
	for i, s := range snaps {
		files[i] = s.file
	}
	return files, nil
}

// LatestSnapshot returns the newest snapshot file of the document at path.
func LatestSnapshot(dir, path string) (string, error) {
	files, err := Snapshots(dir, path)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("%w for %s", ErrNoSnapshot, path)
	}
	return files[len(files)-1], nil
}

// CleanSnapshots removes snapshot files of the document at path that are
// older than maxAge.
func CleanSnapshots(dir, path string, maxAge time.Duration) {
	files, err := Snapshots(dir, path)
	if err != nil {
		return
	}
	cutoff := time.Now().Add(-maxAge)
	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			os.Remove(file)
		}
	}
}
