package scanning

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"lrcsolid/src/music"
)

// ErrPathNotFound is returned when the root path does not exist. It is the
// only error that aborts a whole run.
var ErrPathNotFound = errors.New("path does not exist")

// AudioFile is a single candidate file discovered by a scan.
type AudioFile struct {
	Path   string
	Format string
}

// Scan enumerates the supported audio files under root. A file root yields
// itself when its extension is supported, a directory root yields every
// supported file directly inside it, and with recursive also every
// supported file in nested subdirectories. The order is the lexicographic
// order of filepath.WalkDir, deterministic for a given filesystem state.
func Scan(root string, recursive bool) ([]AudioFile, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, root)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", root, err)
	}

	if !info.IsDir() {
		if format := music.FormatFromPath(root); format != "" {
			return []AudioFile{{Path: root, Format: format}}, nil
		}
		return nil, nil
	}

	var files []AudioFile
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal.
			slog.Warn("Skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if !recursive && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		// Directory symlinks report IsDir false here, so they are never
		// descended into; file symlinks pass through as regular files.
		if format := music.FormatFromPath(path); format != "" {
			files = append(files, AudioFile{Path: path, Format: format})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	return files, nil
}
