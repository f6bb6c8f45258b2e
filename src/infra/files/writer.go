package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lrcsolid/src/music"
)

// Writer persists fetched lyrics as sibling files of the audio file:
// <basename>.lrc for synced lyrics and <basename>.txt for plain lyrics.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Report describes what a Write call did for each target file.
type Report struct {
	WroteSynced   bool
	WrotePlain    bool
	SkippedSynced bool
	SkippedPlain  bool
}

// Wrote reports whether at least one target file was written.
func (r Report) Wrote() bool {
	return r.WroteSynced || r.WrotePlain
}

// SiblingPath returns the lyrics file path that sits next to the audio
// file, sharing its base name.
func SiblingPath(audioPath, ext string) string {
	base := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))
	return base + "." + ext
}

// TargetsExist reports whether the .lrc and .txt siblings of the audio
// file already exist.
func (w *Writer) TargetsExist(audioPath string) (lrc bool, txt bool) {
	if _, err := os.Stat(SiblingPath(audioPath, "lrc")); err == nil {
		lrc = true
	}
	if _, err := os.Stat(SiblingPath(audioPath, "txt")); err == nil {
		txt = true
	}
	return lrc, txt
}

// Write persists the lyrics of result next to audioPath. Instrumental and
// not-found results never touch the filesystem. Each present lyrics kind is
// handled independently: an existing target is only replaced when override
// is set, and skipping one target does not block the other.
func (w *Writer) Write(audioPath string, result music.LyricsResult, override bool) (Report, error) {
	var report Report
	if result.Status != music.StatusFound {
		return report, nil
	}

	header := result.LRCHeader()

	if result.Synced != "" {
		wrote, err := writeTarget(SiblingPath(audioPath, "lrc"), header+"\n"+result.Synced, override)
		if err != nil {
			return report, fmt.Errorf("failed to write lrc file: %w", err)
		}
		report.WroteSynced = wrote
		report.SkippedSynced = !wrote
	}

	if result.Plain != "" {
		wrote, err := writeTarget(SiblingPath(audioPath, "txt"), header+"\n"+result.Plain, override)
		if err != nil {
			return report, fmt.Errorf("failed to write txt file: %w", err)
		}
		report.WrotePlain = wrote
		report.SkippedPlain = !wrote
	}

	return report, nil
}

// writeTarget writes content to path unless it exists and override is off.
// The content goes to a temp file in the same directory first and is
// renamed into place, so a failed write never leaves a partial file and
// never destroys a pre-existing one.
func writeTarget(path, content string, override bool) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		if !override {
			return false, nil
		}
	} else if !os.IsNotExist(err) {
		return false, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".lyrics-*.tmp")
	if err != nil {
		return false, err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return false, err
	}
	if err := tmp.Close(); err != nil {
		return false, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return false, err
	}
	return true, nil
}
