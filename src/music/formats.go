package music

import (
	"path/filepath"
	"strings"
)

// SupportedFormats lists the audio formats the pipeline will pick up,
// keyed by lower-cased extension without the dot.
var SupportedFormats = map[string]bool{
	"mp3":  true,
	"flac": true,
	"wav":  true,
	"ogg":  true,
	"m4a":  true,
	"aac":  true,
	"opus": true,
	"wma":  true,
	"ape":  true,
	"dsf":  true,
	"dff":  true,
}

// FormatFromPath returns the normalized format of a file path, or "" when
// the extension is not a supported audio format.
func FormatFromPath(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if !SupportedFormats[ext] {
		return ""
	}
	return ext
}

// IsSupportedPath reports whether the path has a supported audio extension.
// Matching is case-insensitive.
func IsSupportedPath(path string) bool {
	return FormatFromPath(path) != ""
}
