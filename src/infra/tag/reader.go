package tag

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dhowden/tag"
	goflac "github.com/go-flac/go-flac"

	"lrcsolid/src/music"
)

// ErrMissingTags is returned when a file lacks the title or artist tag
// required for a lyrics lookup.
var ErrMissingTags = errors.New("missing required tags (title and artist)")

// Reader extracts track metadata using the dhowden/tag library.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadTrack reads the tags needed for a lyrics lookup. Title and artist
// are mandatory; album and duration are filled in when available.
func (r *Reader) ReadTrack(ctx context.Context, path string) (*music.Track, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	tags, err := tag.ReadFrom(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read tags: %w", err)
	}

	title := strings.TrimSpace(tags.Title())
	artist := strings.TrimSpace(tags.Artist())
	if title == "" || artist == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingTags, path)
	}

	track := &music.Track{
		Path:   path,
		Format: music.FormatFromPath(path),
		Title:  title,
		Artist: artist,
		Album:  strings.TrimSpace(tags.Album()),
	}

	if track.Format == "flac" {
		duration, err := flacDuration(path)
		if err != nil {
			slog.Debug("Could not determine FLAC duration", "path", path, "error", err)
		} else {
			track.Duration = duration
		}
	}

	return track, nil
}

// flacDuration computes the exact track length from the STREAMINFO block.
func flacDuration(path string) (int, error) {
	f, err := goflac.ParseFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to parse FLAC file: %w", err)
	}
	info, err := f.GetStreamInfo()
	if err != nil {
		return 0, fmt.Errorf("failed to read stream info: %w", err)
	}
	if info.SampleRate == 0 {
		return 0, errors.New("stream info reports zero sample rate")
	}
	return int(info.SampleCount / int64(info.SampleRate)), nil
}
