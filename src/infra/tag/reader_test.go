package tag

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeMP3 creates a tag-only MP3 file with the given frames set.
func writeMP3(t *testing.T, dir string, setTags func(*id3v2.Tag)) string {
	t.Helper()

	frames := id3v2.NewEmptyTag()
	setTags(frames)

	path := filepath.Join(dir, "track.mp3")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	_, err = frames.WriteTo(f)
	require.NoError(t, err)
	return path
}

func TestReadTrackFullTags(t *testing.T) {
	path := writeMP3(t, t.TempDir(), func(frames *id3v2.Tag) {
		frames.SetTitle("Breathe")
		frames.SetArtist("Pink Floyd")
		frames.SetAlbum("The Dark Side of the Moon")
	})

	track, err := NewReader().ReadTrack(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "Breathe", track.Title)
	assert.Equal(t, "Pink Floyd", track.Artist)
	assert.Equal(t, "The Dark Side of the Moon", track.Album)
	assert.Equal(t, "mp3", track.Format)
	assert.Equal(t, path, track.Path)
	assert.Zero(t, track.Duration)
}

func TestReadTrackAlbumIsOptional(t *testing.T) {
	path := writeMP3(t, t.TempDir(), func(frames *id3v2.Tag) {
		frames.SetTitle("Breathe")
		frames.SetArtist("Pink Floyd")
	})

	track, err := NewReader().ReadTrack(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, track.Album)
}

func TestReadTrackMissingTitle(t *testing.T) {
	path := writeMP3(t, t.TempDir(), func(frames *id3v2.Tag) {
		frames.SetArtist("Pink Floyd")
	})

	_, err := NewReader().ReadTrack(context.Background(), path)
	assert.ErrorIs(t, err, ErrMissingTags)
}

func TestReadTrackMissingArtist(t *testing.T) {
	path := writeMP3(t, t.TempDir(), func(frames *id3v2.Tag) {
		frames.SetTitle("Breathe")
	})

	_, err := NewReader().ReadTrack(context.Background(), path)
	assert.ErrorIs(t, err, ErrMissingTags)
}

func TestReadTrackGarbageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.mp3")
	require.NoError(t, os.WriteFile(path, []byte("this is not an audio file"), 0644))

	_, err := NewReader().ReadTrack(context.Background(), path)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingTags)
}

func TestReadTrackMissingFile(t *testing.T) {
	_, err := NewReader().ReadTrack(context.Background(), filepath.Join(t.TempDir(), "absent.mp3"))
	assert.Error(t, err)
}
