package fetching

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lrcsolid/src/features/config"
	"lrcsolid/src/features/scanning"
	"lrcsolid/src/infra/files"
	"lrcsolid/src/music"
)

// mockReader serves canned tracks per path without touching file content.
type mockReader struct {
	tracks map[string]*music.Track
	errs   map[string]error
}

func (m *mockReader) ReadTrack(ctx context.Context, path string) (*music.Track, error) {
	if err, ok := m.errs[path]; ok {
		return nil, err
	}
	if track, ok := m.tracks[path]; ok {
		return track, nil
	}
	return &music.Track{Path: path, Title: "Title", Artist: "Artist"}, nil
}

// mockProvider returns one canned result for every lookup and counts calls.
type mockProvider struct {
	mu     sync.Mutex
	calls  int
	result music.LyricsResult
	err    error
}

func (m *mockProvider) GetLyrics(ctx context.Context, track *music.Track) (music.LyricsResult, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.err != nil {
		return music.LyricsResult{}, m.err
	}
	return m.result, nil
}

func (m *mockProvider) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockEmbedder struct {
	mu    sync.Mutex
	paths []string
}

func (m *mockEmbedder) EmbedLyrics(ctx context.Context, path string, track *music.Track, lyrics string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paths = append(m.paths, path)
	return nil
}

// failingWriter simulates a filesystem failure on every write.
type failingWriter struct{}

func (failingWriter) Write(audioPath string, result music.LyricsResult, override bool) (files.Report, error) {
	return files.Report{}, errors.New("disk full")
}

func (failingWriter) TargetsExist(audioPath string) (bool, bool) { return false, false }

func foundBoth() music.LyricsResult {
	return music.LyricsResult{
		Status:     music.StatusFound,
		TrackName:  "Title",
		ArtistName: "Artist",
		Synced:     "[00:01.00]line",
		Plain:      "line",
	}
}

func testConfig() *config.Manager {
	cfg := config.Default()
	cfg.Silent = true
	return config.NewManager(cfg)
}

func touch(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	return path
}

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "good.mp3"))
	bad := touch(t, filepath.Join(dir, "bad.mp3"))

	reader := &mockReader{errs: map[string]error{bad: errors.New("missing title tag")}}
	provider := &mockProvider{result: foundBoth()}
	service := NewService(reader, provider, files.NewWriter(), &mockEmbedder{}, testConfig())

	summary, err := service.Run(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, Summary{Written: 1, Skipped: 0, Failed: 1, Total: 2}, summary)
	assert.FileExists(t, filepath.Join(dir, "good.lrc"))
	assert.FileExists(t, filepath.Join(dir, "good.txt"))
	assert.NoFileExists(t, filepath.Join(dir, "bad.lrc"))
	assert.NoFileExists(t, filepath.Join(dir, "bad.txt"))
}

func TestRunSecondPassIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "song.mp3"))

	provider := &mockProvider{result: foundBoth()}
	service := NewService(&mockReader{}, provider, files.NewWriter(), &mockEmbedder{}, testConfig())

	first, err := service.Run(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Written)
	assert.Equal(t, 1, provider.callCount())

	second, err := service.Run(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, Summary{Written: 0, Skipped: 1, Failed: 0, Total: 1}, second)
	// Pre-existing targets short-circuit before any lookup.
	assert.Equal(t, 1, provider.callCount())
}

func TestRunPartialTargetsStillFetch(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "song.mp3"))
	lrcPath := filepath.Join(dir, "song.lrc")
	require.NoError(t, os.WriteFile(lrcPath, []byte("keep"), 0644))

	provider := &mockProvider{result: foundBoth()}
	service := NewService(&mockReader{}, provider, files.NewWriter(), &mockEmbedder{}, testConfig())

	summary, err := service.Run(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 1, provider.callCount())
	assert.Equal(t, 1, summary.Written)
	content, _ := os.ReadFile(lrcPath)
	assert.Equal(t, "keep", string(content))
	assert.FileExists(t, filepath.Join(dir, "song.txt"))
}

func TestRunOverrideRefetchesAndReplaces(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "song.mp3"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "song.lrc"), []byte("stale"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "song.txt"), []byte("stale"), 0644))

	manager := testConfig()
	cfg := *manager.Get()
	cfg.Override = true
	manager.Update(&cfg)

	provider := &mockProvider{result: foundBoth()}
	service := NewService(&mockReader{}, provider, files.NewWriter(), &mockEmbedder{}, manager)

	summary, err := service.Run(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 1, provider.callCount())
	assert.Equal(t, 1, summary.Written)
	content, _ := os.ReadFile(filepath.Join(dir, "song.lrc"))
	assert.NotEqual(t, "stale", string(content))
}

func TestRunInstrumentalAndNotFoundSkipWithoutWrites(t *testing.T) {
	for _, status := range []music.LyricsStatus{music.StatusInstrumental, music.StatusNotFound} {
		dir := t.TempDir()
		touch(t, filepath.Join(dir, "song.mp3"))

		provider := &mockProvider{result: music.LyricsResult{Status: status}}
		service := NewService(&mockReader{}, provider, files.NewWriter(), &mockEmbedder{}, testConfig())

		summary, err := service.Run(context.Background(), dir)
		require.NoError(t, err)
		assert.Equal(t, Summary{Written: 0, Skipped: 1, Failed: 0, Total: 1}, summary)

		entries, _ := os.ReadDir(dir)
		assert.Len(t, entries, 1, "only the audio file should remain")
	}
}

func TestRunLookupErrorIsFailed(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "song.mp3"))

	provider := &mockProvider{err: errors.New("connection refused")}
	service := NewService(&mockReader{}, provider, files.NewWriter(), &mockEmbedder{}, testConfig())

	summary, err := service.Run(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Failed)
	assert.NoFileExists(t, filepath.Join(dir, "song.lrc"))
}

func TestRunWriteErrorIsFailed(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "song.mp3"))

	provider := &mockProvider{result: foundBoth()}
	service := NewService(&mockReader{}, provider, failingWriter{}, &mockEmbedder{}, testConfig())

	summary, err := service.Run(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, Summary{Written: 0, Skipped: 0, Failed: 1, Total: 1}, summary)
}

func TestRunMissingRootIsFatal(t *testing.T) {
	service := NewService(&mockReader{}, &mockProvider{}, files.NewWriter(), &mockEmbedder{}, testConfig())

	_, err := service.Run(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, scanning.ErrPathNotFound)
}

func TestRunConcurrentAggregation(t *testing.T) {
	dir := t.TempDir()
	const total = 12
	for i := 0; i < total; i++ {
		touch(t, filepath.Join(dir, fmt.Sprintf("song%02d.mp3", i)))
	}

	manager := testConfig()
	cfg := *manager.Get()
	cfg.Jobs = 4
	manager.Update(&cfg)

	provider := &mockProvider{result: foundBoth()}
	service := NewService(&mockReader{}, provider, files.NewWriter(), &mockEmbedder{}, manager)

	summary, err := service.Run(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, Summary{Written: total, Skipped: 0, Failed: 0, Total: total}, summary)
	assert.Equal(t, total, provider.callCount())
}

func TestRunEmbedsWhenEnabled(t *testing.T) {
	dir := t.TempDir()
	song := touch(t, filepath.Join(dir, "song.mp3"))

	manager := testConfig()
	cfg := *manager.Get()
	cfg.Embed = true
	manager.Update(&cfg)

	embedder := &mockEmbedder{}
	service := NewService(&mockReader{}, &mockProvider{result: foundBoth()}, files.NewWriter(), embedder, manager)

	_, err := service.Run(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{song}, embedder.paths)
}

func TestRunEmptyDirectory(t *testing.T) {
	service := NewService(&mockReader{}, &mockProvider{}, files.NewWriter(), &mockEmbedder{}, testConfig())

	summary, err := service.Run(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Summary{}, summary)
}
