package fetching

import (
	"context"
	"log/slog"
	"sync"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"lrcsolid/src/features/config"
	"lrcsolid/src/features/scanning"
	"lrcsolid/src/infra/files"
	"lrcsolid/src/music"
)

// TagReader extracts track metadata from an audio file.
type TagReader interface {
	ReadTrack(ctx context.Context, path string) (*music.Track, error)
}

// LyricsProvider looks up lyrics for a track against a remote database.
type LyricsProvider interface {
	GetLyrics(ctx context.Context, track *music.Track) (music.LyricsResult, error)
}

// LyricsWriter persists a lyrics result next to the audio file.
type LyricsWriter interface {
	Write(audioPath string, result music.LyricsResult, override bool) (files.Report, error)
	TargetsExist(audioPath string) (lrc bool, txt bool)
}

// LyricsEmbedder writes lyrics into the audio file's own tags.
type LyricsEmbedder interface {
	EmbedLyrics(ctx context.Context, path string, track *music.Track, lyrics string) error
}

// Service drives the scan, extract, lookup, write pipeline.
type Service struct {
	reader   TagReader
	provider LyricsProvider
	writer   LyricsWriter
	embedder LyricsEmbedder
	config   *config.Manager
}

// NewService creates a new fetching service.
func NewService(reader TagReader, provider LyricsProvider, writer LyricsWriter, embedder LyricsEmbedder, cfg *config.Manager) *Service {
	return &Service{
		reader:   reader,
		provider: provider,
		writer:   writer,
		embedder: embedder,
		config:   cfg,
	}
}

// Run processes every supported audio file under root and returns the
// aggregated summary. Per-file failures are recorded and never abort the
// run; only an unusable root path is fatal.
func (s *Service) Run(ctx context.Context, root string) (Summary, error) {
	cfg := s.config.Get()

	audioFiles, err := scanning.Scan(root, cfg.Recursive)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Total: len(audioFiles)}
	if len(audioFiles) == 0 {
		slog.Info("No supported audio files found", "path", root)
		return summary, nil
	}
	slog.Info("Found audio files", "count", len(audioFiles), "path", root)

	var bar *progressbar.ProgressBar
	if !cfg.Silent {
		bar = progressbar.Default(int64(len(audioFiles)), "fetching lyrics")
	}

	jobs := cfg.Jobs
	if jobs < 1 {
		jobs = 1
	}

	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for _, file := range audioFiles {
		file := file
		group.Go(func() error {
			outcome := s.processFile(groupCtx, file.Path)
			s.logOutcome(outcome)

			mu.Lock()
			summary.record(outcome)
			mu.Unlock()

			if bar != nil {
				bar.Add(1)
			}
			return nil
		})
	}
	group.Wait()

	if bar != nil {
		bar.Finish()
	}
	return summary, nil
}

// processFile runs the whole pipeline for one audio file and reports a
// single outcome. Pre-existing target files short-circuit before any tag
// read or network call when overriding is off.
func (s *Service) processFile(ctx context.Context, path string) Outcome {
	cfg := s.config.Get()

	lrcExists, txtExists := s.writer.TargetsExist(path)
	if !cfg.Override && lrcExists && txtExists {
		return Outcome{Path: path, Status: StatusSkipped, Reason: "lyrics files already exist"}
	}

	track, err := s.reader.ReadTrack(ctx, path)
	if err != nil {
		return Outcome{Path: path, Status: StatusFailed, Stage: StageMetadata, Err: err}
	}

	result, err := s.provider.GetLyrics(ctx, track)
	if err != nil {
		return Outcome{Path: path, Status: StatusFailed, Stage: StageLookup, Err: err}
	}

	switch result.Status {
	case music.StatusInstrumental:
		return Outcome{Path: path, Status: StatusSkipped, Reason: "instrumental track"}
	case music.StatusNotFound:
		return Outcome{Path: path, Status: StatusSkipped, Reason: "no lyrics found"}
	}

	report, err := s.writer.Write(path, result, cfg.Override)
	if err != nil {
		return Outcome{Path: path, Status: StatusFailed, Stage: StageWrite, Err: err}
	}

	if cfg.Embed && result.Plain != "" {
		if err := s.embedder.EmbedLyrics(ctx, path, track, result.Plain); err != nil {
			// Sibling files are the source of truth; a failed embed is
			// logged and does not change the outcome.
			slog.Warn("Failed to embed lyrics into tags", "path", path, "error", err)
		}
	}

	if report.Wrote() {
		return Outcome{Path: path, Status: StatusWritten}
	}
	return Outcome{Path: path, Status: StatusSkipped, Reason: "lyrics files already exist"}
}

func (s *Service) logOutcome(o Outcome) {
	switch o.Status {
	case StatusWritten:
		slog.Info("Lyrics written", "path", o.Path)
	case StatusSkipped:
		slog.Debug("Skipped file", "path", o.Path, "reason", o.Reason)
	case StatusFailed:
		slog.Warn("Failed to process file", "path", o.Path, "stage", o.Stage, "error", o.Err)
	}
}
