package tag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/go-flac/flacvorbis"
	goflac "github.com/go-flac/go-flac"

	"lrcsolid/src/music"
)

// Embedder writes fetched lyrics back into the audio file's own tags, as a
// complement to the sibling lyrics files.
type Embedder struct{}

// NewEmbedder creates a new Embedder.
func NewEmbedder() *Embedder {
	return &Embedder{}
}

// EmbedLyrics embeds plain lyrics into the file's tags. Formats without a
// writable lyrics mapping are skipped silently.
func (e *Embedder) EmbedLyrics(ctx context.Context, path string, track *music.Track, lyrics string) error {
	switch track.Format {
	case "mp3":
		return e.embedMP3(path, lyrics)
	case "flac":
		return e.embedFLAC(path, lyrics)
	default:
		slog.Debug("Lyrics embedding not supported for format", "path", path, "format", track.Format)
		return nil
	}
}

// embedMP3 stores the lyrics in an ID3v2 USLT frame.
func (e *Embedder) embedMP3(path string, lyrics string) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("failed to open MP3 file for tagging: %w", err)
	}
	defer tag.Close()

	usltID := tag.CommonID("Unsynchronised lyrics/text transcription")
	tag.DeleteFrames(usltID)
	tag.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
		Encoding:          id3v2.EncodingUTF8,
		Language:          "xxx",
		ContentDescriptor: "",
		Lyrics:            lyrics,
	})

	if err := tag.Save(); err != nil {
		return fmt.Errorf("failed to save MP3 tags: %w", err)
	}
	return nil
}

// embedFLAC stores the lyrics in a Vorbis LYRICS comment.
func (e *Embedder) embedFLAC(path string, lyrics string) error {
	f, err := goflac.ParseFile(path)
	if err != nil {
		return fmt.Errorf("failed to parse FLAC file: %w", err)
	}

	// Find the existing Vorbis comment block, keeping everything else.
	var vorbisComment *flacvorbis.MetaDataBlockVorbisComment
	var commentIndex = -1
	for idx, meta := range f.Meta {
		if meta.Type == goflac.VorbisComment {
			vorbisComment, err = flacvorbis.ParseFromMetaDataBlock(*meta)
			if err != nil {
				return fmt.Errorf("failed to parse Vorbis comment: %w", err)
			}
			commentIndex = idx
			break
		}
	}
	if vorbisComment == nil {
		vorbisComment = flacvorbis.New()
	}

	// Replace any existing LYRICS comment rather than appending a second.
	rebuilt := flacvorbis.New()
	rebuilt.Vendor = vorbisComment.Vendor
	for _, comment := range vorbisComment.Comments {
		if len(comment) >= 7 && strings.EqualFold(comment[:7], "LYRICS=") {
			continue
		}
		rebuilt.Comments = append(rebuilt.Comments, comment)
	}
	if err := rebuilt.Add("LYRICS", lyrics); err != nil {
		return fmt.Errorf("failed to add lyrics comment: %w", err)
	}

	commentMeta := rebuilt.Marshal()
	if commentIndex >= 0 {
		f.Meta[commentIndex] = &commentMeta
	} else {
		f.Meta = append(f.Meta, &commentMeta)
	}

	if err := f.Save(path); err != nil {
		return fmt.Errorf("failed to save FLAC file: %w", err)
	}
	return nil
}
