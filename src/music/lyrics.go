package music

import "fmt"

// LyricsStatus is the closed three-way outcome of a lyrics lookup.
type LyricsStatus int

const (
	// StatusFound means the database returned lyrics text.
	StatusFound LyricsStatus = iota
	// StatusInstrumental means the track has no lyrics by design.
	StatusInstrumental
	// StatusNotFound means the database has no entry for the track.
	StatusNotFound
)

// LyricsResult is what a lyrics provider returns for a track. The track
// fields describe the database entry that matched, not the local file, and
// are only meaningful when the status is not StatusNotFound.
type LyricsResult struct {
	Status     LyricsStatus
	TrackName  string
	ArtistName string
	AlbumName  string
	Duration   float64 // seconds, as reported by the database
	Synced     string  // LRC-format lyrics, empty if unavailable
	Plain      string  // plain text lyrics, empty if unavailable
}

// LRCHeader renders the standard LRC metadata header written at the top of
// every lyrics file.
func (r LyricsResult) LRCHeader() string {
	minutes := int(r.Duration) / 60
	seconds := int(r.Duration) % 60
	return fmt.Sprintf("[ti: %s]\n[ar: %s]\n[al: %s]\n[length: %d:%02d]\n[by: lrcsolid]",
		r.TrackName, r.ArtistName, r.AlbumName, minutes, seconds)
}
