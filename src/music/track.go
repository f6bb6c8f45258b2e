package music

// Track holds the metadata a lyrics lookup needs, read once from a single
// audio file. Title and artist are mandatory; album and duration are
// best-effort and may be absent.
type Track struct {
	Path     string
	Format   string // lower-cased extension without the dot
	Title    string
	Artist   string
	Album    string // empty when the tag is missing
	Duration int    // seconds, 0 when unknown
}
