package watcher

import (
	"time"
)

// FileEvent signals that a new audio file appeared in the watched
// directory and has settled on disk.
type FileEvent struct {
	Path      string
	Timestamp time.Time
}
