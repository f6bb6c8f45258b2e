package fetching

import "fmt"

// Status classifies what happened to a single audio file.
type Status int

const (
	StatusWritten Status = iota
	StatusSkipped
	StatusFailed
)

// Stage names the pipeline step a failure was decided at.
type Stage string

const (
	StageMetadata Stage = "metadata"
	StageLookup   Stage = "lookup"
	StageWrite    Stage = "write"
)

// Outcome is the per-file result of one pipeline pass.
type Outcome struct {
	Path   string
	Status Status
	Reason string // set for skips
	Stage  Stage  // set for failures
	Err    error  // set for failures
}

// Summary aggregates outcomes over a whole run.
type Summary struct {
	Written int
	Skipped int
	Failed  int
	Total   int
}

func (s *Summary) record(o Outcome) {
	switch o.Status {
	case StatusWritten:
		s.Written++
	case StatusSkipped:
		s.Skipped++
	case StatusFailed:
		s.Failed++
	}
}

// String renders the final one-line run report.
func (s Summary) String() string {
	return fmt.Sprintf("processed %d files (%d written, %d skipped, %d failed)",
		s.Total, s.Written, s.Skipped, s.Failed)
}
