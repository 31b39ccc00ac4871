package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/backmassage/sitemedia/internal/ffmpeg"
)

// Outcome tags how a single file's conversion ended.
type Outcome int

const (
	OutcomeConverted Outcome = iota // ffmpeg exited 0.
	OutcomeFailed                   // ffmpeg ran and exited non-zero; the batch continues.
	OutcomeAborted                  // ffmpeg could not be started; the batch stops.
	OutcomePlanned                  // Dry run; nothing executed.
)

func (o Outcome) String() string {
	switch o {
	case OutcomeConverted:
		return "converted"
	case OutcomeFailed:
		return "failed"
	case OutcomeAborted:
		return "aborted"
	case OutcomePlanned:
		return "planned"
	default:
		return "unknown"
	}
}

// FileResult is the per-file record of a batch run.
type FileResult struct {
	Task        ffmpeg.Task
	Outcome     Outcome
	ExitCode    int // -1 unless ffmpeg exited non-zero.
	Stderr      string
	Err         error
	Elapsed     time.Duration
	InputBytes  int64
	OutputBytes int64
}

// RunStats tracks aggregate counters and byte totals across a batch run.
type RunStats struct {
	RunID            uuid.UUID
	Total            int
	Current          int
	Converted        int
	Failed           int
	Planned          int
	Aborted          bool
	Results          []FileResult
	TotalInputBytes  int64
	TotalOutputBytes int64
}

func (s *RunStats) record(r FileResult) {
	s.Results = append(s.Results, r)
	switch r.Outcome {
	case OutcomeConverted:
		s.Converted++
		s.TotalInputBytes += r.InputBytes
		s.TotalOutputBytes += r.OutputBytes
	case OutcomeFailed:
		s.Failed++
	case OutcomeAborted:
		s.Aborted = true
	case OutcomePlanned:
		s.Planned++
	}
}

// SpaceSaved returns the aggregate byte difference between inputs and outputs
// of converted files. Positive means outputs are smaller; negative means they grew.
func (s *RunStats) SpaceSaved() int64 {
	return s.TotalInputBytes - s.TotalOutputBytes
}
