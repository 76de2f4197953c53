package ports

import "time"

// Pipeline stages reported to a Recorder.
const (
	StageFetch     = "fetch"
	StageNormalize = "normalize"
	StageSort      = "sort"
	StageWrite     = "write"
)

// Recorder receives pipeline measurements.
type Recorder interface {
	ObserveStage(stage string, elapsed time.Duration)
	AddTerms(count int)
	IncFailure(stage string)
}

// NopRecorder discards every measurement.
type NopRecorder struct{}

func (NopRecorder) ObserveStage(string, time.Duration) {}
func (NopRecorder) AddTerms(int)                       {}
func (NopRecorder) IncFailure(string)                  {}
