package linkpipeline

import "time"

// Stage describes a high-level pipeline phase.
type Stage string

const (
	// StageResolve builds the visibility policy.
	StageResolve Stage = "resolve"
	// StageSynthesize writes the exported symbol entries.
	StageSynthesize Stage = "synthesize"
	// StageParse decodes one input descriptor.
	StageParse Stage = "parse"
	// StageLink merges one decoded descriptor into the accumulator.
	StageLink Stage = "link"
	// StageSerialize writes the linked descriptor.
	StageSerialize Stage = "serialize"
)

// Stages lists every stage in execution order.
var Stages = []Stage{StageResolve, StageSynthesize, StageParse, StageLink, StageSerialize}

// Status captures progress state within a stage.
type Status string

const (
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for one input (or for the whole run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings holds stage durations. Parse and link accumulate over all inputs.
type Timings struct {
	stages map[Stage]time.Duration
}

func (t *Timings) ensure() {
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
}

// Add accumulates dur onto stage.
func (t *Timings) Add(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	t.ensure()
	t.stages[stage] += dur
}

// Has reports whether a duration for stage is recorded.
func (t Timings) Has(stage Stage) bool {
	_, ok := t.stages[stage]
	return ok
}

// Duration returns the recorded duration for stage.
func (t Timings) Duration(stage Stage) time.Duration {
	return t.stages[stage]
}

// Sum returns the sum of durations across the provided stages.
func (t Timings) Sum(stages ...Stage) time.Duration {
	var total time.Duration
	for _, stage := range stages {
		total += t.stages[stage]
	}
	return total
}
