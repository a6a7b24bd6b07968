package harvest

// Stage identifies the pipeline step a task is in.
type Stage string

// Pipeline stages in traversal order.
const (
	StageValidate Stage = "validate"
	StageProbe    Stage = "probe"
	StageFetch    Stage = "fetch"
	StageExtract  Stage = "extract"
	StageDone     Stage = "done"
)

// Failure records why a URL produced no rows.
type Failure struct {
	Task   Task
	Stage  Stage
	Code   string
	Reason string
}

// NewFailure builds a Failure from a stage error.
func NewFailure(task Task, stage Stage, err error) Failure {
	return Failure{
		Task:   task,
		Stage:  stage,
		Code:   ErrorCode(err),
		Reason: ErrorMessage(err),
	}
}

// Outcome is the result of running a batch.
type Outcome struct {
	// Rows in input URL order, then document order within a URL.
	Rows []Row

	// Failures in input URL order, one per rejected URL.
	Failures []Failure
}

// Progress reports a task reaching a terminal state.
type Progress struct {
	URL       string
	Completed int
	Total     int
	Error     error
}

// ProgressFunc is called once per completed task.
type ProgressFunc func(Progress)

// EventStatus describes what happened at a stage transition.
type EventStatus string

// Event statuses.
const (
	EventStarted  EventStatus = "started"
	EventPassed   EventStatus = "passed"
	EventRejected EventStatus = "rejected"
	EventRetry    EventStatus = "retry"
	EventEmpty    EventStatus = "empty"
)

// Event is a structured record of a stage transition, emitted only when
// the pipeline runs verbosely.
type Event struct {
	Task   Task
	Stage  Stage
	Status EventStatus
	Err    error
	Rows   int
}

// EventFunc receives pipeline events. Implementations must be safe for
// concurrent use.
type EventFunc func(Event)
