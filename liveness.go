package harvest

import "context"

// LivenessStatus classifies the outcome of a liveness probe.
type LivenessStatus int

// Liveness statuses, in the order the probe evaluates them.
const (
	Alive LivenessStatus = iota
	Dead
	NotFound
	InvalidFormat
)

// String returns the status name.
func (s LivenessStatus) String() string {
	switch s {
	case Alive:
		return "alive"
	case Dead:
		return "dead"
	case NotFound:
		return "not_found"
	case InvalidFormat:
		return "invalid_format"
	default:
		return "unknown"
	}
}

// NotFoundMarker is the phrase that marks a reachable page as empty.
// Matching is case-insensitive.
const NotFoundMarker = "page not found"

// LivenessResult is the outcome of probing a single URL.
type LivenessResult struct {
	Status LivenessStatus

	// Detail explains a non-Alive status (error text, HTTP status).
	Detail string
}

// Err converts a rejected result into an application error.
// Returns nil for Alive.
func (r LivenessResult) Err() error {
	switch r.Status {
	case Alive:
		return nil
	case Dead:
		return Errorf(EDEAD, "%s", r.Detail)
	case NotFound:
		return Errorf(ENOTFOUND, "%s", r.Detail)
	case InvalidFormat:
		return Errorf(EINVALID, "%s", r.Detail)
	default:
		return Errorf(EINTERNAL, "unknown liveness status %d", r.Status)
	}
}

// LivenessChecker issues a lightweight probe to decide whether a page is
// worth fetching in full.
type LivenessChecker interface {
	// Check probes the URL. It never returns an error; transport failures
	// are reported as Dead.
	Check(ctx context.Context, url string) LivenessResult
}
