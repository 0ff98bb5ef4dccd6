package form

import "github.com/goliatone/go-formflow/pkg/submit"

// Status is the controller's position in the submit lifecycle.
type Status int

const (
	StatusIdle Status = iota
	StatusValidating
	StatusSubmitting
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusValidating:
		return "validating"
	case StatusSubmitting:
		return "submitting"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is a copy of the controller's form state. Errors holds at most one
// message per field; valid fields are absent.
type State struct {
	Values     map[string]string
	Errors     map[string]string
	Touched    map[string]bool
	Submitting bool
	Status     Status
	// Attempts counts submissions handed to the collaborator.
	Attempts int
	// Last is the most recent outcome, if any submission has resolved.
	Last *submit.Outcome
}

func (s State) clone() State {
	out := s
	out.Values = copyStrings(s.Values)
	out.Errors = copyStrings(s.Errors)
	out.Touched = make(map[string]bool, len(s.Touched))
	for k, v := range s.Touched {
		out.Touched[k] = v
	}
	if s.Last != nil {
		last := *s.Last
		out.Last = &last
	}
	return out
}

func copyStrings(src map[string]string) map[string]string {
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
