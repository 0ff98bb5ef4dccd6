package form

import "github.com/goliatone/go-formflow/pkg/submit"

// AttemptStatus reports what a Submit call did.
type AttemptStatus int

const (
	// AttemptDispatched means validation passed and the submitter was invoked.
	AttemptDispatched AttemptStatus = iota + 1
	// AttemptInvalid means validation failed; nothing was submitted.
	AttemptInvalid
	// AttemptIgnored means a previous attempt was still resolving.
	AttemptIgnored
)

func (s AttemptStatus) String() string {
	switch s {
	case AttemptDispatched:
		return "dispatched"
	case AttemptInvalid:
		return "invalid"
	case AttemptIgnored:
		return "ignored"
	default:
		return "unknown"
	}
}

// Attempt is the handle returned by Submit.
type Attempt struct {
	Status AttemptStatus
	// Errors holds the validation errors of an invalid attempt.
	Errors map[string]string

	done    chan struct{}
	outcome submit.Outcome
}

func resolvedAttempt(status AttemptStatus, errs map[string]string) *Attempt {
	done := make(chan struct{})
	close(done)
	return &Attempt{Status: status, Errors: copyStrings(errs), done: done}
}

// Done is closed once the attempt has reached Idle again, feedback included.
func (a *Attempt) Done() <-chan struct{} {
	return a.done
}

// Wait blocks until Done and returns the outcome. Attempts that never reached
// the submitter return the zero Outcome.
func (a *Attempt) Wait() submit.Outcome {
	<-a.done
	return a.outcome
}
