package submit

import "context"

// Kind distinguishes the two Outcome variants.
type Kind int

const (
	KindSuccess Kind = iota + 1
	KindFailure
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Reason classifies a Failure.
type Reason string

const (
	ReasonInvalidCredentials Reason = "invalid_credentials"
	ReasonNetworkError       Reason = "network_error"
	ReasonUnknown            Reason = "unknown"
)

// Outcome is the terminal result of one submission attempt.
type Outcome struct {
	Kind    Kind
	Payload any
	Reason  Reason
	Err     error

	// FieldErrors holds server-side messages keyed by form field name.
	FieldErrors map[string]string
	// FormErrors holds server-side messages that map to no field.
	FormErrors []string
}

// Success builds a successful outcome.
func Success(payload any) Outcome {
	return Outcome{Kind: KindSuccess, Payload: payload}
}

// Failure builds a failed outcome with the underlying cause attached.
func Failure(reason Reason, err error) Outcome {
	if reason == "" {
		reason = ReasonUnknown
	}
	return Outcome{Kind: KindFailure, Reason: reason, Err: err}
}

// Succeeded reports whether the outcome is the Success variant.
func (o Outcome) Succeeded() bool {
	return o.Kind == KindSuccess
}

// Submitter performs one submission of validated values. Implementations
// must not retry and must always return an Outcome.
type Submitter interface {
	Submit(ctx context.Context, values map[string]string) Outcome
}

// SubmitterFunc adapts a function into a Submitter.
type SubmitterFunc func(ctx context.Context, values map[string]string) Outcome

// Submit calls the underlying function.
func (fn SubmitterFunc) Submit(ctx context.Context, values map[string]string) Outcome {
	return fn(ctx, values)
}
