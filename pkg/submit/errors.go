package submit

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport wraps failures to reach the collaborator at all.
	ErrTransport = errors.New("submit: transport failure")
	// ErrMalformedResponse is returned when a response body cannot be decoded.
	ErrMalformedResponse = errors.New("submit: malformed response")
	// ErrEndpointRequired is returned when a client is built without a URL.
	ErrEndpointRequired = errors.New("submit: endpoint is required")
)

// StatusError reports an unexpected HTTP status from a collaborator.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("submit: unexpected status %d", e.Status)
	}
	return fmt.Sprintf("submit: unexpected status %d: %s", e.Status, e.Body)
}

// RejectedError carries a server-side validation rejection. Fields holds the
// raw error paths as the server sent them; Messages holds form-level text.
type RejectedError struct {
	Status   int
	Fields   map[string][]string
	Messages []string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("submit: rejected with status %d", e.Status)
}

// isTransport reports whether err means the collaborator was unreachable or
// answered with something unreadable.
func isTransport(err error) bool {
	return errors.Is(err, ErrTransport) || errors.Is(err, ErrMalformedResponse)
}
