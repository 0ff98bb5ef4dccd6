package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrBusy is returned when the controller is still resolving a previous
	// submission.
	ErrBusy = errors.New("tui: form is busy")
	// ErrTooManyRounds is returned when the prompt loop hits its round limit.
	ErrTooManyRounds = errors.New("tui: too many submission rounds")
)
