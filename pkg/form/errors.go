package form

import "errors"

var (
	// ErrUnknownField is returned when a change targets a field the schema
	// does not declare.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrUnknownOption is returned when a select is set to a value outside
	// its option set.
	ErrUnknownOption = errors.New("form: unknown option")
	// ErrUnmounted is returned for mutations after Unmount.
	ErrUnmounted = errors.New("form: controller is unmounted")
	// ErrNoSubmitter is returned when a controller is built without a
	// submission collaborator.
	ErrNoSubmitter = errors.New("form: submitter is required")
)
