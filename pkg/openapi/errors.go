package openapi

import "errors"

var (
	// ErrEmptyDocument is returned when the document payload is empty.
	ErrEmptyDocument = errors.New("openapi: document payload is empty")
	// ErrNoOperations is returned when a document declares no operations.
	ErrNoOperations = errors.New("openapi: no operations extracted")
	// ErrUnknownOperation is returned when an operationId is not declared.
	ErrUnknownOperation = errors.New("openapi: unknown operation")
	// ErrNoRequestBody is returned for operations without an object body.
	ErrNoRequestBody = errors.New("openapi: operation has no object request body")
	// ErrHTTPDisabled is returned when a URL is loaded without an HTTP client.
	ErrHTTPDisabled = errors.New("openapi: http support disabled")
)
