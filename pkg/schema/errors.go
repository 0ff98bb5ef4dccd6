package schema

import "errors"

var (
	// ErrEmptyFieldName is returned when a field is declared without a name.
	ErrEmptyFieldName = errors.New("schema: field name is required")
	// ErrDuplicateField is returned when two fields share a name.
	ErrDuplicateField = errors.New("schema: duplicate field")
	// ErrDuplicateOption is returned when an option value repeats within a field.
	ErrDuplicateOption = errors.New("schema: duplicate option value")
	// ErrUnexpectedOptions is returned when a non-select field declares options.
	ErrUnexpectedOptions = errors.New("schema: options are only valid on select fields")
	// ErrUnknownKind is returned when a field kind is not text, password or select.
	ErrUnknownKind = errors.New("schema: unknown field kind")
	// ErrUnknownRule is returned for rule types the evaluator does not recognise.
	ErrUnknownRule = errors.New("schema: unknown rule type")
)
