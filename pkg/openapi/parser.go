package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formflow/pkg/schema"
)

// Operation is a declared operation whose request body was turned into a form.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string
	Form        schema.Form
}

// Document holds the forms derived from one OpenAPI document, keyed by
// operationId.
type Document struct {
	operations map[string]Operation
	declared   map[string]struct{}
}

// Parse loads raw (JSON or YAML), validates it and derives a form for every
// operation with an object request body. Operations without an operationId are
// keyed as "<method>:<path>".
func Parse(ctx context.Context, raw []byte) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, ErrEmptyDocument
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi parser: validate: %w", err)
	}

	doc := &Document{
		operations: make(map[string]Operation),
		declared:   make(map[string]struct{}),
	}
	if spec.Paths == nil {
		return nil, ErrNoOperations
	}
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, operation := range item.Operations() {
			if err := doc.collect(method, path, operation); err != nil {
				return nil, err
			}
		}
	}
	if len(doc.declared) == 0 {
		return nil, ErrNoOperations
	}
	return doc, nil
}

func (d *Document) collect(method, path string, operation *openapi3.Operation) error {
	if operation == nil {
		return nil
	}
	id := operation.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}
	d.declared[id] = struct{}{}

	body := requestSchema(operation.RequestBody)
	if body == nil {
		return nil
	}

	form, err := formFromSchema(id, operation, body)
	if err != nil {
		return fmt.Errorf("openapi parser: operation %q: %w", id, err)
	}
	d.operations[id] = Operation{
		ID:          id,
		Method:      strings.ToUpper(method),
		Path:        path,
		Summary:     operation.Summary,
		Description: operation.Description,
		Form:        form,
	}
	return nil
}

// Operation returns the operation with the given id.
func (d *Document) Operation(id string) (Operation, error) {
	if op, ok := d.operations[id]; ok {
		return op, nil
	}
	if _, ok := d.declared[id]; ok {
		return Operation{}, fmt.Errorf("%w: %q", ErrNoRequestBody, id)
	}
	return Operation{}, fmt.Errorf("%w: %q", ErrUnknownOperation, id)
}

// Form is shorthand for Operation(id).Form.
func (d *Document) Form(id string) (schema.Form, error) {
	op, err := d.Operation(id)
	if err != nil {
		return schema.Form{}, err
	}
	return op.Form, nil
}

// IDs returns the ids of operations that produced a form, sorted.
func (d *Document) IDs() []string {
	out := make([]string, 0, len(d.operations))
	for id := range d.operations {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Load reads location with loader and parses it.
func Load(ctx context.Context, loader *Loader, location string) (*Document, error) {
	if loader == nil {
		return nil, errors.New("openapi: loader is nil")
	}
	raw, err := loader.Load(ctx, location)
	if err != nil {
		return nil, err
	}
	return Parse(ctx, raw)
}

// requestSchema picks the object schema of a request body, preferring JSON.
func requestSchema(ref *openapi3.RequestBodyRef) *openapi3.Schema {
	if ref == nil || ref.Value == nil {
		return nil
	}
	content := ref.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil && isObject(mt.Schema.Value) {
			return mt.Schema.Value
		}
	}
	return nil
}

func isObject(s *openapi3.Schema) bool {
	if s == nil {
		return false
	}
	if s.Type == nil || len(s.Type.Slice()) == 0 {
		return len(s.Properties) > 0
	}
	return s.Type.Is(openapi3.TypeObject)
}
