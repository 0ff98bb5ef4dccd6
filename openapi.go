package formflow

import (
	"context"

	"github.com/goliatone/go-formflow/pkg/openapi"
	"github.com/goliatone/go-formflow/pkg/schema"
)

// LoadForm reads the OpenAPI document at location and returns the form
// derived from operationID's request body.
func LoadForm(ctx context.Context, location, operationID string, options ...openapi.LoaderOption) (schema.Form, error) {
	doc, err := openapi.Load(ctx, openapi.NewLoader(options...), location)
	if err != nil {
		return schema.Form{}, err
	}
	return doc.Form(operationID)
}
