// Package forms ships the built-in form definitions (sign-in and
// add-classification) as embedded YAML and exposes typed accessors over them.
package forms

import (
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"github.com/goliatone/go-formflow/pkg/schema"
)

const (
	// SignInID identifies the credential sign-in form.
	SignInID = "signin"
	// ClassificationID identifies the add-classification form.
	ClassificationID = "classification"

	// TypeField is the classification type select.
	TypeField = "type"
	// ClassificationField is the classification name input.
	ClassificationField = "classification"
	// UsernameField and PasswordField are the sign-in inputs.
	UsernameField = "username"
	PasswordField = "password"
)

//go:embed definitions/*.yaml
var definitions embed.FS

var (
	storeOnce sync.Once
	store     *schema.Store
	storeErr  error
)

// Store returns the built-in definitions, parsed once.
func Store() (*schema.Store, error) {
	storeOnce.Do(func() {
		sub, err := fs.Sub(definitions, "definitions")
		if err != nil {
			storeErr = fmt.Errorf("forms: %w", err)
			return
		}
		store, storeErr = schema.LoadFS(sub)
	})
	return store, storeErr
}

// Lookup returns a built-in form by id.
func Lookup(id string) (schema.Form, error) {
	s, err := Store()
	if err != nil {
		return schema.Form{}, err
	}
	form, ok := s.Form(id)
	if !ok {
		return schema.Form{}, fmt.Errorf("forms: unknown form %q", id)
	}
	return form, nil
}

// SignIn returns the sign-in form. It panics only if the embedded definitions
// are broken, which the package tests guard against.
func SignIn() schema.Form {
	return mustLookup(SignInID)
}

// Classification returns the add-classification form.
func Classification() schema.Form {
	return mustLookup(ClassificationID)
}

// ClassificationValues seeds the classification form from an externally
// supplied type code. A code that matches no option leaves the type unset.
func ClassificationValues(typeValue string) map[string]string {
	return ClassificationValuesFor(Classification(), typeValue)
}

// ClassificationValuesFor is ClassificationValues against definition, which
// may declare its own type options.
func ClassificationValuesFor(definition schema.Form, typeValue string) map[string]string {
	values := map[string]string{ClassificationField: ""}
	field, ok := definition.Field(TypeField)
	if !ok {
		return values
	}
	if typeValue != "" && field.HasOption(typeValue) {
		values[TypeField] = typeValue
	}
	return values
}

// SignInValues returns the empty credential defaults.
func SignInValues() map[string]string {
	return map[string]string{UsernameField: "", PasswordField: ""}
}

func mustLookup(id string) schema.Form {
	form, err := Lookup(id)
	if err != nil {
		panic(err)
	}
	return form
}
