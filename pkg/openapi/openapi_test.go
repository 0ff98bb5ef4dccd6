package openapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-formflow/pkg/schema"
	"github.com/goliatone/go-formflow/pkg/validation"
)

func loadFixture(t *testing.T) *Document {
	t.Helper()
	ctx := context.Background()
	doc, err := Load(ctx, NewLoader(), filepath.Join("testdata", "formflow.yaml"))
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	return doc
}

func TestParse_SignInOperation(t *testing.T) {
	doc := loadFixture(t)

	op, err := doc.Operation("signIn")
	if err != nil {
		t.Fatalf("operation: %v", err)
	}
	if op.Method != http.MethodPost || op.Path != "/auth/signin" {
		t.Fatalf("unexpected route %s %s", op.Method, op.Path)
	}

	want := schema.Form{
		ID:     "signIn",
		Title:  "Sign In",
		Submit: "Sign In",
		Fields: []schema.Field{
			{
				Name:        "username",
				Label:       "Username*",
				Kind:        schema.KindText,
				Placeholder: "Enter a username",
				Rules: []schema.Rule{
					schema.Required("Username is required"),
					schema.MinLength(5, "Username must have more than 4 characters"),
					schema.MaxLength(50, ""),
				},
			},
			{
				Name:  "password",
				Label: "Password*",
				Kind:  schema.KindPassword,
				Rules: []schema.Rule{
					schema.Required("Password is required"),
					schema.MinLength(9, "Password must have than 8 characters"),
				},
			},
		},
	}
	if diff := cmp.Diff(want, op.Form, cmpopts.IgnoreFields(schema.Rule{}, "Predicate")); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_DerivedFormValidatesLikeEmbedded(t *testing.T) {
	doc := loadFixture(t)
	form, err := doc.Form("signIn")
	if err != nil {
		t.Fatalf("form: %v", err)
	}

	result := validation.Validate(form, map[string]string{"username": "bob", "password": ""})
	want := map[string]string{
		"username": "Username must have more than 4 characters",
		"password": "Password is required",
	}
	if diff := cmp.Diff(want, result.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_EnumBecomesSelect(t *testing.T) {
	doc := loadFixture(t)
	form, err := doc.Form("createClassification")
	if err != nil {
		t.Fatalf("form: %v", err)
	}

	field, ok := form.Field("type")
	if !ok {
		t.Fatalf("type field missing")
	}
	if field.Kind != schema.KindSelect {
		t.Fatalf("expected select, got %s", field.Kind)
	}
	wantOptions := []schema.Option{{Label: "Income", Value: "in"}, {Label: "Expense", Value: "ex"}}
	if diff := cmp.Diff(wantOptions, field.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"type", "classification"}, form.Names()); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
	if form.Submit != "Add" {
		t.Fatalf("unexpected submit label %q", form.Submit)
	}
}

func TestDocument_Lookups(t *testing.T) {
	doc := loadFixture(t)

	if diff := cmp.Diff([]string{"createClassification", "signIn"}, doc.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	if _, err := doc.Operation("listClassifications"); !errors.Is(err, ErrNoRequestBody) {
		t.Fatalf("expected ErrNoRequestBody, got %v", err)
	}
	if _, err := doc.Operation("missing"); !errors.Is(err, ErrUnknownOperation) {
		t.Fatalf("expected ErrUnknownOperation, got %v", err)
	}
}

func TestParse_Errors(t *testing.T) {
	ctx := context.Background()
	if _, err := Parse(ctx, nil); !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
	empty := []byte(`{"openapi":"3.0.0","info":{"title":"x","version":"1"},"paths":{}}`)
	if _, err := Parse(ctx, empty); !errors.Is(err, ErrNoOperations) {
		t.Fatalf("expected ErrNoOperations, got %v", err)
	}
	if _, err := Parse(ctx, []byte("not: [valid")); err == nil {
		t.Fatalf("expected error for malformed document")
	}
}

func TestLoader_Sources(t *testing.T) {
	ctx := context.Background()
	data, err := os.ReadFile(filepath.Join("testdata", "formflow.yaml"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	files := fstest.MapFS{"api/formflow.yaml": {Data: data}}
	if _, err := Load(ctx, NewLoader(WithFileSystem(files)), "api/formflow.yaml"); err != nil {
		t.Fatalf("load fs: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(data)
	}))
	defer server.Close()

	if _, err := NewLoader().Load(ctx, server.URL); !errors.Is(err, ErrHTTPDisabled) {
		t.Fatalf("expected ErrHTTPDisabled, got %v", err)
	}
	doc, err := Load(ctx, NewLoader(WithHTTPFallback(0)), server.URL)
	if err != nil {
		t.Fatalf("load http: %v", err)
	}
	if _, err := doc.Form("signIn"); err != nil {
		t.Fatalf("form from http document: %v", err)
	}
}
