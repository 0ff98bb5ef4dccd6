package schema_test

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/schema"
)

func TestRuleCheck(t *testing.T) {
	cases := []struct {
		name  string
		rule  schema.Rule
		value string
		want  bool
	}{
		{"required empty", schema.Required(""), "", false},
		{"required set", schema.Required(""), "x", true},
		{"min below", schema.MinLength(5, ""), "abcd", false},
		{"min exact", schema.MinLength(5, ""), "abcde", true},
		{"min counts runes", schema.MinLength(3, ""), "äöü", true},
		{"min counts emoji as one", schema.MinLength(5, ""), "😀😀😀", false},
		{"max above", schema.MaxLength(2, ""), "abc", false},
		{"max exact", schema.MaxLength(3, ""), "abc", true},
		{"oneOf hit", schema.OneOf([]string{"in", "ex"}, ""), "ex", true},
		{"oneOf miss", schema.OneOf([]string{"in", "ex"}, ""), "zz", false},
		{"pattern hit", schema.Pattern(`^[a-z]+$`, ""), "abc", true},
		{"pattern miss", schema.Pattern(`^[a-z]+$`, ""), "ab1", false},
		{"bad pattern", schema.Pattern(`(`, ""), "(", false},
		{"custom", schema.Custom(func(v string) bool { return v == "ok" }, ""), "ok", true},
		{"custom nil", schema.Rule{Type: schema.RuleCustom}, "ok", false},
		{"unknown", schema.Rule{Type: "nope"}, "ok", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.rule.Check(tc.value); got != tc.want {
				t.Fatalf("Check(%q) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}

func TestRuleTextDefaults(t *testing.T) {
	if got := schema.MinLength(1, "").Text(); got != "String must contain at least 1 character(s)" {
		t.Fatalf("unexpected min message %q", got)
	}
	if got := schema.MaxLength(50, "").Text(); got != "String must contain at most 50 character(s)" {
		t.Fatalf("unexpected max message %q", got)
	}
	if got := schema.Required("  Username is required ").Text(); got != "Username is required" {
		t.Fatalf("expected trimmed custom message, got %q", got)
	}
}

func TestFormCheck(t *testing.T) {
	cases := []struct {
		name string
		form schema.Form
		want error
	}{
		{
			name: "duplicate field",
			form: schema.Form{ID: "f", Fields: []schema.Field{{Name: "a"}, {Name: "a"}}},
			want: schema.ErrDuplicateField,
		},
		{
			name: "empty name",
			form: schema.Form{ID: "f", Fields: []schema.Field{{Name: " "}}},
			want: schema.ErrEmptyFieldName,
		},
		{
			name: "duplicate option",
			form: schema.Form{ID: "f", Fields: []schema.Field{{
				Name: "type", Kind: schema.KindSelect,
				Options: []schema.Option{{Label: "A", Value: "a"}, {Label: "B", Value: "a"}},
			}}},
			want: schema.ErrDuplicateOption,
		},
		{
			name: "options on text",
			form: schema.Form{ID: "f", Fields: []schema.Field{{
				Name: "name", Kind: schema.KindText, Options: []schema.Option{{Label: "A", Value: "a"}},
			}}},
			want: schema.ErrUnexpectedOptions,
		},
		{
			name: "unknown kind",
			form: schema.Form{ID: "f", Fields: []schema.Field{{Name: "password", Kind: "passwd"}}},
			want: schema.ErrUnknownKind,
		},
		{
			name: "unknown rule",
			form: schema.Form{ID: "f", Fields: []schema.Field{{Name: "a", Rules: []schema.Rule{{Type: "bogus"}}}}},
			want: schema.ErrUnknownRule,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.form.Check()
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestFieldOptionLookup(t *testing.T) {
	field := schema.Field{
		Name: "type",
		Kind: schema.KindSelect,
		Options: []schema.Option{
			{Label: "Income", Value: "in"},
			{Label: "Expense", Value: "ex"},
		},
	}

	if label, ok := field.LabelFor("ex"); !ok || label != "Expense" {
		t.Fatalf("LabelFor(ex) = %q, %v", label, ok)
	}
	if _, ok := field.LabelFor("zz"); ok {
		t.Fatalf("expected no label for unknown code")
	}
	if value, ok := field.ValueFor("Income"); !ok || value != "in" {
		t.Fatalf("ValueFor(Income) = %q, %v", value, ok)
	}
}

func TestFormDefaultsDropsUnknownOptions(t *testing.T) {
	form := schema.Form{ID: "f", Fields: []schema.Field{
		{Name: "name", Kind: schema.KindText, Default: "x"},
		{Name: "type", Kind: schema.KindSelect, Default: "zz", Options: []schema.Option{{Label: "A", Value: "a"}}},
	}}
	if diff := cmp.Diff(map[string]string{"name": "x"}, form.Defaults()); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"forms/contact.yaml": {Data: []byte(`
forms:
  contact:
    title: Contact
    fields:
      - name: email
        kind: text
        rules:
          - type: required
            message: Email is required
          - type: pattern
            pattern: "^[^@]+@[^@]+$"
            message: Email is invalid
      - name: topic
        kind: select
        options:
          - { label: Sales, value: sales }
          - { label: Support, value: support }
`)},
		"forms/feedback.json": {Data: []byte(`{"forms":{"feedback":{"fields":[{"name":"body","kind":"text"}]}}}`)},
		"forms/README.md":     {Data: []byte("ignored")},
	}

	store, err := schema.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"contact", "feedback"}, store.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	contact, ok := store.Form("contact")
	if !ok {
		t.Fatalf("contact form missing")
	}
	if contact.ID != "contact" {
		t.Fatalf("expected id from map key, got %q", contact.ID)
	}
	if diff := cmp.Diff([]string{"email", "topic"}, contact.Names()); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
	email, _ := contact.Field("email")
	if len(email.Rules) != 2 || email.Rules[1].Type != schema.RulePattern {
		t.Fatalf("rules not parsed: %#v", email.Rules)
	}
}

func TestLoadFSRejectsDuplicates(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte("forms:\n  same:\n    fields:\n      - name: a\n")},
		"b.yaml": {Data: []byte("forms:\n  same:\n    fields:\n      - name: b\n")},
	}
	if _, err := schema.LoadFS(fsys); err == nil {
		t.Fatalf("expected duplicate form error")
	}
}

func TestLoadFSRejectsInvalidDefinitions(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.yaml": {Data: []byte("forms:\n  bad:\n    fields:\n      - name: a\n      - name: a\n")},
	}
	_, err := schema.LoadFS(fsys)
	if !errors.Is(err, schema.ErrDuplicateField) {
		t.Fatalf("expected ErrDuplicateField, got %v", err)
	}
}

func TestLoadFSRejectsUnknownKind(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.yaml": {Data: []byte("forms:\n  bad:\n    fields:\n      - name: password\n        kind: passwd\n      - name: other\n")},
	}
	_, err := schema.LoadFS(fsys)
	if !errors.Is(err, schema.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestLoadFSDefaultsEmptyKindToText(t *testing.T) {
	fsys := fstest.MapFS{
		"ok.yaml": {Data: []byte("forms:\n  ok:\n    fields:\n      - name: other\n")},
	}
	store, err := schema.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	form, ok := store.Form("ok")
	if !ok {
		t.Fatalf("expected form ok")
	}
	if got := form.Fields[0].Kind; got != schema.KindText {
		t.Fatalf("kind = %q, want %q", got, schema.KindText)
	}
}

func TestLoadFSNil(t *testing.T) {
	store, err := schema.LoadFS(nil)
	if err != nil {
		t.Fatalf("load nil: %v", err)
	}
	if !store.Empty() {
		t.Fatalf("expected empty store")
	}
}
