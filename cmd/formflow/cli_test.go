package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("FORMFLOW_OPENAPI", "")
	openapiSource, operationID = "", ""
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(context.Background())
}

func TestRenderCommandWritesHTML(t *testing.T) {
	out := filepath.Join(t.TempDir(), "classification.html")
	if err := execute(t, "render", "--form", "classification", "--type", "ex", "--action", "/classifications", "--output", out); err != nil {
		t.Fatalf("render: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	html := string(data)
	for _, want := range []string{
		`action="/classifications"`,
		`<option value="ex" selected>Expense</option>`,
		`<button type="submit">Add</button>`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output\n%s", want, html)
		}
	}
}

func TestRenderCommandFromOpenAPI(t *testing.T) {
	out := filepath.Join(t.TempDir(), "signin.html")
	source := filepath.Join("..", "..", "pkg", "openapi", "testdata", "formflow.yaml")
	if err := execute(t, "render", "--form", "signin", "--openapi", source, "--output", out); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), `<form id="signIn"`) {
		t.Fatalf("expected OpenAPI-derived form id\n%s", data)
	}
}

func TestRenderCommandRejectsUnknownForm(t *testing.T) {
	if err := execute(t, "render", "--form", "nope"); err == nil {
		t.Fatalf("expected error for unknown form")
	}
}
