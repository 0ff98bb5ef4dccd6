// Package html renders a mounted form controller as an HTML fragment using an
// embedded pongo2 template. Messages are sanitised before they are written.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"github.com/flosch/pongo2/v6"
	"go.uber.org/zap"

	"github.com/goliatone/go-formflow/pkg/form"
	"github.com/goliatone/go-formflow/pkg/schema"
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS fs.FS
	baseDir    string
	action     string
	logger     *zap.Logger
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. It must
// contain FormTemplate.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk before falling
// back to the configured fs.FS.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(path)
	}
}

// WithAction sets the form action attribute.
func WithAction(action string) Option {
	return func(cfg *config) {
		cfg.action = strings.TrimSpace(action)
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Renderer turns controller bindings into markup.
type Renderer struct {
	engine *engine
	action string
	logger *zap.Logger
}

// New constructs the renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	eng, err := newEngine(cfg.templateFS, cfg.baseDir)
	if err != nil {
		return nil, err
	}
	return &Renderer{engine: eng, action: cfg.action, logger: cfg.logger}, nil
}

// ContentType is the media type of Render's output.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

type fieldView struct {
	Name        string
	ID          string
	Label       string
	InputType   string
	IsSelect    bool
	Value       string
	Placeholder string
	Error       string
	Options     []optionView
}

type optionView struct {
	Label    string
	Value    string
	Selected bool
}

// Render writes the current state of ctrl. Password values are never echoed.
func (r *Renderer) Render(ctx context.Context, ctrl *form.Controller) ([]byte, error) {
	if ctrl == nil {
		return nil, ErrNoController
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f := ctrl.Form()
	state := ctrl.Snapshot()

	fields := make([]fieldView, 0, len(f.Fields))
	for _, binding := range ctrl.Bindings() {
		fields = append(fields, newFieldView(binding))
	}

	var formErrors []string
	if state.Last != nil {
		for _, message := range state.Last.FormErrors {
			if cleaned := sanitizeMessage(message); cleaned != "" {
				formErrors = append(formErrors, cleaned)
			}
		}
	}

	submitLabel := f.Submit
	if submitLabel == "" {
		submitLabel = "Submit"
	}

	out, err := r.engine.render(FormTemplate, pongo2.Context{
		"form":         formView(f),
		"fields":       fields,
		"form_errors":  formErrors,
		"submit_label": submitLabel,
		"submitting":   state.Submitting,
		"action":       r.action,
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: %w", err)
	}
	r.logger.Debug("rendered form", zap.String("form", f.ID), zap.Int("bytes", len(out)))
	return out, nil
}

func formView(f schema.Form) map[string]string {
	return map[string]string{
		"ID":          f.ID,
		"Title":       f.Title,
		"Description": f.Description,
	}
}

func newFieldView(binding form.Binding) fieldView {
	field := binding.Field
	view := fieldView{
		Name:        field.Name,
		ID:          controlID(field.Name),
		Label:       field.DisplayLabel(),
		Placeholder: field.Placeholder,
		Error:       sanitizeMessage(binding.Error),
		Value:       binding.Value,
	}

	switch field.Kind.Resolved() {
	case schema.KindSelect:
		view.IsSelect = true
		for _, option := range field.Options {
			view.Options = append(view.Options, optionView{
				Label:    option.Label,
				Value:    option.Value,
				Selected: option.Value == binding.Value,
			})
		}
	case schema.KindPassword:
		view.InputType = "password"
		view.Value = ""
	case schema.KindText:
		view.InputType = "text"
	default:
		view.InputType = "text"
		view.Value = ""
	}
	return view
}

func controlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "ff-" + trimmed
}
