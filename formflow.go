// Package formflow wires the sign-in and classification forms end to end:
// embedded definitions, validation, the submit adapter for each form, the
// feedback dispatcher and the controller that drives them.
package formflow

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-formflow/pkg/feedback"
	"github.com/goliatone/go-formflow/pkg/form"
	"github.com/goliatone/go-formflow/pkg/forms"
	"github.com/goliatone/go-formflow/pkg/schema"
	"github.com/goliatone/go-formflow/pkg/submit"
)

// Option configures NewSignIn and NewClassification.
type Option func(*options)

type options struct {
	logger       *zap.Logger
	successPath  string
	definition   *schema.Form
	observers    []form.Observer
	feedbackOpts []feedback.Option
}

// WithLogger attaches a logger to every wired component.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSuccessPath overrides where a successful sign-in navigates.
func WithSuccessPath(path string) Option {
	return func(o *options) {
		o.successPath = path
	}
}

// WithDefinition replaces the embedded form definition, e.g. with one derived
// from an OpenAPI document. Field names must match the built-in form.
func WithDefinition(definition schema.Form) Option {
	return func(o *options) {
		o.definition = &definition
	}
}

// WithObserver registers a state observer on the controller.
func WithObserver(fn form.Observer) Option {
	return func(o *options) {
		if fn != nil {
			o.observers = append(o.observers, fn)
		}
	}
}

// WithFeedbackOptions forwards options to the feedback dispatcher.
func WithFeedbackOptions(opts ...feedback.Option) Option {
	return func(o *options) {
		o.feedbackOpts = append(o.feedbackOpts, opts...)
	}
}

func newOptions(opts []Option) options {
	o := options{logger: zap.NewNop(), successPath: feedback.DashboardPath}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

func (o options) form(fallback schema.Form) schema.Form {
	if o.definition != nil {
		return *o.definition
	}
	return fallback
}

func (o options) controllerOptions(values map[string]string) []form.Option {
	out := []form.Option{form.WithValues(values), form.WithLogger(o.logger)}
	for _, fn := range o.observers {
		out = append(out, form.WithObserver(fn))
	}
	return out
}

// NewSignIn mounts the sign-in form. Valid submissions go to auth with
// redirect disabled; success navigates to the landing path, rejected
// credentials raise "Invalid Username or Password".
func NewSignIn(auth submit.Authenticator, nav feedback.Navigator, notifier feedback.Notifier, opts ...Option) (*form.Controller, error) {
	o := newOptions(opts)

	submitter := submit.NewCredentialSubmitter(auth,
		submit.WithCredentialFields(forms.UsernameField, forms.PasswordField),
		submit.WithCredentialLogger(o.logger),
	)
	feedbackOpts := append([]feedback.Option{
		feedback.WithSuccessPath(o.successPath),
		feedback.WithLogger(o.logger),
	}, o.feedbackOpts...)
	dispatcher := feedback.New(nav, notifier, feedbackOpts...)

	return form.New(o.form(forms.SignIn()), submitter, dispatcher, o.controllerOptions(forms.SignInValues())...)
}

// NewClassification mounts the classification form with the type select
// preselected from typeValue when it names a known option. Success refreshes
// the current view without navigating.
func NewClassification(typeValue string, creator submit.Creator, nav feedback.Navigator, notifier feedback.Notifier, opts ...Option) (*form.Controller, error) {
	o := newOptions(opts)
	definition := o.form(forms.Classification())

	submitter := submit.NewRecordSubmitter(definition, creator, submit.WithRecordLogger(o.logger))
	feedbackOpts := append([]feedback.Option{feedback.WithLogger(o.logger)}, o.feedbackOpts...)
	dispatcher := feedback.New(nav, notifier, feedbackOpts...)

	return form.New(definition, submitter, dispatcher, o.controllerOptions(forms.ClassificationValuesFor(definition, typeValue))...)
}
