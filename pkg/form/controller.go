// Package form owns the mutable state of a single mounted form and drives the
// validate-then-submit lifecycle:
//
//	Idle --change--> Idle
//	Idle --submit--> Validating --invalid--> Idle
//	                 Validating --valid--> Submitting --outcome--> Succeeded|Failed --feedback--> Idle
//
// Validation always completes synchronously before the collaborator is
// invoked, and at most one submission is in flight per controller.
package form

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-formflow/pkg/schema"
	"github.com/goliatone/go-formflow/pkg/submit"
	"github.com/goliatone/go-formflow/pkg/validation"
)

// Dispatcher receives every resolved outcome. *feedback.Dispatcher satisfies it.
type Dispatcher interface {
	Dispatch(outcome submit.Outcome)
}

// Observer is notified with a state copy after each change.
type Observer func(State)

// Option configures a Controller.
type Option func(*Controller)

// WithValues seeds initial values over the schema defaults. Select values
// outside the option set are dropped so the field starts unset.
func WithValues(values map[string]string) Option {
	return func(c *Controller) {
		for name, value := range values {
			c.initial[name] = value
		}
	}
}

// WithLogger attaches a logger. Field values are never logged.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithObserver registers fn to run after each state change.
func WithObserver(fn Observer) Option {
	return func(c *Controller) {
		if fn != nil {
			c.observers = append(c.observers, fn)
		}
	}
}

// Controller is the form state machine. It is safe for concurrent use; all
// mutations are serialised.
type Controller struct {
	mu sync.Mutex

	form       schema.Form
	submitter  submit.Submitter
	dispatcher Dispatcher
	logger     *zap.Logger
	observers  []Observer
	initial    map[string]string

	state     State
	unmounted bool
}

// New mounts a controller for form. dispatcher may be nil.
func New(form schema.Form, submitter submit.Submitter, dispatcher Dispatcher, options ...Option) (*Controller, error) {
	if err := form.Check(); err != nil {
		return nil, err
	}
	if submitter == nil {
		return nil, ErrNoSubmitter
	}

	c := &Controller{
		form:       form,
		submitter:  submitter,
		dispatcher: dispatcher,
		logger:     zap.NewNop(),
		initial:    form.Defaults(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	if c.dispatcher == nil {
		c.dispatcher = nopDispatcher{}
	}
	c.logger = c.logger.With(zap.String("form", form.ID))

	values := make(map[string]string, len(form.Fields))
	for _, field := range form.Fields {
		value := c.initial[field.Name]
		if field.Kind == schema.KindSelect && value != "" && !field.HasOption(value) {
			c.logger.Debug("dropping unknown initial option", zap.String("field", field.Name))
			value = ""
		}
		values[field.Name] = value
	}
	c.state = State{
		Values:  values,
		Errors:  make(map[string]string),
		Touched: make(map[string]bool),
		Status:  StatusIdle,
	}
	return c, nil
}

// Form returns the schema the controller was mounted with.
func (c *Controller) Form() schema.Form {
	return c.form
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Change updates a field value and clears its stale error.
func (c *Controller) Change(name, value string) error {
	c.mu.Lock()
	if c.unmounted {
		c.mu.Unlock()
		return ErrUnmounted
	}
	field, ok := c.form.Field(name)
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w %q", ErrUnknownField, name)
	}
	if field.Kind == schema.KindSelect && value != "" && !field.HasOption(value) {
		c.mu.Unlock()
		return fmt.Errorf("%w %q for field %q", ErrUnknownOption, value, name)
	}

	c.state.Values[name] = value
	delete(c.state.Errors, name)
	snapshot := c.state.clone()
	c.mu.Unlock()

	c.logger.Debug("field changed", zap.String("field", name))
	c.notify(snapshot)
	return nil
}

// Select sets a select field by its display label.
func (c *Controller) Select(name, label string) error {
	field, ok := c.form.Field(name)
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownField, name)
	}
	value, ok := field.ValueFor(label)
	if !ok {
		return fmt.Errorf("%w %q for field %q", ErrUnknownOption, label, name)
	}
	return c.Change(name, value)
}

// Blur marks a field as touched.
func (c *Controller) Blur(name string) error {
	c.mu.Lock()
	if c.unmounted {
		c.mu.Unlock()
		return ErrUnmounted
	}
	if _, ok := c.form.Field(name); !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w %q", ErrUnknownField, name)
	}
	c.state.Touched[name] = true
	snapshot := c.state.clone()
	c.mu.Unlock()

	c.notify(snapshot)
	return nil
}

// Submit validates the current values and, when they pass, hands them to the
// submitter on a separate goroutine. A submit while a previous attempt has
// not finished resolving its feedback is ignored and leaves state untouched.
//
// ctx is passed to the submitter with its cancellation detached: a started
// submission always runs to completion.
func (c *Controller) Submit(ctx context.Context) *Attempt {
	if ctx == nil {
		ctx = context.Background()
	}

	c.mu.Lock()
	if c.unmounted || c.state.Status != StatusIdle {
		status := c.state.Status
		c.mu.Unlock()
		c.logger.Debug("submit ignored", zap.Stringer("status", status))
		return resolvedAttempt(AttemptIgnored, nil)
	}

	c.state.Status = StatusValidating
	values := copyStrings(c.state.Values)
	result := validation.Validate(c.form, values)
	for _, field := range c.form.Fields {
		c.state.Touched[field.Name] = true
	}

	if !result.Valid() {
		c.state.Errors = copyStrings(result.Errors)
		c.state.Status = StatusIdle
		snapshot := c.state.clone()
		c.mu.Unlock()

		c.logger.Debug("validation failed", zap.Strings("fields", result.Fields()))
		c.notify(snapshot)
		return resolvedAttempt(AttemptInvalid, result.Errors)
	}

	c.state.Errors = make(map[string]string)
	c.state.Submitting = true
	c.state.Status = StatusSubmitting
	c.state.Attempts++
	snapshot := c.state.clone()
	c.mu.Unlock()

	c.logger.Debug("submitting")
	c.notify(snapshot)

	attempt := &Attempt{Status: AttemptDispatched, done: make(chan struct{})}
	go c.run(context.WithoutCancel(ctx), values, attempt)
	return attempt
}

func (c *Controller) run(ctx context.Context, values map[string]string, attempt *Attempt) {
	defer close(attempt.done)

	outcome := c.call(ctx, values)
	attempt.outcome = outcome

	c.mu.Lock()
	mounted := !c.unmounted
	var snapshot State
	if mounted {
		c.state.Submitting = false
		if outcome.Succeeded() {
			c.state.Status = StatusSucceeded
		} else {
			c.state.Status = StatusFailed
			for name, message := range outcome.FieldErrors {
				if _, ok := c.form.Field(name); ok {
					c.state.Errors[name] = message
				}
			}
		}
		last := outcome
		c.state.Last = &last
		snapshot = c.state.clone()
	}
	c.mu.Unlock()

	c.logger.Info("submission resolved",
		zap.Stringer("kind", outcome.Kind),
		zap.String("reason", string(outcome.Reason)),
		zap.Bool("mounted", mounted),
	)
	if mounted {
		c.notify(snapshot)
	}

	c.dispatcher.Dispatch(outcome)

	c.mu.Lock()
	mounted = !c.unmounted
	if mounted {
		c.state.Status = StatusIdle
		snapshot = c.state.clone()
	}
	c.mu.Unlock()
	if mounted {
		c.notify(snapshot)
	}
}

func (c *Controller) call(ctx context.Context, values map[string]string) (outcome submit.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("submitter panicked", zap.Any("panic", r))
			outcome = submit.Failure(submit.ReasonUnknown, fmt.Errorf("form: submitter panic: %v", r))
		}
	}()
	return c.submitter.Submit(ctx, values)
}

// Unmount discards the form. A submission still in flight completes and its
// feedback is dispatched, but the discarded state is no longer mutated and
// observers are no longer called.
func (c *Controller) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unmounted = true
	c.observers = nil
}

func (c *Controller) notify(snapshot State) {
	c.mu.Lock()
	observers := append([]Observer(nil), c.observers...)
	c.mu.Unlock()
	for _, fn := range observers {
		fn(snapshot)
	}
}

type nopDispatcher struct{}

func (nopDispatcher) Dispatch(submit.Outcome) {}
