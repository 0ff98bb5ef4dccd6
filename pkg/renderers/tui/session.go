// Package tui drives a form controller from an interactive terminal: every
// field is prompted through a PromptDriver, the controller validates and
// submits, and inline errors are shown before the failing fields are asked
// again.
package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-formflow/pkg/form"
	"github.com/goliatone/go-formflow/pkg/schema"
	"github.com/goliatone/go-formflow/pkg/submit"
)

// Session runs prompt rounds against a controller.
type Session struct {
	driver    PromptDriver
	theme     Theme
	maxRounds int
	logger    *zap.Logger
}

// New constructs a session. Without WithPromptDriver the survey terminal
// driver is used.
func New(options ...Option) *Session {
	s := &Session{
		theme:  DefaultTheme,
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s
}

// Driver returns the prompt driver in use.
func (s *Session) Driver() PromptDriver {
	return s.driver
}

// Run prompts every field, submits and keeps going until the controller
// reports success, the user declines a retry or the driver fails. The last
// outcome is returned; a declined retry is not an error.
func (s *Session) Run(ctx context.Context, ctrl *form.Controller) (submit.Outcome, error) {
	if ctrl == nil {
		return submit.Outcome{}, errors.New("tui: controller is required")
	}

	f := ctrl.Form()
	if f.Title != "" {
		if err := s.driver.Info(ctx, f.Title); err != nil {
			return submit.Outcome{}, err
		}
	}

	pending := f.Names()
	var last submit.Outcome
	for round := 1; ; round++ {
		if err := s.promptFields(ctx, ctrl, pending); err != nil {
			return last, err
		}

		attempt := ctrl.Submit(ctx)
		switch attempt.Status {
		case form.AttemptIgnored:
			return last, ErrBusy
		case form.AttemptInvalid:
			pending = failing(f, attempt.Errors)
			s.logger.Debug("validation failed", zap.String("form", f.ID), zap.Strings("fields", pending))
		case form.AttemptDispatched:
			select {
			case <-attempt.Done():
			case <-ctx.Done():
				return last, ctx.Err()
			}
			last = attempt.Wait()
			if last.Succeeded() {
				return last, nil
			}

			pending = failing(f, ctrl.Snapshot().Errors)
			if len(pending) == 0 {
				retry, err := s.driver.Confirm(ctx, "Try again?", true)
				if err != nil {
					return last, err
				}
				if !retry {
					return last, nil
				}
				pending = f.Names()
			}
		}

		if s.maxRounds > 0 && round >= s.maxRounds {
			return last, ErrTooManyRounds
		}
	}
}

func (s *Session) promptFields(ctx context.Context, ctrl *form.Controller, names []string) error {
	for _, name := range names {
		binding, err := ctrl.Binding(name)
		if err != nil {
			return err
		}
		if binding.Error != "" {
			if err := s.driver.Info(ctx, s.theme.ErrorPrefix+binding.Error); err != nil {
				return err
			}
		}
		if err := s.promptField(ctx, ctrl, binding); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) promptField(ctx context.Context, ctrl *form.Controller, binding form.Binding) error {
	field := binding.Field
	message := field.DisplayLabel()

	switch field.Kind.Resolved() {
	case schema.KindSelect:
		labels := make([]string, 0, len(field.Options))
		for _, option := range field.Options {
			labels = append(labels, option.Label)
		}
		idx, err := s.driver.Choose(ctx, ChoicePrompt{
			Message: message,
			Options: labels,
			Current: indexOf(labels, binding.Display),
			Help:    field.Placeholder,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(field.Options) {
			return fmt.Errorf("%w: selection %d for %q", form.ErrUnknownOption, idx, field.Name)
		}
		return binding.OnChange(field.Options[idx].Value)
	case schema.KindPassword:
		value, err := s.driver.Text(ctx, TextPrompt{Message: message, Help: field.Placeholder, Secret: true})
		if err != nil {
			return err
		}
		return binding.OnChange(value)
	case schema.KindText:
		value, err := s.driver.Text(ctx, TextPrompt{
			Message: message,
			Default: binding.Value,
			Help:    field.Placeholder,
		})
		if err != nil {
			return err
		}
		return binding.OnChange(value)
	default:
		return fmt.Errorf("%w: %q on %q", schema.ErrUnknownKind, field.Kind, field.Name)
	}
}

// failing returns the names with an error, in declaration order.
func failing(f schema.Form, errs map[string]string) []string {
	var out []string
	for _, name := range f.Names() {
		if errs[name] != "" {
			out = append(out, name)
		}
	}
	return out
}

// Notifier prints error notifications through the session driver.
func (s *Session) Notifier() *Notifier {
	return &Notifier{driver: s.driver, prefix: s.theme.ErrorPrefix}
}

// Navigator prints navigation through the session driver and remembers the
// current location.
func (s *Session) Navigator() *Navigator {
	return &Navigator{driver: s.driver, prefix: s.theme.InfoPrefix}
}

// Notifier satisfies feedback.Notifier for terminals.
type Notifier struct {
	driver PromptDriver
	prefix string
}

// NotifyError prints message.
func (n *Notifier) NotifyError(message string) {
	_ = n.driver.Info(context.Background(), n.prefix+message)
}

// Navigator satisfies feedback.Navigator for terminals.
type Navigator struct {
	driver PromptDriver
	prefix string

	mu      sync.Mutex
	current string
}

// NavigateTo records path as the current location and prints it.
func (n *Navigator) NavigateTo(path string) {
	n.mu.Lock()
	n.current = path
	n.mu.Unlock()
	_ = n.driver.Info(context.Background(), n.prefix+path)
}

// RefreshCurrentView prints a refresh marker for the current location.
func (n *Navigator) RefreshCurrentView() {
	current := n.Current()
	if current == "" {
		current = "current view"
	}
	_ = n.driver.Info(context.Background(), n.prefix+"refreshed "+current)
}

// Current returns the last path navigated to.
func (n *Navigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}
