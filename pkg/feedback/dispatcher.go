// Package feedback turns submission outcomes into user-visible effects:
// transient notifications, navigation and view refreshes. Collaborators are
// injected so the dispatcher runs without a real UI.
package feedback

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-formflow/pkg/submit"
)

const (
	// InvalidCredentialsMessage is shown when the auth backend rejects a sign-in.
	InvalidCredentialsMessage = "Invalid Username or Password"
	// GenericFailureMessage is shown for transport and unclassified failures.
	GenericFailureMessage = "Something went wrong. Please try again."
	// DashboardPath is the authenticated landing destination.
	DashboardPath = "/dashboard"
)

// Navigator is the routing boundary.
type Navigator interface {
	NavigateTo(path string)
	RefreshCurrentView()
}

// Notifier is the toast boundary. Calls are fire-and-forget.
type Notifier interface {
	NotifyError(message string)
}

// NotifierFunc adapts a function into a Notifier.
type NotifierFunc func(message string)

// NotifyError calls the underlying function.
func (fn NotifierFunc) NotifyError(message string) { fn(message) }

// Dispatcher routes outcomes to the notification and navigation boundaries.
type Dispatcher struct {
	navigator   Navigator
	notifier    Notifier
	successPath string
	refresh     bool
	messages    map[submit.Reason]string
	logger      *zap.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithSuccessPath navigates to path after a successful submission. An empty
// path keeps the user on the current view.
func WithSuccessPath(path string) Option {
	return func(d *Dispatcher) {
		d.successPath = path
	}
}

// WithoutRefresh skips the view refresh after success.
func WithoutRefresh() Option {
	return func(d *Dispatcher) {
		d.refresh = false
	}
}

// WithMessage overrides the notification text for a failure reason.
func WithMessage(reason submit.Reason, message string) Option {
	return func(d *Dispatcher) {
		if message != "" {
			d.messages[reason] = message
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New builds a dispatcher. Nil collaborators are replaced with no-ops.
func New(navigator Navigator, notifier Notifier, options ...Option) *Dispatcher {
	d := &Dispatcher{
		navigator: navigator,
		notifier:  notifier,
		refresh:   true,
		messages: map[submit.Reason]string{
			submit.ReasonInvalidCredentials: InvalidCredentialsMessage,
			submit.ReasonNetworkError:       GenericFailureMessage,
			submit.ReasonUnknown:            GenericFailureMessage,
		},
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(d)
		}
	}
	if d.navigator == nil {
		d.navigator = noopNavigator{}
	}
	if d.notifier == nil {
		d.notifier = NotifierFunc(func(string) {})
	}
	return d
}

// Dispatch applies the effects for one outcome. Failures that carry inline
// field errors and nothing else produce no toast; the form shows them.
func (d *Dispatcher) Dispatch(outcome submit.Outcome) {
	if outcome.Succeeded() {
		if d.successPath != "" {
			d.logger.Debug("navigating after success", zap.String("path", d.successPath))
			d.navigator.NavigateTo(d.successPath)
		}
		if d.refresh {
			d.navigator.RefreshCurrentView()
		}
		return
	}

	if len(outcome.FormErrors) > 0 {
		for _, message := range outcome.FormErrors {
			d.notifier.NotifyError(message)
		}
		return
	}
	if len(outcome.FieldErrors) > 0 {
		return
	}

	message, ok := d.messages[outcome.Reason]
	if !ok {
		message = d.messages[submit.ReasonUnknown]
	}
	d.logger.Debug("notifying failure", zap.String("reason", string(outcome.Reason)))
	d.notifier.NotifyError(message)
}

type noopNavigator struct{}

func (noopNavigator) NavigateTo(string)   {}
func (noopNavigator) RefreshCurrentView() {}
