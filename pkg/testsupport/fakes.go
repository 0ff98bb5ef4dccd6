// Package testsupport provides recording collaborators for exercising form
// controllers without a real navigation, notification or auth environment.
package testsupport

import (
	"context"
	"sync"

	"github.com/goliatone/go-formflow/pkg/submit"
)

// Navigator records navigation calls.
type Navigator struct {
	mu        sync.Mutex
	paths     []string
	refreshes int
}

// NavigateTo records path.
func (n *Navigator) NavigateTo(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

// RefreshCurrentView counts refreshes.
func (n *Navigator) RefreshCurrentView() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.refreshes++
}

// Paths returns a copy of every path navigated to.
func (n *Navigator) Paths() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

// Refreshes returns the refresh count.
func (n *Navigator) Refreshes() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.refreshes
}

// Notifier records error notifications.
type Notifier struct {
	mu       sync.Mutex
	messages []string
}

// NotifyError records message.
func (n *Notifier) NotifyError(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

// Messages returns a copy of every recorded message.
func (n *Notifier) Messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

// Submitter returns a scripted outcome and counts calls. When Gate is set the
// call blocks until Gate is closed (or receives), letting tests observe the
// in-flight state.
type Submitter struct {
	Outcome submit.Outcome
	Gate    chan struct{}

	mu     sync.Mutex
	calls  int
	values []map[string]string
}

// Submit records the call and returns the scripted outcome.
func (s *Submitter) Submit(_ context.Context, values map[string]string) submit.Outcome {
	s.mu.Lock()
	s.calls++
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	s.values = append(s.values, copied)
	gate := s.Gate
	s.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return s.Outcome
}

// Calls returns how many times Submit ran.
func (s *Submitter) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// LastValues returns the values of the latest call.
func (s *Submitter) LastValues() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return nil
	}
	return s.values[len(s.values)-1]
}

// Authenticator returns a scripted sign-in result.
type Authenticator struct {
	Result submit.SignInResult
	Err    error

	mu    sync.Mutex
	calls []submit.Credentials
}

// SignIn records the credentials and returns the script.
func (a *Authenticator) SignIn(_ context.Context, creds submit.Credentials) (submit.SignInResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, creds)
	return a.Result, a.Err
}

// Calls returns every set of credentials received.
func (a *Authenticator) Calls() []submit.Credentials {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]submit.Credentials(nil), a.calls...)
}
