package tui

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/feedback"
	"github.com/goliatone/go-formflow/pkg/form"
	"github.com/goliatone/go-formflow/pkg/forms"
	"github.com/goliatone/go-formflow/pkg/schema"
	"github.com/goliatone/go-formflow/pkg/submit"
	"github.com/goliatone/go-formflow/pkg/testsupport"
)

type stubDriver struct {
	inputs    []string
	passwords []string
	selectIdx []int
	confirms  []bool

	inputPos    int
	passwordPos int
	selectPos   int
	confirmPos  int

	textPrompts   []TextPrompt
	choicePrompts []ChoicePrompt
	infoMessages  []string
}

func (s *stubDriver) Text(_ context.Context, p TextPrompt) (string, error) {
	s.textPrompts = append(s.textPrompts, p)
	if p.Secret {
		if s.passwordPos >= len(s.passwords) {
			return "", ErrAborted
		}
		val := s.passwords[s.passwordPos]
		s.passwordPos++
		return val, nil
	}
	if s.inputPos >= len(s.inputs) {
		return "", ErrAborted
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ string, _ bool) (bool, error) {
	if s.confirmPos >= len(s.confirms) {
		return false, ErrAborted
	}
	val := s.confirms[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Choose(_ context.Context, p ChoicePrompt) (int, error) {
	s.choicePrompts = append(s.choicePrompts, p)
	if s.selectPos >= len(s.selectIdx) {
		return 0, ErrAborted
	}
	idx := s.selectIdx[s.selectPos]
	s.selectPos++
	return idx, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

type harness struct {
	driver    *stubDriver
	session   *Session
	submitter *testsupport.Submitter
	ctrl      *form.Controller
}

func newHarness(t *testing.T, driver *stubDriver, f schema.Form, outcome submit.Outcome, values map[string]string, options ...Option) harness {
	t.Helper()
	session := New(append([]Option{WithPromptDriver(driver)}, options...)...)
	dispatcher := feedback.New(session.Navigator(), session.Notifier(), feedback.WithSuccessPath(feedback.DashboardPath))
	submitter := &testsupport.Submitter{Outcome: outcome}
	ctrl, err := form.New(f, submitter, dispatcher, form.WithValues(values))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return harness{driver: driver, session: session, submitter: submitter, ctrl: ctrl}
}

func TestRun_SignInSuccess(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"alice_01"},
		passwords: []string{"supersecret1"},
	}
	h := newHarness(t, driver, forms.SignIn(), submit.Success(nil), forms.SignInValues())

	outcome, err := h.session.Run(context.Background(), h.ctrl)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !outcome.Succeeded() {
		t.Fatalf("expected success, got %+v", outcome)
	}
	want := map[string]string{"username": "alice_01", "password": "supersecret1"}
	if diff := cmp.Diff(want, h.submitter.LastValues()); diff != "" {
		t.Fatalf("submitted values mismatch (-want +got):\n%s", diff)
	}
	if !slices.Contains(driver.infoMessages, DefaultTheme.InfoPrefix+feedback.DashboardPath) {
		t.Fatalf("expected navigation message, got %v", driver.infoMessages)
	}
}

func TestRun_RepromptsOnlyFailingFields(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"bob", "bobby"},
		passwords: []string{"supersecret1"},
	}
	h := newHarness(t, driver, forms.SignIn(), submit.Success(nil), forms.SignInValues())

	if _, err := h.session.Run(context.Background(), h.ctrl); err != nil {
		t.Fatalf("run: %v", err)
	}
	if driver.inputPos != 2 || driver.passwordPos != 1 {
		t.Fatalf("prompts not consumed as expected: inputs=%d passwords=%d", driver.inputPos, driver.passwordPos)
	}
	if h.submitter.Calls() != 1 {
		t.Fatalf("expected a single submission, got %d", h.submitter.Calls())
	}
	msg := DefaultTheme.ErrorPrefix + "Username must have more than 4 characters"
	if !slices.Contains(driver.infoMessages, msg) {
		t.Fatalf("expected inline error %q, got %v", msg, driver.infoMessages)
	}
	want := []TextPrompt{
		{Message: "Username*", Help: "Enter a username"},
		{Message: "Password*", Help: "Enter a password", Secret: true},
		{Message: "Username*", Default: "bob", Help: "Enter a username"},
	}
	if diff := cmp.Diff(want, driver.textPrompts); diff != "" {
		t.Fatalf("text prompts mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_RejectedAndDeclined(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"alice_01"},
		passwords: []string{"wrongpassword"},
		confirms:  []bool{false},
	}
	outcome := submit.Failure(submit.ReasonInvalidCredentials, nil)
	h := newHarness(t, driver, forms.SignIn(), outcome, forms.SignInValues())

	got, err := h.session.Run(context.Background(), h.ctrl)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got.Reason != submit.ReasonInvalidCredentials {
		t.Fatalf("expected invalid credentials, got %s", got.Reason)
	}
	msg := DefaultTheme.ErrorPrefix + feedback.InvalidCredentialsMessage
	if !slices.Contains(driver.infoMessages, msg) {
		t.Fatalf("expected notification %q, got %v", msg, driver.infoMessages)
	}
}

func TestRun_ClassificationSelect(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{1},
		inputs:    []string{"Rent"},
	}
	h := newHarness(t, driver, forms.Classification(), submit.Success(nil), forms.ClassificationValues("in"))

	if _, err := h.session.Run(context.Background(), h.ctrl); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(driver.choicePrompts) != 1 {
		t.Fatalf("expected one select prompt, got %d", len(driver.choicePrompts))
	}
	cfg := driver.choicePrompts[0]
	if diff := cmp.Diff([]string{"Income", "Expense"}, cfg.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if cfg.Current != 0 {
		t.Fatalf("expected preselected Income, got index %d", cfg.Current)
	}
	want := map[string]string{"type": "ex", "classification": "Rent"}
	if diff := cmp.Diff(want, h.submitter.LastValues()); diff != "" {
		t.Fatalf("submitted values mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_AbortBeforeSubmit(t *testing.T) {
	driver := &stubDriver{}
	h := newHarness(t, driver, forms.SignIn(), submit.Success(nil), nil)

	_, err := h.session.Run(context.Background(), h.ctrl)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if h.submitter.Calls() != 0 {
		t.Fatalf("aborted session must not submit")
	}
}

func TestRun_MaxRounds(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"bob"},
		passwords: []string{"supersecret1"},
	}
	h := newHarness(t, driver, forms.SignIn(), submit.Success(nil), nil, WithMaxRounds(1))

	_, err := h.session.Run(context.Background(), h.ctrl)
	if !errors.Is(err, ErrTooManyRounds) {
		t.Fatalf("expected ErrTooManyRounds, got %v", err)
	}
}

func TestNavigatorTracksCurrent(t *testing.T) {
	driver := &stubDriver{}
	session := New(WithPromptDriver(driver), WithTheme(Theme{InfoPrefix: "> "}))
	nav := session.Navigator()

	nav.RefreshCurrentView()
	nav.NavigateTo("/dashboard")
	nav.RefreshCurrentView()

	want := []string{"> refreshed current view", "> /dashboard", "> refreshed /dashboard"}
	if diff := cmp.Diff(want, driver.infoMessages); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	if nav.Current() != "/dashboard" {
		t.Fatalf("unexpected current %q", nav.Current())
	}
}
