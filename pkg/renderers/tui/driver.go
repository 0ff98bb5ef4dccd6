package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// TextPrompt asks for a free-text value. Secret prompts read without echo and
// ignore Default.
type TextPrompt struct {
	Message string
	Default string
	Help    string
	Secret  bool
}

// ChoicePrompt asks for one of Options by label. Current preselects an entry
// and is ignored when out of range.
type ChoicePrompt struct {
	Message string
	Options []string
	Current int
	Help    string
}

// PromptDriver is the terminal surface a Session talks to.
type PromptDriver interface {
	Text(ctx context.Context, prompt TextPrompt) (string, error)
	Choose(ctx context.Context, prompt ChoicePrompt) (int, error)
	Confirm(ctx context.Context, message string, fallback bool) (bool, error)
	Info(ctx context.Context, msg string) error
}

type surveyDriver struct {
	out io.Writer
}

// NewSurveyDriver returns the terminal driver backed by survey. Info lines are
// written to out (stdout when nil).
func NewSurveyDriver(out io.Writer) PromptDriver {
	if out == nil {
		out = os.Stdout
	}
	return &surveyDriver{out: out}
}

func (d *surveyDriver) Text(ctx context.Context, p TextPrompt) (string, error) {
	var out string
	var prompt survey.Prompt = &survey.Input{Message: p.Message, Help: p.Help, Default: p.Default}
	if p.Secret {
		prompt = &survey.Password{Message: p.Message, Help: p.Help}
	}
	if err := ask(ctx, prompt, &out); err != nil {
		return "", err
	}
	return out, nil
}

func (d *surveyDriver) Choose(ctx context.Context, p ChoicePrompt) (int, error) {
	prompt := &survey.Select{Message: p.Message, Options: p.Options, Help: p.Help}
	if p.Current >= 0 && p.Current < len(p.Options) {
		prompt.Default = p.Options[p.Current]
	}
	var out string
	if err := ask(ctx, prompt, &out); err != nil {
		return 0, err
	}
	return indexOf(p.Options, out), nil
}

func (d *surveyDriver) Confirm(ctx context.Context, message string, fallback bool) (bool, error) {
	var out bool
	if err := ask(ctx, &survey.Confirm{Message: message, Default: fallback}, &out); err != nil {
		return false, err
	}
	return out, nil
}

func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

// ask runs a single survey prompt. survey blocks on the terminal, so the
// context is only honoured before the prompt opens.
func ask(ctx context.Context, prompt survey.Prompt, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return translateSurveyErr(survey.AskOne(prompt, out))
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

func indexOf(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return -1
}
