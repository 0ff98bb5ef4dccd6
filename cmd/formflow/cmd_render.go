package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formflow"
	"github.com/goliatone/go-formflow/pkg/form"
	"github.com/goliatone/go-formflow/pkg/forms"
	"github.com/goliatone/go-formflow/pkg/renderers/html"
	"github.com/goliatone/go-formflow/pkg/submit"
)

var (
	renderForm      string
	renderType      string
	renderAction    string
	renderOutput    string
	renderTemplates string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a form as HTML",
	Long:  `Render the initial state of a form as an HTML fragment.`,
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderForm, "form", forms.SignInID, "form to render (signin|classification)")
	renderCmd.Flags().StringVar(&renderType, "type", "", "classification type code to preselect")
	renderCmd.Flags().StringVar(&renderAction, "action", "", "form action attribute")
	renderCmd.Flags().StringVar(&renderOutput, "output", "", "output file (stdout if empty)")
	renderCmd.Flags().StringVar(&renderTemplates, "templates", "", "directory with a form.tmpl override")
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var (
		ctrl *form.Controller
		err  error
	)
	switch renderForm {
	case forms.SignInID:
		opts, optErr := definitionOptions(ctx, "signIn")
		if optErr != nil {
			return optErr
		}
		ctrl, err = formflow.NewSignIn(submit.AuthenticatorFunc(nil), nil, nil, append(opts, formflow.WithLogger(logger))...)
	case forms.ClassificationID:
		opts, optErr := definitionOptions(ctx, "createClassification")
		if optErr != nil {
			return optErr
		}
		ctrl, err = formflow.NewClassification(renderType, submit.CreatorFunc(nil), nil, nil, append(opts, formflow.WithLogger(logger))...)
	default:
		return fmt.Errorf("unknown form %q", renderForm)
	}
	if err != nil {
		return err
	}
	defer ctrl.Unmount()

	renderer, err := html.New(
		html.WithAction(renderAction),
		html.WithTemplatesDir(renderTemplates),
		html.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	out, err := renderer.Render(ctx, ctrl)
	if err != nil {
		return err
	}

	if renderOutput == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(renderOutput, out, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Info("form written", zap.String("path", renderOutput), zap.String("form", renderForm), zap.String("content_type", renderer.ContentType()))
	return nil
}
