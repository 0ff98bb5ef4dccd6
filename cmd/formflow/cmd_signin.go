package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formflow"
	"github.com/goliatone/go-formflow/pkg/renderers/tui"
	"github.com/goliatone/go-formflow/pkg/submit"
)

var signinCmd = &cobra.Command{
	Use:   "signin",
	Short: "Sign in with a username and password",
	Long: `Prompt for credentials, validate them and post them to FORMFLOW_AUTH_URL.

On success the landing path (FORMFLOW_LANDING_PATH) is shown; rejected
credentials print "Invalid Username or Password" and offer a retry.`,
	RunE: runSignin,
}

func runSignin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	auth, err := submit.NewAuthClient(cfg.AuthURL,
		submit.WithTimeout(cfg.HTTPTimeout),
		submit.WithClientLogger(logger),
	)
	if err != nil {
		return err
	}

	opts, err := definitionOptions(ctx, "signIn")
	if err != nil {
		return err
	}
	opts = append(opts, formflow.WithLogger(logger), formflow.WithSuccessPath(cfg.LandingPath))

	session := tui.New(tui.WithLogger(logger))
	ctrl, err := formflow.NewSignIn(auth, session.Navigator(), session.Notifier(), opts...)
	if err != nil {
		return err
	}
	defer ctrl.Unmount()

	outcome, err := session.Run(ctx, ctrl)
	if err != nil {
		return err
	}
	if !outcome.Succeeded() {
		return fmt.Errorf("sign-in failed: %s", outcome.Reason)
	}

	if s, ok := outcome.Payload.(submit.Session); ok {
		logger.Info("signed in", zap.String("subject", s.Subject), zap.Time("expires_at", s.ExpiresAt))
	}
	return nil
}
