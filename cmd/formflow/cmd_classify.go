package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formflow"
	"github.com/goliatone/go-formflow/pkg/renderers/tui"
	"github.com/goliatone/go-formflow/pkg/submit"
)

var classifyType string

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Create a classification",
	Long: `Prompt for a classification and post it to FORMFLOW_API_URL/classifications.

--type preselects the type ("in" for Income, "ex" for Expense); unknown codes
leave the select unset.`,
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().StringVar(&classifyType, "type", "", "type code to preselect (in|ex)")
}

func runClassify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	creator, err := submit.NewRecordClient(strings.TrimRight(cfg.APIURL, "/")+"/classifications",
		submit.WithTimeout(cfg.HTTPTimeout),
		submit.WithClientLogger(logger),
	)
	if err != nil {
		return err
	}

	opts, err := definitionOptions(ctx, "createClassification")
	if err != nil {
		return err
	}
	opts = append(opts, formflow.WithLogger(logger))

	session := tui.New(tui.WithLogger(logger))
	ctrl, err := formflow.NewClassification(classifyType, creator, session.Navigator(), session.Notifier(), opts...)
	if err != nil {
		return err
	}
	defer ctrl.Unmount()

	outcome, err := session.Run(ctx, ctrl)
	if err != nil {
		return err
	}
	if !outcome.Succeeded() {
		return fmt.Errorf("classification not created: %s", outcome.Reason)
	}

	if record, ok := outcome.Payload.(submit.Record); ok {
		logger.Info("classification created", zap.String("id", record.ID))
		return session.Driver().Info(ctx, "Created "+record.ID)
	}
	return nil
}
