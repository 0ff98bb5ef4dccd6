package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-formflow"
	"github.com/goliatone/go-formflow/internal/config"
	"github.com/goliatone/go-formflow/pkg/openapi"
)

var (
	verbose       bool
	openapiSource string
	operationID   string

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "formflow",
	Short: "Fill in and submit formflow forms from the terminal",
	Long: `formflow drives the sign-in and classification forms from a terminal.

Fields are validated locally before anything is sent. Endpoints come from
FORMFLOW_AUTH_URL and FORMFLOW_API_URL; form definitions can be derived from
an OpenAPI document with --openapi.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		zcfg.OutputPaths = []string{"stderr"}
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if openapiSource == "" {
			openapiSource = cfg.OpenAPI
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&openapiSource, "openapi", "", "OpenAPI document path or URL to derive the form from (or set FORMFLOW_OPENAPI)")
	rootCmd.PersistentFlags().StringVar(&operationID, "operation", "", "operationId whose request body defines the form")

	rootCmd.AddCommand(signinCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(renderCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Fatalf("formflow: %v", err)
	}
}

// definitionOptions returns a WithDefinition option when an OpenAPI source is
// configured. fallbackOperation is used when --operation is empty.
func definitionOptions(ctx context.Context, fallbackOperation string) ([]formflow.Option, error) {
	if openapiSource == "" {
		return nil, nil
	}
	op := operationID
	if op == "" {
		op = fallbackOperation
	}
	definition, err := formflow.LoadForm(ctx, openapiSource, op, openapi.WithHTTPFallback(cfg.HTTPTimeout))
	if err != nil {
		return nil, fmt.Errorf("load form from %s: %w", openapiSource, err)
	}
	logger.Debug("using OpenAPI form", zap.String("source", openapiSource), zap.String("operation", op))
	return []formflow.Option{formflow.WithDefinition(definition)}, nil
}
