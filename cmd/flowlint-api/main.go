package main

import (
	"context"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.opentelemetry.io/otel/trace"

	"github.com/fluxon/flowlint/pkg/cmd"
	"github.com/fluxon/flowlint/pkg/log"
	"github.com/fluxon/flowlint/pkg/otelhelper"
	"github.com/fluxon/flowlint/pkg/policy"
	"github.com/fluxon/flowlint/pkg/runtime"
)

const defaultPort = 9094

func main() {
	logger := log.WithModule("api")

	command := &cli.Command{
		Name:                  "flowlint-api",
		Usage:                 "Validate workflow documents and gate runtime writes",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "catalog-url",
				Usage:   "Catalog store URL (postgres://, redis://, file:// or empty for builtin)",
				Sources: cli.EnvVars("CATALOG_URL"),
			},
			&cli.StringFlag{
				Name:    "runtime-url",
				Usage:   "Base URL of the workflow runtime write API",
				Value:   "http://localhost:9091",
				Sources: cli.EnvVars("RUNTIME_URL"),
			},
			&cli.StringFlag{
				Name:    "runtime-api-key",
				Usage:   "Bearer token for the runtime write API",
				Sources: cli.EnvVars("RUNTIME_API_KEY"),
			},
			&cli.StringFlag{
				Name:    "policy-mode",
				Usage:   "Node-type policy mode (strict, permissive)",
				Value:   string(policy.ModeStrict),
				Sources: cli.EnvVars("POLICY_MODE"),
			},
			&cli.BoolFlag{
				Name:    "tracing",
				Usage:   "Enable OpenTelemetry tracing",
				Sources: cli.EnvVars("TRACING_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger.InfoContext(ctx, "Initializing Flowlint API")

			store, err := cmd.NewCatalogStore(ctx, logger, command.String("catalog-url"))
			if err != nil {
				return err
			}

			defer func() {
				err := store.Close(ctx)
				if err != nil {
					logger.ErrorContext(ctx, "Failed to close catalog store", "error", err)
				}
			}()

			var tracer trace.Tracer

			if command.Bool("tracing") {
				tracer, err = otelhelper.NewTracer(ctx, "flowlint-api")
				if err != nil {
					logger.ErrorContext(ctx, "Failed to initialize tracer", "error", err)
				}
			}

			runtimeClient := runtime.NewClient(
				command.String("runtime-url"),
				command.String("runtime-api-key"),
			)

			api := NewAPI(
				logger,
				store,
				policy.Mode(command.String("policy-mode")),
				runtimeClient,
				tracer,
			)

			err = api.Start(command.Int("port"))
			if err != nil {
				logger.ErrorContext(ctx, "Failed to start API server", "error", err)
			}

			return nil
		},
	}

	err := command.Run(context.Background(), os.Args)
	if err != nil {
		panic(err)
	}
}
