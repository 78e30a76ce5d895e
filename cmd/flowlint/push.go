package main

import (
	"context"
	"fmt"

	cli "github.com/urfave/cli/v3"

	"github.com/fluxon/flowlint/pkg/gateway"
	"github.com/fluxon/flowlint/pkg/log"
	"github.com/fluxon/flowlint/pkg/runtime"
	"github.com/fluxon/flowlint/pkg/validation"
)

func PushCommand() *cli.Command {
	return &cli.Command{
		Name:      "push",
		Usage:     "Validate a workflow document and write it to the runtime",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
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
				Name:  "id",
				Usage: "Update an existing workflow instead of creating one",
			},
			&cli.StringFlag{
				Name:    "policy-mode",
				Usage:   "Node-type policy mode (strict, permissive)",
				Value:   "strict",
				Sources: cli.EnvVars("POLICY_MODE"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger := log.WithModule("cli")

			path := command.Args().First()
			if path == "" {
				return fmt.Errorf("usage: flowlint push <file>")
			}

			doc, err := readDocument(path)
			if err != nil {
				return err
			}

			engine, store, err := newEngine(ctx, command)
			if err != nil {
				return err
			}

			defer func() {
				closeErr := store.Close(ctx)
				if closeErr != nil {
					logger.Error("Failed to close catalog store", "error", closeErr)
				}
			}()

			report, err := engine.Run(ctx, doc, validation.DefaultOptions())
			if err != nil {
				return err
			}

			if !report.Valid {
				err = printJSON(report)
				if err != nil {
					return err
				}

				return errDocumentInvalid
			}

			client := runtime.NewClient(
				command.String("runtime-url"),
				command.String("runtime-api-key"),
			)
			gw := gateway.New(engine.Cache(), client, logger)

			var workflow *runtime.Workflow

			if id := command.String("id"); id != "" {
				workflow, err = gw.Update(ctx, id, doc)
			} else {
				workflow, err = gw.Create(ctx, doc)
			}

			if err != nil {
				return err
			}

			return printJSON(workflow)
		},
	}
}
