package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/fluxon/flowlint/pkg/catalog"
	"github.com/fluxon/flowlint/pkg/cmd"
	"github.com/fluxon/flowlint/pkg/log"
	"github.com/fluxon/flowlint/pkg/models"
	"github.com/fluxon/flowlint/pkg/policy"
	"github.com/fluxon/flowlint/pkg/resolver"
	"github.com/fluxon/flowlint/pkg/validation"
)

var errDocumentInvalid = fmt.Errorf("document failed validation")

func ValidateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Aliases:   []string{"v"},
		Usage:     "Validate a workflow document file",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "profile",
				Usage:   "Validation profile (runtime, full)",
				Value:   string(validation.ProfileRuntime),
				Sources: cli.EnvVars("FLOWLINT_PROFILE"),
			},
			&cli.StringFlag{
				Name:    "policy-mode",
				Usage:   "Node-type policy mode (strict, permissive)",
				Value:   string(policy.ModeStrict),
				Sources: cli.EnvVars("POLICY_MODE"),
			},
			&cli.BoolFlag{
				Name:  "skip-connections",
				Usage: "Skip connection graph checks",
			},
			&cli.BoolFlag{
				Name:  "validate-expressions",
				Usage: "Scan embedded expressions for suspect references",
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			path := command.Args().First()
			if path == "" {
				return fmt.Errorf("usage: flowlint validate <file>")
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
					log.WithModule("cli").Error("Failed to close catalog store", "error", closeErr)
				}
			}()

			opts := validation.Options{
				Profile:             validation.Profile(command.String("profile")),
				ValidateConnections: !command.Bool("skip-connections"),
				ValidateExpressions: command.Bool("validate-expressions"),
			}

			report, err := engine.Run(ctx, doc, opts)
			if err != nil {
				return err
			}

			err = printJSON(report)
			if err != nil {
				return err
			}

			if !report.Valid {
				return errDocumentInvalid
			}

			return nil
		},
	}
}

func readDocument(path string) (*models.WorkflowDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc models.WorkflowDocument

	err = json.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &doc, nil
}

func newEngine(ctx context.Context, command *cli.Command) (*validation.Engine, catalog.Store, error) {
	logger := log.WithModule("cli")

	store, err := cmd.NewCatalogStore(ctx, logger, command.String("catalog-url"))
	if err != nil {
		return nil, nil, err
	}

	cat := catalog.New(store, logger)
	res := resolver.New(cat, logger)
	engine := validation.NewEngine(res, policy.New(policy.Mode(command.String("policy-mode"))), logger)

	return engine, store, nil
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	return encoder.Encode(v)
}
