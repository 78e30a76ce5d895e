// Package main provides the flowlint command line tool.
package main

import (
	"context"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/fluxon/flowlint/pkg/log"
)

func main() {
	command := &cli.Command{
		Name:                  "flowlint",
		Usage:                 "Validate workflow documents against the node-type catalog",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "catalog-url",
				Usage:   "Catalog store URL (postgres://, redis://, file:// or empty for builtin)",
				Sources: cli.EnvVars("CATALOG_URL"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "warn",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			ValidateCommand(),
			CatalogCommand(),
			PushCommand(),
		},
	}

	err := command.Run(context.Background(), os.Args)
	if err != nil {
		log.WithModule("cli").Error("Command failed", "error", err)
		os.Exit(1)
	}
}
