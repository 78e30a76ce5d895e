package main

import (
	"context"
	"fmt"

	cli "github.com/urfave/cli/v3"

	"github.com/fluxon/flowlint/pkg/catalog"
	"github.com/fluxon/flowlint/pkg/cmd"
	"github.com/fluxon/flowlint/pkg/log"
)

func CatalogCommand() *cli.Command {
	return &cli.Command{
		Name:    "catalog",
		Aliases: []string{"c"},
		Usage:   "Inspect the node-type catalog",
		Commands: []*cli.Command{
			catalogGetCommand(),
			catalogSearchCommand(),
		},
	}
}

func catalogGetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Show the catalog entry for a canonical node type",
		ArgsUsage: "<type>",
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			canonicalType := command.Args().First()
			if canonicalType == "" {
				return fmt.Errorf("usage: flowlint catalog get <type>")
			}

			cat, store, err := newCatalog(ctx, command)
			if err != nil {
				return err
			}

			defer func() {
				closeErr := store.Close(ctx)
				if closeErr != nil {
					log.WithModule("cli").Error("Failed to close catalog store", "error", closeErr)
				}
			}()

			entry, err := cat.Lookup(ctx, canonicalType)
			if err != nil {
				return err
			}

			return printJSON(entry)
		},
	}
}

func catalogSearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search the catalog by name or description",
		ArgsUsage: "<term>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Maximum number of results",
				Value:   catalog.DefaultSearchLimit,
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			cat, store, err := newCatalog(ctx, command)
			if err != nil {
				return err
			}

			defer func() {
				closeErr := store.Close(ctx)
				if closeErr != nil {
					log.WithModule("cli").Error("Failed to close catalog store", "error", closeErr)
				}
			}()

			entries, err := cat.Search(ctx, command.Args().First(), command.Int("limit"))
			if err != nil {
				return err
			}

			return printJSON(entries)
		},
	}
}

func newCatalog(ctx context.Context, command *cli.Command) (*catalog.Catalog, catalog.Store, error) {
	logger := log.WithModule("cli")

	store, err := cmd.NewCatalogStore(ctx, logger, command.String("catalog-url"))
	if err != nil {
		return nil, nil, err
	}

	return catalog.New(store, logger), store, nil
}
