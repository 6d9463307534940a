/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnsynth/internal/iocatalog"
	"github.com/gnames/gnsynth/internal/iocsvsource"
	"github.com/gnames/gnsynth/internal/iodb"
	"github.com/gnames/gnsynth/pkg/catalog"
	"github.com/gnames/gnsynth/pkg/plugin"
	"github.com/spf13/cobra"
)

// getCatalogCmd returns the catalog command.
func getCatalogCmd() *cobra.Command {
	var force bool

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Build the vocabulary catalog",
		Long: `Build the vocabulary catalog from the reference vocabulary and
mapping files of configured data sources.

This command:
  1. Reads datasources.yaml
  2. For the postgres backend checks for existing tables and prompts
     for confirmation before dropping them
  3. Creates catalog tables
  4. Loads variables and attribute mappings and reports their counts

With the default sqlite backend and ":memory:" path the command only
checks that mapping files can be loaded.

Use --force to skip confirmation and drop existing tables.

Examples:
  gnsynth catalog
  gnsynth catalog --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runCatalog(force)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	catalogCmd.Flags().BoolVarP(&force, "force", "f",
		false, "drop existing tables without confirmation")

	return catalogCmd
}

func runCatalog(force bool) error {
	ctx := context.Background()
	start := time.Now()

	srcs, err := loadSources()
	if err != nil {
		return err
	}

	if cfg.Catalog.Backend == "postgres" {
		ok, err := dropTables(ctx, force)
		if err != nil || !ok {
			return err
		}
	}

	cat, err := iocatalog.New(ctx, cfg, iocatalog.OptProgressBar(true))
	if err != nil {
		return err
	}
	defer cat.Close()

	ps := iocsvsource.Plugins(srcs)
	catSources := make([]catalog.Source, len(ps))
	for i, p := range ps {
		catSources[i] = plugin.CatalogSource(p)
	}
	if err = cat.Initialize(ctx, catSources); err != nil {
		return err
	}

	vars, mappings, err := cat.Counts(ctx)
	if err != nil {
		return err
	}
	gn.Info(
		"Catalog is ready: <em>%s</em> variables, <em>%s</em> mappings of <em>%d</em> data sources in %s",
		humanize.Comma(int64(vars)),
		humanize.Comma(int64(mappings)),
		len(srcs),
		gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return nil
}

// dropTables removes existing tables of the postgres catalog. It
// returns false if the user declined.
func dropTables(ctx context.Context, force bool) (bool, error) {
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return false, err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	tables, err := op.CatalogTables(ctx)
	if err != nil || len(tables) == 0 {
		return err == nil, err
	}

	if !force {
		gn.Warn("\nWarning: Database already has catalog tables: <em>%s</em>.",
			strings.Join(tables, ", "))
		gn.Warn("Building the catalog will drop them with all their data.")
		fmt.Print("\nDo you want to continue? (yes/no): ")

		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			gn.Warn("Failed to read user input")
			return false, err
		}

		response = strings.TrimSpace(strings.ToLower(response))
		if response != "yes" && response != "y" {
			gn.Info("Aborted. No changes made.")
			return false, nil
		}
	}

	gn.Info("Dropping catalog tables...")
	if err = op.DropCatalogTables(ctx); err != nil {
		return false, err
	}
	gn.Info("Catalog tables dropped")
	return true, nil
}
