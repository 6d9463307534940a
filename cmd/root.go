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
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnsynth/internal/iofs"
	"github.com/gnames/gnsynth/internal/iologger"
	app "github.com/gnames/gnsynth/pkg"
	"github.com/gnames/gnsynth/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "gnsynth",
		Short:   "Synthesizes environmental observations from many data sources",
		Long: `GNsynth translates queries written in a canonical vocabulary to
vocabularies of registered data sources, and assembles their answers into
one stream of monitoring features and measurement timeseries.

Data sources are configured in ~/.config/gnsynth/datasources.yaml.
Each source is a directory (or gs://bucket/prefix) with CSV files and a
mapping file that maps its vocabulary to the canonical one.

Environment Variables:
  Configuration can be set via GNSYNTH_* environment variables.
  Nested fields use underscores (catalog.backend → GNSYNTH_CATALOG_BACKEND).

  Examples:
    GNSYNTH_CATALOG_BACKEND         sqlite or postgres
    GNSYNTH_CATALOG_SQLITE_PATH     SQLite file, :memory: by default
    GNSYNTH_CATALOG_MAPPING_DIR     directory of mapping files
    GNSYNTH_DATABASE_HOST           PostgreSQL host
    GNSYNTH_LOG_LEVEL               Log level (debug/info/warn/error)`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "gnsynth version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for gnsynth")

	rootCmd.PersistentFlags().StringSliceP(
		"sources", "s", nil,
		"data source IDs to use (empty = all)",
	)
	rootCmd.PersistentFlags().Bool(
		"metrics", false,
		"print counters of synthesized objects and messages on exit",
	)
	rootCmd.PersistentFlags().Bool(
		"pretty", false,
		"print human-readable JSON",
	)

	rootCmd.AddCommand(
		getDataSourcesCmd(),
		getVarsCmd(),
		getMappingsCmd(),
		getFeaturesCmd(),
		getTimeseriesCmd(),
		getCatalogCmd(),
	)
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if err = iofs.EnsureDataSourcesFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	for _, f := range []funcFlag{sourcesFlag, metricsFlag, prettyFlag} {
		f(cmd)
	}
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings, the file of the
	// first initialization is kept.
	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded", "config_file", config.ConfigFilePath(homeDir))

	return nil
}

// reconfigureLogging reinitializes the logger with the loaded configuration.
func reconfigureLogging(cfg *config.Config) error {
	logDir := config.LogDir(cfg.HomeDir)
	return iologger.Init(logDir, cfg.Log, true)
}

func runRoot(cmd *cobra.Command, args []string) error {
	gn.Info(
		"Configuration files are available at <em>%s</em>",
		config.ConfigDir(homeDir),
	)
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("GNSYNTH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Catalog configuration
	v.BindEnv("catalog.backend", "GNSYNTH_CATALOG_BACKEND")
	v.BindEnv("catalog.sqlite_path", "GNSYNTH_CATALOG_SQLITE_PATH")
	v.BindEnv("catalog.reference_file", "GNSYNTH_CATALOG_REFERENCE_FILE")
	v.BindEnv("catalog.mapping_dir", "GNSYNTH_CATALOG_MAPPING_DIR")

	// Database configuration
	v.BindEnv("database.host", "GNSYNTH_DATABASE_HOST")
	v.BindEnv("database.port", "GNSYNTH_DATABASE_PORT")
	v.BindEnv("database.user", "GNSYNTH_DATABASE_USER")
	v.BindEnv("database.password", "GNSYNTH_DATABASE_PASSWORD")
	v.BindEnv("database.database", "GNSYNTH_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "GNSYNTH_DATABASE_SSL_MODE")

	// Log configuration
	v.BindEnv("log.level", "GNSYNTH_LOG_LEVEL")
	v.BindEnv("log.format", "GNSYNTH_LOG_FORMAT")
	v.BindEnv("log.destination", "GNSYNTH_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "GNSYNTH_JOBS_NUMBER")

	v.AutomaticEnv()
}
