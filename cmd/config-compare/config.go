// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Symantec/config-compare/internal/config"
	"github.com/Symantec/config-compare/internal/issue"
	"github.com/Symantec/config-compare/pkg/cueutil"
	"github.com/Symantec/config-compare/pkg/types"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `config-compare config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage config-compare configuration",
		Long: `Manage config-compare configuration.

Configuration is stored in:
  - Linux: ~/.config/config-compare/config.cue
  - macOS: ~/Library/Application Support/config-compare/config.cue
  - Windows: %APPDATA%\config-compare\config.cue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app, configPathFlag(cmd))
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(cmd.Context(), app, args[0], args[1])
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config.Load(cmd.Context(), loadOptionsFor(configPathFlag(cmd)))
			if err != nil {
				return err
			}

			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a configuration file against the schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateConfigFile(app, args[0])
		},
	})

	return cfgCmd
}

// configPathFlag reads the persistent --config flag, which Cobra resolves
// through the parent command chain.
func configPathFlag(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	return path
}

// loadOptionsFor builds LoadOptions honoring an optional explicit config path.
func loadOptionsFor(configPath string) config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: types.FilesystemPath(configPath)}
}

func showConfig(ctx context.Context, app *App, configPath string) error {
	cfg, err := app.Config.Load(ctx, loadOptionsFor(configPath))
	if err != nil {
		rendered, _ := issue.Get(issue.ConfigLoadFailedId).Render("dark")
		fmt.Fprint(app.stderr, rendered)
		fmt.Fprintln(app.stderr, formatErrorForDisplay(err, false))
		return &ExitError{Code: types.ExitUsage, Err: err}
	}

	// Style definitions using shared color palette
	headerStyle := TitleStyle
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(app.stdout, headerStyle.Render("Current Configuration"))
	fmt.Fprintln(app.stdout)

	// Derive the config file path the same way the loader resolves it: the
	// explicit path when given, otherwise the standard config directory.
	resolved := configPath
	if resolved == "" {
		if cfgDir, dirErr := config.ConfigDir(); dirErr == nil {
			resolved = filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt)
		}
	}
	if resolved != "" && fileExistsCheck(resolved) {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("Config file"), resolved)
	} else {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(app.stdout)

	// Show values
	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("short_value_length"), valueStyle.Render(cfg.ShortValueLength.String()))

	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("filters"))
	if cfg.Filters.Include == "" && cfg.Filters.Exclude == "" {
		fmt.Fprintf(app.stdout, "  %s\n", SubtitleStyle.Render("(none configured)"))
	} else {
		if cfg.Filters.Include != "" {
			fmt.Fprintf(app.stdout, "  include: %s\n", valueStyle.Render(cfg.Filters.Include.String()))
		}
		if cfg.Filters.Exclude != "" {
			fmt.Fprintf(app.stdout, "  exclude: %s\n", valueStyle.Render(cfg.Filters.Exclude.String()))
		}
	}

	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(app.stdout, "  debug: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Debug)))

	return nil
}

func initConfig(app *App) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return &ExitError{Code: types.ExitFailure, Err: err}
	}

	if err = config.CreateDefaultConfig(); err != nil {
		return &ExitError{Code: types.ExitFailure, Err: fmt.Errorf("failed to create config: %w", err)}
	}

	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n",
		SuccessStyle.Render("✓"), filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))

	return nil
}

func showConfigPath(app *App) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return &ExitError{Code: types.ExitFailure, Err: err}
	}

	fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)
	fmt.Fprintf(app.stdout, "Config file: %s\n", filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))

	return nil
}

func setConfigValue(ctx context.Context, app *App, key, value string) error {
	cfg, err := app.Config.Load(ctx, config.LoadOptions{})
	if err != nil {
		return &ExitError{Code: types.ExitUsage, Err: err}
	}

	switch key {
	case "short_value_length":
		n, parseErr := strconv.Atoi(value)
		if parseErr != nil {
			return &ExitError{Code: types.ExitUsage, Err: fmt.Errorf("invalid short_value_length: %q is not an integer", value)}
		}
		cfg.ShortValueLength = config.ValueLength(n)

	case "filters.include":
		cfg.Filters.Include = config.FilterPattern(value)

	case "filters.exclude":
		cfg.Filters.Exclude = config.FilterPattern(value)

	case "ui.debug":
		cfg.UI.Debug = value == "true" || value == "1"

	default:
		return &ExitError{Code: types.ExitUsage, Err: fmt.Errorf("unknown configuration key: %s\nValid keys: short_value_length, filters.include, filters.exclude, ui.debug", key)}
	}

	if ok, errs := cfg.IsValid(); !ok {
		return &ExitError{Code: types.ExitUsage, Err: fmt.Errorf("invalid value for %s: %w", key, errs[0])}
	}

	if err := config.Save(cfg); err != nil {
		return &ExitError{Code: types.ExitFailure, Err: fmt.Errorf("failed to save config: %w", err)}
	}

	fmt.Fprintf(app.stdout, "%s Set %s = %s\n", SuccessStyle.Render("✓"), key, value)
	return nil
}

// validateConfigFile checks a CUE config file against the embedded schema
// without loading it into the running configuration.
func validateConfigFile(app *App, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ExitError{Code: types.ExitUsage, Err: fmt.Errorf("failed to read %s: %w", path, err)}
	}

	result, err := cueutil.ParseAndDecodeString[config.Config](config.Schema(), data, "#Config", cueutil.WithFilename(path))
	if err != nil {
		fmt.Fprintf(app.stderr, "%s %s\n", ErrorStyle.Render("✗"), formatErrorForDisplay(err, false))
		return &ExitError{Code: types.ExitUsage, Err: err}
	}

	// Overlay onto defaults the way the loader does, so omitted fields stay
	// valid. The Go-level check adds what the schema cannot express, such as
	// RE2 pattern compilation.
	cfg := config.DefaultConfig()
	if result.Value.ShortValueLength != 0 {
		cfg.ShortValueLength = result.Value.ShortValueLength
	}
	cfg.Filters = result.Value.Filters
	cfg.UI = result.Value.UI

	if ok, errs := cfg.IsValid(); !ok {
		fmt.Fprintf(app.stderr, "%s %v\n", ErrorStyle.Render("✗"), errs[0])
		return &ExitError{Code: types.ExitUsage, Err: errs[0]}
	}

	fmt.Fprintf(app.stdout, "%s %s is valid\n", SuccessStyle.Render("✓"), path)
	return nil
}

// fileExistsCheck checks if a file exists and is not a directory.
func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
