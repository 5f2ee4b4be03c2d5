// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Symantec/config-compare/internal/config"
	"github.com/Symantec/config-compare/pkg/types"
)

// newTestApp builds an App writing to buffers, with the config directory
// redirected into a temp dir so the host configuration never leaks in.
func newTestApp(t *testing.T, provider ConfigProvider) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	config.SetConfigDirOverride(t.TempDir())
	t.Cleanup(config.Reset)

	var stdout, stderr bytes.Buffer
	app, err := NewApp(Dependencies{
		Config: provider,
		Stdout: &stdout,
		Stderr: &stderr,
	})
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	return app, &stdout, &stderr
}

func TestShowConfig_Defaults(t *testing.T) {
	// Not parallel: mutates the config directory override.

	app, stdout, _ := newTestApp(t, defaultsProvider())

	if err := showConfig(context.Background(), app, ""); err != nil {
		t.Fatalf("showConfig() error = %v", err)
	}

	out := stdout.String()
	if !strings.Contains(out, "Current Configuration") {
		t.Errorf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "(using defaults)") {
		t.Errorf("missing defaults marker:\n%s", out)
	}
	if !strings.Contains(out, "short_value_length") || !strings.Contains(out, "40") {
		t.Errorf("missing threshold value:\n%s", out)
	}
	if !strings.Contains(out, "(none configured)") {
		t.Errorf("missing empty-filters marker:\n%s", out)
	}
	if !strings.Contains(out, "debug") {
		t.Errorf("missing ui.debug value:\n%s", out)
	}
}

func TestShowConfig_WithFilters(t *testing.T) {
	// Not parallel: mutates the config directory override.

	cfg := config.DefaultConfig()
	cfg.Filters.Include = "^server"
	cfg.Filters.Exclude = "password"
	provider := &mockConfigProvider{
		loadFunc: func(context.Context, config.LoadOptions) (*config.Config, error) {
			return cfg, nil
		},
	}

	app, stdout, _ := newTestApp(t, provider)

	if err := showConfig(context.Background(), app, ""); err != nil {
		t.Fatalf("showConfig() error = %v", err)
	}

	out := stdout.String()
	if !strings.Contains(out, "include: ^server") {
		t.Errorf("missing include filter:\n%s", out)
	}
	if !strings.Contains(out, "exclude: password") {
		t.Errorf("missing exclude filter:\n%s", out)
	}
}

func TestShowConfig_LoadFailure(t *testing.T) {
	// Not parallel: mutates the config directory override.

	provider := &mockConfigProvider{
		loadFunc: func(context.Context, config.LoadOptions) (*config.Config, error) {
			return nil, errors.New("config.cue:2: field not allowed")
		},
	}

	app, _, stderr := newTestApp(t, provider)

	err := showConfig(context.Background(), app, "")

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got %T", err)
	}
	if exitErr.Code != types.ExitUsage {
		t.Errorf("Code = %d, want %d", exitErr.Code, types.ExitUsage)
	}
	if !strings.Contains(stderr.String(), "field not allowed") {
		t.Errorf("error detail missing from stderr: %q", stderr.String())
	}
}

func TestInitAndShowConfigPath(t *testing.T) {
	// Not parallel: mutates the config directory override.

	app, stdout, _ := newTestApp(t, defaultsProvider())

	if err := initConfig(app); err != nil {
		t.Fatalf("initConfig() error = %v", err)
	}

	cfgDir, err := config.ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	cfgPath := filepath.Join(cfgDir, "config.cue")
	if _, err := os.Stat(cfgPath); err != nil {
		t.Fatalf("expected config file at %s: %v", cfgPath, err)
	}
	if !strings.Contains(stdout.String(), cfgPath) {
		t.Errorf("init output should name the created file, got %q", stdout.String())
	}

	stdout.Reset()
	if err := showConfigPath(app); err != nil {
		t.Fatalf("showConfigPath() error = %v", err)
	}
	if !strings.Contains(stdout.String(), "Config directory: "+cfgDir) {
		t.Errorf("missing config directory line:\n%s", stdout.String())
	}
	if !strings.Contains(stdout.String(), "Config file: "+cfgPath) {
		t.Errorf("missing config file line:\n%s", stdout.String())
	}
}

func TestSetConfigValue(t *testing.T) {
	// Not parallel: mutates the config directory override.

	t.Run("valid keys persist", func(t *testing.T) {
		app, stdout, _ := newTestApp(t, defaultsProvider())

		if err := setConfigValue(context.Background(), app, "short_value_length", "64"); err != nil {
			t.Fatalf("setConfigValue() error = %v", err)
		}
		if !strings.Contains(stdout.String(), "Set short_value_length = 64") {
			t.Errorf("missing confirmation, got %q", stdout.String())
		}

		cfgDir, err := config.ConfigDir()
		if err != nil {
			t.Fatalf("ConfigDir() error = %v", err)
		}
		data, err := os.ReadFile(filepath.Join(cfgDir, "config.cue"))
		if err != nil {
			t.Fatalf("reading saved config: %v", err)
		}
		if !strings.Contains(string(data), "short_value_length: 64") {
			t.Errorf("saved config missing new value:\n%s", data)
		}
	})

	t.Run("non-integer threshold is rejected", func(t *testing.T) {
		app, _, _ := newTestApp(t, defaultsProvider())

		err := setConfigValue(context.Background(), app, "short_value_length", "lots")

		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("expected ExitError, got %T", err)
		}
		if exitErr.Code != types.ExitUsage {
			t.Errorf("Code = %d, want %d", exitErr.Code, types.ExitUsage)
		}
	})

	t.Run("below-minimum threshold fails validation", func(t *testing.T) {
		app, _, _ := newTestApp(t, defaultsProvider())

		err := setConfigValue(context.Background(), app, "short_value_length", "4")
		if err == nil {
			t.Fatal("expected validation error for threshold below minimum")
		}
		if !errors.Is(err, config.ErrInvalidConfig) {
			t.Errorf("error = %v, want ErrInvalidConfig", err)
		}
	})

	t.Run("invalid filter pattern fails validation", func(t *testing.T) {
		app, _, _ := newTestApp(t, defaultsProvider())

		err := setConfigValue(context.Background(), app, "filters.include", "[")
		if err == nil {
			t.Fatal("expected validation error for invalid pattern")
		}
		if !errors.Is(err, config.ErrInvalidConfig) {
			t.Errorf("error = %v, want ErrInvalidConfig", err)
		}
	})

	t.Run("unknown key is rejected", func(t *testing.T) {
		app, _, _ := newTestApp(t, defaultsProvider())

		err := setConfigValue(context.Background(), app, "colors.theme", "dark")
		if err == nil || !strings.Contains(err.Error(), "unknown configuration key") {
			t.Errorf("error = %v, want unknown-key message", err)
		}
	})
}

func TestValidateConfigFile(t *testing.T) {
	// Not parallel: mutates the config directory override.

	t.Run("valid file", func(t *testing.T) {
		app, stdout, _ := newTestApp(t, defaultsProvider())

		path := filepath.Join(t.TempDir(), "config.cue")
		content := "short_value_length: 72\n\nfilters: {\n\texclude: \"secret\"\n}\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("writing config: %v", err)
		}

		if err := validateConfigFile(app, path); err != nil {
			t.Fatalf("validateConfigFile() error = %v", err)
		}
		if !strings.Contains(stdout.String(), "is valid") {
			t.Errorf("missing validity confirmation, got %q", stdout.String())
		}
	})

	t.Run("schema violation", func(t *testing.T) {
		app, _, stderr := newTestApp(t, defaultsProvider())

		path := filepath.Join(t.TempDir(), "config.cue")
		if err := os.WriteFile(path, []byte("short_value_length: 4\n"), 0o644); err != nil {
			t.Fatalf("writing config: %v", err)
		}

		err := validateConfigFile(app, path)

		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("expected ExitError, got %T", err)
		}
		if exitErr.Code != types.ExitUsage {
			t.Errorf("Code = %d, want %d", exitErr.Code, types.ExitUsage)
		}
		if stderr.Len() == 0 {
			t.Error("expected schema violation details on stderr")
		}
	})

	t.Run("omitted fields fall back to defaults", func(t *testing.T) {
		app, stdout, _ := newTestApp(t, defaultsProvider())

		path := filepath.Join(t.TempDir(), "config.cue")
		if err := os.WriteFile(path, []byte("ui: {\n\tdebug: true\n}\n"), 0o644); err != nil {
			t.Fatalf("writing config: %v", err)
		}

		if err := validateConfigFile(app, path); err != nil {
			t.Fatalf("validateConfigFile() error = %v", err)
		}
		if !strings.Contains(stdout.String(), "is valid") {
			t.Errorf("missing validity confirmation, got %q", stdout.String())
		}
	})

	t.Run("pattern that only RE2 can reject", func(t *testing.T) {
		app, _, _ := newTestApp(t, defaultsProvider())

		path := filepath.Join(t.TempDir(), "config.cue")
		content := "filters: {\n\tinclude: \"[\"\n}\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("writing config: %v", err)
		}

		err := validateConfigFile(app, path)
		if err == nil {
			t.Fatal("expected validation error for an uncompilable pattern")
		}
		if !errors.Is(err, config.ErrInvalidConfig) {
			t.Errorf("error = %v, want ErrInvalidConfig", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		app, _, _ := newTestApp(t, defaultsProvider())

		err := validateConfigFile(app, filepath.Join(t.TempDir(), "absent.cue"))
		if err == nil {
			t.Fatal("expected error for missing file")
		}
	})
}
