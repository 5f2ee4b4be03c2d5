// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/Symantec/config-compare/pkg/types"
)

// ErrInvalidLoadOptions is the sentinel error wrapped by InvalidLoadOptionsError.
var ErrInvalidLoadOptions = errors.New("invalid load options")

type (
	// LoadOptions defines explicit configuration loading inputs. Zero-value
	// fields mean "use the default lookup" and are always valid.
	LoadOptions struct {
		// ConfigFilePath forces loading from a specific config file when set.
		ConfigFilePath types.FilesystemPath
		// ConfigDirPath overrides the config directory lookup when set.
		ConfigDirPath types.FilesystemPath
	}

	// InvalidLoadOptionsError is returned when LoadOptions contains one or
	// more invalid fields.
	InvalidLoadOptionsError struct {
		FieldErrors []error
	}
)

// Validate checks that all non-empty fields hold usable paths.
func (o LoadOptions) Validate() error {
	var fieldErrors []error

	if o.ConfigFilePath != "" {
		if valid, errs := o.ConfigFilePath.IsValid(); !valid {
			fieldErrors = append(fieldErrors, errs...)
		}
	}
	if o.ConfigDirPath != "" {
		if valid, errs := o.ConfigDirPath.IsValid(); !valid {
			fieldErrors = append(fieldErrors, errs...)
		}
	}

	if len(fieldErrors) > 0 {
		return &InvalidLoadOptionsError{FieldErrors: fieldErrors}
	}

	return nil
}

// Error implements the error interface for InvalidLoadOptionsError.
func (e *InvalidLoadOptionsError) Error() string {
	if len(e.FieldErrors) == 1 {
		return fmt.Sprintf("invalid load options: %v", e.FieldErrors[0])
	}
	return fmt.Sprintf("invalid load options: %d field errors", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidLoadOptions for errors.Is() compatibility.
func (e *InvalidLoadOptionsError) Unwrap() error { return ErrInvalidLoadOptions }

// Provider loads configuration from explicit options. Resolution order:
// ConfigFilePath when set, then config.cue in the config directory, then
// config.cue in the working directory, then built-in defaults.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Config, error)
}

type fileProvider struct{}

// NewProvider creates a configuration provider.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load reads configuration from the requested source.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	cfg, _, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
