// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

const (
	// defaultShortValueLength is the report truncation threshold applied when
	// no config file overrides it. Defined locally to avoid coupling config
	// to internal/report.
	defaultShortValueLength ValueLength = 40

	// minShortValueLength mirrors the lower bound enforced by the CUE schema.
	minShortValueLength = 8
)

var (
	// ErrInvalidValueLength is the sentinel error wrapped by InvalidValueLengthError.
	ErrInvalidValueLength = errors.New("invalid short value length")
	// ErrInvalidFilterPattern is the sentinel error wrapped by InvalidFilterPatternError.
	ErrInvalidFilterPattern = errors.New("invalid filter pattern")
	// ErrInvalidFiltersConfig is the sentinel error wrapped by InvalidFiltersConfigError.
	ErrInvalidFiltersConfig = errors.New("invalid filters config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ValueLength is the truncation threshold (in bytes) above which report
	// values are shortened in the VALUE column and repeated verbatim in the
	// trailing column.
	ValueLength int

	// InvalidValueLengthError is returned when a ValueLength is below the
	// schema minimum. It wraps ErrInvalidValueLength for errors.Is() compatibility.
	InvalidValueLengthError struct {
		Value ValueLength
	}

	// FilterPattern is a regular expression matched against report row labels.
	// The zero value ("") is valid and means "no filter".
	FilterPattern string

	// InvalidFilterPatternError is returned when a FilterPattern does not
	// compile as RE2. It wraps ErrInvalidFilterPattern for errors.Is()
	// compatibility and keeps the compile error as Cause.
	InvalidFilterPatternError struct {
		Value FilterPattern
		Cause error
	}

	// InvalidFiltersConfigError is returned when a FiltersConfig has invalid fields.
	// It wraps ErrInvalidFiltersConfig for errors.Is() compatibility and collects
	// field-level validation errors from Include and Exclude.
	InvalidFiltersConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// FiltersConfig holds default report row filters applied when the
	// corresponding CLI flags are not given. Flags take precedence.
	FiltersConfig struct {
		// Include suppresses rows whose label does not match it.
		Include FilterPattern `json:"include" mapstructure:"include"`
		// Exclude suppresses rows whose label matches it.
		Exclude FilterPattern `json:"exclude" mapstructure:"exclude"`
	}

	// UIConfig configures terminal output.
	UIConfig struct {
		// Debug enables debug logging and per-source walk diagnostics.
		Debug bool `json:"debug" mapstructure:"debug"`
	}

	// Config holds the application configuration.
	Config struct {
		// ShortValueLength sets the report truncation threshold.
		ShortValueLength ValueLength `json:"short_value_length" mapstructure:"short_value_length"`
		// Filters sets default report row filters.
		Filters FiltersConfig `json:"filters" mapstructure:"filters"`
		// UI configures terminal output.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}
)

// Int returns the threshold as a plain int for report options.
func (l ValueLength) Int() int { return int(l) }

// String returns the decimal string representation of the ValueLength.
func (l ValueLength) String() string { return strconv.Itoa(int(l)) }

// IsValid returns whether the ValueLength meets the schema minimum,
// and a list of validation errors if it does not.
func (l ValueLength) IsValid() (bool, []error) {
	if l < minShortValueLength {
		return false, []error{&InvalidValueLengthError{Value: l}}
	}
	return true, nil
}

// Error implements the error interface for InvalidValueLengthError.
func (e *InvalidValueLengthError) Error() string {
	return fmt.Sprintf("invalid short value length %d (must be at least %d)", e.Value, minShortValueLength)
}

// Unwrap returns ErrInvalidValueLength for errors.Is() compatibility.
func (e *InvalidValueLengthError) Unwrap() error { return ErrInvalidValueLength }

// String returns the string representation of the FilterPattern.
func (p FilterPattern) String() string { return string(p) }

// IsValid returns whether the FilterPattern compiles as RE2.
// The zero value ("") is valid (means "no filter").
func (p FilterPattern) IsValid() (bool, []error) {
	if p == "" {
		return true, nil
	}
	if _, err := regexp.Compile(string(p)); err != nil {
		return false, []error{&InvalidFilterPatternError{Value: p, Cause: err}}
	}
	return true, nil
}

// Compile returns the compiled pattern, or nil for the zero value.
func (p FilterPattern) Compile() (*regexp.Regexp, error) {
	if p == "" {
		return nil, nil
	}
	re, err := regexp.Compile(string(p))
	if err != nil {
		return nil, &InvalidFilterPatternError{Value: p, Cause: err}
	}
	return re, nil
}

// Error implements the error interface for InvalidFilterPatternError.
func (e *InvalidFilterPatternError) Error() string {
	return fmt.Sprintf("invalid filter pattern %q: %v", e.Value, e.Cause)
}

// Unwrap returns ErrInvalidFilterPattern for errors.Is() compatibility.
func (e *InvalidFilterPatternError) Unwrap() error { return ErrInvalidFilterPattern }

// IsValid returns whether the FiltersConfig has valid fields.
// It delegates to Include.IsValid() and Exclude.IsValid().
func (f FiltersConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := f.Include.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := f.Exclude.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidFiltersConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidFiltersConfigError.
func (e *InvalidFiltersConfigError) Error() string {
	return fmt.Sprintf("invalid filters config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidFiltersConfig for errors.Is() compatibility.
func (e *InvalidFiltersConfigError) Unwrap() error { return ErrInvalidFiltersConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to ShortValueLength.IsValid() and Filters.IsValid().
// UI has only bool fields and needs no validation.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ShortValueLength.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Filters.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		ShortValueLength: defaultShortValueLength,
		Filters: FiltersConfig{
			Include: "",
			Exclude: "",
		},
		UI: UIConfig{
			Debug: false,
		},
	}
}
