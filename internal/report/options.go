// SPDX-License-Identifier: MPL-2.0

package report

import (
	"errors"
	"fmt"
	"regexp"
)

const (
	// ModeDefault shows only rows whose source set differs from the full
	// source set.
	ModeDefault Mode = "default"
	// ModeSame shows only rows present with the same value in every source.
	ModeSame Mode = "same"
	// ModeVerbose shows every row.
	ModeVerbose Mode = "verbose"
)

// DefaultShortValueLength is the truncation threshold applied when options
// do not override it.
const DefaultShortValueLength = 40

var (
	// ErrInvalidMode is the sentinel error for unknown display modes.
	ErrInvalidMode = errors.New("invalid display mode")
	// ErrInvalidPattern is the sentinel error for filter patterns that do
	// not compile as regular expressions.
	ErrInvalidPattern = errors.New("invalid filter pattern")
	// ErrInvalidThreshold is the sentinel error for non-positive truncation
	// thresholds.
	ErrInvalidThreshold = errors.New("invalid short-value threshold")
)

type (
	// Mode selects which rows the report shows.
	Mode string

	// Options is the explicit per-run display configuration. Construct it
	// with NewOptions so patterns are compiled and validated once.
	Options struct {
		mode             Mode
		include          *regexp.Regexp
		exclude          *regexp.Regexp
		shortValueLength int
	}
)

// IsValid reports whether the mode is one of the known display modes.
func (m Mode) IsValid() (bool, []error) {
	switch m {
	case ModeDefault, ModeSame, ModeVerbose:
		return true, nil
	default:
		return false, []error{fmt.Errorf("%w: %q", ErrInvalidMode, string(m))}
	}
}

// NewOptions validates and compiles the display configuration for one run.
// Empty include/exclude patterns mean "no filter"; a shortValueLength of 0
// selects the default threshold.
func NewOptions(mode Mode, includePattern, excludePattern string, shortValueLength int) (*Options, error) {
	if ok, errs := mode.IsValid(); !ok {
		return nil, errs[0]
	}
	if shortValueLength == 0 {
		shortValueLength = DefaultShortValueLength
	}
	if shortValueLength < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidThreshold, shortValueLength)
	}

	opts := &Options{mode: mode, shortValueLength: shortValueLength}

	if includePattern != "" {
		re, err := regexp.Compile(includePattern)
		if err != nil {
			return nil, fmt.Errorf("%w: include %q: %v", ErrInvalidPattern, includePattern, err)
		}
		opts.include = re
	}
	if excludePattern != "" {
		re, err := regexp.Compile(excludePattern)
		if err != nil {
			return nil, fmt.Errorf("%w: exclude %q: %v", ErrInvalidPattern, excludePattern, err)
		}
		opts.exclude = re
	}
	return opts, nil
}

// Mode returns the active display mode.
func (o *Options) Mode() Mode { return o.mode }

// ShortValueLength returns the truncation threshold.
func (o *Options) ShortValueLength() int { return o.shortValueLength }
