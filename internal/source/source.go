// SPDX-License-Identifier: MPL-2.0

package source

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Symantec/config-compare/internal/aggregate"
)

var (
	// ErrTooFewSources is returned when fewer than two distinct sources
	// remain after de-duplication.
	ErrTooFewSources = errors.New("at least two distinct configuration sources are required")
	// ErrMissingSource is the sentinel error wrapped by MissingSourceError.
	ErrMissingSource = errors.New("configuration source does not exist")
)

type (
	// Input is one source's raw content keyed by its identifier, ready for
	// the walker.
	Input struct {
		Source  aggregate.Source
		Content string
	}

	// MissingSourceError reports every named source that does not exist as
	// a regular file, so the operator sees all problems at once.
	MissingSourceError struct {
		Paths []string
	}
)

// Error implements the error interface.
func (e *MissingSourceError) Error() string {
	return fmt.Sprintf("configuration sources do not exist: %s", strings.Join(e.Paths, ", "))
}

// Unwrap returns ErrMissingSource so callers can use errors.Is for
// programmatic detection.
func (e *MissingSourceError) Unwrap() error { return ErrMissingSource }

// Resolve de-duplicates the given paths preserving first-seen order,
// requires at least two distinct sources, and verifies each names an
// existing regular file. All missing files are reported together.
func Resolve(paths []string) ([]aggregate.Source, error) {
	var distinct []aggregate.Source
	seen := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		distinct = append(distinct, aggregate.Source(p))
	}

	if len(distinct) < 2 {
		return nil, fmt.Errorf("%w: got %v", ErrTooFewSources, paths)
	}

	var missing []string
	for _, src := range distinct {
		info, err := os.Stat(string(src))
		if err != nil || info.IsDir() {
			missing = append(missing, string(src))
		}
	}
	if len(missing) > 0 {
		return nil, &MissingSourceError{Paths: missing}
	}
	return distinct, nil
}

// Load reads each resolved source's raw content in order.
func Load(sources []aggregate.Source) ([]Input, error) {
	inputs := make([]Input, 0, len(sources))
	for _, src := range sources {
		data, err := os.ReadFile(string(src))
		if err != nil {
			return nil, fmt.Errorf("reading configuration source %s: %w", src, err)
		}
		inputs = append(inputs, Input{Source: src, Content: string(data)})
	}
	return inputs, nil
}
