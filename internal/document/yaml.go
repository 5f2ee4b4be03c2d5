// SPDX-License-Identifier: MPL-2.0

package document

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// ParseYAML parses text as one YAML document. YAML sources are dispatched
// by file extension only; scalar values inside other grammars are never
// sniffed for YAML.
func ParseYAML(text string) (*Document, error) {
	var v any
	if err := yaml.Unmarshal([]byte(text), &v); err != nil {
		return nil, fmt.Errorf("yaml parse: %w", err)
	}
	return FromValue(v)
}
