// SPDX-License-Identifier: MPL-2.0

package document

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// ParseTOML parses text as a TOML document (always a table at top level).
// Like YAML, TOML is dispatched by file extension only. Datetime values
// lower to RFC 3339 strings.
func ParseTOML(text string) (*Document, error) {
	var v map[string]any
	if err := toml.Unmarshal([]byte(text), &v); err != nil {
		return nil, fmt.Errorf("toml parse: %w", err)
	}
	return FromValue(v)
}
