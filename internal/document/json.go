// SPDX-License-Identifier: MPL-2.0

package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ParseJSON parses text as exactly one JSON value into a Document. Number
// literals are preserved verbatim (no float round-trip), so "1e2" and "100"
// stay distinct values. Trailing non-whitespace content is a parse error,
// matching whole-input object-literal semantics.
func ParseJSON(text string) (*Document, error) {
	decoder := json.NewDecoder(strings.NewReader(text))
	decoder.UseNumber()

	var v any
	if err := decoder.Decode(&v); err != nil {
		return nil, fmt.Errorf("json parse: %w", err)
	}

	var extra any
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("json parse: trailing content after value")
	}

	return FromValue(v)
}
