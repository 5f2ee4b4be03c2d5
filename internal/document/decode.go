// SPDX-License-Identifier: MPL-2.0

package document

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// FromValue lowers a generically decoded Go value (the output of a JSON,
// YAML, or TOML unmarshal into interface{}) into a Document. Numbers keep a
// literal representation so values compare as written where the decoder
// preserves it (json.Number) and in a canonical form otherwise. Booleans
// lower to the strings "true"/"false" so the same setting compares equal
// across grammars; nil lowers to the absent scalar.
func FromValue(v any) (*Document, error) {
	switch val := v.(type) {
	case nil:
		return NewAbsent(), nil
	case map[string]any:
		children := make(map[string]*Document, len(val))
		for key, child := range val {
			doc, err := FromValue(child)
			if err != nil {
				return nil, err
			}
			children[key] = doc
		}
		return NewMapping(children), nil
	case map[any]any:
		// Some YAML decodings key mappings by arbitrary scalars.
		children := make(map[string]*Document, len(val))
		for key, child := range val {
			doc, err := FromValue(child)
			if err != nil {
				return nil, err
			}
			children[scalarKeyString(key)] = doc
		}
		return NewMapping(children), nil
	case []any:
		elements := make([]*Document, 0, len(val))
		for _, child := range val {
			doc, err := FromValue(child)
			if err != nil {
				return nil, err
			}
			elements = append(elements, doc)
		}
		return NewSequence(elements), nil
	case string:
		return NewString(val), nil
	case bool:
		return NewString(strconv.FormatBool(val)), nil
	case json.Number:
		return NewNumber(val.String()), nil
	case int:
		return NewNumber(strconv.FormatInt(int64(val), 10)), nil
	case int64:
		return NewNumber(strconv.FormatInt(val, 10)), nil
	case uint64:
		return NewNumber(strconv.FormatUint(val, 10)), nil
	case float64:
		return NewNumber(strconv.FormatFloat(val, 'g', -1, 64)), nil
	case time.Time:
		return NewString(val.Format(time.RFC3339Nano)), nil
	case fmt.Stringer:
		// TOML local date/time values and similar decoder-specific scalars.
		return NewString(val.String()), nil
	default:
		return nil, fmt.Errorf("cannot lower value of type %T into a document", v)
	}
}

func scalarKeyString(key any) string {
	switch k := key.(type) {
	case string:
		return k
	default:
		return fmt.Sprintf("%v", k)
	}
}
