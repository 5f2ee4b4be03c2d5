// SPDX-License-Identifier: MPL-2.0

package document

import (
	"fmt"

	"github.com/clbanning/mxj/v2"
)

func init() {
	// Attribute keys carry an "@" prefix and element text lives under
	// "#text", so both sort ahead of ordinary child names and stay
	// distinguishable in composite labels.
	mxj.SetAttrPrefix("@")
}

// ParseMarkup parses tagged markup (XML) into a markup-origin Document.
// Repeated sibling elements become a Sequence; an empty non-attribute
// element becomes the absent scalar so it contributes presence but no
// value. Comments, processing instructions, and directives do not appear
// in the result.
func ParseMarkup(text string) (*Document, error) {
	m, err := mxj.NewMapXml([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("markup parse: %w", err)
	}
	return fromMarkupValue(map[string]any(m), false)
}

// fromMarkupValue lowers mxj's generic map form. The attribute flag tracks
// whether the value sits under an "@"-prefixed key: empty attribute values
// stay strings, while empty elements lower to the absent scalar.
func fromMarkupValue(v any, isAttr bool) (*Document, error) {
	switch val := v.(type) {
	case nil:
		return NewAbsent(), nil
	case map[string]any:
		children := make(map[string]*Document, len(val))
		for key, child := range val {
			doc, err := fromMarkupValue(child, isAttrKey(key))
			if err != nil {
				return nil, err
			}
			children[key] = doc
		}
		return NewMarkupMapping(children), nil
	case []any:
		elements := make([]*Document, 0, len(val))
		for _, child := range val {
			doc, err := fromMarkupValue(child, false)
			if err != nil {
				return nil, err
			}
			elements = append(elements, doc)
		}
		return NewSequence(elements), nil
	case string:
		if val == "" && !isAttr {
			return NewAbsent(), nil
		}
		return NewString(val), nil
	default:
		return nil, fmt.Errorf("cannot lower markup value of type %T into a document", v)
	}
}

func isAttrKey(key string) bool {
	return len(key) > 0 && key[0] == '@'
}
