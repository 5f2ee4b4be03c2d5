// SPDX-License-Identifier: MPL-2.0

package walk

import (
	"strings"

	"github.com/Symantec/config-compare/internal/aggregate"
	"github.com/Symantec/config-compare/internal/document"
)

// classifyScalar decides what a scalar leaf really is and dispatches it.
// Check order matters and must not change: markup prologue first, then the
// multi-line serialized-object attempt, then freeform handling. Numeric and
// absent leaves never sniff; numbers record their literal and absence
// records nothing (presence was registered during descent).
func (w *Walker) classifyScalar(source aggregate.Source, path aggregate.Path, doc *document.Document) error {
	switch doc.Scalar {
	case document.ScalarNumber:
		w.agg.Record(source, path, doc.Text)
		return nil
	case document.ScalarAbsent:
		return nil
	}

	text := doc.Text

	if document.LooksLikeMarkup(text) {
		parsed, err := document.ParseMarkup(text)
		if err == nil {
			return w.walk(source, path, parsed)
		}
		w.fallback(SeverityWarning, "markup_parse_fallback",
			"scalar looks like markup but did not parse, falling back", source, path, err)
	}

	if strings.Contains(text, "\n") {
		if parsed, err := document.ParseJSON(text); err == nil {
			return w.walk(source, path, parsed)
		}
		// Freeform text is recorded twice on purpose: the whole block as one
		// value, and each tokenized assignment/element on its own. The first
		// catches "the entire block differs", the second pinpoints which
		// line inside an otherwise-identical block differs.
		w.agg.Record(source, path, text)
		return w.parseFreeform(source, path, text)
	}

	w.agg.Record(source, path, text)
	return nil
}
