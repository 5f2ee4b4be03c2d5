// SPDX-License-Identifier: MPL-2.0

package walk

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/Symantec/config-compare/internal/aggregate"
	"github.com/Symantec/config-compare/internal/document"
)

// compositeJoin glues the attribute/simple-element names (and, separately,
// their values) of one markup element into a single comparable label/value
// pair.
const compositeJoin = " - "

// Walker merges configuration sources into one Aggregate. It is not safe
// for concurrent use; a comparison run merges sources sequentially.
type Walker struct {
	agg   *aggregate.Aggregate
	diags []Diagnostic
}

// New creates a Walker that records into agg, which must not be nil.
func New(agg *aggregate.Aggregate) *Walker {
	return &Walker{agg: agg}
}

// Diagnostics returns the non-fatal conditions observed so far, in
// occurrence order. The slice is a copy.
func (w *Walker) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(w.diags))
	copy(out, w.diags)
	return out
}

// MergeSource merges one source's raw content into the aggregate. YAML and
// TOML sources are recognized by file extension; everything else enters the
// scalar classifier, which detects markup and serialized objects by
// content. The returned error is fatal for the whole run (unsupported
// shape); grammar-detection misses are diagnostics, not errors.
func (w *Walker) MergeSource(source aggregate.Source, raw string) error {
	w.agg.AddSource(source)

	if doc, ok := w.parseByExtension(source, raw); ok {
		return w.walk(source, aggregate.Root(), doc)
	}
	return w.walk(source, aggregate.Root(), document.NewString(raw))
}

// parseByExtension handles the extension-dispatched grammars. A parse
// failure falls back to content sniffing so a mislabeled file still gets
// best-effort comparison.
func (w *Walker) parseByExtension(source aggregate.Source, raw string) (*document.Document, bool) {
	switch strings.ToLower(filepath.Ext(string(source))) {
	case ".yaml", ".yml":
		doc, err := document.ParseYAML(raw)
		if err != nil {
			w.fallback(SeverityWarning, "yaml_parse_fallback",
				"yaml source did not parse, falling back to content detection", source, aggregate.Root(), err)
			return nil, false
		}
		return doc, true
	case ".toml":
		doc, err := document.ParseTOML(raw)
		if err != nil {
			w.fallback(SeverityWarning, "toml_parse_fallback",
				"toml source did not parse, falling back to content detection", source, aggregate.Root(), err)
			return nil, false
		}
		return doc, true
	default:
		return nil, false
	}
}

func (w *Walker) walk(source aggregate.Source, path aggregate.Path, doc *document.Document) error {
	switch doc.Kind {
	case document.KindMapping:
		if doc.MarkupOrigin {
			return w.walkMarkupMapping(source, path, doc)
		}
		return w.walkMapping(source, path, doc)
	case document.KindSequence:
		return w.walkSequence(source, path, doc)
	case document.KindScalar:
		return w.classifyScalar(source, path, doc)
	default:
		return fmt.Errorf("unknown document kind %d", doc.Kind)
	}
}

// walkMapping descends a generic mapping: sorted keys, one cleaned segment
// per key, presence registered at every step.
func (w *Walker) walkMapping(source aggregate.Source, path aggregate.Path, doc *document.Document) error {
	for _, key := range doc.SortedKeys() {
		next := path.Append(aggregate.CleanSegment(key))
		w.agg.RegisterPresence(source, next)
		if err := w.walk(source, next, doc.Children[key]); err != nil {
			return err
		}
	}
	return nil
}

// walkMarkupMapping descends a markup element. The element's string-scalar
// children (attributes, text content, simple elements) are first merged
// into one composite label and one composite value recorded together, so an
// element reads as a single row instead of one row per attribute. Complex
// children then descend from the composite-extended path, keeping them
// grouped under the element they belong to. The composite value is fed back
// through the classifier: markup nested inside attribute text still gets
// compared structurally.
func (w *Walker) walkMarkupMapping(source aggregate.Source, path aggregate.Path, doc *document.Document) error {
	var labels, values []string
	for _, key := range doc.SortedKeys() {
		child := doc.Children[key]
		if !child.IsStringScalar() {
			continue
		}
		labels = append(labels, aggregate.CleanSegment(key))
		values = append(values, child.Text)
	}

	base := path
	if len(labels) > 0 {
		base = path.Append(strings.Join(labels, compositeJoin))
		w.agg.RegisterPresence(source, base)
		composite := document.NewString(strings.Join(values, compositeJoin))
		if err := w.walk(source, base, composite); err != nil {
			return err
		}
	}

	for _, key := range doc.SortedKeys() {
		child := doc.Children[key]
		if child.IsStringScalar() {
			continue
		}
		next := base.Append(aggregate.CleanSegment(key))
		w.agg.RegisterPresence(source, next)
		if err := w.walk(source, next, child); err != nil {
			return err
		}
	}
	return nil
}

// walkSequence records every element under one ELEMENT marker segment;
// order and count are deliberately not distinguished. An element that is
// itself a mapping has no defined comparison semantics and aborts the run.
func (w *Walker) walkSequence(source aggregate.Source, path aggregate.Path, doc *document.Document) error {
	for _, element := range doc.Elements {
		next := path.Append(aggregate.ElementMarker)
		if element.Kind == document.KindMapping {
			return &UnsupportedShapeError{
				Source: source,
				Path:   next.String(),
				Dump:   spew.Sdump(element),
			}
		}
		w.agg.RegisterPresence(source, next)
		if err := w.walk(source, next, element); err != nil {
			return err
		}
	}
	return nil
}

func (w *Walker) fallback(severity Severity, code, message string, source aggregate.Source, path aggregate.Path, cause error) {
	w.diags = append(w.diags, Diagnostic{
		Severity: severity,
		Code:     code,
		Message:  message,
		Source:   source,
		Path:     path.String(),
		Cause:    cause,
	})
}
