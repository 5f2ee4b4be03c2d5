// SPDX-License-Identifier: MPL-2.0

package document

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	// KindMapping is a set of unique keys mapping to child documents.
	KindMapping Kind = iota
	// KindSequence is an ordered list of child documents.
	KindSequence
	// KindScalar is a leaf.
	KindScalar
)

const (
	// ScalarString is a textual leaf. It may still turn out to hold an
	// embedded document; that decision belongs to the scalar classifier.
	ScalarString ScalarKind = iota
	// ScalarNumber is a numeric leaf carrying its source literal.
	ScalarNumber
	// ScalarAbsent is an explicit "no value" leaf (JSON null, empty markup
	// element). It contributes presence but never a value.
	ScalarAbsent
)

type (
	// Kind discriminates the Document variant.
	Kind int

	// ScalarKind discriminates scalar leaves.
	ScalarKind int

	// Document is the polymorphic result of parsing one source. Exactly the
	// fields of the active Kind are meaningful; Documents are immutable once
	// built.
	Document struct {
		// Kind selects the active variant.
		Kind Kind
		// Children holds the mapping entries (KindMapping only).
		Children map[string]*Document
		// MarkupOrigin marks mappings produced by the markup parser, whose
		// scalar children are merged into one composite label by the walker.
		MarkupOrigin bool
		// Elements holds the sequence entries (KindSequence only).
		Elements []*Document
		// Scalar selects the leaf flavor (KindScalar only).
		Scalar ScalarKind
		// Text is the string content or number literal (KindScalar only).
		Text string
	}
)

// NewMapping builds a generic mapping document.
func NewMapping(children map[string]*Document) *Document {
	return &Document{Kind: KindMapping, Children: children}
}

// NewMarkupMapping builds a mapping document tagged as markup-origin.
func NewMarkupMapping(children map[string]*Document) *Document {
	return &Document{Kind: KindMapping, Children: children, MarkupOrigin: true}
}

// NewSequence builds a sequence document.
func NewSequence(elements []*Document) *Document {
	return &Document{Kind: KindSequence, Elements: elements}
}

// NewString builds a textual scalar leaf.
func NewString(text string) *Document {
	return &Document{Kind: KindScalar, Scalar: ScalarString, Text: text}
}

// NewNumber builds a numeric scalar leaf from its source literal.
func NewNumber(literal string) *Document {
	return &Document{Kind: KindScalar, Scalar: ScalarNumber, Text: literal}
}

// NewAbsent builds an explicit no-value leaf.
func NewAbsent() *Document {
	return &Document{Kind: KindScalar, Scalar: ScalarAbsent}
}

// SortedKeys returns the mapping keys in sorted order. Walk order over
// mappings is always derived from this so output is independent of source
// key order. Returns nil for non-mapping documents.
func (d *Document) SortedKeys() []string {
	if d.Kind != KindMapping {
		return nil
	}
	keys := maps.Keys(d.Children)
	slices.Sort(keys)
	return keys
}

// IsStringScalar reports whether d is a textual scalar leaf. The markup
// composite pass uses this to separate simple children from complex ones.
func (d *Document) IsStringScalar() bool {
	return d.Kind == KindScalar && d.Scalar == ScalarString
}
