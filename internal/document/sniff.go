// SPDX-License-Identifier: MPL-2.0

package document

import "regexp"

// markupPatterns are the prologue/root-tag shapes that flag a text as tagged
// markup: a bare opening tag, an XML declaration, or a leading comment. The
// sniff is deliberately shallow; a match only selects which parser to try
// first, and a failed parse falls back down the classifier chain.
var markupPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*<\w+>`),
	regexp.MustCompile(`^\s*<\?xml version`),
	regexp.MustCompile(`^\s*<!--`),
}

// LooksLikeMarkup reports whether text starts like a tagged-markup document.
func LooksLikeMarkup(text string) bool {
	for _, pattern := range markupPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}
