// SPDX-License-Identifier: MPL-2.0

// Package report renders a merged aggregate as a tab-separated comparison
// table: one presence row per canonical path and one value row per distinct
// normalized value, each with an X/- cell per source.
//
// Row visibility is controlled twice, independently: the display mode
// compares a row's source set against the run's full source count (default
// shows differences only, same-only shows universal agreement only, verbose
// shows everything), and optional include/exclude regular expressions match
// against the row label. Long values are truncated in the value column and
// repeated verbatim in a trailing column so spreadsheet pastes stay usable.
package report
