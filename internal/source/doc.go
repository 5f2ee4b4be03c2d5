// SPDX-License-Identifier: MPL-2.0

// Package source validates and loads the configuration sources named on the
// command line. The core comparison engine never touches the filesystem; it
// receives raw content keyed by source identifier from here.
package source
