// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/Symantec/config-compare/cmd/config-compare"

func main() {
	cmd.Execute()
}
