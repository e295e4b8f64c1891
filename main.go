// SPDX-License-Identifier: MPL-2.0

// Command pyembed rewrites standalone Python scripts so their dependencies
// travel inside them.
package main

import cmd "pyembed/cmd/pyembed"

func main() {
	cmd.Execute()
}
