// SPDX-License-Identifier: MPL-2.0

// corekit is a dependency and build-manifest tool for hardware cores.
package main

import cmd "corekit/cmd/corekit"

func main() {
	cmd.Execute()
}
