// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/nativebuild/nativebuild/cmd/nativebuild"

func main() {
	cmd.Execute()
}
