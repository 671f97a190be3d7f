// Package main is the entry point for the modedit CLI.
package main

import "modedit.dev/pkg/modedit/cmd"

func main() {
	cmd.Execute()
}
