// Package main provides lp, a life planner that keeps its data in a
// folder of markdown documents.
package main

import (
	"os"

	"lifeplanner/internal/cli"
)

func main() {
	exitCode := cli.Run(os.Stdin, os.Stdout, os.Stderr, os.Args, os.Environ())

	os.Exit(exitCode)
}
