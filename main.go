// Package main is the entry point for the minitest CLI.
//
// It runs whatever test classes are linked into the binary; on its own that
// is none. Build a runner by blank-importing packages that register classes,
// as examples/demo does.
package main

import "minitest.dev/runner/cmd"

func main() {
	cmd.Execute()
}
