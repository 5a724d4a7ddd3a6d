// ABOUTME: Entry point for the undistort program.
// ABOUTME: Prints the startup line and exits successfully; arguments are ignored.
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(run(os.Stdout))
}

// run writes the startup line to w and returns the process exit code.
func run(w io.Writer) int {
	_, _ = fmt.Fprintln(w, "Starting program...")
	return 0
}
