// ABOUTME: Entry point for the planner command line client
// ABOUTME: Lists, edits and exports content through the persistence service

package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
