// Package main provides the operator CLI for the embed demo. It edits the
// saved embed configuration and requests sessions through the relay.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
