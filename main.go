// ABOUTME: Entry point for the ryze CLI
// ABOUTME: Command-line client for the RYZE.ai freelance marketplace

package main

import (
	"fmt"
	"os"

	"github.com/ryze-ai/ryze-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
