// Package main provides the entry point for the asepscan CLI application.
package main

import (
	"os"

	"asepscan/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
