// Package main provides the vyast command-line tool.
package main

import (
	"os"

	"github.com/leapstack-labs/vyast/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
