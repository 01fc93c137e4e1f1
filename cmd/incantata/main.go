// Package main is the entry point of the incantata CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/incantata/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
