// Package main provides the connlint CLI entry point.
package main

import (
	"github.com/dbtune-labs/connlint/internal/cli"
)

func main() {
	cli.Execute()
}
