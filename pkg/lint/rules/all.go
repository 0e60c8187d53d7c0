// Package rules triggers registration of all lint rule packages.
package rules

// Import all rule subpackages to register them with the global registry.
// This file triggers all init() functions in the rule packages.
import (
	_ "github.com/dbtune-labs/connlint/pkg/lint/rules/pool"
)
