// Package lint provides data-driven linting of client-construction call
// sites in connection declaration files. Rules register themselves with a
// global registry at init() time; the Analyzer gates each call site on
// pre-existing errors and the target-constructor predicate, then runs all
// enabled rules against it.
//
// Rule implementations live in subpackages of pkg/lint/rules and are
// activated by blank-importing them.
package lint

import (
	"github.com/dbtune-labs/connlint/pkg/parser"
	"github.com/dbtune-labs/connlint/pkg/token"
)

// Severity indicates the importance of a diagnostic.
type Severity int

// Severity levels for diagnostics.
const (
	// SeverityError indicates a critical issue that should be fixed.
	SeverityError Severity = iota
	// SeverityWarning indicates a potential issue that should be reviewed.
	SeverityWarning
	// SeverityInfo indicates informational feedback.
	SeverityInfo
	// SeverityHint indicates a suggestion for improvement.
	SeverityHint
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// ParseSeverity parses a severity name. The second return value is
// false if the name is not a known severity.
func ParseSeverity(name string) (Severity, bool) {
	switch name {
	case "error":
		return SeverityError, true
	case "warning":
		return SeverityWarning, true
	case "info":
		return SeverityInfo, true
	case "hint":
		return SeverityHint, true
	default:
		return SeverityError, false
	}
}

// Target describes the constructor signature rules resolve arguments
// against: which type is a database client constructor, the name of its
// pool-configuration parameter, how many parameters it declares and at
// which positional index the pool parameter sits.
type Target struct {
	TypeName   string // qualified constructor type, e.g. "jdbc:Client"
	PoolParam  string // pool configuration parameter name
	ParamCount int    // total declared parameters
	PoolIndex  int    // positional index of the pool parameter
}

// DefaultTarget returns the jdbc:Client constructor signature:
// (url, user, password, options, connectionPool).
func DefaultTarget() Target {
	return Target{
		TypeName:   "jdbc:Client",
		PoolParam:  "connectionPool",
		ParamCount: 5,
		PoolIndex:  4,
	}
}

// RuleDef is a data-driven rule definition.
// Rules are stateless - all context comes via the Check function
// parameters, so the same rule may run concurrently across files.
type RuleDef struct {
	ID          string    // Unique identifier, e.g., "CP101"
	Name        string    // Human-readable name, e.g., "pool.max_open_connections"
	Group       string    // Category, e.g., "pool"
	Description string    // Human-readable description
	Severity    Severity  // Default severity
	Check       CheckFunc // The check function
	ConfigKeys  []string  // Configuration keys this rule accepts
}

// CheckFunc analyzes one constructor call site and returns diagnostics.
// The opts parameter contains rule-specific options from configuration.
type CheckFunc func(call *parser.NewExpr, target Target, opts map[string]any) []Diagnostic

// Diagnostic represents a lint finding.
type Diagnostic struct {
	RuleID   string
	Severity Severity
	Message  string
	Pos      token.Position
	EndPos   token.Position // Optional: end of the problematic range

	// DocumentationURL points at the rule documentation,
	// e.g. "https://connlint.dev/docs/rules/cp101".
	DocumentationURL string
}
