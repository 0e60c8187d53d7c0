// Package pool validates connection-pool configuration fields at
// client-construction call sites. Each recognized field gets its own
// rule so rules can be disabled and re-severitied independently, but
// they share one argument-resolution pipeline: locate the pool
// configuration argument (named binding wins over positional), require
// a record literal, then read each field's statically-resolvable
// literal text.
//
// Values bound to variables or computed expressions are not resolvable
// without flow analysis and are skipped silently.
package pool

import (
	"strings"

	"github.com/dbtune-labs/connlint/pkg/lint"
	"github.com/dbtune-labs/connlint/pkg/parser"
)

// Recognized pool configuration field names.
const (
	keyMaxOpenConnections    = "maxOpenConnections"
	keyMinIdleConnections    = "minIdleConnections"
	keyMaxConnectionLifeTime = "maxConnectionLifeTime"
)

// resolveConfigArgument locates the pool configuration argument of a
// call. A named argument matching the pool parameter is authoritative;
// otherwise the positional slot is used, but only when every declared
// parameter was supplied. Returns nil when the argument is omitted.
func resolveConfigArgument(call *parser.NewExpr, target lint.Target) parser.Expr {
	for _, arg := range call.Args {
		if arg.IsNamed() && arg.Name == target.PoolParam {
			return arg.Value
		}
	}

	if len(call.Args) == target.ParamCount && target.PoolIndex < len(call.Args) {
		arg := call.Args[target.PoolIndex]
		if !arg.IsNamed() {
			return arg.Value
		}
	}
	return nil
}

// extractFields returns the record literal's fields in source order,
// or nil when the configuration is not a record literal (passed as
// null, a variable reference, or anything else not statically
// inspectable).
func extractFields(configExpr parser.Expr) []*parser.RecordField {
	rec, ok := configExpr.(*parser.RecordLit)
	if !ok {
		return nil
	}
	return rec.Fields
}

// literalText returns the token text of a basic literal or a
// sign-prefixed basic literal, with decoration characters stripped.
// Any other expression kind yields the fallback unchanged.
func literalText(valueExpr parser.Expr, fallback string) string {
	switch v := valueExpr.(type) {
	case *parser.BasicLit:
		return stripDecoration(v.Value)
	case *parser.UnaryExpr:
		inner, ok := v.Expr.(*parser.BasicLit)
		if !ok {
			return fallback
		}
		return stripDecoration(v.OpText() + inner.Value)
	default:
		// Values held in variables need flow analysis to resolve.
		return fallback
	}
}

// normalizeKey prepares a field key for comparison against the
// recognized names.
func normalizeKey(key string) string {
	return stripDecoration(strings.TrimSpace(key))
}

// stripDecoration removes whitespace and quoting characters that may
// surround a token's text.
func stripDecoration(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '"', '\'', '`':
			return -1
		}
		return r
	}, s)
}

// checkPoolField runs validate against every occurrence of the given
// key in the call's pool configuration literal. Duplicate occurrences
// are each validated independently; at runtime the last one wins, but
// an invalid earlier occurrence is still worth reporting.
func checkPoolField(call *parser.NewExpr, target lint.Target, key string, validate func(field *parser.RecordField) *lint.Diagnostic) []lint.Diagnostic {
	configExpr := resolveConfigArgument(call, target)
	if configExpr == nil {
		return nil
	}

	var diagnostics []lint.Diagnostic
	for _, field := range extractFields(configExpr) {
		if normalizeKey(field.Key) != key {
			continue
		}
		if d := validate(field); d != nil {
			diagnostics = append(diagnostics, *d)
		}
	}
	return diagnostics
}
