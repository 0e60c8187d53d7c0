package pool

import (
	"strconv"

	"github.com/dbtune-labs/connlint/pkg/lint"
	"github.com/dbtune-labs/connlint/pkg/parser"
)

func init() {
	lint.Register(MaxOpenConnections)
}

// MaxOpenConnections flags pool configurations whose maxOpenConnections
// is below 1. A pool that can never open a connection deadlocks the
// first query.
var MaxOpenConnections = lint.RuleDef{
	ID:          "CP101",
	Name:        "pool.max_open_connections",
	Group:       "pool",
	Description: "maxOpenConnections must be at least 1.",
	Severity:    lint.SeverityError,
	Check:       checkMaxOpenConnections,
}

func checkMaxOpenConnections(call *parser.NewExpr, target lint.Target, _ map[string]any) []lint.Diagnostic {
	return checkPoolField(call, target, keyMaxOpenConnections, func(field *parser.RecordField) *lint.Diagnostic {
		value, err := strconv.Atoi(literalText(field.Value, "1"))
		if err != nil {
			// Unexpected literal shape; skip rather than abort the pass.
			return nil
		}
		if value >= 1 {
			return nil
		}
		return &lint.Diagnostic{
			RuleID:           "CP101",
			Severity:         lint.SeverityError,
			Message:          "invalid maxOpenConnections value; must be at least 1",
			Pos:              field.Value.GetSpan().Start,
			EndPos:           field.Value.GetSpan().End,
			DocumentationURL: lint.BuildDocURL("CP101"),
		}
	})
}
