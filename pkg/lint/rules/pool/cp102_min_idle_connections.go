package pool

import (
	"strconv"

	"github.com/dbtune-labs/connlint/pkg/lint"
	"github.com/dbtune-labs/connlint/pkg/parser"
)

func init() {
	lint.Register(MinIdleConnections)
}

// MinIdleConnections flags pool configurations whose minIdleConnections
// is negative.
var MinIdleConnections = lint.RuleDef{
	ID:          "CP102",
	Name:        "pool.min_idle_connections",
	Group:       "pool",
	Description: "minIdleConnections must be at least 0.",
	Severity:    lint.SeverityError,
	Check:       checkMinIdleConnections,
}

func checkMinIdleConnections(call *parser.NewExpr, target lint.Target, _ map[string]any) []lint.Diagnostic {
	return checkPoolField(call, target, keyMinIdleConnections, func(field *parser.RecordField) *lint.Diagnostic {
		value, err := strconv.Atoi(literalText(field.Value, "0"))
		if err != nil {
			return nil
		}
		if value >= 0 {
			return nil
		}
		return &lint.Diagnostic{
			RuleID:           "CP102",
			Severity:         lint.SeverityError,
			Message:          "invalid minIdleConnections value; must be at least 0",
			Pos:              field.Value.GetSpan().Start,
			EndPos:           field.Value.GetSpan().End,
			DocumentationURL: lint.BuildDocURL("CP102"),
		}
	})
}
