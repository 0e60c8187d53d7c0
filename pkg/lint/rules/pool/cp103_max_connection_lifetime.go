package pool

import (
	"strconv"

	"github.com/dbtune-labs/connlint/pkg/lint"
	"github.com/dbtune-labs/connlint/pkg/parser"
)

func init() {
	lint.Register(MaxConnectionLifeTime)
}

// MaxConnectionLifeTime flags pool configurations whose
// maxConnectionLifeTime is below 30 seconds. Drivers recycle
// connections on this interval; anything shorter churns the pool.
var MaxConnectionLifeTime = lint.RuleDef{
	ID:          "CP103",
	Name:        "pool.max_connection_lifetime",
	Group:       "pool",
	Description: "maxConnectionLifeTime must be at least 30 seconds.",
	Severity:    lint.SeverityError,
	Check:       checkMaxConnectionLifeTime,
}

func checkMaxConnectionLifeTime(call *parser.NewExpr, target lint.Target, _ map[string]any) []lint.Diagnostic {
	return checkPoolField(call, target, keyMaxConnectionLifeTime, func(field *parser.RecordField) *lint.Diagnostic {
		value, err := strconv.ParseFloat(literalText(field.Value, "30"), 64)
		if err != nil {
			return nil
		}
		if value >= 30 {
			return nil
		}
		return &lint.Diagnostic{
			RuleID:           "CP103",
			Severity:         lint.SeverityError,
			Message:          "invalid maxConnectionLifeTime value; must be at least 30",
			Pos:              field.Value.GetSpan().Start,
			EndPos:           field.Value.GetSpan().End,
			DocumentationURL: lint.BuildDocURL("CP103"),
		}
	})
}
