package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbtune-labs/connlint/pkg/lint"
	"github.com/dbtune-labs/connlint/pkg/parser"
)

// stubRule registers a rule that fires on every analyzed call site.
func stubRule(id string, severity lint.Severity) lint.RuleDef {
	return lint.RuleDef{
		ID:       id,
		Name:     "test." + id,
		Group:    "test",
		Severity: severity,
		Check: func(call *parser.NewExpr, _ lint.Target, _ map[string]any) []lint.Diagnostic {
			return []lint.Diagnostic{{
				RuleID:   id,
				Severity: severity,
				Message:  "stub finding",
				Pos:      call.GetSpan().Start,
			}}
		},
	}
}

func parseDecl(t *testing.T, src string) *parser.File {
	t.Helper()
	file, errs := parser.Parse("test.conn", src)
	require.Empty(t, errs)
	return file
}

func TestAnalyzerGate(t *testing.T) {
	lint.Clear()
	t.Cleanup(lint.Clear)
	lint.Register(stubRule("T001", lint.SeverityWarning))

	file := parseDecl(t, `client db = new jdbc:Client("url");`)
	analyzer := lint.NewAnalyzer(lint.NewConfig(), lint.DefaultTarget())

	t.Run("clean file is analyzed", func(t *testing.T) {
		diags := analyzer.AnalyzeFile(file, nil)
		assert.Len(t, diags, 1)
	})

	t.Run("prior error suppresses analysis", func(t *testing.T) {
		prior := []lint.Diagnostic{{Severity: lint.SeverityError}}
		assert.Empty(t, analyzer.AnalyzeFile(file, prior))
	})

	t.Run("prior non-error does not suppress", func(t *testing.T) {
		prior := []lint.Diagnostic{{Severity: lint.SeverityHint}}
		assert.Len(t, analyzer.AnalyzeFile(file, prior), 1)
	})

	t.Run("non-target constructor is skipped", func(t *testing.T) {
		other := parseDecl(t, `client db = new redis:Client("url");`)
		assert.Empty(t, analyzer.AnalyzeFile(other, nil))
	})
}

func TestAnalyzerTargetPredicateInjection(t *testing.T) {
	lint.Clear()
	t.Cleanup(lint.Clear)
	lint.Register(stubRule("T001", lint.SeverityWarning))

	file := parseDecl(t, `client db = new mydb:Connection("url");`)
	analyzer := lint.NewAnalyzer(lint.NewConfig(), lint.DefaultTarget())

	// Default predicate matches type names, so this call is skipped.
	require.Empty(t, analyzer.AnalyzeFile(file, nil))

	// A semantic-model-backed host can inject its own notion of what
	// constructs the client type.
	analyzer.SetTargetPredicate(func(call *parser.NewExpr) bool {
		return call.Type.Module == "mydb"
	})
	assert.Len(t, analyzer.AnalyzeFile(file, nil), 1)
}

func TestAnalyzerConfig(t *testing.T) {
	lint.Clear()
	t.Cleanup(lint.Clear)
	lint.Register(stubRule("T001", lint.SeverityWarning))
	lint.Register(stubRule("T002", lint.SeverityInfo))

	file := parseDecl(t, `client db = new jdbc:Client("url");`)

	t.Run("disabled rule is skipped", func(t *testing.T) {
		cfg := lint.NewConfig().Disable("T001")
		analyzer := lint.NewAnalyzer(cfg, lint.DefaultTarget())
		diags := analyzer.AnalyzeFile(file, nil)
		require.Len(t, diags, 1)
		assert.Equal(t, "T002", diags[0].RuleID)
	})

	t.Run("severity override is applied", func(t *testing.T) {
		cfg := lint.NewConfig().SetSeverity("T002", lint.SeverityError)
		analyzer := lint.NewAnalyzer(cfg, lint.DefaultTarget())
		for _, d := range analyzer.AnalyzeFile(file, nil) {
			if d.RuleID == "T002" {
				assert.Equal(t, lint.SeverityError, d.Severity)
			}
		}
	})
}

func TestAnalyzerRuleOptions(t *testing.T) {
	lint.Clear()
	t.Cleanup(lint.Clear)

	var seen map[string]any
	lint.Register(lint.RuleDef{
		ID:    "T003",
		Group: "test",
		Check: func(_ *parser.NewExpr, _ lint.Target, opts map[string]any) []lint.Diagnostic {
			seen = opts
			return nil
		},
	})

	cfg := lint.NewConfig().SetRuleOptions("T003", map[string]any{"limit": 3})
	analyzer := lint.NewAnalyzer(cfg, lint.DefaultTarget())
	analyzer.AnalyzeFile(parseDecl(t, `client db = new jdbc:Client("url");`), nil)

	assert.Equal(t, 3, lint.GetIntOption(seen, "limit", 0))
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		name   string
		want   lint.Severity
		wantOK bool
	}{
		{"error", lint.SeverityError, true},
		{"warning", lint.SeverityWarning, true},
		{"info", lint.SeverityInfo, true},
		{"hint", lint.SeverityHint, true},
		{"fatal", lint.SeverityError, false},
	}
	for _, tt := range tests {
		got, ok := lint.ParseSeverity(tt.name)
		assert.Equal(t, tt.wantOK, ok, tt.name)
		if ok {
			assert.Equal(t, tt.want, got, tt.name)
		}
	}
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "error", lint.SeverityError.String())
	assert.Equal(t, "warning", lint.SeverityWarning.String())
	assert.Equal(t, "info", lint.SeverityInfo.String())
	assert.Equal(t, "hint", lint.SeverityHint.String())
}
