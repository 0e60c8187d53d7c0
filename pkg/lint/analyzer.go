package lint

import (
	"github.com/dbtune-labs/connlint/pkg/parser"
)

// TargetPredicate decides whether a constructor call constructs the
// targeted database client type. The default predicate compares the
// call's qualified type name against the Target's TypeName; hosts with
// richer type information can inject their own.
type TargetPredicate func(call *parser.NewExpr) bool

// Analyzer runs lint rules against client-construction call sites.
// An Analyzer holds no per-call state and is safe for concurrent use.
type Analyzer struct {
	config   *Config
	target   Target
	isTarget TargetPredicate
}

// NewAnalyzer creates an analyzer for the given target signature with
// optional configuration.
func NewAnalyzer(config *Config, target Target) *Analyzer {
	if config == nil {
		config = NewConfig()
	}
	a := &Analyzer{config: config, target: target}
	a.isTarget = func(call *parser.NewExpr) bool {
		return call != nil && call.Type.String() == target.TypeName
	}
	return a
}

// SetTargetPredicate replaces the default type-name predicate.
func (a *Analyzer) SetTargetPredicate(fn TargetPredicate) {
	if fn != nil {
		a.isTarget = fn
	}
}

// Target returns the constructor signature this analyzer resolves
// arguments against.
func (a *Analyzer) Target() Target {
	return a.target
}

// ShouldAnalyze reports whether a call site should be analyzed at all:
// it is false when the containing file already carries an error-severity
// diagnostic from an earlier phase, or when the call does not construct
// the targeted client type. Pure; no diagnostics are emitted here.
func (a *Analyzer) ShouldAnalyze(prior []Diagnostic, call *parser.NewExpr) bool {
	if hasBlockingError(prior) {
		return false
	}
	return a.isTarget(call)
}

// AnalyzeCall runs all enabled rules against one call site. The prior
// diagnostics are those already produced for the containing file by
// earlier phases; any error among them suppresses analysis entirely.
func (a *Analyzer) AnalyzeCall(call *parser.NewExpr, prior []Diagnostic) []Diagnostic {
	if call == nil || !a.ShouldAnalyze(prior, call) {
		return nil
	}

	var diagnostics []Diagnostic
	for _, rule := range GetAll() {
		if a.config.IsDisabled(rule.ID) {
			continue
		}

		opts := a.config.GetRuleOptions(rule.ID)
		diags := rule.Check(call, a.target, opts)

		// Apply severity overrides
		for i := range diags {
			diags[i].Severity = a.config.GetSeverity(rule.ID, diags[i].Severity)
		}

		diagnostics = append(diagnostics, diags...)
	}
	return diagnostics
}

// AnalyzeFile runs analysis on every client declaration in a file.
func (a *Analyzer) AnalyzeFile(file *parser.File, prior []Diagnostic) []Diagnostic {
	if file == nil {
		return nil
	}
	var diagnostics []Diagnostic
	for _, decl := range file.Decls {
		diagnostics = append(diagnostics, a.AnalyzeCall(decl.Init, prior)...)
	}
	return diagnostics
}

// hasBlockingError reports whether any prior diagnostic has error
// severity.
func hasBlockingError(prior []Diagnostic) bool {
	for _, d := range prior {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
