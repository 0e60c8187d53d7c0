package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dbtune-labs/connlint/internal/cli/config"
	"github.com/dbtune-labs/connlint/internal/cli/output"
	"github.com/dbtune-labs/connlint/pkg/lint"
	_ "github.com/dbtune-labs/connlint/pkg/lint/rules" // register rules
	"github.com/dbtune-labs/connlint/pkg/parser"
)

// declFileExt is the extension of connection declaration files.
const declFileExt = ".conn"

// syntaxRuleID marks diagnostics produced by the parser rather than a
// lint rule.
const syntaxRuleID = "syntax"

// LintOptions holds options for the lint command.
type LintOptions struct {
	Paths    []string // Files or directories to lint
	Format   string   // Output format: text, table, json
	Disable  []string // Rule IDs to disable
	Severity string   // Minimum severity to report
	Rules    []string // Run only specific rules
	Watch    bool     // Re-lint on file changes
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [path...]",
		Short: "Lint connection declaration files",
		Long: `Analyze connection declaration files for invalid pool configuration.

Each client-construction call site is checked against the configured
constructor signature. Files that fail to parse are reported and
excluded from rule analysis.`,
		Example: `  # Lint the current directory
  connlint lint

  # Lint specific paths
  connlint lint ./deploy ./conf/clients.conn

  # Output as JSON
  connlint lint --format json

  # Disable a rule
  connlint lint --disable CP103

  # Re-lint whenever files change
  connlint lint --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Paths = args
			}
			return runLint(cmd, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringVar(&opts.Severity, "severity", "warning", "Minimum severity: error, warning, info, hint")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run only specific rules")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-lint when files change")

	return cmd
}

func runLint(cmd *cobra.Command, opts *LintOptions) error {
	cfg := ConfigFromContext(cmd.Context())
	r := RendererFromContext(cmd.Context())

	paths := opts.Paths
	if len(paths) == 0 {
		paths = cfg.Paths
	}

	analyzer := lint.NewAnalyzer(buildLintConfig(cfg, opts), cfg.BuildTarget())

	if opts.Watch {
		return watchAndLint(cmd, paths, analyzer, r, opts, cfg.Verbose)
	}

	result, err := lintOnce(paths, analyzer, r, opts)
	if err != nil {
		return err
	}
	if result.failing(cfg.FailOn) > 0 {
		return fmt.Errorf("lint issues found")
	}
	return nil
}

// lintResult summarizes one lint pass.
type lintResult struct {
	rendered   int
	bySeverity map[lint.Severity]int
}

// failing returns how many rendered diagnostics sit at or above the
// given severity threshold. An unknown threshold counts everything.
func (res lintResult) failing(threshold string) int {
	t, ok := lint.ParseSeverity(threshold)
	if !ok {
		return res.rendered
	}
	n := 0
	for sev, count := range res.bySeverity {
		if sev <= t {
			n += count
		}
	}
	return n
}

// lintOnce lints all declaration files under the given paths and
// renders the findings.
func lintOnce(paths []string, analyzer *lint.Analyzer, r *output.Renderer, opts *LintOptions) (lintResult, error) {
	res := lintResult{bySeverity: make(map[lint.Severity]int)}

	files, err := collectDeclFiles(paths)
	if err != nil {
		return res, err
	}

	var findings []output.FileFindings
	for _, path := range files {
		diags, err := lintFile(path, analyzer)
		if err != nil {
			return res, err
		}
		diags = filterBySeverity(diags, opts.Severity)
		if len(diags) == 0 {
			continue
		}
		for _, d := range diags {
			res.bySeverity[d.Severity]++
		}
		findings = append(findings, output.FileFindings{Path: path, Diagnostics: diags})
	}

	res.rendered, err = r.RenderFindings(findings)
	return res, err
}

// lintFile parses one file and analyzes its declarations. Parse errors
// become error-severity diagnostics; their presence suppresses rule
// analysis for the whole file, matching compiler behavior of not piling
// secondary diagnostics onto already-broken code.
func lintFile(path string, analyzer *lint.Analyzer) ([]lint.Diagnostic, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	file, parseErrs := parser.Parse(path, string(src))

	prior := make([]lint.Diagnostic, 0, len(parseErrs))
	for _, pe := range parseErrs {
		prior = append(prior, lint.Diagnostic{
			RuleID:   syntaxRuleID,
			Severity: lint.SeverityError,
			Message:  pe.Message,
			Pos:      pe.Pos,
		})
	}

	diags := append(prior, analyzer.AnalyzeFile(file, prior)...)
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Pos.Line != diags[j].Pos.Line {
			return diags[i].Pos.Line < diags[j].Pos.Line
		}
		if diags[i].Pos.Column != diags[j].Pos.Column {
			return diags[i].Pos.Column < diags[j].Pos.Column
		}
		return diags[i].RuleID < diags[j].RuleID
	})
	return diags, nil
}

// collectDeclFiles expands paths into the sorted list of declaration
// files they contain.
func collectDeclFiles(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("cannot lint %s: %w", path, err)
		}

		if !info.IsDir() {
			if !seen[path] {
				seen[path] = true
				files = append(files, path)
			}
			continue
		}

		err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(d.Name(), declFileExt) {
				return nil
			}
			if !seen[p] {
				seen[p] = true
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

func buildLintConfig(cfg *config.Config, opts *LintOptions) *lint.Config {
	// Project config first (lower precedence)
	lintCfg := cfg.BuildLintConfig()

	// CLI overrides
	for _, id := range opts.Disable {
		lintCfg.Disable(strings.TrimSpace(id))
	}

	// If --rule specified, disable all others
	if len(opts.Rules) > 0 {
		enabled := make(map[string]bool)
		for _, id := range opts.Rules {
			enabled[strings.TrimSpace(id)] = true
		}
		for _, rule := range lint.GetAll() {
			if !enabled[rule.ID] {
				lintCfg.Disable(rule.ID)
			}
		}
	}

	return lintCfg
}

// filterBySeverity drops diagnostics below the minimum severity.
// Severity values order from error (most severe) upward.
func filterBySeverity(diags []lint.Diagnostic, minSeverity string) []lint.Diagnostic {
	threshold, ok := lint.ParseSeverity(minSeverity)
	if !ok {
		return diags
	}

	filtered := diags[:0]
	for _, d := range diags {
		if d.Severity <= threshold {
			filtered = append(filtered, d)
		}
	}
	return filtered
}
