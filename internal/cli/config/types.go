// Package config provides configuration management for the connlint CLI.
//
// Configuration is merged from three layers in increasing precedence:
// built-in defaults, a connlint.yaml file, CONNLINT_* environment
// variables and command-line flags.
package config

// TargetConfig describes the client constructor signature the linter
// resolves arguments against.
type TargetConfig struct {
	Type       string `koanf:"type"`        // qualified constructor type name
	PoolParam  string `koanf:"pool_param"`  // pool configuration parameter name
	ParamCount int    `koanf:"param_count"` // total declared parameters
	PoolIndex  int    `koanf:"pool_index"`  // positional index of the pool parameter
}

// LintConfig holds rule enablement and per-rule settings.
type LintConfig struct {
	Disabled []string                  `koanf:"disabled"` // rule IDs to skip
	Severity map[string]string         `koanf:"severity"` // rule ID -> severity name
	Rules    map[string]map[string]any `koanf:"rules"`    // rule ID -> rule-specific options
}

// Config holds all CLI configuration options.
type Config struct {
	Paths        []string      `koanf:"paths"`  // files or directories to lint
	OutputFormat string        `koanf:"output"` // text, table or json
	Verbose      bool          `koanf:"verbose"`
	FailOn       string        `koanf:"fail_on"` // minimum severity that fails the run
	DocsBaseURL  string        `koanf:"docs_base_url"`
	Target       *TargetConfig `koanf:"target"`
	Lint         *LintConfig   `koanf:"lint"`
}

// DefaultConfig returns the built-in defaults: lint the current
// directory against the jdbc:Client constructor signature.
func DefaultConfig() *Config {
	return &Config{
		Paths:        []string{"."},
		OutputFormat: "text",
		FailOn:       "warning",
		Target: &TargetConfig{
			Type:       "jdbc:Client",
			PoolParam:  "connectionPool",
			ParamCount: 5,
			PoolIndex:  4,
		},
	}
}
