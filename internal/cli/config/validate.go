package config

import (
	"fmt"

	"github.com/dbtune-labs/connlint/pkg/lint"
)

var validOutputFormats = map[string]bool{
	"text":  true,
	"table": true,
	"json":  true,
}

// Validate checks the configuration for values the CLI cannot act on.
func (c *Config) Validate() error {
	if !validOutputFormats[c.OutputFormat] {
		return fmt.Errorf("invalid output format %q (expected text, table or json)", c.OutputFormat)
	}

	if c.FailOn != "" {
		if _, ok := lint.ParseSeverity(c.FailOn); !ok {
			return fmt.Errorf("invalid fail_on severity %q (expected error, warning, info or hint)", c.FailOn)
		}
	}

	if c.Target != nil {
		if c.Target.Type == "" {
			return fmt.Errorf("target.type must not be empty")
		}
		if c.Target.PoolParam == "" {
			return fmt.Errorf("target.pool_param must not be empty")
		}
		if c.Target.ParamCount <= 0 {
			return fmt.Errorf("target.param_count must be positive, got %d", c.Target.ParamCount)
		}
		if c.Target.PoolIndex < 0 || c.Target.PoolIndex >= c.Target.ParamCount {
			return fmt.Errorf("target.pool_index %d out of range for %d parameters",
				c.Target.PoolIndex, c.Target.ParamCount)
		}
	}

	if c.Lint != nil {
		for id, name := range c.Lint.Severity {
			if _, ok := lint.ParseSeverity(name); !ok {
				return fmt.Errorf("invalid severity %q for rule %s", name, id)
			}
		}
	}

	return nil
}

// BuildLintConfig converts the YAML lint section into a lint.Config.
func (c *Config) BuildLintConfig() *lint.Config {
	lintCfg := lint.NewConfig()
	if c == nil || c.Lint == nil {
		return lintCfg
	}

	for _, id := range c.Lint.Disabled {
		lintCfg.Disable(id)
	}
	for id, name := range c.Lint.Severity {
		if sev, ok := lint.ParseSeverity(name); ok {
			lintCfg.SetSeverity(id, sev)
		}
	}
	for id, opts := range c.Lint.Rules {
		lintCfg.SetRuleOptions(id, opts)
	}
	return lintCfg
}

// BuildTarget converts the target section into a lint.Target.
func (c *Config) BuildTarget() lint.Target {
	if c == nil || c.Target == nil {
		return lint.DefaultTarget()
	}
	return lint.Target{
		TypeName:   c.Target.Type,
		PoolParam:  c.Target.PoolParam,
		ParamCount: c.Target.ParamCount,
		PoolIndex:  c.Target.PoolIndex,
	}
}
