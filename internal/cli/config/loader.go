package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// configFileUsed tracks which config file was loaded, for verbose output.
var configFileUsed string

// GetConfigFileUsed returns the path of the config file that was
// loaded, or empty if none was found.
func GetConfigFileUsed() string {
	return configFileUsed
}

// findConfigFile finds the config file to use.
// Priority: explicit path > connlint.yaml > connlint.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"connlint.yaml", "connlint.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load merges configuration from defaults, an optional YAML file,
// CONNLINT_* environment variables and CLI flags (highest precedence).
func Load(explicitFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")
	configFileUsed = ""

	// Layer 1: defaults
	defaults := DefaultConfig()
	if err := k.Load(confmap.Provider(map[string]any{
		"paths":              defaults.Paths,
		"output":             defaults.OutputFormat,
		"fail_on":            defaults.FailOn,
		"target.type":        defaults.Target.Type,
		"target.pool_param":  defaults.Target.PoolParam,
		"target.param_count": defaults.Target.ParamCount,
		"target.pool_index":  defaults.Target.PoolIndex,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file
	if path := findConfigFile(explicitFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		configFileUsed = path
	} else if explicitFile != "" {
		return nil, fmt.Errorf("config file not found: %s", explicitFile)
	}

	// Layer 3: environment variables, CONNLINT_OUTPUT=json etc.
	// Double underscore separates nested keys: CONNLINT_TARGET__TYPE.
	if err := k.Load(env.Provider("CONNLINT_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "CONNLINT_")
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	// Layer 4: CLI flags (only flags the user actually set)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			return flagKey(f.Name), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Target == nil {
		cfg.Target = defaults.Target
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// flagKey maps a flag name to its config key.
func flagKey(name string) string {
	switch name {
	case "format":
		return "output"
	case "fail-on":
		return "fail_on"
	case "target-type":
		return "target.type"
	case "docs-base-url":
		return "docs_base_url"
	default:
		return name
	}
}
