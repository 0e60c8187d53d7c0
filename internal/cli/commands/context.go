package commands

import (
	"context"
	"os"

	"github.com/dbtune-labs/connlint/internal/cli/config"
	"github.com/dbtune-labs/connlint/internal/cli/output"
)

// configKey is used to store config in context.
type configKey struct{}

// rendererKey is used to store renderer in context.
type rendererKey struct{}

// WithConfig stores the loaded configuration in the context.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// WithRenderer stores the output renderer in the context.
func WithRenderer(ctx context.Context, r *output.Renderer) context.Context {
	return context.WithValue(ctx, rendererKey{}, r)
}

// ConfigFromContext returns the configuration stored by the root
// command, or the defaults when none is present (e.g. in tests).
func ConfigFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok && cfg != nil {
		return cfg
	}
	return config.DefaultConfig()
}

// RendererFromContext returns the renderer stored by the root command,
// or a plain text renderer when none is present.
func RendererFromContext(ctx context.Context) *output.Renderer {
	if r, ok := ctx.Value(rendererKey{}).(*output.Renderer); ok && r != nil {
		return r
	}
	return output.NewRenderer(os.Stdout, os.Stderr, output.ModeText)
}
