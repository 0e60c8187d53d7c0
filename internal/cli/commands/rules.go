package commands

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dbtune-labs/connlint/pkg/lint"
	_ "github.com/dbtune-labs/connlint/pkg/lint/rules" // register rules
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group  string // Filter by group
	Format string // Output format: text, table, json, yaml
}

// ruleInfo is the serializable shape of a rule for json/yaml output.
type ruleInfo struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Group       string `json:"group" yaml:"group"`
	Severity    string `json:"severity" yaml:"severity"`
	Description string `json:"description" yaml:"description"`
	DocsURL     string `json:"docs_url" yaml:"docs_url"`
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List available lint rules",
		Long:  `List all registered lint rules, or show details for a single rule.`,
		Example: `  # List all rules
  connlint rules

  # Show a specific rule
  connlint rules CP101

  # Output as JSON
  connlint rules --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group")
	cmd.Flags().StringVar(&opts.Format, "format", "", "Output format: table, json, yaml")

	return cmd
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	r := RendererFromContext(cmd.Context())

	rules := lint.GetAll()
	if opts.Group != "" {
		rules = lint.GetByGroup(opts.Group)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })

	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, ruleInfo{
			ID:          rule.ID,
			Name:        rule.Name,
			Group:       rule.Group,
			Severity:    rule.Severity.String(),
			Description: rule.Description,
			DocsURL:     lint.BuildDocURL(rule.ID),
		})
	}

	switch opts.Format {
	case "json":
		return r.RenderJSON(infos)
	case "yaml":
		out, err := yaml.Marshal(infos)
		if err != nil {
			return err
		}
		r.Printf("%s", out)
		return nil
	default:
		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"ID", "NAME", "GROUP", "SEVERITY", "DESCRIPTION"})
		for _, info := range infos {
			t.AppendRow(table.Row{info.ID, info.Name, info.Group, info.Severity, info.Description})
		}
		t.SetStyle(table.StyleLight)
		t.Render()
		return nil
	}
}

func showRule(cmd *cobra.Command, id string, opts *RulesOptions) error {
	r := RendererFromContext(cmd.Context())

	rule, ok := lint.GetByID(id)
	if !ok {
		return fmt.Errorf("unknown rule: %s", id)
	}

	info := ruleInfo{
		ID:          rule.ID,
		Name:        rule.Name,
		Group:       rule.Group,
		Severity:    rule.Severity.String(),
		Description: rule.Description,
		DocsURL:     lint.BuildDocURL(rule.ID),
	}

	switch opts.Format {
	case "json":
		return r.RenderJSON(info)
	case "yaml":
		out, err := yaml.Marshal(info)
		if err != nil {
			return err
		}
		r.Printf("%s", out)
		return nil
	default:
		r.Printf("%s (%s)\n", info.ID, info.Name)
		r.Printf("  group:    %s\n", info.Group)
		r.Printf("  severity: %s\n", info.Severity)
		r.Printf("  docs:     %s\n", info.DocsURL)
		r.Printf("\n  %s\n", info.Description)
		return nil
	}
}
