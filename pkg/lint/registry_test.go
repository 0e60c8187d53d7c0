package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbtune-labs/connlint/pkg/lint"
)

func TestRegistry(t *testing.T) {
	lint.Clear()
	t.Cleanup(lint.Clear)

	lint.Register(lint.RuleDef{ID: "R001", Group: "pool"})
	lint.Register(lint.RuleDef{ID: "R002", Group: "pool"})
	lint.Register(lint.RuleDef{ID: "R003", Group: "naming"})

	assert.Equal(t, 3, lint.Count())
	assert.Len(t, lint.GetAll(), 3)
	assert.Len(t, lint.GetByGroup("pool"), 2)
	assert.Empty(t, lint.GetByGroup("unknown"))

	rule, ok := lint.GetByID("R003")
	require.True(t, ok)
	assert.Equal(t, "naming", rule.Group)

	_, ok = lint.GetByID("R999")
	assert.False(t, ok)

	// Re-registering the same ID replaces the entry.
	lint.Register(lint.RuleDef{ID: "R001", Group: "naming"})
	assert.Equal(t, 3, lint.Count())
	rule, _ = lint.GetByID("R001")
	assert.Equal(t, "naming", rule.Group)
}

func TestBuildDocURL(t *testing.T) {
	t.Cleanup(lint.ResetDocsBaseURL)

	assert.Equal(t, lint.DefaultDocsBaseURL+"/cp101", lint.BuildDocURL("CP101"))

	lint.SetDocsBaseURL("http://localhost:8080/rules/")
	assert.Equal(t, "http://localhost:8080/rules/cp101", lint.BuildDocURL("CP101"))
}
