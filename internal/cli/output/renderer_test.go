package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbtune-labs/connlint/pkg/lint"
	"github.com/dbtune-labs/connlint/pkg/token"
)

func sampleFindings() []FileFindings {
	return []FileFindings{
		{
			Path: "deploy/clients.conn",
			Diagnostics: []lint.Diagnostic{
				{
					RuleID:   "CP101",
					Severity: lint.SeverityError,
					Message:  "invalid maxOpenConnections value; must be at least 1",
					Pos:      token.Position{Line: 3, Column: 52},
				},
				{
					RuleID:   "CP102",
					Severity: lint.SeverityError,
					Message:  "invalid minIdleConnections value; must be at least 0",
					Pos:      token.Position{Line: 4, Column: 52},
				},
			},
		},
	}
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeText)

	count, err := r.RenderFindings(sampleFindings())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	out := buf.String()
	assert.Contains(t, out, "deploy/clients.conn:3:52:")
	assert.Contains(t, out, "CP101")
	assert.Contains(t, out, "deploy/clients.conn:4:52:")
	assert.Contains(t, out, "CP102")
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeJSON)

	count, err := r.RenderFindings(sampleFindings())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "CP101", decoded[0]["rule_id"])
	assert.Equal(t, "error", decoded[0]["severity"])
	assert.Equal(t, float64(3), decoded[0]["line"])
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeTable)

	count, err := r.RenderFindings(sampleFindings())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	out := buf.String()
	assert.Contains(t, out, "SEVERITY")
	assert.Contains(t, out, "CP101")
	assert.Contains(t, out, "3:52")
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, &buf, ModeText)

	count, err := r.RenderFindings(nil)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, buf.String())
}

func TestDefaultMode(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, "")
	assert.Equal(t, ModeText, r.Mode())
}
