package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbtune-labs/connlint/pkg/token"
)

func parseOne(t *testing.T, src string) *ClientDecl {
	t.Helper()
	file, errs := Parse("test.conn", src)
	require.Empty(t, errs)
	require.Len(t, file.Decls, 1)
	return file.Decls[0]
}

func TestParseClientDecl(t *testing.T) {
	decl := parseOne(t, `client db = new jdbc:Client("jdbc:h2:mem:test", "sa", "", {ssl: true}, {maxOpenConnections: 5});`)

	assert.Equal(t, "db", decl.Name)
	assert.Equal(t, "jdbc", decl.Init.Type.Module)
	assert.Equal(t, "Client", decl.Init.Type.Name)
	assert.Equal(t, "jdbc:Client", decl.Init.Type.String())
	require.Len(t, decl.Init.Args, 5)

	for _, arg := range decl.Init.Args {
		assert.False(t, arg.IsNamed())
	}

	url, ok := decl.Init.Args[0].Value.(*BasicLit)
	require.True(t, ok)
	assert.Equal(t, LitString, url.Kind)
	assert.Equal(t, "jdbc:h2:mem:test", url.Value)

	pool, ok := decl.Init.Args[4].Value.(*RecordLit)
	require.True(t, ok)
	require.Len(t, pool.Fields, 1)
	assert.Equal(t, "maxOpenConnections", pool.Fields[0].Key)
}

func TestParseUnqualifiedType(t *testing.T) {
	decl := parseOne(t, `client db = new Client("url");`)
	assert.Equal(t, "", decl.Init.Type.Module)
	assert.Equal(t, "Client", decl.Init.Type.String())
}

func TestParseNamedArguments(t *testing.T) {
	decl := parseOne(t, `client db = new jdbc:Client("url", connectionPool = {minIdleConnections: 0});`)
	require.Len(t, decl.Init.Args, 2)

	assert.False(t, decl.Init.Args[0].IsNamed())
	require.True(t, decl.Init.Args[1].IsNamed())
	assert.Equal(t, "connectionPool", decl.Init.Args[1].Name)

	_, ok := decl.Init.Args[1].Value.(*RecordLit)
	assert.True(t, ok)
}

func TestParseExpressions(t *testing.T) {
	decl := parseOne(t, `client db = new jdbc:Client(-5, +2.5, true, null, ref, {"quoted key": 1, trailing: 2,});`)
	args := decl.Init.Args
	require.Len(t, args, 6)

	neg, ok := args[0].Value.(*UnaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.MINUS, neg.Op)
	assert.Equal(t, "-", neg.OpText())
	inner, ok := neg.Expr.(*BasicLit)
	require.True(t, ok)
	assert.Equal(t, "5", inner.Value)

	pos, ok := args[1].Value.(*UnaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.PLUS, pos.Op)

	b, ok := args[2].Value.(*BasicLit)
	require.True(t, ok)
	assert.Equal(t, LitBool, b.Kind)

	n, ok := args[3].Value.(*BasicLit)
	require.True(t, ok)
	assert.Equal(t, LitNull, n.Kind)

	id, ok := args[4].Value.(*Ident)
	require.True(t, ok)
	assert.Equal(t, "ref", id.Name)

	rec, ok := args[5].Value.(*RecordLit)
	require.True(t, ok)
	require.Len(t, rec.Fields, 2)
	assert.Equal(t, "quoted key", rec.Fields[0].Key)
	assert.Equal(t, "trailing", rec.Fields[1].Key)
}

func TestParseSpans(t *testing.T) {
	src := `client db = new jdbc:Client({max: 42});`
	decl := parseOne(t, src)

	assert.Equal(t, 1, decl.Span.Start.Line)
	assert.Equal(t, 1, decl.Span.Start.Column)
	assert.Equal(t, len(src)+1, decl.Span.End.Column)

	rec := decl.Init.Args[0].Value.(*RecordLit)
	value := rec.Fields[0].Value
	wantCol := len(`client db = new jdbc:Client({max: `) + 1
	assert.Equal(t, wantCol, value.GetSpan().Start.Column)
	assert.Equal(t, wantCol+2, value.GetSpan().End.Column)
}

func TestParseMultipleDecls(t *testing.T) {
	src := `
client primary = new jdbc:Client("url1");
client replica = new jdbc:Client("url2");
`
	file, errs := Parse("test.conn", src)
	require.Empty(t, errs)
	require.Len(t, file.Decls, 2)
	assert.Equal(t, "primary", file.Decls[0].Name)
	assert.Equal(t, "replica", file.Decls[1].Name)
}

func TestParseErrorRecovery(t *testing.T) {
	src := `
client broken = new jdbc:Client(;
client ok = new jdbc:Client("url");
`
	file, errs := Parse("test.conn", src)
	require.NotEmpty(t, errs)
	require.Len(t, file.Decls, 1)
	assert.Equal(t, "ok", file.Decls[0].Name)
	assert.Equal(t, 2, errs[0].Pos.Line)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing semicolon", `client db = new jdbc:Client("url")`},
		{"missing client keyword", `db = new jdbc:Client("url");`},
		{"missing new", `client db = jdbc:Client("url");`},
		{"bad record key", `client db = new jdbc:Client({42: 1});`},
		{"missing value", `client db = new jdbc:Client({max: });`},
		{"empty input is fine", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, errs := Parse("test.conn", tt.src)
			require.NotNil(t, file)
			assert.Empty(t, file.Decls)
			if tt.src != "" {
				assert.NotEmpty(t, errs)
			} else {
				assert.Empty(t, errs)
			}
		})
	}
}
