package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupIdent(t *testing.T) {
	assert.Equal(t, CLIENT, LookupIdent("client"))
	assert.Equal(t, NEW, LookupIdent("new"))
	assert.Equal(t, TRUE, LookupIdent("true"))
	assert.Equal(t, NULL, LookupIdent("null"))
	assert.Equal(t, IDENT, LookupIdent("maxOpenConnections"))
	// Keywords are case-sensitive.
	assert.Equal(t, IDENT, LookupIdent("Client"))
}

func TestTokenTypeString(t *testing.T) {
	assert.Equal(t, "client", CLIENT.String())
	assert.Equal(t, "IDENT", IDENT.String())
	assert.Equal(t, ";", SEMICOLON.String())
	assert.Equal(t, "UNKNOWN", TokenType(-1).String())
}

func TestPosition(t *testing.T) {
	assert.False(t, Position{}.IsValid())
	assert.True(t, Position{Line: 1, Column: 1}.IsValid())
}

func TestSpan(t *testing.T) {
	s := Span{
		Start: Position{Line: 1, Column: 5, Offset: 4},
		End:   Position{Line: 1, Column: 10, Offset: 9},
	}
	assert.True(t, s.IsValid())
	assert.True(t, s.Contains(4))
	assert.True(t, s.Contains(8))
	assert.False(t, s.Contains(9))
	assert.False(t, s.Contains(3))
	assert.False(t, Span{}.IsValid())
}
