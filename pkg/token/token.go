// Package token defines the lexical tokens of the connection declaration
// language and source positions shared across the parser and linter.
package token

// TokenType identifies the type of a lexical token.
type TokenType int

// Token types for the connection declaration language.
const (
	ILLEGAL TokenType = iota
	EOF

	// Identifiers and literals
	IDENT  // db, maxOpenConnections
	NUMBER // 5, 30.5
	STRING // "jdbc:h2:file:./test"

	// Keywords
	CLIENT // client
	NEW    // new
	TRUE   // true
	FALSE  // false
	NULL   // null

	// Operators and delimiters
	ASSIGN    // =
	PLUS      // +
	MINUS     // -
	COLON     // :
	COMMA     // ,
	SEMICOLON // ;
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
)

var tokenNames = map[TokenType]string{
	ILLEGAL:   "ILLEGAL",
	EOF:       "EOF",
	IDENT:     "IDENT",
	NUMBER:    "NUMBER",
	STRING:    "STRING",
	CLIENT:    "client",
	NEW:       "new",
	TRUE:      "true",
	FALSE:     "false",
	NULL:      "null",
	ASSIGN:    "=",
	PLUS:      "+",
	MINUS:     "-",
	COLON:     ":",
	COMMA:     ",",
	SEMICOLON: ";",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",
}

// String returns the name of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token is a lexical token with its literal text and source position.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

var keywords = map[string]TokenType{
	"client": CLIENT,
	"new":    NEW,
	"true":   TRUE,
	"false":  FALSE,
	"null":   NULL,
}

// LookupIdent returns the keyword token type for an identifier,
// or IDENT if the name is not a keyword.
func LookupIdent(name string) TokenType {
	if t, ok := keywords[name]; ok {
		return t
	}
	return IDENT
}
