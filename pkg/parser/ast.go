package parser

import "github.com/dbtune-labs/connlint/pkg/token"

// Expr represents an expression in a connection declaration.
// The set of expression kinds is closed: BasicLit, UnaryExpr,
// RecordLit and Ident. Code that inspects expressions switches
// over these types and treats anything else as unresolvable.
type Expr interface {
	exprNode()
	GetSpan() token.Span
}

// NodeInfo provides common position tracking for AST nodes.
// Embed this in node types that need span information.
type NodeInfo struct {
	Span token.Span
}

// GetSpan returns the node's source span.
func (n *NodeInfo) GetSpan() token.Span {
	return n.Span
}

// File represents a parsed connection declaration file.
type File struct {
	Path  string
	Decls []*ClientDecl
}

// ClientDecl represents a client declaration statement:
//
//	client db = new jdbc:Client(...);
type ClientDecl struct {
	NodeInfo
	Name string
	Init *NewExpr
}

// TypeName is a possibly module-qualified constructor type name,
// e.g. "jdbc:Client" or "Client".
type TypeName struct {
	Module string // empty when unqualified
	Name   string
}

// String returns the qualified name as written in source.
func (t TypeName) String() string {
	if t.Module == "" {
		return t.Name
	}
	return t.Module + ":" + t.Name
}

// NewExpr represents a constructor call: new Type(arg, name = arg, ...).
type NewExpr struct {
	NodeInfo
	Type TypeName
	Args []*Arg
}

// Arg is a single call argument, positional or named.
type Arg struct {
	NodeInfo
	Name  string // empty for positional arguments
	Value Expr
}

// IsNamed returns true if the argument was passed by name.
func (a *Arg) IsNamed() bool {
	return a.Name != ""
}

// LitKind identifies the kind of a basic literal.
type LitKind int

// Basic literal kinds.
const (
	LitNumber LitKind = iota
	LitString
	LitBool
	LitNull
)

// BasicLit represents a literal value token.
type BasicLit struct {
	NodeInfo
	Kind  LitKind
	Value string // raw token text, without string quotes
}

func (*BasicLit) exprNode() {}

// UnaryExpr represents a sign-prefixed expression such as -5.
type UnaryExpr struct {
	NodeInfo
	Op   token.TokenType // token.PLUS or token.MINUS
	Expr Expr
}

func (*UnaryExpr) exprNode() {}

// OpText returns the operator symbol as written in source.
func (u *UnaryExpr) OpText() string {
	if u.Op == token.MINUS {
		return "-"
	}
	return "+"
}

// RecordLit represents a record literal: {key: value, ...}.
type RecordLit struct {
	NodeInfo
	Fields []*RecordField
}

func (*RecordLit) exprNode() {}

// RecordField is one key/value pair inside a record literal.
// Keys may be identifiers or string literals; duplicates are
// permitted by the grammar.
type RecordField struct {
	NodeInfo
	Key   string
	Value Expr
}

// Ident represents a reference to a name, e.g. a variable.
type Ident struct {
	NodeInfo
	Name string
}

func (*Ident) exprNode() {}
