// Package parser implements the lexer and recursive-descent parser for
// connection declaration files.
//
// A declaration file contains client declarations of the form:
//
//	client db = new jdbc:Client("jdbc:h2:file:./test", "sa", "",
//	    {ssl: true}, {maxOpenConnections: 5});
//
// The parser recovers at statement boundaries: a malformed declaration
// is reported as a ParseError and parsing resumes after the next
// semicolon, so a file can yield both errors and parsed declarations.
package parser

import (
	"fmt"

	"github.com/dbtune-labs/connlint/pkg/token"
)

// Parser parses connection declaration files.
type Parser struct {
	lex *Lexer

	cur  token.Token
	peek token.Token

	errs []*ParseError
}

// NewParser creates a parser for the given input.
func NewParser(input string) *Parser {
	p := &Parser{lex: NewLexer(input)}
	// Prime cur and peek.
	p.next()
	p.next()
	return p
}

// Parse parses a whole file. It returns the parsed declarations along
// with any errors encountered; both may be non-empty at once.
func Parse(path, input string) (*File, []*ParseError) {
	p := NewParser(input)
	file := p.ParseFile(path)
	return file, p.Errors()
}

// Errors returns the parse errors collected so far, including
// lexical errors promoted from the lexer.
func (p *Parser) Errors() []*ParseError {
	errs := make([]*ParseError, 0, len(p.errs)+len(p.lex.Errors()))
	for _, le := range p.lex.Errors() {
		errs = append(errs, &ParseError{Pos: le.Pos, Message: le.Message})
	}
	errs = append(errs, p.errs...)
	return errs
}

// ParseFile parses all declarations in the input.
func (p *Parser) ParseFile(path string) *File {
	file := &File{Path: path}
	for p.cur.Type != token.EOF {
		decl := p.parseClientDecl()
		if decl != nil {
			file.Decls = append(file.Decls, decl)
		} else {
			p.sync()
		}
	}
	return file
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.lex.NextToken()
}

// sync skips tokens until after the next semicolon so parsing can
// resume at the following declaration.
func (p *Parser) sync() {
	for p.cur.Type != token.SEMICOLON && p.cur.Type != token.EOF {
		p.next()
	}
	if p.cur.Type == token.SEMICOLON {
		p.next()
	}
}

func (p *Parser) errorf(pos token.Position, format string, args ...any) {
	p.errs = append(p.errs, &ParseError{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// expect consumes the current token if it has the given type and
// reports an error otherwise.
func (p *Parser) expect(t token.TokenType) (token.Token, bool) {
	if p.cur.Type != t {
		p.errorf(p.cur.Pos, errUnexpectedToken, p.cur.Type, t)
		return p.cur, false
	}
	tok := p.cur
	p.next()
	return tok, true
}

// endOf returns the position just past a token's literal text.
func endOf(tok token.Token) token.Position {
	width := len(tok.Literal)
	if tok.Type == token.STRING {
		width += 2 // surrounding quotes
	}
	return token.Position{
		Line:   tok.Pos.Line,
		Column: tok.Pos.Column + width,
		Offset: tok.Pos.Offset + width,
	}
}

// spanOf returns the span covering a single token.
func spanOf(tok token.Token) token.Span {
	return token.Span{Start: tok.Pos, End: endOf(tok)}
}

// parseClientDecl parses: client IDENT = new TypeName ( args ) ;
func (p *Parser) parseClientDecl() *ClientDecl {
	start, ok := p.expect(token.CLIENT)
	if !ok {
		return nil
	}

	name, ok := p.expect(token.IDENT)
	if !ok {
		return nil
	}
	if _, ok := p.expect(token.ASSIGN); !ok {
		return nil
	}

	init := p.parseNewExpr()
	if init == nil {
		return nil
	}

	end, ok := p.expect(token.SEMICOLON)
	if !ok {
		return nil
	}

	return &ClientDecl{
		NodeInfo: NodeInfo{Span: token.Span{Start: start.Pos, End: endOf(end)}},
		Name:     name.Literal,
		Init:     init,
	}
}

// parseNewExpr parses: new TypeName ( arg, ... )
func (p *Parser) parseNewExpr() *NewExpr {
	start, ok := p.expect(token.NEW)
	if !ok {
		return nil
	}

	typeName, ok := p.parseTypeName()
	if !ok {
		return nil
	}
	if _, ok := p.expect(token.LPAREN); !ok {
		return nil
	}

	var args []*Arg
	for p.cur.Type != token.RPAREN && p.cur.Type != token.EOF {
		arg := p.parseArg()
		if arg == nil {
			return nil
		}
		args = append(args, arg)

		if p.cur.Type != token.COMMA {
			break
		}
		p.next()
	}

	end, ok := p.expect(token.RPAREN)
	if !ok {
		return nil
	}

	return &NewExpr{
		NodeInfo: NodeInfo{Span: token.Span{Start: start.Pos, End: endOf(end)}},
		Type:     typeName,
		Args:     args,
	}
}

// parseTypeName parses IDENT or IDENT:IDENT.
func (p *Parser) parseTypeName() (TypeName, bool) {
	first, ok := p.expect(token.IDENT)
	if !ok {
		return TypeName{}, false
	}
	if p.cur.Type != token.COLON {
		return TypeName{Name: first.Literal}, true
	}
	p.next()
	second, ok := p.expect(token.IDENT)
	if !ok {
		return TypeName{}, false
	}
	return TypeName{Module: first.Literal, Name: second.Literal}, true
}

// parseArg parses a positional expression or a named argument
// of the form IDENT = expr.
func (p *Parser) parseArg() *Arg {
	if p.cur.Type == token.IDENT && p.peek.Type == token.ASSIGN {
		name := p.cur
		p.next() // name
		p.next() // =
		value := p.parseExpr()
		if value == nil {
			return nil
		}
		return &Arg{
			NodeInfo: NodeInfo{Span: token.Span{Start: name.Pos, End: value.GetSpan().End}},
			Name:     name.Literal,
			Value:    value,
		}
	}

	value := p.parseExpr()
	if value == nil {
		return nil
	}
	return &Arg{
		NodeInfo: NodeInfo{Span: value.GetSpan()},
		Value:    value,
	}
}

// parseExpr parses one expression: a basic literal, a sign-prefixed
// expression, a record literal or an identifier reference.
func (p *Parser) parseExpr() Expr {
	switch p.cur.Type {
	case token.PLUS, token.MINUS:
		op := p.cur
		p.next()
		inner := p.parseExpr()
		if inner == nil {
			return nil
		}
		return &UnaryExpr{
			NodeInfo: NodeInfo{Span: token.Span{Start: op.Pos, End: inner.GetSpan().End}},
			Op:       op.Type,
			Expr:     inner,
		}

	case token.NUMBER:
		lit := &BasicLit{NodeInfo: NodeInfo{Span: spanOf(p.cur)}, Kind: LitNumber, Value: p.cur.Literal}
		p.next()
		return lit

	case token.STRING:
		lit := &BasicLit{NodeInfo: NodeInfo{Span: spanOf(p.cur)}, Kind: LitString, Value: p.cur.Literal}
		p.next()
		return lit

	case token.TRUE, token.FALSE:
		lit := &BasicLit{NodeInfo: NodeInfo{Span: spanOf(p.cur)}, Kind: LitBool, Value: p.cur.Literal}
		p.next()
		return lit

	case token.NULL:
		lit := &BasicLit{NodeInfo: NodeInfo{Span: spanOf(p.cur)}, Kind: LitNull, Value: p.cur.Literal}
		p.next()
		return lit

	case token.LBRACE:
		return p.parseRecordLit()

	case token.IDENT:
		id := &Ident{NodeInfo: NodeInfo{Span: spanOf(p.cur)}, Name: p.cur.Literal}
		p.next()
		return id

	default:
		p.errorf(p.cur.Pos, errExpectedExpr, p.cur.Type)
		return nil
	}
}

// parseRecordLit parses: { key: expr, ... } with optional trailing comma.
// Keys may be identifiers or string literals; duplicate keys are allowed.
func (p *Parser) parseRecordLit() Expr {
	start, ok := p.expect(token.LBRACE)
	if !ok {
		return nil
	}

	rec := &RecordLit{}
	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		field := p.parseRecordField()
		if field == nil {
			return nil
		}
		rec.Fields = append(rec.Fields, field)

		if p.cur.Type != token.COMMA {
			break
		}
		p.next()
	}

	end, ok := p.expect(token.RBRACE)
	if !ok {
		return nil
	}
	rec.Span = token.Span{Start: start.Pos, End: endOf(end)}
	return rec
}

func (p *Parser) parseRecordField() *RecordField {
	if p.cur.Type != token.IDENT && p.cur.Type != token.STRING {
		p.errorf(p.cur.Pos, errUnexpectedToken, p.cur.Type, "record key")
		return nil
	}
	key := p.cur
	p.next()

	if _, ok := p.expect(token.COLON); !ok {
		return nil
	}

	value := p.parseExpr()
	if value == nil {
		return nil
	}
	return &RecordField{
		NodeInfo: NodeInfo{Span: token.Span{Start: key.Pos, End: value.GetSpan().End}},
		Key:      key.Literal,
		Value:    value,
	}
}
