// Package parser implements a minimal recursive-descent parser over the
// lexer's token stream, producing an *ast.Document. The grammar is a flat
// list of statements:
//
//	unit <id> = <number> [<unit-expr>] ;
//	define <id> = <number> [<unit-expr>] ;
//	specification <id> : <unit-expr> ;
//	<expr> == <expr> ;
//
// and expressions are the usual `+ - * / ^` infix/unary arithmetic over
// identifiers, numeric literals and parenthesized subexpressions.
package parser

import (
	"fmt"
	"strconv"

	"github.com/bcsgh/tbd/ast"
	"github.com/bcsgh/tbd/lexer"
)

// Error is a parse error located by line and column.
type Error struct {
	Message string
	Line    int
	Column  int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %d:%d", e.Message, e.Line, e.Column)
}

// Parse tokenizes and parses src, attributing every location to filename.
func Parse(filename, src string) (*ast.Document, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		le := err.(*lexer.Error)
		return nil, &Error{Message: le.Message, Line: le.Line, Column: le.Column}
	}
	p := &Parser{tokens: toks, file: filename}
	return p.parseDocument()
}

// Parser consumes a fixed token slice by index.
type Parser struct {
	tokens []lexer.Token
	pos    int
	file   string
}

func (p *Parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, error) {
	tok := p.current()
	if tok.Type != tt {
		return tok, &Error{
			Message: fmt.Sprintf("expected %s, got %s %q", tt, tok.Type, tok.Value),
			Line:    tok.Line, Column: tok.Column,
		}
	}
	return p.advance(), nil
}

func (p *Parser) loc(tok lexer.Token) ast.Loc {
	return ast.Loc{
		File:      p.file,
		LineBegin: tok.Line, ColBegin: tok.Column,
		LineEnd: tok.Line, ColEnd: tok.Column + len(tok.Value),
	}
}

func (p *Parser) parseDocument() (*ast.Document, error) {
	doc := &ast.Document{Loc: ast.Loc{File: p.file, LineBegin: 1, ColBegin: 1, LineEnd: 1, ColEnd: 1}}
	for p.current().Type != lexer.EOF {
		if err := p.parseStatement(doc); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func (p *Parser) parseStatement(doc *ast.Document) error {
	switch p.current().Type {
	case lexer.UNIT:
		return p.parseUnitDef(doc)
	case lexer.DEFINE:
		return p.parseDefine(doc)
	case lexer.SPECIFICATION:
		return p.parseSpecification(doc)
	default:
		return p.parseEquality(doc)
	}
}

func (p *Parser) parseUnitDef(doc *ast.Document) error {
	start := p.advance() // "unit"
	name, err := p.expect(lexer.IDENTIFIER)
	if err != nil {
		return err
	}
	if _, err := p.expect(lexer.EQUALS); err != nil {
		return err
	}
	value, err := p.parseNumber()
	if err != nil {
		return err
	}
	unitExp, err := p.parseOptionalUnitExpr()
	if err != nil {
		return err
	}
	end, err := p.expect(lexer.SEMICOLON)
	if err != nil {
		return err
	}
	doc.AddUnitDef(&ast.UnitDef{
		Name: name.Value, Value: value, Unit: unitExp,
		Loc: ast.Join(p.loc(start), p.loc(end)),
	})
	return nil
}

func (p *Parser) parseDefine(doc *ast.Document) error {
	start := p.advance() // "define"
	name, err := p.expect(lexer.IDENTIFIER)
	if err != nil {
		return err
	}
	if _, err := p.expect(lexer.EQUALS); err != nil {
		return err
	}
	valTok := p.current()
	value, err := p.parseNumber()
	if err != nil {
		return err
	}
	lit := &ast.Literal{Value: value, Loc: p.loc(valTok)}
	unitExp, err := p.parseOptionalUnitExpr()
	if err != nil {
		return err
	}
	end, err := p.expect(lexer.SEMICOLON)
	if err != nil {
		return err
	}
	doc.AddDefine(&ast.Define{
		Name: name.Value, Value: lit, Unit: unitExp,
		Loc: ast.Join(p.loc(start), p.loc(end)),
	})
	return nil
}

func (p *Parser) parseSpecification(doc *ast.Document) error {
	start := p.advance() // "specification"
	name, err := p.expect(lexer.IDENTIFIER)
	if err != nil {
		return err
	}
	if _, err := p.expect(lexer.COLON); err != nil {
		return err
	}
	unitExp, err := p.parseUnitExpr()
	if err != nil {
		return err
	}
	end, err := p.expect(lexer.SEMICOLON)
	if err != nil {
		return err
	}
	doc.AddSpecification(&ast.Specification{
		Name: name.Value, Unit: unitExp,
		Loc: ast.Join(p.loc(start), p.loc(end)),
	})
	return nil
}

func (p *Parser) parseEquality(doc *ast.Document) error {
	left, err := p.parseExpr()
	if err != nil {
		return err
	}
	if _, err := p.expect(lexer.EQUALEQUAL); err != nil {
		return err
	}
	right, err := p.parseExpr()
	if err != nil {
		return err
	}
	end, err := p.expect(lexer.SEMICOLON)
	if err != nil {
		return err
	}
	doc.AddEquality(&ast.Equality{
		Left: left, Right: right,
		Loc: ast.Join(left.Location(), p.loc(end)),
	})
	return nil
}

func (p *Parser) parseNumber() (float64, error) {
	tok, err := p.expect(lexer.NUMBER)
	if err != nil {
		return 0, err
	}
	v, perr := strconv.ParseFloat(tok.Value, 64)
	if perr != nil {
		return 0, &Error{Message: fmt.Sprintf("invalid number %q: %v", tok.Value, perr), Line: tok.Line, Column: tok.Column}
	}
	return v, nil
}

// parseOptionalUnitExpr parses a trailing unit-expression if the next
// token can start one (an identifier), returning nil otherwise — used
// after the literal value of a unit/define statement, where the unit is
// optional (a bare dimensionless number is valid).
func (p *Parser) parseOptionalUnitExpr() (*ast.UnitExp, error) {
	if p.current().Type != lexer.IDENTIFIER {
		return nil, nil
	}
	return p.parseUnitExpr()
}

// parseUnitExpr parses a "*"/"/"-separated sequence of
// identifier[^integer] factors, e.g. "kg*m/s^2".
func (p *Parser) parseUnitExpr() (*ast.UnitExp, error) {
	start := p.current()
	u := &ast.UnitExp{Loc: p.loc(start)}

	id, err := p.expect(lexer.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	exp, err := p.parseOptionalExponent()
	if err != nil {
		return nil, err
	}
	u.Mul(id.Value, exp, p.loc(id))

	for p.current().Type == lexer.MULTIPLY || p.current().Type == lexer.DIVIDE {
		op := p.advance()
		id, err := p.expect(lexer.IDENTIFIER)
		if err != nil {
			return nil, err
		}
		exp, err := p.parseOptionalExponent()
		if err != nil {
			return nil, err
		}
		if op.Type == lexer.MULTIPLY {
			u.Mul(id.Value, exp, p.loc(id))
		} else {
			u.Div(id.Value, exp, p.loc(id))
		}
	}
	u.Loc = ast.Join(u.Loc, p.loc(p.tokens[p.pos-1]))
	return u, nil
}

func (p *Parser) parseOptionalExponent() (int, error) {
	if p.current().Type != lexer.EXPONENT {
		return 1, nil
	}
	p.advance()
	negative := false
	if p.current().Type == lexer.MINUS {
		negative = true
		p.advance()
	}
	tok, err := p.expect(lexer.NUMBER)
	if err != nil {
		return 0, err
	}
	v, perr := strconv.Atoi(tok.Value)
	if perr != nil {
		return 0, &Error{Message: fmt.Sprintf("unit exponent must be an integer, got %q", tok.Value), Line: tok.Line, Column: tok.Column}
	}
	if negative {
		v = -v
	}
	return v, nil
}

// Expression grammar, lowest to highest precedence:
//
//	expr   := term (("+" | "-") term)*
//	term   := power (("*" | "/") power)*
//	power  := unary ("^" NUMBER)?
//	unary  := "-" unary | atom
//	atom   := NUMBER | IDENTIFIER | "(" expr ")"

func (p *Parser) parseExpr() (ast.Expression, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.current().Type == lexer.PLUS || p.current().Type == lexer.MINUS {
		op := p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if op.Type == lexer.PLUS {
			left = ast.NewSum(left, right)
		} else {
			left = ast.NewDifference(left, right)
		}
	}
	return left, nil
}

func (p *Parser) parseTerm() (ast.Expression, error) {
	left, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for p.current().Type == lexer.MULTIPLY || p.current().Type == lexer.DIVIDE {
		op := p.advance()
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		if op.Type == lexer.MULTIPLY {
			left = ast.NewProduct(left, right)
		} else {
			left = ast.NewQuotient(left, right)
		}
	}
	return left, nil
}

func (p *Parser) parsePower() (ast.Expression, error) {
	base, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if p.current().Type != lexer.EXPONENT {
		return base, nil
	}
	p.advance()
	expTok, err := p.expect(lexer.NUMBER)
	if err != nil {
		return nil, err
	}
	n, perr := strconv.Atoi(expTok.Value)
	if perr != nil {
		return nil, &Error{Message: fmt.Sprintf("exponent must be an integer, got %q", expTok.Value), Line: expTok.Line, Column: expTok.Column}
	}
	return &ast.Power{Base: base, Exp: n, Loc: ast.Join(base.Location(), p.loc(expTok))}, nil
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	if p.current().Type == lexer.MINUS {
		start := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Negative{Operand: operand, Loc: ast.Join(p.loc(start), operand.Location())}, nil
	}
	return p.parseAtom()
}

func (p *Parser) parseAtom() (ast.Expression, error) {
	tok := p.current()
	switch tok.Type {
	case lexer.NUMBER:
		v, err := p.parseNumber()
		if err != nil {
			return nil, err
		}
		return &ast.Literal{Value: v, Loc: p.loc(tok)}, nil
	case lexer.IDENTIFIER:
		p.advance()
		return &ast.Named{Name: tok.Value, Loc: p.loc(tok)}, nil
	case lexer.LPAREN:
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, &Error{
			Message: fmt.Sprintf("expected a number, identifier or '(', got %s %q", tok.Type, tok.Value),
			Line:    tok.Line, Column: tok.Column,
		}
	}
}
