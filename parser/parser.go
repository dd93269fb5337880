// Package parser is used to generate the abstract syntax tree (AST) for a
// Fern program.
//
// A program is a sequence of function declarations. Any leading token other
// than "func" starts a bare expression, which is implicitly wrapped into a
// zero-parameter function named "main" with declared return type "int".
//
// Expressions are parsed with precedence climbing: a left-to-right binary
// operator chain is folded using a minimum-precedence threshold that is
// passed through recursive calls, which yields left-associative chaining at
// equal precedence and right-recursive grouping for higher-precedence runs.
package parser

import (
	"strconv"

	"github.com/fern-lang/fern/ast"
	"github.com/fern-lang/fern/lexer"
	"github.com/fern-lang/fern/token"
)

// Operator precedences, from lowest to highest binding. Values match the
// language definition; anything not listed is not a binary operator.
var precedences = map[token.Type]int{
	token.PIPE:      20,
	token.AMPERSAND: 30,
	token.EQ:        40,
	token.NOT_EQ:    40,
	token.ASSIGN:    40,
	token.LT:        50,
	token.LT_EQUALS: 50,
	token.GT:        50,
	token.GT_EQUALS: 50,
	token.PLUS:      60,
	token.MINUS:     60,
	token.ASTERISK:  70,
	token.SLASH:     70,
	token.MOD:       70,
}

// precedence returns the binary operator precedence for a token type, or
// -1 if the token is not a binary operator.
func precedence(t token.Type) int {
	if p, ok := precedences[t]; ok {
		return p
	}
	return -1
}

// Parse the provided input as Fern source code and return the AST. This is
// a shorthand way to create a Lexer and Parser and then call Parse.
func Parse(input string) (*ast.Program, error) {
	return New(lexer.New(input)).Parse()
}

// Parser transforms a token stream into an AST. A parser should be used
// only once, by calling Parse to produce the program.
type Parser struct {
	l   *lexer.Lexer
	cur token.Token
}

// New creates a Parser that reads tokens from the given lexer.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.cur = l.Next()
	return p
}

func (p *Parser) next() {
	p.cur = p.l.Next()
}

// expect consumes the current token if it has the given type, or returns a
// syntax error describing the mismatch.
func (p *Parser) expect(t token.Type, expected string) error {
	if p.cur.Type != t {
		return newSyntaxError(expected, p.cur)
	}
	p.next()
	return nil
}

// Parse consumes the whole input and returns the program. The first syntax
// error aborts parsing immediately.
func (p *Parser) Parse() (*ast.Program, error) {
	program := &ast.Program{}
	for p.cur.Type != token.EOF {
		if p.cur.Type == token.FUNC {
			fn, err := p.parseFuncDecl()
			if err != nil {
				return nil, err
			}
			program.Funcs = append(program.Funcs, fn)
			continue
		}
		// A bare expression becomes the body of an implicit main function.
		pos := p.cur.StartPosition
		body, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		program.Funcs = append(program.Funcs, &ast.FuncDecl{
			FuncPos:    pos,
			Name:       "main",
			ReturnType: &ast.TypeExpr{NamePos: pos, Name: "int"},
			Body:       body,
		})
	}
	return program, nil
}

// parseFuncDecl parses:
//
//	func name ( [name : type {, name : type}] ) : type == body-expr
//
// The "==" after the return type is the declaration-body separator. It is
// the same token as the equality operator; the two are disambiguated purely
// by position.
func (p *Parser) parseFuncDecl() (*ast.FuncDecl, error) {
	fn := &ast.FuncDecl{FuncPos: p.cur.StartPosition}
	if err := p.expect(token.FUNC, `"func"`); err != nil {
		return nil, err
	}
	if p.cur.Type != token.IDENT {
		return nil, newSyntaxError("function name", p.cur)
	}
	fn.Name = p.cur.Literal
	p.next()

	if p.cur.Type == token.LPAREN {
		p.next()
		if p.cur.Type != token.RPAREN {
			for {
				param, err := p.parseParam()
				if err != nil {
					return nil, err
				}
				fn.Params = append(fn.Params, param)
				if p.cur.Type != token.COMMA {
					break
				}
				p.next()
			}
		}
		if err := p.expect(token.RPAREN, `")"`); err != nil {
			return nil, err
		}
	}

	if err := p.expect(token.COLON, `":" before return type`); err != nil {
		return nil, err
	}
	retType, err := p.parseTypeExpr()
	if err != nil {
		return nil, err
	}
	fn.ReturnType = retType

	if err := p.expect(token.EQ, `"==" before function body`); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	fn.Body = body
	return fn, nil
}

func (p *Parser) parseParam() (*ast.Param, error) {
	if p.cur.Type != token.IDENT {
		return nil, newSyntaxError("parameter name", p.cur)
	}
	param := &ast.Param{NamePos: p.cur.StartPosition, Name: p.cur.Literal}
	p.next()
	if err := p.expect(token.COLON, `":" after parameter name`); err != nil {
		return nil, err
	}
	typ, err := p.parseTypeExpr()
	if err != nil {
		return nil, err
	}
	param.Type = typ
	return param, nil
}

func (p *Parser) parseTypeExpr() (*ast.TypeExpr, error) {
	if token.IsTypeKeyword(p.cur.Type) || p.cur.Type == token.IDENT {
		t := &ast.TypeExpr{NamePos: p.cur.StartPosition, Name: p.cur.Literal}
		p.next()
		return t, nil
	}
	return nil, newSyntaxError("type expression", p.cur)
}

func (p *Parser) parseExpr() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return p.parseBinaryRHS(left, 0)
}

// parseBinaryRHS folds a chain of binary operators onto left. While the
// current token's precedence is at least minPrec it consumes the operator
// and the right-hand unary operand; if the following operator binds more
// tightly than the one just consumed, that higher-precedence run is
// absorbed into the right-hand side first.
func (p *Parser) parseBinaryRHS(left ast.Expr, minPrec int) (ast.Expr, error) {
	for {
		prec := precedence(p.cur.Type)
		if prec < minPrec {
			return left, nil
		}
		op := p.cur.Literal
		opPos := p.cur.StartPosition
		p.next()

		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if precedence(p.cur.Type) > prec {
			right, err = p.parseBinaryRHS(right, prec+1)
			if err != nil {
				return nil, err
			}
		}
		left = &ast.Infix{X: left, OpPos: opPos, Op: op, Y: right}
	}
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.cur.Type == token.MINUS || p.cur.Type == token.BANG {
		opPos := p.cur.StartPosition
		op := p.cur.Literal
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Prefix{OpPos: opPos, Op: op, X: operand}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	switch p.cur.Type {
	case token.INT:
		value, err := strconv.ParseInt(p.cur.Literal, 10, 64)
		if err != nil {
			return nil, newSyntaxError("integer literal", p.cur)
		}
		lit := &ast.Int{ValuePos: p.cur.StartPosition, Literal: p.cur.Literal, Value: value}
		p.next()
		return lit, nil
	case token.FLOAT:
		value, err := strconv.ParseFloat(p.cur.Literal, 64)
		if err != nil {
			return nil, newSyntaxError("float literal", p.cur)
		}
		lit := &ast.Float{ValuePos: p.cur.StartPosition, Literal: p.cur.Literal, Value: value}
		p.next()
		return lit, nil
	case token.TRUE, token.FALSE:
		lit := &ast.Bool{
			ValuePos: p.cur.StartPosition,
			Literal:  p.cur.Literal,
			Value:    p.cur.Type == token.TRUE,
		}
		p.next()
		return lit, nil
	case token.STRING:
		lit := &ast.String{
			ValuePos: p.cur.StartPosition,
			EndPos:   p.cur.EndPosition,
			Value:    p.cur.Literal,
		}
		p.next()
		return lit, nil
	case token.IDENT:
		return p.parseIdentOrCall()
	case token.LPAREN:
		p.next()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RPAREN, `")"`); err != nil {
			return nil, err
		}
		return expr, nil
	case token.IF:
		return p.parseIf()
	}
	return nil, newSyntaxError("expression", p.cur)
}

// parseIdentOrCall parses an identifier, promoting it to a call expression
// if it is immediately followed by "(".
func (p *Parser) parseIdentOrCall() (ast.Expr, error) {
	namePos := p.cur.StartPosition
	name := p.cur.Literal
	p.next()
	if p.cur.Type != token.LPAREN {
		return &ast.Ident{NamePos: namePos, Name: name}, nil
	}
	p.next()
	call := &ast.Call{NamePos: namePos, Name: name}
	if p.cur.Type != token.RPAREN {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
			if p.cur.Type != token.COMMA {
				break
			}
			p.next()
		}
	}
	call.RParen = p.cur.StartPosition
	if err := p.expect(token.RPAREN, `")" after arguments`); err != nil {
		return nil, err
	}
	return call, nil
}

// parseIf parses the strict, total conditional form:
//
//	if cond then thenExpr else elseExpr fi
//
// All four keywords are mandatory; there is no optional-else form.
func (p *Parser) parseIf() (ast.Expr, error) {
	ifPos := p.cur.StartPosition
	if err := p.expect(token.IF, `"if"`); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.THEN, `"then"`); err != nil {
		return nil, err
	}
	thenExpr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.ELSE, `"else"`); err != nil {
		return nil, err
	}
	elseExpr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	fiPos := p.cur.StartPosition
	if err := p.expect(token.FI, `"fi"`); err != nil {
		return nil, err
	}
	return &ast.If{IfPos: ifPos, FiPos: fiPos, Cond: cond, Then: thenExpr, Else: elseExpr}, nil
}
