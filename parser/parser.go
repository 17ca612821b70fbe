// Package parser is used to parse chain expression source code into an
// abstract syntax tree (AST).
//
// Example usage:
//
//	program, err := parser.Parse(ctx, "obj?.items[0].name")
//
// A Pratt parser is used. Each token type may have an associated prefix
// and/or infix parse function, and operator precedences drive how far an
// expression extends to the right.
package parser

import (
	"context"
	"fmt"

	"github.com/deepnoodle-ai/chainexpr/ast"
	"github.com/deepnoodle-ai/chainexpr/internal/lexer"
	"github.com/deepnoodle-ai/chainexpr/internal/token"
)

type (
	prefixParseFn func() ast.Node
	infixParseFn  func(ast.Node) ast.Node
)

const (
	// maxDepth bounds expression nesting so that deeply nested input fails
	// with a syntax error instead of exhausting the stack.
	maxDepth = 500

	// maxErrors bounds how many errors are collected before parsing stops.
	maxErrors = 8
)

// Parse the given source code and return the corresponding AST. On failure
// the returned error is an *Errors holding one or more ParserErrors.
func Parse(ctx context.Context, input string, options ...Option) (*ast.Program, error) {
	return New(input, options...).Parse(ctx)
}

// Option configures a Parser.
type Option func(*Parser)

// WithFilename attaches a filename to the input for position reporting.
func WithFilename(filename string) Option {
	return func(p *Parser) {
		p.l.SetFilename(filename)
	}
}

// Parser object used to analyze and parse source code.
type Parser struct {
	l *lexer.Lexer

	prevToken token.Token
	curToken  token.Token
	peekToken token.Token

	// accumulated errors; parsing continues after an error where possible
	errs []ParserError

	// current expression nesting depth
	depth int

	// true while parsing the branches of a ternary expression
	tern bool

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

// New returns a Parser for the given source code.
func New(input string, options ...Option) *Parser {
	p := &Parser{l: lexer.New(input)}
	for _, opt := range options {
		opt(p)
	}

	p.prefixParseFns = map[token.Type]prefixParseFn{
		token.BANG:     p.parsePrefixExpr,
		token.DELETE:   p.parseDelete,
		token.FALSE:    p.parseBool,
		token.FLOAT:    p.parseFloat,
		token.IDENT:    p.parseIdent,
		token.INT:      p.parseInt,
		token.LBRACE:   p.parseMap,
		token.LBRACKET: p.parseList,
		token.LPAREN:   p.parseGroupedExpr,
		token.MINUS:    p.parsePrefixExpr,
		token.NEW:      p.parseNew,
		token.NIL:      p.parseNil,
		token.STRING:   p.parseString,
		token.TEMPLATE: p.parseTemplate,
		token.TRUE:     p.parseBool,
	}

	p.infixParseFns = map[token.Type]infixParseFn{
		token.AND:          p.parseInfixExpr,
		token.ASSIGN:       p.parseAssign,
		token.ASTERISK:     p.parseInfixExpr,
		token.EQ:           p.parseInfixExpr,
		token.GT:           p.parseInfixExpr,
		token.GT_EQUALS:    p.parseInfixExpr,
		token.LBRACKET:     p.parseIndex,
		token.LPAREN:       p.parseCall,
		token.LT:           p.parseInfixExpr,
		token.LT_EQUALS:    p.parseInfixExpr,
		token.MINUS:        p.parseInfixExpr,
		token.MOD:          p.parseInfixExpr,
		token.NOT_EQ:       p.parseInfixExpr,
		token.NULLISH:      p.parseNullish,
		token.OR:           p.parseInfixExpr,
		token.PERIOD:       p.parseGetAttr,
		token.PLUS:         p.parseInfixExpr,
		token.POW:          p.parseInfixExpr,
		token.QUESTION:     p.parseTernary,
		token.QUESTION_DOT: p.parseOptionalChain,
		token.SLASH:        p.parseInfixExpr,
		token.TEMPLATE:     p.parseTaggedTemplate,
	}
	return p
}

// Parse the program that is provided via the input string. The returned
// program never shares statements with an error result: if any error was
// recorded, the program is discarded and the errors are returned.
func (p *Parser) Parse(ctx context.Context) (*ast.Program, error) {
	// Read the first two tokens to initialize curToken and peekToken
	p.nextToken()
	p.nextToken()

	prog := &ast.Program{}
	for !p.curTokenIs(token.EOF) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(p.errs) >= maxErrors {
			break
		}
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Stmts = append(prog.Stmts, stmt)
		}
		p.nextToken()
	}
	if len(p.errs) > 0 {
		return nil, NewErrors(p.errs)
	}
	return prog, nil
}

// parseStatement parses one statement. Statements are expressions separated
// by newlines or semicolons. Returns nil for empty statements and after
// recording an error.
func (p *Parser) parseStatement() ast.Node {
	switch p.curToken.Type {
	case token.NEWLINE, token.SEMICOLON:
		return nil
	default:
		node := p.parseExpression(LOWEST)
		if node == nil {
			p.synchronize()
			return nil
		}
		if !p.peekTokenIs(token.NEWLINE, token.SEMICOLON, token.EOF) {
			p.setTokenError(p.peekToken, "unexpected token %s",
				tokenDescription(p.peekToken))
			p.synchronize()
			return nil
		}
		return node
	}
}

// synchronize skips ahead to the next statement boundary so that one syntax
// error does not cascade into spurious errors for the rest of the input.
func (p *Parser) synchronize() {
	for !p.curTokenIs(token.EOF) && !p.curTokenIs(token.NEWLINE) &&
		!p.curTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
}

// parseExpression is the entry point for Pratt parsing of one expression.
func (p *Parser) parseExpression(precedence int) ast.Expr {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxDepth {
		p.setTokenError(p.curToken, "expression nesting is too deep")
		return nil
	}

	prefix, ok := p.prefixParseFns[p.curToken.Type]
	if !ok {
		p.setTokenError(p.curToken, "unexpected token %s",
			tokenDescription(p.curToken))
		return nil
	}
	node := prefix()
	if node == nil {
		return nil
	}

	for precedence < p.peekPrecedence() {
		infix, ok := p.infixParseFns[p.peekToken.Type]
		if !ok {
			break
		}
		p.nextToken()
		node = infix(node)
		if node == nil {
			return nil
		}
	}
	expr, ok := node.(ast.Expr)
	if !ok {
		p.setTokenError(p.curToken, "expected an expression")
		return nil
	}
	return expr
}

// nextToken advances the parser by one token.
func (p *Parser) nextToken() {
	p.prevToken = p.curToken
	p.curToken = p.peekToken
	tok, err := p.l.Next()
	if err != nil {
		p.setTokenError(tok, "%s", err.Error())
		tok.Type = token.EOF
	}
	p.peekToken = tok
}

func (p *Parser) curTokenIs(t token.Type) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(ts ...token.Type) bool {
	for _, t := range ts {
		if p.peekToken.Type == t {
			return true
		}
	}
	return false
}

func (p *Parser) peekPrecedence() int {
	return precedences[p.peekToken.Type]
}

// expectPeek advances if the next token has the expected type, and otherwise
// records a syntax error naming the enclosing construct.
func (p *Parser) expectPeek(context string, t token.Type) bool {
	if !p.peekTokenIs(t) {
		p.setTokenError(p.peekToken, "unexpected %s while parsing %s (expected %s)",
			tokenDescription(p.peekToken), context, tokenTypeDescription(t))
		return false
	}
	p.nextToken()
	return true
}

// skipPeekNewlines consumes any newline tokens waiting in peek position.
// Newlines are insignificant inside bracketed constructs.
func (p *Parser) skipPeekNewlines() {
	for p.peekTokenIs(token.NEWLINE) {
		p.nextToken()
	}
}

// setTokenError records a syntax error at the position of the given token.
// Returns nil so callers can end a parse function with a single statement.
func (p *Parser) setTokenError(tok token.Token, msg string, args ...interface{}) ast.Node {
	if len(p.errs) >= maxErrors {
		return nil
	}
	p.errs = append(p.errs, NewSyntaxError(ErrorOpts{
		Message:       fmt.Sprintf(msg, args...),
		File:          p.l.Filename(),
		StartPosition: tok.StartPosition,
		EndPosition:   tok.EndPosition,
		SourceCode:    p.l.GetLineText(tok),
	}))
	return nil
}
