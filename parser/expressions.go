package parser

import (
	"github.com/deepnoodle-ai/chainexpr/ast"
	"github.com/deepnoodle-ai/chainexpr/internal/token"
)

func (p *Parser) parseIdent() ast.Node {
	return &ast.Ident{
		NamePos: p.curToken.StartPosition,
		Name:    p.curToken.Literal,
	}
}

func (p *Parser) parsePrefixExpr() ast.Node {
	op := p.curToken
	p.nextToken()
	x := p.parseExpression(PREFIX)
	if x == nil {
		return nil
	}
	return &ast.Prefix{
		OpPos: op.StartPosition,
		Op:    op.Literal,
		X:     x,
	}
}

func (p *Parser) parseInfixExpr(left ast.Node) ast.Node {
	x, ok := left.(ast.Expr)
	if !ok {
		return p.setTokenError(p.curToken, "invalid operand for %s", p.curToken.Literal)
	}
	op := p.curToken
	precedence := precedences[op.Type]
	if op.Type == token.POW {
		precedence-- // exponentiation is right-associative
	}
	p.nextToken()
	y := p.parseExpression(precedence)
	if y == nil {
		return nil
	}
	return &ast.Infix{
		X:     x,
		OpPos: op.StartPosition,
		Op:    op.Literal,
		Y:     y,
	}
}

// parseGroupedExpr parses a parenthesized expression. The parentheses are
// kept in the AST as an ast.Grouped node because they are semantically
// meaningful: they bound the propagation unit of any optional chain inside.
func (p *Parser) parseGroupedExpr() ast.Node {
	lparen := p.curToken.StartPosition
	p.nextToken()
	p.skipCurNewlines()
	x := p.parseExpression(LOWEST)
	if x == nil {
		return nil
	}
	p.skipPeekNewlines()
	if !p.expectPeek("a grouped expression", token.RPAREN) {
		return nil
	}
	return &ast.Grouped{
		Lparen: lparen,
		X:      x,
		Rparen: p.curToken.StartPosition,
	}
}

func (p *Parser) parseTernary(condNode ast.Node) ast.Node {
	if p.tern {
		return p.setTokenError(p.curToken, "nested ternary expressions are illegal")
	}
	cond, ok := condNode.(ast.Expr)
	if !ok {
		return p.setTokenError(p.curToken, "invalid condition for ternary expression")
	}
	p.tern = true
	defer func() { p.tern = false }()
	question := p.curToken.StartPosition
	p.nextToken()
	ifTrue := p.parseExpression(LOWEST)
	if ifTrue == nil {
		return nil
	}
	if !p.expectPeek("a ternary expression", token.COLON) {
		return nil
	}
	colon := p.curToken.StartPosition
	p.nextToken()
	ifFalse := p.parseExpression(LOWEST)
	if ifFalse == nil {
		return nil
	}
	return &ast.Ternary{
		Cond:     cond,
		Question: question,
		IfTrue:   ifTrue,
		Colon:    colon,
		IfFalse:  ifFalse,
	}
}

func (p *Parser) parseGetAttr(objNode ast.Node) ast.Node {
	obj, ok := objNode.(ast.Expr)
	if !ok {
		return p.setTokenError(p.curToken, "invalid object for attribute access")
	}
	period := p.curToken.StartPosition
	if !p.expectPeek("an attribute access", token.IDENT) {
		return nil
	}
	attr := &ast.Ident{
		NamePos: p.curToken.StartPosition,
		Name:    p.curToken.Literal,
	}
	return &ast.GetAttr{
		X:      obj,
		Period: period,
		Attr:   attr,
	}
}

func (p *Parser) parseIndex(objNode ast.Node) ast.Node {
	obj, ok := objNode.(ast.Expr)
	if !ok {
		return p.setTokenError(p.curToken, "invalid object for index expression")
	}
	lbrack := p.curToken.StartPosition
	p.nextToken()
	index := p.parseExpression(LOWEST)
	if index == nil {
		return nil
	}
	if !p.expectPeek("an index expression", token.RBRACKET) {
		return nil
	}
	return &ast.Index{
		X:      obj,
		Lbrack: lbrack,
		Index:  index,
		Rbrack: p.curToken.StartPosition,
	}
}

func (p *Parser) parseCall(funNode ast.Node) ast.Node {
	fun, ok := funNode.(ast.Expr)
	if !ok {
		return p.setTokenError(p.curToken, "invalid function in call expression")
	}
	lparen := p.curToken.StartPosition
	args := p.parseExprList("a call expression", token.RPAREN)
	if args == nil {
		return nil
	}
	return &ast.Call{
		Fun:    fun,
		Lparen: lparen,
		Args:   args,
		Rparen: p.curToken.StartPosition,
	}
}

// parseOptionalChain parses the three forms of optional entry into a chain:
// obj?.attr, obj?.[index], and fn?.(args). The link produced here is marked
// Optional; links that follow it with plain "." or "[" remain non-optional
// and rely on the evaluator's short-circuit propagation.
func (p *Parser) parseOptionalChain(objNode ast.Node) ast.Node {
	obj, ok := objNode.(ast.Expr)
	if !ok {
		return p.setTokenError(p.curToken, "invalid object for optional chaining")
	}
	period := p.curToken.StartPosition
	switch {
	case p.peekTokenIs(token.LBRACKET):
		p.nextToken()
		node := p.parseIndex(obj)
		if node == nil {
			return nil
		}
		index := node.(*ast.Index)
		index.Optional = true
		return index
	case p.peekTokenIs(token.LPAREN):
		p.nextToken()
		node := p.parseCall(obj)
		if node == nil {
			return nil
		}
		call := node.(*ast.Call)
		call.Optional = true
		return call
	case p.peekTokenIs(token.IDENT):
		p.nextToken()
		attr := &ast.Ident{
			NamePos: p.curToken.StartPosition,
			Name:    p.curToken.Literal,
		}
		return &ast.GetAttr{
			X:        obj,
			Period:   period,
			Attr:     attr,
			Optional: true,
		}
	default:
		return p.setTokenError(p.peekToken,
			"unexpected %s after ?. (expected an identifier, [, or ()",
			tokenDescription(p.peekToken))
	}
}

// parseAssign handles all assignment forms: x = v, obj.attr = v, and
// obj[index] = v. Optional chains are not valid assignment targets.
func (p *Parser) parseAssign(leftNode ast.Node) ast.Node {
	assignPos := p.curToken.StartPosition
	assignTok := p.curToken
	p.nextToken()
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	switch left := leftNode.(type) {
	case *ast.Ident:
		return &ast.Assign{Name: left, AssignPos: assignPos, Value: value}
	case *ast.GetAttr:
		if ast.ContainsOptionalChain(left) {
			return p.setTokenError(assignTok,
				"an optional chain is not a valid assignment target")
		}
		return &ast.SetAttr{
			X:         left.X,
			Period:    left.Period,
			Attr:      left.Attr,
			AssignPos: assignPos,
			Value:     value,
		}
	case *ast.Index:
		if ast.ContainsOptionalChain(left) {
			return p.setTokenError(assignTok,
				"an optional chain is not a valid assignment target")
		}
		return &ast.SetIndex{
			X:         left.X,
			Lbrack:    left.Lbrack,
			Index:     left.Index,
			Rbrack:    left.Rbrack,
			AssignPos: assignPos,
			Value:     value,
		}
	default:
		return p.setTokenError(assignTok, "invalid assignment target")
	}
}

// parseNew parses a constructor invocation. The target is parsed up to but
// not including the argument list, so member accesses before the "(" name
// the constructor and accesses after it apply to the constructed object:
// "new Point(1, 2).x" reads as "(new Point(1, 2)).x". A constructor target
// that is or contains an optional chain is a syntax error, matching the
// rule that "new" may not consume an optional chain.
func (p *Parser) parseNew() ast.Node {
	newTok := p.curToken
	p.nextToken()
	target := p.parseExpression(CALL)
	if target == nil {
		return nil
	}
	if ast.ContainsOptionalChain(target) {
		return p.setTokenError(newTok,
			"an optional chain is not a valid constructor target")
	}
	if !p.peekTokenIs(token.LPAREN) {
		return p.setTokenError(newTok,
			"new requires a constructor call with an argument list")
	}
	p.nextToken()
	node := p.parseCall(target)
	if node == nil {
		return nil
	}
	return &ast.New{NewPos: newTok.StartPosition, Call: node.(*ast.Call)}
}

// parseDelete parses a delete expression. The operand must be a property
// access or index expression, which may be an optional chain.
func (p *Parser) parseDelete() ast.Node {
	deleteTok := p.curToken
	p.nextToken()
	x := p.parseExpression(PREFIX)
	if x == nil {
		return nil
	}
	switch x.(type) {
	case *ast.GetAttr, *ast.Index:
	default:
		return p.setTokenError(deleteTok,
			"invalid delete target (expected a property or index expression)")
	}
	return &ast.Delete{DeletePos: deleteTok.StartPosition, X: x}
}

// parseNullish rejects the ?? operator. The tokenizer recognizes it so that
// the error names the operator rather than an unexpected character.
func (p *Parser) parseNullish(left ast.Node) ast.Node {
	return p.setTokenError(p.curToken,
		"the nullish coalescing operator ?? is not supported")
}

// parseTaggedTemplate rejects a template literal used in tag position. A
// template continuing an optional chain gets a more specific message.
func (p *Parser) parseTaggedTemplate(left ast.Node) ast.Node {
	if ast.ContainsOptionalChain(left) {
		return p.setTokenError(p.curToken,
			"a template literal may not continue an optional chain")
	}
	return p.setTokenError(p.curToken,
		"tagged template literals are not supported")
}

// parseExprList parses a comma-separated list of expressions terminated by
// the given token type. Newlines between items are insignificant. Returns a
// non-nil (possibly empty) slice on success and nil after an error.
func (p *Parser) parseExprList(context string, end token.Type) []ast.Expr {
	items := []ast.Expr{}
	p.skipPeekNewlines()
	if p.peekTokenIs(end) {
		p.nextToken()
		return items
	}
	for {
		p.nextToken()
		item := p.parseExpression(LOWEST)
		if item == nil {
			return nil
		}
		items = append(items, item)
		p.skipPeekNewlines()
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.skipPeekNewlines()
			if p.peekTokenIs(end) { // trailing comma
				p.nextToken()
				return items
			}
			continue
		}
		if !p.expectPeek(context, end) {
			return nil
		}
		return items
	}
}

// skipCurNewlines advances past newline tokens in current position.
func (p *Parser) skipCurNewlines() {
	for p.curTokenIs(token.NEWLINE) {
		p.nextToken()
	}
}
