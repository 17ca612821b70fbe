package parser

import (
	"strconv"

	"github.com/deepnoodle-ai/chainexpr/ast"
	"github.com/deepnoodle-ai/chainexpr/internal/token"
)

func (p *Parser) parseInt() ast.Node {
	tok := p.curToken
	value, err := strconv.ParseInt(tok.Literal, 0, 64)
	if err != nil {
		return p.setTokenError(tok, "invalid integer literal %q", tok.Literal)
	}
	return &ast.Int{
		ValuePos: tok.StartPosition,
		Literal:  tok.Literal,
		Value:    value,
	}
}

func (p *Parser) parseFloat() ast.Node {
	tok := p.curToken
	value, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		return p.setTokenError(tok, "invalid float literal %q", tok.Literal)
	}
	return &ast.Float{
		ValuePos: tok.StartPosition,
		Literal:  tok.Literal,
		Value:    value,
	}
}

func (p *Parser) parseBool() ast.Node {
	return &ast.Bool{
		ValuePos: p.curToken.StartPosition,
		Literal:  p.curToken.Literal,
		Value:    p.curTokenIs(token.TRUE),
	}
}

func (p *Parser) parseNil() ast.Node {
	return &ast.Nil{NilPos: p.curToken.StartPosition}
}

func (p *Parser) parseString() ast.Node {
	return &ast.String{
		ValuePos: p.curToken.StartPosition,
		Literal:  p.curToken.Literal,
		EndPos:   p.curToken.EndPosition,
	}
}

// parseTemplate parses a backtick template literal in expression position.
// The contents are raw text; interpolation is not supported.
func (p *Parser) parseTemplate() ast.Node {
	return &ast.String{
		ValuePos: p.curToken.StartPosition,
		Literal:  p.curToken.Literal,
		EndPos:   p.curToken.EndPosition,
	}
}

func (p *Parser) parseList() ast.Node {
	lbrack := p.curToken.StartPosition
	items := p.parseExprList("a list literal", token.RBRACKET)
	if items == nil {
		return nil
	}
	return &ast.List{
		Lbrack: lbrack,
		Items:  items,
		Rbrack: p.curToken.StartPosition,
	}
}

// parseMap parses a map literal. Keys may be identifiers or string literals;
// an identifier key is shorthand for the corresponding string.
func (p *Parser) parseMap() ast.Node {
	lbrace := p.curToken.StartPosition
	items := []ast.MapItem{}
	p.skipPeekNewlines()
	for !p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		var key ast.Expr
		switch p.curToken.Type {
		case token.IDENT:
			key = &ast.String{
				ValuePos: p.curToken.StartPosition,
				Literal:  p.curToken.Literal,
				EndPos:   p.curToken.EndPosition,
			}
		case token.STRING:
			key = &ast.String{
				ValuePos: p.curToken.StartPosition,
				Literal:  p.curToken.Literal,
				EndPos:   p.curToken.EndPosition,
			}
		default:
			return p.setTokenError(p.curToken,
				"invalid map key %s (expected an identifier or string)",
				tokenDescription(p.curToken))
		}
		if !p.expectPeek("a map literal", token.COLON) {
			return nil
		}
		p.nextToken()
		value := p.parseExpression(LOWEST)
		if value == nil {
			return nil
		}
		items = append(items, ast.MapItem{Key: key, Value: value})
		p.skipPeekNewlines()
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.skipPeekNewlines()
			continue
		}
		break
	}
	if !p.expectPeek("a map literal", token.RBRACE) {
		return nil
	}
	return &ast.Map{
		Lbrace: lbrace,
		Items:  items,
		Rbrace: p.curToken.StartPosition,
	}
}
