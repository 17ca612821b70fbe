// Package ast defines the abstract syntax tree representation of chain
// expressions.
package ast

import "github.com/deepnoodle-ai/chainexpr/internal/token"

// Node represents a portion of the syntax tree. All nodes have position
// information indicating where they appear in the source code.
type Node interface {
	// Pos returns the position of the first character belonging to the node.
	Pos() token.Position

	// End returns the position of the first character immediately after the node.
	End() token.Position

	// String returns a human friendly representation of the Node. This should
	// be similar to the original source code, but not necessarily identical.
	String() string
}

// Expr represents an expression node. Expressions evaluate to a value
// and may be embedded within other expressions.
type Expr interface {
	Node
	exprNode()
}

// Program is the root node: an ordered series of statements.
type Program struct {
	Stmts []Node
}

func (p *Program) Pos() token.Position {
	if len(p.Stmts) > 0 {
		return p.Stmts[0].Pos()
	}
	return token.NoPos
}

func (p *Program) End() token.Position {
	if len(p.Stmts) > 0 {
		return p.Stmts[len(p.Stmts)-1].End()
	}
	return token.NoPos
}

func (p *Program) String() string {
	var out string
	for i, stmt := range p.Stmts {
		if i > 0 {
			out += "\n"
		}
		out += stmt.String()
	}
	return out
}

// IsChainLink returns true if the node is a property access, index, or call
// that can form a link within an access chain.
func IsChainLink(node Node) bool {
	switch node.(type) {
	case *GetAttr, *Index, *Call:
		return true
	}
	return false
}

// ContainsOptionalChain walks the member/index/call spine of the given
// expression and reports whether any link is an optional entry (?.).
// Grouping parentheses bound the walk: a grouped chain is a complete,
// independent expression and does not make the outer spine optional.
func ContainsOptionalChain(node Node) bool {
	for {
		switch n := node.(type) {
		case *GetAttr:
			if n.Optional {
				return true
			}
			node = n.X
		case *Index:
			if n.Optional {
				return true
			}
			node = n.X
		case *Call:
			if n.Optional {
				return true
			}
			node = n.Fun
		default:
			return false
		}
	}
}
