package ast

import (
	"bytes"
	"strings"

	"github.com/deepnoodle-ai/chainexpr/internal/token"
)

// Ident is an expression node that refers to a variable by name.
type Ident struct {
	NamePos token.Position // position of identifier
	Name    string         // identifier name
}

func (x *Ident) exprNode() {}

func (x *Ident) Pos() token.Position { return x.NamePos }
func (x *Ident) End() token.Position { return x.NamePos.Advance(len(x.Name)) }

func (x *Ident) String() string { return x.Name }

// Prefix is an operator expression where the operator precedes the operand.
// Examples include "!false" and "-x".
type Prefix struct {
	OpPos token.Position // position of operator
	Op    string         // operator: "!", "-"
	X     Expr           // operand
}

func (x *Prefix) exprNode() {}

func (x *Prefix) Pos() token.Position { return x.OpPos }
func (x *Prefix) End() token.Position { return x.X.End() }

func (x *Prefix) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(x.Op)
	out.WriteString(x.X.String())
	out.WriteString(")")
	return out.String()
}

// Infix is an operator expression where the operator is between the operands.
// Examples include "x + y" and "5 - 1".
type Infix struct {
	X     Expr           // left operand
	OpPos token.Position // position of operator
	Op    string         // operator: "+", "-", "*", "/", etc.
	Y     Expr           // right operand
}

func (x *Infix) exprNode() {}

func (x *Infix) Pos() token.Position { return x.X.Pos() }
func (x *Infix) End() token.Position { return x.Y.End() }

func (x *Infix) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(x.X.String())
	out.WriteString(" " + x.Op + " ")
	out.WriteString(x.Y.String())
	out.WriteString(")")
	return out.String()
}

// Ternary is an expression node that defines a ternary expression and evaluates
// to one of two values based on a condition.
type Ternary struct {
	Cond     Expr           // condition
	Question token.Position // position of "?"
	IfTrue   Expr           // value if condition is true
	Colon    token.Position // position of ":"
	IfFalse  Expr           // value if condition is false
}

func (x *Ternary) exprNode() {}

func (x *Ternary) Pos() token.Position { return x.Cond.Pos() }
func (x *Ternary) End() token.Position { return x.IfFalse.End() }

func (x *Ternary) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(x.Cond.String())
	out.WriteString(" ? ")
	out.WriteString(x.IfTrue.String())
	out.WriteString(" : ")
	out.WriteString(x.IfFalse.String())
	out.WriteString(")")
	return out.String()
}

// Grouped is an expression wrapped in parentheses. Grouping matters to chain
// evaluation: it closes the enclosing propagation unit, so a short-circuit
// inside the parentheses never extends to links applied outside of them.
type Grouped struct {
	Lparen token.Position // position of "("
	X      Expr           // the wrapped expression
	Rparen token.Position // position of ")"
}

func (x *Grouped) exprNode() {}

func (x *Grouped) Pos() token.Position { return x.Lparen }
func (x *Grouped) End() token.Position { return x.Rparen.Advance(1) }

func (x *Grouped) String() string { return "(" + x.X.String() + ")" }

// GetAttr is an expression node that describes the access of an attribute on
// an object.
type GetAttr struct {
	X        Expr           // object expression
	Period   token.Position // position of "." or "?."
	Attr     *Ident         // attribute name
	Optional bool           // true if optional chaining (?.)
}

func (x *GetAttr) exprNode() {}

func (x *GetAttr) Pos() token.Position { return x.X.Pos() }
func (x *GetAttr) End() token.Position { return x.Attr.End() }

func (x *GetAttr) String() string {
	var out bytes.Buffer
	out.WriteString(x.X.String())
	if x.Optional {
		out.WriteString("?.")
	} else {
		out.WriteString(".")
	}
	out.WriteString(x.Attr.Name)
	return out.String()
}

// Index is an expression node that describes indexing on an object.
type Index struct {
	X        Expr           // object expression
	Lbrack   token.Position // position of "["
	Index    Expr           // index expression
	Rbrack   token.Position // position of "]"
	Optional bool           // true if optional chaining (?.[ ])
}

func (x *Index) exprNode() {}

func (x *Index) Pos() token.Position { return x.X.Pos() }
func (x *Index) End() token.Position { return x.Rbrack.Advance(1) }

func (x *Index) String() string {
	var out bytes.Buffer
	out.WriteString(x.X.String())
	if x.Optional {
		out.WriteString("?.")
	}
	out.WriteString("[")
	out.WriteString(x.Index.String())
	out.WriteString("]")
	return out.String()
}

// Call is an expression node that describes the invocation of a function.
type Call struct {
	Fun      Expr           // function expression
	Lparen   token.Position // position of "("
	Args     []Expr         // function arguments
	Rparen   token.Position // position of ")"
	Optional bool           // true if optional chaining (?.( ))
}

func (x *Call) exprNode() {}

func (x *Call) Pos() token.Position { return x.Fun.Pos() }
func (x *Call) End() token.Position { return x.Rparen.Advance(1) }

func (x *Call) String() string {
	var out bytes.Buffer
	args := make([]string, 0, len(x.Args))
	for _, a := range x.Args {
		args = append(args, a.String())
	}
	out.WriteString(x.Fun.String())
	if x.Optional {
		out.WriteString("?.")
	}
	out.WriteString("(")
	out.WriteString(strings.Join(args, ", "))
	out.WriteString(")")
	return out.String()
}

// New is an expression node that invokes a constructor. The parser rejects
// optional chains as constructor targets, so Call.Fun never contains an
// optional entry here.
type New struct {
	NewPos token.Position // position of "new" keyword
	Call   *Call          // constructor call
}

func (x *New) exprNode() {}

func (x *New) Pos() token.Position { return x.NewPos }
func (x *New) End() token.Position { return x.Call.End() }

func (x *New) String() string { return "new " + x.Call.String() }

// Delete is an expression node that removes a property or element through a
// reference. Its operand is normally an access chain; evaluating a Delete
// whose chain short-circuits yields true without deleting anything.
type Delete struct {
	DeletePos token.Position // position of "delete" keyword
	X         Expr           // the target expression
}

func (x *Delete) exprNode() {}

func (x *Delete) Pos() token.Position { return x.DeletePos }
func (x *Delete) End() token.Position { return x.X.End() }

func (x *Delete) String() string { return "delete " + x.X.String() }

// Assign is an expression node that binds a value to a variable name.
type Assign struct {
	Name      *Ident         // target variable
	AssignPos token.Position // position of "="
	Value     Expr           // value expression
}

func (x *Assign) exprNode() {}

func (x *Assign) Pos() token.Position { return x.Name.Pos() }
func (x *Assign) End() token.Position { return x.Value.End() }

func (x *Assign) String() string {
	return x.Name.String() + " = " + x.Value.String()
}

// SetAttr is an expression node that assigns a value to an object attribute.
// Optional chains are rejected as assignment targets at parse time, so X
// never contains an optional entry.
type SetAttr struct {
	X         Expr           // object expression
	Period    token.Position // position of "."
	Attr      *Ident         // attribute name
	AssignPos token.Position // position of "="
	Value     Expr           // value expression
}

func (x *SetAttr) exprNode() {}

func (x *SetAttr) Pos() token.Position { return x.X.Pos() }
func (x *SetAttr) End() token.Position { return x.Value.End() }

func (x *SetAttr) String() string {
	return x.X.String() + "." + x.Attr.Name + " = " + x.Value.String()
}

// SetIndex is an expression node that assigns a value to a container element.
// Optional chains are rejected as assignment targets at parse time, so X
// never contains an optional entry.
type SetIndex struct {
	X         Expr           // container expression
	Lbrack    token.Position // position of "["
	Index     Expr           // index expression
	Rbrack    token.Position // position of "]"
	AssignPos token.Position // position of "="
	Value     Expr           // value expression
}

func (x *SetIndex) exprNode() {}

func (x *SetIndex) Pos() token.Position { return x.X.Pos() }
func (x *SetIndex) End() token.Position { return x.Value.End() }

func (x *SetIndex) String() string {
	return x.X.String() + "[" + x.Index.String() + "] = " + x.Value.String()
}
