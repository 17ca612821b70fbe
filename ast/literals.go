package ast

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/chainexpr/internal/token"
)

// Int is an expression node that holds an integer literal.
type Int struct {
	ValuePos token.Position // position of the literal
	Literal  string         // the literal text (e.g., "42")
	Value    int64          // the parsed value
}

func (x *Int) exprNode() {}

func (x *Int) Pos() token.Position { return x.ValuePos }
func (x *Int) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }

func (x *Int) String() string { return x.Literal }

// Float is an expression node that holds a floating point literal.
type Float struct {
	ValuePos token.Position // position of the literal
	Literal  string         // the literal text
	Value    float64        // the parsed value
}

func (x *Float) exprNode() {}

func (x *Float) Pos() token.Position { return x.ValuePos }
func (x *Float) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }

func (x *Float) String() string { return x.Literal }

// Nil is an expression node that holds a nil literal.
type Nil struct {
	NilPos token.Position // position of "nil" keyword
}

func (x *Nil) exprNode() {}

func (x *Nil) Pos() token.Position { return x.NilPos }
func (x *Nil) End() token.Position { return x.NilPos.Advance(3) } // len("nil")

func (x *Nil) String() string { return "nil" }

// Bool is an expression node that holds a boolean literal.
type Bool struct {
	ValuePos token.Position // position of "true" or "false"
	Literal  string         // "true" or "false"
	Value    bool           // the boolean value
}

func (x *Bool) exprNode() {}

func (x *Bool) Pos() token.Position { return x.ValuePos }
func (x *Bool) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }

func (x *Bool) String() string { return x.Literal }

// String is an expression node that holds a string literal.
type String struct {
	ValuePos token.Position // position of opening quote
	Literal  string         // the unquoted string value
	EndPos   token.Position // position just after the closing quote
}

func (x *String) exprNode() {}

func (x *String) Pos() token.Position { return x.ValuePos }
func (x *String) End() token.Position { return x.EndPos }

func (x *String) String() string { return fmt.Sprintf("%q", x.Literal) }

// List is an expression node that holds a list literal.
type List struct {
	Lbrack token.Position // position of "["
	Items  []Expr         // list items
	Rbrack token.Position // position of "]"
}

func (x *List) exprNode() {}

func (x *List) Pos() token.Position { return x.Lbrack }
func (x *List) End() token.Position { return x.Rbrack.Advance(1) }

func (x *List) String() string {
	items := make([]string, 0, len(x.Items))
	for _, item := range x.Items {
		items = append(items, item.String())
	}
	return "[" + strings.Join(items, ", ") + "]"
}

// MapItem is one key/value entry within a map literal.
type MapItem struct {
	Key   Expr // entry key
	Value Expr // entry value
}

// Map is an expression node that holds a map literal.
type Map struct {
	Lbrace token.Position // position of "{"
	Items  []MapItem      // map entries
	Rbrace token.Position // position of "}"
}

func (x *Map) exprNode() {}

func (x *Map) Pos() token.Position { return x.Lbrace }
func (x *Map) End() token.Position { return x.Rbrace.Advance(1) }

func (x *Map) String() string {
	var out bytes.Buffer
	out.WriteString("{")
	for i, item := range x.Items {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(item.Key.String())
		out.WriteString(": ")
		out.WriteString(item.Value.String())
	}
	out.WriteString("}")
	return out.String()
}
