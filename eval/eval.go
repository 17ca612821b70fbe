// Package eval provides a tree-walking evaluator for chain expressions.
//
// The evaluator's distinguishing behavior is how it handles optional
// chaining: when an optional entry (?.) observes a nil base, the entire
// remainder of the enclosing chain is skipped, including argument lists and
// index expressions that would otherwise run. Grouping parentheses bound
// that propagation. See chain.go for the details.
package eval

import (
	"context"

	"github.com/deepnoodle-ai/chainexpr/ast"
	"github.com/deepnoodle-ai/chainexpr/errz"
	"github.com/deepnoodle-ai/chainexpr/object"
	"github.com/deepnoodle-ai/chainexpr/op"
	"github.com/rs/zerolog"
)

// Evaluator evaluates AST nodes against an environment.
type Evaluator struct {
	logger zerolog.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger attaches a logger used for trace-level evaluation logging.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Evaluator) {
		e.logger = logger
	}
}

// New returns a new Evaluator. Logging is disabled unless WithLogger is used.
func New(options ...Option) *Evaluator {
	e := &Evaluator{logger: zerolog.Nop()}
	for _, opt := range options {
		opt(e)
	}
	return e
}

// Eval evaluates the given node and returns the resulting object.
func (e *Evaluator) Eval(ctx context.Context, node ast.Node, env *Env) (object.Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch node := node.(type) {
	case *ast.Program:
		return e.evalProgram(ctx, node, env)
	case *ast.Int:
		return object.NewInt(node.Value), nil
	case *ast.Float:
		return object.NewFloat(node.Value), nil
	case *ast.Bool:
		return object.NewBool(node.Value), nil
	case *ast.Nil:
		return object.Nil, nil
	case *ast.String:
		return object.NewString(node.Literal), nil
	case *ast.List:
		return e.evalList(ctx, node, env)
	case *ast.Map:
		return e.evalMap(ctx, node, env)
	case *ast.Ident:
		return e.evalIdent(node, env)
	case *ast.Prefix:
		return e.evalPrefix(ctx, node, env)
	case *ast.Infix:
		return e.evalInfix(ctx, node, env)
	case *ast.Ternary:
		return e.evalTernary(ctx, node, env)
	case *ast.Grouped:
		return e.Eval(ctx, node.X, env)
	case *ast.GetAttr, *ast.Index, *ast.Call:
		return e.evalChain(ctx, node, env)
	case *ast.New:
		return e.evalNew(ctx, node, env)
	case *ast.Delete:
		return e.evalDelete(ctx, node, env)
	case *ast.Assign:
		return e.evalAssign(ctx, node, env)
	case *ast.SetAttr:
		return e.evalSetAttr(ctx, node, env)
	case *ast.SetIndex:
		return e.evalSetIndex(ctx, node, env)
	}
	return nil, errz.Typef("unsupported syntax node: %T", node)
}

func (e *Evaluator) evalProgram(ctx context.Context, prog *ast.Program, env *Env) (object.Object, error) {
	var result object.Object = object.Nil
	for _, stmt := range prog.Stmts {
		value, err := e.Eval(ctx, stmt, env)
		if err != nil {
			return nil, err
		}
		result = value
	}
	return result, nil
}

func (e *Evaluator) evalIdent(node *ast.Ident, env *Env) (object.Object, error) {
	if value, found := env.Get(node.Name); found {
		return value, nil
	}
	return nil, errz.Namef("undefined variable %q", node.Name)
}

func (e *Evaluator) evalList(ctx context.Context, node *ast.List, env *Env) (object.Object, error) {
	items := make([]object.Object, 0, len(node.Items))
	for _, item := range node.Items {
		value, err := e.Eval(ctx, item, env)
		if err != nil {
			return nil, err
		}
		items = append(items, value)
	}
	return object.NewList(items), nil
}

func (e *Evaluator) evalMap(ctx context.Context, node *ast.Map, env *Env) (object.Object, error) {
	items := make(map[string]object.Object, len(node.Items))
	for _, item := range node.Items {
		key, ok := item.Key.(*ast.String)
		if !ok {
			return nil, errz.Typef("invalid map key: %s", item.Key.String())
		}
		value, err := e.Eval(ctx, item.Value, env)
		if err != nil {
			return nil, err
		}
		items[key.Literal] = value
	}
	return object.NewMap(items), nil
}

func (e *Evaluator) evalPrefix(ctx context.Context, node *ast.Prefix, env *Env) (object.Object, error) {
	value, err := e.Eval(ctx, node.X, env)
	if err != nil {
		return nil, err
	}
	switch node.Op {
	case "!":
		return object.NewBool(!value.IsTruthy()), nil
	case "-":
		switch value := value.(type) {
		case *object.Int:
			return object.NewInt(-value.Value()), nil
		case *object.Float:
			return object.NewFloat(-value.Value()), nil
		default:
			return nil, errz.Typef("unsupported operand for -: %s", value.Type())
		}
	}
	return nil, errz.Typef("unknown prefix operator: %s", node.Op)
}

var binaryOps = map[string]op.BinaryOpType{
	"+":  op.Add,
	"-":  op.Subtract,
	"*":  op.Multiply,
	"/":  op.Divide,
	"%":  op.Modulo,
	"**": op.Power,
}

var compareOps = map[string]op.CompareOpType{
	"<":  op.LessThan,
	"<=": op.LessThanOrEqual,
	"==": op.Equal,
	"!=": op.NotEqual,
	">":  op.GreaterThan,
	">=": op.GreaterThanOrEqual,
}

func (e *Evaluator) evalInfix(ctx context.Context, node *ast.Infix, env *Env) (object.Object, error) {
	// Logical operators short-circuit on the left operand's truthiness
	switch node.Op {
	case "&&":
		left, err := e.Eval(ctx, node.X, env)
		if err != nil {
			return nil, err
		}
		if !left.IsTruthy() {
			return left, nil
		}
		return e.Eval(ctx, node.Y, env)
	case "||":
		left, err := e.Eval(ctx, node.X, env)
		if err != nil {
			return nil, err
		}
		if left.IsTruthy() {
			return left, nil
		}
		return e.Eval(ctx, node.Y, env)
	}
	left, err := e.Eval(ctx, node.X, env)
	if err != nil {
		return nil, err
	}
	right, err := e.Eval(ctx, node.Y, env)
	if err != nil {
		return nil, err
	}
	if opType, found := binaryOps[node.Op]; found {
		return object.BinaryOp(opType, left, right)
	}
	if opType, found := compareOps[node.Op]; found {
		return object.Compare(opType, left, right)
	}
	return nil, errz.Typef("unknown operator: %s", node.Op)
}

func (e *Evaluator) evalTernary(ctx context.Context, node *ast.Ternary, env *Env) (object.Object, error) {
	cond, err := e.Eval(ctx, node.Cond, env)
	if err != nil {
		return nil, err
	}
	if cond.IsTruthy() {
		return e.Eval(ctx, node.IfTrue, env)
	}
	return e.Eval(ctx, node.IfFalse, env)
}

func (e *Evaluator) evalAssign(ctx context.Context, node *ast.Assign, env *Env) (object.Object, error) {
	value, err := e.Eval(ctx, node.Value, env)
	if err != nil {
		return nil, err
	}
	env.Set(node.Name.Name, value)
	return value, nil
}

func (e *Evaluator) evalSetAttr(ctx context.Context, node *ast.SetAttr, env *Env) (object.Object, error) {
	obj, err := e.Eval(ctx, node.X, env)
	if err != nil {
		return nil, err
	}
	if object.IsNil(obj) {
		return nil, errz.Nullishf("cannot set property %q of nil", node.Attr.Name)
	}
	value, err := e.Eval(ctx, node.Value, env)
	if err != nil {
		return nil, err
	}
	if err := obj.SetAttr(node.Attr.Name, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (e *Evaluator) evalSetIndex(ctx context.Context, node *ast.SetIndex, env *Env) (object.Object, error) {
	obj, err := e.Eval(ctx, node.X, env)
	if err != nil {
		return nil, err
	}
	if object.IsNil(obj) {
		return nil, errz.Nullishf("cannot set an element of nil")
	}
	container, ok := obj.(object.Container)
	if !ok {
		return nil, errz.Typef("object does not support index assignment (got %s)", obj.Type())
	}
	index, err := e.Eval(ctx, node.Index, env)
	if err != nil {
		return nil, err
	}
	value, err := e.Eval(ctx, node.Value, env)
	if err != nil {
		return nil, err
	}
	if err := container.SetItem(index, value); err != nil {
		return nil, err
	}
	return value, nil
}

// evalNew invokes a constructor. Construction evaluates the target and
// arguments like a normal call; if the constructor returns nil, a new empty
// map stands in as the constructed object.
func (e *Evaluator) evalNew(ctx context.Context, node *ast.New, env *Env) (object.Object, error) {
	result, err := e.evalChain(ctx, node.Call, env)
	if err != nil {
		return nil, err
	}
	if object.IsNil(result) {
		return object.NewMap(nil), nil
	}
	return result, nil
}
