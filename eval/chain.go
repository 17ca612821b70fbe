package eval

import (
	"context"

	"github.com/deepnoodle-ai/chainexpr/ast"
	"github.com/deepnoodle-ai/chainexpr/errz"
	"github.com/deepnoodle-ai/chainexpr/object"
)

// chainResult carries the state of an in-progress chain evaluation.
//
// A chain is the maximal spine of property accesses, index expressions, and
// calls over a single base, e.g. a?.b.c[i](x). When an optional entry (?.)
// observes a nil base, short becomes true and every remaining link in the
// spine is skipped without evaluating its subexpressions. The spine ends at
// the nearest grouping parentheses or at the top of the expression, where
// the short-circuit collapses to nil.
//
// receiver tracks the object a value was read from, so that a method
// resolved through ".attr" or "[key]" is invoked with its object available
// through the context; key is the property name or index it was read with.
// Call results carry neither.
type chainResult struct {
	value    object.Object
	receiver object.Object
	key      object.Object
	short    bool
}

// CompletionKind distinguishes how a chain evaluation completed.
type CompletionKind int

const (
	// NormalValue means the chain resolved to a value.
	NormalValue CompletionKind = iota

	// ShortCircuited means an optional entry observed nil and the rest of
	// the chain was skipped.
	ShortCircuited
)

// Ref identifies the property or element the final link of a chain resolved
// through: Base is the object holding it and Key is the property name or
// index.
type Ref struct {
	Base object.Object
	Key  object.Object
}

// Completion is the result of EvalChain. A short-circuited completion has no
// value or reference. Ref is set only when the final link was a property or
// index access; call results are plain values.
type Completion struct {
	Kind  CompletionKind
	Value object.Object
	Ref   *Ref
}

// evalChain evaluates a chain rooted at the given node and collapses a
// short-circuit to nil. This is the boundary of the chain's propagation
// unit.
func (e *Evaluator) evalChain(ctx context.Context, node ast.Node, env *Env) (object.Object, error) {
	result, err := e.evalChainLink(ctx, node, env)
	if err != nil {
		return nil, err
	}
	if result.short {
		e.logger.Trace().Str("chain", node.String()).Msg("chain short-circuited")
		return object.Nil, nil
	}
	return result.value, nil
}

// EvalChain evaluates a chain rooted at the given node and reports how it
// completed, including the final reference for property and index accesses.
// Most callers want Eval, which collapses a short-circuit to nil; EvalChain
// is for hosts that need to distinguish a short-circuit from a nil value or
// to write through the final reference.
func (e *Evaluator) EvalChain(ctx context.Context, node ast.Node, env *Env) (Completion, error) {
	result, err := e.evalChainLink(ctx, node, env)
	if err != nil {
		return Completion{}, err
	}
	if result.short {
		return Completion{Kind: ShortCircuited}, nil
	}
	completion := Completion{Kind: NormalValue, Value: result.value}
	if result.receiver != nil && result.key != nil {
		completion.Ref = &Ref{Base: result.receiver, Key: result.key}
	}
	return completion, nil
}

// evalChainLink evaluates one link of a chain, recursing down the spine to
// the base. The base is evaluated exactly once, on the way down; link
// results propagate back up unless a short-circuit cuts them off.
func (e *Evaluator) evalChainLink(ctx context.Context, node ast.Node, env *Env) (chainResult, error) {
	if err := ctx.Err(); err != nil {
		return chainResult{}, err
	}
	switch node := node.(type) {
	case *ast.GetAttr:
		return e.evalAttrLink(ctx, node, env)
	case *ast.Index:
		return e.evalIndexLink(ctx, node, env)
	case *ast.Call:
		return e.evalCallLink(ctx, node, env)
	default:
		// The chain base: any non-link expression, including a grouped
		// expression, which evaluates as a complete unit of its own.
		value, err := e.Eval(ctx, node, env)
		if err != nil {
			return chainResult{}, err
		}
		return chainResult{value: value}, nil
	}
}

func (e *Evaluator) evalAttrLink(ctx context.Context, node *ast.GetAttr, env *Env) (chainResult, error) {
	base, err := e.evalChainLink(ctx, node.X, env)
	if err != nil || base.short {
		return base, err
	}
	if object.IsNil(base.value) {
		if node.Optional {
			return chainResult{short: true}, nil
		}
		return chainResult{}, errz.Nullishf("cannot read property %q of nil",
			node.Attr.Name)
	}
	value, found := base.value.GetAttr(node.Attr.Name)
	if !found {
		return chainResult{}, errz.Typef("type %s has no attribute %q",
			base.value.Type(), node.Attr.Name)
	}
	return chainResult{
		value:    value,
		receiver: base.value,
		key:      object.NewString(node.Attr.Name),
	}, nil
}

func (e *Evaluator) evalIndexLink(ctx context.Context, node *ast.Index, env *Env) (chainResult, error) {
	base, err := e.evalChainLink(ctx, node.X, env)
	if err != nil || base.short {
		return base, err
	}
	if object.IsNil(base.value) {
		if node.Optional {
			// The index expression is skipped along with the access
			return chainResult{short: true}, nil
		}
		return chainResult{}, errz.Nullishf("cannot read an element of nil")
	}
	container, ok := base.value.(object.Container)
	if !ok {
		return chainResult{}, errz.Typef("object does not support indexing (got %s)",
			base.value.Type())
	}
	index, err := e.Eval(ctx, node.Index, env)
	if err != nil {
		return chainResult{}, err
	}
	value, err := container.GetItem(index)
	if err != nil {
		return chainResult{}, err
	}
	return chainResult{value: value, receiver: base.value, key: index}, nil
}

func (e *Evaluator) evalCallLink(ctx context.Context, node *ast.Call, env *Env) (chainResult, error) {
	fun, err := e.evalChainLink(ctx, node.Fun, env)
	if err != nil || fun.short {
		return fun, err
	}
	if node.Optional && object.IsNil(fun.value) {
		// Arguments are skipped along with the call
		return chainResult{short: true}, nil
	}
	// Arguments are evaluated left to right before the callee is checked,
	// so their side effects happen even when the call itself fails.
	args := make([]object.Object, 0, len(node.Args))
	for _, arg := range node.Args {
		value, err := e.Eval(ctx, arg, env)
		if err != nil {
			return chainResult{}, err
		}
		args = append(args, value)
	}
	if object.IsNil(fun.value) {
		return chainResult{}, errz.Nullishf("cannot call %s (it is nil)",
			node.Fun.String())
	}
	callable, ok := fun.value.(object.Callable)
	if !ok {
		return chainResult{}, errz.NotCallablef("%s is not a function (got %s)",
			node.Fun.String(), fun.value.Type())
	}
	callCtx := ctx
	if fun.receiver != nil {
		callCtx = object.WithReceiver(ctx, fun.receiver)
	}
	result, err := callable.Call(callCtx, args...)
	if err != nil {
		return chainResult{}, err
	}
	if result == nil {
		result = object.Nil
	}
	return chainResult{value: result}, nil
}

func (e *Evaluator) evalDelete(ctx context.Context, node *ast.Delete, env *Env) (object.Object, error) {
	return e.EvalChainForDelete(ctx, node.X, env)
}

// EvalChainForDelete evaluates a chain as the target of a delete expression:
// the final link's reference is resolved but its value is never read, and the
// entry is removed through that reference. Deleting through a chain that
// short-circuits is a no-op that yields true: nothing needed to be removed.
func (e *Evaluator) EvalChainForDelete(ctx context.Context, target ast.Expr, env *Env) (object.Object, error) {
	switch target := target.(type) {
	case *ast.GetAttr:
		base, err := e.evalChainLink(ctx, target.X, env)
		if err != nil {
			return nil, err
		}
		if base.short {
			return object.True, nil
		}
		if object.IsNil(base.value) {
			if target.Optional {
				return object.True, nil
			}
			return nil, errz.Nullishf("cannot delete property %q of nil",
				target.Attr.Name)
		}
		return e.deleteItem(base.value, object.NewString(target.Attr.Name))
	case *ast.Index:
		base, err := e.evalChainLink(ctx, target.X, env)
		if err != nil {
			return nil, err
		}
		if base.short {
			return object.True, nil
		}
		if object.IsNil(base.value) {
			if target.Optional {
				return object.True, nil
			}
			return nil, errz.Nullishf("cannot delete an element of nil")
		}
		index, err := e.Eval(ctx, target.Index, env)
		if err != nil {
			return nil, err
		}
		return e.deleteItem(base.value, index)
	default:
		return nil, errz.Typef("invalid delete target: %s", target.String())
	}
}

func (e *Evaluator) deleteItem(obj, key object.Object) (object.Object, error) {
	container, ok := obj.(object.Container)
	if !ok {
		return nil, errz.Typef("object does not support deletion (got %s)", obj.Type())
	}
	deleted, err := container.DelItem(key)
	if err != nil {
		return nil, err
	}
	return object.NewBool(deleted), nil
}
