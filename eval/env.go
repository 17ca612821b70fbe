package eval

import "github.com/deepnoodle-ai/chainexpr/object"

// Env holds variable bindings for evaluation. Environments nest: lookups walk
// outward through parents, and assignments update the nearest scope already
// holding the name, declaring in the local scope otherwise.
type Env struct {
	parent *Env
	vars   map[string]object.Object
}

// NewEnv returns an empty environment with the given parent. A nil parent
// creates a root environment.
func NewEnv(parent *Env) *Env {
	return &Env{
		parent: parent,
		vars:   map[string]object.Object{},
	}
}

// Get looks up a name, walking outward through parent scopes.
func (e *Env) Get(name string) (object.Object, bool) {
	for env := e; env != nil; env = env.parent {
		if value, found := env.vars[name]; found {
			return value, true
		}
	}
	return nil, false
}

// Set binds a value to a name. If a parent scope already holds the name, that
// binding is updated; otherwise the name is declared in this scope.
func (e *Env) Set(name string, value object.Object) {
	for env := e; env != nil; env = env.parent {
		if _, found := env.vars[name]; found {
			env.vars[name] = value
			return
		}
	}
	e.vars[name] = value
}

// Declare binds a value to a name in this scope, shadowing any binding of the
// same name in a parent scope.
func (e *Env) Declare(name string, value object.Object) {
	e.vars[name] = value
}

// Names returns the names bound directly in this scope.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.vars))
	for name := range e.vars {
		names = append(names, name)
	}
	return names
}
