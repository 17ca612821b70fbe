// Package chainexpr evaluates expressions with JavaScript-style optional
// chaining over maps, lists, and host-provided objects.
//
// Example usage:
//
//	result, err := chainexpr.Eval(ctx, "user?.address?.city",
//		chainexpr.WithGlobal("user", user))
//
// An optional entry (?.) that observes a nil base short-circuits the entire
// remainder of its chain, skipping argument lists and index expressions,
// and the chain evaluates to nil. A plain access on nil is an error.
package chainexpr

import (
	"context"

	"github.com/deepnoodle-ai/chainexpr/ast"
	"github.com/deepnoodle-ai/chainexpr/builtins"
	"github.com/deepnoodle-ai/chainexpr/eval"
	"github.com/deepnoodle-ai/chainexpr/object"
	"github.com/deepnoodle-ai/chainexpr/parser"
	"github.com/rs/zerolog"
)

type config struct {
	globals         map[string]object.Object
	filename        string
	withoutDefaults bool
	logger          zerolog.Logger
}

// Option configures evaluation.
type Option func(*config)

// WithGlobal binds one name in the global environment.
func WithGlobal(name string, value object.Object) Option {
	return func(cfg *config) {
		cfg.globals[name] = value
	}
}

// WithGlobals binds multiple names in the global environment.
func WithGlobals(globals map[string]object.Object) Option {
	return func(cfg *config) {
		for name, value := range globals {
			cfg.globals[name] = value
		}
	}
}

// WithFilename attaches a filename to the source for error reporting.
func WithFilename(filename string) Option {
	return func(cfg *config) {
		cfg.filename = filename
	}
}

// WithoutDefaultGlobals disables the default builtin functions.
func WithoutDefaultGlobals() Option {
	return func(cfg *config) {
		cfg.withoutDefaults = true
	}
}

// WithLogger attaches a logger used for trace-level evaluation logging.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

func newConfig(options ...Option) *config {
	cfg := &config{
		globals: map[string]object.Object{},
		logger:  zerolog.Nop(),
	}
	for _, opt := range options {
		opt(cfg)
	}
	return cfg
}

func (cfg *config) env() *eval.Env {
	env := eval.NewEnv(nil)
	if !cfg.withoutDefaults {
		for name, value := range builtins.Defaults() {
			env.Declare(name, value)
		}
	}
	for name, value := range cfg.globals {
		env.Declare(name, value)
	}
	return env
}

// Eval parses and evaluates the given source code.
func Eval(ctx context.Context, source string, options ...Option) (object.Object, error) {
	cfg := newConfig(options...)
	prog, err := parse(ctx, source, cfg)
	if err != nil {
		return nil, err
	}
	evaluator := eval.New(eval.WithLogger(cfg.logger))
	return evaluator.Eval(ctx, prog, cfg.env())
}

// Parse parses the given source code and returns the AST.
func Parse(ctx context.Context, source string, options ...Option) (*ast.Program, error) {
	return parse(ctx, source, newConfig(options...))
}

func parse(ctx context.Context, source string, cfg *config) (*ast.Program, error) {
	var opts []parser.Option
	if cfg.filename != "" {
		opts = append(opts, parser.WithFilename(cfg.filename))
	}
	return parser.Parse(ctx, source, opts...)
}
