// Package normalize rewrites an ESTree-shaped AST into three-address
// normal form: every expression flattened to depth 1, every side effect
// named through a fresh temporary in source evaluation order, every
// implicit global access and `with` binding made explicit, and every
// loop, switch, and labeled jump lowered to a single canonical shape.
//
// The public surface mirrors the configuration style the teacher's
// internal/interp.Options interface uses to keep a package's own
// configuration decoupled from its caller: a plain Options struct here,
// with functional-option constructors layered on top for ergonomic call
// sites.
package normalize

import (
	"github.com/cwbudde/go-esnorm/internal/ast"
	internalnorm "github.com/cwbudde/go-esnorm/internal/normalize"
)

// Option configures a Normalizer.
type Option func(*internalnorm.Options)

// WithBackwardsCompatible enables the legacy block-shape compatibility
// mode: empty blocks become a single EmptyStatement, a block whose last
// statement is an IfStatement gets a trailing EmptyStatement, and every
// two-armed if/else is unfolded into two one-armed ifs. It also disables
// reference_errors and unify_ret, matching the older engine's output
// shape.
func WithBackwardsCompatible() Option {
	return func(o *internalnorm.Options) { o.BackwardsCompatible = true }
}

// WithReferenceErrors enables guarded global reads: a read of an
// undeclared global name is checked against the global object at runtime
// and raises a ReferenceError when absent, rather than silently reading
// undefined.
func WithReferenceErrors() Option {
	return func(o *internalnorm.Options) { o.ReferenceErrors = true }
}

// WithUnifyRet rewrites every return in a function body into an
// assignment to a single hoisted return variable plus a break out of a
// single labeled block wrapping the whole body, so a function has
// exactly one exit point.
func WithUnifyRet() Option {
	return func(o *internalnorm.Options) { o.UnifyRet = true }
}

// WithUnfoldIfs splits every two-armed if/else emitted by mkIf into two
// one-armed ifs sharing a captured copy of the condition.
func WithUnfoldIfs() Option {
	return func(o *internalnorm.Options) { o.UnfoldIfs = true }
}

// Normalizer holds a resolved configuration and normalizes ASTs against
// it. The zero value (via New with no options) runs the default dialect:
// no reference-error guards, no unify_ret, no if-unfolding.
type Normalizer struct {
	opts internalnorm.Options
}

// New builds a Normalizer from the given options.
func New(opts ...Option) *Normalizer {
	var o internalnorm.Options
	for _, opt := range opts {
		opt(&o)
	}
	return &Normalizer{opts: internalnorm.Resolve(o)}
}

// Normalize rewrites root (a *Program, *FunctionDeclaration, or
// *FunctionExpression) into normal form. A single NormalizationError
// aborts the whole call; there is no partial result.
func (n *Normalizer) Normalize(root ast.Node) (ast.Node, error) {
	return internalnorm.Normalize(root, n.opts)
}

// Normalize is sugar over New(opts...).Normalize(root) for one-shot
// callers that do not need to reuse a configuration.
func Normalize(root ast.Node, opts ...Option) (ast.Node, error) {
	return New(opts...).Normalize(root)
}
