package normalize

import (
	"github.com/cwbudde/go-esnorm/internal/ast"
	"github.com/cwbudde/go-esnorm/internal/decls"
	"github.com/cwbudde/go-esnorm/internal/normerr"
	"github.com/cwbudde/go-esnorm/internal/scope"
)

// Normalize runs the full rewrite spec.md §4 describes against root,
// which must be a *ast.Program, *ast.FunctionDeclaration, or
// *ast.FunctionExpression. It returns the normalized replacement, or the
// single fatal NormalizationError that aborted the call.
func Normalize(root ast.Node, opts Options) (ast.Node, error) {
	opts = Resolve(opts)
	sh := &shared{}

	switch r := root.(type) {
	case *ast.Program:
		hoisted := decls.Collect(r.Body)
		e := newEntity(sh, opts, scope.NewGlobal(hoisted))
		prog, err := e.finalizeProgram(r)
		if err != nil {
			return nil, err
		}
		return prog, nil

	case *ast.FunctionDeclaration:
		hoisted := decls.Collect(r.Body.Body)
		e := newEntity(sh, opts, scope.NewFunction(scope.NewGlobal(nil), paramBindings(r.Params), hoisted))
		fe, err := e.finalizeFunction(r.ID, r.Params, r.Body, r, r.Pos())
		if err != nil {
			return nil, err
		}
		return fe, nil

	case *ast.FunctionExpression:
		hoisted := decls.Collect(r.Body.Body)
		e := newEntity(sh, opts, scope.NewFunction(scope.NewGlobal(nil), paramBindings(r.Params), hoisted))
		fe, err := e.finalizeFunction(r.ID, r.Params, r.Body, r, r.Pos())
		if err != nil {
			return nil, err
		}
		return fe, nil

	default:
		return nil, normerr.New(normerr.ErrUnsupportedStatement, "root must be a Program, FunctionDeclaration, or FunctionExpression", root.Pos())
	}
}
