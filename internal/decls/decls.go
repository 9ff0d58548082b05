// Package decls implements the declaration-collector collaborator
// spec.md §3/§6 names: per function or program, the hoisted list of
// variable and function declarations, in source order.
//
// Grounded on the teacher's internal/semantic/passes/declaration_pass.go
// idea of a dedicated forward-collection pass that runs before the real
// analysis so hoisting and forward references work, generalized here
// from DWScript's explicit forward-declared functions to var/function
// hoisting that stops at function boundaries (`var` ignores block
// scoping but never crosses into a nested function or program body).
package decls

import (
	"github.com/cwbudde/go-esnorm/internal/ast"
	"github.com/cwbudde/go-esnorm/internal/scope"
)

// Collect walks body, which is the top of a function body or a whole
// program, and returns every VariableDeclarator and FunctionDeclaration
// hoisted to it, in source order. It never descends into a nested
// FunctionDeclaration or FunctionExpression body — those get their own
// Collect call when the entity normalizer visits them.
func Collect(body []ast.Statement) []*scope.Decl {
	var out []*scope.Decl
	for _, stmt := range body {
		collectStmt(stmt, &out)
	}
	return out
}

func collectStmt(stmt ast.Statement, out *[]*scope.Decl) {
	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		for _, d := range s.Declarations {
			*out = append(*out, &scope.Decl{Name: d.ID.Name, Node: d})
		}
	case *ast.FunctionDeclaration:
		*out = append(*out, &scope.Decl{Name: s.ID.Name, Node: s})
	case *ast.BlockStatement:
		for _, c := range s.Body {
			collectStmt(c, out)
		}
	case *ast.IfStatement:
		collectStmt(s.Consequent, out)
		if s.Alternate != nil {
			collectStmt(s.Alternate, out)
		}
	case *ast.WhileStatement:
		collectStmt(s.Body, out)
	case *ast.DoWhileStatement:
		collectStmt(s.Body, out)
	case *ast.ForStatement:
		if vd, ok := s.Init.(*ast.VariableDeclaration); ok {
			collectStmt(vd, out)
		}
		collectStmt(s.Body, out)
	case *ast.ForInStatement:
		if vd, ok := s.Left.(*ast.VariableDeclaration); ok {
			collectStmt(vd, out)
		}
		collectStmt(s.Body, out)
	case *ast.SwitchStatement:
		for _, c := range s.Cases {
			for _, cs := range c.Consequent {
				collectStmt(cs, out)
			}
		}
	case *ast.TryStatement:
		collectStmt(s.Block, out)
		if s.Handler != nil {
			collectStmt(s.Handler.Body, out)
		}
		if s.Finalizer != nil {
			collectStmt(s.Finalizer, out)
		}
	case *ast.LabeledStatement:
		collectStmt(s.Body, out)
	case *ast.WithStatement:
		collectStmt(s.Body, out)
	default:
		// ExpressionStatement, ReturnStatement, ThrowStatement,
		// BreakStatement, ContinueStatement, EmptyStatement,
		// DebuggerStatement: no declarations to hoist.
	}
}
