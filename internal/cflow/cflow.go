// Package cflow implements the control-flow helper spec.md §3/§6 names:
// MayCompleteNormally(stmt), used by the statement normalizer to decide
// whether a function body needs a trailing return and whether a switch
// case falls through to the next one.
//
// Grounded on the reachability checks the teacher's
// internal/semantic/analyze_statements.go runs to diagnose a function
// missing a return on some path, generalized into a standalone
// structured-completion predicate independent of DWScript's specific
// statement set.
package cflow

import "github.com/cwbudde/go-esnorm/internal/ast"

// MayCompleteNormally reports whether control can fall off the end of
// stmt rather than leaving it via return, throw, break, or continue.
func MayCompleteNormally(stmt ast.Statement) bool {
	switch s := stmt.(type) {
	case nil:
		return true
	case *ast.ReturnStatement, *ast.ThrowStatement, *ast.BreakStatement, *ast.ContinueStatement:
		return false
	case *ast.BlockStatement:
		if len(s.Body) == 0 {
			return true
		}
		return MayCompleteNormally(s.Body[len(s.Body)-1])
	case *ast.IfStatement:
		if s.Alternate == nil {
			return true
		}
		return MayCompleteNormally(s.Consequent) || MayCompleteNormally(s.Alternate)
	case *ast.TryStatement:
		if s.Finalizer != nil && !MayCompleteNormally(s.Finalizer) {
			return false
		}
		bodyNormal := MayCompleteNormally(s.Block)
		if s.Handler == nil {
			return bodyNormal
		}
		return bodyNormal || MayCompleteNormally(s.Handler.Body)
	case *ast.LabeledStatement:
		return MayCompleteNormally(s.Body)
	case *ast.SwitchStatement:
		if len(s.Cases) == 0 {
			return true
		}
		hasDefault := false
		for _, c := range s.Cases {
			if c.Test == nil {
				hasDefault = true
			}
		}
		if !hasDefault {
			return true
		}
		last := s.Cases[len(s.Cases)-1]
		if len(last.Consequent) == 0 {
			return true
		}
		return MayCompleteNormally(last.Consequent[len(last.Consequent)-1])
	case *ast.WhileStatement, *ast.DoWhileStatement, *ast.ForStatement, *ast.ForInStatement:
		// Loops may complete normally: the guard could be false on entry
		// (or, for for-in, the collection could be empty). Proving an
		// infinite, unbreakable loop never completes normally would need
		// a constant-folding pass this normalizer does not have.
		return true
	case *ast.WithStatement:
		return MayCompleteNormally(s.Body)
	default:
		// ExpressionStatement, VariableDeclaration, EmptyStatement,
		// DebuggerStatement, FunctionDeclaration: always fall through.
		return true
	}
}
