package normalize

import "github.com/cwbudde/go-esnorm/internal/ast"

// mkIf builds an IfStatement targeting condName. When unfold_ifs is set
// and both arms are non-empty, it splits into two one-armed ifs sharing a
// captured copy of the condition (spec.md §4.6). elseStmts == nil means
// there is no else arm at all; a non-nil (possibly zero-length) slice
// means an (empty) else arm is present.
func (e *entity) mkIf(condName string, thenStmts, elseStmts []ast.Statement) []ast.Statement {
	if e.opts.UnfoldIfs && len(thenStmts) > 0 && len(elseStmts) > 0 {
		capture := e.genTmp()
		out := []ast.Statement{assign(capture, ident(condName))}
		out = append(out, ast.NewIfStatement(ident(condName), e.block(thenStmts), nil))
		out = append(out, ast.NewIfStatement(ident(capture), e.block(nil), e.block(elseStmts)))
		return out
	}
	var alt ast.Statement
	if elseStmts != nil {
		alt = e.block(elseStmts)
	}
	return []ast.Statement{ast.NewIfStatement(ident(condName), e.block(thenStmts), alt)}
}

// ifInWrap builds the `if (nameTmp in objName) { then } else { els }`
// cascade step used by with-routed reads, writes, and calls (spec.md
// §4.3, Design Notes).
func (e *entity) ifInWrap(objName, nameTmp string, thenStmts, elseStmts []ast.Statement) ast.Statement {
	test := ast.NewBinaryExpression("in", ident(nameTmp), ident(objName))
	return ast.NewIfStatement(test, e.block(thenStmts), e.block(elseStmts))
}
