package normalize

import (
	"github.com/cwbudde/go-esnorm/internal/ast"
	"github.com/cwbudde/go-esnorm/internal/cflow"
	"github.com/cwbudde/go-esnorm/internal/normerr"
	"github.com/cwbudde/go-esnorm/internal/scope"
)

// normalizeStmtList concatenates the normalized form of each statement in
// stmts, short-circuiting as soon as a fatal error latches.
func (e *entity) normalizeStmtList(stmts []ast.Statement, brkLabel, contLabel string) []ast.Statement {
	var out []ast.Statement
	for _, s := range stmts {
		if e.failed() {
			return out
		}
		out = append(out, e.normalizeStmt(s, brkLabel, contLabel)...)
	}
	return out
}

// normalizeStmt is normalizeStatement from spec.md §4.4. brkLabel/
// contLabel name the enclosing loop or switch's break/continue targets;
// both may be empty only outside any such context, where an unlabeled
// break/continue is a fatal error.
func (e *entity) normalizeStmt(stmt ast.Statement, brkLabel, contLabel string) []ast.Statement {
	if e.failed() {
		return nil
	}
	switch s := stmt.(type) {
	case *ast.EmptyStatement:
		return nil

	case *ast.ExpressionStatement:
		stmts, _ := e.normalizeExpr(s.Expression, "")
		return stmts

	case *ast.VariableDeclaration:
		var out []ast.Statement
		for _, d := range s.Declarations {
			if d.Init == nil {
				continue
			}
			out = append(out, e.normalizeIdentifierAssignExprStmt(d.ID, d.Init)...)
		}
		return out

	case *ast.FunctionDeclaration:
		return nil

	case *ast.BlockStatement:
		return e.normalizeStmtList(s.Body, brkLabel, contLabel)

	case *ast.ReturnStatement:
		return e.normalizeReturn(s)

	case *ast.DebuggerStatement:
		return []ast.Statement{s}

	case *ast.IfStatement:
		return e.normalizeIf(s, brkLabel, contLabel)

	case *ast.ThrowStatement:
		stmts, tmp := e.normalizeExpr(s.Argument, "")
		return append(stmts, ast.NewThrowStatement(ident(tmp)))

	case *ast.TryStatement:
		return e.normalizeTry(s, brkLabel, contLabel)

	case *ast.LabeledStatement:
		return e.normalizeLabeled(s, brkLabel, contLabel)

	case *ast.BreakStatement:
		if s.Label != "" {
			return []ast.Statement{ast.NewBreakStatement(s.Label)}
		}
		if brkLabel == "" {
			e.fail(normerr.ErrUnlabeledBreak, "break outside any loop or switch", s.Pos())
			return nil
		}
		return []ast.Statement{ast.NewBreakStatement(brkLabel)}

	case *ast.ContinueStatement:
		if s.Label != "" {
			if target, ok := e.contTargets[s.Label]; ok {
				return []ast.Statement{ast.NewBreakStatement(target)}
			}
			return []ast.Statement{ast.NewBreakStatement(s.Label)}
		}
		if contLabel == "" {
			e.fail(normerr.ErrUnlabeledContinue, "continue outside any loop", s.Pos())
			return nil
		}
		return []ast.Statement{ast.NewBreakStatement(contLabel)}

	case *ast.WhileStatement:
		return e.normalizeWhile(s, "")

	case *ast.DoWhileStatement:
		return e.normalizeDoWhile(s, "")

	case *ast.ForStatement:
		return e.normalizeFor(s, "")

	case *ast.ForInStatement:
		return e.normalizeForIn(s, "")

	case *ast.SwitchStatement:
		return e.normalizeSwitch(s, contLabel)

	case *ast.WithStatement:
		return e.normalizeWith(s, brkLabel, contLabel)

	default:
		e.failf(normerr.ErrUnsupportedStatement, stmt.Pos(), "unsupported statement kind %T", stmt)
		return nil
	}
}

// normalizeIdentifierAssignExprStmt normalizes a declarator initializer
// for its statement-position side effects only; the value itself is
// discarded once computed.
func (e *entity) normalizeIdentifierAssignExprStmt(id *ast.Identifier, init ast.Expression) []ast.Statement {
	stmts, _ := e.normalizeIdentifierAssignExpr(id, init, "")
	return stmts
}

func (e *entity) normalizeReturn(s *ast.ReturnStatement) []ast.Statement {
	if e.opts.UnifyRet {
		var stmts []ast.Statement
		if s.Argument != nil {
			rstmts, tmp := e.normalizeExpr(s.Argument, e.retVar)
			stmts = append(stmts, rstmts...)
			_ = tmp
		} else {
			stmts = append(stmts, assign(e.retVar, ast.NewNullLiteral()))
		}
		stmts = append(stmts, ast.NewBreakStatement(e.retLabel))
		return stmts
	}
	if s.Argument == nil {
		return []ast.Statement{ast.NewReturnStatement(nil)}
	}
	stmts, tmp := e.normalizeExpr(s.Argument, "")
	return append(stmts, ast.NewReturnStatement(ident(tmp)))
}

func (e *entity) normalizeIf(s *ast.IfStatement, brkLabel, contLabel string) []ast.Statement {
	tstmts, tTmp := e.normalizeExpr(s.Test, "")
	thenStmts := e.normalizeStmt(s.Consequent, brkLabel, contLabel)
	var elseStmts []ast.Statement
	if s.Alternate != nil {
		elseStmts = nonNil(e.normalizeStmt(s.Alternate, brkLabel, contLabel))
	}
	return append(tstmts, e.mkIf(tTmp, thenStmts, elseStmts)...)
}

// normalizeTry implements spec.md §4.4's TryStatement case: a
// try/catch/finally first rewrites to nested try{try{}catch{}}finally{}
// and is renormalized; try/finally with an empty finalizer collapses to
// the try body; otherwise a single-handler try is emitted directly.
func (e *entity) normalizeTry(s *ast.TryStatement, brkLabel, contLabel string) []ast.Statement {
	if s.Handler != nil && s.Finalizer != nil {
		inner := ast.NewTryStatement(s.Block, s.Handler, nil)
		rewritten := ast.NewTryStatement(ast.NewBlockStatement(inner), nil, s.Finalizer)
		return e.normalizeTry(rewritten, brkLabel, contLabel)
	}

	if s.Handler == nil && s.Finalizer != nil && len(s.Finalizer.Body) == 0 {
		return e.normalizeStmt(s.Block, brkLabel, contLabel)
	}

	blockStmts := e.normalizeStmt(s.Block, brkLabel, contLabel)

	var handler *ast.CatchClause
	if s.Handler != nil {
		var param *scope.Binding
		if s.Handler.Param != nil {
			param = &scope.Binding{Name: s.Handler.Param.Name, Node: s.Handler.Param}
		}
		catchScope := scope.NewCatch(e.sc, param)
		child := e.child(catchScope)
		child.retLabel, child.retVar, child.contTargets = e.retLabel, e.retVar, e.contTargets
		child.atProgramRoot = e.atProgramRoot
		handlerStmts := child.normalizeStmtList(s.Handler.Body.Body, brkLabel, contLabel)
		e.tmps = append(e.tmps, child.tmps...)
		if e.failed() {
			return nil
		}
		handler = ast.NewCatchClause(s.Handler.Param, e.block(handlerStmts))
	}

	var finalizer *ast.BlockStatement
	if s.Finalizer != nil {
		finStmts := e.normalizeStmtList(s.Finalizer.Body, brkLabel, contLabel)
		finalizer = e.block(finStmts)
	}

	return []ast.Statement{ast.NewTryStatement(e.block(blockStmts), handler, finalizer)}
}

// isLoopStatement reports whether stmt is a loop, looking through nested
// LabeledStatements (spec.md §4.4's LabeledStatement case: contLabel is
// only threaded down when the body is ultimately a loop).
func isLoopStatement(stmt ast.Statement) bool {
	for {
		switch s := stmt.(type) {
		case *ast.WhileStatement, *ast.DoWhileStatement, *ast.ForStatement, *ast.ForInStatement:
			return true
		case *ast.LabeledStatement:
			stmt = s.Body
			continue
		default:
			return false
		}
	}
}

// normalizeLabeled implements spec.md §4.4's LabeledStatement case: the
// label becomes the body's brkLabel directly (loops skip generating a
// fresh break label when one is supplied this way); contLabel is
// threaded down only when the body is ultimately a loop.
func (e *entity) normalizeLabeled(s *ast.LabeledStatement, outerBrk, outerCont string) []ast.Statement {
	if !isLoopStatement(s.Body) {
		body := e.normalizeStmt(s.Body, s.Label, outerCont)
		return []ast.Statement{ast.NewLabeledStatement(s.Label, e.block(body))}
	}
	switch loop := s.Body.(type) {
	case *ast.WhileStatement:
		return e.normalizeWhile(loop, s.Label)
	case *ast.DoWhileStatement:
		return e.normalizeDoWhile(loop, s.Label)
	case *ast.ForStatement:
		return e.normalizeFor(loop, s.Label)
	case *ast.ForInStatement:
		return e.normalizeForIn(loop, s.Label)
	case *ast.LabeledStatement:
		// A label directly wrapping another label wrapping a loop: pass
		// our label down as the break target and let the inner
		// LabeledStatement resolve the loop the same way.
		return e.normalizeLabeled(loop, s.Label, outerCont)
	default:
		body := e.normalizeStmt(s.Body, s.Label, outerCont)
		return []ast.Statement{ast.NewLabeledStatement(s.Label, e.block(body))}
	}
}

// normalizeWhile implements spec.md §4.4's WhileStatement case.
// brkLblIn, when non-empty, is an outer label reused as this loop's break
// label (from an enclosing LabeledStatement); otherwise a fresh one is
// generated. The continue label is always freshly generated.
func (e *entity) normalizeWhile(s *ast.WhileStatement, brkLblIn string) []ast.Statement {
	condTmp := e.genTmp()
	brkLbl := brkLblIn
	if brkLbl == "" {
		brkLbl = e.genLabel()
	}
	contLbl := e.genLabel()
	if brkLblIn != "" {
		e.contTargets[brkLblIn] = contLbl
	}

	preCond, _ := e.normalizeExpr(s.Test, condTmp)
	body := e.normalizeStmt(s.Body, brkLbl, contLbl)
	postCond, _ := e.normalizeExpr(s.Test, condTmp)

	loopBody := []ast.Statement{ast.NewLabeledStatement(contLbl, e.block(body))}
	loopBody = append(loopBody, postCond...)

	whileStmt := ast.NewWhileStatement(ident(condTmp), e.block(loopBody))
	out := append(preCond, ast.NewLabeledStatement(brkLbl, whileStmt))
	return out
}

func (e *entity) normalizeDoWhile(s *ast.DoWhileStatement, brkLblIn string) []ast.Statement {
	condTmp := e.genTmp()
	brkLbl := brkLblIn
	if brkLbl == "" {
		brkLbl = e.genLabel()
	}
	contLbl := e.genLabel()
	if brkLblIn != "" {
		e.contTargets[brkLblIn] = contLbl
	}

	prime := assign(condTmp, ast.NewBoolLiteral(true))
	body := e.normalizeStmt(s.Body, brkLbl, contLbl)
	postCond, _ := e.normalizeExpr(s.Test, condTmp)

	loopBody := []ast.Statement{ast.NewLabeledStatement(contLbl, e.block(body))}
	loopBody = append(loopBody, postCond...)

	whileStmt := ast.NewWhileStatement(ident(condTmp), e.block(loopBody))
	return []ast.Statement{prime, ast.NewLabeledStatement(brkLbl, whileStmt)}
}

// normalizeFor implements spec.md §4.4's ForStatement case: a three-
// clause for is lowered into the same labeled-while shape as while/
// do-while, with the update clause run at the end of each iteration.
func (e *entity) normalizeFor(s *ast.ForStatement, brkLblIn string) []ast.Statement {
	var initStmts []ast.Statement
	switch init := s.Init.(type) {
	case nil:
	case *ast.VariableDeclaration:
		initStmts = e.normalizeStmt(init, "", "")
	case ast.Expression:
		initStmts, _ = e.normalizeExpr(init, "")
	}

	condTmp := e.genTmp()
	var preCond, postCond []ast.Statement
	if s.Test != nil {
		preCond, _ = e.normalizeExpr(s.Test, condTmp)
		postCond, _ = e.normalizeExpr(s.Test, condTmp)
	} else {
		preCond = []ast.Statement{assign(condTmp, ast.NewBoolLiteral(true))}
	}

	brkLbl := brkLblIn
	if brkLbl == "" {
		brkLbl = e.genLabel()
	}
	contLbl := e.genLabel()
	if brkLblIn != "" {
		e.contTargets[brkLblIn] = contLbl
	}

	body := e.normalizeStmt(s.Body, brkLbl, contLbl)

	var updateStmts []ast.Statement
	if s.Update != nil {
		updateStmts, _ = e.normalizeExpr(s.Update, "")
	}

	loopBody := []ast.Statement{ast.NewLabeledStatement(contLbl, e.block(body))}
	loopBody = append(loopBody, updateStmts...)
	loopBody = append(loopBody, postCond...)

	whileStmt := ast.NewWhileStatement(ident(condTmp), e.block(loopBody))

	out := append(initStmts, preCond...)
	return append(out, ast.NewLabeledStatement(brkLbl, whileStmt))
}

// normalizeForIn implements spec.md §4.4's ForInStatement case: if the
// left side is a fresh declaration, the name is hoisted and rewritten to
// identifier form; a non-local left side gets a fresh loop temporary
// assigned into it (routed through with/global) in the body prefix. Break
// and continue get distinct labels, the same as normalizeWhile/
// normalizeFor: an outer break label on the ForInStatement itself, and an
// inner continue label wrapping just the body, so a continue advances to
// the next iteration instead of exiting the loop.
func (e *entity) normalizeForIn(s *ast.ForInStatement, brkLblIn string) []ast.Statement {
	rstmts, rTmp := e.normalizeExpr(s.Right, "")

	brkLbl := brkLblIn
	if brkLbl == "" {
		brkLbl = e.genLabel()
	}
	contLbl := e.genLabel()
	if brkLblIn != "" {
		e.contTargets[brkLblIn] = contLbl
	}

	var id *ast.Identifier
	switch left := s.Left.(type) {
	case *ast.VariableDeclaration:
		id = left.Declarations[0].ID
	case ast.Expression:
		idExpr, ok := left.(*ast.Identifier)
		if !ok {
			e.failf(normerr.ErrForInMemberTarget, s.Pos(), "for-in target must be an identifier, got %T", left)
			return nil
		}
		id = idExpr
	default:
		e.failf(normerr.ErrForInMemberTarget, s.Pos(), "unsupported for-in left-hand side %T", s.Left)
		return nil
	}

	var loopVar *ast.Identifier
	var prefix []ast.Statement
	if e.sc.IsLocal(id.Name) {
		loopVar = id
	} else {
		loopVar = ident(e.genTmp())
		prefix = e.normalizeIdentifierAssignExprStmt(id, loopVar)
	}

	body := e.normalizeStmt(s.Body, brkLbl, contLbl)
	body = append(prefix, body...)

	loopBody := []ast.Statement{ast.NewLabeledStatement(contLbl, e.block(body))}
	forIn := ast.NewForInStatement(loopVar, ident(rTmp), e.block(loopBody))
	return append(rstmts, ast.NewLabeledStatement(brkLbl, forIn))
}

// normalizeSwitch implements spec.md §4.4's SwitchStatement case: walk
// cases in reverse, accumulating each non-default case's consequent with
// every subsequent case up to the first whose last statement does not
// complete normally (fall-through preservation), with the first default
// case's accumulated body becoming the base "tail" the if/else chain
// bottoms out on.
func (e *entity) normalizeSwitch(s *ast.SwitchStatement, contLabel string) []ast.Statement {
	discStmts, disc := e.normalizeExpr(s.Discriminant, "")
	lbl := e.genLabel()

	n := len(s.Cases)
	chain := make([][]ast.Statement, n+1)
	chain[n] = nil
	defaultIdx := -1
	for i := n - 1; i >= 0; i-- {
		c := s.Cases[i]
		if c.Test == nil && defaultIdx == -1 {
			defaultIdx = i
		}
		own := c.Consequent
		if len(own) == 0 || cflow.MayCompleteNormally(own[len(own)-1]) {
			chain[i] = append(append([]ast.Statement{}, own...), chain[i+1]...)
		} else {
			chain[i] = append([]ast.Statement{}, own...)
		}
	}

	var tail []ast.Statement
	if defaultIdx != -1 {
		tail = chain[defaultIdx]
	}

	acc := e.normalizeStmtList(tail, lbl, contLabel)
	for i := n - 1; i >= 0; i-- {
		if i == defaultIdx {
			continue
		}
		c := s.Cases[i]
		testStmts, testTmp := e.normalizeExpr(c.Test, "")
		eqTmp := e.genTmp()
		testStmts = append(testStmts, assignTo(ident(eqTmp), ast.NewBinaryExpression("===", ident(disc), ident(testTmp))))
		consequent := e.normalizeStmtList(chain[i], lbl, contLabel)
		ifStmts := e.mkIf(eqTmp, consequent, acc)
		acc = append(testStmts, ifStmts...)
	}

	return append(discStmts, ast.NewLabeledStatement(lbl, e.block(acc)))
}

// normalizeWith implements spec.md §4.4's WithStatement case: the object
// is evaluated into a fresh temp, a With scope is pushed around the body,
// and the With node itself does not survive — only the temp assignment
// and the normalized body remain.
func (e *entity) normalizeWith(s *ast.WithStatement, brkLabel, contLabel string) []ast.Statement {
	objStmts, objTmp := e.normalizeExpr(s.Object, "")
	child := &entity{
		opts: e.opts, sc: scope.NewWith(e.sc, objTmp), sh: e.sh,
		retLabel: e.retLabel, retVar: e.retVar, contTargets: e.contTargets,
		atProgramRoot: e.atProgramRoot,
	}
	body := child.normalizeStmt(s.Body, brkLabel, contLabel)
	e.tmps = append(e.tmps, child.tmps...)
	return append(objStmts, body...)
}
