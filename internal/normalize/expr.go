package normalize

import (
	"github.com/cwbudde/go-esnorm/internal/ast"
	"github.com/cwbudde/go-esnorm/internal/normerr"
)

// normalizeExpr is normalizeExpression from spec.md §4.3: flatten node to
// depth 1, naming every intermediate sub-expression into a freshly
// allocated temporary in source evaluation order, and materialize the
// final value into target (allocating one lazily via e.target when target
// is empty). The returned statements, run in order, reproduce node's
// observable effects; the returned string names where its value ended up.
func (e *entity) normalizeExpr(node ast.Expression, target string) ([]ast.Statement, string) {
	if e.failed() {
		return nil, target
	}
	switch n := node.(type) {
	case *ast.Literal:
		tgt := e.target(target)
		return []ast.Statement{assign(tgt, n)}, tgt

	case *ast.ThisExpression:
		tgt := e.target(target)
		if e.atProgramRoot {
			return []ast.Statement{assign(tgt, ident(globalName))}, tgt
		}
		return []ast.Statement{assign(tgt, n)}, tgt

	case *ast.Identifier:
		return e.normalizeIdentifierRead(n, target)

	case *ast.ArrayExpression:
		return e.normalizeArray(n, target)

	case *ast.ObjectExpression:
		return e.normalizeObject(n, target)

	case *ast.MemberExpression:
		stmts, baseTmp, idxTmp := e.normalizeMemberParts(n)
		if e.failed() {
			return stmts, target
		}
		tgt := e.target(target)
		computed := n.Computed
		stmts = append(stmts, assignTo(ident(tgt), mkMember(baseTmp, idxTmp, computed)))
		return stmts, tgt

	case *ast.FunctionExpression:
		tgt := e.target(target)
		fe := e.normalizeNestedFunction(n)
		return []ast.Statement{assign(tgt, fe)}, tgt

	case *ast.AssignmentExpression:
		return e.normalizeAssignment(n, target)

	case *ast.CallExpression:
		return e.normalizeCallExpr(n, target)

	case *ast.NewExpression:
		return e.normalizeNewExpr(n, target)

	case *ast.SequenceExpression:
		return e.normalizeSequence(n, target)

	case *ast.LogicalExpression:
		return e.normalizeLogical(n, target)

	case *ast.BinaryExpression:
		lstmts, lTmp := e.normalizeExpr(n.Left, "")
		rstmts, rTmp := e.normalizeExpr(n.Right, "")
		tgt := e.target(target)
		stmts := append(lstmts, rstmts...)
		stmts = append(stmts, assignTo(ident(tgt), ast.NewBinaryExpression(n.Operator, ident(lTmp), ident(rTmp))))
		return stmts, tgt

	case *ast.ConditionalExpression:
		tstmts, tTmp := e.normalizeExpr(n.Test, "")
		tgt := e.target(target)
		thenStmts, _ := e.normalizeExpr(n.Consequent, tgt)
		elseStmts, _ := e.normalizeExpr(n.Alternate, tgt)
		stmts := append(tstmts, e.mkIf(tTmp, thenStmts, elseStmts)...)
		return stmts, tgt

	case *ast.UpdateExpression:
		return e.normalizeUpdate(n, target)

	case *ast.UnaryExpression:
		return e.normalizeUnary(n, target)

	default:
		e.failf(normerr.ErrUnsupportedExpression, node.Pos(), "unsupported expression kind %T", node)
		return nil, target
	}
}

// normalizeIdentifierRead implements spec.md §4.3's Identifier case: a
// global read routes through __global (optionally guarded by a
// reference_errors check), everything else is a plain read, and any
// possible with binding wraps the result, innermost checked first.
func (e *entity) normalizeIdentifierRead(id *ast.Identifier, target string) ([]ast.Statement, string) {
	name := id.Name
	tgt := e.target(target)
	withVars := e.sc.PossibleWithBindings(name)

	if isTmp(name) || !e.sc.IsGlobal(name) {
		fallback := []ast.Statement{assignTo(ident(tgt), ident(name))}
		if len(withVars) == 0 {
			return fallback, tgt
		}
		nameTmp := e.genTmp()
		prelude := []ast.Statement{assign(nameTmp, ast.NewStringLiteral(name))}
		body := e.withWrap(withVars, nameTmp, func(wv string) []ast.Statement {
			return []ast.Statement{assignTo(ident(tgt), mkMemberPlain(wv, nameTmp))}
		}, fallback)
		return append(prelude, body...), tgt
	}

	nameTmp := e.genTmp()
	stmts := []ast.Statement{assign(nameTmp, ast.NewStringLiteral(name))}

	var globalRead []ast.Statement
	if e.opts.ReferenceErrors && !e.sc.IsDeclaredGlobal(name) {
		if !e.sc.IsGlobal("ReferenceError") {
			e.fail(normerr.ErrReferenceErrorShadow, "ReferenceError is shadowed and cannot be referenced", id.Pos())
			return stmts, tgt
		}
		refNameTmp := e.genTmp()
		ctorTmp := e.genTmp()
		errTmp := e.genTmp()
		thenStmts := []ast.Statement{assignTo(ident(tgt), mkMemberPlain(globalName, nameTmp))}
		elseStmts := []ast.Statement{
			assign(refNameTmp, ast.NewStringLiteral("ReferenceError")),
			assignTo(ident(ctorTmp), mkMemberPlain(globalName, refNameTmp)),
			assignTo(ident(errTmp), ast.NewNewExpression(ident(ctorTmp), ast.NewStringLiteral(name+" is not defined"))),
			ast.NewThrowStatement(ident(errTmp)),
		}
		globalRead = []ast.Statement{e.ifInWrap(globalName, nameTmp, thenStmts, elseStmts)}
	} else {
		globalRead = []ast.Statement{assignTo(ident(tgt), mkMemberPlain(globalName, nameTmp))}
	}

	body := e.withWrap(withVars, nameTmp, func(wv string) []ast.Statement {
		return []ast.Statement{assignTo(ident(tgt), mkMemberPlain(wv, nameTmp))}
	}, globalRead)
	return append(stmts, body...), tgt
}

func (e *entity) normalizeArray(n *ast.ArrayExpression, target string) ([]ast.Statement, string) {
	var stmts []ast.Statement
	elems := make([]ast.Expression, len(n.Elements))
	for i, el := range n.Elements {
		if el == nil {
			continue
		}
		s, t := e.normalizeExpr(el, "")
		stmts = append(stmts, s...)
		elems[i] = ident(t)
	}
	tgt := e.target(target)
	stmts = append(stmts, assignTo(ident(tgt), ast.NewArrayExpression(elems...)))
	return stmts, tgt
}

func (e *entity) normalizeObject(n *ast.ObjectExpression, target string) ([]ast.Statement, string) {
	var stmts []ast.Statement
	props := make([]*ast.Property, len(n.Properties))
	for i, p := range n.Properties {
		switch p.Kind {
		case ast.PropertyGet, ast.PropertySet:
			fe, ok := p.Value.(*ast.FunctionExpression)
			if !ok {
				e.failf(normerr.ErrUnsupportedExpression, p.Pos(), "accessor property value is not a function expression")
				return stmts, target
			}
			normalized := e.normalizeNestedFunction(fe)
			props[i] = ast.NewProperty(p.Key, normalized, p.Kind)
		default:
			s, t := e.normalizeExpr(p.Value, "")
			stmts = append(stmts, s...)
			props[i] = ast.NewProperty(p.Key, ident(t), ast.PropertyInit)
		}
	}
	tgt := e.target(target)
	stmts = append(stmts, assignTo(ident(tgt), ast.NewObjectExpression(props...)))
	return stmts, tgt
}

// normalizeMemberParts evaluates a MemberExpression's base and property
// into temporaries, synthesizing a string literal for the property name
// on a non-computed access, and returns the statements plus both
// temporary names — shared by reads, writes, compound assignment, and
// delete.
func (e *entity) normalizeMemberParts(n *ast.MemberExpression) ([]ast.Statement, string, string) {
	baseStmts, baseTmp := e.normalizeExpr(n.Object, "")
	var idxStmts []ast.Statement
	var idxTmp string
	if n.Computed {
		idxStmts, idxTmp = e.normalizeExpr(n.Property, "")
	} else {
		idxTmp = e.genTmp()
		idxStmts = []ast.Statement{assign(idxTmp, ast.NewStringLiteral(propertyName(n.Property)))}
	}
	return append(baseStmts, idxStmts...), baseTmp, idxTmp
}

func (e *entity) normalizeAssignment(n *ast.AssignmentExpression, target string) ([]ast.Statement, string) {
	if n.Operator != "=" {
		return e.normalizeCompoundAssign(n, target)
	}
	switch lhs := n.Target.(type) {
	case *ast.Identifier:
		return e.normalizeIdentifierAssignExpr(lhs, n.Value, target)
	case *ast.MemberExpression:
		return e.normalizeMemberAssign(lhs, n.Value, target)
	default:
		e.failf(normerr.ErrInvalidAssignTarget, n.Pos(), "invalid assignment target %T", n.Target)
		return nil, target
	}
}

// normalizeIdentifierAssignExpr implements spec.md §4.3's identifier
// AssignmentExpression case, used when the RHS still needs normalizing
// (the general expression path). The exposed attribute is stamped on the
// binding whenever the assignment target is not local to the current
// scope, regardless of routing.
func (e *entity) normalizeIdentifierAssignExpr(id *ast.Identifier, value ast.Expression, target string) ([]ast.Statement, string) {
	name := id.Name
	withVars := e.sc.PossibleWithBindings(name)
	if !e.sc.IsLocal(name) {
		if bind, ok := e.sc.Lookup(name); ok {
			bind.SetAttribute(ast.AttrExposed, true)
		}
	}

	if !isTmp(name) && e.sc.IsGlobal(name) {
		nameTmp := e.genTmp()
		stmts := []ast.Statement{assign(nameTmp, ast.NewStringLiteral(name))}
		tgt := e.target(target)
		rstmts, _ := e.normalizeExpr(value, tgt)
		stmts = append(stmts, rstmts...)
		stmts = append(stmts, assignTo(mkMemberPlain(globalName, nameTmp), ident(tgt)))
		return stmts, tgt
	}

	if len(withVars) == 0 && target == "" {
		stmts, _ := e.normalizeExpr(value, name)
		return stmts, name
	}

	tgt := e.target(target)
	stmts, _ := e.normalizeExpr(value, tgt)
	if len(withVars) == 0 {
		return append(stmts, assign(name, ident(tgt))), tgt
	}
	nameTmp := e.genTmp()
	stmts = append(stmts, assign(nameTmp, ast.NewStringLiteral(name)))
	body := e.withWrap(withVars, nameTmp, func(wv string) []ast.Statement {
		return []ast.Statement{assignTo(mkMemberPlain(wv, nameTmp), ident(tgt))}
	}, []ast.Statement{assign(name, ident(tgt))})
	return append(stmts, body...), tgt
}

func (e *entity) normalizeMemberAssign(lhs *ast.MemberExpression, value ast.Expression, target string) ([]ast.Statement, string) {
	stmts, baseTmp, idxTmp := e.normalizeMemberParts(lhs)
	tgt := e.target(target)
	vstmts, _ := e.normalizeExpr(value, tgt)
	stmts = append(stmts, vstmts...)
	stmts = append(stmts, assignTo(mkMember(baseTmp, idxTmp, lhs.Computed), ident(tgt)))
	return stmts, tgt
}

// normalizeCompoundAssign desugars `L op= R` per spec.md §4.3: for an
// identifier LHS, `T := R; L := L op T`; for a member LHS, base and index
// are evaluated once, the old value is read into a temp, RHS into
// another, the binary op computed into target, and the result written
// back through the same base/index temporaries.
func (e *entity) normalizeCompoundAssign(n *ast.AssignmentExpression, target string) ([]ast.Statement, string) {
	op := n.Operator[:len(n.Operator)-1]
	switch lhs := n.Target.(type) {
	case *ast.Identifier:
		rstmts, rTmp := e.normalizeExpr(n.Value, "")
		desugared := ast.NewAssignmentExpression("=", lhs, ast.NewBinaryExpression(op, lhs, ident(rTmp)))
		stmts, tgt := e.normalizeIdentifierAssignExpr(lhs, desugared.Value, target)
		return append(rstmts, stmts...), tgt
	case *ast.MemberExpression:
		stmts, baseTmp, idxTmp := e.normalizeMemberParts(lhs)
		oldTmp := e.genTmp()
		stmts = append(stmts, assignTo(ident(oldTmp), mkMember(baseTmp, idxTmp, lhs.Computed)))
		rstmts, rTmp := e.normalizeExpr(n.Value, "")
		stmts = append(stmts, rstmts...)
		tgt := e.target(target)
		stmts = append(stmts, assignTo(ident(tgt), ast.NewBinaryExpression(op, ident(oldTmp), ident(rTmp))))
		stmts = append(stmts, assignTo(mkMember(baseTmp, idxTmp, lhs.Computed), ident(tgt)))
		return stmts, tgt
	default:
		e.failf(normerr.ErrInvalidAssignTarget, n.Pos(), "invalid compound assignment target %T", n.Target)
		return nil, target
	}
}

func (e *entity) normalizeArgs(args []ast.Expression) ([]ast.Statement, []string) {
	var stmts []ast.Statement
	names := make([]string, len(args))
	for i, a := range args {
		s, t := e.normalizeExpr(a, "")
		stmts = append(stmts, s...)
		names[i] = t
	}
	return stmts, names
}

func identList(names []string) []ast.Expression {
	out := make([]ast.Expression, len(names))
	for i, n := range names {
		out[i] = ident(n)
	}
	return out
}

// normalizeCallExpr implements spec.md §4.3's CallExpression case: a
// member-expression callee is a method call (propagating isComputed), a
// bare `eval` callee is never routed through __global, and any other
// callee goes through the plain-call with-cascade.
func (e *entity) normalizeCallExpr(n *ast.CallExpression, target string) ([]ast.Statement, string) {
	switch callee := n.Callee.(type) {
	case *ast.MemberExpression:
		stmts, baseTmp, idxTmp := e.normalizeMemberParts(callee)
		argStmts, argNames := e.normalizeArgs(n.Arguments)
		stmts = append(stmts, argStmts...)
		tgt := e.target(target)
		stmts = append(stmts, assignTo(ident(tgt), ast.NewCallExpression(mkMember(baseTmp, idxTmp, callee.Computed), identList(argNames)...)))
		return stmts, tgt
	case *ast.Identifier:
		if callee.Name == "eval" {
			argStmts, argNames := e.normalizeArgs(n.Arguments)
			tgt := e.target(target)
			argStmts = append(argStmts, assignTo(ident(tgt), ast.NewCallExpression(ident("eval"), identList(argNames)...)))
			return argStmts, tgt
		}
		return e.normalizePlainCall(callee, n.Arguments, target, false)
	default:
		fnStmts, fnTmp := e.normalizeExpr(n.Callee, "")
		argStmts, argNames := e.normalizeArgs(n.Arguments)
		stmts := append(fnStmts, argStmts...)
		tgt := e.target(target)
		stmts = append(stmts, assignTo(ident(tgt), ast.NewCallExpression(ident(fnTmp), identList(argNames)...)))
		return stmts, tgt
	}
}

// normalizePlainCall implements the plain-call with-cascade: normalize f
// into fnTmp, normalize arguments, then target := fnTmp(args) — wrapped
// per with layer so a with-shadowed callee is invoked as a method on the
// with object instead (changing `this` to match source semantics).
func (e *entity) normalizePlainCall(callee *ast.Identifier, args []ast.Expression, target string, isNew bool) ([]ast.Statement, string) {
	withVars := e.sc.PossibleWithBindings(callee.Name)
	fnStmts, fnTmp := e.normalizeExpr(callee, "")
	argStmts, argNames := e.normalizeArgs(args)
	stmts := append(fnStmts, argStmts...)
	tgt := e.target(target)

	plainCall := func(fn ast.Expression) ast.Statement {
		if isNew {
			return assignTo(ident(tgt), ast.NewNewExpression(fn, identList(argNames)...))
		}
		return assignTo(ident(tgt), ast.NewCallExpression(fn, identList(argNames)...))
	}

	if len(withVars) == 0 {
		stmts = append(stmts, plainCall(ident(fnTmp)))
		return stmts, tgt
	}

	nameTmp := e.genTmp()
	stmts = append(stmts, assign(nameTmp, ast.NewStringLiteral(callee.Name)))
	body := e.withWrap(withVars, nameTmp, func(wv string) []ast.Statement {
		return []ast.Statement{plainCall(mkMemberPlain(wv, nameTmp))}
	}, []ast.Statement{plainCall(ident(fnTmp))})
	return append(stmts, body...), tgt
}

// normalizeNewExpr mirrors normalizeCallExpr but constructs rather than
// calls (spec.md §4.3's NewExpression case).
func (e *entity) normalizeNewExpr(n *ast.NewExpression, target string) ([]ast.Statement, string) {
	if callee, ok := n.Callee.(*ast.Identifier); ok && callee.Name != "eval" {
		return e.normalizePlainCall(callee, n.Arguments, target, true)
	}
	fnStmts, fnTmp := e.normalizeExpr(n.Callee, "")
	argStmts, argNames := e.normalizeArgs(n.Arguments)
	stmts := append(fnStmts, argStmts...)
	tgt := e.target(target)
	stmts = append(stmts, assignTo(ident(tgt), ast.NewNewExpression(ident(fnTmp), identList(argNames)...)))
	return stmts, tgt
}

func (e *entity) normalizeSequence(n *ast.SequenceExpression, target string) ([]ast.Statement, string) {
	var stmts []ast.Statement
	var last string
	for i, expr := range n.Expressions {
		if i == len(n.Expressions)-1 {
			s, t := e.normalizeExpr(expr, target)
			stmts = append(stmts, s...)
			last = t
			continue
		}
		s, _ := e.normalizeExpr(expr, "")
		stmts = append(stmts, s...)
	}
	return stmts, last
}

// normalizeLogical implements spec.md §4.3's short-circuit rewrite via
// mkIf, so unfold_ifs applies uniformly.
func (e *entity) normalizeLogical(n *ast.LogicalExpression, target string) ([]ast.Statement, string) {
	lstmts, lTmp := e.normalizeExpr(n.Left, "")
	tgt := e.target(target)
	rstmts, _ := e.normalizeExpr(n.Right, tgt)
	var thenStmts, elseStmts []ast.Statement
	if n.Operator == "&&" {
		thenStmts = rstmts
		elseStmts = []ast.Statement{assign(tgt, ident(lTmp))}
	} else {
		thenStmts = []ast.Statement{assign(tgt, ident(lTmp))}
		elseStmts = rstmts
	}
	stmts := append(lstmts, e.mkIf(lTmp, thenStmts, elseStmts)...)
	return stmts, tgt
}

// normalizeUpdate implements spec.md §4.3's UpdateExpression case:
// prefix desugars to a compound assignment `arg := arg op 1`; postfix
// saves the old value into target (allocated when none is supplied, so
// void-context postfix takes this path too) first, then performs the
// update through a freshly computed new value, preserving single
// evaluation of a member base/index.
func (e *entity) normalizeUpdate(n *ast.UpdateExpression, target string) ([]ast.Statement, string) {
	one := ast.NewNumberLiteral(1, "1")
	op := "+"
	if n.Operator == ast.UpdateDecrement {
		op = "-"
	}

	if n.Prefix {
		switch lhs := n.Argument.(type) {
		case *ast.Identifier:
			readStmts, readTmp := e.normalizeIdentifierRead(lhs, "")
			newStmts, newTmp := e.normalizeIdentifierAssignExpr(lhs, ast.NewBinaryExpression(op, ident(readTmp), one), "")
			stmts := append(readStmts, newStmts...)
			tgt := e.target(target)
			return append(stmts, assign(tgt, ident(newTmp))), tgt
		case *ast.MemberExpression:
			stmts, baseTmp, idxTmp := e.normalizeMemberParts(lhs)
			oldTmp := e.genTmp()
			stmts = append(stmts, assignTo(ident(oldTmp), mkMember(baseTmp, idxTmp, lhs.Computed)))
			tgt := e.target(target)
			stmts = append(stmts, assignTo(ident(tgt), ast.NewBinaryExpression(op, ident(oldTmp), one)))
			stmts = append(stmts, assignTo(mkMember(baseTmp, idxTmp, lhs.Computed), ident(tgt)))
			return stmts, tgt
		default:
			e.failf(normerr.ErrInvalidAssignTarget, n.Pos(), "invalid update target %T", n.Argument)
			return nil, target
		}
	}

	switch lhs := n.Argument.(type) {
	case *ast.Identifier:
		tgt := e.target(target)
		readStmts, _ := e.normalizeIdentifierRead(lhs, tgt)
		newTmp := e.genTmp()
		stmts := append(readStmts, assignTo(ident(newTmp), ast.NewBinaryExpression(op, ident(tgt), one)))
		updateStmts, _ := e.normalizeIdentifierAssignExpr(lhs, ident(newTmp), newTmp)
		return append(stmts, updateStmts...), tgt
	case *ast.MemberExpression:
		stmts, baseTmp, idxTmp := e.normalizeMemberParts(lhs)
		tgt := e.target(target)
		stmts = append(stmts, assignTo(ident(tgt), mkMember(baseTmp, idxTmp, lhs.Computed)))
		newTmp := e.genTmp()
		stmts = append(stmts, assignTo(ident(newTmp), ast.NewBinaryExpression(op, ident(tgt), one)))
		stmts = append(stmts, assignTo(mkMember(baseTmp, idxTmp, lhs.Computed), ident(newTmp)))
		return stmts, tgt
	default:
		e.failf(normerr.ErrInvalidAssignTarget, n.Pos(), "invalid update target %T", n.Argument)
		return nil, target
	}
}

// normalizeUnary implements spec.md §4.3's UnaryExpression case: delete
// on an identifier or member target has bespoke lowering, everything
// else evaluates its argument into a temp.
func (e *entity) normalizeUnary(n *ast.UnaryExpression, target string) ([]ast.Statement, string) {
	if n.Operator == "delete" {
		switch arg := n.Argument.(type) {
		case *ast.Identifier:
			tgt := e.target(target)
			if !isTmp(arg.Name) && e.sc.IsGlobal(arg.Name) {
				nameTmp := e.genTmp()
				stmts := []ast.Statement{
					assign(nameTmp, ast.NewStringLiteral(arg.Name)),
					assignTo(ident(tgt), ast.NewUnaryExpression("delete", mkMemberPlain(globalName, nameTmp))),
				}
				return stmts, tgt
			}
			return []ast.Statement{assignTo(ident(tgt), ast.NewUnaryExpression("delete", arg))}, tgt
		case *ast.MemberExpression:
			stmts, baseTmp, idxTmp := e.normalizeMemberParts(arg)
			tgt := e.target(target)
			stmts = append(stmts, assignTo(ident(tgt), ast.NewUnaryExpression("delete", mkMember(baseTmp, idxTmp, arg.Computed))))
			return stmts, tgt
		default:
			e.failf(normerr.ErrInvalidDeleteTarget, n.Pos(), "invalid delete target %T", n.Argument)
			return nil, target
		}
	}
	argStmts, argTmp := e.normalizeExpr(n.Argument, "")
	tgt := e.target(target)
	argStmts = append(argStmts, assignTo(ident(tgt), ast.NewUnaryExpression(n.Operator, ident(argTmp))))
	return argStmts, tgt
}
