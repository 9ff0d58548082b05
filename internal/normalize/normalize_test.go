package normalize

import (
	"testing"

	"github.com/cwbudde/go-esnorm/internal/ast"
	"github.com/cwbudde/go-esnorm/internal/decls"
	"github.com/cwbudde/go-esnorm/internal/scope"
)

func newRootEntity(opts Options, hoisted []*scope.Decl) *entity {
	return newEntity(&shared{}, Resolve(opts), scope.NewGlobal(hoisted))
}

// assertFlatBinaryOperands fails if expr is a BinaryExpression with an
// operand that is itself non-trivial, i.e. the normalizer left a nested
// expression instead of flattening it into a temporary/identifier.
func assertFlatBinaryOperands(t *testing.T, expr ast.Expression) {
	t.Helper()
	bin, ok := expr.(*ast.BinaryExpression)
	if !ok {
		return
	}
	flat := func(e ast.Expression) bool {
		switch e.(type) {
		case *ast.Identifier, *ast.Literal, *ast.ThisExpression:
			return true
		default:
			return false
		}
	}
	if !flat(bin.Left) {
		t.Errorf("BinaryExpression.Left is not flat: %T", bin.Left)
	}
	if !flat(bin.Right) {
		t.Errorf("BinaryExpression.Right is not flat: %T", bin.Right)
	}
}

func TestNormalizeExprFlattensNestedBinary(t *testing.T) {
	// a + b * c
	nested := ast.NewBinaryExpression("+", ident("a"),
		ast.NewBinaryExpression("*", ident("b"), ident("c")))

	e := newRootEntity(Options{}, nil)
	stmts, result := e.normalizeExpr(nested, "")
	if e.failed() {
		t.Fatalf("unexpected error: %v", e.sh.err)
	}
	if len(stmts) == 0 {
		t.Fatalf("flattening a nested binary expression must produce statements naming intermediates")
	}
	for _, s := range stmts {
		es, ok := s.(*ast.ExpressionStatement)
		if !ok {
			continue
		}
		if ae, ok := es.Expression.(*ast.AssignmentExpression); ok {
			assertFlatBinaryOperands(t, ae.Value)
		}
	}
	if !isTmp(result) {
		t.Errorf("result of a non-trivial expression should be a fresh temporary, got %q", result)
	}
}

func TestNormalizeExprLocalIdentifierReadIsSingleAssignment(t *testing.T) {
	param := &scope.Binding{Name: "x", Node: ident("x")}
	fnScope := scope.NewFunction(scope.NewGlobal(nil), []*scope.Binding{param}, nil)
	e := newEntity(&shared{}, Resolve(Options{}), fnScope)

	stmts, result := e.normalizeExpr(ident("x"), "")
	if e.failed() {
		t.Fatalf("unexpected error: %v", e.sh.err)
	}
	if len(stmts) != 1 {
		t.Fatalf("reading a local identifier with no with-bindings should materialize in one assignment, got %d statements", len(stmts))
	}
	if result == "" {
		t.Errorf("normalizeExpr must always return a usable target name")
	}
}

func TestNormalizeExprGlobalIdentifierReadGoesThroughGlobalObject(t *testing.T) {
	e := newRootEntity(Options{}, nil)
	stmts, _ := e.normalizeExpr(ident("g"), "")
	if e.failed() {
		t.Fatalf("unexpected error: %v", e.sh.err)
	}
	if len(stmts) < 2 {
		t.Fatalf("reading an implicit global must route through the global object (name temp + member read), got %d statements", len(stmts))
	}
}

func TestFinalizeFunctionHoistsVarsAndTemps(t *testing.T) {
	body := ast.NewBlockStatement(
		ast.NewVariableDeclaration(ast.NewVariableDeclarator(ident("a"), nil)),
		ast.NewExpressionStatement(
			ast.NewAssignmentExpression("=", ident("a"),
				ast.NewBinaryExpression("+", ast.NewNumberLiteral(1, "1"), ast.NewNumberLiteral(2, "2")))),
	)
	hoisted := decls.Collect(body.Body)
	e := newEntity(&shared{}, Resolve(Options{}), scope.NewFunction(scope.NewGlobal(nil), nil, hoisted))

	fe, err := e.finalizeFunction(nil, nil, body, ast.NewFunctionExpression(nil, nil, body), body.Pos())
	if err != nil {
		t.Fatalf("finalizeFunction returned an error: %v", err)
	}

	varDecl, ok := fe.Body.Body[0].(*ast.VariableDeclaration)
	if !ok {
		t.Fatalf("expected the finalized body to start with the hoisted var declaration, got %T", fe.Body.Body[0])
	}
	names := make(map[string]bool, len(varDecl.Declarations))
	for _, d := range varDecl.Declarations {
		names[d.ID.Name] = true
	}
	if !names["a"] {
		t.Errorf("hoisted var decl is missing declared local %q: %v", "a", names)
	}
	if len(varDecl.Declarations) < 2 {
		t.Errorf("hoisted var decl should also carry generated temporaries, got %v", names)
	}
}

func TestFinalizeFunctionAddsTrailingReturnWhenMayCompleteNormally(t *testing.T) {
	body := ast.NewBlockStatement(ast.NewExpressionStatement(ident("x")))
	e := newEntity(&shared{}, Resolve(Options{}), scope.NewFunction(scope.NewGlobal(nil), nil, nil))

	fe, err := e.finalizeFunction(nil, nil, body, ast.NewFunctionExpression(nil, nil, body), body.Pos())
	if err != nil {
		t.Fatalf("finalizeFunction returned an error: %v", err)
	}
	last := fe.Body.Body[len(fe.Body.Body)-1]
	ret, ok := last.(*ast.ReturnStatement)
	if !ok {
		t.Fatalf("a function body that may complete normally must gain a trailing return, got %T", last)
	}
	if _, ok := ret.Argument.(*ast.Literal); !ok {
		t.Errorf("the synthesized trailing return should return a null literal, got %T", ret.Argument)
	}
}

func TestFinalizeFunctionUnifyRetSingleExit(t *testing.T) {
	body := ast.NewBlockStatement(
		ast.NewIfStatement(ident("cond"), ast.NewReturnStatement(ast.NewNumberLiteral(1, "1")), nil),
		ast.NewReturnStatement(ast.NewNumberLiteral(2, "2")),
	)
	e := newEntity(&shared{}, Resolve(Options{UnifyRet: true}), scope.NewFunction(scope.NewGlobal(nil), nil, nil))

	fe, err := e.finalizeFunction(nil, nil, body, ast.NewFunctionExpression(nil, nil, body), body.Pos())
	if err != nil {
		t.Fatalf("finalizeFunction returned an error: %v", err)
	}
	last := fe.Body.Body[len(fe.Body.Body)-1]
	ret, ok := last.(*ast.ReturnStatement)
	if !ok {
		t.Fatalf("unify_ret must leave exactly one trailing return, got %T", last)
	}
	if _, ok := ret.Argument.(*ast.Identifier); !ok {
		t.Errorf("unify_ret's trailing return should return the hoisted return variable, got %T", ret.Argument)
	}
	returnCount := 0
	var walk func(s ast.Statement)
	walk = func(s ast.Statement) {
		switch n := s.(type) {
		case *ast.ReturnStatement:
			returnCount++
		case *ast.BlockStatement:
			for _, c := range n.Body {
				walk(c)
			}
		case *ast.LabeledStatement:
			walk(n.Body)
		case *ast.IfStatement:
			walk(n.Consequent)
			if n.Alternate != nil {
				walk(n.Alternate)
			}
		}
	}
	for _, s := range fe.Body.Body {
		walk(s)
	}
	if returnCount != 1 {
		t.Errorf("unify_ret should leave exactly one ReturnStatement in the whole body, found %d", returnCount)
	}
}

func TestFinalizeProgramWrapsIIFE(t *testing.T) {
	prog := ast.NewProgram([]ast.Statement{ast.NewExpressionStatement(ident("x"))})
	e := newEntity(&shared{}, Resolve(Options{}), scope.NewGlobal(decls.Collect(prog.Body)))

	out, err := e.finalizeProgram(prog)
	if err != nil {
		t.Fatalf("finalizeProgram returned an error: %v", err)
	}
	if len(out.Body) != 1 {
		t.Fatalf("finalizeProgram should produce exactly one top-level statement, got %d", len(out.Body))
	}
	es, ok := out.Body[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("expected an ExpressionStatement wrapping the IIFE call, got %T", out.Body[0])
	}
	call, ok := es.Expression.(*ast.CallExpression)
	if !ok {
		t.Fatalf("expected a CallExpression, got %T", es.Expression)
	}
	fe, ok := call.Callee.(*ast.FunctionExpression)
	if !ok {
		t.Fatalf("expected the IIFE callee to be a FunctionExpression, got %T", call.Callee)
	}
	if len(fe.Params) != 1 {
		t.Fatalf("the IIFE should take exactly one __global parameter, got %d", len(fe.Params))
	}
	if len(call.Arguments) != 1 {
		t.Fatalf("the IIFE should be invoked with exactly one argument, got %d", len(call.Arguments))
	}
	if _, ok := call.Arguments[0].(*ast.ThisExpression); !ok {
		t.Errorf("the IIFE should be invoked with `this`, got %T", call.Arguments[0])
	}
}

// unwrapLabeled peels a single LabeledStatement wrapper, failing the test
// if stmt isn't one.
func unwrapLabeled(t *testing.T, stmt ast.Statement) *ast.LabeledStatement {
	t.Helper()
	lbl, ok := stmt.(*ast.LabeledStatement)
	if !ok {
		t.Fatalf("expected *ast.LabeledStatement, got %T", stmt)
	}
	return lbl
}

func TestNormalizeForInContinueTargetsInnerLabelNotBreak(t *testing.T) {
	param := &scope.Binding{Name: "k", Node: ident("k")}
	fnScope := scope.NewFunction(scope.NewGlobal(nil), []*scope.Binding{param}, nil)
	e := newEntity(&shared{}, Resolve(Options{}), fnScope)

	forIn := ast.NewForInStatement(ident("k"), ident("o"),
		ast.NewBlockStatement(ast.NewContinueStatement("")))

	out := e.normalizeStmt(forIn, "", "")
	if e.failed() {
		t.Fatalf("unexpected error: %v", e.sh.err)
	}

	// outer label wraps the ForInStatement and is the break target
	outer := unwrapLabeled(t, out[len(out)-1])
	forInStmt, ok := outer.Body.(*ast.ForInStatement)
	if !ok {
		t.Fatalf("expected the outer label to wrap a *ast.ForInStatement, got %T", outer.Body)
	}

	// the for-in's own body must be a distinct, inner label wrapping the
	// loop body — not the same label as the outer break target.
	innerBlock, ok := forInStmt.Body.(*ast.BlockStatement)
	if !ok || len(innerBlock.Body) != 1 {
		t.Fatalf("expected the for-in body to be a single-statement block, got %#v", forInStmt.Body)
	}
	inner := unwrapLabeled(t, innerBlock.Body[0])
	if inner.Label == outer.Label {
		t.Fatalf("continue and break must resolve to distinct labels, both got %q", outer.Label)
	}

	innerBody, ok := inner.Body.(*ast.BlockStatement)
	if !ok || len(innerBody.Body) != 1 {
		t.Fatalf("expected the inner label to wrap the loop body, got %#v", inner.Body)
	}
	brk, ok := innerBody.Body[0].(*ast.BreakStatement)
	if !ok {
		t.Fatalf("an unlabeled continue should normalize to a break, got %T", innerBody.Body[0])
	}
	if brk.Label != inner.Label {
		t.Errorf("continue should target the inner (continue) label %q, got %q — this regresses to exiting the loop instead of advancing it", inner.Label, brk.Label)
	}
}

func TestNormalizeForInDeclaredGlobalRoutesThroughGlobalObject(t *testing.T) {
	e := newRootEntity(Options{}, nil)

	forIn := ast.NewForInStatement(
		ast.NewVariableDeclaration(ast.NewVariableDeclarator(ident("k"), nil)),
		ident("o"),
		ast.NewBlockStatement(ast.NewExpressionStatement(ident("k"))),
	)

	out := e.normalizeStmt(forIn, "", "")
	if e.failed() {
		t.Fatalf("unexpected error: %v", e.sh.err)
	}

	outer := unwrapLabeled(t, out[len(out)-1])
	forInStmt, ok := outer.Body.(*ast.ForInStatement)
	if !ok {
		t.Fatalf("expected a *ast.ForInStatement, got %T", outer.Body)
	}

	loopVar, ok := forInStmt.Left.(*ast.Identifier)
	if !ok {
		t.Fatalf("expected the native loop variable to be an identifier, got %T", forInStmt.Left)
	}
	if loopVar.Name == "k" {
		t.Fatalf("a declared-global for-in target must not bind the bare global name %q as the native loop variable — every in-body read of %q goes through __global, so the loop must write there too, not to a same-named bare local", "k", "k")
	}
	if !isTmp(loopVar.Name) {
		t.Errorf("expected the native loop variable to be a fresh temporary, got %q", loopVar.Name)
	}

	innerBlock := forInStmt.Body.(*ast.BlockStatement)
	inner := unwrapLabeled(t, innerBlock.Body[0])
	innerBody, ok := inner.Body.(*ast.BlockStatement)
	if !ok || len(innerBody.Body) == 0 {
		t.Fatalf("expected a non-empty loop body, got %#v", inner.Body)
	}

	foundGlobalWrite := false
	for _, st := range innerBody.Body {
		es, ok := st.(*ast.ExpressionStatement)
		if !ok {
			continue
		}
		ae, ok := es.Expression.(*ast.AssignmentExpression)
		if !ok {
			continue
		}
		me, ok := ae.Target.(*ast.MemberExpression)
		if !ok {
			continue
		}
		if obj, ok := me.Object.(*ast.Identifier); ok && obj.Name == "__global" {
			foundGlobalWrite = true
			break
		}
	}
	if !foundGlobalWrite {
		t.Fatalf("expected the body prefix to write the loop temp into __global[%q] before the original body runs; every in-body read of %q is routed through __global (expr.go's normalizeIdentifierRead), so the write must land there too", "k", "k")
	}
}

func TestIsTmpRecognizesGeneratedNamesOnly(t *testing.T) {
	cases := map[string]bool{
		"tmp0":  true,
		"tmp42": true,
		"tmp":   false,
		"x":     false,
		"tmpx":  false,
	}
	for name, want := range cases {
		if got := isTmp(name); got != want {
			t.Errorf("isTmp(%q) = %v, want %v", name, got, want)
		}
	}
}
