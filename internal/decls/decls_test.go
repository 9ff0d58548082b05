package decls_test

import (
	"testing"

	"github.com/cwbudde/go-esnorm/internal/ast"
	"github.com/cwbudde/go-esnorm/internal/decls"
	"github.com/cwbudde/go-esnorm/internal/token"
)

func ident(name string) *ast.Identifier {
	return ast.NewIdentifier(name, token.Token{})
}

func TestCollectTopLevelVar(t *testing.T) {
	body := []ast.Statement{
		ast.NewVariableDeclaration(ast.NewVariableDeclarator(ident("a"), nil)),
	}
	got := decls.Collect(body)
	if len(got) != 1 || got[0].Name != "a" {
		t.Fatalf("Collect() = %v, want one decl named a", got)
	}
}

func TestCollectDescendsIntoBlocksAndLoops(t *testing.T) {
	inner := ast.NewVariableDeclaration(ast.NewVariableDeclarator(ident("inner"), nil))
	whileBody := ast.NewBlockStatement(inner)
	whileStmt := ast.NewWhileStatement(ident("cond"), whileBody)
	body := []ast.Statement{whileStmt}

	got := decls.Collect(body)
	if len(got) != 1 || got[0].Name != "inner" {
		t.Fatalf("Collect() did not descend into while body: %v", got)
	}
}

func TestCollectStopsAtNestedFunctionBoundary(t *testing.T) {
	nestedDecl := ast.NewVariableDeclaration(ast.NewVariableDeclarator(ident("hidden"), nil))
	nestedFn := ast.NewFunctionDeclaration(ident("inner"), nil, ast.NewBlockStatement(nestedDecl))
	body := []ast.Statement{nestedFn}

	got := decls.Collect(body)
	if len(got) != 1 || got[0].Name != "inner" {
		t.Fatalf("Collect() should hoist the FunctionDeclaration itself but not descend into its body, got %v", got)
	}
}

func TestCollectTryCatchFinally(t *testing.T) {
	blockDecl := ast.NewVariableDeclaration(ast.NewVariableDeclarator(ident("b"), nil))
	catchDecl := ast.NewVariableDeclaration(ast.NewVariableDeclarator(ident("c"), nil))
	finDecl := ast.NewVariableDeclaration(ast.NewVariableDeclarator(ident("f"), nil))

	try := ast.NewTryStatement(
		ast.NewBlockStatement(blockDecl),
		ast.NewCatchClause(ident("e"), ast.NewBlockStatement(catchDecl)),
		ast.NewBlockStatement(finDecl),
	)

	got := decls.Collect([]ast.Statement{try})
	want := map[string]bool{"b": true, "c": true, "f": true}
	if len(got) != 3 {
		t.Fatalf("Collect() = %v, want 3 decls (one per try/catch/finally body)", got)
	}
	for _, d := range got {
		if !want[d.Name] {
			t.Errorf("unexpected decl %q", d.Name)
		}
	}
}

func TestCollectForInitAndSwitchCases(t *testing.T) {
	initDecl := ast.NewVariableDeclaration(ast.NewVariableDeclarator(ident("i"), nil))
	forStmt := ast.NewForStatement(initDecl, nil, nil, ast.NewBlockStatement())

	caseDecl := ast.NewVariableDeclaration(ast.NewVariableDeclarator(ident("caseVar"), nil))
	sw := ast.NewSwitchStatement(ident("disc"), ast.NewSwitchCase(ast.NewNumberLiteral(1, "1"), caseDecl))

	got := decls.Collect([]ast.Statement{forStmt, sw})
	want := map[string]bool{"i": true, "caseVar": true}
	if len(got) != 2 {
		t.Fatalf("Collect() = %v, want 2 decls", got)
	}
	for _, d := range got {
		if !want[d.Name] {
			t.Errorf("unexpected decl %q", d.Name)
		}
	}
}

func TestCollectWithStatement(t *testing.T) {
	withDecl := ast.NewVariableDeclaration(ast.NewVariableDeclarator(ident("w"), nil))
	with := ast.NewWithStatement(ident("obj"), ast.NewBlockStatement(withDecl))

	got := decls.Collect([]ast.Statement{with})
	if len(got) != 1 || got[0].Name != "w" {
		t.Fatalf("Collect() should descend into with body, got %v", got)
	}
}

func TestCollectIgnoresExpressionAndControlStatements(t *testing.T) {
	body := []ast.Statement{
		ast.NewExpressionStatement(ident("x")),
		ast.NewReturnStatement(nil),
		ast.NewThrowStatement(ident("e")),
		ast.NewBreakStatement(""),
		ast.NewContinueStatement(""),
		ast.NewEmptyStatement(),
		ast.NewDebuggerStatement(),
	}
	if got := decls.Collect(body); len(got) != 0 {
		t.Errorf("Collect() = %v, want no decls from pure-effect statements", got)
	}
}
