package scope_test

import (
	"reflect"
	"testing"

	"github.com/cwbudde/go-esnorm/internal/ast"
	"github.com/cwbudde/go-esnorm/internal/scope"
	"github.com/cwbudde/go-esnorm/internal/token"
)

func ident(name string) *ast.Identifier {
	return ast.NewIdentifier(name, token.Token{})
}

func TestGlobalScope(t *testing.T) {
	decl := &scope.Decl{Name: "g", Node: ident("g")}
	g := scope.NewGlobal([]*scope.Decl{decl})

	if !g.IsGlobal("g") || !g.IsGlobal("anything") {
		t.Errorf("every name is global at the top level")
	}
	if !g.IsDeclaredGlobal("g") {
		t.Errorf("g was hoisted, should be declared-global")
	}
	if g.IsDeclaredGlobal("never_declared") {
		t.Errorf("an unreferenced name should not be declared-global")
	}
	if g.IsLocal("g") {
		t.Errorf("nothing is local at the top level")
	}
	if got := g.PossibleWithBindings("g"); got != nil {
		t.Errorf("global scope has no with bindings, got %v", got)
	}
}

func TestFunctionScopeShadowsParent(t *testing.T) {
	g := scope.NewGlobal(nil)
	param := &scope.Binding{Name: "x", Node: ident("x")}
	f := scope.NewFunction(g, []*scope.Binding{param}, nil)

	if f.IsGlobal("x") {
		t.Errorf("a parameter shadows the global scope")
	}
	if !f.IsLocal("x") {
		t.Errorf("a parameter is local")
	}
	if !f.IsGlobal("y") {
		t.Errorf("an unbound name still resolves through to global")
	}
	if f.IsLocal("y") {
		t.Errorf("an unbound name is not local")
	}
}

func TestFunctionDeclsDoNotOverrideParams(t *testing.T) {
	g := scope.NewGlobal(nil)
	param := &scope.Binding{Name: "x", Node: ident("x")}
	decl := &scope.Decl{Name: "x", Node: ident("x-decl")}
	f := scope.NewFunction(g, []*scope.Binding{param}, []*scope.Decl{decl})

	node, ok := f.Lookup("x")
	if !ok {
		t.Fatalf("x should resolve")
	}
	if node != param.Node {
		t.Errorf("a declaration with the same name as a parameter should not shadow the parameter binding")
	}
}

func TestCatchScopeParameterless(t *testing.T) {
	g := scope.NewGlobal(nil)
	c := scope.NewCatch(g, nil)
	if !c.IsGlobal("e") {
		t.Errorf("a parameterless catch introduces no bindings")
	}
}

func TestCatchScopeBindsParam(t *testing.T) {
	g := scope.NewGlobal(nil)
	param := &scope.Binding{Name: "e", Node: ident("e")}
	c := scope.NewCatch(g, param)
	if c.IsGlobal("e") {
		t.Errorf("the catch parameter shadows global")
	}
	if !c.IsLocal("e") {
		t.Errorf("the catch parameter is local")
	}
}

func TestWithBindingsOrderInnermostLast(t *testing.T) {
	g := scope.NewGlobal(nil)
	outer := scope.NewWith(g, "w0")
	inner := scope.NewWith(outer, "w1")

	got := inner.PossibleWithBindings("anything")
	want := []string{"w0", "w1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PossibleWithBindings = %v, want %v (outermost first, innermost last)", got, want)
	}
}

func TestWithScopeDelegatesGlobalAndLocal(t *testing.T) {
	g := scope.NewGlobal(nil)
	param := &scope.Binding{Name: "x", Node: ident("x")}
	f := scope.NewFunction(g, []*scope.Binding{param}, nil)
	w := scope.NewWith(f, "w0")

	if w.IsLocal("x") != f.IsLocal("x") {
		t.Errorf("with scope must delegate IsLocal to its parent")
	}
	if w.IsGlobal("y") != f.IsGlobal("y") {
		t.Errorf("with scope must delegate IsGlobal to its parent")
	}
	if got := w.PossibleWithBindings("x"); !reflect.DeepEqual(got, []string{"w0"}) {
		t.Errorf("PossibleWithBindings(x) = %v, want [w0]", got)
	}
}

func TestFunctionDeclsReturnedVerbatim(t *testing.T) {
	g := scope.NewGlobal(nil)
	decls := []*scope.Decl{{Name: "a", Node: ident("a")}, {Name: "b", Node: ident("b")}}
	f := scope.NewFunction(g, nil, decls)
	if got := f.Decls(); !reflect.DeepEqual(got, decls) {
		t.Errorf("Decls() = %v, want %v", got, decls)
	}
}
