package cflow_test

import (
	"testing"

	"github.com/cwbudde/go-esnorm/internal/ast"
	"github.com/cwbudde/go-esnorm/internal/cflow"
	"github.com/cwbudde/go-esnorm/internal/token"
)

func ident(name string) *ast.Identifier {
	return ast.NewIdentifier(name, token.Token{})
}

func TestMayCompleteNormallyNil(t *testing.T) {
	if !cflow.MayCompleteNormally(nil) {
		t.Errorf("nil statement should complete normally")
	}
}

func TestMayCompleteNormallyTerminators(t *testing.T) {
	terminators := []ast.Statement{
		ast.NewReturnStatement(nil),
		ast.NewThrowStatement(ident("e")),
		ast.NewBreakStatement("L"),
		ast.NewContinueStatement("L"),
	}
	for _, s := range terminators {
		if cflow.MayCompleteNormally(s) {
			t.Errorf("%T should not complete normally", s)
		}
	}
}

func TestMayCompleteNormallyBlock(t *testing.T) {
	empty := ast.NewBlockStatement()
	if !cflow.MayCompleteNormally(empty) {
		t.Errorf("an empty block completes normally")
	}
	terminated := ast.NewBlockStatement(
		ast.NewExpressionStatement(ident("x")),
		ast.NewReturnStatement(nil),
	)
	if cflow.MayCompleteNormally(terminated) {
		t.Errorf("a block ending in return should not complete normally")
	}
}

func TestMayCompleteNormallyIf(t *testing.T) {
	ret := ast.NewReturnStatement(nil)
	noElse := ast.NewIfStatement(ident("c"), ret, nil)
	if !cflow.MayCompleteNormally(noElse) {
		t.Errorf("an if with no else arm may always complete normally")
	}
	bothReturn := ast.NewIfStatement(ident("c"), ret, ast.NewReturnStatement(nil))
	if cflow.MayCompleteNormally(bothReturn) {
		t.Errorf("an if where both arms return should not complete normally")
	}
	oneFallsThrough := ast.NewIfStatement(ident("c"), ret, ast.NewBlockStatement())
	if !cflow.MayCompleteNormally(oneFallsThrough) {
		t.Errorf("an if where one arm falls through should complete normally")
	}
}

func TestMayCompleteNormallyLoopsAlwaysTrue(t *testing.T) {
	w := ast.NewWhileStatement(ident("c"), ast.NewBlockStatement(ast.NewReturnStatement(nil)))
	if !cflow.MayCompleteNormally(w) {
		t.Errorf("loops are conservatively always considered to complete normally")
	}
}

func TestMayCompleteNormallySwitchNeedsDefault(t *testing.T) {
	noDefault := ast.NewSwitchStatement(ident("x"),
		ast.NewSwitchCase(ast.NewNumberLiteral(1, "1"), ast.NewReturnStatement(nil)))
	if !cflow.MayCompleteNormally(noDefault) {
		t.Errorf("a switch with no default may always complete normally")
	}

	withDefaultFallsThrough := ast.NewSwitchStatement(ident("x"),
		ast.NewSwitchCase(ast.NewNumberLiteral(1, "1"), ast.NewReturnStatement(nil)),
		ast.NewSwitchCase(nil, ast.NewExpressionStatement(ident("y"))))
	if !cflow.MayCompleteNormally(withDefaultFallsThrough) {
		t.Errorf("a switch with a default whose last case falls through should complete normally")
	}

	withDefaultReturns := ast.NewSwitchStatement(ident("x"),
		ast.NewSwitchCase(ast.NewNumberLiteral(1, "1"), ast.NewReturnStatement(nil)),
		ast.NewSwitchCase(nil, ast.NewReturnStatement(nil)))
	if cflow.MayCompleteNormally(withDefaultReturns) {
		t.Errorf("a switch with a default whose last case returns should not complete normally")
	}
}

func TestMayCompleteNormallyTry(t *testing.T) {
	tryReturnsNoCatch := ast.NewTryStatement(
		ast.NewBlockStatement(ast.NewReturnStatement(nil)), nil, nil)
	if cflow.MayCompleteNormally(tryReturnsNoCatch) {
		t.Errorf("a try with no handler/finalizer should mirror its block")
	}

	finalizerTerminates := ast.NewTryStatement(
		ast.NewBlockStatement(ast.NewExpressionStatement(ident("x"))), nil,
		ast.NewBlockStatement(ast.NewReturnStatement(nil)))
	if cflow.MayCompleteNormally(finalizerTerminates) {
		t.Errorf("a terminating finally should dominate regardless of the try block")
	}

	handlerFallsThrough := ast.NewTryStatement(
		ast.NewBlockStatement(ast.NewReturnStatement(nil)),
		ast.NewCatchClause(ident("e"), ast.NewBlockStatement(ast.NewExpressionStatement(ident("x")))),
		nil)
	if !cflow.MayCompleteNormally(handlerFallsThrough) {
		t.Errorf("if either the try block or the handler may complete normally, the whole statement may")
	}
}

func TestMayCompleteNormallyLabeledAndWithDelegate(t *testing.T) {
	labeled := ast.NewLabeledStatement("L", ast.NewReturnStatement(nil))
	if cflow.MayCompleteNormally(labeled) {
		t.Errorf("LabeledStatement should delegate to its body")
	}
	with := ast.NewWithStatement(ident("obj"), ast.NewReturnStatement(nil))
	if cflow.MayCompleteNormally(with) {
		t.Errorf("WithStatement should delegate to its body")
	}
}

func TestMayCompleteNormallyDefault(t *testing.T) {
	always := []ast.Statement{
		ast.NewExpressionStatement(ident("x")),
		ast.NewEmptyStatement(),
		ast.NewDebuggerStatement(),
	}
	for _, s := range always {
		if !cflow.MayCompleteNormally(s) {
			t.Errorf("%T should complete normally", s)
		}
	}
}
