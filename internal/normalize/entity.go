package normalize

import (
	"fmt"

	"github.com/cwbudde/go-esnorm/internal/ast"
	"github.com/cwbudde/go-esnorm/internal/cflow"
	"github.com/cwbudde/go-esnorm/internal/decls"
	"github.com/cwbudde/go-esnorm/internal/normerr"
	"github.com/cwbudde/go-esnorm/internal/scope"
	"github.com/cwbudde/go-esnorm/internal/token"
)

// shared is the state a top-level Normalize call threads through every
// nested entity: the fresh-name counter and the single fatal error latch
// (spec.md §5: "single-threaded, synchronous, purely functional with
// internal mutation"; §7: one error aborts the whole call).
type shared struct {
	counter int
	err     *normerr.NormalizationError
}

// entity is the per-function/per-program normalization state spec.md §3
// describes: the generated temporaries, the unify_ret labels, and the
// current scope chain link. One entity exists per function or program
// being finalized; nested functions get their own child entity sharing
// the same counter and error latch.
type entity struct {
	opts          Options
	sc            scope.Scope
	tmps          []*ast.VariableDeclarator
	retLabel      string
	retVar        string
	contTargets   map[string]string
	sh            *shared
	atProgramRoot bool
}

func newEntity(sh *shared, opts Options, sc scope.Scope) *entity {
	return &entity{opts: opts, sc: sc, sh: sh, contTargets: make(map[string]string)}
}

func (e *entity) child(sc scope.Scope) *entity {
	return newEntity(e.sh, e.opts, sc)
}

func (e *entity) failed() bool { return e.sh.err != nil }

func (e *entity) fail(code, msg string, pos token.Position) {
	if e.sh.err == nil {
		e.sh.err = normerr.New(code, msg, pos)
	}
}

func (e *entity) failf(code string, pos token.Position, format string, args ...any) {
	e.fail(code, fmt.Sprintf(format, args...), pos)
}

// block is the block-builder spec.md §4.6 names: under
// backwards_compatible, an empty block becomes a single empty statement,
// and a trailing IfStatement gets a synthetic empty statement after it.
func (e *entity) block(stmts []ast.Statement) *ast.BlockStatement {
	if len(stmts) == 0 {
		if e.opts.BackwardsCompatible {
			return ast.NewBlockStatement(ast.NewEmptyStatement())
		}
		return ast.NewBlockStatement()
	}
	if e.opts.BackwardsCompatible {
		if _, ok := stmts[len(stmts)-1].(*ast.IfStatement); ok {
			stmts = append(stmts, ast.NewEmptyStatement())
		}
	}
	return ast.NewBlockStatement(stmts...)
}

func paramBindings(params []*ast.Identifier) []*scope.Binding {
	out := make([]*scope.Binding, len(params))
	for i, p := range params {
		out[i] = &scope.Binding{Name: p.Name, Node: p}
	}
	return out
}

// hoistedVarDecl builds the single `var` statement spec.md §4.5 step 6
// requires: every hoisted local name (deduplicated, insertion order)
// followed by every generated temporary.
func (e *entity) hoistedVarDecl(hoisted []*scope.Decl) *ast.VariableDeclaration {
	seen := make(map[string]bool, len(hoisted))
	var declarators []*ast.VariableDeclarator
	for _, d := range hoisted {
		if seen[d.Name] {
			continue
		}
		seen[d.Name] = true
		declarators = append(declarators, ast.NewVariableDeclarator(ident(d.Name), nil))
	}
	declarators = append(declarators, e.tmps...)
	if len(declarators) == 0 {
		return nil
	}
	return ast.NewVariableDeclaration(declarators...)
}

// assignPrebuilt assigns an already-built expression (a finalized
// FunctionExpression, in practice) to identifier id, applying the same
// global/with-routing and exposed-marking rules as an ordinary
// identifier assignment, but without re-normalizing value — it is
// already in normal form.
func (e *entity) assignPrebuilt(id *ast.Identifier, value ast.Expression) []ast.Statement {
	name := id.Name
	withVars := e.sc.PossibleWithBindings(name)
	if !e.sc.IsLocal(name) {
		if bind, ok := e.sc.Lookup(name); ok {
			bind.SetAttribute(ast.AttrExposed, true)
		}
	}
	global := e.sc.IsGlobal(name)
	var stmts []ast.Statement
	var nameTmp string
	if global || len(withVars) > 0 {
		nameTmp = e.genTmp()
		stmts = append(stmts, assign(nameTmp, ast.NewStringLiteral(name)))
	}
	tgt := e.genTmp()
	stmts = append(stmts, assign(tgt, value))
	var plainWrite ast.Statement
	if global {
		plainWrite = assignTo(mkMemberPlain(globalName, nameTmp), ident(tgt))
	} else {
		plainWrite = assign(name, ident(tgt))
	}
	body := e.withWrap(withVars, nameTmp, func(wv string) []ast.Statement {
		return []ast.Statement{assignTo(mkMemberPlain(wv, nameTmp), ident(tgt))}
	}, []ast.Statement{plainWrite})
	return append(stmts, body...)
}

// functionDeclPrelude synthesizes, for every hoisted FunctionDeclaration
// in hoisted, the `name := function(params){body}` assignment spec.md
// §4.5 step 5 describes, finalizing each inner function body under its
// own child entity. Backwards-compatible mode keeps the inner function's
// own name; otherwise it is stripped (anonymized).
func (e *entity) functionDeclPrelude(hoisted []*scope.Decl) []ast.Statement {
	var out []ast.Statement
	for _, d := range hoisted {
		fd, ok := d.Node.(*ast.FunctionDeclaration)
		if !ok {
			continue
		}
		if e.failed() {
			return out
		}
		innerDecls := decls.Collect(fd.Body.Body)
		child := e.child(scope.NewFunction(e.sc, paramBindings(fd.Params), innerDecls))
		var innerID *ast.Identifier
		if e.opts.BackwardsCompatible {
			innerID = fd.ID
		}
		fe, _ := child.finalizeFunction(innerID, fd.Params, fd.Body, fd, fd.Pos())
		if e.failed() {
			return out
		}
		out = append(out, e.assignPrebuilt(fd.ID, fe)...)
	}
	return out
}

// normalizeNestedFunction normalizes a FunctionExpression appearing as a
// value (an rvalue, an object accessor, a call argument) under a fresh
// child function scope, and returns the finalized replacement.
func (e *entity) normalizeNestedFunction(fe *ast.FunctionExpression) *ast.FunctionExpression {
	if e.failed() {
		return fe
	}
	hoisted := decls.Collect(fe.Body.Body)
	child := e.child(scope.NewFunction(e.sc, paramBindings(fe.Params), hoisted))
	result, _ := child.finalizeFunction(fe.ID, fe.Params, fe.Body, fe, fe.Pos())
	if e.failed() {
		return fe
	}
	return result
}

// finalizeFunction runs spec.md §4.5 steps 1-7 for a function root:
// allocate unify_ret plumbing, normalize the body, attach the trailing
// return, reject a downward-exposed function, prepend the hoisted
// function-declaration prelude and the hoisted var declaration, and emit
// the replacement FunctionExpression. selfNode is the original AST node
// whose own exposed attribute gates step 4 — the FunctionDeclaration
// itself when finalizing a hoisted declaration (so a non-local reassign
// of its own name fails it), or the FunctionExpression node otherwise.
func (e *entity) finalizeFunction(id *ast.Identifier, params []*ast.Identifier, body *ast.BlockStatement, selfNode ast.Attributed, selfPos token.Position) (*ast.FunctionExpression, *normerr.NormalizationError) {
	if e.failed() {
		return nil, e.sh.err
	}
	if e.opts.UnifyRet {
		e.retLabel = e.genLabel()
		e.retVar = e.genTmp()
	}
	normalized := e.normalizeStmtList(body.Body, "", "")
	if e.failed() {
		return nil, e.sh.err
	}
	var finalBody []ast.Statement
	if e.opts.UnifyRet {
		finalBody = []ast.Statement{
			ast.NewLabeledStatement(e.retLabel, e.block(normalized)),
			ast.NewReturnStatement(ident(e.retVar)),
		}
	} else {
		finalBody = normalized
		if cflow.MayCompleteNormally(lastOf(body.Body)) {
			finalBody = append(finalBody, ast.NewReturnStatement(ast.NewNullLiteral()))
		}
	}
	if v, ok := selfNode.GetAttribute(ast.AttrExposed); ok {
		if b, _ := v.(bool); b {
			e.fail(normerr.ErrDownwardExposed, "cannot normalize downward-exposed function expression", selfPos)
			return nil, e.sh.err
		}
	}
	hoisted := e.sc.Decls()
	prelude := e.functionDeclPrelude(hoisted)
	if e.failed() {
		return nil, e.sh.err
	}
	finalBody = append(prelude, finalBody...)
	if varDecl := e.hoistedVarDecl(hoisted); varDecl != nil {
		finalBody = append([]ast.Statement{varDecl}, finalBody...)
	}
	return ast.NewFunctionExpression(id, params, e.block(finalBody)), nil
}

// finalizeProgram runs the Program-root variant of §4.5: normalize every
// top-level statement, build the same function-declaration prelude and
// hoisted var declaration, and wrap the whole thing as the
// `(function(__global){...})(this)` IIFE.
func (e *entity) finalizeProgram(prog *ast.Program) (*ast.Program, *normerr.NormalizationError) {
	e.atProgramRoot = true
	normalized := e.normalizeStmtList(prog.Body, "", "")
	if e.failed() {
		return nil, e.sh.err
	}
	hoisted := e.sc.Decls()
	prelude := e.functionDeclPrelude(hoisted)
	if e.failed() {
		return nil, e.sh.err
	}
	body := append(prelude, normalized...)
	if varDecl := e.hoistedVarDecl(hoisted); varDecl != nil {
		body = append([]ast.Statement{varDecl}, body...)
	}
	iife := ast.NewFunctionExpression(nil, []*ast.Identifier{ident(globalName)}, e.block(body))
	call := ast.NewCallExpression(iife, ast.NewThisExpression(token.Token{}))
	return ast.NewProgram([]ast.Statement{ast.NewExpressionStatement(call)}), nil
}
