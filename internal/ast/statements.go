package ast

import (
	"bytes"
	"strings"

	"github.com/cwbudde/go-esnorm/internal/token"
)

// EmptyStatement is the bare `;`. An EmptyStatement in the input
// normalizes to nothing. Under backwards_compatible the block-builder
// emits them itself: as the sole statement of an otherwise empty block,
// and after a trailing IfStatement (spec.md §4.6).
type EmptyStatement struct {
	base
}

func (es *EmptyStatement) statementNode() {}
func (es *EmptyStatement) String() string { return ";" }

func NewEmptyStatement() *EmptyStatement {
	n := &EmptyStatement{}
	n.Token = token.Token{Literal: ";", Pos: token.Zero}
	return n
}

// ExpressionStatement wraps an expression evaluated for its side effects.
type ExpressionStatement struct {
	base
	Expression Expression
}

func (es *ExpressionStatement) statementNode() {}
func (es *ExpressionStatement) String() string {
	if es.Expression == nil {
		return ";"
	}
	return es.Expression.String() + ";"
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	n := &ExpressionStatement{Expression: expr}
	if expr != nil {
		n.Token = token.Token{Literal: expr.TokenLiteral(), Pos: expr.Pos()}
	}
	return n
}

// VariableDeclarator is one `name` or `name = init` binding inside a
// VariableDeclaration.
type VariableDeclarator struct {
	base
	ID   *Identifier
	Init Expression // nil when the declarator has no initializer
}

func (vd *VariableDeclarator) String() string {
	if vd.Init == nil {
		return vd.ID.String()
	}
	return vd.ID.String() + " = " + vd.Init.String()
}

func NewVariableDeclarator(id *Identifier, init Expression) *VariableDeclarator {
	n := &VariableDeclarator{ID: id, Init: init}
	n.Token = id.Token
	return n
}

// VariableDeclaration is a `var` statement, possibly declaring several
// names at once. Every generated temporary and every hoisted local name
// ends up in exactly one VariableDeclaration at the top of its enclosing
// function/program body (spec.md §4.5, invariant 6).
type VariableDeclaration struct {
	base
	Declarations []*VariableDeclarator
}

func (vd *VariableDeclaration) statementNode() {}
func (vd *VariableDeclaration) String() string {
	parts := make([]string, len(vd.Declarations))
	for i, d := range vd.Declarations {
		parts[i] = d.String()
	}
	return "var " + strings.Join(parts, ", ") + ";"
}

func NewVariableDeclaration(decls ...*VariableDeclarator) *VariableDeclaration {
	n := &VariableDeclaration{Declarations: decls}
	n.Token = token.Token{Literal: "var", Pos: token.Zero}
	if len(decls) > 0 {
		n.Token.Pos = decls[0].Pos()
	}
	return n
}

// BlockStatement is a `{ ... }` sequence of statements.
type BlockStatement struct {
	base
	Body []Statement
}

func (bs *BlockStatement) statementNode() {}
func (bs *BlockStatement) String() string {
	var out bytes.Buffer
	out.WriteString("{\n")
	for _, stmt := range bs.Body {
		out.WriteString("  ")
		out.WriteString(strings.ReplaceAll(stmt.String(), "\n", "\n  "))
		out.WriteString("\n")
	}
	out.WriteString("}")
	return out.String()
}

func NewBlockStatement(body ...Statement) *BlockStatement {
	n := &BlockStatement{Body: body}
	n.Token = token.Token{Literal: "{", Pos: token.Zero}
	return n
}

// ReturnStatement returns from the enclosing function, with or without a
// value. unify_ret rewrites every ReturnStatement in a function body into
// an assignment plus a labeled break (spec.md §4.4), so after that option
// the only surviving ReturnStatement is the synthesized trailing one.
type ReturnStatement struct {
	base
	Argument Expression // nil for bare `return;`
}

func (rs *ReturnStatement) statementNode() {}
func (rs *ReturnStatement) String() string {
	if rs.Argument == nil {
		return "return;"
	}
	return "return " + rs.Argument.String() + ";"
}

func NewReturnStatement(argument Expression) *ReturnStatement {
	n := &ReturnStatement{Argument: argument}
	n.Token = token.Token{Literal: "return", Pos: token.Zero}
	return n
}

// DebuggerStatement is the `debugger;` statement; it passes through
// normalization unchanged (spec.md §4.4).
type DebuggerStatement struct {
	base
}

func (ds *DebuggerStatement) statementNode() {}
func (ds *DebuggerStatement) String() string { return "debugger;" }

func NewDebuggerStatement() *DebuggerStatement {
	n := &DebuggerStatement{}
	n.Token = token.Token{Literal: "debugger", Pos: token.Zero}
	return n
}

// IfStatement is `if (test) consequent [else alternate]`. IfStatements in
// normalized output are built via mkIf (spec.md §4.6) and target an
// identifier condition, except the `name in obj` guards that ifInWrap
// builds for with-routing and reference_errors checks, whose test is that
// `in` BinaryExpression over two identifiers.
type IfStatement struct {
	base
	Test       Expression
	Consequent Statement
	Alternate  Statement // nil when there is no else-arm
}

func (is *IfStatement) statementNode() {}
func (is *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("if (")
	out.WriteString(is.Test.String())
	out.WriteString(") ")
	out.WriteString(is.Consequent.String())
	if is.Alternate != nil {
		out.WriteString(" else ")
		out.WriteString(is.Alternate.String())
	}
	return out.String()
}

func NewIfStatement(test Expression, consequent, alternate Statement) *IfStatement {
	n := &IfStatement{Test: test, Consequent: consequent, Alternate: alternate}
	n.Token = token.Token{Literal: "if", Pos: test.Pos()}
	return n
}

// ThrowStatement raises an exception value.
type ThrowStatement struct {
	base
	Argument Expression
}

func (ts *ThrowStatement) statementNode() {}
func (ts *ThrowStatement) String() string { return "throw " + ts.Argument.String() + ";" }

func NewThrowStatement(argument Expression) *ThrowStatement {
	n := &ThrowStatement{Argument: argument}
	n.Token = token.Token{Literal: "throw", Pos: argument.Pos()}
	return n
}

// LabeledStatement attaches a label to a statement, almost always a loop
// or a block synthesized by the statement normalizer to give `break`/
// `continue` an explicit target (spec.md invariant 5: every break/continue
// in the output carries an explicit label).
type LabeledStatement struct {
	base
	Label string
	Body  Statement
}

func (ls *LabeledStatement) statementNode() {}
func (ls *LabeledStatement) String() string { return ls.Label + ": " + ls.Body.String() }

func NewLabeledStatement(label string, body Statement) *LabeledStatement {
	n := &LabeledStatement{Label: label, Body: body}
	n.Token = token.Token{Literal: label, Pos: body.Pos()}
	return n
}

// BreakStatement exits the nearest labeled statement named Label (never
// an implicit enclosing loop after normalization).
type BreakStatement struct {
	base
	Label string
}

func (bs *BreakStatement) statementNode() {}
func (bs *BreakStatement) String() string {
	if bs.Label == "" {
		return "break;"
	}
	return "break " + bs.Label + ";"
}

func NewBreakStatement(label string) *BreakStatement {
	n := &BreakStatement{Label: label}
	n.Token = token.Token{Literal: "break", Pos: token.Zero}
	return n
}

// ContinueStatement is rewritten by the statement normalizer into a
// BreakStatement targeting the loop's continue label (spec.md §4.4); the
// node kind itself only ever appears transiently in input ASTs.
type ContinueStatement struct {
	base
	Label string
}

func (cs *ContinueStatement) statementNode() {}
func (cs *ContinueStatement) String() string {
	if cs.Label == "" {
		return "continue;"
	}
	return "continue " + cs.Label + ";"
}

func NewContinueStatement(label string) *ContinueStatement {
	n := &ContinueStatement{Label: label}
	n.Token = token.Token{Literal: "continue", Pos: token.Zero}
	return n
}
