package ast

import (
	"bytes"
	"strings"

	"github.com/cwbudde/go-esnorm/internal/token"
)

// WhileStatement is `while (test) body`. The statement normalizer lowers
// while, do-while, and for loops into this single shape wrapped in
// break/continue labels (spec.md §4.4, Design Notes); for-in stays a
// ForInStatement, wrapped in the same pair of labels.
type WhileStatement struct {
	base
	Test Expression
	Body Statement
}

func (ws *WhileStatement) statementNode() {}
func (ws *WhileStatement) String() string {
	return "while (" + ws.Test.String() + ") " + ws.Body.String()
}

func NewWhileStatement(test Expression, body Statement) *WhileStatement {
	n := &WhileStatement{Test: test, Body: body}
	n.Token = token.Token{Literal: "while", Pos: test.Pos()}
	return n
}

// DoWhileStatement is `do body while (test)`. Desugared away by the
// statement normalizer before anything downstream ever sees it.
type DoWhileStatement struct {
	base
	Body Statement
	Test Expression
}

func (dw *DoWhileStatement) statementNode() {}
func (dw *DoWhileStatement) String() string {
	return "do " + dw.Body.String() + " while (" + dw.Test.String() + ")"
}

func NewDoWhileStatement(body Statement, test Expression) *DoWhileStatement {
	n := &DoWhileStatement{Body: body, Test: test}
	n.Token = token.Token{Literal: "do", Pos: body.Pos()}
	return n
}

// ForStatement is the classic three-clause `for (init; test; update) body`.
// Any clause may be nil.
type ForStatement struct {
	base
	Init   Node // *VariableDeclaration or Expression, or nil
	Test   Expression
	Update Expression
	Body   Statement
}

func (fs *ForStatement) statementNode() {}
func (fs *ForStatement) String() string {
	var out bytes.Buffer
	out.WriteString("for (")
	if fs.Init != nil {
		out.WriteString(fs.Init.String())
	}
	out.WriteString("; ")
	if fs.Test != nil {
		out.WriteString(fs.Test.String())
	}
	out.WriteString("; ")
	if fs.Update != nil {
		out.WriteString(fs.Update.String())
	}
	out.WriteString(") ")
	out.WriteString(fs.Body.String())
	return out.String()
}

func NewForStatement(init Node, test, update Expression, body Statement) *ForStatement {
	n := &ForStatement{Init: init, Test: test, Update: update, Body: body}
	n.Token = token.Token{Literal: "for", Pos: body.Pos()}
	return n
}

// ForInStatement is `for (left in right) body`. Left is either a fresh
// *VariableDeclaration (when the source declared the loop variable) or an
// Expression naming an existing binding.
type ForInStatement struct {
	base
	Left  Node
	Right Expression
	Body  Statement
}

func (fis *ForInStatement) statementNode() {}
func (fis *ForInStatement) String() string {
	return "for (" + fis.Left.String() + " in " + fis.Right.String() + ") " + fis.Body.String()
}

func NewForInStatement(left Node, right Expression, body Statement) *ForInStatement {
	n := &ForInStatement{Left: left, Right: right, Body: body}
	n.Token = token.Token{Literal: "for", Pos: right.Pos()}
	return n
}

// SwitchCase is one `case test:` or `default:` arm of a SwitchStatement.
// Test is nil for the default arm.
type SwitchCase struct {
	base
	Test       Expression
	Consequent []Statement
}

func (sc *SwitchCase) String() string {
	var out bytes.Buffer
	if sc.Test != nil {
		out.WriteString("case " + sc.Test.String() + ":\n")
	} else {
		out.WriteString("default:\n")
	}
	for _, s := range sc.Consequent {
		out.WriteString("  ")
		out.WriteString(strings.ReplaceAll(s.String(), "\n", "\n  "))
		out.WriteString("\n")
	}
	return out.String()
}

func NewSwitchCase(test Expression, consequent ...Statement) *SwitchCase {
	n := &SwitchCase{Test: test, Consequent: consequent}
	if test != nil {
		n.Token = token.Token{Literal: "case", Pos: test.Pos()}
	} else {
		n.Token = token.Token{Literal: "default", Pos: token.Zero}
	}
	return n
}

// SwitchStatement dispatches on Discriminant across Cases in source order.
// The statement normalizer lowers this entirely into chained `if`s
// (spec.md §4.4), preserving fall-through.
type SwitchStatement struct {
	base
	Discriminant Expression
	Cases        []*SwitchCase
}

func (ss *SwitchStatement) statementNode() {}
func (ss *SwitchStatement) String() string {
	var out bytes.Buffer
	out.WriteString("switch (" + ss.Discriminant.String() + ") {\n")
	for _, c := range ss.Cases {
		out.WriteString(c.String())
	}
	out.WriteString("}")
	return out.String()
}

func NewSwitchStatement(discriminant Expression, cases ...*SwitchCase) *SwitchStatement {
	n := &SwitchStatement{Discriminant: discriminant, Cases: cases}
	n.Token = token.Token{Literal: "switch", Pos: discriminant.Pos()}
	return n
}

// WithStatement opens a dynamic scope over Object for the duration of
// Body: any unqualified name inside Body may resolve to a property of
// Object instead of its lexical binding (spec.md Design Notes).
type WithStatement struct {
	base
	Object Expression
	Body   Statement
}

func (ws *WithStatement) statementNode() {}
func (ws *WithStatement) String() string {
	return "with (" + ws.Object.String() + ") " + ws.Body.String()
}

func NewWithStatement(object Expression, body Statement) *WithStatement {
	n := &WithStatement{Object: object, Body: body}
	n.Token = token.Token{Literal: "with", Pos: object.Pos()}
	return n
}
