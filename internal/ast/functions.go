package ast

import (
	"strings"

	"github.com/cwbudde/go-esnorm/internal/token"
)

// FunctionExpression is a function value: `function name?(params) body`.
// The Id is nil for anonymous function expressions. Normalized function
// bodies end in a return unless their last statement cannot complete
// normally, and begin with a single hoisted var declaration whenever they
// have local names or temporaries (spec.md §4.5, invariants 3/4/6).
type FunctionExpression struct {
	base
	ID     *Identifier // nil for anonymous
	Params []*Identifier
	Body   *BlockStatement
}

func (fe *FunctionExpression) expressionNode() {}
func (fe *FunctionExpression) String() string {
	var out strings.Builder
	out.WriteString("function ")
	if fe.ID != nil {
		out.WriteString(fe.ID.String())
	}
	out.WriteString("(")
	params := make([]string, len(fe.Params))
	for i, p := range fe.Params {
		params[i] = p.String()
	}
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(") ")
	out.WriteString(fe.Body.String())
	return out.String()
}

func NewFunctionExpression(id *Identifier, params []*Identifier, body *BlockStatement) *FunctionExpression {
	n := &FunctionExpression{ID: id, Params: params, Body: body}
	n.Token = token.Token{Literal: "function", Pos: body.Pos()}
	return n
}

// FunctionDeclaration is a named function declaration statement. It is
// hoisted: the statement normalizer emits nothing at its source position
// (spec.md §4.4) and the entity normalizer later synthesizes the
// equivalent `name = function(...) {...}` assignment at the top of the
// enclosing body (spec.md §4.5 step 5).
type FunctionDeclaration struct {
	base
	ID     *Identifier
	Params []*Identifier
	Body   *BlockStatement
}

func (fd *FunctionDeclaration) statementNode() {}
func (fd *FunctionDeclaration) String() string {
	var out strings.Builder
	out.WriteString("function ")
	out.WriteString(fd.ID.String())
	out.WriteString("(")
	params := make([]string, len(fd.Params))
	for i, p := range fd.Params {
		params[i] = p.String()
	}
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(") ")
	out.WriteString(fd.Body.String())
	return out.String()
}

func NewFunctionDeclaration(id *Identifier, params []*Identifier, body *BlockStatement) *FunctionDeclaration {
	n := &FunctionDeclaration{ID: id, Params: params, Body: body}
	n.Token = token.Token{Literal: "function", Pos: id.Pos()}
	return n
}
