package ast

import (
	"bytes"

	"github.com/cwbudde/go-esnorm/internal/token"
)

// CatchClause is the `catch (param) body` part of a TryStatement. Param
// may be nil for a parameterless catch; spec.md §4.4 rejects guarded or
// multiple handlers at the parser/input level, so there is exactly zero
// or one CatchClause per TryStatement here.
type CatchClause struct {
	base
	Param *Identifier // nil for a parameterless catch
	Body  *BlockStatement
}

func (cc *CatchClause) String() string {
	var out bytes.Buffer
	out.WriteString("catch ")
	if cc.Param != nil {
		out.WriteString("(" + cc.Param.String() + ") ")
	}
	out.WriteString(cc.Body.String())
	return out.String()
}

func NewCatchClause(param *Identifier, body *BlockStatement) *CatchClause {
	n := &CatchClause{Param: param, Body: body}
	n.Token = token.Token{Literal: "catch", Pos: body.Pos()}
	return n
}

// TryStatement is `try block [catch handler] [finally finalizer]`. After
// normalization a try/catch/finally has always been split into a nested
// try{try{}catch{}}finally{} per spec.md §4.4, so Handler and Finalizer
// are never both non-nil in output from this normalizer (only Handler XOR
// Finalizer, or just one of them).
type TryStatement struct {
	base
	Block     *BlockStatement
	Handler   *CatchClause    // nil if no catch
	Finalizer *BlockStatement // nil if no finally
}

func (ts *TryStatement) statementNode() {}
func (ts *TryStatement) String() string {
	var out bytes.Buffer
	out.WriteString("try ")
	out.WriteString(ts.Block.String())
	if ts.Handler != nil {
		out.WriteString(" ")
		out.WriteString(ts.Handler.String())
	}
	if ts.Finalizer != nil {
		out.WriteString(" finally ")
		out.WriteString(ts.Finalizer.String())
	}
	return out.String()
}

func NewTryStatement(block *BlockStatement, handler *CatchClause, finalizer *BlockStatement) *TryStatement {
	n := &TryStatement{Block: block, Handler: handler, Finalizer: finalizer}
	n.Token = token.Token{Literal: "try", Pos: block.Pos()}
	return n
}
