package normalize

import (
	"github.com/cwbudde/go-esnorm/internal/ast"
	"github.com/cwbudde/go-esnorm/internal/token"
)

// globalName is the reserved identifier bound to the host global object.
const globalName = "__global"

func ident(name string) *ast.Identifier {
	return ast.NewIdentifier(name, token.Token{})
}

func assignTo(lhs, value ast.Expression) ast.Statement {
	return ast.NewExpressionStatement(ast.NewAssignmentExpression("=", lhs, value))
}

func assign(name string, value ast.Expression) ast.Statement {
	return assignTo(ident(name), value)
}

// mkMemberPlain builds obj[idx] with no source-computedness to preserve:
// used for synthesized __global/with-object routing, which has no source
// MemberExpression behind it.
func mkMemberPlain(objName, idxName string) *ast.MemberExpression {
	return ast.NewMemberExpression(ident(objName), ident(idxName), true)
}

// mkMember builds base[idx] (always bracket form, since the property is
// now an identifier holding a name or index), but stamps isComputed to
// reflect whether the *source* access was computed, per spec.
func mkMember(baseTmp, idxTmp string, sourceComputed bool) *ast.MemberExpression {
	m := ast.NewMemberExpression(ident(baseTmp), ident(idxTmp), true)
	m.SetAttribute(ast.AttrIsComputed, sourceComputed)
	return m
}

// propertyName extracts the literal property name from a non-computed
// member access's property node (an Identifier in the common case).
func propertyName(e ast.Expression) string {
	switch v := e.(type) {
	case *ast.Identifier:
		return v.Name
	case *ast.Literal:
		if s, ok := v.Value.(string); ok {
			return s
		}
	}
	return e.TokenLiteral()
}

func lastOf(stmts []ast.Statement) ast.Statement {
	if len(stmts) == 0 {
		return nil
	}
	return stmts[len(stmts)-1]
}

// withWrap applies the with-binding read/write cascade spec.md §4.3
// describes: wraps fallback in nested `if (nameTmp in withVar) {...} else
// {previous}` tests, one per entry of withVars (outermost first,
// innermost last), so the innermost with layer is checked first at
// runtime. branch builds the then-arm's statements for a given with
// object's temporary name.
func (e *entity) withWrap(withVars []string, nameTmp string, branch func(objName string) []ast.Statement, fallback []ast.Statement) []ast.Statement {
	body := fallback
	for _, wv := range withVars {
		body = []ast.Statement{e.ifInWrap(wv, nameTmp, branch(wv), body)}
	}
	return body
}

func nonNil(stmts []ast.Statement) []ast.Statement {
	if stmts == nil {
		return []ast.Statement{}
	}
	return stmts
}
