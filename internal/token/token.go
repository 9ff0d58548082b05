// Package token defines the lightweight position and token value types
// shared by every normalizer AST node.
//
// Parsing itself is out of scope for this module; there is no scanner
// here. A Token only exists so that every node can report where it came
// from for diagnostics, the same way every go-dws AST node carries a
// lexer.Token for its Pos()/TokenLiteral() methods.
package token

import "fmt"

// Position identifies a location in source text.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String renders the position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Zero is the position synthesized nodes carry: normalization does not
// attempt to preserve source locations onto generated code.
var Zero = Position{Line: 1, Column: 1, Offset: 0}

// Token is the minimal provenance a node keeps: the literal text it was
// built from (a keyword, an operator, an identifier name) and where it
// came from. Normalizer-synthesized nodes get a synthetic Token with the
// same Literal they would print and a Zero Position.
type Token struct {
	Literal string
	Pos     Position
}
