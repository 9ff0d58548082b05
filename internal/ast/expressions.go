package ast

import (
	"bytes"
	"strings"

	"github.com/cwbudde/go-esnorm/internal/token"
)

// ArrayExpression is an array literal. Elisions (holes) are represented
// as a nil Element entry and are preserved as-is by the expression
// normalizer (spec.md §4.3).
type ArrayExpression struct {
	base
	Elements []Expression // nil entries are elisions
}

func (ae *ArrayExpression) expressionNode() {}
func (ae *ArrayExpression) String() string {
	parts := make([]string, len(ae.Elements))
	for i, e := range ae.Elements {
		if e == nil {
			parts[i] = ""
			continue
		}
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func NewArrayExpression(elements ...Expression) *ArrayExpression {
	n := &ArrayExpression{Elements: elements}
	n.Token = token.Token{Literal: "[", Pos: token.Zero}
	return n
}

// PropertyKind discriminates an ObjectExpression member.
type PropertyKind int

const (
	PropertyInit PropertyKind = iota
	PropertyGet
	PropertySet
)

func (k PropertyKind) String() string {
	switch k {
	case PropertyGet:
		return "get"
	case PropertySet:
		return "set"
	default:
		return "init"
	}
}

// Property is one member of an ObjectExpression: `key: value` for init
// properties, or an accessor function for get/set (spec.md §4.3).
type Property struct {
	base
	Key   Expression // Identifier or Literal
	Value Expression // an Identifier for init properties, a FunctionExpression for get/set
	Kind  PropertyKind
}

func (p *Property) String() string {
	if p.Kind != PropertyInit {
		return p.Kind.String() + " " + p.Key.String() + p.Value.String()
	}
	return p.Key.String() + ": " + p.Value.String()
}

func NewProperty(key, value Expression, kind PropertyKind) *Property {
	n := &Property{Key: key, Value: value, Kind: kind}
	n.Token = token.Token{Literal: key.TokenLiteral(), Pos: key.Pos()}
	return n
}

// ObjectExpression is an object literal aggregating properties in input
// order (spec.md §4.3).
type ObjectExpression struct {
	base
	Properties []*Property
}

func (oe *ObjectExpression) expressionNode() {}
func (oe *ObjectExpression) String() string {
	parts := make([]string, len(oe.Properties))
	for i, p := range oe.Properties {
		parts[i] = p.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func NewObjectExpression(props ...*Property) *ObjectExpression {
	n := &ObjectExpression{Properties: props}
	n.Token = token.Token{Literal: "{", Pos: token.Zero}
	return n
}

// MemberExpression is `object.property` or `object[property]`. The
// normalizer marks AttrIsComputed on every member node it synthesizes
// from a computed source access (spec.md §3/§4.3).
type MemberExpression struct {
	base
	Object   Expression
	Property Expression
	Computed bool // true for obj[prop], false for obj.prop
}

func (me *MemberExpression) expressionNode() {}
func (me *MemberExpression) String() string {
	if me.Computed {
		return me.Object.String() + "[" + me.Property.String() + "]"
	}
	return me.Object.String() + "." + me.Property.String()
}

func NewMemberExpression(object, property Expression, computed bool) *MemberExpression {
	n := &MemberExpression{Object: object, Property: property, Computed: computed}
	n.Token = token.Token{Literal: ".", Pos: object.Pos()}
	if computed {
		n.SetAttribute(AttrIsComputed, true)
	}
	return n
}

// AssignmentExpression is `target op= value`. After normalization the only
// surviving operator is "=" (spec.md §4.3 desugars every compound form).
type AssignmentExpression struct {
	base
	Operator string // "="
	Target   Expression
	Value    Expression
}

func (ae *AssignmentExpression) expressionNode() {}
func (ae *AssignmentExpression) String() string {
	return ae.Target.String() + " " + ae.Operator + " " + ae.Value.String()
}

func NewAssignmentExpression(operator string, target, value Expression) *AssignmentExpression {
	n := &AssignmentExpression{Operator: operator, Target: target, Value: value}
	n.Token = token.Token{Literal: operator, Pos: target.Pos()}
	return n
}

// CallExpression is `callee(arguments...)`.
type CallExpression struct {
	base
	Callee    Expression
	Arguments []Expression
}

func (ce *CallExpression) expressionNode() {}
func (ce *CallExpression) String() string {
	args := make([]string, len(ce.Arguments))
	for i, a := range ce.Arguments {
		args[i] = a.String()
	}
	return ce.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}

func NewCallExpression(callee Expression, args ...Expression) *CallExpression {
	n := &CallExpression{Callee: callee, Arguments: args}
	n.Token = token.Token{Literal: "(", Pos: callee.Pos()}
	return n
}

// NewExpression is `new callee(arguments...)`.
type NewExpression struct {
	base
	Callee    Expression
	Arguments []Expression
}

func (ne *NewExpression) expressionNode() {}
func (ne *NewExpression) String() string {
	args := make([]string, len(ne.Arguments))
	for i, a := range ne.Arguments {
		args[i] = a.String()
	}
	return "new " + ne.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}

func NewNewExpression(callee Expression, args ...Expression) *NewExpression {
	n := &NewExpression{Callee: callee, Arguments: args}
	n.Token = token.Token{Literal: "new", Pos: callee.Pos()}
	return n
}

// SequenceExpression is the comma operator `a, b, c`; only the last
// expression's value survives (spec.md §4.3).
type SequenceExpression struct {
	base
	Expressions []Expression
}

func (se *SequenceExpression) expressionNode() {}
func (se *SequenceExpression) String() string {
	parts := make([]string, len(se.Expressions))
	for i, e := range se.Expressions {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

func NewSequenceExpression(exprs ...Expression) *SequenceExpression {
	n := &SequenceExpression{Expressions: exprs}
	if len(exprs) > 0 {
		n.Token = token.Token{Literal: ",", Pos: exprs[0].Pos()}
	}
	return n
}

// LogicalExpression is `left && right` or `left || right`.
type LogicalExpression struct {
	base
	Operator string // "&&" or "||"
	Left     Expression
	Right    Expression
}

func (le *LogicalExpression) expressionNode() {}
func (le *LogicalExpression) String() string {
	return "(" + le.Left.String() + " " + le.Operator + " " + le.Right.String() + ")"
}

func NewLogicalExpression(operator string, left, right Expression) *LogicalExpression {
	n := &LogicalExpression{Operator: operator, Left: left, Right: right}
	n.Token = token.Token{Literal: operator, Pos: left.Pos()}
	return n
}

// BinaryExpression is `left op right` for every non-short-circuit binary
// operator.
type BinaryExpression struct {
	base
	Operator string
	Left     Expression
	Right    Expression
}

func (be *BinaryExpression) expressionNode() {}
func (be *BinaryExpression) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(be.Left.String())
	out.WriteString(" " + be.Operator + " ")
	out.WriteString(be.Right.String())
	out.WriteString(")")
	return out.String()
}

func NewBinaryExpression(operator string, left, right Expression) *BinaryExpression {
	n := &BinaryExpression{Operator: operator, Left: left, Right: right}
	n.Token = token.Token{Literal: operator, Pos: left.Pos()}
	return n
}

// ConditionalExpression is the ternary `test ? consequent : alternate`.
type ConditionalExpression struct {
	base
	Test       Expression
	Consequent Expression
	Alternate  Expression
}

func (ce *ConditionalExpression) expressionNode() {}
func (ce *ConditionalExpression) String() string {
	return "(" + ce.Test.String() + " ? " + ce.Consequent.String() + " : " + ce.Alternate.String() + ")"
}

func NewConditionalExpression(test, consequent, alternate Expression) *ConditionalExpression {
	n := &ConditionalExpression{Test: test, Consequent: consequent, Alternate: alternate}
	n.Token = token.Token{Literal: "?", Pos: test.Pos()}
	return n
}

// UpdateOperator distinguishes ++ from --.
type UpdateOperator string

const (
	UpdateIncrement UpdateOperator = "++"
	UpdateDecrement UpdateOperator = "--"
)

// UpdateExpression is `++arg`, `arg++`, `--arg`, or `arg--`. The
// expression normalizer always desugars it away (spec.md §4.3); it
// survives only in input ASTs.
type UpdateExpression struct {
	base
	Operator UpdateOperator
	Argument Expression
	Prefix   bool
}

func (ue *UpdateExpression) expressionNode() {}
func (ue *UpdateExpression) String() string {
	if ue.Prefix {
		return string(ue.Operator) + ue.Argument.String()
	}
	return ue.Argument.String() + string(ue.Operator)
}

func NewUpdateExpression(operator UpdateOperator, argument Expression, prefix bool) *UpdateExpression {
	n := &UpdateExpression{Operator: operator, Argument: argument, Prefix: prefix}
	n.Token = token.Token{Literal: string(operator), Pos: argument.Pos()}
	return n
}

// UnaryExpression is a prefix unary operator: `-x`, `!x`, `typeof x`,
// `void x`, or `delete x`.
type UnaryExpression struct {
	base
	Operator string
	Argument Expression
}

func (ue *UnaryExpression) expressionNode() {}
func (ue *UnaryExpression) String() string {
	sep := ""
	if len(ue.Operator) > 1 {
		sep = " "
	}
	return "(" + ue.Operator + sep + ue.Argument.String() + ")"
}

func NewUnaryExpression(operator string, argument Expression) *UnaryExpression {
	n := &UnaryExpression{Operator: operator, Argument: argument}
	n.Token = token.Token{Literal: operator, Pos: argument.Pos()}
	return n
}
