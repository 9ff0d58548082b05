package normalize

import (
	"github.com/cwbudde/go-esnorm/internal/ast"
	"github.com/cwbudde/go-esnorm/internal/token"
)

// Node kind aliases re-exporting internal/ast the way the teacher's
// pkg/ast aliases internal/ast for its own callers, so a caller of this
// package never needs to import internal/ast directly.
type (
	Node       = ast.Node
	Expression = ast.Expression
	Statement  = ast.Statement
	Token      = token.Token

	Program   = ast.Program
	Identifier = ast.Identifier
	Literal    = ast.Literal

	ArrayExpression        = ast.ArrayExpression
	ObjectExpression       = ast.ObjectExpression
	Property               = ast.Property
	MemberExpression       = ast.MemberExpression
	AssignmentExpression   = ast.AssignmentExpression
	CallExpression         = ast.CallExpression
	NewExpression          = ast.NewExpression
	SequenceExpression     = ast.SequenceExpression
	LogicalExpression      = ast.LogicalExpression
	BinaryExpression       = ast.BinaryExpression
	ConditionalExpression  = ast.ConditionalExpression
	UpdateExpression       = ast.UpdateExpression
	UnaryExpression        = ast.UnaryExpression
	ThisExpression         = ast.ThisExpression
	FunctionExpression     = ast.FunctionExpression
	FunctionDeclaration    = ast.FunctionDeclaration

	ExpressionStatement = ast.ExpressionStatement
	VariableDeclarator  = ast.VariableDeclarator
	VariableDeclaration = ast.VariableDeclaration
	BlockStatement      = ast.BlockStatement
	ReturnStatement     = ast.ReturnStatement
	DebuggerStatement   = ast.DebuggerStatement
	IfStatement         = ast.IfStatement
	ThrowStatement       = ast.ThrowStatement
	LabeledStatement     = ast.LabeledStatement
	BreakStatement       = ast.BreakStatement
	ContinueStatement    = ast.ContinueStatement
	WhileStatement       = ast.WhileStatement
	DoWhileStatement     = ast.DoWhileStatement
	ForStatement         = ast.ForStatement
	ForInStatement       = ast.ForInStatement
	SwitchCase           = ast.SwitchCase
	SwitchStatement      = ast.SwitchStatement
	WithStatement        = ast.WithStatement
	CatchClause          = ast.CatchClause
	TryStatement         = ast.TryStatement
	EmptyStatement       = ast.EmptyStatement
)

// Constructor re-exports, so callers building an input AST to feed into
// Normalize never reach into internal/ast either.
var (
	NewProgram              = ast.NewProgram
	NewIdentifier           = ast.NewIdentifier
	NewNullLiteral          = ast.NewNullLiteral
	NewBoolLiteral          = ast.NewBoolLiteral
	NewStringLiteral        = ast.NewStringLiteral
	NewNumberLiteral        = ast.NewNumberLiteral
	NewThisExpression       = ast.NewThisExpression
	NewArrayExpression      = ast.NewArrayExpression
	NewProperty             = ast.NewProperty
	NewObjectExpression     = ast.NewObjectExpression
	NewMemberExpression     = ast.NewMemberExpression
	NewAssignmentExpression = ast.NewAssignmentExpression
	NewCallExpression       = ast.NewCallExpression
	NewNewExpression        = ast.NewNewExpression
	NewSequenceExpression   = ast.NewSequenceExpression
	NewLogicalExpression    = ast.NewLogicalExpression
	NewBinaryExpression     = ast.NewBinaryExpression
	NewConditionalExpression = ast.NewConditionalExpression
	NewUpdateExpression     = ast.NewUpdateExpression
	NewUnaryExpression      = ast.NewUnaryExpression
	NewFunctionExpression   = ast.NewFunctionExpression
	NewFunctionDeclaration  = ast.NewFunctionDeclaration
	NewExpressionStatement  = ast.NewExpressionStatement
	NewVariableDeclarator   = ast.NewVariableDeclarator
	NewVariableDeclaration  = ast.NewVariableDeclaration
	NewBlockStatement       = ast.NewBlockStatement
	NewReturnStatement      = ast.NewReturnStatement
	NewDebuggerStatement    = ast.NewDebuggerStatement
	NewIfStatement          = ast.NewIfStatement
	NewThrowStatement       = ast.NewThrowStatement
	NewLabeledStatement     = ast.NewLabeledStatement
	NewBreakStatement       = ast.NewBreakStatement
	NewContinueStatement    = ast.NewContinueStatement
	NewWhileStatement       = ast.NewWhileStatement
	NewDoWhileStatement     = ast.NewDoWhileStatement
	NewForStatement         = ast.NewForStatement
	NewForInStatement       = ast.NewForInStatement
	NewSwitchCase           = ast.NewSwitchCase
	NewSwitchStatement      = ast.NewSwitchStatement
	NewWithStatement        = ast.NewWithStatement
	NewCatchClause          = ast.NewCatchClause
	NewTryStatement         = ast.NewTryStatement
	NewEmptyStatement       = ast.NewEmptyStatement
)

const (
	UpdateIncrement = ast.UpdateIncrement
	UpdateDecrement = ast.UpdateDecrement
)

type (
	PropertyKind = ast.PropertyKind
	LiteralKind  = ast.LiteralKind
)

const (
	PropertyInit = ast.PropertyInit
	PropertyGet  = ast.PropertyGet
	PropertySet  = ast.PropertySet

	LiteralNull   = ast.LiteralNull
	LiteralBool   = ast.LiteralBool
	LiteralNumber = ast.LiteralNumber
	LiteralString = ast.LiteralString
	LiteralRegExp = ast.LiteralRegExp
)
