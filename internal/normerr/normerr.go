// Package normerr defines the single fatal error kind the normalizer
// raises (spec.md §7): NormalizationError. There is no collection, no
// retry, no partial result — one error aborts the whole normalize call.
//
// Grounded on the teacher's internal/parser.ParserError shape
// ({Message, Code, Pos}), generalized from a recoverable-parse-error
// list into the core's single fatal-abort error.
package normerr

import (
	"fmt"

	"github.com/cwbudde/go-esnorm/internal/token"
)

// Error codes for programmatic handling, mirroring the teacher parser's
// E_* constants.
const (
	ErrUnsupportedExpression = "E_UNSUPPORTED_EXPRESSION"
	ErrUnsupportedStatement  = "E_UNSUPPORTED_STATEMENT"
	ErrInvalidDeleteTarget   = "E_INVALID_DELETE_TARGET"
	ErrInvalidAssignTarget   = "E_INVALID_ASSIGN_TARGET"
	ErrForInMemberTarget     = "E_FOR_IN_MEMBER_TARGET"
	ErrReferenceErrorShadow  = "E_REFERENCE_ERROR_SHADOWED"
	ErrDownwardExposed       = "E_DOWNWARD_EXPOSED_FUNCTION"
	ErrUnlabeledBreak        = "E_UNLABELED_BREAK"
	ErrUnlabeledContinue     = "E_UNLABELED_CONTINUE"
)

// NormalizationError is the one error kind the core ever raises.
type NormalizationError struct {
	Message string
	Code    string
	Pos     token.Position
}

// Error implements the error interface.
func (e *NormalizationError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos.String())
}

// New builds a NormalizationError.
func New(code, message string, pos token.Position) *NormalizationError {
	return &NormalizationError{Message: message, Code: code, Pos: pos}
}

// Newf builds a NormalizationError with a formatted message.
func Newf(code string, pos token.Position, format string, args ...any) *NormalizationError {
	return New(code, fmt.Sprintf(format, args...), pos)
}
