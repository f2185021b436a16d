package parser

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes parse errors.
type ErrorCode string

const (
	ErrCodeEmptyExpression      ErrorCode = "EMPTY_EXPRESSION"
	ErrCodeNoContent            ErrorCode = "NO_CONTENT"
	ErrCodeMixedForm            ErrorCode = "MIXED_FORM"
	ErrCodeDuplicatedEqualSign  ErrorCode = "DUPLICATED_EQUAL_SIGN"
	ErrCodeOnlyOneMolecule      ErrorCode = "ONLY_ONE_MOLECULE"
	ErrCodeNoEqualSign          ErrorCode = "NO_EQUAL_SIGN"
	ErrCodeUnexpectedCharacter  ErrorCode = "UNEXPECTED_CHARACTER"
	ErrCodeUnmatchedParenthesis ErrorCode = "UNMATCHED_PARENTHESIS"
	ErrCodeEmptyGroup           ErrorCode = "EMPTY_GROUP"
	ErrCodeInvalidElectron      ErrorCode = "INVALID_ELECTRON"
	ErrCodeEmptyMolecule        ErrorCode = "EMPTY_MOLECULE"
)

// messageKeys maps each code to its locale message key.
var messageKeys = map[ErrorCode]string{
	ErrCodeEmptyExpression:      "error.parser.ce.empty_expression",
	ErrCodeNoContent:            "error.parser.ce.no_content",
	ErrCodeMixedForm:            "error.parser.ce.mixed_form",
	ErrCodeDuplicatedEqualSign:  "error.parser.ce.duplicated_equal_sign",
	ErrCodeOnlyOneMolecule:      "error.parser.ce.only_one_molecule",
	ErrCodeNoEqualSign:          "error.parser.ce.no_equal_sign",
	ErrCodeUnexpectedCharacter:  "error.parser.molecule.unexpected_character",
	ErrCodeUnmatchedParenthesis: "error.parser.molecule.parenthesis_mismatch",
	ErrCodeEmptyGroup:           "error.parser.molecule.no_content",
	ErrCodeInvalidElectron:      "error.parser.molecule.invalid_electronic",
	ErrCodeEmptyMolecule:        "error.parser.molecule.empty",
}

// MessageKey returns the locale message key for c, or "" for an unknown
// code.
func (c ErrorCode) MessageKey() string {
	return messageKeys[c]
}

// Error is a parse error located in the normalized expression.
type Error struct {
	Code ErrorCode

	// MessageKey identifies the localized description.
	MessageKey string

	// Pos is the rune offset in the normalized expression.
	Pos int

	// Details holds message substitutions ("$1", ...).
	Details map[string]string
}

func newError(code ErrorCode, pos int, subst ...string) *Error {
	e := &Error{Code: code, MessageKey: messageKeys[code], Pos: pos}
	if len(subst) > 0 {
		e.Details = make(map[string]string, len(subst))
		for i, s := range subst {
			e.Details[fmt.Sprintf("$%d", i+1)] = s
		}
	}
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	if s, ok := e.Details["$1"]; ok {
		return fmt.Sprintf("parse: %s at %d (%s)", e.Code, e.Pos, s)
	}
	return fmt.Sprintf("parse: %s at %d", e.Code, e.Pos)
}

// IsCode reports whether err is a parse error with the given code.
func IsCode(err error, code ErrorCode) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code == code
	}
	return false
}
