package balance

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes balance failures.
type ErrorCode string

const (
	// ErrCodeConflictingEquations indicates the solver output does not
	// satisfy the original system.
	ErrCodeConflictingEquations ErrorCode = "CONFLICTING_EQUATIONS"

	// ErrCodeMultipleAnswers indicates more than one independent
	// solution where only one is acceptable.
	ErrCodeMultipleAnswers ErrorCode = "MULTIPLE_INDEPENDENT_ANSWERS"

	// ErrCodeZeroCoefficient indicates a molecule balanced to zero while
	// auto-correction is disabled.
	ErrCodeZeroCoefficient ErrorCode = "ZERO_COEFFICIENT_MOLECULE"

	// ErrCodeWrongSide indicates a molecule balanced to a negative
	// coefficient in a normal-form equation while auto-correction is
	// disabled.
	ErrCodeWrongSide ErrorCode = "WRONG_SIDE_MOLECULE"

	ErrCodeAllSidesEliminated  ErrorCode = "ALL_SIDES_ELIMINATED"
	ErrCodeLeftSideEliminated  ErrorCode = "LEFT_SIDE_ELIMINATED"
	ErrCodeRightSideEliminated ErrorCode = "RIGHT_SIDE_ELIMINATED"
)

var messageKeys = map[ErrorCode]string{
	ErrCodeConflictingEquations: "error.logic.other.conflicted_equations",
	ErrCodeMultipleAnswers:      "error.logic.arranger.multi_answer",
	ErrCodeZeroCoefficient:      "error.logic.arranger.zero_coefficient",
	ErrCodeWrongSide:            "error.logic.arranger.wrong_side",
	ErrCodeAllSidesEliminated:   "error.logic.other.side_eliminated.all",
	ErrCodeLeftSideEliminated:   "error.logic.other.side_eliminated.left",
	ErrCodeRightSideEliminated:  "error.logic.other.side_eliminated.right",
}

// MessageKey returns the locale message key for c, or "" for an unknown
// code.
func (c ErrorCode) MessageKey() string {
	return messageKeys[c]
}

// Error is a terminal balance failure.
//
// Details carries message substitutions: "$1" is the offending molecule
// text for ErrCodeZeroCoefficient and ErrCodeWrongSide.
type Error struct {
	Code       ErrorCode
	MessageKey string
	Details    map[string]string
}

func newError(code ErrorCode) *Error {
	return &Error{Code: code, MessageKey: messageKeys[code]}
}

func newMoleculeError(code ErrorCode, molecule string) *Error {
	e := newError(code)
	e.Details = map[string]string{"$1": molecule}
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	if m, ok := e.Details["$1"]; ok {
		return fmt.Sprintf("balance: %s (%s)", e.Code, m)
	}
	return fmt.Sprintf("balance: %s", e.Code)
}

// IsCode reports whether err is a balance error with the given code.
// Uses errors.As to handle wrapped errors.
func IsCode(err error, code ErrorCode) bool {
	var be *Error
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// IsSideEliminated reports whether err is any of the side elimination
// errors.
func IsSideEliminated(err error) bool {
	return IsCode(err, ErrCodeAllSidesEliminated) ||
		IsCode(err, ErrCodeLeftSideEliminated) ||
		IsCode(err, ErrCodeRightSideEliminated)
}
