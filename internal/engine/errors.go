package engine

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/bce-toolkit/bce/internal/balance"
	"github.com/bce-toolkit/bce/internal/parser"
)

// ErrInvalidOptions wraps option validation failures.
var ErrInvalidOptions = errors.New("engine: invalid options")

// FailureKind tells which stage rejected the input.
type FailureKind string

const (
	FailureParse   FailureKind = "parse"
	FailureBalance FailureKind = "balance"
)

// Failure describes why an expression could not be balanced.
type Failure struct {
	Kind FailureKind

	// Code is a parser.ErrorCode or balance.ErrorCode.
	Code string

	// MessageKey identifies the localized description.
	MessageKey string

	// Pos is the rune offset of a parse failure in the normalized
	// expression, or -1.
	Pos int

	// Details holds message substitutions ("$1", ...).
	Details map[string]string
}

// Error implements the error interface.
func (f *Failure) Error() string {
	if f.Kind == FailureParse {
		return fmt.Sprintf("%s: %s at %d", f.Kind, f.Code, f.Pos)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Code)
}

// failureOf converts a parser or balance error. ok is false for any other
// error.
func failureOf(err error) (f *Failure, ok bool) {
	var pe *parser.Error
	if errors.As(err, &pe) {
		return &Failure{
			Kind:       FailureParse,
			Code:       string(pe.Code),
			MessageKey: pe.MessageKey,
			Pos:        pe.Pos,
			Details:    pe.Details,
		}, true
	}
	var be *balance.Error
	if errors.As(err, &be) {
		return &Failure{
			Kind:       FailureBalance,
			Code:       string(be.Code),
			MessageKey: be.MessageKey,
			Pos:        -1,
			Details:    be.Details,
		}, true
	}
	return nil, false
}

// posKey stores a parse position among the persisted details. It has no
// "$" prefix so message rendering ignores it.
const posKey = "pos"

// storedDetails flattens f for the history store.
func (f *Failure) storedDetails() map[string]string {
	out := make(map[string]string, len(f.Details)+1)
	for k, v := range f.Details {
		out[k] = v
	}
	if f.Kind == FailureParse {
		out[posKey] = strconv.Itoa(f.Pos)
	}
	return out
}

// failureFromStored rebuilds a Failure from a stored code and details.
func failureFromStored(code string, details map[string]string) *Failure {
	f := &Failure{Code: code, Pos: -1}
	if key := parser.ErrorCode(code).MessageKey(); key != "" {
		f.Kind = FailureParse
		f.MessageKey = key
	} else {
		f.Kind = FailureBalance
		f.MessageKey = balance.ErrorCode(code).MessageKey()
	}
	for k, v := range details {
		if k == posKey {
			if n, err := strconv.Atoi(v); err == nil {
				f.Pos = n
			}
			continue
		}
		if f.Details == nil {
			f.Details = make(map[string]string)
		}
		f.Details[k] = v
	}
	return f
}
