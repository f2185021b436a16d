package balance

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/bce-toolkit/bce/internal/solver"
)

// Options controls the arrangement of a solved equation.
type Options struct {
	// AutoCorrect drops zero-coefficient molecules and moves
	// negative-coefficient molecules to the other side instead of failing.
	AutoCorrect bool `json:"auto_correct" yaml:"auto_correct"`

	// SymbolHeader prefixes free-parameter names.
	SymbolHeader string `json:"symbol_header" yaml:"symbol_header" validate:"required,max=16,excludesall=0123456789+-=;.()[]{}<>"`
}

// DefaultOptions returns auto-correction enabled and the "X" header.
func DefaultOptions() Options {
	return Options{AutoCorrect: true, SymbolHeader: solver.DefaultSymbolHeader}
}

var validate = validator.New()

// Validate checks the options before a balance run.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("balance options: %w", err)
	}
	return nil
}
