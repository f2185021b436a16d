package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/text/language"

	"github.com/bce-toolkit/bce/internal/balance"
	"github.com/bce-toolkit/bce/internal/engine"
	"github.com/bce-toolkit/bce/internal/locale"
	"github.com/bce-toolkit/bce/internal/store"
	"github.com/bce-toolkit/bce/internal/testutil"
)

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh in-memory database, so the run token
// and seq numbers only depend on the scenario. A non-nil error means the
// scenario could not be executed at all; unmet expectations are reported
// in Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	var tokens []string
	if scenario.RunID != "" {
		tokens = append(tokens, scenario.RunID)
	}
	rec := store.NewRecorder(st, testutil.NewFixedTokenGenerator(tokens...))

	defaults := scenario.Options.apply(balance.DefaultOptions())
	eng, err := engine.New(defaults,
		engine.WithRecorder(rec),
		engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	if err != nil {
		return nil, fmt.Errorf("scenario options: %w", err)
	}

	tag := language.English
	if scenario.Language != "" {
		tag = locale.Match(scenario.Language)
	}

	ctx := context.Background()
	result := NewResult(rec.RunID())
	for i, c := range scenario.Cases {
		out, err := eng.BalanceWith(ctx, c.Expression, c.Options.apply(defaults))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.label(i), err)
		}

		cr := caseResult(c, out, tag)
		result.Cases = append(result.Cases, cr)
		for _, msg := range checkExpect(c.Expect, cr) {
			result.AddError(fmt.Sprintf("%s: %s", c.label(i), msg))
		}
	}
	return result, nil
}

func caseResult(c Case, out *engine.Outcome, tag language.Tag) CaseResult {
	cr := CaseResult{
		Seq:        out.Seq,
		Name:       c.Name,
		Expression: out.Expression,
		Balanced:   out.Balanced,
		Direction:  out.Direction,
	}
	if f := out.Failure; f != nil {
		cr.Error = f.Code
		cr.Details = f.Details
		cr.Message = locale.Message(tag, f.MessageKey, f.Details)
		if f.Kind == engine.FailureParse {
			pos := f.Pos
			cr.Position = &pos
		}
	}
	return cr
}
