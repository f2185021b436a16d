package harness

import (
	"fmt"
	"sort"
)

// checkExpect compares a case result with its expectation and returns one
// message per mismatch.
func checkExpect(want Expect, got CaseResult) []string {
	var errs []string
	mismatch := func(field string, want, got any) {
		errs = append(errs, fmt.Sprintf("%s: expected %v, got %v", field, want, got))
	}

	if want.Result != "" {
		if got.Error != "" {
			return []string{fmt.Sprintf("expected result %q, got error %s", want.Result, got.Error)}
		}
		if got.Balanced != want.Result {
			mismatch("result", quote(want.Result), quote(got.Balanced))
		}
		if want.Direction != "" && got.Direction != want.Direction {
			mismatch("direction", want.Direction, got.Direction)
		}
		return errs
	}

	if got.Error == "" {
		return []string{fmt.Sprintf("expected error %s, got result %q", want.Error, got.Balanced)}
	}
	if got.Error != want.Error {
		mismatch("error", want.Error, got.Error)
	}
	if want.Position != nil {
		switch {
		case got.Position == nil:
			mismatch("position", *want.Position, "none")
		case *got.Position != *want.Position:
			mismatch("position", *want.Position, *got.Position)
		}
	}
	for _, k := range sortedKeys(want.Details) {
		if v, ok := got.Details[k]; !ok || v != want.Details[k] {
			mismatch("details["+k+"]", quote(want.Details[k]), quote(v))
		}
	}
	if want.Message != "" && got.Message != want.Message {
		mismatch("message", quote(want.Message), quote(got.Message))
	}
	return errs
}

func quote(s string) string {
	return fmt.Sprintf("%q", s)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
