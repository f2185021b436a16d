// Package engine runs balance requests end to end.
//
// A request is normalized, looked up in the history cache when a recorder
// is attached, parsed, balanced and formatted. Parse and balance failures
// are part of the Outcome rather than Go errors: they are answers about
// the input. A Go error from the engine means the request could not be
// answered at all (invalid options, storage failure).
//
// The CLI, the HTTP server and the scenario harness all go through Engine,
// so a given expression produces the same text everywhere.
package engine
