// Package harness runs balance scenarios written in YAML.
//
// A scenario lists expressions together with the result or error each one
// must produce. Run feeds every case through an engine backed by a fresh
// in-memory history store, so seq numbers and the run token are
// deterministic, and reports each mismatch. RunWithGolden additionally
// compares the full snapshot of the run against a goldie fixture.
//
// Example scenario:
//
//	name: water
//	description: "Hydrogen combustion"
//	cases:
//	  - expression: "H2+O2=H2O"
//	    expect:
//	      result: "2H2+O2=2H2O"
//	  - expression: "He=Ne"
//	    expect:
//	      error: ALL_SIDES_ELIMINATED
package harness
