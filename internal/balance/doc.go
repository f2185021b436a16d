// Package balance turns a parsed chemical equation into a balanced one.
//
// Balancing runs in four stages:
//
//  1. BuildMatrix models atom and charge conservation as [A | 0].
//  2. solver.Solve finds the parametric solution on a working copy.
//  3. solver.Check validates the solution against an untouched snapshot.
//  4. Arrange pins free parameters, clears fractions, reduces by the GCD
//     and moves or drops items whose coefficient is negative or zero.
//
// Everything is exact, synchronous and deterministic: the same equation
// and Options always produce the same coefficients, free-parameter names
// and errors.
package balance
