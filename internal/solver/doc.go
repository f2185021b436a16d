// Package solver finds the parametric solution of a homogeneous linear system
// by Gaussian elimination over exact values.
//
// Underdetermined systems are solved rather than rejected: every unknown
// without a pivot becomes a free parameter named by SymbolFor, and the
// remaining unknowns are expressed as affine functions of those parameters.
// Check re-substitutes a solution into an untouched copy of the system.
package solver
