// Package value implements the exact arithmetic used by the balancer.
//
// Every matrix cell and every answer is a Value: either a rational constant
// or an affine expression in free-parameter symbols with rational
// coefficients. Products and quotients are only defined when the result stays
// affine, which is always the case for Gaussian elimination on a matrix whose
// original entries are constants.
//
// Floats are never used. All rationals are math/big values, so coefficient
// growth cannot overflow.
package value
