package value

import "math/big"

// GCD returns the non-negative greatest common divisor of a and b.
// GCD(0, 0) is 0.
func GCD(a, b *big.Int) *big.Int {
	return new(big.Int).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b))
}

// LCM returns the non-negative least common multiple of a and b.
// LCM is 0 when either argument is 0.
func LCM(a, b *big.Int) *big.Int {
	if a.Sign() == 0 || b.Sign() == 0 {
		return new(big.Int)
	}
	g := GCD(a, b)
	out := new(big.Int).Mul(a, b)
	out.Abs(out)
	return out.Quo(out, g)
}
