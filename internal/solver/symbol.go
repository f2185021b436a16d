package solver

import "fmt"

// DefaultSymbolHeader prefixes free-parameter names unless overridden.
const DefaultSymbolHeader = "X"

// SymbolFor returns the name of the n-th free parameter: header followed by
// n in bijective base 26 over a..z (0 → "a", 25 → "z", 26 → "aa").
//
// Distinct n always produce distinct names for a fixed header. The header
// must be non-empty.
func SymbolFor(n int, header string) (string, error) {
	if header == "" {
		return "", fmt.Errorf("SymbolFor(%d): %w", n, ErrEmptyHeader)
	}
	if n < 0 {
		return "", fmt.Errorf("SymbolFor(%d): %w", n, ErrNegativeIndex)
	}
	var digits []byte
	for k := n + 1; k > 0; k = (k - 1) / 26 {
		digits = append(digits, byte('a'+(k-1)%26))
	}
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return header + string(digits), nil
}
