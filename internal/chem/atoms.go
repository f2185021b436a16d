package chem

import "github.com/bce-toolkit/bce/internal/value"

// AtomDict maps atom symbols to counts and remembers insertion order.
// The zero AtomDict is empty and ready to use.
type AtomDict struct {
	order  []string
	counts map[string]value.Value
}

// Add accumulates n onto sym. A symbol keeps the position of its first Add.
func (d *AtomDict) Add(sym string, n value.Value) {
	if d.counts == nil {
		d.counts = make(map[string]value.Value)
	}
	if cur, ok := d.counts[sym]; ok {
		d.counts[sym] = cur.Add(n)
		return
	}
	d.order = append(d.order, sym)
	d.counts[sym] = n
}

// Merge adds every entry of other, scaled by k, in other's order.
func (d *AtomDict) Merge(other AtomDict, k value.Value) {
	for _, sym := range other.order {
		d.Add(sym, other.counts[sym].Mul(k))
	}
}

// Symbols returns the symbols in insertion order.
func (d AtomDict) Symbols() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Count returns the count of sym, 0 when absent.
func (d AtomDict) Count(sym string) value.Value {
	return d.counts[sym]
}

// Len returns the number of distinct symbols.
func (d AtomDict) Len() int {
	return len(d.order)
}
