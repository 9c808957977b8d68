// Package selector implements constrained multiplexers: value selection
// driven by a boolean condition, with no branching at witness-generation
// time.
package selector

import (
	"fmt"

	"github.com/peeraphut5053/franklin-crypto/frontend"
	"github.com/peeraphut5053/franklin-crypto/gadgets/boolean"
	"github.com/peeraphut5053/franklin-crypto/gadgets/num"
)

// Select returns a if cond is 1 and b if cond is 0, with exactly one
// multiplication constraint via the identity r = b + cond*(a-b). No other
// outcome is possible: the boolean gadget pins cond to {0, 1}.
func Select(cs frontend.ConstraintSystem, cond boolean.Bit, a, b num.Num) (num.Num, error) {
	v := frontend.Unknown()
	if c, ok := cond.Value(); ok {
		if c {
			v = a.Value()
		} else {
			v = b.Value()
		}
	}
	r, err := num.Allocate(cs, v)
	if err != nil {
		return num.Num{}, fmt.Errorf("selector: select: %w", err)
	}
	// cond * (a - b) = r - b
	cs.Enforce(cond.Num().LinearCombination(), a.Sub(b).LinearCombination(), r.Sub(b).LinearCombination())
	return r, nil
}

// Swap returns (b, a) if cond is 1 and (a, b) if cond is 0, using two
// constraints. It is the ordering primitive of the Merkle-path gadget.
func Swap(cs frontend.ConstraintSystem, cond boolean.Bit, a, b num.Num) (num.Num, num.Num, error) {
	x, err := Select(cs, cond, b, a)
	if err != nil {
		return num.Num{}, num.Num{}, fmt.Errorf("selector: swap: %w", err)
	}
	y, err := Select(cs, cond, a, b)
	if err != nil {
		return num.Num{}, num.Num{}, fmt.Errorf("selector: swap: %w", err)
	}
	return x, y, nil
}
