package hatch

import (
	"errors"
	"fmt"
	"math"
)

var ErrZeroWeight = errors.New("total adjusted weight is zero")

// WeightedOutcome is an Outcome with its luck-adjusted draw probability.
type WeightedOutcome struct {
	Outcome
	Index                 int // position in the source Table
	AdjustedWeight        float64
	NormalizedProbability float64
}

// ApplyLuck scales luck-affected tiers by luckMultiplier and normalizes all
// weights so they sum to 1. The table is not modified.
//
// A multiplier of 0 is legal as long as some tier is not luck-affected;
// otherwise the total is zero and ErrZeroWeight is returned.
func ApplyLuck(table Table, luckMultiplier float64) ([]WeightedOutcome, error) {
	if len(table) == 0 {
		return nil, ErrEmptyTable
	}
	if math.IsNaN(luckMultiplier) || math.IsInf(luckMultiplier, 0) || luckMultiplier < 0 {
		return nil, fmt.Errorf("%w: multiplier %v", ErrInvalidLuck, luckMultiplier)
	}

	out := make([]WeightedOutcome, len(table))
	var total float64
	for i, o := range table {
		w := o.BaseChance
		if o.Rarity.LuckAffected() {
			w *= luckMultiplier
		}
		out[i] = WeightedOutcome{Outcome: o, Index: i, AdjustedWeight: w}
		total += w
	}
	if !(total > 0) || math.IsInf(total, 0) {
		return nil, ErrZeroWeight
	}
	for i := range out {
		out[i].NormalizedProbability = out[i].AdjustedWeight / total
	}
	return out, nil
}
